package delivery

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/loanridge/loanridge/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type emailStub struct {
	mu    sync.Mutex
	err   error
	calls int
	block bool
}

func (s *emailStub) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.err
}

type smsStub struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (s *smsStub) Send(ctx context.Context, to string, body string) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.err
}

func newDispatcher(t *testing.T, e *emailStub, s *smsStub) Dispatcher {
	t.Helper()
	holder, err := config.NewNetworkConfigHolder()
	require.NoError(t, err)
	return New(Params{
		Log:     zaptest.NewLogger(t),
		Email:   e,
		SMS:     s,
		Network: holder,
	})
}

func TestDispatchBothChannels(t *testing.T) {
	e := &emailStub{}
	s := &smsStub{}
	d := newDispatcher(t, e, s)

	result := d.Dispatch(context.Background(), Request{
		Channels:    []string{ChannelEmail, ChannelSMS},
		Email:       "amy@example.com",
		Phone:       "+15551234567",
		InviteeName: "Amy",
		InviterName: "Bob",
		TargetRole:  "client",
		Code:        "ABC123",
	})

	require.True(t, result.EmailSent)
	require.True(t, result.SMSSent)
	require.Empty(t, result.Warnings)
	require.Equal(t, 1, e.calls)
	require.Equal(t, 1, s.calls)
}

func TestDispatchPartialFailureIsWarning(t *testing.T) {
	e := &emailStub{err: errors.New("smtp unreachable")}
	s := &smsStub{}
	d := newDispatcher(t, e, s)

	req := Request{
		Channels: []string{ChannelEmail, ChannelSMS},
		Email:    "amy@example.com",
		Phone:    "+15551234567",
		Code:     "ABC123",
	}
	result := d.Dispatch(context.Background(), req)

	require.False(t, result.EmailSent)
	require.True(t, result.SMSSent)
	require.Len(t, result.Warnings, 1)
	require.False(t, result.AllFailed(req.Channels))
}

func TestDispatchAllFailed(t *testing.T) {
	e := &emailStub{err: errors.New("smtp unreachable")}
	s := &smsStub{err: errors.New("gateway down")}
	d := newDispatcher(t, e, s)

	req := Request{
		Channels: []string{ChannelEmail, ChannelSMS},
		Email:    "amy@example.com",
		Phone:    "+15551234567",
		Code:     "ABC123",
	}
	result := d.Dispatch(context.Background(), req)

	require.False(t, result.EmailSent)
	require.False(t, result.SMSSent)
	require.Len(t, result.Warnings, 2)
	require.True(t, result.AllFailed(req.Channels))
}

func TestDispatchMissingDestinationFails(t *testing.T) {
	e := &emailStub{}
	s := &smsStub{}
	d := newDispatcher(t, e, s)

	req := Request{
		Channels: []string{ChannelSMS},
		Email:    "amy@example.com",
		Code:     "ABC123",
	}
	result := d.Dispatch(context.Background(), req)

	require.False(t, result.SMSSent)
	require.Len(t, result.Warnings, 1)
	require.True(t, result.AllFailed(req.Channels))
	require.Equal(t, 0, s.calls)
}

func TestDispatchEmailOnly(t *testing.T) {
	e := &emailStub{}
	s := &smsStub{}
	d := newDispatcher(t, e, s)

	req := Request{
		Channels: []string{ChannelEmail},
		Email:    "amy@example.com",
		Code:     "ABC123",
	}
	result := d.Dispatch(context.Background(), req)

	require.True(t, result.EmailSent)
	require.False(t, result.SMSSent)
	require.Equal(t, 0, s.calls)
}
