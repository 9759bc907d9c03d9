// Package delivery dispatches invitation notifications over the
// requested channels. Channels are attempted independently: one
// failing never blocks or cancels the other.
package delivery

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/loanridge/loanridge/internal/config"
	"github.com/loanridge/loanridge/internal/observability/metrics"
	"github.com/loanridge/loanridge/internal/providers/email"
	"github.com/loanridge/loanridge/internal/providers/sms"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Request carries everything needed to notify one invitee.
type Request struct {
	Channels    []string
	Email       string
	Phone       string
	InviteeName string
	InviterName string
	TargetRole  string
	Message     string
	Code        string
}

// Result reports the per-channel outcome of one dispatch.
type Result struct {
	EmailSent bool
	SMSSent   bool
	Warnings  []string
}

// AllFailed is true when every requested channel failed.
func (r Result) AllFailed(requested []string) bool {
	for _, ch := range requested {
		switch ch {
		case ChannelEmail:
			if r.EmailSent {
				return false
			}
		case ChannelSMS:
			if r.SMSSent {
				return false
			}
		}
	}
	return len(requested) > 0
}

type Dispatcher interface {
	Dispatch(ctx context.Context, req Request) Result
}

type Params struct {
	fx.In

	Log     *zap.Logger
	Email   email.Provider
	SMS     sms.Provider
	Network *config.NetworkConfigHolder
	Metrics *metrics.Metrics
}

type dispatcher struct {
	log     *zap.Logger
	email   email.Provider
	sms     sms.Provider
	network *config.NetworkConfigHolder
	metrics *metrics.Metrics
}

func New(p Params) Dispatcher {
	return &dispatcher{
		log:     p.Log.Named("delivery"),
		email:   p.Email,
		sms:     p.SMS,
		network: p.Network,
		metrics: p.Metrics,
	}
}

var Module = fx.Module("delivery",
	fx.Provide(New),
)

var inviteEmailTmpl = template.Must(template.New("invite_email").Parse(`<html><body>
<p>Hi {{.InviteeName}},</p>
<p>{{.InviterName}} invited you to join their network on Loanridge as a {{.RoleLabel}}.</p>
{{if .Message}}<p>{{.Message}}</p>{{end}}
<p>Your invitation code is <strong>{{.Code}}</strong>.</p>
</body></html>`))

// Dispatch attempts every requested channel concurrently, each under
// its own timeout. A channel that is requested but has no destination
// address counts as failed.
func (d *dispatcher) Dispatch(ctx context.Context, req Request) Result {
	timeout := d.network.DeliveryTimeout()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result Result
	)

	fail := func(channel, warning string) {
		mu.Lock()
		result.Warnings = append(result.Warnings, warning)
		mu.Unlock()
		d.metrics.RecordDelivery(channel, "failed")
	}

	for _, ch := range req.Channels {
		switch ch {
		case ChannelEmail:
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := d.sendEmail(ctx, req, timeout); err != nil {
					d.log.Warn("email delivery failed", zap.String("to", req.Email), zap.Error(err))
					fail(ChannelEmail, fmt.Sprintf("email delivery failed: %v", err))
					return
				}
				mu.Lock()
				result.EmailSent = true
				mu.Unlock()
				d.metrics.RecordDelivery(ChannelEmail, "ok")
			}()
		case ChannelSMS:
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := d.sendSMS(ctx, req, timeout); err != nil {
					d.log.Warn("sms delivery failed", zap.String("to", req.Phone), zap.Error(err))
					fail(ChannelSMS, fmt.Sprintf("sms delivery failed: %v", err))
					return
				}
				mu.Lock()
				result.SMSSent = true
				mu.Unlock()
				d.metrics.RecordDelivery(ChannelSMS, "ok")
			}()
		default:
			fail(ch, fmt.Sprintf("unknown delivery channel %q", ch))
		}
	}
	wg.Wait()

	return result
}

func (d *dispatcher) sendEmail(ctx context.Context, req Request, timeout time.Duration) error {
	if req.Email == "" {
		return fmt.Errorf("no email address")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body bytes.Buffer
	if err := inviteEmailTmpl.Execute(&body, map[string]string{
		"InviteeName": req.InviteeName,
		"InviterName": req.InviterName,
		"RoleLabel":   roleLabel(req.TargetRole),
		"Message":     req.Message,
		"Code":        req.Code,
	}); err != nil {
		return err
	}

	subject := fmt.Sprintf("%s invited you to Loanridge", req.InviterName)
	return d.email.Send(ctx, []string{req.Email}, subject, body.String())
}

func (d *dispatcher) sendSMS(ctx context.Context, req Request, timeout time.Duration) error {
	if req.Phone == "" {
		return fmt.Errorf("no phone number")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body := fmt.Sprintf("%s invited you to Loanridge as a %s. Your code: %s",
		req.InviterName, roleLabel(req.TargetRole), req.Code)
	return d.sms.Send(ctx, req.Phone, body)
}

func roleLabel(role string) string {
	return strings.ReplaceAll(role, "_", " ")
}
