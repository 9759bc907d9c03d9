package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	auditrepo "github.com/loanridge/loanridge/internal/audit/repository"
	auditservice "github.com/loanridge/loanridge/internal/audit/service"
	"github.com/loanridge/loanridge/internal/auth/domain"
	"github.com/loanridge/loanridge/internal/auth/repository"
	"github.com/loanridge/loanridge/internal/clock"
	"github.com/loanridge/loanridge/internal/config"
	professionaldomain "github.com/loanridge/loanridge/internal/professional/domain"
	professionalrepo "github.com/loanridge/loanridge/internal/professional/repository"
	professionalservice "github.com/loanridge/loanridge/internal/professional/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	schema := []string{
		`CREATE TABLE professionals (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT,
			company TEXT,
			slug TEXT NOT NULL,
			role TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			visible_to_clients BOOLEAN NOT NULL DEFAULT TRUE,
			showcase_role TEXT,
			showcase_description TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE sessions (
			id INTEGER PRIMARY KEY,
			professional_id INTEGER NOT NULL,
			session_token_hash TEXT NOT NULL UNIQUE,
			user_agent TEXT,
			ip_address TEXT,
			expires_at DATETIME NOT NULL,
			revoked_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE role_change_records (
			id INTEGER PRIMARY KEY,
			user_id INTEGER NOT NULL,
			old_role TEXT NOT NULL,
			new_role TEXT NOT NULL,
			reason TEXT,
			changed_by INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zaptest.NewLogger(t)
	fakeClock := clock.NewFakeClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	audits := auditservice.New(auditservice.Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock, Repo: auditrepo.NewRepository(db),
	})
	professionals := professionalservice.New(professionalservice.Params{
		DB: db, Log: log, GenID: node, Clock: fakeClock,
		Repo:  professionalrepo.NewRepository(db),
		Audit: audits,
	})

	_, err = professionals.Create(context.Background(), professionaldomain.CreateRequest{
		Name:     "Rita Vargas",
		Email:    "rita@homeside.example",
		Role:     "realtor",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	svc := New(Params{
		DB:            db,
		Log:           log,
		Config:        config.Config{SessionTTLHours: 24},
		GenID:         node,
		Clock:         fakeClock,
		Repo:          repository.NewRepository(db),
		Professionals: professionals,
	})
	return svc, fakeClock
}

func TestLoginAndResolve(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "RITA@homeside.example",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	professional, err := svc.Resolve(ctx, result.Token)
	require.NoError(t, err)
	require.Equal(t, "rita@homeside.example", professional.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "rita@homeside.example",
		Password: "wrong",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever123",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestResolveExpiredSession(t *testing.T) {
	svc, fakeClock := setupAuthService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "rita@homeside.example",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	fakeClock.Advance(25 * time.Hour)

	_, err = svc.Resolve(ctx, result.Token)
	require.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "rita@homeside.example",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.Token))

	_, err = svc.Resolve(ctx, result.Token)
	require.ErrorIs(t, err, domain.ErrSessionExpired)
}
