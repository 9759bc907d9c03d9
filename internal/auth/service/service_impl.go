package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/loanridge/loanridge/internal/auth/domain"
	"github.com/loanridge/loanridge/internal/auth/password"
	"github.com/loanridge/loanridge/internal/clock"
	"github.com/loanridge/loanridge/internal/config"
	professionaldomain "github.com/loanridge/loanridge/internal/professional/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionTokenBytes = 32

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Config        config.Config
	GenID         *snowflake.Node
	Clock         clock.Clock
	Repo          domain.Repository
	Professionals professionaldomain.Service
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	cfg           config.Config
	genID         *snowflake.Node
	clock         clock.Clock
	repo          domain.Repository
	professionals professionaldomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("auth.service"),
		cfg:           p.Config,
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		professionals: p.Professionals,
	}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}

	professional, err := s.professionals.GetByEmail(ctx, email)
	if err != nil {
		if err == professionaldomain.ErrNotFound {
			return domain.LoginResult{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResult{}, err
	}
	if professional.Status != professionaldomain.StatusActive {
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}
	if !password.Verify(req.Password, professional.PasswordHash) {
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return domain.LoginResult{}, err
	}

	ttl := time.Duration(s.cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := s.clock.Now()
	session := domain.Session{
		ID:               s.genID.Generate(),
		ProfessionalID:   professional.ID,
		SessionTokenHash: hashToken(token),
		UserAgent:        req.UserAgent,
		IPAddress:        req.IPAddress,
		ExpiresAt:        now.Add(ttl),
		CreatedAt:        now,
	}
	if err := s.repo.Insert(ctx, session); err != nil {
		return domain.LoginResult{}, err
	}

	s.log.Info("login", zap.String("professional_id", professional.ID.String()))
	return domain.LoginResult{
		Professional: professional,
		Token:        token,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.repo.Revoke(ctx, hashToken(token), s.clock.Now())
}

func (s *Service) Resolve(ctx context.Context, token string) (professionaldomain.Professional, error) {
	if strings.TrimSpace(token) == "" {
		return professionaldomain.Professional{}, domain.ErrSessionExpired
	}

	session, err := s.repo.FindByTokenHash(ctx, hashToken(token))
	if err != nil {
		return professionaldomain.Professional{}, err
	}
	if session == nil || session.RevokedAt != nil || s.clock.Now().After(session.ExpiresAt) {
		return professionaldomain.Professional{}, domain.ErrSessionExpired
	}

	return s.professionals.Get(ctx, session.ProfessionalID)
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
