package admin

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sukalov/shitsu/pkg/auth"
	"github.com/sukalov/shitsu/pkg/config"
	"github.com/sukalov/shitsu/pkg/db"
	"github.com/sukalov/shitsu/pkg/db/models"
	pkgerrors "github.com/sukalov/shitsu/pkg/errors"
	"github.com/sukalov/shitsu/pkg/security"
)

const minPasswordLength = 8

// LoginResult carries the login outcome. A failed attempt reports
// Success false without revealing whether the account exists.
type LoginResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

// Service manages the single admin account and its sessions.
type Service interface {
	CheckAdminExists(ctx context.Context) (bool, error)
	SetupAdmin(ctx context.Context, password string) error
	Login(ctx context.Context, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, current, updated string) error
	Logout(ctx context.Context, accessID string) error
	SessionGate(token string) *Gate
}

type sessionManager interface {
	Start(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
	HasSession(ctx context.Context, accessID string) (bool, error)
}

type service struct {
	repo     *Repository
	sessions sessionManager
	jwtCfg   config.JWTConfig
	passCfg  config.PasswordConfig
	now      func() time.Time
}

// NewService constructs the admin account service.
func NewService(repo *Repository, sessions sessionManager, jwtCfg config.JWTConfig, passCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		passCfg:  passCfg,
		now:      time.Now,
	}, nil
}

func (s *service) CheckAdminExists(ctx context.Context) (bool, error) {
	exists, err := s.repo.Exists(ctx)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking admin account")
	}
	return exists, nil
}

// SetupAdmin creates the account on first run. Once an admin exists the
// operation conflicts instead of overwriting the credentials.
func (s *service) SetupAdmin(ctx context.Context, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	exists, err := s.CheckAdminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return pkgerrors.New(pkgerrors.CodeConflict, "admin account already exists")
	}

	hash, err := security.HashPassword(password, s.passCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	admin := &models.Admin{
		ID:           uuid.New(),
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		if db.IsUniqueViolation(err, "idx_admins_singleton") {
			return pkgerrors.New(pkgerrors.CodeConflict, "admin account already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating admin account")
	}
	return nil
}

// Login verifies the password and starts a session. Both a missing
// account and a wrong password produce the same plain failure so the
// response never reveals whether setup has happened.
func (s *service) Login(ctx context.Context, password string) (*LoginResult, error) {
	admin, err := s.repo.Find(ctx)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return &LoginResult{Success: false}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading admin account")
	}

	ok, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return &LoginResult{Success: false}, nil
	}

	jti := uuid.NewString()
	token, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{JTI: jti})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}
	if err := s.sessions.Start(ctx, jti); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "starting session")
	}

	return &LoginResult{Success: true, Token: token}, nil
}

// ChangePassword swaps the credentials after verifying the current ones.
func (s *service) ChangePassword(ctx context.Context, current, updated string) error {
	if err := validatePassword(updated); err != nil {
		return err
	}

	admin, err := s.repo.Find(ctx)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading admin account")
	}

	ok, err := security.VerifyPassword(current, admin.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
	}

	hash, err := security.HashPassword(updated, s.passCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, admin, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating password")
	}
	return nil
}

// Logout revokes the session for the token's jti.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	return nil
}

// SessionGate builds a gate that settles the bearer token's session
// state on first resolution.
func (s *service) SessionGate(token string) *Gate {
	return NewGate(func(ctx context.Context) (bool, error) {
		trimmed := strings.TrimSpace(token)
		if trimmed == "" {
			return false, nil
		}
		claims, err := auth.ParseAccessToken(s.jwtCfg, trimmed)
		if err != nil {
			return false, nil
		}
		if claims.ID == "" {
			return false, nil
		}
		return s.sessions.HasSession(ctx, claims.ID)
	})
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return pkgerrors.New(pkgerrors.CodeValidation, "password too short").
			WithDetails(map[string]string{"password": fmt.Sprintf("must be at least %d characters", minPasswordLength)})
	}
	return nil
}
