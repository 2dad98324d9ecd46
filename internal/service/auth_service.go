package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"gamewise/api/internal/config"
	"gamewise/api/internal/ids"
	"gamewise/api/internal/mail"
	"gamewise/api/internal/models"
	"gamewise/api/internal/repository"
	"gamewise/api/internal/security"
)

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials is deliberately generic: login does not reveal
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCodeMismatch       = errors.New("invalid reset code")
	ErrCodeExpired        = errors.New("reset code expired")
	ErrEmailDelivery      = errors.New("failed to send reset email")
)

// UserStore is the credential-store surface the auth service needs.
// *repository.UserRepository satisfies it; tests substitute fakes.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	SetResetCode(ctx context.Context, id string, code string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, id string, passwordHash []byte) error
}

type AuthService struct {
	users  UserStore
	mailer mail.Sender
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewAuthService(users UserStore, mailer mail.Sender, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		mailer: mailer,
		cfg:    cfg,
		log:    log,
	}
}

// PublicUser is the subset of a user record safe to return to clients. The
// password hash never leaves the service layer.
type PublicUser struct {
	ID    string
	Name  string
	Email string
}

func publicUser(user models.User) PublicUser {
	return PublicUser{ID: user.ID, Name: user.Name, Email: user.Email}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (PublicUser, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return PublicUser{}, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	// Email lookups are exact-case; the address is stored as submitted.
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return PublicUser{}, repository.ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return PublicUser{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return PublicUser{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return PublicUser{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return publicUser(user), nil
}

type LoginResult struct {
	Token string
	User  PublicUser
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := security.IssueSessionToken(s.cfg.Security.JWTSecret, user.ID, user.Email, s.cfg.Security.TokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, User: publicUser(user)}, nil
}

// ForgotPassword issues a reset code, persists it, then emails it. The code
// is persisted before dispatch is attempted; a delivery failure surfaces as
// ErrEmailDelivery with the code left in place, so resubmitting the request
// is the recovery path.
//
// Known limitation: two concurrent requests for the same email interleave
// without locking. The later write wins and the earlier emailed code stops
// matching. Acceptable for a reset flow; not silently serialized.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	// Unlike login, this path reports a distinct not-found message. The
	// asymmetry is intentional in the product design; see DESIGN.md.
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := security.GenerateResetCode()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.cfg.Security.ResetCodeTTL)
	if err := s.users.SetResetCode(ctx, user.ID, code, expiresAt); err != nil {
		return err
	}

	body := mail.ResetCodeBody(user.Name, code, formatValidity(s.cfg.Security.ResetCodeTTL))
	if err := s.mailer.Send(ctx, user.Email, "Your password reset code", body); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("reset mail dispatch failed")
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}

	s.log.Info().Str("user_id", user.ID).Time("expires_at", expiresAt).Msg("reset code issued")
	return nil
}

// ResetPassword checks preconditions in a fixed order: input shape, then
// user existence, then code match, then expiry. The first failure wins and
// nothing is mutated.
func (s *AuthService) ResetPassword(ctx context.Context, email string, code string, newPassword string) error {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" || newPassword == "" {
		return fmt.Errorf("%w: email, token and newPassword are required", ErrValidation)
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	// A row with no pending code mismatches any submitted code.
	if user.ResetCode == nil || *user.ResetCode != code {
		return ErrCodeMismatch
	}
	if user.ResetExpiresAt == nil || time.Now().After(*user.ResetExpiresAt) {
		return ErrCodeExpired
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	// Clears reset_code/reset_expires_at in the same statement. No token is
	// issued; the caller logs in again with the new password.
	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}

func formatValidity(d time.Duration) string {
	if d%time.Minute == 0 {
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	}
	return d.String()
}
