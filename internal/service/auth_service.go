package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/asafarviv55/attendance-system-backend/internal/config"
	"github.com/asafarviv55/attendance-system-backend/internal/ids"
	"github.com/asafarviv55/attendance-system-backend/internal/models"
	"github.com/asafarviv55/attendance-system-backend/internal/notify"
	"github.com/asafarviv55/attendance-system-backend/internal/repository"
	"github.com/asafarviv55/attendance-system-backend/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

type userStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByResetToken(ctx context.Context, token string) (models.User, error)
	SetResetToken(ctx context.Context, id string, token string, expires time.Time) error
	UpdatePassword(ctx context.Context, id string, passwordHash []byte) error
}

type roleStore interface {
	FindByName(ctx context.Context, name models.RoleName) (models.Role, error)
}

type AuthService struct {
	users  userStore
	roles  roleStore
	mailer notify.Mailer
	cfg    *config.AppConfig
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(users userStore, roles roleStore, mailer notify.Mailer, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		roles:  roles,
		mailer: mailer,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

type SignInResult struct {
	Token    string
	UserID   string
	RoleName models.RoleName
}

func (s *AuthService) SignUp(ctx context.Context, email, password string, roleName models.RoleName) (SignInResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return SignInResult{}, fmt.Errorf("email and password required")
	}

	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return SignInResult{}, ErrInvalidRole
		}
		return SignInResult{}, err
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return SignInResult{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Email:        email,
		PasswordHash: passwordHash,
		RoleID:       role.ID,
		RoleName:     role.RoleName,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return SignInResult{}, ErrEmailTaken
		}
		return SignInResult{}, err
	}

	return s.issueToken(user)
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return SignInResult{}, ErrInvalidCredentials
		}
		return SignInResult{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return SignInResult{}, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user models.User) (SignInResult, error) {
	token, err := security.GenerateToken(
		s.cfg.Security.JWTSecret,
		user.ID,
		user.RoleID,
		string(user.RoleName),
		s.cfg.Security.JWTTTL,
	)
	if err != nil {
		return SignInResult{}, err
	}

	return SignInResult{
		Token:    token,
		UserID:   user.ID,
		RoleName: user.RoleName,
	}, nil
}

// RequestPasswordReset stores a single-use token on the user row and mails a
// reset link. Unknown emails report success so the endpoint does not leak
// which addresses have accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.log.Debug().Str("email", email).Msg("reset requested for unknown email")
			return nil
		}
		return err
	}

	token := ids.New()
	expires := s.now().Add(s.cfg.Security.ResetTokenTTL)

	if err := s.users.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return err
	}

	subject := "Password reset"
	body := fmt.Sprintf("Use this link to reset your password: %s?token=%s", s.cfg.Mail.ResetURL, token)
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return ErrInvalidResetToken
	}

	user, err := s.users.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	if user.ResetPasswordExpires == nil || user.ResetPasswordExpires.Before(s.now()) {
		return ErrInvalidResetToken
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, user.ID, passwordHash)
}
