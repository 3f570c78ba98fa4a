package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/asafarviv55/attendance-system-backend/internal/config"
	"github.com/asafarviv55/attendance-system-backend/internal/models"
	"github.com/asafarviv55/attendance-system-backend/internal/repository"
	"github.com/asafarviv55/attendance-system-backend/internal/security"
)

type fakeUserStore struct {
	byEmail    map[string]models.User
	byReset    map[string]models.User
	resetToken string
	passwords  map[string][]byte
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail:   make(map[string]models.User),
		byReset:   make(map[string]models.User),
		passwords: make(map[string][]byte),
	}
}

func (s *fakeUserStore) Create(_ context.Context, user models.User) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return repository.ErrEmailTaken
	}
	s.byEmail[user.Email] = user
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) FindByResetToken(_ context.Context, token string) (models.User, error) {
	user, ok := s.byReset[token]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) SetResetToken(_ context.Context, id string, token string, expires time.Time) error {
	for _, user := range s.byEmail {
		if user.ID == id {
			user.ResetPasswordToken = &token
			user.ResetPasswordExpires = &expires
			s.byReset[token] = user
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id string, passwordHash []byte) error {
	s.passwords[id] = passwordHash
	return nil
}

type fakeRoleStore struct{}

func (fakeRoleStore) FindByName(_ context.Context, name models.RoleName) (models.Role, error) {
	switch name {
	case models.RoleAdmin, models.RoleManager, models.RoleUser:
		return models.Role{ID: "role_" + string(name), RoleName: name}, nil
	}
	return models.Role{}, repository.ErrRoleNotFound
}

type fakeMailer struct {
	sent []string
}

func (m *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	m.sent = append(m.sent, to)
	return nil
}

func newTestAuthService(users *fakeUserStore, mailer *fakeMailer) *AuthService {
	cfg := &config.AppConfig{}
	cfg.Security.JWTSecret = "auth-service-test"
	cfg.Security.JWTTTL = time.Hour
	cfg.Security.ResetTokenTTL = time.Hour
	return NewAuthService(users, fakeRoleStore{}, mailer, cfg, zerolog.Nop())
}

func TestSignUpAndSignIn(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, &fakeMailer{})

	result, err := svc.SignUp(context.Background(), "Boss@Example.COM", "s3cret-password", models.RoleManager)
	require.NoError(t, err)
	require.Equal(t, models.RoleManager, result.RoleName)

	// Email is normalized on the way in.
	_, exists := users.byEmail["boss@example.com"]
	require.True(t, exists)

	signedIn, err := svc.SignIn(context.Background(), "boss@example.com", "s3cret-password")
	require.NoError(t, err)

	claims, err := security.ParseToken(signedIn.Token, "auth-service-test")
	require.NoError(t, err)
	require.Equal(t, "manager", claims.RoleName)
	require.Equal(t, signedIn.UserID, claims.UserID)
}

func TestSignUpInvalidRole(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), &fakeMailer{})

	_, err := svc.SignUp(context.Background(), "a@b.com", "password123", models.RoleName("overlord"))
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, &fakeMailer{})

	_, err := svc.SignUp(context.Background(), "a@b.com", "password123", models.RoleUser)
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), "a@b.com", "password123", models.RoleUser)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInBadCredentials(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, &fakeMailer{})

	_, err := svc.SignUp(context.Background(), "a@b.com", "password123", models.RoleUser)
	require.NoError(t, err)

	_, err = svc.SignIn(context.Background(), "a@b.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(context.Background(), "nobody@b.com", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	users := newFakeUserStore()
	mailer := &fakeMailer{}
	svc := newTestAuthService(users, mailer)

	_, err := svc.SignUp(context.Background(), "a@b.com", "password123", models.RoleUser)
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "a@b.com"))
	require.Equal(t, []string{"a@b.com"}, mailer.sent)

	// Unknown email reports success and sends nothing.
	require.NoError(t, svc.RequestPasswordReset(context.Background(), "ghost@b.com"))
	require.Len(t, mailer.sent, 1)

	var token string
	for tok := range users.byReset {
		token = tok
	}
	require.NotEmpty(t, token)

	require.NoError(t, svc.ResetPassword(context.Background(), token, "new-password-9"))
	user := users.byEmail["a@b.com"]
	require.NotEmpty(t, users.passwords[user.ID])

	require.ErrorIs(t, svc.ResetPassword(context.Background(), "bogus", "whatever-pass"), ErrInvalidResetToken)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, &fakeMailer{})
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	expired := time.Now().Add(-time.Minute)
	user := models.User{ID: "u1", Email: "a@b.com", ResetPasswordExpires: &expired}
	users.byReset["old-token"] = user

	err := svc.ResetPassword(context.Background(), "old-token", "new-password-9")
	require.ErrorIs(t, err, ErrInvalidResetToken)
}
