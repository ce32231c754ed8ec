package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leogic/blog-backend/internal/api/validate"
	"github.com/leogic/blog-backend/internal/auth"
	"github.com/leogic/blog-backend/internal/repository"
	"github.com/leogic/blog-backend/internal/repository/memory"
	"github.com/leogic/blog-backend/internal/services"
)

func newUserService() (*services.UserService, *memory.Users) {
	users := memory.NewUsers()
	tm := auth.NewTokenManager("test-secret", "blog-backend", time.Hour)
	return services.NewUserService(users, tm, memory.NewAuditLogs(), nil), users
}

func TestUserService_Register(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	u, token, err := svc.Register(ctx, services.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "user", u.Role)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "secret123", u.PasswordHash)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, services.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, services.RegisterInput{
		Username: "bob", Email: "alice@example.com", Password: "secret123",
	})
	var dup *repository.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, services.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, services.RegisterInput{
		Username: "alice", Email: "other@example.com", Password: "secret123",
	})
	var dup *repository.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "username", dup.Field)
}

func TestUserService_Register_Validation(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, services.RegisterInput{
		Username: "a-username-over-twenty-chars",
		Email:    "bad-email",
		Password: "short",
	})
	var errs validate.Errs
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 3)
}

func TestUserService_Login_NonEnumerable(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, services.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	// Wrong password for an existing account and a nonexistent account
	// must be indistinguishable.
	_, _, errWrongPass := svc.Login(ctx, "alice@example.com", "wrong-password")
	_, _, errNoUser := svc.Login(ctx, "nobody@example.com", "secret123")

	assert.ErrorIs(t, errWrongPass, services.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, services.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

func TestUserService_Login_Success(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	reg, _, err := svc.Register(ctx, services.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	token, u, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, reg.ID, u.ID)
}

func TestUserService_UpdateProfile_PasswordChangeRequiresCurrent(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	u, _, err := svc.Register(ctx, services.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, u.ID, services.ProfileUpdate{
		Username:        "alice",
		Email:           "alice@example.com",
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	assert.ErrorIs(t, err, services.ErrWrongPassword)

	_, err = svc.UpdateProfile(ctx, u.ID, services.ProfileUpdate{
		Username:        "alice",
		Email:           "alice@example.com",
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice@example.com", "newsecret")
	assert.NoError(t, err)
	_, _, err = svc.Login(ctx, "alice@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUserService_UpdateProfile_FieldsAndPhoto(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	u, _, err := svc.Register(ctx, services.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
		PhotoURL: "https://img.example.com/a.png",
	})
	require.NoError(t, err)

	// Username/email change without touching the password.
	out, err := svc.UpdateProfile(ctx, u.ID, services.ProfileUpdate{
		Username: "alice2", Email: "alice2@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice2", out.Username)
	assert.Equal(t, "https://img.example.com/a.png", out.ProfilePhoto)

	out, err = svc.UpdateProfile(ctx, u.ID, services.ProfileUpdate{
		Username: "alice2", Email: "alice2@example.com", RemovePhoto: true,
	})
	require.NoError(t, err)
	assert.Empty(t, out.ProfilePhoto)
}

func TestUserService_UpdateProfile_DuplicateEmail(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, services.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	bob, _, err := svc.Register(ctx, services.RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, bob.ID, services.ProfileUpdate{
		Username: "bob", Email: "alice@example.com",
	})
	var dup *repository.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)
}
