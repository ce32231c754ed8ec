package services

import (
	"context"
	"strings"

	"github.com/leogic/blog-backend/internal/api/validate"
	"github.com/leogic/blog-backend/internal/auth"
	"github.com/leogic/blog-backend/internal/models"
	repo "github.com/leogic/blog-backend/internal/repository"
	"github.com/leogic/blog-backend/internal/worker"
)

type UserService struct {
	users repo.Users
	tm    *auth.TokenManager
	audit *auditor
}

func NewUserService(users repo.Users, tm *auth.TokenManager, logs repo.AuditLogs, wp *worker.Pool) *UserService {
	return &UserService{users: users, tm: tm, audit: &auditor{logs: logs, wp: wp}}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	PhotoURL string
}

// Register creates the account and signs it in, returning the new user and
// a bearer token. Username/email conflicts come back as DuplicateError.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (models.User, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Collect(
		validate.Required("username", in.Username),
		validate.MaxLen("username", in.Username, models.MaxUsernameLen),
		validate.Required("email", in.Email),
		validate.Email("email", in.Email),
		validate.Required("password", in.Password),
		validate.MinLen("password", in.Password, models.MinPasswordLen),
	); err != nil {
		return models.User{}, "", err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, "", err
	}

	u, err := s.users.Create(ctx, models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		ProfilePhoto: in.PhotoURL,
		Role:         models.RoleUser,
	})
	if err != nil {
		return models.User{}, "", err
	}

	token, err := s.tm.Issue(u.ID, u.Role)
	if err != nil {
		return models.User{}, "", err
	}
	s.audit.record("user", u.ID, "registered", nil)
	return u, token, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}
	token, err := s.tm.Issue(u.ID, u.Role)
	if err != nil {
		return "", models.User{}, err
	}
	s.audit.record("user", u.ID, "logged_in", nil)
	return token, u, nil
}

func (s *UserService) Current(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

type ProfileUpdate struct {
	Username        string
	Email           string
	PhotoURL        *string
	RemovePhoto     bool
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile changes username/email/photo freely; a password change is
// accepted only after the current password verifies against the stored hash.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Collect(
		validate.Required("username", in.Username),
		validate.MaxLen("username", in.Username, models.MaxUsernameLen),
		validate.Required("email", in.Email),
		validate.Email("email", in.Email),
	); err != nil {
		return models.User{}, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	u.Username = in.Username
	u.Email = in.Email
	switch {
	case in.RemovePhoto:
		u.ProfilePhoto = ""
	case in.PhotoURL != nil:
		u.ProfilePhoto = *in.PhotoURL
	}

	if in.NewPassword != "" {
		if err := validate.Collect(
			validate.MinLen("password", in.NewPassword, models.MinPasswordLen),
		); err != nil {
			return models.User{}, err
		}
		if err := auth.VerifyPassword(in.CurrentPassword, u.PasswordHash); err != nil {
			return models.User{}, ErrWrongPassword
		}
		hash, err := auth.HashPassword(in.NewPassword)
		if err != nil {
			return models.User{}, err
		}
		u.PasswordHash = hash
	}

	out, err := s.users.Update(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	s.audit.record("user", u.ID, "profile_updated", nil)
	return out, nil
}
