package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leogic/blog-backend/internal/auth"
	"github.com/leogic/blog-backend/internal/models"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", "blog-backend", time.Hour)
	userID := uuid.NewString()

	token, err := tm.Issue(userID, models.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, "blog-backend", claims.Issuer)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", "blog-backend", -time.Minute)

	token, err := tm.Issue(uuid.NewString(), models.RoleUser)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := auth.NewTokenManager("secret-a", "blog-backend", time.Hour)
	other := auth.NewTokenManager("secret-b", "blog-backend", time.Hour)

	token, err := tm.Issue(uuid.NewString(), models.RoleAdmin)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", "blog-backend", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.Verify(tok)
		assert.ErrorIs(t, err, auth.ErrInvalidToken, "token %q", tok)
	}
}

func TestPassword_HashAndVerify(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, auth.VerifyPassword("hunter22", hash))
	assert.Error(t, auth.VerifyPassword("hunter23", hash))
}
