package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leogic/blog-backend/internal/api/validate"
)

func TestCollect(t *testing.T) {
	err := validate.Collect(
		validate.Required("username", "alice"),
		validate.Email("email", "alice@example.com"),
	)
	assert.NoError(t, err)

	err = validate.Collect(
		validate.Required("title", "  "),
		validate.MaxLen("username", "this-username-is-way-too-long", 20),
		validate.MinLen("password", "abc", 6),
		validate.Email("email", "not-an-email"),
	)
	require.Error(t, err)

	var errs validate.Errs
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 4)
	assert.Equal(t, "title", errs[0].Field)
	assert.Contains(t, err.Error(), "email")
}
