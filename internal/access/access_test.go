package access_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/leogic/blog-backend/internal/access"
	"github.com/leogic/blog-backend/internal/models"
)

func TestCanMutate_Owner(t *testing.T) {
	owner := uuid.NewString()
	assert.True(t, access.CanMutate(owner, models.RoleUser, owner))
}

func TestCanMutate_OtherUser(t *testing.T) {
	assert.False(t, access.CanMutate(uuid.NewString(), models.RoleUser, uuid.NewString()))
}

func TestCanMutate_Admin(t *testing.T) {
	// Admins may mutate resources they do not own.
	assert.True(t, access.CanMutate(uuid.NewString(), models.RoleAdmin, uuid.NewString()))
}

func TestCanMutate_NormalizesIDSpelling(t *testing.T) {
	id := uuid.New()
	upper := "urn:uuid:" + id.String() // alternate accepted spelling
	assert.True(t, access.CanMutate(upper, models.RoleUser, id.String()))
}

func TestCanMutate_UnparsableIDNeverMatches(t *testing.T) {
	assert.False(t, access.CanMutate("not-a-uuid", models.RoleUser, "not-a-uuid"))
	assert.False(t, access.CanMutate("", models.RoleUser, ""))
}
