// Package access holds the ownership gate applied to every mutating
// operation on posts and comments.
package access

import (
	"github.com/google/uuid"

	"github.com/leogic/blog-backend/internal/models"
)

// CanMutate reports whether the actor may update or delete a resource owned
// by ownerID. Admins may mutate anything; everyone else only their own
// resources. Identifiers are normalized through uuid.Parse before comparing,
// so two spellings of the same id match and an unparsable id never does.
func CanMutate(actorID, actorRole, ownerID string) bool {
	if actorRole == models.RoleAdmin {
		return true
	}
	return sameIdentity(actorID, ownerID)
}

func sameIdentity(a, b string) bool {
	ua, err := uuid.Parse(a)
	if err != nil {
		return false
	}
	ub, err := uuid.Parse(b)
	if err != nil {
		return false
	}
	return ua == ub
}
