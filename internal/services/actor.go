package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/showcall/showcall-backend/internal/models"
	"github.com/showcall/showcall-backend/internal/permissions"
)

// ErrNotAuthorized means the caller lacks the capability for the operation.
// Fail-closed: the operation is never attempted.
var ErrNotAuthorized = errors.New("not authorized")

// Actor identifies the caller of a privileged operation.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) Can(cap permissions.Capability) bool {
	return permissions.ForRole(a.Role).Has(cap)
}

func ActorFromProfile(p *models.UserProfile) Actor {
	if p == nil {
		return Actor{}
	}
	return Actor{UserID: p.UserID, Role: p.Role}
}
