// Package perm is the single place permission decisions are made.
// Handlers only translate a deny into an HTTP status, they never
// re-implement role arithmetic.
package perm

import (
	"github.com/google/uuid"

	"github.com/playproof-io/footage-web/models"
)

// Level is the required permission level for an operation, in
// ascending strictness.
type Level int

const (
	// LevelOwner allows the resource owner or anyone with an
	// elevated role.
	LevelOwner Level = iota
	// LevelModerator allows moderators and admins.
	LevelModerator
	// LevelAdmin allows admins only.
	LevelAdmin
)

// Evaluate is a pure predicate deciding whether the caller may
// perform an operation gated at the given level on a resource owned
// by ownerID. A blacklisted caller is denied regardless of anything
// else.
func Evaluate(callerID uuid.UUID, role models.Role, ownerID uuid.UUID, blacklisted bool, level Level) bool {
	if blacklisted {
		return false
	}
	switch level {
	case LevelOwner:
		return callerID == ownerID || role.Rank() >= models.RoleModerator.Rank()
	case LevelModerator:
		return role.Rank() >= models.RoleModerator.Rank()
	case LevelAdmin:
		return role.Rank() >= models.RoleAdmin.Rank()
	default:
		return false
	}
}
