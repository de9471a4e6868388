package auth

import "userhub/internal/model"

// Actor is the authenticated identity performing a request, derived from a
// verified session token.
type Actor struct {
	ID   uint
	Role model.Role
}

// CanViewAll reports whether the actor may list every user.
func CanViewAll(actor Actor) bool {
	return actor.Role.IsAdmin()
}

// CanViewOne reports whether the actor may read the target user.
func CanViewOne(actor Actor, target uint) bool {
	return actor.Role.IsAdmin() || actor.ID == target
}

// CanUpdate reports whether the actor may modify the target user.
func CanUpdate(actor Actor, target uint) bool {
	return actor.Role.IsAdmin() || actor.ID == target
}

// CanChangeRole reports whether the actor may grant or change roles.
func CanChangeRole(actor Actor) bool {
	return actor.Role.IsAdmin()
}

// CanDelete reports whether the actor may delete the target user.
// Self-deletion is denied regardless of role.
func CanDelete(actor Actor, target uint) bool {
	return actor.Role.IsAdmin() && actor.ID != target
}
