// Package authz decides note access from the caller's role and ownership.
//
// Single-note fetches distinguish a missing note (404) from an existing note
// the caller may not see (403), matching the API contract; list queries are
// scoped at the repository so other users' notes never reach this layer.
package authz

import "notely/internal/model"

// CanAccess reports whether a caller may read, update or delete a note owned
// by ownerID. Admins may access any note; users only their own.
func CanAccess(role model.Role, callerID, ownerID uint) bool {
	if role == model.RoleAdmin {
		return true
	}
	return callerID == ownerID
}

// SeesAllNotes reports whether list queries for the role are unscoped.
func SeesAllNotes(role model.Role) bool {
	return role == model.RoleAdmin
}
