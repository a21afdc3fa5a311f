// Package permission holds the single authorization decision point. Every
// handler-facing policy is a row in a small declarative table evaluated by a
// pure function; no resource type carries its own permission logic.
package permission

import "reviewhub/internal/model"

// Actor is the identity a request acts as.
type Actor struct {
	ID        uint
	Username  string
	Role      model.Role
	Anonymous bool
}

// AnonymousActor is the actor for unauthenticated requests.
var AnonymousActor = Actor{Anonymous: true}

// Resource classifies what a request touches.
type Resource int

const (
	// Catalog covers categories, genres and titles.
	Catalog Resource = iota
	// Content covers reviews and comments.
	Content
	// Profile is the caller's own user record, role field excluded.
	Profile
	// ProfileRole is the role field of the caller's own record.
	ProfileRole
	// Users is the administrative user-management surface.
	Users
)

type rule int

const (
	anyone rule = iota
	authenticated
	ownerOrStaff
	adminOnly
	nobody
)

var policy = map[Resource]struct{ read, write rule }{
	Catalog:     {read: anyone, write: adminOnly},
	Content:     {read: anyone, write: ownerOrStaff},
	Profile:     {read: authenticated, write: authenticated},
	ProfileRole: {read: authenticated, write: nobody},
	Users:       {read: adminOnly, write: adminOnly},
}

// Allowed decides whether actor may act on res. write distinguishes mutating
// from safe-method access; owner reports whether the actor authored the
// specific record, relevant only for Content writes.
func Allowed(actor Actor, res Resource, write, owner bool) bool {
	p, ok := policy[res]
	if !ok {
		return false
	}
	r := p.read
	if write {
		r = p.write
	}

	switch r {
	case anyone:
		return true
	case authenticated:
		return !actor.Anonymous
	case ownerOrStaff:
		if actor.Anonymous {
			return false
		}
		return owner || actor.Role == model.RoleModerator || actor.Role == model.RoleAdmin
	case adminOnly:
		return !actor.Anonymous && actor.Role == model.RoleAdmin
	default:
		return false
	}
}
