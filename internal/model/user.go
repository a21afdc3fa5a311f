package model

import "time"

// Role is the closed set of access levels a user can hold.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered identity.
//
// CodeEpoch is the volatile state facet confirmation codes bind to: advancing
// it invalidates every code issued before the change.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:254;not null"`
	FirstName string    `json:"first_name,omitempty" gorm:"size:150"`
	LastName  string    `json:"last_name,omitempty" gorm:"size:150"`
	Bio       string    `json:"bio,omitempty" gorm:"type:text"`
	Role      Role      `json:"role" gorm:"size:50;not null;default:'user'"`
	CodeEpoch int64     `json:"-" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool { return u.Role == RoleModerator }

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
