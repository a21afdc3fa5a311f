package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reviewhub/internal/model"
)

var (
	anon      = AnonymousActor
	user      = Actor{ID: 1, Role: model.RoleUser}
	moderator = Actor{ID: 2, Role: model.RoleModerator}
	admin     = Actor{ID: 3, Role: model.RoleAdmin}
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		res   Resource
		write bool
		owner bool
		want  bool
	}{
		{"anonymous reads catalog", anon, Catalog, false, false, true},
		{"anonymous reads content", anon, Content, false, false, true},
		{"anonymous cannot write catalog", anon, Catalog, true, false, false},
		{"anonymous cannot write content", anon, Content, true, false, false},

		{"user cannot write catalog", user, Catalog, true, false, false},
		{"moderator cannot write catalog", moderator, Catalog, true, false, false},
		{"admin writes catalog", admin, Catalog, true, false, true},

		{"owner edits own content", user, Content, true, true, true},
		{"non-owner cannot edit content", user, Content, true, false, false},
		{"moderator edits any content", moderator, Content, true, false, true},
		{"admin edits any content", admin, Content, true, false, true},

		{"user reads own profile", user, Profile, false, true, true},
		{"user edits own profile", user, Profile, true, true, true},
		{"anonymous has no profile", anon, Profile, false, false, false},

		{"user cannot change own role", user, ProfileRole, true, true, false},
		{"moderator cannot change own role", moderator, ProfileRole, true, true, false},
		{"admin cannot change role via self-service", admin, ProfileRole, true, true, false},

		{"user cannot manage users", user, Users, true, false, false},
		{"moderator cannot manage users", moderator, Users, true, false, false},
		{"moderator cannot list users", moderator, Users, false, false, false},
		{"admin manages users", admin, Users, true, false, true},
		{"admin lists users", admin, Users, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.actor, tt.res, tt.write, tt.owner))
		})
	}
}
