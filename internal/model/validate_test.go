package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"simple", "alice", false},
		{"allowed punctuation", "a.b@c+d-e_f", false},
		{"empty", "", true},
		{"space", "a b", true},
		{"slash", "a/b", true},
		{"me lowercase", "me", true},
		{"me uppercase", "ME", true},
		{"me mixed case", "mE", true},
		{"mesa is fine", "mesa", false},
		{"too long", strings.Repeat("a", 151), true},
		{"at limit", strings.Repeat("a", 150), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"simple", "a@x.com", false},
		{"plus tag", "a+tag@x.co.uk", false},
		{"empty", "", true},
		{"no at", "ax.com", true},
		{"no domain dot", "a@xcom", true},
		{"too long", strings.Repeat("a", 250) + "@x.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleModerator.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}
