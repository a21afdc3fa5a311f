package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reviewhub/internal/model"
)

func TestCodeIssuer_IssueVerify(t *testing.T) {
	issuer := NewCodeIssuer("test-secret", 24*time.Hour)
	user := &model.User{ID: 7, CodeEpoch: 0}

	code := issuer.Issue(user)
	assert.NotEmpty(t, code)
	assert.True(t, issuer.Verify(user, code))

	// deterministic while state is unchanged
	assert.Equal(t, code, issuer.Issue(user))
}

func TestCodeIssuer_EpochChangeInvalidates(t *testing.T) {
	issuer := NewCodeIssuer("test-secret", 24*time.Hour)
	user := &model.User{ID: 7, CodeEpoch: 0}

	code := issuer.Issue(user)
	assert.True(t, issuer.Verify(user, code))

	user.CodeEpoch = time.Now().UnixNano()
	assert.False(t, issuer.Verify(user, code))

	// a fresh code against the new epoch verifies again
	assert.True(t, issuer.Verify(user, issuer.Issue(user)))
}

func TestCodeIssuer_Expiry(t *testing.T) {
	issuer := NewCodeIssuer("test-secret", time.Hour)
	user := &model.User{ID: 3}

	start := time.Now()
	issuer.now = func() time.Time { return start }
	code := issuer.Issue(user)
	assert.True(t, issuer.Verify(user, code))

	issuer.now = func() time.Time { return start.Add(2 * time.Hour) }
	assert.False(t, issuer.Verify(user, code))
}

func TestCodeIssuer_RejectsGarbage(t *testing.T) {
	issuer := NewCodeIssuer("test-secret", time.Hour)
	user := &model.User{ID: 3}

	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"no separator", "deadbeef"},
		{"bad bucket", "!!-deadbeef"},
		{"tampered digest", issuer.Issue(user)[:len(issuer.Issue(user))-1] + "x"},
		{"future bucket", "zzzzzzzz-deadbeef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, issuer.Verify(user, tt.code))
		})
	}
}

func TestCodeIssuer_DifferentUsersDifferentCodes(t *testing.T) {
	issuer := NewCodeIssuer("test-secret", time.Hour)
	alice := &model.User{ID: 1}
	bob := &model.User{ID: 2}

	code := issuer.Issue(alice)
	assert.NotEqual(t, code, issuer.Issue(bob))
	assert.False(t, issuer.Verify(bob, code))
}
