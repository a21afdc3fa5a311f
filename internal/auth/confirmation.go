package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"reviewhub/internal/model"
)

// codeBucket is the granularity of the time component mixed into a code.
const codeBucket = 5 * time.Minute

// CodeIssuer derives stateless confirmation codes. A code is an HMAC over the
// server secret, the user id, the user's code epoch and a coarse time bucket:
// it stays valid until the epoch changes or the bucket ages past the TTL, and
// is never persisted anywhere.
type CodeIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodeIssuer creates an issuer with the given secret and validity window.
func NewCodeIssuer(secret string, ttl time.Duration) *CodeIssuer {
	return &CodeIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue derives the confirmation code for the user's current state.
func (i *CodeIssuer) Issue(user *model.User) string {
	bucket := i.now().Unix() / int64(codeBucket.Seconds())
	return i.makeCode(user, bucket)
}

// Verify recomputes the expected code for the user's current state and
// compares in constant time. It is a pure predicate: a wrong, expired or
// malformed code all read as false.
func (i *CodeIssuer) Verify(user *model.User, code string) bool {
	bucketPart, _, ok := strings.Cut(code, "-")
	if !ok {
		return false
	}
	bucket, err := strconv.ParseInt(bucketPart, 36, 64)
	if err != nil {
		return false
	}

	issuedAt := bucket * int64(codeBucket.Seconds())
	age := i.now().Unix() - issuedAt
	if age < 0 || age > int64(i.ttl.Seconds()) {
		return false
	}

	expected := i.makeCode(user, bucket)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1
}

func (i *CodeIssuer) makeCode(user *model.User, bucket int64) string {
	mac := hmac.New(sha256.New, i.secret)
	fmt.Fprintf(mac, "%d:%d:%d", user.ID, user.CodeEpoch, bucket)
	digest := hex.EncodeToString(mac.Sum(nil))[:32]
	return strconv.FormatInt(bucket, 36) + "-" + digest
}
