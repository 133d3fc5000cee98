// Package identity models who is taking a quiz: an authenticated user or an
// anonymous browser session. The identity kind selects which progress store
// backend is used.
package identity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Identity carries exactly one of UserID or SessionID.
type Identity struct {
	UserID    string
	SessionID string
}

// User returns an authenticated identity.
func User(id string) Identity { return Identity{UserID: id} }

// Session returns an anonymous identity.
func Session(id string) Identity { return Identity{SessionID: id} }

// Anonymous reports whether the identity is an anonymous session.
func (id Identity) Anonymous() bool { return id.UserID == "" }

// Key returns the storage key for the identity.
func (id Identity) Key() string {
	if id.UserID != "" {
		return id.UserID
	}
	return id.SessionID
}

const sessionSuffixLen = 9

var base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewSessionID mints an anonymous session id. Callers persist it so the id
// stays stable across reloads; the service only generates it.
func NewSessionID() string {
	suffix := make([]byte, sessionSuffixLen)
	max := big.NewInt(int64(len(base36)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			suffix[i] = base36[0]
			continue
		}
		suffix[i] = base36[n.Int64()]
	}
	return fmt.Sprintf("anon_%d_%s", time.Now().UnixMilli(), suffix)
}
