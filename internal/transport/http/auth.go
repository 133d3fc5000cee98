package http

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"counting-sheep-service/internal/identity"
)

const sessionHeader = "X-Session-Id"

// Authenticator resolves the request identity: a JWT bearer token yields an
// authenticated user, otherwise the client-supplied session id (or a freshly
// minted one) yields an anonymous identity.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// IdentityFromRequest never fails: a bad token simply degrades to anonymous.
func (a *Authenticator) IdentityFromRequest(r *http.Request) identity.Identity {
	if userID := a.userID(r); userID != "" {
		return identity.User(userID)
	}
	if sid := r.Header.Get(sessionHeader); sid != "" {
		return identity.Session(sid)
	}
	if sid := r.URL.Query().Get("session"); sid != "" {
		return identity.Session(sid)
	}
	return identity.Session(identity.NewSessionID())
}

func (a *Authenticator) userID(r *http.Request) string {
	if len(a.secret) == 0 {
		return ""
	}
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
