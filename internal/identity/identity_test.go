package identity

import (
	"strings"
	"testing"
)

func TestIdentityKinds(t *testing.T) {
	u := User("u1")
	if u.Anonymous() || u.Key() != "u1" {
		t.Fatalf("user identity: anonymous=%v key=%q", u.Anonymous(), u.Key())
	}
	s := Session("anon_1_abc")
	if !s.Anonymous() || s.Key() != "anon_1_abc" {
		t.Fatalf("session identity: anonymous=%v key=%q", s.Anonymous(), s.Key())
	}
}

func TestNewSessionIDFormat(t *testing.T) {
	id := NewSessionID()
	parts := strings.SplitN(id, "_", 3)
	if len(parts) != 3 || parts[0] != "anon" {
		t.Fatalf("unexpected session id %q", id)
	}
	if len(parts[2]) != 9 {
		t.Fatalf("expected 9-char suffix, got %q", parts[2])
	}
	for _, r := range parts[2] {
		if !strings.ContainsRune(base36, r) {
			t.Fatalf("suffix %q contains %q outside base36", parts[2], r)
		}
	}
	if NewSessionID() == id {
		t.Fatalf("expected distinct session ids")
	}
}
