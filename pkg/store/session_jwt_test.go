package store

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestJWTSessionRoundTrip(t *testing.T) {
	sessions, err := NewJWTSessionStore("test-secret", time.Hour, nil)
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	token, err := sessions.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	userID, ok, err := sessions.GetUserIDByToken(token)
	if err != nil {
		t.Fatalf("get user by token: %v", err)
	}
	if !ok || userID != "user-1" {
		t.Fatalf("expected user-1, got ok=%v id=%q", ok, userID)
	}
}

func TestJWTSessionRejectsGarbageAndForeignTokens(t *testing.T) {
	sessions, err := NewJWTSessionStore("test-secret", time.Hour, nil)
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	if _, ok, err := sessions.GetUserIDByToken("not-a-jwt"); ok || err != nil {
		t.Fatalf("garbage token must not validate: ok=%v err=%v", ok, err)
	}

	other, err := NewJWTSessionStore("different-secret", time.Hour, nil)
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	token, err := other.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, ok, err := sessions.GetUserIDByToken(token); ok || err != nil {
		t.Fatalf("foreign-secret token must not validate: ok=%v err=%v", ok, err)
	}
}

func TestJWTSessionExpiry(t *testing.T) {
	sessions, err := NewJWTSessionStore("test-secret", time.Millisecond, nil)
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	token, err := sessions.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	// exp is serialized at second precision, so wait out the boundary.
	time.Sleep(1100 * time.Millisecond)
	if _, ok, err := sessions.GetUserIDByToken(token); ok || err != nil {
		t.Fatalf("expired token must not validate: ok=%v err=%v", ok, err)
	}
}

func TestJWTSessionLogoutRevokes(t *testing.T) {
	sessions, err := NewJWTSessionStore("test-secret", time.Hour, nil)
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	token, err := sessions.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := sessions.DeleteSession(token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, ok, err := sessions.GetUserIDByToken(token); ok || err != nil {
		t.Fatalf("revoked token must not validate: ok=%v err=%v", ok, err)
	}

	// Revoking one token must not touch another for the same user.
	fresh, err := sessions.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, ok, err := sessions.GetUserIDByToken(fresh); !ok || err != nil {
		t.Fatalf("fresh token should still validate: ok=%v err=%v", ok, err)
	}
}

func TestJWTSessionLogoutWithRedisRevoker(t *testing.T) {
	srv, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer srv.Close()

	sessions, err := NewJWTSessionStore("test-secret", time.Hour, NewRedisTokenRevoker(srv.Addr(), ""))
	if err != nil {
		t.Fatalf("new session store: %v", err)
	}
	token, err := sessions.NewSession("user-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := sessions.DeleteSession(token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, ok, err := sessions.GetUserIDByToken(token); ok || err != nil {
		t.Fatalf("revoked token must not validate: ok=%v err=%v", ok, err)
	}
	if len(srv.Keys()) == 0 {
		t.Fatalf("expected a revocation key in redis")
	}
}

func TestMemoryTokenRevokerExpires(t *testing.T) {
	r := NewMemoryTokenRevoker()
	if err := r.Revoke("tok", 5*time.Millisecond); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked, _ := r.IsRevoked("tok"); !revoked {
		t.Fatalf("expected token to be revoked")
	}
	time.Sleep(10 * time.Millisecond)
	if revoked, _ := r.IsRevoked("tok"); revoked {
		t.Fatalf("expected revocation to lapse after ttl")
	}
}
