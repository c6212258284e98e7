package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/barangay-bis/records-system/internal/core/domain"
)

func TestAuthenticator_IssueAndVerify(t *testing.T) {
	a := NewAuthenticator("secret", time.Hour)

	tok, err := a.Issue(42, "alice", domain.RoleStaff)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := a.Verify(tok)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.AccountID != 42 || claims.Username != "alice" || claims.Role != domain.RoleStaff {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatalf("expiry %v must follow issuance %v", claims.ExpiresAt, claims.IssuedAt)
	}
	if got, want := claims.ExpiresAt.Unix()-claims.IssuedAt.Unix(), int64(3600); got != want {
		t.Fatalf("expected %ds lifetime, got %ds", want, got)
	}
}

func TestAuthenticator_DefaultTTL(t *testing.T) {
	a := NewAuthenticator("secret", 0)

	tok, err := a.Issue(1, "alice", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	claims, err := a.Verify(tok)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt); got != DefaultTTL {
		t.Fatalf("expected %v lifetime, got %v", DefaultTTL, got)
	}
}

func TestAuthenticator_Expired(t *testing.T) {
	a := NewAuthenticator("secret", time.Nanosecond)

	tok, err := a.Issue(1, "alice", domain.RoleStaff)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := a.Verify(tok); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestAuthenticator_WrongKey(t *testing.T) {
	a := NewAuthenticator("secret", time.Hour)
	b := NewAuthenticator("other-secret", time.Hour)

	tok, err := a.Issue(1, "alice", domain.RoleStaff)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := b.Verify(tok); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestAuthenticator_Tampered(t *testing.T) {
	a := NewAuthenticator("secret", time.Hour)

	tok, err := a.Issue(1, "alice", domain.RoleStaff)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Flip a character in the signature segment.
	last := tok[len(tok)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := tok[:len(tok)-1] + string(flipped)

	_, err = a.Verify(tampered)
	if !errors.Is(err, ErrSignatureInvalid) && !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrSignatureInvalid or ErrMalformed, got %v", err)
	}
}

func TestAuthenticator_Malformed(t *testing.T) {
	a := NewAuthenticator("secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b", strings.Repeat("x", 64)} {
		if _, err := a.Verify(tok); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Verify(%q): expected ErrMalformed, got %v", tok, err)
		}
	}
}
