package ports

import (
	"context"

	"github.com/barangay-bis/records-system/internal/core/domain"
)

// PasswordHasher produces and checks salted adaptive password digests.
// Hash output embeds its own salt, so two hashes of the same plaintext are
// never equal and hashes must only be compared through Verify.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Verify reports whether plaintext matches the stored hash. A malformed
	// hash value yields false, not an error.
	Verify(ctx context.Context, plaintext, hash string) bool
}

// TokenIssuer signs session claims into a transport-safe token string.
type TokenIssuer interface {
	Issue(accountID int64, username string, role domain.Role) (string, error)
}

// TokenVerifier checks a token's signature and expiry and reconstructs its
// claims. Failures are distinguishable via the token package sentinels.
type TokenVerifier interface {
	Verify(token string) (domain.Claims, error)
}
