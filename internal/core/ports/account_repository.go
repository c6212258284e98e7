package ports

import (
	"context"

	"github.com/barangay-bis/records-system/internal/core/domain"
)

// AccountPatch carries the subset of columns to modify on an update. Nil
// fields are left untouched. PasswordHash is already hashed by the caller;
// plaintext never crosses this boundary.
type AccountPatch struct {
	Username     *string
	PasswordHash *string
	Role         *domain.Role
}

// IsEmpty reports whether the patch modifies nothing.
func (p AccountPatch) IsEmpty() bool {
	return p.Username == nil && p.PasswordHash == nil && p.Role == nil
}

// AccountRepository defines the persistence interface for accounts. The
// store's unique constraint on username is the authoritative uniqueness
// guard; Insert and Update surface it as domain.ErrUsernameTaken.
type AccountRepository interface {
	FindAll(ctx context.Context) ([]*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	Insert(ctx context.Context, username, passwordHash string, role domain.Role) (int64, error)
	Update(ctx context.Context, id int64, patch AccountPatch) error
	Delete(ctx context.Context, id int64) error
}
