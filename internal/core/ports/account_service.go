package ports

import (
	"context"

	"github.com/barangay-bis/records-system/internal/core/domain"
)

// UpdateAccountInput is the raw, unvalidated payload of an account update.
// Nil means the field was not supplied. Password arrives in plaintext and is
// hashed by the service before it reaches the repository.
type UpdateAccountInput struct {
	Username *string
	Password *string
	Role     *string
}

// AccountService exposes the account lifecycle and login operations consumed
// by the HTTP handlers.
type AccountService interface {
	List(ctx context.Context) ([]*domain.Account, error)
	Get(ctx context.Context, id int64) (*domain.Account, error)
	Create(ctx context.Context, username, password, role string) (*domain.Account, error)
	Update(ctx context.Context, id int64, in UpdateAccountInput) error
	Delete(ctx context.Context, id int64) error
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)
}
