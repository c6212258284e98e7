package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/barangay-bis/records-system/internal/core/domain"
	"github.com/barangay-bis/records-system/internal/core/ports"
)

type accountService struct {
	repo   ports.AccountRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

// NewAccountService returns an AccountService implementation layering
// validation and uniqueness rules over the repository. The repository's
// unique constraint remains the authoritative guard; the service's
// FindByUsername lookups are advisory pre-checks for early rejection.
func NewAccountService(
	repo ports.AccountRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
) ports.AccountService {
	return &accountService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		log:    log,
	}
}

// List returns all accounts ordered by id ascending.
func (s *accountService) List(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Get returns a single account by id.
func (s *accountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// Create validates the input, hashes the password and inserts the account.
func (s *accountService) Create(ctx context.Context, username, password, role string) (*domain.Account, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	// Advisory pre-check. The insert below still races against concurrent
	// creators; the unique constraint settles who wins.
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("create account: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("create account: hash password: %w", err)
	}

	id, err := s.repo.Insert(ctx, username, hash, parsedRole)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info().Int64("user_id", id).Str("username", username).Str("role", role).Msg("account created")

	return &domain.Account{ID: id, Username: username, Role: parsedRole}, nil
}

// Update applies any non-empty subset of {username, password, role}.
func (s *accountService) Update(ctx context.Context, id int64, in ports.UpdateAccountInput) error {
	if in.Username == nil && in.Password == nil && in.Role == nil {
		return fmt.Errorf("%w: at least one field must be provided", domain.ErrInvalidInput)
	}

	var patch ports.AccountPatch

	if in.Role != nil {
		role, err := domain.ParseRole(*in.Role)
		if err != nil {
			return err
		}
		patch.Role = &role
	}
	if in.Username != nil {
		if *in.Username == "" {
			return fmt.Errorf("%w: username cannot be empty", domain.ErrInvalidInput)
		}
		patch.Username = in.Username
	}
	if in.Password != nil && *in.Password == "" {
		return fmt.Errorf("%w: password cannot be empty", domain.ErrInvalidInput)
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}
		return fmt.Errorf("update account: %w", err)
	}

	// Uniqueness re-check excluding the account's own id.
	if patch.Username != nil {
		existing, err := s.repo.FindByUsername(ctx, *patch.Username)
		switch {
		case err == nil && existing.ID != id:
			return domain.ErrUsernameTaken
		case err != nil && !errors.Is(err, domain.ErrAccountNotFound):
			return fmt.Errorf("update account: %w", err)
		}
	}

	if in.Password != nil {
		hash, err := s.hasher.Hash(ctx, *in.Password)
		if err != nil {
			return fmt.Errorf("update account: hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrUsernameTaken) {
			return err
		}
		return fmt.Errorf("update account: %w", err)
	}

	s.log.Info().Int64("user_id", id).Msg("account updated")
	return nil
}

// Delete removes an account, reporting NotFound when the id does not exist.
func (s *accountService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}
		return fmt.Errorf("delete account: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}
		return fmt.Errorf("delete account: %w", err)
	}

	s.log.Info().Int64("user_id", id).Msg("account deleted")
	return nil
}

// Login authenticates by username and password and issues a session token.
// Unknown usernames and wrong passwords fail identically so the response
// never reveals which credential was bad.
func (s *accountService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	if username == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(ctx, password, account.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(account.ID, account.Username, account.Role)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Debug().Str("username", username).Str("role", string(account.Role)).Msg("login successful")
	return tok, account, nil
}
