package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/barangay-bis/records-system/internal/core/domain"
	"github.com/barangay-bis/records-system/internal/core/ports"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint breaches.
const uniqueViolation = "23505"

const accountColumns = "user_id, username, password, role, created_at"

// AccountRepository implements ports.AccountRepository against the accounts
// table. The username unique constraint is the authoritative uniqueness
// guard; any 23505 from Insert or Update surfaces as ErrUsernameTaken.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindAll(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM accounts ORDER BY user_id ASC")
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("find accounts: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE user_id = $1", id)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE username = $1", username)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by username: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) Insert(ctx context.Context, username, passwordHash string, role domain.Role) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO accounts (username, password, role) VALUES ($1, $2, $3) RETURNING user_id",
		username, passwordHash, role,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrUsernameTaken
		}
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}

func (r *AccountRepository) Update(ctx context.Context, id int64, patch ports.AccountPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	var (
		sets []string
		args []any
	)
	if patch.Username != nil {
		args = append(args, *patch.Username)
		sets = append(sets, fmt.Sprintf("username = $%d", len(args)))
	}
	if patch.PasswordHash != nil {
		args = append(args, *patch.PasswordHash)
		sets = append(sets, fmt.Sprintf("password = $%d", len(args)))
	}
	if patch.Role != nil {
		args = append(args, *patch.Role)
		sets = append(sets, fmt.Sprintf("role = $%d", len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE accounts SET %s WHERE user_id = $%d",
		strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if affected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM accounts WHERE user_id = $1", id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if affected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*domain.Account, error) {
	var account domain.Account
	if err := s.Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
