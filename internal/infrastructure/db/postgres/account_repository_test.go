package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/barangay-bis/records-system/internal/core/domain"
	"github.com/barangay-bis/records-system/internal/core/ports"
)

func newMockRepo(t *testing.T) (*AccountRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return NewAccountRepository(db), mock, func() { _ = db.Close() }
}

func accountRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	return sqlmock.NewRows([]string{"user_id", "username", "password", "role", "created_at"})
}

func TestAccountRepository_FindAll(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT user_id, username, password, role, created_at FROM accounts ORDER BY user_id ASC`).
		WillReturnRows(accountRows(t).
			AddRow(1, "alice", "$2a$10$hash", "Admin", now).
			AddRow(2, "bob", "$2a$10$hash", "Staff", now))

	accounts, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].ID != 1 || accounts[0].Username != "alice" || accounts[0].Role != domain.RoleAdmin {
		t.Fatalf("unexpected first account: %+v", accounts[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_FindByID(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT user_id, username, password, role, created_at FROM accounts WHERE user_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(t).AddRow(1, "alice", "$2a$10$hash", "Staff", time.Now()))

	account, err := repo.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if account.Username != "alice" || account.PasswordHash != "$2a$10$hash" {
		t.Fatalf("unexpected account: %+v", account)
	}
}

func TestAccountRepository_FindByID_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT user_id, username, password, role, created_at FROM accounts WHERE user_id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(accountRows(t))

	if _, err := repo.FindByID(context.Background(), 99); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountRepository_FindByUsername_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT user_id, username, password, role, created_at FROM accounts WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnRows(accountRows(t))

	if _, err := repo.FindByUsername(context.Background(), "ghost"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountRepository_Insert(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO accounts \(username, password, role\) VALUES \(\$1, \$2, \$3\) RETURNING user_id`).
		WithArgs("alice", "$2a$10$hash", "Staff").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(5))

	id, err := repo.Insert(context.Background(), "alice", "$2a$10$hash", domain.RoleStaff)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id != 5 {
		t.Fatalf("expected id 5, got %d", id)
	}
}

// The unique constraint, not the advisory pre-check, settles duplicate races.
func TestAccountRepository_Insert_UniqueViolation(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs("alice", "$2a$10$hash", "Staff").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_username_key"})

	if _, err := repo.Insert(context.Background(), "alice", "$2a$10$hash", domain.RoleStaff); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAccountRepository_Update_Partial(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	role := domain.RoleAdmin
	mock.ExpectExec(`UPDATE accounts SET role = \$1 WHERE user_id = \$2`).
		WithArgs("Admin", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), 1, ports.AccountPatch{Role: &role}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAccountRepository_Update_AllFields(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	username := "alice2"
	hash := "$2a$10$newhash"
	role := domain.RoleStaff
	mock.ExpectExec(`UPDATE accounts SET username = \$1, password = \$2, role = \$3 WHERE user_id = \$4`).
		WithArgs("alice2", "$2a$10$newhash", "Staff", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	patch := ports.AccountPatch{Username: &username, PasswordHash: &hash, Role: &role}
	if err := repo.Update(context.Background(), 1, patch); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestAccountRepository_Update_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	role := domain.RoleAdmin
	mock.ExpectExec(`UPDATE accounts SET role = \$1 WHERE user_id = \$2`).
		WithArgs("Admin", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), 99, ports.AccountPatch{Role: &role}); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountRepository_Update_UniqueViolation(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	username := "bob"
	mock.ExpectExec(`UPDATE accounts SET username = \$1 WHERE user_id = \$2`).
		WithArgs("bob", int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_username_key"})

	if err := repo.Update(context.Background(), 1, ports.AccountPatch{Username: &username}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAccountRepository_Delete(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM accounts WHERE user_id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestAccountRepository_Delete_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM accounts WHERE user_id = \$1`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 99); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
