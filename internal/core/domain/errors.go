package domain

import "errors"

// Sentinel errors shared across the service, store and HTTP layers. The
// central error handler maps each one to a deterministic HTTP status.
var (
	// ErrInvalidInput marks malformed or missing request data. Wrap it with
	// fmt.Errorf("%w: detail") so the detail survives to the response body.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAccountNotFound is returned when no account exists for a given id.
	ErrAccountNotFound = errors.New("account not found")

	// ErrUsernameTaken is returned for duplicate usernames, whether caught by
	// the advisory pre-check or by the database unique constraint.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// login failures. The two cases are intentionally indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrForbidden is returned when a valid token carries an insufficient role.
	ErrForbidden = errors.New("access forbidden")
)
