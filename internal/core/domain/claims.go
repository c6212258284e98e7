package domain

import "time"

// Claims is the set of facts embedded in a signed session token. There is no
// server-side session record: once issued, a token stands on its own until
// ExpiresAt passes, even if the account is changed or deleted in the meantime.
type Claims struct {
	AccountID int64
	Username  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
