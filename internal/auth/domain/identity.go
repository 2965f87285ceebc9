package domain

import (
	"github.com/google/uuid"
)

// Identity is the minimal claim set carried by a bearer token: who the account
// is, nothing about what it may do. Capabilities are resolved per request
// against live state, never embedded in the token.
type Identity struct {
	AccountID uuid.UUID
	Username  string
}
