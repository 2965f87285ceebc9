package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role groups accounts that share a default capability set.
// One role may be referenced by many accounts.
type Role struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// RoleCapability is the many-to-many association granting a capability to every
// account holding the role.
type RoleCapability struct {
	RoleID       uuid.UUID
	CapabilityID uuid.UUID
}

// AccountCapability is the many-to-many association granting a capability to a
// single account independent of its role.
type AccountCapability struct {
	AccountID    uuid.UUID
	CapabilityID uuid.UUID
}
