package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Capability represents one grantable permission, identified to endpoints by
// its display name (e.g., "manage-accounts", "view-reports").
type Capability struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// CapabilitySet is the effective, resolved set of capability names for an
// account at request time. Membership is name-based because endpoints declare
// their requirements by display name.
type CapabilitySet map[string]struct{}

// NewCapabilitySet builds a set from capability entities, skipping soft-deleted
// entries so a stale grant row can never resurrect a removed capability.
func NewCapabilitySet(capabilities ...*Capability) CapabilitySet {
	set := make(CapabilitySet, len(capabilities))
	for _, capability := range capabilities {
		if capability == nil || capability.DeletedAt != nil {
			continue
		}
		set[capability.Name] = struct{}{}
	}
	return set
}

// Contains reports whether the set includes the named capability.
func (s CapabilitySet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// ContainsAny reports whether at least one of the given names is present.
// This is the enforcement predicate: endpoint requirements are a disjunction,
// so a single matching name is enough.
func (s CapabilitySet) ContainsAny(names []string) bool {
	for _, name := range names {
		if _, ok := s[name]; ok {
			return true
		}
	}
	return false
}

// Names returns the sorted capability names for stable responses and logs.
func (s CapabilitySet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
