// Package http provides the HTTP authorization pipeline: identity extraction,
// authentication, liveness, and capability enforcement middleware, plus the
// session and account management handlers.
package http

import (
	"context"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
)

// identityKey is a context key type for storing authenticated identities.
type identityKey struct{}

// capabilitiesKey is a context key type for storing resolved capability sets.
type capabilitiesKey struct{}

// WithIdentity stores an authenticated identity in the context.
// This is called by the authentication middleware after token verification.
func WithIdentity(ctx context.Context, identity *authDomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the authenticated identity from the context.
// Returns (identity, true) if present, or (nil, false) if no identity was set.
func GetIdentity(ctx context.Context) (*authDomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*authDomain.Identity)
	return identity, ok
}

// WithCapabilities stores the resolved capability set in the context.
// This is called by the enforcement middleware after resolution, so handlers
// can consult the effective set without a second resolution pass.
func WithCapabilities(ctx context.Context, set authDomain.CapabilitySet) context.Context {
	return context.WithValue(ctx, capabilitiesKey{}, set)
}

// GetCapabilities retrieves the resolved capability set from the context.
// Returns (set, true) if present, or (nil, false) if no set was stored.
func GetCapabilities(ctx context.Context) (authDomain.CapabilitySet, bool) {
	set, ok := ctx.Value(capabilitiesKey{}).(authDomain.CapabilitySet)
	return set, ok
}
