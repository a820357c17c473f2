package domain

import "context"

// IdentityProvider is the read side of the identity/subscription system.
// Tier lookups that fail should be treated as TierFree by callers, never
// as a fatal error.
type IdentityProvider interface {
	OwnerTier(ctx context.Context, ownerID string) (Tier, error)
	RelationshipAge(ctx context.Context, referrerID, refereeID string) (int, error)
}
