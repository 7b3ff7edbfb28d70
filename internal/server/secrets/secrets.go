// Package secrets isolates private signing keys behind a capability
// interface so their confidentiality does not share an access-control
// boundary with public metadata. Production deployments can swap the
// Postgres implementation for an external vault without touching the
// crypto core or the services that depend on it.
package secrets

import "context"

// Store holds one private signing key per owner.
type Store interface {
	// GetSigningKey returns the owner's PEM private key, or
	// common.ErrorNotFound if none is stored.
	GetSigningKey(ctx context.Context, ownerID string) (string, error)

	// PutSigningKey stores the owner's PEM private key. A key is written
	// once at account creation.
	PutSigningKey(ctx context.Context, ownerID string, privatePEM string) error

	// RotateSigningKey replaces the owner's key, recording when the
	// rotation happened.
	RotateSigningKey(ctx context.Context, ownerID string, privatePEM string) error
}
