// Package models defines server-side data models persisted in the database.
package models

// User is an account holder. The signing keypair is generated once at
// registration; the public half lives here, the private half in the secret
// store keyed by ID.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordSalt []byte
	PasswordHash []byte
	PublicKey    string
	CreatedAt    string
}
