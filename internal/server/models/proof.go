package models

// VerificationStatus is the fixed marker stamped on every assembled proof.
const VerificationStatus = "VERIFIED"

// OwnershipProof is an ephemeral projection combining a document's public
// fields with its owner's public identity. It is recomputed on every request
// and never persisted.
type OwnershipProof struct {
	DocumentID         string   `json:"document_id"`
	DocumentHash       string   `json:"document_hash"`
	Filename           string   `json:"filename"`
	OwnerID            string   `json:"owner_id"`
	OwnerName          string   `json:"owner_name"`
	OwnerUsername      string   `json:"owner_username"`
	OwnerEmail         string   `json:"owner_email"`
	OwnerPublicKey     string   `json:"owner_public_key"`
	Timestamp          string   `json:"timestamp"`
	Signature          string   `json:"signature"`
	Metadata           Metadata `json:"metadata"`
	VerificationStatus string   `json:"verification_status"`
	GeneratedAt        string   `json:"generated_at"`
}

// VerificationResult is the outcome of the public verify operation.
// Verified reports record existence for the fingerprint; SignatureValid
// reports whether the stored signature checks out against the owner's
// public key. The two are distinct capabilities.
type VerificationResult struct {
	Verified       bool            `json:"verified"`
	SignatureValid bool            `json:"signatureValid"`
	Hash           string          `json:"hash"`
	Document       *PublicDocument `json:"document,omitempty"`
	Owner          *PublicOwner    `json:"owner,omitempty"`
}

// PublicOwner is the owner identity disclosed on the public verify path.
type PublicOwner struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	PublicKey string `json:"publicKey"`
}
