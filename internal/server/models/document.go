package models

// Document is an immutable ownership record, created exactly once at
// registration. Hash, signature, and cipher fields are never updated in
// place; any edit produces a new record. ContentHash is globally unique
// (first-writer-wins).
//
// Encodings are fixed: ContentHash is lowercase hex; Signature, CipherText,
// CipherNonce, and CipherKey are base64; CreatedAt is ISO-8601 UTC with a
// trailing Z.
type Document struct {
	ID          string
	OwnerID     string
	Filename    string
	ContentHash string
	CreatedAt   string
	Signature   string
	CipherText  string
	CipherNonce string
	CipherKey   string
	PlainSize   int64
	Metadata    Metadata
}

// Metadata carries the caller-supplied description of a registered work.
type Metadata struct {
	OwnerName    string      `json:"owner_name"`
	Description  string      `json:"description"`
	DocumentType string      `json:"document_type"`
	WorkType     string      `json:"work_type"`
	ProofOfWork  *Attachment `json:"proof_of_work,omitempty"`
}

// Attachment references a proof-of-work payload held in the blob store.
type Attachment struct {
	Filename   string `json:"filename"`
	StorageKey string `json:"storage_key"`
	Size       int64  `json:"size"`
}

// PublicFields returns the subset of a document that may be shown to anyone:
// never the cipher key, nonce, or ciphertext.
func (d *Document) PublicFields() PublicDocument {
	return PublicDocument{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Filename:    d.Filename,
		ContentHash: d.ContentHash,
		CreatedAt:   d.CreatedAt,
		Signature:   d.Signature,
		PlainSize:   d.PlainSize,
		Metadata:    d.Metadata,
	}
}

// PublicDocument is the externally visible projection of a Document.
type PublicDocument struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"ownerId"`
	Filename    string   `json:"filename"`
	ContentHash string   `json:"hash"`
	CreatedAt   string   `json:"registeredAt"`
	Signature   string   `json:"signature"`
	PlainSize   int64    `json:"fileSize"`
	Metadata    Metadata `json:"metadata"`
}
