package services

import (
	"fmt"

	"github.com/inventa-labs/inventa/internal/common"
	"github.com/inventa-labs/inventa/internal/cryptox"
	"github.com/inventa-labs/inventa/internal/server/models"
)

// recordBuilder is the staged registration pipeline:
//
//	fingerprinted → encrypted → signed → record
//
// Each step only runs after the previous one, so the hash-before-encrypt and
// encrypt-before-sign ordering cannot be broken by a future edit. Nothing is
// persisted until every field exists; any step's failure aborts the whole
// registration with no partial record.
type builderStage int

const (
	stageInit builderStage = iota
	stageFingerprinted
	stageEncrypted
	stageSigned
)

type recordBuilder struct {
	stage       builderStage
	ownerID     string
	filename    string
	plain       []byte
	fingerprint string
	createdAt   string
	envelope    *cryptox.Envelope
	signature   string
}

func newRecordBuilder(ownerID, filename string, plain []byte) *recordBuilder {
	return &recordBuilder{
		stage:    stageInit,
		ownerID:  ownerID,
		filename: filename,
		plain:    plain,
	}
}

func (b *recordBuilder) requireStage(want builderStage, step string) error {
	if b.stage != want {
		return fmt.Errorf("%w: %s out of order", common.ErrorInternal, step)
	}
	return nil
}

// Fingerprint computes the content hash. First step.
func (b *recordBuilder) Fingerprint() (string, error) {
	if err := b.requireStage(stageInit, "fingerprint"); err != nil {
		return "", err
	}
	b.fingerprint = cryptox.Fingerprint(b.plain)
	b.stage = stageFingerprinted
	return b.fingerprint, nil
}

// Encrypt seals the plaintext with a fresh key and nonce.
func (b *recordBuilder) Encrypt() error {
	if err := b.requireStage(stageFingerprinted, "encrypt"); err != nil {
		return err
	}
	env, err := cryptox.Encrypt(b.plain, nil)
	if err != nil {
		return err
	}
	b.envelope = env
	b.stage = stageEncrypted
	return nil
}

// Sign stamps the registration time and signs the canonical claim with the
// owner's private key. A signing failure leaves the builder unsigned; the
// record can then never be assembled.
func (b *recordBuilder) Sign(privatePEM string) error {
	if err := b.requireStage(stageEncrypted, "sign"); err != nil {
		return err
	}
	b.createdAt = cryptox.Timestamp()
	claim := cryptox.CanonicalClaim(b.fingerprint, b.createdAt, b.ownerID)

	sig, err := cryptox.Sign(claim, privatePEM)
	if err != nil {
		return err
	}
	if sig == "" {
		return fmt.Errorf("%w: empty signature", common.ErrorCryptoFailure)
	}
	b.signature = sig
	b.stage = stageSigned
	return nil
}

// Record assembles the immutable document. Final step; requires a signature.
func (b *recordBuilder) Record(meta models.Metadata) (*models.Document, error) {
	if err := b.requireStage(stageSigned, "record"); err != nil {
		return nil, err
	}
	return &models.Document{
		ID:          cryptox.NewDocumentID(),
		OwnerID:     b.ownerID,
		Filename:    b.filename,
		ContentHash: b.fingerprint,
		CreatedAt:   b.createdAt,
		Signature:   b.signature,
		CipherText:  b.envelope.CipherText,
		CipherNonce: b.envelope.Nonce,
		CipherKey:   b.envelope.Key,
		PlainSize:   int64(len(b.plain)),
		Metadata:    meta,
	}, nil
}
