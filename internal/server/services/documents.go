package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/inventa-labs/inventa/internal/common"
	"github.com/inventa-labs/inventa/internal/cryptox"
	"github.com/inventa-labs/inventa/internal/server/blob"
	"github.com/inventa-labs/inventa/internal/server/metrics"
	"github.com/inventa-labs/inventa/internal/server/models"
	"github.com/inventa-labs/inventa/internal/server/repositories/repomanager"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

// RegisterInput carries caller-supplied registration fields.
type RegisterInput struct {
	Filename     string
	OwnerName    string
	Description  string
	DocumentType string
	WorkType     string
	ProofOfWork  *UploadedFile
}

// UploadedFile is an already-extracted upload payload.
type UploadedFile struct {
	Filename string
	Data     []byte
}

// DocumentService orchestrates registration, proof assembly, public
// verification, and owner downloads. It holds no state beyond its injected
// collaborators.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blob.Store
	metrics     *metrics.Metrics
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, blobStore blob.Store, mx *metrics.Metrics) *DocumentService {
	return &DocumentService{db: db, repomanager: m, blobs: blobStore, metrics: mx}
}

// Register runs the full ownership pipeline for content owned by ownerID:
// fingerprint → duplicate check → encrypt → sign → persist. Any failure
// aborts the whole operation; no partial record is ever stored. Duplicate
// content surfaces as *common.DuplicateContentError with the existing
// record's identity.
func (s *DocumentService) Register(ctx context.Context, ownerID string, content []byte, in RegisterInput) (*models.Document, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: empty content", common.ErrorValidation)
	}

	owner, err := s.repomanager.Users(s.db).GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	privateKey, err := s.repomanager.Secrets(s.db).GetSigningKey(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	b := newRecordBuilder(ownerID, in.Filename, content)

	fingerprint, err := b.Fingerprint()
	if err != nil {
		return nil, err
	}

	// Early short-circuit; the insert below still guarantees uniqueness
	// atomically if two identical uploads race past this check.
	if existing, err := s.repomanager.Documents(s.db).GetByHash(ctx, fingerprint); err == nil {
		s.metrics.DuplicateUploadsTotal.Inc()
		return nil, &common.DuplicateContentError{
			ExistingID:   existing.ID,
			OwnerID:      existing.OwnerID,
			RegisteredAt: existing.CreatedAt,
		}
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	if err := b.Encrypt(); err != nil {
		return nil, err
	}

	if err := b.Sign(privateKey); err != nil {
		return nil, err
	}

	meta := models.Metadata{
		OwnerName:    in.OwnerName,
		Description:  in.Description,
		DocumentType: in.DocumentType,
		WorkType:     in.WorkType,
	}
	if meta.OwnerName == "" {
		meta.OwnerName = owner.Username
	}
	if meta.DocumentType == "" {
		meta.DocumentType = "other"
	}
	if meta.WorkType == "" {
		meta.WorkType = "human"
	}

	if in.ProofOfWork != nil && len(in.ProofOfWork.Data) > 0 {
		key := blob.NewStorageKey()
		if err := s.blobs.Put(ctx, key, in.ProofOfWork.Data); err != nil {
			return nil, fmt.Errorf("attachment store error: %w", err)
		}
		meta.ProofOfWork = &models.Attachment{
			Filename:   in.ProofOfWork.Filename,
			StorageKey: key,
			Size:       int64(len(in.ProofOfWork.Data)),
		}
	}

	doc, err := b.Record(meta)
	if err != nil {
		return nil, err
	}

	if err := s.repomanager.Documents(s.db).InsertIfAbsent(ctx, doc); err != nil {
		var dup *common.DuplicateContentError
		if errors.As(err, &dup) {
			s.metrics.DuplicateUploadsTotal.Inc()
		}
		return nil, err
	}

	s.metrics.RegistrationsTotal.Inc()
	return doc, nil
}

// ListByOwner returns the owner's records, public fields only, newest first.
func (s *DocumentService) ListByOwner(ctx context.Context, ownerID string) ([]models.PublicDocument, error) {
	docs, err := s.repomanager.Documents(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]models.PublicDocument, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.PublicFields())
	}
	return result, nil
}

// BuildProof assembles the ephemeral ownership proof for a record. Only the
// owner may request it. The proof is recomputed on every call and never
// cached.
func (s *DocumentService) BuildProof(ctx context.Context, documentID, callerID string) (*models.OwnershipProof, error) {
	doc, err := s.repomanager.Documents(s.db).GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if doc.OwnerID != callerID {
		return nil, common.ErrorUnauthorized
	}

	owner, err := s.repomanager.Users(s.db).GetByID(ctx, doc.OwnerID)
	if err != nil {
		return nil, err
	}

	ownerName := doc.Metadata.OwnerName
	if ownerName == "" {
		ownerName = owner.Username
	}

	s.metrics.ProofsGeneratedTotal.Inc()

	return &models.OwnershipProof{
		DocumentID:         doc.ID,
		DocumentHash:       doc.ContentHash,
		Filename:           doc.Filename,
		OwnerID:            owner.ID,
		OwnerName:          ownerName,
		OwnerUsername:      owner.Username,
		OwnerEmail:         owner.Email,
		OwnerPublicKey:     owner.PublicKey,
		Timestamp:          doc.CreatedAt,
		Signature:          doc.Signature,
		Metadata:           doc.Metadata,
		VerificationStatus: models.VerificationStatus,
		GeneratedAt:        cryptox.Timestamp(),
	}, nil
}

// VerifyBytes fingerprints raw content and runs the public verification.
func (s *DocumentService) VerifyBytes(ctx context.Context, content []byte) (*models.VerificationResult, error) {
	return s.VerifyHash(ctx, cryptox.Fingerprint(content))
}

// VerifyHash is the public, unauthenticated verification: existence lookup
// plus re-validation of the stored signature against the owner's public key.
// An unregistered fingerprint is a negative result, not an error. Nothing
// secret is ever disclosed: no private key, cipher key, or ciphertext.
func (s *DocumentService) VerifyHash(ctx context.Context, hash string) (*models.VerificationResult, error) {
	hash = strings.ToLower(strings.TrimSpace(hash))
	if !hexDigest.MatchString(hash) {
		return nil, fmt.Errorf("%w: not a hex digest", common.ErrorValidation)
	}

	doc, err := s.LookupByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.metrics.ObserveVerification(false)
			return &models.VerificationResult{Verified: false, Hash: hash}, nil
		}
		return nil, err
	}

	owner, err := s.repomanager.Users(s.db).GetByID(ctx, doc.OwnerID)
	if err != nil {
		return nil, err
	}

	claim := cryptox.CanonicalClaim(doc.ContentHash, doc.CreatedAt, doc.OwnerID)
	signatureValid := cryptox.Verify(claim, doc.Signature, owner.PublicKey)

	s.metrics.ObserveVerification(true)

	pub := doc.PublicFields()
	return &models.VerificationResult{
		Verified:       true,
		SignatureValid: signatureValid,
		Hash:           hash,
		Document:       &pub,
		Owner: &models.PublicOwner{
			ID:        owner.ID,
			Username:  owner.Username,
			PublicKey: owner.PublicKey,
		},
	}, nil
}

// LookupByHash is the existence-only capability: it reports whether a record
// with this fingerprint exists, with no signature check.
func (s *DocumentService) LookupByHash(ctx context.Context, hash string) (*models.Document, error) {
	return s.repomanager.Documents(s.db).GetByHash(ctx, hash)
}

// Download decrypts and returns the original content for its owner. A
// decryption failure is a retrievable-content error (ErrorCryptoFailure),
// distinct from not-found. The recovered plaintext is re-fingerprinted
// against the stored hash so silent corruption cannot go unnoticed.
func (s *DocumentService) Download(ctx context.Context, documentID, callerID string) (string, []byte, error) {
	doc, err := s.repomanager.Documents(s.db).GetByID(ctx, documentID)
	if err != nil {
		return "", nil, err
	}

	if doc.OwnerID != callerID {
		return "", nil, common.ErrorUnauthorized
	}

	plain, err := cryptox.Decrypt(doc.CipherText, doc.CipherNonce, doc.CipherKey)
	if err != nil {
		s.metrics.DecryptionFailuresTotal.Inc()
		return "", nil, err
	}

	if cryptox.Fingerprint(plain) != doc.ContentHash {
		s.metrics.DecryptionFailuresTotal.Inc()
		return "", nil, fmt.Errorf("%w: recovered content does not match recorded fingerprint", common.ErrorCryptoFailure)
	}

	s.metrics.DownloadsTotal.Inc()
	return doc.Filename, plain, nil
}

// Attachment returns a document's proof-of-work payload for its owner.
func (s *DocumentService) Attachment(ctx context.Context, documentID, callerID string) (string, []byte, error) {
	doc, err := s.repomanager.Documents(s.db).GetByID(ctx, documentID)
	if err != nil {
		return "", nil, err
	}

	if doc.OwnerID != callerID {
		return "", nil, common.ErrorUnauthorized
	}

	if doc.Metadata.ProofOfWork == nil {
		return "", nil, common.ErrorNotFound
	}

	data, err := s.blobs.Get(ctx, doc.Metadata.ProofOfWork.StorageKey)
	if err != nil {
		return "", nil, err
	}

	return doc.Metadata.ProofOfWork.Filename, data, nil
}

// Stats summarizes stored record counts for the admin endpoint.
func (s *DocumentService) Stats(ctx context.Context) (*models.Stats, error) {
	userCount, err := s.repomanager.Users(s.db).Count(ctx)
	if err != nil {
		return nil, err
	}
	docCount, err := s.repomanager.Documents(s.db).Count(ctx)
	if err != nil {
		return nil, err
	}
	total, ok, failed, err := s.repomanager.Logins(s.db).Counts(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Stats{
		Users:        userCount,
		Documents:    docCount,
		LoginEvents:  total,
		LoginsOK:     ok,
		LoginsFailed: failed,
	}, nil
}
