// Package httpapi is the HTTP/JSON transport for the server. It decodes
// requests, delegates to the domain services, and translates domain errors
// to HTTP status codes. No business logic lives here.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inventa-labs/inventa/internal/logging"
	"github.com/inventa-labs/inventa/internal/server/models"
	"github.com/inventa-labs/inventa/internal/server/services"
)

// UserProvider is the account-facing surface the transport needs.
type UserProvider interface {
	Register(ctx context.Context, username, email, password, userAgent string) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, email, password, userAgent string) (*models.User, *services.TokenPair, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	LoginHistory(ctx context.Context, limit int) ([]*models.LoginEvent, error)
}

// DocumentProvider is the record-facing surface the transport needs.
type DocumentProvider interface {
	Register(ctx context.Context, ownerID string, content []byte, in services.RegisterInput) (*models.Document, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.PublicDocument, error)
	BuildProof(ctx context.Context, documentID, callerID string) (*models.OwnershipProof, error)
	VerifyBytes(ctx context.Context, content []byte) (*models.VerificationResult, error)
	VerifyHash(ctx context.Context, hash string) (*models.VerificationResult, error)
	Download(ctx context.Context, documentID, callerID string) (string, []byte, error)
	Attachment(ctx context.Context, documentID, callerID string) (string, []byte, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

type HTTPServer struct {
	address        string
	logger         logging.Logger
	users          UserProvider
	documents      DocumentProvider
	jwtSecret      []byte
	maxUploadBytes int64
	gatherer       prometheus.Gatherer
}

func NewHTTPServer(address string, l logging.Logger, us UserProvider, ds DocumentProvider, secretKey string, maxUploadBytes int64, g prometheus.Gatherer) *HTTPServer {
	return &HTTPServer{
		address:        address,
		logger:         l.With("module", "http_server"),
		users:          us,
		documents:      ds,
		jwtSecret:      []byte(secretKey),
		maxUploadBytes: maxUploadBytes,
		gatherer:       g,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
