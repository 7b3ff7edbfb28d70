// Package services contains the server-side business logic: account
// management and the document registration / verification / proof flows.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/inventa-labs/inventa/internal/common"
	"github.com/inventa-labs/inventa/internal/cryptox"
	"github.com/inventa-labs/inventa/internal/dbx"
	"github.com/inventa-labs/inventa/internal/server/auth"
	"github.com/inventa-labs/inventa/internal/server/config"
	"github.com/inventa-labs/inventa/internal/server/models"
	"github.com/inventa-labs/inventa/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a longer-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cfg         *config.Config
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{db: db, repomanager: m, cfg: cfg}
}

// Register creates an account: argon2id password verifier, a fresh P-256
// signing keypair (public half on the user record, private half in the
// secret store), and an audit entry. The keypair is generated exactly once;
// it is the root of trust for every signature this user will ever produce.
func (s *UserService) Register(ctx context.Context, username, email, password, userAgent string) (*models.User, *TokenPair, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: username, email, and password are required", common.ErrorValidation)
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, nil, fmt.Errorf("%w: email already registered", common.ErrorAlreadyExists)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, nil, common.ErrorInternal
	}

	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return nil, nil, fmt.Errorf("%w: username already taken", common.ErrorAlreadyExists)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, nil, common.ErrorInternal
	}

	privatePEM, publicPEM, err := cryptox.GenerateKeypair()
	if err != nil {
		return nil, nil, err
	}

	salt, hash := auth.HashPassword(password)

	user := &models.User{
		ID:           cryptox.NewUserID(),
		Username:     username,
		Email:        email,
		PasswordSalt: salt,
		PasswordHash: hash,
		PublicKey:    publicPEM,
		CreatedAt:    cryptox.Timestamp(),
	}

	// The user row and its signing key land together or not at all.
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.repomanager.Secrets(tx).PutSigningKey(ctx, user.ID, privatePEM)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	s.recordEvent(ctx, user.ID, email, username, "success", "register", userAgent)

	tokens, err := s.generateTokenPair(user.ID)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	return user, tokens, nil
}

// Login checks the password verifier and issues a token pair. Both outcomes
// are recorded in the login history.
func (s *UserService) Login(ctx context.Context, email, password, userAgent string) (*models.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.recordEvent(ctx, "", email, "", "failed", "login", userAgent)
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordSalt, user.PasswordHash) {
		s.recordEvent(ctx, user.ID, email, user.Username, "failed", "login", userAgent)
		return nil, nil, common.ErrorUnauthorized
	}

	s.recordEvent(ctx, user.ID, email, user.Username, "success", "login", userAgent)

	tokens, err := s.generateTokenPair(user.ID)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	return user, tokens, nil
}

// GetByID returns the user record for an authenticated caller.
func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// LoginHistory returns up to limit audit entries, most recent first.
func (s *UserService) LoginHistory(ctx context.Context, limit int) ([]*models.LoginEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repomanager.Logins(s.db).List(ctx, limit)
}

func (s *UserService) generateTokenPair(userID string) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(userID, []byte(s.cfg.SecretKey), s.cfg.AccessTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	refreshToken, err := auth.GenerateToken(userID, []byte(s.cfg.SecretKey), s.cfg.RefreshTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// recordEvent appends to the audit trail. Audit failures are deliberately
// swallowed: they must not fail the authentication flow itself.
func (s *UserService) recordEvent(ctx context.Context, userID, email, username, status, action, userAgent string) {
	_ = s.repomanager.Logins(s.db).Record(ctx, &models.LoginEvent{
		ID:        cryptox.NewLoginID(),
		UserID:    userID,
		UserEmail: email,
		UserName:  username,
		Status:    status,
		Action:    action,
		UserAgent: userAgent,
		Timestamp: cryptox.Timestamp(),
	})
}
