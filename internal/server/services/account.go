// Package services contains the server-side business logic: account
// registration and login sessions, and document orchestration across the
// blob store and the metadata registry.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dberzins/docshelf/internal/common"
	"github.com/dberzins/docshelf/internal/logging"
	"github.com/dberzins/docshelf/internal/server/auth"
	"github.com/dberzins/docshelf/internal/server/config"
	"github.com/dberzins/docshelf/internal/server/models"
	"github.com/dberzins/docshelf/internal/server/repositories/repomanager"
)

// AccountService handles signup, login, and the session lifecycle. A login
// creates a server-side session row and returns a signed token referencing
// it; logout deletes the row, so the token dies with it.
type AccountService struct {
	db         *sql.DB
	repos      repomanager.RepositoryManager
	logger     logging.Logger
	secretKey  []byte
	sessionTTL time.Duration
}

func NewAccountService(db *sql.DB, repos repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *AccountService {
	return &AccountService{
		db:         db,
		repos:      repos,
		logger:     logger,
		secretKey:  []byte(cfg.SecretKey),
		sessionTTL: cfg.SessionTTL,
	}
}

// SessionTTL reports the configured session lifetime, for cookie expiry.
func (s *AccountService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Register creates an account for key. The password is bcrypt-hashed before
// it reaches storage. A taken key yields common.ErrDuplicateKey.
func (s *AccountService) Register(ctx context.Context, key, password string) error {
	if key == "" || password == "" {
		return fmt.Errorf("%w: key and password required", common.ErrInternal)
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	repo := s.repos.Accounts(s.db)
	if err := repo.Create(ctx, &models.Account{Key: key, PasswordHash: digest}); err != nil {
		if errors.Is(err, common.ErrDuplicateKey) {
			return common.ErrDuplicateKey
		}
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

// Login verifies the credentials and mints a session token. Every failure on
// this path collapses to ErrUnauthorized: a missing account, a mismatched
// password, and a storage error all look the same to the caller. Storage
// errors are still logged.
func (s *AccountService) Login(ctx context.Context, key, password string) (string, error) {
	repo := s.repos.Accounts(s.db)

	account, err := repo.GetByKey(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Error(ctx, "account lookup failed", "key", key, "error", err)
		}
		return "", common.ErrUnauthorized
	}

	if !auth.CheckPassword(account.PasswordHash, password) {
		return "", common.ErrUnauthorized
	}

	sessionID := uuid.NewString()
	if err := s.repos.Sessions(s.db).Create(ctx, sessionID, account.Key, s.sessionTTL); err != nil {
		s.logger.Error(ctx, "session create failed", "key", key, "error", err)
		return "", common.ErrInternal
	}

	token, err := auth.GenerateSessionToken(sessionID, account.Key, s.secretKey, s.sessionTTL)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// Authenticate resolves a session token to an account key. The token must
// verify, and the session row it references must still exist and not be
// expired.
func (s *AccountService) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := auth.ParseSessionToken(token, s.secretKey)
	if err != nil {
		return "", common.ErrUnauthorized
	}

	session, err := s.repos.Sessions(s.db).Find(ctx, claims.SessionID)
	if err != nil {
		return "", common.ErrUnauthorized
	}
	if session.ExpiresAt.Before(time.Now()) {
		return "", common.ErrUnauthorized
	}

	return session.AccountKey, nil
}

// Logout destroys the session named by the token. Idempotent: an invalid
// token or an already-deleted session is not an error.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	claims, err := auth.ParseSessionToken(token, s.secretKey)
	if err != nil {
		return nil
	}

	if err := s.repos.Sessions(s.db).Delete(ctx, claims.SessionID); err != nil {
		s.logger.Error(ctx, "session delete failed", "session_id", claims.SessionID, "error", err)
		return common.ErrInternal
	}

	return nil
}

// PurgeExpiredSessions removes stale session rows. Run periodically by the app.
func (s *AccountService) PurgeExpiredSessions(ctx context.Context) error {
	n, err := s.repos.Sessions(s.db).DeleteExpired(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Debug(ctx, "expired sessions purged", "count", n)
	}
	return nil
}
