package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"planify/internal/logging"
	"planify/internal/service"
)

// expirySkew refreshes tokens slightly before the provider rejects them.
const expirySkew = time.Minute

// Refresher trades a refresh token for a new credential.
type Refresher interface {
	Refresh(ctx context.Context, cred service.Credential) (service.Credential, error)
}

// TokenSource returns an oauth2.TokenSource that serves the session ID token
// and, once it expires, refreshes it through r and saves the result.
func TokenSource(ctx context.Context, r Refresher, store *Store, cred service.Credential, logger *slog.Logger) oauth2.TokenSource {
	src := &refreshingSource{
		ctx:    ctx,
		r:      r,
		store:  store,
		cred:   cred,
		logger: logging.OrDiscard(logger),
	}
	return oauth2.ReuseTokenSourceWithExpiry(toToken(cred), src, expirySkew)
}

type refreshingSource struct {
	ctx    context.Context
	r      Refresher
	store  *Store
	logger *slog.Logger

	mu   sync.Mutex
	cred service.Credential
}

func (s *refreshingSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.r.Refresh(s.ctx, s.cred)
	if err != nil {
		return nil, err
	}
	s.cred = next
	s.logger.Debug("session refreshed", "uid", next.User.UID, "expires", next.ExpiresAt)

	if s.store != nil {
		if err := s.store.Save(next); err != nil {
			s.logger.Warn("saving refreshed session", "err", err)
		}
	}
	return toToken(next), nil
}

func toToken(cred service.Credential) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  cred.IDToken,
		TokenType:    "Bearer",
		RefreshToken: cred.RefreshToken,
		Expiry:       cred.ExpiresAt,
	}
}

// Fresh returns cred unchanged if its ID token is still valid, otherwise a
// refreshed credential that has been saved to store.
func Fresh(ctx context.Context, r Refresher, store *Store, cred service.Credential) (service.Credential, error) {
	if !cred.Expired(time.Now(), expirySkew) {
		return cred, nil
	}
	next, err := r.Refresh(ctx, cred)
	if err != nil {
		return cred, err
	}
	if store != nil {
		if err := store.Save(next); err != nil {
			return next, err
		}
	}
	return next, nil
}
