package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pranavi39/pawfect/internal/domain"
	domsess "github.com/pranavi39/pawfect/internal/domain/session"
	logpkg "github.com/pranavi39/pawfect/internal/logger"
	"github.com/pranavi39/pawfect/internal/metrics"
)

// Service manages visitor sessions: login state and wishlist.
type Service struct {
	store Store
	creds CredentialVerifier
	index SnapshotReader
	now   func() time.Time
}

// New creates a session service.
func New(store Store, creds CredentialVerifier, index SnapshotReader) *Service {
	return &Service{store: store, creds: creds, index: index, now: time.Now}
}

// Create starts an anonymous session.
func (s *Service) Create(ctx context.Context) (domsess.Session, error) {
	sess := domsess.New(s.now().UTC())
	if err := s.store.Save(ctx, &sess); err != nil {
		return domsess.Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Get returns a session or domain.ErrSessionNotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domsess.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return domsess.Session{}, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// Login marks the session as logged in when the credentials match a user
// exactly. On mismatch the session is left unchanged.
func (s *Service) Login(ctx context.Context, id uuid.UUID, username, password string) (domsess.Session, error) {
	if _, err := s.store.Get(ctx, id); err != nil {
		return domsess.Session{}, fmt.Errorf("login: %w", err)
	}

	ok, err := s.creds.Verify(ctx, username, password)
	if err != nil {
		return domsess.Session{}, fmt.Errorf("login: %w", err)
	}
	if !ok {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		logpkg.FromContext(ctx).Info("login rejected", zap.String("username", username))
		return domsess.Session{}, domain.ErrInvalidCredentials
	}

	sess, err := s.store.Update(ctx, id, func(cur domsess.Session) (domsess.Session, error) {
		return cur.WithLogin(username), nil
	})
	if err != nil {
		return domsess.Session{}, fmt.Errorf("login: %w", err)
	}
	metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()
	return sess, nil
}

// Logout clears the login state. The wishlist is kept.
func (s *Service) Logout(ctx context.Context, id uuid.UUID) (domsess.Session, error) {
	sess, err := s.store.Update(ctx, id, func(cur domsess.Session) (domsess.Session, error) {
		return cur.WithLogout(), nil
	})
	if err != nil {
		return domsess.Session{}, fmt.Errorf("logout: %w", err)
	}
	return sess, nil
}

// AddToWishlist appends a catalog product to a logged-in session's wishlist.
// The same product may be added more than once.
func (s *Service) AddToWishlist(ctx context.Context, id uuid.UUID, productID int) ([]domsess.WishlistEntry, error) {
	snap, err := s.index.Current()
	if err != nil {
		return nil, fmt.Errorf("add to wishlist: %w", err)
	}
	p, ok := snap.Catalog().Get(productID)
	if !ok {
		return nil, fmt.Errorf("add to wishlist: product %d: %w", productID, domain.ErrProductNotFound)
	}
	entry := domsess.EntryFromProduct(&p)

	sess, err := s.store.Update(ctx, id, func(cur domsess.Session) (domsess.Session, error) {
		if !cur.LoggedIn() {
			return domsess.Session{}, domain.ErrNotLoggedIn
		}
		return cur.WithWishlistEntry(entry), nil
	})
	if err != nil {
		return nil, fmt.Errorf("add to wishlist: %w", err)
	}
	return sess.Wishlist(), nil
}

// Wishlist returns the session's wishlist in insertion order.
func (s *Service) Wishlist(ctx context.Context, id uuid.UUID) ([]domsess.WishlistEntry, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("wishlist: %w", err)
	}
	return sess.Wishlist(), nil
}

// Delete ends a session.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
