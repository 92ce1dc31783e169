package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/pranavi39/pawfect/internal/domain/product"
)

// WishlistEntry is a product saved by a logged-in user.
type WishlistEntry struct {
	ProductID   int
	Name        string
	Price       string
	Description string
}

// EntryFromProduct snapshots the wishlist fields of a product.
func EntryFromProduct(p *product.Product) WishlistEntry {
	return WishlistEntry{
		ProductID:   p.ID(),
		Name:        p.Name(),
		Price:       p.Price(),
		Description: p.Description(),
	}
}

// Session is per-visitor state: login flag and wishlist.
// Methods return modified copies; the receiver is never mutated.
type Session struct {
	id        uuid.UUID
	username  string
	loggedIn  bool
	wishlist  []WishlistEntry
	createdAt time.Time
}

// New creates an anonymous session.
func New(now time.Time) Session {
	return Session{id: uuid.New(), createdAt: now}
}

// Reconstruct creates a Session without validation (storage hydration).
func Reconstruct(id uuid.UUID, username string, loggedIn bool, wishlist []WishlistEntry, createdAt time.Time) Session {
	return Session{id: id, username: username, loggedIn: loggedIn, wishlist: wishlist, createdAt: createdAt}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Username returns the logged-in user, empty for anonymous sessions.
func (s *Session) Username() string { return s.username }

// LoggedIn reports whether the session passed a login.
func (s *Session) LoggedIn() bool { return s.loggedIn }

// CreatedAt returns the creation time.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Wishlist returns a copy of the wishlist in insertion order.
func (s *Session) Wishlist() []WishlistEntry {
	out := make([]WishlistEntry, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

// WithLogin returns a copy logged in as username.
func (s *Session) WithLogin(username string) Session {
	c := s.clone()
	c.username = username
	c.loggedIn = true
	return c
}

// WithLogout returns an anonymous copy. The wishlist is kept.
func (s *Session) WithLogout() Session {
	c := s.clone()
	c.username = ""
	c.loggedIn = false
	return c
}

// WithWishlistEntry returns a copy with e appended. Duplicates are allowed.
func (s *Session) WithWishlistEntry(e WishlistEntry) Session {
	c := s.clone()
	c.wishlist = append(c.wishlist, e)
	return c
}

func (s *Session) clone() Session {
	c := *s
	c.wishlist = s.Wishlist()
	return c
}
