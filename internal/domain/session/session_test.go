package session

import (
	"testing"
	"time"

	"github.com/pranavi39/pawfect/internal/domain/product"
)

func TestNew_Anonymous(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := New(now)
	if s.LoggedIn() {
		t.Error("new session should be anonymous")
	}
	if s.Username() != "" {
		t.Errorf("Username: got %q", s.Username())
	}
	if !s.CreatedAt().Equal(now) {
		t.Errorf("CreatedAt: got %v", s.CreatedAt())
	}
	if len(s.Wishlist()) != 0 {
		t.Error("new session should have an empty wishlist")
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	a := New(time.Now())
	b := New(time.Now())
	if a.ID() == b.ID() {
		t.Error("expected distinct session IDs")
	}
}

func TestWithLogin_DoesNotMutateReceiver(t *testing.T) {
	s := New(time.Now())
	in := s.WithLogin("alice")

	if s.LoggedIn() {
		t.Error("receiver was mutated")
	}
	if !in.LoggedIn() || in.Username() != "alice" {
		t.Errorf("login copy: loggedIn=%v username=%q", in.LoggedIn(), in.Username())
	}
	if in.ID() != s.ID() {
		t.Error("login must keep the session ID")
	}

	out := in.WithLogout()
	if out.LoggedIn() || out.Username() != "" {
		t.Error("logout should clear login state")
	}
}

func TestWithWishlistEntry_AppendsInOrder(t *testing.T) {
	p1, _ := product.New(0, product.Dog, "Toy", "$9.99", "chew toy")
	p2, _ := product.New(1, product.Dog, "Food", "$19.99", "dog food")

	s := New(time.Now())
	s = s.WithLogin("alice")
	s1 := s.WithWishlistEntry(EntryFromProduct(&p1))
	s2 := s1.WithWishlistEntry(EntryFromProduct(&p2))
	s3 := s2.WithWishlistEntry(EntryFromProduct(&p1))

	if len(s1.Wishlist()) != 1 {
		t.Errorf("s1 wishlist was modified by later appends: %d", len(s1.Wishlist()))
	}

	got := s3.Wishlist()
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	wantIDs := []int{0, 1, 0}
	for i, e := range got {
		if e.ProductID != wantIDs[i] {
			t.Errorf("entry %d: got product %d, want %d", i, e.ProductID, wantIDs[i])
		}
	}
	if got[1].Name != "Food" || got[1].Price != "$19.99" || got[1].Description != "dog food" {
		t.Errorf("entry fields not copied: %+v", got[1])
	}
}
