package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	domsess "github.com/pranavi39/pawfect/internal/domain/session"
)

type sessionDTO struct {
	ID        string        `json:"id"`
	Username  string        `json:"username,omitempty"`
	LoggedIn  bool          `json:"logged_in"`
	Wishlist  []wishlistDTO `json:"wishlist,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type wishlistDTO struct {
	ProductID   int    `json:"product_id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// encodeSession serializes a domain Session for storage.
func encodeSession(s *domsess.Session) ([]byte, error) {
	entries := s.Wishlist()
	dto := sessionDTO{
		ID:        s.ID().String(),
		Username:  s.Username(),
		LoggedIn:  s.LoggedIn(),
		Wishlist:  make([]wishlistDTO, len(entries)),
		CreatedAt: s.CreatedAt(),
	}
	for i, e := range entries {
		dto.Wishlist[i] = wishlistDTO(e)
	}
	data, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return data, nil
}

// decodeSession rebuilds a domain Session from its stored form.
func decodeSession(data []byte) (domsess.Session, error) {
	var dto sessionDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domsess.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return domsess.Session{}, fmt.Errorf("parse session id: %w", err)
	}
	entries := make([]domsess.WishlistEntry, len(dto.Wishlist))
	for i, e := range dto.Wishlist {
		entries[i] = domsess.WishlistEntry(e)
	}
	return domsess.Reconstruct(id, dto.Username, dto.LoggedIn, entries, dto.CreatedAt), nil
}
