package chi

import (
	"time"

	"github.com/google/uuid"

	"github.com/pranavi39/pawfect/internal/domain/search/result"
	domsess "github.com/pranavi39/pawfect/internal/domain/session"
)

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorCodeBadRequest         ErrorCode = "bad_request"
	ErrorCodeValidationFailed   ErrorCode = "validation_failed"
	ErrorCodeUnauthorized       ErrorCode = "unauthorized"
	ErrorCodeInvalidCredentials ErrorCode = "invalid_credentials"
	ErrorCodeLoginRequired      ErrorCode = "login_required"
	ErrorCodeSessionNotFound    ErrorCode = "session_not_found"
	ErrorCodeProductNotFound    ErrorCode = "product_not_found"
	ErrorCodeIndexNotReady      ErrorCode = "index_not_ready"
	ErrorCodeDataUnavailable    ErrorCode = "data_unavailable"
	ErrorCodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchResultItem is one ranked product.
type SearchResultItem struct {
	ID          int     `json:"id"`
	Category    string  `json:"category"`
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
}

// CategoriesResponse is the body of GET /categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// SessionResponse describes a visitor session.
type SessionResponse struct {
	ID           uuid.UUID `json:"id"`
	LoggedIn     bool      `json:"logged_in"`
	Username     string    `json:"username,omitempty"`
	WishlistSize int       `json:"wishlist_size"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest is the body of POST /sessions/{session}/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// WishlistRequest is the body of POST /sessions/{session}/wishlist.
type WishlistRequest struct {
	ProductID *int `json:"product_id"`
}

// WishlistItem is one saved product.
type WishlistItem struct {
	ProductID   int    `json:"product_id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// WishlistResponse lists saved products in insertion order.
type WishlistResponse struct {
	Items []WishlistItem `json:"items"`
}

// ReloadResponse describes the index that became active.
type ReloadResponse struct {
	Documents  int       `json:"documents"`
	Vocabulary int       `json:"vocabulary"`
	FittedAt   time.Time `json:"fitted_at"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func searchResultToDTO(r *result.Result) SearchResultItem {
	p := r.Product()
	return SearchResultItem{
		ID:          p.ID(),
		Category:    string(p.Category()),
		Name:        p.Name(),
		Price:       p.Price(),
		Amount:      p.Amount(),
		Description: p.Description(),
		Score:       r.Score(),
	}
}

func sessionToDTO(s *domsess.Session) SessionResponse {
	return SessionResponse{
		ID:           s.ID(),
		LoggedIn:     s.LoggedIn(),
		Username:     s.Username(),
		WishlistSize: len(s.Wishlist()),
		CreatedAt:    s.CreatedAt(),
	}
}

func wishlistToDTO(entries []domsess.WishlistEntry) WishlistResponse {
	items := make([]WishlistItem, len(entries))
	for i, e := range entries {
		items[i] = WishlistItem(e)
	}
	return WishlistResponse{Items: items}
}
