package pawfect

import "github.com/pranavi39/pawfect/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDataUnavailable = domain.ErrDataUnavailable
	ErrEmptyQuery      = domain.ErrEmptyQuery
	ErrInvalidQuery    = domain.ErrInvalidQuery
	ErrIndexNotReady   = domain.ErrIndexNotReady
)
