package health

import "context"

// Pinger reports whether a component can serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}
