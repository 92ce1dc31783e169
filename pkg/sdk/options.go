package pawfect

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	productsPath string
	stemming     bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithProducts sets the product table to index (.csv or .parquet). Required.
func WithProducts(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.productsPath = path
	})
}

// WithStemming enables English Snowball stemming of descriptions and queries.
func WithStemming(enabled bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.stemming = enabled
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
