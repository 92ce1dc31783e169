package index

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pranavi39/pawfect/internal/domain"
	domcat "github.com/pranavi39/pawfect/internal/domain/catalog"
	"github.com/pranavi39/pawfect/internal/metrics"
	"github.com/pranavi39/pawfect/internal/vsm"
)

// Service owns the active index snapshot.
// Readers call Current and keep using the snapshot they got; Reload swaps in
// a freshly fitted snapshot without touching the old one.
type Service struct {
	source    CatalogSource
	tokenizer vsm.Tokenizer
	logger    *zap.Logger
	now       func() time.Time

	current  atomic.Pointer[Snapshot]
	reloadMu sync.Mutex
}

// New creates an index service. Call Init before serving searches.
func New(source CatalogSource, tokenizer vsm.Tokenizer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, tokenizer: tokenizer, logger: logger, now: time.Now}
}

// Init loads the catalog and fits the first snapshot. Later calls are no-ops.
func (s *Service) Init(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if s.current.Load() != nil {
		return nil
	}
	cat, err := s.source.Load(ctx)
	if err != nil {
		metrics.IndexReloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("init index: %w", err)
	}
	return s.publish(cat)
}

// Reload re-reads the catalog source and atomically replaces the snapshot.
// On failure the previous snapshot stays active.
func (s *Service) Reload(ctx context.Context) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	cat, err := s.source.Reload(ctx)
	if err != nil {
		metrics.IndexReloadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("reload index: %w", err)
	}
	if err := s.publish(cat); err != nil {
		return nil, err
	}
	return s.current.Load(), nil
}

// Current returns the active snapshot or domain.ErrIndexNotReady.
func (s *Service) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrIndexNotReady
	}
	return snap, nil
}

// Ping reports whether an index is active.
func (s *Service) Ping(_ context.Context) error {
	if s.current.Load() == nil {
		return errors.New("index not fitted")
	}
	return nil
}

func (s *Service) publish(cat domcat.Catalog) error {
	start := time.Now()
	snap, err := Build(cat, s.tokenizer, s.now())
	if err != nil {
		metrics.IndexReloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("build index: %w", err)
	}
	s.current.Store(snap)

	metrics.IndexReloadsTotal.WithLabelValues("ok").Inc()
	metrics.ObserveIndex(snap.Catalog().Len(), snap.Vocabulary().Size())
	s.logger.Info("Index fitted",
		zap.Int("products", snap.Catalog().Len()),
		zap.Int("vocabulary", snap.Vocabulary().Size()),
		zap.Bool("stemming", s.tokenizer.Stemming()),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
