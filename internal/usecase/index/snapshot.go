package index

import (
	"fmt"
	"time"

	domcat "github.com/pranavi39/pawfect/internal/domain/catalog"
	"github.com/pranavi39/pawfect/internal/vsm"
)

// Snapshot is a catalog together with the vocabulary and matrix fitted from it.
// It is immutable; a new catalog always produces a new Snapshot.
type Snapshot struct {
	catalog  domcat.Catalog
	vocab    *vsm.Vocabulary
	matrix   *vsm.Matrix
	fittedAt time.Time
}

// Build fits the vector-space model over the catalog's descriptions.
func Build(cat domcat.Catalog, tok vsm.Tokenizer, now time.Time) (*Snapshot, error) {
	vocab, matrix := vsm.Fit(tok, cat.Descriptions())
	return newSnapshot(cat, vocab, matrix, now)
}

func newSnapshot(cat domcat.Catalog, vocab *vsm.Vocabulary, matrix *vsm.Matrix, now time.Time) (*Snapshot, error) {
	if matrix.Vocabulary() != vocab {
		return nil, fmt.Errorf("%w: matrix was fitted with a different vocabulary", vsm.ErrVocabularyMismatch)
	}
	if matrix.Rows() != cat.Len() {
		return nil, fmt.Errorf("%w: matrix has %d rows for %d products",
			vsm.ErrVocabularyMismatch, matrix.Rows(), cat.Len())
	}
	return &Snapshot{catalog: cat, vocab: vocab, matrix: matrix, fittedAt: now}, nil
}

// Catalog returns the indexed catalog.
func (s *Snapshot) Catalog() *domcat.Catalog { return &s.catalog }

// Vocabulary returns the fitted vocabulary.
func (s *Snapshot) Vocabulary() *vsm.Vocabulary { return s.vocab }

// Matrix returns the document matrix; row i is catalog position i.
func (s *Snapshot) Matrix() *vsm.Matrix { return s.matrix }

// FittedAt returns when the snapshot was built.
func (s *Snapshot) FittedAt() time.Time { return s.fittedAt }
