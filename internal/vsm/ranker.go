package vsm

import "fmt"

// Scored is the similarity of one matrix row to a query.
type Scored struct {
	Row   int
	Score float64
}

// Score computes cosine similarity between query and each of rows of m.
// Results are in the order of rows, so callers can map them back to documents.
// A zero query scores 0 against every row.
//
// Score panics with ErrVocabularyMismatch if the query was not projected
// through m's vocabulary space or a row is out of range.
func Score(query Vector, m *Matrix, rows []int) []Scored {
	if query.Dim() != m.Dim() {
		panic(fmt.Errorf("%w: query has %d dimensions, matrix has %d", ErrVocabularyMismatch, query.Dim(), m.Dim()))
	}
	if query.Vocabulary() != m.Vocabulary() {
		panic(fmt.Errorf("%w: query was projected through another fit", ErrVocabularyMismatch))
	}

	out := make([]Scored, len(rows))
	qn := query.Norm()
	for k, row := range rows {
		if row < 0 || row >= m.Rows() {
			panic(fmt.Errorf("%w: row %d outside matrix of %d rows", ErrVocabularyMismatch, row, m.Rows()))
		}
		out[k] = Scored{Row: row, Score: cosine(query, qn, m.rows[row])}
	}
	return out
}

func cosine(q Vector, qn float64, d Vector) float64 {
	dn := d.Norm()
	if qn == 0 || dn == 0 {
		return 0
	}
	s := q.Dot(d) / (qn * dn)
	// Clamp rounding noise so scores stay in [0,1].
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	}
	return s
}
