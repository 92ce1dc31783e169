package vsm

import (
	"errors"
	"math"
	"sort"
)

// ErrVocabularyMismatch is the panic value (wrapped) when vectors or matrices
// from different fits are combined.
var ErrVocabularyMismatch = errors.New("vocabulary mismatch")

// Vocabulary maps terms to dimensions and smoothed IDF weights.
type Vocabulary struct {
	tokenizer Tokenizer
	terms     []string // sorted; terms[dim] is the term of dimension dim
	dims      map[string]int
	idf       []float64
	docs      int
}

// Size returns the number of dimensions.
func (v *Vocabulary) Size() int { return len(v.terms) }

// Documents returns the number of documents the vocabulary was fitted on.
func (v *Vocabulary) Documents() int { return v.docs }

// Tokenizer returns the tokenizer shared by fit and transform.
func (v *Vocabulary) Tokenizer() Tokenizer { return v.tokenizer }

// Terms returns the vocabulary terms in dimension order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Lookup returns the dimension and IDF of term.
func (v *Vocabulary) Lookup(term string) (dim int, idf float64, ok bool) {
	dim, ok = v.dims[term]
	if !ok {
		return 0, 0, false
	}
	return dim, v.idf[dim], true
}

// Matrix holds one normalized document vector per row.
type Matrix struct {
	vocab *Vocabulary
	rows  []Vector
}

// Vocabulary returns the vocabulary the matrix was fitted with.
func (m *Matrix) Vocabulary() *Vocabulary { return m.vocab }

// Rows returns the number of document rows.
func (m *Matrix) Rows() int { return len(m.rows) }

// Dim returns the dimension of every row.
func (m *Matrix) Dim() int { return m.vocab.Size() }

// Row returns the vector of document i.
func (m *Matrix) Row(i int) Vector { return m.rows[i] }

// Fit builds the vocabulary and document matrix for docs.
//
// idf(t) = ln((1+N)/(1+df(t))) + 1 and w(t,d) = count(t,d) * idf(t);
// each row is then scaled to unit length. Rarer terms always weigh more,
// and a document without tokens yields the zero vector.
func Fit(tok Tokenizer, docs []string) (*Vocabulary, *Matrix) {
	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokens := tok.Tokens(doc)
		tokenized[i] = tokens

		seen := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	dims := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, t := range terms {
		dims[t] = i
		idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	vocab := &Vocabulary{tokenizer: tok, terms: terms, dims: dims, idf: idf, docs: len(docs)}

	rows := make([]Vector, len(docs))
	for i, tokens := range tokenized {
		rows[i] = vocab.weigh(tokens)
	}

	return vocab, &Matrix{vocab: vocab, rows: rows}
}

// Transform projects text into the vocabulary's space without refitting.
// Unknown terms contribute nothing; text with no known terms yields the zero vector.
func Transform(vocab *Vocabulary, text string) Vector {
	return vocab.weigh(vocab.tokenizer.Tokens(text))
}

// weigh computes the normalized TF-IDF vector of tokens, skipping unknown terms.
func (v *Vocabulary) weigh(tokens []string) Vector {
	weights := make(map[int]float64, len(tokens))
	for _, t := range tokens {
		if dim, ok := v.dims[t]; ok {
			weights[dim] += v.idf[dim]
		}
	}
	return newVector(v, weights).normalized()
}
