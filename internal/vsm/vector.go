package vsm

import (
	"fmt"
	"math"
	"sort"
)

// Vector is a sparse vector in a vocabulary's space.
// Indices are strictly increasing.
type Vector struct {
	vocab *Vocabulary
	dim   int
	idx   []int
	val   []float64
}

// newVector builds a Vector in vocab's space from per-dimension weights.
func newVector(vocab *Vocabulary, weights map[int]float64) Vector {
	idx := make([]int, 0, len(weights))
	for i, w := range weights {
		if w != 0 {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)

	val := make([]float64, len(idx))
	for k, i := range idx {
		val[k] = weights[i]
	}
	return Vector{vocab: vocab, dim: vocab.Size(), idx: idx, val: val}
}

// Vocabulary returns the vocabulary the vector was projected through.
func (v Vector) Vocabulary() *Vocabulary { return v.vocab }

// Dim returns the dimension of the space the vector lives in.
func (v Vector) Dim() int { return v.dim }

// NNZ returns the number of non-zero components.
func (v Vector) NNZ() int { return len(v.idx) }

// At returns the component at dimension i.
func (v Vector) At(i int) float64 {
	k := sort.SearchInts(v.idx, i)
	if k < len(v.idx) && v.idx[k] == i {
		return v.val[k]
	}
	return 0
}

// IsZero reports whether every component is zero.
func (v Vector) IsZero() bool { return len(v.idx) == 0 }

// Norm returns the Euclidean length.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.val {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product. Panics if the dimensions differ.
func (v Vector) Dot(o Vector) float64 {
	if v.dim != o.dim {
		panic(fmt.Errorf("%w: dot of %d-dim and %d-dim vectors", ErrVocabularyMismatch, v.dim, o.dim))
	}
	var sum float64
	i, j := 0, 0
	for i < len(v.idx) && j < len(o.idx) {
		switch {
		case v.idx[i] == o.idx[j]:
			sum += v.val[i] * o.val[j]
			i++
			j++
		case v.idx[i] < o.idx[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// normalized returns v scaled to unit length; the zero vector is returned unchanged.
func (v Vector) normalized() Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	val := make([]float64, len(v.val))
	for k, x := range v.val {
		val[k] = x / n
	}
	return Vector{vocab: v.vocab, dim: v.dim, idx: v.idx, val: val}
}
