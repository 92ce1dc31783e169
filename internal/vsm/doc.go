// Package vsm implements the vector-space model behind product search.
//
// Fit builds a TF-IDF vocabulary and one L2-normalized sparse vector per
// document. Transform projects query text into the same space using an
// already fitted vocabulary, and Score ranks a subset of document rows by
// cosine similarity against a query vector.
//
// Vocabularies and matrices are immutable after Fit and safe for concurrent
// readers. Vectors from different fits must never be mixed: Score panics
// when a query was not projected through the matrix's own vocabulary.
package vsm
