package vsm

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball/english"
)

// wordRegex matches runs of two or more word characters.
var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenizer splits text into normalized terms.
// The zero value lowercases and splits without stemming.
type Tokenizer struct {
	stem bool
}

// TokenizerOption configures a Tokenizer.
type TokenizerOption func(*Tokenizer)

// WithStemming enables English Snowball stemming of every term.
func WithStemming(enabled bool) TokenizerOption {
	return func(t *Tokenizer) { t.stem = enabled }
}

// NewTokenizer creates a Tokenizer.
func NewTokenizer(opts ...TokenizerOption) Tokenizer {
	var t Tokenizer
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Stemming reports whether terms are stemmed.
func (t Tokenizer) Stemming() bool { return t.stem }

// Tokens returns the terms of text in order of appearance.
func (t Tokenizer) Tokens(text string) []string {
	tokens := wordRegex.FindAllString(strings.ToLower(text), -1)
	if !t.stem {
		return tokens
	}
	for i, tok := range tokens {
		if s := english.Stem(tok, true); s != "" {
			tokens[i] = s
		}
	}
	return tokens
}
