// Package vectorizer turns free-text event descriptions into fixed-width
// term vectors for similarity scoring.
package vectorizer

import (
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/okian/festa/internal/domain/model"
)

// TFIDF embeds documents into a fixed vocabulary learned from a corpus.
// The vocabulary is frozen at construction so every vector has the same
// width; unknown terms are ignored. Vector results are cached per text.
type TFIDF struct {
	vocab map[string]int
	idf   []float64

	mu    sync.RWMutex
	cache map[string][]float64
}

// NewTFIDF builds the vocabulary and inverse document frequencies from
// the given corpus. An empty corpus yields a vectorizer that maps every
// text to an empty vector.
func NewTFIDF(corpus ...string) *TFIDF {
	t := &TFIDF{
		vocab: make(map[string]int),
		cache: make(map[string][]float64),
	}

	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, term := range tokenize(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			docFreq[term]++
		}
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	t.idf = make([]float64, len(terms))
	for i, term := range terms {
		t.vocab[term] = i
		// Smoothed IDF keeps terms present in every document from
		// vanishing entirely.
		t.idf[i] = math.Log(float64(1+len(corpus))/float64(1+docFreq[term])) + 1
	}

	return t
}

// Dimensions returns the width of produced vectors.
func (t *TFIDF) Dimensions() int {
	return len(t.vocab)
}

// Vector embeds text into the frozen vocabulary.
func (t *TFIDF) Vector(text string) []float64 {
	t.mu.RLock()
	if vec, ok := t.cache[text]; ok {
		t.mu.RUnlock()
		return append([]float64(nil), vec...)
	}
	t.mu.RUnlock()

	vec := make([]float64, len(t.vocab))
	terms := tokenize(text)
	if len(terms) > 0 {
		for _, term := range terms {
			if i, ok := t.vocab[term]; ok {
				vec[i]++
			}
		}
		for i := range vec {
			vec[i] = vec[i] / float64(len(terms)) * t.idf[i]
		}
	}

	t.mu.Lock()
	t.cache[text] = vec
	t.mu.Unlock()

	return append([]float64(nil), vec...)
}

// Vectorizer adapts the embedder to the profile's function type.
func (t *TFIDF) Vectorizer() model.Vectorizer {
	return t.Vector
}

// tokenize lowercases and splits on anything that is not a letter or
// digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
