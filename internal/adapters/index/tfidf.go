// Package index provides the lexical similarity index adapter.
// It implements ports.SimilarityIndex with a sparse TF-IDF vector space:
// term frequencies weighted by smoothed inverse document frequency,
// L2-normalized rows, cosine similarity at query time.
package index

import (
	"math"
	"regexp"
	"strings"

	"faqdesk/internal/domain/entities"
	"faqdesk/internal/domain/ports"
)

// MatchThreshold is the fixed similarity cutoff. A query is a hit only when
// its best cosine score strictly exceeds this value.
const MatchThreshold = 0.25

// tokenPattern matches word tokens of two or more characters, lowercased
// before matching. Single-character tokens carry no weight.
var tokenPattern = regexp.MustCompile(`\w\w+`)

// Builder fits TF-IDF vector spaces over QA pairs.
type Builder struct {
	threshold float64
}

// NewBuilder creates a builder using the fixed match threshold.
func NewBuilder() *Builder {
	return &Builder{threshold: MatchThreshold}
}

// TFIDFIndex is a fitted vector space: one normalized sparse row per pair.
// Immutable after build, safe for concurrent readers.
type TFIDFIndex struct {
	vocab     map[string]int // term -> column id
	idf       []float64      // per column
	rows      []map[int]float64
	answers   []string
	threshold float64
}

// Build fits the weighting model on each pair's concatenated question and
// answer and transforms that same corpus into normalized vectors.
func (b *Builder) Build(pairs []entities.QAPair) ports.SimilarityIndex {
	docs := make([][]string, len(pairs))
	answers := make([]string, len(pairs))
	for i, p := range pairs {
		docs[i] = tokenize(p.Question + " " + p.Answer)
		answers[i] = p.Answer
	}

	vocab := make(map[string]int)
	df := []int{}
	for _, doc := range docs {
		seen := make(map[int]bool)
		for _, term := range doc {
			id, ok := vocab[term]
			if !ok {
				id = len(vocab)
				vocab[term] = id
				df = append(df, 0)
			}
			if !seen[id] {
				df[id]++
				seen[id] = true
			}
		}
	}

	// Smoothed idf: ln((1+n)/(1+df)) + 1. Every fitted term keeps a
	// positive weight even when it appears in all documents.
	n := len(docs)
	idf := make([]float64, len(df))
	for id, count := range df {
		idf[id] = math.Log(float64(1+n)/float64(1+count)) + 1
	}

	idx := &TFIDFIndex{
		vocab:     vocab,
		idf:       idf,
		answers:   answers,
		threshold: b.threshold,
	}
	idx.rows = make([]map[int]float64, len(docs))
	for i, doc := range docs {
		idx.rows[i] = idx.vectorize(doc)
	}
	return idx
}

// Query transforms text into the fitted space and scans every stored row for
// the arg-max cosine similarity. Out-of-vocabulary terms contribute zero
// weight; ties resolve to the lowest index.
func (x *TFIDFIndex) Query(text string) entities.Match {
	if len(x.rows) == 0 {
		return entities.Match{Index: -1}
	}

	vec := x.vectorize(tokenize(text))

	best, bestScore := 0, 0.0
	for i, row := range x.rows {
		score := dot(vec, row)
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	m := entities.Match{Index: best, Score: bestScore}
	if bestScore > x.threshold {
		m.Hit = true
		m.Answer = x.answers[best]
	}
	return m
}

// Len returns the number of indexed pairs.
func (x *TFIDFIndex) Len() int {
	return len(x.rows)
}

// vectorize builds an L2-normalized tf-idf vector over the fitted vocabulary.
func (x *TFIDFIndex) vectorize(tokens []string) map[int]float64 {
	counts := make(map[int]float64)
	for _, term := range tokens {
		if id, ok := x.vocab[term]; ok {
			counts[id]++
		}
	}

	var norm float64
	for id, tf := range counts {
		w := tf * x.idf[id]
		counts[id] = w
		norm += w * w
	}
	if norm == 0 {
		return counts
	}
	norm = math.Sqrt(norm)
	for id, w := range counts {
		counts[id] = w / norm
	}
	return counts
}

// dot computes cosine similarity of two normalized sparse vectors.
func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for id, w := range a {
		sum += w * b[id]
	}
	return sum
}

// tokenize lowercases text and splits it into word tokens.
func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}
