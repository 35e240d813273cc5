package engine

import (
	"fmt"
	"math"
	"sort"
)

// Vector is a sparse term-weight vector.
type Vector map[string]float64

// terms returns the vector's terms sorted, so float sums are reproducible across calls.
func (v Vector) terms() []string {
	out := make([]string, 0, len(v))
	for term := range v {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

// Vectorizer turns a corpus of token documents into vectors sharing one vocabulary.
// Implementations may fit per call or serve precomputed embeddings.
type Vectorizer interface {
	Vectorize(corpus [][]string) ([]Vector, error)
}

// ErrDegenerateCorpus is returned when a corpus has too little lexical diversity to vectorize.
var ErrDegenerateCorpus = fmt.Errorf("%w: degenerate corpus", ErrSignalUnavailable)

// TFIDFVectorizer fits a smoothed TF-IDF transform on the given corpus and returns
// L2-normalized vectors. IDF is ln((1+n)/(1+df)) + 1.
type TFIDFVectorizer struct {
	// MinVocabulary is the smallest vocabulary accepted; values below 2 use 2.
	MinVocabulary int
}

// Vectorize implements Vectorizer.
func (v TFIDFVectorizer) Vectorize(corpus [][]string) ([]Vector, error) {
	minVocab := v.MinVocabulary
	if minVocab < 2 {
		minVocab = 2
	}
	if len(corpus) == 0 {
		return nil, ErrDegenerateCorpus
	}

	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	if len(df) < minVocab {
		return nil, ErrDegenerateCorpus
	}

	n := float64(len(corpus))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}

	out := make([]Vector, len(corpus))
	for i, doc := range corpus {
		vec := make(Vector, len(doc))
		for _, term := range doc {
			vec[term]++
		}
		norm := 0.0
		for _, term := range vec.terms() {
			w := vec[term] * idf[term]
			vec[term] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range vec {
				vec[term] /= norm
			}
		}
		out[i] = vec
	}
	return out, nil
}

// Cosine returns the cosine similarity of two sparse vectors, or 0 if either is empty.
func Cosine(a, b Vector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot, normA, normB float64
	for _, term := range a.terms() {
		wa := a[term]
		dot += wa * b[term]
		normA += wa * wa
	}
	for _, term := range b.terms() {
		normB += b[term] * b[term]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// ScoreSimilarity scores each candidate by its mean cosine similarity to the viewed animals.
// Viewed and candidate documents are vectorized together so they share vocabulary and IDF.
func ScoreSimilarity(vectorizer Vectorizer, viewed, candidates []Animal) (map[string]float64, error) {
	if len(viewed) == 0 || len(candidates) == 0 {
		return nil, ErrSignalUnavailable
	}
	if vectorizer == nil {
		vectorizer = TFIDFVectorizer{}
	}

	corpus := make([][]string, 0, len(viewed)+len(candidates))
	for _, a := range viewed {
		corpus = append(corpus, ContentTokens(a))
	}
	for _, a := range candidates {
		corpus = append(corpus, ContentTokens(a))
	}

	vectors, err := vectorizer.Vectorize(corpus)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(corpus) {
		return nil, fmt.Errorf("vectorizer returned %d vectors for %d documents", len(vectors), len(corpus))
	}

	viewedVecs := vectors[:len(viewed)]
	scores := make(map[string]float64, len(candidates))
	for i, cand := range candidates {
		candVec := vectors[len(viewed)+i]
		total := 0.0
		for _, vv := range viewedVecs {
			total += Cosine(candVec, vv)
		}
		scores[cand.ID] = total / float64(len(viewedVecs))
	}
	return scores, nil
}
