package faq

import "sort"

// Matcher is a fitted similarity index over one corpus snapshot. It is
// immutable after construction and safe for concurrent readers.
type Matcher struct {
	corpus *Corpus
	vec    *vectorizer
	rows   [][]float64
}

// NewMatcher fits the TF-IDF space over the corpus questions and
// precomputes one normalized row vector per entry.
func NewMatcher(corpus *Corpus, maxVocabulary int) *Matcher {
	questions := make([]string, corpus.Len())
	for i := range questions {
		questions[i] = corpus.Entry(i).Question
	}
	vec := fitVectorizer(questions, maxVocabulary)
	rows := make([][]float64, len(questions))
	for i, q := range questions {
		rows[i] = vec.transform(q)
	}
	return &Matcher{corpus: corpus, vec: vec, rows: rows}
}

// Match scores the query against every entry and returns the best one.
// Equal scores keep the earliest loaded entry. A query with no
// vocabulary overlap scores 0 against the first entry.
func (m *Matcher) Match(query string) Match {
	match, _ := m.match(query)
	return match
}

func (m *Matcher) match(query string) (Match, []float64) {
	queryVec := m.vec.transform(query)
	bestIdx := 0
	bestScore := 0.0
	if queryVec != nil {
		for i, row := range m.rows {
			if score := dot(queryVec, row); score > bestScore {
				bestIdx = i
				bestScore = score
			}
		}
	}
	return Match{Entry: m.corpus.Entry(bestIdx), Score: clampScore(bestScore)}, queryVec
}

// TopMatches returns up to k entries sharing vocabulary with the query,
// ordered by score descending, ties by load order.
func (m *Matcher) TopMatches(query string, k int) []Match {
	if k <= 0 {
		return nil
	}
	queryVec := m.vec.transform(query)
	if queryVec == nil {
		return nil
	}
	matches := make([]Match, 0, len(m.rows))
	for i, row := range m.rows {
		score := dot(queryVec, row)
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{Entry: m.corpus.Entry(i), Score: clampScore(score)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// VocabularySize reports the number of fitted terms.
func (m *Matcher) VocabularySize() int {
	return m.vec.size()
}

func dot(a, b []float64) float64 {
	if len(b) == 0 {
		return 0
	}
	var sum float64
	for i, av := range a {
		sum += av * b[i]
	}
	return sum
}

func clampScore(s float64) float64 {
	if s > 1 {
		return 1
	}
	return s
}
