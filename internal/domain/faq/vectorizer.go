package faq

import (
	"math"
	"sort"
)

// vectorizer holds the fitted TF-IDF weighting: a term-to-column map
// and the smoothed inverse document frequency per column.
type vectorizer struct {
	vocab map[string]int
	idf   []float64
}

type termStat struct {
	term  string
	df    int
	first int
}

// fitVectorizer learns the vocabulary and IDF weights from the corpus
// questions. When the vocabulary exceeds maxVocabulary, terms are kept
// by descending document frequency, ties broken by first appearance in
// the scan, so the same corpus always yields the same vocabulary.
func fitVectorizer(questions []string, maxVocabulary int) *vectorizer {
	stats := make(map[string]*termStat)
	order := 0
	for _, q := range questions {
		seen := make(map[string]struct{})
		for _, term := range ngramTerms(tokenize(q)) {
			st, ok := stats[term]
			if !ok {
				st = &termStat{term: term, first: order}
				order++
				stats[term] = st
			}
			if _, counted := seen[term]; !counted {
				st.df++
				seen[term] = struct{}{}
			}
		}
	}

	selected := make([]*termStat, 0, len(stats))
	for _, st := range stats {
		selected = append(selected, st)
	}
	if maxVocabulary > 0 && len(selected) > maxVocabulary {
		sort.Slice(selected, func(i, j int) bool {
			if selected[i].df != selected[j].df {
				return selected[i].df > selected[j].df
			}
			return selected[i].first < selected[j].first
		})
		selected = selected[:maxVocabulary]
	}
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].first < selected[j].first
	})

	vocab := make(map[string]int, len(selected))
	idf := make([]float64, len(selected))
	n := float64(len(questions))
	for col, st := range selected {
		vocab[st.term] = col
		idf[col] = math.Log((1+n)/(1+float64(st.df))) + 1
	}
	return &vectorizer{vocab: vocab, idf: idf}
}

// transform projects text into the fitted space: raw term counts
// weighted by IDF, then L2-normalized. Terms outside the vocabulary are
// ignored; a projection with no overlap at all returns nil.
func (v *vectorizer) transform(text string) []float64 {
	if len(v.vocab) == 0 {
		return nil
	}
	vec := make([]float64, len(v.idf))
	hit := false
	for _, term := range ngramTerms(tokenize(text)) {
		if col, ok := v.vocab[term]; ok {
			vec[col]++
			hit = true
		}
	}
	if !hit {
		return nil
	}
	var norm float64
	for col, count := range vec {
		if count == 0 {
			continue
		}
		vec[col] = count * v.idf[col]
		norm += vec[col] * vec[col]
	}
	norm = math.Sqrt(norm)
	for col := range vec {
		vec[col] /= norm
	}
	return vec
}

func (v *vectorizer) size() int {
	return len(v.vocab)
}
