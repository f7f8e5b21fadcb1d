package faq

import (
	"math"
	"testing"
)

func mustCorpus(t *testing.T, entries []Entry) *Corpus {
	t.Helper()
	corpus, err := NewCorpus(entries)
	if err != nil {
		t.Fatalf("corpus rejected: %v", err)
	}
	return corpus
}

func financeEntries() []Entry {
	return []Entry{
		{ID: "ebitda", Question: "What is EBITDA?", Answer: "EBITDA is earnings before interest, taxes, depreciation and amortization.", SourceTag: "faq#ebitda"},
		{ID: "margin", Question: "How do you compute the gross margin percentage?", Answer: "Divide gross profit by revenue.", SourceTag: "faq#margin"},
		{ID: "cashflow", Question: "How is free cash flow derived from operations?", Answer: "Subtract capital expenditures from operating cash flow.", SourceTag: "faq#cashflow"},
	}
}

func TestMatcherSelfSimilarity(t *testing.T) {
	corpus := mustCorpus(t, financeEntries())
	m := NewMatcher(corpus, 0)

	for i := 0; i < corpus.Len(); i++ {
		entry := corpus.Entry(i)
		match := m.Match(entry.Question)
		if match.Entry.ID != entry.ID {
			t.Fatalf("query %q matched %q, want itself", entry.Question, match.Entry.ID)
		}
		if math.Abs(match.Score-1) > 1e-9 {
			t.Fatalf("query %q self-score = %v, want 1", entry.Question, match.Score)
		}
	}
}

func TestMatcherDeterministic(t *testing.T) {
	corpus := mustCorpus(t, financeEntries())
	query := "gross margin percentage"

	first := NewMatcher(corpus, 0).Match(query)
	for i := 0; i < 5; i++ {
		got := NewMatcher(corpus, 0).Match(query)
		if got.Entry.ID != first.Entry.ID || got.Score != first.Score {
			t.Fatalf("refit %d diverged: %v vs %v", i, got, first)
		}
	}
}

func TestMatcherGarbageQuery(t *testing.T) {
	corpus := mustCorpus(t, financeEntries())
	m := NewMatcher(corpus, 0)

	for _, query := range []string{"☄ ¤ ※", "zzzz qqqq xxxx", "¿?¡!"} {
		match := m.Match(query)
		if match.Score != 0 {
			t.Fatalf("query %q scored %v, want 0", query, match.Score)
		}
		if match.Entry.ID != corpus.Entry(0).ID {
			t.Fatalf("zero-score match should carry the first entry, got %q", match.Entry.ID)
		}
	}
}

func TestMatcherTieBreakKeepsLoadOrder(t *testing.T) {
	corpus := mustCorpus(t, []Entry{
		{ID: "first", Question: "What is EBITDA?", Answer: "a", SourceTag: "faq#first"},
		{ID: "second", Question: "What is EBITDA?", Answer: "b", SourceTag: "faq#second"},
	})
	m := NewMatcher(corpus, 0)

	for i := 0; i < 10; i++ {
		if match := m.Match("what is ebitda"); match.Entry.ID != "first" {
			t.Fatalf("tie broke to %q, want first", match.Entry.ID)
		}
	}
}

func TestMatcherSingleEntryCorpus(t *testing.T) {
	corpus := mustCorpus(t, financeEntries()[:1])
	m := NewMatcher(corpus, 0)

	if match := m.Match("What is EBITDA?"); math.Abs(match.Score-1) > 1e-9 {
		t.Fatalf("self-score = %v, want 1", match.Score)
	}
	if match := m.Match("unrelated words entirely"); match.Score != 0 {
		t.Fatalf("disjoint query scored %v, want 0", match.Score)
	}
}

func TestMatcherTopMatches(t *testing.T) {
	corpus := mustCorpus(t, []Entry{
		{ID: "a", Question: "alpha beta gamma", Answer: "x", SourceTag: "t#a"},
		{ID: "b", Question: "alpha beta", Answer: "x", SourceTag: "t#b"},
		{ID: "c", Question: "alpha", Answer: "x", SourceTag: "t#c"},
		{ID: "d", Question: "zeta", Answer: "x", SourceTag: "t#d"},
	})
	m := NewMatcher(corpus, 0)

	matches := m.TopMatches("alpha beta", 10)
	if len(matches) != 3 {
		t.Fatalf("expected 3 scored entries, got %d", len(matches))
	}
	wantOrder := []string{"b", "a", "c"}
	for i, want := range wantOrder {
		if matches[i].Entry.ID != want {
			t.Fatalf("position %d = %q, want %q", i, matches[i].Entry.ID, want)
		}
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Fatalf("scores not descending at %d", i)
		}
	}
	if math.Abs(matches[0].Score-1) > 1e-9 {
		t.Fatalf("exact phrasing scored %v, want 1", matches[0].Score)
	}

	if got := m.TopMatches("alpha beta", 2); len(got) != 2 || got[0].Entry.ID != "b" {
		t.Fatalf("k=2 truncation wrong: %v", got)
	}
	if got := m.TopMatches("☄ ¤", 5); got != nil {
		t.Fatalf("zero-vector query should return nil, got %v", got)
	}
	if got := m.TopMatches("alpha", 0); got != nil {
		t.Fatalf("k=0 should return nil, got %v", got)
	}
}
