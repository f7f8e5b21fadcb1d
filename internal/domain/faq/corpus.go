package faq

import (
	"fmt"
	"strings"

	apperrors "github.com/finvero/faqbot/pkg/errors"
)

// Corpus is a validated, ordered knowledge base. Entries keep the order
// the source produced them in.
type Corpus struct {
	entries []Entry
	byID    map[string]int
}

// NewCorpus checks raw entries: the collection must be non-empty, every
// field non-blank and ids unique. Any violation is a kb_error.
func NewCorpus(entries []Entry) (*Corpus, error) {
	if len(entries) == 0 {
		return nil, apperrors.Wrap("kb_error", "knowledge base is empty", nil)
	}
	byID := make(map[string]int, len(entries))
	for i, entry := range entries {
		if strings.TrimSpace(entry.ID) == "" {
			return nil, apperrors.Wrap("kb_error", fmt.Sprintf("entry %d: id is blank", i), nil)
		}
		if strings.TrimSpace(entry.Question) == "" {
			return nil, apperrors.Wrap("kb_error", fmt.Sprintf("entry %q: question is blank", entry.ID), nil)
		}
		if strings.TrimSpace(entry.Answer) == "" {
			return nil, apperrors.Wrap("kb_error", fmt.Sprintf("entry %q: answer is blank", entry.ID), nil)
		}
		if strings.TrimSpace(entry.SourceTag) == "" {
			return nil, apperrors.Wrap("kb_error", fmt.Sprintf("entry %q: source_tag is blank", entry.ID), nil)
		}
		if prev, dup := byID[entry.ID]; dup {
			return nil, apperrors.Wrap("kb_error", fmt.Sprintf("duplicate id %q (entries %d and %d)", entry.ID, prev, i), nil)
		}
		byID[entry.ID] = i
	}
	return &Corpus{entries: entries, byID: byID}, nil
}

func (c *Corpus) Len() int {
	return len(c.entries)
}

func (c *Corpus) Entry(i int) Entry {
	return c.entries[i]
}

// EntryByID looks an entry up by its identifier.
func (c *Corpus) EntryByID(id string) (Entry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}
