package kbsource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/finvero/faqbot/internal/domain/faq"
)

// File reads the knowledge base from a JSON array on disk.
type File struct {
	path string
}

// NewFile constructs the file source.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load decodes the entries, preserving file order.
func (f *File) Load(_ context.Context) ([]faq.Entry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	var entries []faq.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode knowledge base %s: %w", f.path, err)
	}
	return entries, nil
}

func (f *File) Describe() string {
	return "file:" + f.path
}

var _ faq.Source = (*File)(nil)
