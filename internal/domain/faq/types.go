package faq

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one knowledge base record. The JSON tags double as the
// storage schema for file and object backed sources.
type Entry struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	SourceTag string `json:"source_tag"`
}

// Request encapsulates a chat or search query.
type Request struct {
	Message string `json:"message"`
}

// Match pairs a knowledge base entry with its cosine similarity score.
// The matcher always produces one, even when the score is 0.
type Match struct {
	Entry Entry
	Score float64
}

// Outcome is the selector's decision for a single query. When Answered
// is false the caller supplies its own fallback text; the zero value is
// a no-match.
type Outcome struct {
	Answered bool
	Answer   string
	Sources  []string
	EntryID  string
	Score    float64
}

// SearchMatch is one row of a top-k search response.
type SearchMatch struct {
	ID       string  `json:"id"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"similarity_score"`
}

// TrendingQuery represents a frequently asked question.
type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// QueryEvent records one selector decision for the match log.
type QueryEvent struct {
	ID       uuid.UUID
	AskedAt  time.Time
	Query    string
	EntryID  string
	Score    float64
	Answered bool
	QueryVec []float32
}

// Stats reports knowledge base and matcher figures for monitoring.
type Stats struct {
	TotalEntries      int     `json:"total_entries"`
	AvgQuestionLength float64 `json:"avg_question_length"`
	AvgAnswerLength   float64 `json:"avg_answer_length"`
	UniqueIDs         int     `json:"unique_ids"`
	VocabularySize    int     `json:"vocabulary_size"`
	Threshold         float64 `json:"similarity_threshold"`
	Initialized       bool    `json:"initialized"`
	Source            string  `json:"source"`
}
