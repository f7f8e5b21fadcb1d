package faq

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"sync/atomic"
	"time"

	apperrors "github.com/finvero/faqbot/pkg/errors"
)

// Service exposes the FAQ matching surface to the transports.
type Service interface {
	Answer(ctx context.Context, req Request) (Outcome, error)
	Search(ctx context.Context, req Request) ([]SearchMatch, error)
	Trending(ctx context.Context) ([]TrendingQuery, error)
	Stats(ctx context.Context) Stats
	Reload(ctx context.Context) error
}

const loadTimeout = 10 * time.Second

type service struct {
	cfg      Config
	source   Source
	trends   TrendStore
	selector *Selector
	logger   *slog.Logger
	matcher  atomic.Pointer[Matcher]
}

// NewService wires the FAQ domain and performs the initial knowledge
// base load. A service whose corpus cannot load does not construct, so
// a started process is always able to answer.
func NewService(cfg Config, source Source, sink EventSink, trends TrendStore, logger *slog.Logger) (Service, error) {
	s := &service{
		cfg:      cfg,
		source:   source,
		trends:   trends,
		selector: NewSelector(cfg.SimilarityThreshold, sink, trends, logger),
		logger:   logger.With("component", "faq.service"),
	}
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) Answer(ctx context.Context, req Request) (Outcome, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Outcome{}, apperrors.Wrap("invalid_input", "message cannot be empty", nil)
	}
	match, queryVec := s.matcher.Load().match(message)
	return s.selector.Select(ctx, message, match, queryVec), nil
}

func (s *service) Search(ctx context.Context, req Request) ([]SearchMatch, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperrors.Wrap("invalid_input", "message cannot be empty", nil)
	}
	matches := s.matcher.Load().TopMatches(message, s.cfg.TopSearchResults)
	results := make([]SearchMatch, 0, len(matches))
	for _, match := range matches {
		if match.Score < s.cfg.SimilarityThreshold {
			continue
		}
		results = append(results, SearchMatch{
			ID:       match.Entry.ID,
			Question: match.Entry.Question,
			Answer:   match.Entry.Answer,
			Score:    match.Score,
		})
	}
	return results, nil
}

func (s *service) Trending(ctx context.Context) ([]TrendingQuery, error) {
	if s.trends == nil {
		return nil, nil
	}
	recs, err := s.trends.TopQueries(ctx, s.cfg.TrendingLimit)
	if err != nil {
		return nil, apperrors.Wrap("faq_error", "failed to load trending queries", err)
	}
	return recs, nil
}

func (s *service) Stats(ctx context.Context) Stats {
	m := s.matcher.Load()
	c := m.corpus
	var questionLen, answerLen int
	for _, entry := range c.entries {
		questionLen += len(entry.Question)
		answerLen += len(entry.Answer)
	}
	n := float64(c.Len())
	return Stats{
		TotalEntries:      c.Len(),
		AvgQuestionLength: round1(float64(questionLen) / n),
		AvgAnswerLength:   round1(float64(answerLen) / n),
		UniqueIDs:         len(c.byID),
		VocabularySize:    m.VocabularySize(),
		Threshold:         s.cfg.SimilarityThreshold,
		Initialized:       true,
		Source:            s.source.Describe(),
	}
}

// Reload fetches and refits the knowledge base, then swaps the fitted
// matcher in atomically. On failure the previous corpus keeps serving.
func (s *service) Reload(ctx context.Context) error {
	entries, err := s.source.Load(ctx)
	if err != nil {
		return apperrors.Wrap("kb_error", "knowledge base load failed", err)
	}
	corpus, err := NewCorpus(entries)
	if err != nil {
		return err
	}
	matcher := NewMatcher(corpus, s.cfg.MaxVocabulary)
	s.matcher.Store(matcher)
	s.logger.Info("knowledge base ready",
		"entries", corpus.Len(),
		"vocabulary", matcher.VocabularySize(),
		"source", s.source.Describe())
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
