package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finvero/faqbot/internal/domain/faq"
	"github.com/finvero/faqbot/internal/infra/config"
	apperrors "github.com/finvero/faqbot/pkg/errors"
)

func TestRouter_ChatSuccess(t *testing.T) {
	svc := &stubFAQ{
		answerFn: func(ctx context.Context, req faq.Request) (faq.Outcome, error) {
			require.Equal(t, "What is EBITDA?", req.Message)
			return faq.Outcome{
				Answered: true,
				Answer:   "EBITDA is earnings before interest, taxes, depreciation and amortization.",
				Sources:  []string{"faq#ebitda"},
				EntryID:  "ebitda",
				Score:    0.92,
			}, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/chat", `{"message":"What is EBITDA?"}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Answer  string   `json:"answer"`
		Sources []string `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "EBITDA is earnings before interest, taxes, depreciation and amortization.", got.Answer)
	require.Equal(t, []string{"faq#ebitda"}, got.Sources)
}

func TestRouter_ChatFallback(t *testing.T) {
	svc := &stubFAQ{
		answerFn: func(ctx context.Context, req faq.Request) (faq.Outcome, error) {
			return faq.Outcome{Answered: false, Score: 0.12}, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/chat", `{"message":"What is the capital of France?"}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Answer  string   `json:"answer"`
		Sources []string `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, testFallbackMessage, got.Answer)
	require.NotNil(t, got.Sources)
	require.Empty(t, got.Sources)
}

func TestRouter_ChatEmptyMessage(t *testing.T) {
	svc := &stubFAQ{
		answerFn: func(ctx context.Context, req faq.Request) (faq.Outcome, error) {
			return faq.Outcome{}, apperrors.Wrap("invalid_input", "message cannot be empty", nil)
		},
	}

	recorder := performRequest(http.MethodPost, "/chat", `{"message":"   "}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "message cannot be empty")
}

func TestRouter_ChatMessageTooLong(t *testing.T) {
	svc := &stubFAQ{
		answerFn: func(ctx context.Context, req faq.Request) (faq.Outcome, error) {
			t.Fatal("service must not be called for an oversized message")
			return faq.Outcome{}, nil
		},
	}

	body := `{"message":"` + strings.Repeat("a", 1001) + `"}`
	recorder := performRequest(http.MethodPost, "/chat", body, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "message too long")
}

func TestRouter_ChatInvalidJSON(t *testing.T) {
	svc := &stubFAQ{}

	recorder := performRequest(http.MethodPost, "/chat", `{"message":123}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_SearchSuccess(t *testing.T) {
	matches := []faq.SearchMatch{
		{ID: "ebitda", Question: "What is EBITDA?", Answer: "Earnings before interest, taxes, depreciation and amortization.", Score: 0.91},
		{ID: "opex", Question: "What is OPEX?", Answer: "Operating expenditure.", Score: 0.44},
	}
	svc := &stubFAQ{
		searchFn: func(ctx context.Context, req faq.Request) ([]faq.SearchMatch, error) {
			require.Equal(t, "earnings", req.Message)
			return matches, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/search", `{"message":"earnings"}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Query        string            `json:"query"`
		Matches      []faq.SearchMatch `json:"matches"`
		TotalMatches int               `json:"total_matches"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "earnings", got.Query)
	require.Equal(t, matches, got.Matches)
	require.Equal(t, 2, got.TotalMatches)
}

func TestRouter_SearchNoResults(t *testing.T) {
	svc := &stubFAQ{
		searchFn: func(ctx context.Context, req faq.Request) ([]faq.SearchMatch, error) {
			return nil, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/search", `{"message":"quantum gravity"}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Matches      []faq.SearchMatch `json:"matches"`
		TotalMatches int               `json:"total_matches"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.NotNil(t, got.Matches)
	require.Empty(t, got.Matches)
	require.Zero(t, got.TotalMatches)
}

func TestRouter_HealthHealthy(t *testing.T) {
	svc := &stubFAQ{
		statsFn: func(ctx context.Context) faq.Stats {
			return faq.Stats{TotalEntries: 15, Initialized: true}
		},
	}

	recorder := performRequest(http.MethodGet, "/health", "", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "healthy", got["status"])
	require.EqualValues(t, 15, got["faq_entries"])
}

func TestRouter_HealthUnhealthy(t *testing.T) {
	svc := &stubFAQ{
		statsFn: func(ctx context.Context) faq.Stats {
			return faq.Stats{TotalEntries: 0, Initialized: false}
		},
	}

	recorder := performRequest(http.MethodGet, "/health", "", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "unhealthy", got["status"])
}

func TestRouter_Stats(t *testing.T) {
	stats := faq.Stats{
		TotalEntries:      15,
		AvgQuestionLength: 31.4,
		AvgAnswerLength:   120.7,
		UniqueIDs:         15,
		VocabularySize:    212,
		Threshold:         0.3,
		Initialized:       true,
		Source:            "file:data/faq.json",
	}
	svc := &stubFAQ{
		statsFn: func(ctx context.Context) faq.Stats { return stats },
	}

	recorder := performRequest(http.MethodGet, "/stats", "", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got faq.Stats
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, stats, got)
}

func TestRouter_Trending(t *testing.T) {
	svc := &stubFAQ{
		trendingFn: func(ctx context.Context) ([]faq.TrendingQuery, error) {
			return []faq.TrendingQuery{{Query: "What is EBITDA?", Count: 7}}, nil
		},
	}

	recorder := performRequest(http.MethodGet, "/trending", "", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Recommendations []faq.TrendingQuery `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Len(t, got.Recommendations, 1)
	require.Equal(t, "What is EBITDA?", got.Recommendations[0].Query)
	require.EqualValues(t, 7, got.Recommendations[0].Count)
}

func TestRouter_TrendingFailure(t *testing.T) {
	svc := &stubFAQ{
		trendingFn: func(ctx context.Context) ([]faq.TrendingQuery, error) {
			return nil, apperrors.Wrap("faq_error", "failed to load trending queries", nil)
		},
	}

	recorder := performRequest(http.MethodGet, "/trending", "", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "faq_failed", errBody["error"]["code"])
}

func TestRouter_Info(t *testing.T) {
	svc := &stubFAQ{}

	recorder := performRequest(http.MethodGet, "/", "", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	var got struct {
		Service   string            `json:"service"`
		Status    string            `json:"status"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "FAQ Finance Chatbot", got.Service)
	require.Equal(t, "running", got.Status)
	require.Equal(t, "/chat", got.Endpoints["chat"])
	require.Equal(t, "/trending", got.Endpoints["trending"])
}

func TestRouter_RequestIDPropagated(t *testing.T) {
	svc := &stubFAQ{}
	server := newRouterUnderTest(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

const testFallbackMessage = "No good match, try rephrasing."

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, svc faq.Service) *http.Server {
	t.Helper()
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		Service: config.ServiceConfig{
			Name:    "FAQ Finance Chatbot",
			Version: "test",
		},
		FAQ: config.FAQConfig{
			FallbackMessage:  testFallbackMessage,
			MaxMessageLength: 1000,
		},
	}
	handler := NewHandler(svc, cfg, newTestLogger())
	return NewRouter(cfg, handler)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubFAQ struct {
	answerFn   func(ctx context.Context, req faq.Request) (faq.Outcome, error)
	searchFn   func(ctx context.Context, req faq.Request) ([]faq.SearchMatch, error)
	trendingFn func(ctx context.Context) ([]faq.TrendingQuery, error)
	statsFn    func(ctx context.Context) faq.Stats
	reloadFn   func(ctx context.Context) error
}

func (s *stubFAQ) Answer(ctx context.Context, req faq.Request) (faq.Outcome, error) {
	if s.answerFn != nil {
		return s.answerFn(ctx, req)
	}
	return faq.Outcome{}, nil
}

func (s *stubFAQ) Search(ctx context.Context, req faq.Request) ([]faq.SearchMatch, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, req)
	}
	return nil, nil
}

func (s *stubFAQ) Trending(ctx context.Context) ([]faq.TrendingQuery, error) {
	if s.trendingFn != nil {
		return s.trendingFn(ctx)
	}
	return nil, nil
}

func (s *stubFAQ) Stats(ctx context.Context) faq.Stats {
	if s.statsFn != nil {
		return s.statsFn(ctx)
	}
	return faq.Stats{}
}

func (s *stubFAQ) Reload(ctx context.Context) error {
	if s.reloadFn != nil {
		return s.reloadFn(ctx)
	}
	return nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
