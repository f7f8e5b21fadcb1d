package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finvero/faqbot/internal/domain/faq"
	"github.com/finvero/faqbot/internal/infra/config"
)

// Handler wires the HTTP transport to the FAQ service.
type Handler struct {
	faqSvc      faq.Service
	serviceName string
	version     string
	fallback    string
	maxMessage  int
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc:      faqSvc,
		serviceName: cfg.Service.Name,
		version:     cfg.Service.Version,
		fallback:    cfg.FAQ.FallbackMessage,
		maxMessage:  cfg.FAQ.MaxMessageLength,
		logger:      logger.With("component", "http.handler"),
	}
}

type chatResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// Chat answers a user message from the knowledge base, falling back to a
// canned reply when no entry scores above the threshold.
func (h *Handler) Chat(c *gin.Context) {
	req, ok := h.bindMessage(c)
	if !ok {
		return
	}

	outcome, err := h.faqSvc.Answer(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromServiceError(err))
		return
	}

	resp := chatResponse{Answer: outcome.Answer, Sources: outcome.Sources}
	if !outcome.Answered {
		resp.Answer = h.fallback
	}
	if resp.Sources == nil {
		resp.Sources = []string{}
	}
	c.JSON(http.StatusOK, resp)
}

type searchResponse struct {
	Query        string            `json:"query"`
	Matches      []faq.SearchMatch `json:"matches"`
	TotalMatches int               `json:"total_matches"`
}

// Search returns the top scoring entries for a query.
func (h *Handler) Search(c *gin.Context) {
	req, ok := h.bindMessage(c)
	if !ok {
		return
	}

	matches, err := h.faqSvc.Search(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromServiceError(err))
		return
	}
	if matches == nil {
		matches = []faq.SearchMatch{}
	}
	c.JSON(http.StatusOK, searchResponse{
		Query:        strings.TrimSpace(req.Message),
		Matches:      matches,
		TotalMatches: len(matches),
	})
}

// Health reports whether the knowledge base is loaded and matchable.
func (h *Handler) Health(c *gin.Context) {
	stats := h.faqSvc.Stats(c.Request.Context())
	if !stats.Initialized || stats.TotalEntries == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":      "unhealthy",
			"faq_entries": stats.TotalEntries,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"faq_entries": stats.TotalEntries,
	})
}

// Stats exposes knowledge base and matcher figures.
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.faqSvc.Stats(c.Request.Context()))
}

// Trending returns the most frequent queries.
func (h *Handler) Trending(c *gin.Context) {
	items, err := h.faqSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithError(c, fromServiceError(err))
		return
	}
	if items == nil {
		items = []faq.TrendingQuery{}
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": items})
}

// Info describes the service and its endpoints.
func (h *Handler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": h.serviceName,
		"version": h.version,
		"status":  "running",
		"endpoints": gin.H{
			"chat":     "/chat",
			"search":   "/search",
			"health":   "/health",
			"stats":    "/stats",
			"trending": "/trending",
		},
	})
}

// bindMessage decodes the request body and enforces the message length
// bound before the service sees it.
func (h *Handler) bindMessage(c *gin.Context) (faq.Request, bool) {
	var req faq.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return faq.Request{}, false
	}
	if h.maxMessage > 0 && len(req.Message) > h.maxMessage {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "message too long", nil))
		return faq.Request{}, false
	}
	return req, true
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
