package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RJohnPaul/EchoNews/app/news"
	"github.com/RJohnPaul/EchoNews/app/sources"
)

func NewHandler(service *news.Service, directory *sources.Directory, version string) *Handler {
	return &Handler{
		service:   service,
		directory: directory,
		version:   version,
	}
}

// GetNews serves the legacy endpoint: a flat result capped at max_articles,
// implemented as page 1 of a single max_articles-sized page.
func (h *Handler) GetNews(c *gin.Context) {
	var req NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.MaxArticles <= 0 {
		req.MaxArticles = 5
	}

	h.respond(c, news.Request{
		Query:            req.Query,
		Language:         req.Language,
		Page:             1,
		PageSize:         req.MaxArticles,
		PreferredSources: req.PreferredSources,
	})
}

// GetNewsV2 serves the paginated endpoint.
func (h *Handler) GetNewsV2(c *gin.Context) {
	var req NewsRequestV2
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	h.respond(c, news.Request{
		Query:            req.Query,
		Language:         req.Language,
		Category:         req.Category,
		Page:             req.Page,
		PageSize:         req.PageSize,
		PreferredSources: req.PreferredSources,
	})
}

func (h *Handler) respond(c *gin.Context, req news.Request) {
	resp, err := h.service.Get(c.Request.Context(), req)
	if err != nil {
		var notFound *news.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": notFound.Message})
			return
		}
		slog.Error("News request failed", "language", req.Language, "query", req.Query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error processing news: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetSources lists the configured feed sources for a language.
func (h *Handler) GetSources(c *gin.Context) {
	language := c.Param("language")

	lang := h.directory.NormalizeLanguage(language)
	if !h.directory.Supported(lang) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Language " + language + " not supported"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sources": h.directory.Descriptors(lang)})
}

// GetCategories lists every category any configured feed declares.
func (h *Handler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.directory.Categories()})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"languages": len(h.directory.Languages()),
		"version":   h.version,
	})
}
