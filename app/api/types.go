package api

import (
	"github.com/RJohnPaul/EchoNews/app/news"
	"github.com/RJohnPaul/EchoNews/app/sources"
)

// NewsRequest is the legacy request body. MaxArticles caps the result flatly
// instead of paginating.
type NewsRequest struct {
	Language         string   `json:"language" binding:"required"`
	Query            string   `json:"query"`
	MaxArticles      int      `json:"max_articles"`
	PreferredSources []string `json:"preferred_sources"`
}

// NewsRequestV2 is the paginated request body.
type NewsRequestV2 struct {
	Language         string   `json:"language" binding:"required"`
	Query            string   `json:"query"`
	Category         string   `json:"category"`
	Page             int      `json:"page"`
	PageSize         int      `json:"page_size"`
	PreferredSources []string `json:"preferred_sources"`
}

type Handler struct {
	service   *news.Service
	directory *sources.Directory
	version   string
}
