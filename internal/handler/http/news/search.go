package news

import (
	"fmt"
	"net/http"

	"newsproxy/internal/domain/entity"
	"newsproxy/internal/handler/http/respond"
	newsUC "newsproxy/internal/usecase/news"
)

type SearchHandler struct{ Svc *newsUC.Service }

// ServeHTTP searches articles by free text.
// @Summary      Search articles
// @Description  Full-text search over GNews articles
// @Tags         news
// @Produce      json
// @Param        q query string true "Search query"
// @Param        lang query string false "Language code"
// @Param        country query string false "Country code"
// @Param        max query int false "Maximum number of articles (default 10)"
// @Param        from query string false "Earliest publication time (ISO 8601)"
// @Param        to query string false "Latest publication time (ISO 8601)"
// @Param        sortby query string false "publishedAt, relevance or popularity"
// @Success      200 {object} ArticlesResponse
// @Failure      400 {object} respond.Envelope "Missing query or invalid sortby"
// @Failure      500 {object} respond.Envelope "Upstream or internal failure"
// @Router       /api/news/search [get]
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	articles, err := h.Svc.Search(r.Context(), entity.SearchParams{
		Query:   query,
		Lang:    q.Get("lang"),
		Country: q.Get("country"),
		Max:     newsUC.ParseMax(q.Get("max")),
		From:    q.Get("from"),
		To:      q.Get("to"),
		SortBy:  entity.SortBy(q.Get("sortby")),
	})
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.Success(w, articles, fmt.Sprintf("Found %d articles for \"%s\"", len(articles), query))
}
