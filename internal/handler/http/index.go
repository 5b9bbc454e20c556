package http

import (
	"net/http"

	"newsproxy/internal/handler/http/respond"
)

// IndexResponse describes the API at the root URL.
type IndexResponse struct {
	Name          string            `json:"name"`
	Version       string            `json:"version"`
	Description   string            `json:"description"`
	Endpoints     map[string]string `json:"endpoints"`
	Documentation string            `json:"documentation"`
}

// IndexHandler answers GET / with the endpoint listing and every request
// that no other route matched with the 404 envelope. It must be registered
// on the "/" pattern.
type IndexHandler struct {
	Version string
}

// ServeHTTP handles the root URL and the not-found fallback.
// @Summary      API index
// @Tags         system
// @Produce      json
// @Success      200 {object} IndexResponse
// @Router       / [get]
func (h IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		respond.NotFound(w, r)
		return
	}

	respond.JSON(w, http.StatusOK, IndexResponse{
		Name:        "News API",
		Version:     h.Version,
		Description: "A caching proxy in front of the GNews API for fetching articles",
		Endpoints: map[string]string{
			"health":     "GET /health",
			"headlines":  "GET /api/news/headlines",
			"search":     "GET /api/news/search?q=query",
			"byTitle":    "GET /api/news/title?title=title",
			"byAuthor":   "GET /api/news/author?author=author",
			"byKeywords": "GET /api/news/keywords?keywords=keyword1,keyword2",
			"clearCache": "POST /api/news/cache/clear",
			"cacheStats": "GET /api/news/cache/stats",
		},
		Documentation: "/swagger/index.html",
	})
}
