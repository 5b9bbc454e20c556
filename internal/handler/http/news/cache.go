package news

import (
	"net/http"

	"newsproxy/internal/handler/http/respond"
	newsUC "newsproxy/internal/usecase/news"
)

type ClearCacheHandler struct{ Svc *newsUC.Service }

// ServeHTTP drops every cached upstream response.
// @Summary      Clear cache
// @Description  Removes all cached GNews responses; hit and miss counters are kept
// @Tags         cache
// @Produce      json
// @Success      200 {object} respond.Envelope
// @Router       /api/news/cache/clear [post]
func (h ClearCacheHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Svc.ClearCache(r.Context())
	respond.Success(w, nil, "Cache cleared successfully")
}

type CacheStatsHandler struct{ Svc *newsUC.Service }

// ServeHTTP reports the live key count and cumulative hit/miss counters.
// @Summary      Cache statistics
// @Tags         cache
// @Produce      json
// @Success      200 {object} CacheStatsResponse
// @Router       /api/news/cache/stats [get]
func (h CacheStatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.Success(w, h.Svc.CacheStats(r.Context()), "Cache statistics retrieved successfully")
}
