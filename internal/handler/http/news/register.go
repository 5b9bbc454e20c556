// Package news exposes the news query and cache management operations over HTTP.
package news

import (
	"net/http"

	newsUC "newsproxy/internal/usecase/news"
)

// Register registers the /api/news routes with the given mux.
func Register(mux *http.ServeMux, svc *newsUC.Service) {
	mux.Handle("GET  /api/news/headlines", HeadlinesHandler{svc})
	mux.Handle("GET  /api/news/search", SearchHandler{svc})
	mux.Handle("GET  /api/news/title", TitleHandler{svc})
	mux.Handle("GET  /api/news/author", AuthorHandler{svc})
	mux.Handle("GET  /api/news/keywords", KeywordsHandler{svc})

	mux.Handle("POST /api/news/cache/clear", ClearCacheHandler{svc})
	mux.Handle("GET  /api/news/cache/stats", CacheStatsHandler{svc})
}
