package news

import (
	"newsproxy/internal/domain/entity"
	"newsproxy/internal/infra/cache"
)

// ArticlesResponse documents the envelope returned by the article endpoints.
type ArticlesResponse struct {
	Success bool             `json:"success" example:"true"`
	Data    []entity.Article `json:"data"`
	Message string           `json:"message" example:"Retrieved 10 top headlines"`
}

// CacheStatsResponse documents the envelope returned by the cache stats endpoint.
type CacheStatsResponse struct {
	Success bool        `json:"success" example:"true"`
	Data    cache.Stats `json:"data"`
	Message string      `json:"message" example:"Cache statistics retrieved successfully"`
}
