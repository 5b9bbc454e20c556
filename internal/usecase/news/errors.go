// Package news implements the query operations of the proxy: top headlines,
// search, filtering by title, author or keywords, and cache management.
package news

import "newsproxy/internal/domain/entity"

// Validation errors returned before any upstream call is made.
var (
	// ErrQueryRequired is returned by Search when q is empty.
	ErrQueryRequired = entity.NewValidationError("q", `Search query parameter "q" is required`)

	// ErrInvalidSortBy is returned by Search for an unknown sortby value.
	ErrInvalidSortBy = entity.NewValidationError("sortby", `Parameter "sortby" must be one of publishedAt, relevance, popularity`)

	// ErrTitleRequired is returned by ByTitle when the title is empty.
	ErrTitleRequired = entity.NewValidationError("title", "Title parameter is required")

	// ErrAuthorRequired is returned by ByAuthor when the author is empty.
	ErrAuthorRequired = entity.NewValidationError("author", "Author parameter is required")

	// ErrKeywordsRequired is returned by ByKeywords when no keyword remains.
	ErrKeywordsRequired = entity.NewValidationError("keywords", "Keywords parameter is required (comma-separated)")
)
