package entity

// SortBy is the ordering requested from the search endpoint.
type SortBy string

const (
	SortByPublishedAt SortBy = "publishedAt"
	SortByRelevance   SortBy = "relevance"
	SortByPopularity  SortBy = "popularity"
)

// Valid reports whether s is empty or one of the supported sort modes.
func (s SortBy) Valid() bool {
	switch s {
	case "", SortByPublishedAt, SortByRelevance, SortByPopularity:
		return true
	}
	return false
}

// DefaultMax is the result cap applied when the caller does not supply one.
const DefaultMax = 10

// SearchParams holds the optional query shaping parameters. Query is required by
// the search operation only. Max is used as-is; callers resolve defaults first.
type SearchParams struct {
	Query   string
	Lang    string
	Country string
	Max     int
	From    string
	To      string
	SortBy  SortBy
}
