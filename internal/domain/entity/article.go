// Package entity defines the domain types shared by the upstream client, the news
// use cases and the HTTP handlers: raw GNews articles, the public article shape and
// the search parameters accepted by the query operations.
package entity

import "encoding/base64"

// idLength is the number of base64 characters kept for an article id.
const idLength = 12

// Source identifies the publisher of an article.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RawArticle is an article as returned by the GNews API.
type RawArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Source      Source `json:"source"`
}

// UpstreamResponse is the GNews response envelope. It is the value stored in the
// response cache and must be treated as read-only once cached.
type UpstreamResponse struct {
	TotalArticles int          `json:"totalArticles"`
	Articles      []RawArticle `json:"articles"`
}

// Article is the public article shape served by the proxy.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Author      string `json:"author"`
	Source      Source `json:"source"`
}

// ArticleID derives the article identifier from its title and publication timestamp.
// It is the first 12 characters of the base64 encoding of "title-publishedAt".
// Two articles sharing title and timestamp get the same id.
func ArticleID(title, publishedAt string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(title + "-" + publishedAt))
	if len(encoded) > idLength {
		return encoded[:idLength]
	}
	return encoded
}
