package news

import (
	"fmt"
	"net/http"
	"strings"

	"newsproxy/internal/handler/http/respond"
	newsUC "newsproxy/internal/usecase/news"
)

type TitleHandler struct{ Svc *newsUC.Service }

// ServeHTTP returns articles whose title contains the given text.
// @Summary      Articles by title
// @Description  Searches by title and keeps only articles whose title contains the text (case-insensitive)
// @Tags         news
// @Produce      json
// @Param        title query string true "Text the title must contain"
// @Param        max query int false "Maximum number of articles fetched (default 10)"
// @Success      200 {object} ArticlesResponse
// @Failure      400 {object} respond.Envelope "Missing title"
// @Failure      500 {object} respond.Envelope "Upstream or internal failure"
// @Router       /api/news/title [get]
func (h TitleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	articles, err := h.Svc.ByTitle(r.Context(), title, newsUC.ParseMax(r.URL.Query().Get("max")))
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.Success(w, articles, fmt.Sprintf("Found %d articles with title containing \"%s\"", len(articles), title))
}

type AuthorHandler struct{ Svc *newsUC.Service }

// ServeHTTP returns articles published by the given source.
// GNews has no author field; the source name stands in for it.
// @Summary      Articles by author
// @Description  Searches by author and keeps only articles whose source name contains it (case-insensitive)
// @Tags         news
// @Produce      json
// @Param        author query string true "Author or source name"
// @Param        max query int false "Maximum number of articles fetched (default 10)"
// @Success      200 {object} ArticlesResponse
// @Failure      400 {object} respond.Envelope "Missing author"
// @Failure      500 {object} respond.Envelope "Upstream or internal failure"
// @Router       /api/news/author [get]
func (h AuthorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	author := r.URL.Query().Get("author")
	articles, err := h.Svc.ByAuthor(r.Context(), author, newsUC.ParseMax(r.URL.Query().Get("max")))
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.Success(w, articles, fmt.Sprintf("Found %d articles by author \"%s\"", len(articles), author))
}

type KeywordsHandler struct{ Svc *newsUC.Service }

// ServeHTTP returns articles matching any of the comma-separated keywords.
// @Summary      Articles by keywords
// @Description  Searches for articles matching any keyword (OR)
// @Tags         news
// @Produce      json
// @Param        keywords query string true "Comma-separated keywords"
// @Param        max query int false "Maximum number of articles (default 10)"
// @Success      200 {object} ArticlesResponse
// @Failure      400 {object} respond.Envelope "Missing keywords"
// @Failure      500 {object} respond.Envelope "Upstream or internal failure"
// @Router       /api/news/keywords [get]
func (h KeywordsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	keywords := newsUC.SplitKeywords(r.URL.Query().Get("keywords"))
	articles, err := h.Svc.ByKeywords(r.Context(), keywords, newsUC.ParseMax(r.URL.Query().Get("max")))
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.Success(w, articles,
		fmt.Sprintf("Found %d articles matching keywords: %s", len(articles), strings.Join(keywords, ", ")))
}
