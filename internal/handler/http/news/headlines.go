package news

import (
	"fmt"
	"net/http"

	"newsproxy/internal/handler/http/respond"
	newsUC "newsproxy/internal/usecase/news"
)

type HeadlinesHandler struct{ Svc *newsUC.Service }

// ServeHTTP returns the current top headlines.
// @Summary      Top headlines
// @Description  Returns the current top headlines, optionally narrowed by language and country
// @Tags         news
// @Produce      json
// @Param        lang query string false "Language code (e.g. en)"
// @Param        country query string false "Country code (e.g. us)"
// @Param        max query int false "Maximum number of articles (default 10)"
// @Success      200 {object} ArticlesResponse
// @Failure      500 {object} respond.Envelope "Upstream or internal failure"
// @Router       /api/news/headlines [get]
func (h HeadlinesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	articles, err := h.Svc.TopHeadlines(r.Context(), newsUC.HeadlinesParams{
		Lang:    q.Get("lang"),
		Country: q.Get("country"),
		Max:     newsUC.ParseMax(q.Get("max")),
	})
	if err != nil {
		respond.Fail(w, r, err)
		return
	}
	respond.Success(w, articles, fmt.Sprintf("Retrieved %d top headlines", len(articles)))
}
