package news

import "newsproxy/internal/domain/entity"

// Transform converts a GNews article into the public article shape.
// GNews has no byline, so the author is the source name.
func Transform(raw entity.RawArticle) entity.Article {
	return entity.Article{
		ID:          entity.ArticleID(raw.Title, raw.PublishedAt),
		Title:       raw.Title,
		Description: raw.Description,
		Content:     raw.Content,
		URL:         raw.URL,
		Image:       raw.Image,
		PublishedAt: raw.PublishedAt,
		Author:      raw.Source.Name,
		Source:      raw.Source,
	}
}

// TransformAll converts raw articles in order. The result is never nil.
func TransformAll(raws []entity.RawArticle) []entity.Article {
	out := make([]entity.Article, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Transform(raw))
	}
	return out
}
