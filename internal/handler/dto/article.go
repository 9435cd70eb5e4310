package dto

import (
	"time"

	"github.com/devpress/devpress/internal/model"
)

// CreateArticleRequest is the request body for creating an article.
type CreateArticleRequest struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// ArticleResponse represents an article in API responses.
type ArticleResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  string    `json:"category,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ToArticleResponse converts an Article model to its response DTO.
func ToArticleResponse(article *model.Article) ArticleResponse {
	return ArticleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Body:      article.Body,
		Category:  article.Category,
		Tags:      article.Tags,
		AuthorID:  article.AuthorID,
		CreatedAt: article.CreatedAt,
	}
}

// ToArticleListResponse converts a slice of articles.
func ToArticleListResponse(articles []*model.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, ToArticleResponse(a))
	}
	return out
}
