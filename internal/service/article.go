package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/devpress/devpress/internal/metrics"
	"github.com/devpress/devpress/internal/model"
	"github.com/devpress/devpress/internal/repository"
)

// Article service errors.
var (
	// ErrMissingArticleFields is returned when title or body is empty.
	ErrMissingArticleFields = errors.New("both title and body required")
)

// Listing defaults and caps.
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ArticleStore is the slice of the storage layer the article flows
// need. *repository.Repository satisfies it.
type ArticleStore interface {
	CreateArticle(ctx context.Context, article *model.Article) error
	GetArticleByID(ctx context.Context, id int64) (*model.Article, error)
	ListArticles(ctx context.Context, limit, offset int) ([]*model.Article, error)
	DeleteArticle(ctx context.Context, id int64) error
}

// ArticleService handles article business logic.
type ArticleService struct {
	store   ArticleStore
	metrics metrics.Recorder
}

// NewArticleService creates an ArticleService.
func NewArticleService(store ArticleStore, recorder metrics.Recorder) *ArticleService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ArticleService{store: store, metrics: recorder}
}

// CreateArticleInput defines input for creating an article.
type CreateArticleInput struct {
	Title    string
	Body     string
	Category string
	Tags     []string
	AuthorID int64
}

// Create validates input and stores a new article.
func (s *ArticleService) Create(ctx context.Context, input CreateArticleInput) (*model.Article, error) {
	if input.Title == "" || input.Body == "" {
		return nil, ErrMissingArticleFields
	}

	article := &model.Article{
		Title:    input.Title,
		Body:     input.Body,
		Category: input.Category,
		Tags:     input.Tags,
		AuthorID: input.AuthorID,
	}
	if err := s.store.CreateArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.metrics.IncArticleCreated()
	return article, nil
}

// Get fetches one article by ID.
func (s *ArticleService) Get(ctx context.Context, id int64) (*model.Article, error) {
	article, err := s.store.GetArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return article, nil
}

// List returns a page of articles. Page numbers start at 1; limits
// outside [1, maxPageSize] fall back to the default.
func (s *ArticleService) List(ctx context.Context, page, limit int) ([]*model.Article, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset := (page - 1) * limit

	articles, err := s.store.ListArticles(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// Delete removes an article. Passes repository.ErrArticleNotFound
// through for the handler to translate.
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteArticle(ctx, id); err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return err
		}
		return fmt.Errorf("delete article: %w", err)
	}

	s.metrics.IncArticleDeleted()
	return nil
}
