package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/devpress/devpress/internal/model"
)

// ErrArticleNotFound is returned when no article matches the lookup.
var ErrArticleNotFound = errors.New("article not found")

// CreateArticle inserts a new article and fills in the store-assigned
// ID and creation time.
func (r *Repository) CreateArticle(ctx context.Context, article *model.Article) error {
	query := `
		INSERT INTO articles (title, body, category, tags, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		article.Title,
		article.Body,
		article.Category,
		pq.Array(article.Tags),
		article.AuthorID,
	).Scan(&article.ID, &article.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	return nil
}

// GetArticleByID retrieves one article.
func (r *Repository) GetArticleByID(ctx context.Context, id int64) (*model.Article, error) {
	query := `
		SELECT id, title, body, category, tags, author_id, created_at
		FROM articles
		WHERE id = $1
	`

	var article model.Article
	var tags []string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&article.ID,
		&article.Title,
		&article.Body,
		&article.Category,
		pq.Array(&tags),
		&article.AuthorID,
		&article.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article by ID: %w", err)
	}
	article.Tags = tags

	return &article, nil
}

// ListArticles returns a page of articles ordered by newest first.
func (r *Repository) ListArticles(ctx context.Context, limit, offset int) ([]*model.Article, error) {
	query := `
		SELECT id, title, body, category, tags, author_id, created_at
		FROM articles
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]*model.Article, 0, limit)
	for rows.Next() {
		var article model.Article
		var tags []string
		if err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Body,
			&article.Category,
			pq.Array(&tags),
			&article.AuthorID,
			&article.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		article.Tags = tags
		articles = append(articles, &article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}

	return articles, nil
}

// DeleteArticle removes an article row. Returns ErrArticleNotFound
// when no row was affected.
func (r *Repository) DeleteArticle(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrArticleNotFound
	}
	return nil
}
