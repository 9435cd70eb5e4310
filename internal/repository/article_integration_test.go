//go:build integration

package repository

import (
	"errors"
	"testing"

	"github.com/devpress/devpress/internal/testutil"
)

func TestIntegrationArticleRepository_CreateArticle(t *testing.T) {
	ctx, repo := newTestEnv(t)

	author := testutil.NewTestUser(t, testutil.UniqueEmail("author"))
	if err := repo.CreateUser(ctx, author); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	article := testutil.NewTestArticle(t, author.ID, "First Post")
	article.Tags = []string{"go", "postgres"}

	if err := repo.CreateArticle(ctx, article); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	if article.ID == 0 {
		t.Error("ID should be assigned by the database")
	}

	retrieved, err := repo.GetArticleByID(ctx, article.ID)
	if err != nil {
		t.Fatalf("GetArticleByID failed: %v", err)
	}
	if retrieved.Title != "First Post" {
		t.Errorf("Title mismatch: got %q", retrieved.Title)
	}
	if retrieved.AuthorID != author.ID {
		t.Errorf("AuthorID mismatch: got %d, want %d", retrieved.AuthorID, author.ID)
	}
	if len(retrieved.Tags) != 2 || retrieved.Tags[0] != "go" || retrieved.Tags[1] != "postgres" {
		t.Errorf("Tags mismatch: got %v", retrieved.Tags)
	}
}

func TestIntegrationArticleRepository_GetArticleByID_NotFound(t *testing.T) {
	ctx, repo := newTestEnv(t)

	_, err := repo.GetArticleByID(ctx, 999999)
	if !errors.Is(err, ErrArticleNotFound) {
		t.Errorf("Expected ErrArticleNotFound, got: %v", err)
	}
}

func TestIntegrationArticleRepository_ListArticles(t *testing.T) {
	ctx, repo := newTestEnv(t)

	author := testutil.NewTestUser(t, testutil.UniqueEmail("lister"))
	if err := repo.CreateUser(ctx, author); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	titles := []string{"One", "Two", "Three"}
	for _, title := range titles {
		article := testutil.NewTestArticle(t, author.ID, title)
		if err := repo.CreateArticle(ctx, article); err != nil {
			t.Fatalf("CreateArticle %q failed: %v", title, err)
		}
	}

	page, err := repo.ListArticles(ctx, 2, 0)
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(page))
	}
	// Newest first
	if page[0].Title != "Three" {
		t.Errorf("expected newest article first, got %q", page[0].Title)
	}

	rest, err := repo.ListArticles(ctx, 2, 2)
	if err != nil {
		t.Fatalf("ListArticles (offset) failed: %v", err)
	}
	if len(rest) != 1 || rest[0].Title != "One" {
		t.Errorf("unexpected second page: %+v", rest)
	}
}

func TestIntegrationArticleRepository_DeleteArticle(t *testing.T) {
	ctx, repo := newTestEnv(t)

	author := testutil.NewTestUser(t, testutil.UniqueEmail("deleter"))
	if err := repo.CreateUser(ctx, author); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	article := testutil.NewTestArticle(t, author.ID, "Doomed")
	if err := repo.CreateArticle(ctx, article); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	if err := repo.DeleteArticle(ctx, article.ID); err != nil {
		t.Fatalf("DeleteArticle failed: %v", err)
	}

	_, err := repo.GetArticleByID(ctx, article.ID)
	if !errors.Is(err, ErrArticleNotFound) {
		t.Errorf("Expected ErrArticleNotFound after delete, got: %v", err)
	}
}

func TestIntegrationArticleRepository_DeleteUser_CascadesArticles(t *testing.T) {
	ctx, repo := newTestEnv(t)

	author := testutil.NewTestUser(t, testutil.UniqueEmail("cascade"))
	if err := repo.CreateUser(ctx, author); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	article := testutil.NewTestArticle(t, author.ID, "Orphaned")
	if err := repo.CreateArticle(ctx, article); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	if err := repo.DeleteUser(ctx, author.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	_, err := repo.GetArticleByID(ctx, article.ID)
	if !errors.Is(err, ErrArticleNotFound) {
		t.Errorf("Expected cascade delete of articles, got: %v", err)
	}
}
