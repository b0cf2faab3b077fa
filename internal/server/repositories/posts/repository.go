// Package posts stores blog posts and their tags.
package posts

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

// Repository never returns soft-deleted posts: reads of a deleted id yield
// common.ErrorNotFound, exactly like a missing id.
type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	ReplaceTags(ctx context.Context, postID int64, tags []string) error
	Get(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, filter models.PostFilter) ([]models.Post, int64, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	SoftDelete(ctx context.Context, id int64) error
	IncrementViewCount(ctx context.Context, id int64) (int64, error)
	Stats(ctx context.Context) (posts int64, views int64, err error)
	RecentPublished(ctx context.Context, limit int) ([]models.Post, error)
}
