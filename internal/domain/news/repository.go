package news

import (
	"context"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type PostFilter struct {
	Status   string
	Category string
	AuthorID *uint
	Featured *bool
	TopStory *bool
	Search   string
	Limit    int
	Offset   int
}

type Repository interface {
	crud.Repository[models.NewsPost]

	ListPosts(ctx context.Context, f PostFilter) ([]models.NewsPost, int64, error)
	IncrementViews(ctx context.Context, id uint) error

	CreateComment(ctx context.Context, c *models.NewsComment) error
	GetComment(ctx context.Context, id uint) (*models.NewsComment, error)
	SaveComment(ctx context.Context, c *models.NewsComment) error
	// ActiveComments returns the post's ACTIVE comments, oldest first.
	ActiveComments(ctx context.Context, newsID uint) ([]models.NewsComment, error)

	CreateLike(ctx context.Context, l *models.NewsLike) error
	GetLike(ctx context.Context, newsID, userID uint) (*models.NewsLike, error)
	DeleteLike(ctx context.Context, newsID, userID uint) (int64, error)
	ListLikes(ctx context.Context, newsID uint) ([]models.NewsLike, error)

	CreateShare(ctx context.Context, s *models.NewsShare) error
	ListShares(ctx context.Context, newsID uint) ([]models.NewsShare, error)
	SharesByUser(ctx context.Context, userID uint) ([]models.NewsShare, error)

	// Recount rewrites the post's comment, like and share counters.
	Recount(ctx context.Context, newsID uint) (*models.NewsPost, error)
}
