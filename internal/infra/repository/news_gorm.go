package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/news"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type NewsGormRepository struct {
	*CrudGormRepository[models.NewsPost]
}

func NewNewsGormRepository(db *gorm.DB) *NewsGormRepository {
	return &NewsGormRepository{NewSoftDeleteRepository[models.NewsPost](db)}
}

var _ news.Repository = (*NewsGormRepository)(nil)

// --------------------------------------------------
// Posts
// --------------------------------------------------

func (r *NewsGormRepository) ListPosts(ctx context.Context, f news.PostFilter) ([]models.NewsPost, int64, error) {
	q := r.scoped(ctx).Where("status <> ?", models.NewsDeleted)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.AuthorID != nil {
		q = q.Where("author_id = ?", *f.AuthorID)
	}
	if f.Featured != nil {
		q = q.Where("is_featured = ?", *f.Featured)
	}
	if f.TopStory != nil {
		q = q.Where("is_top_story = ?", *f.TopStory)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(summary) LIKE ?", like, like, like)
	}

	base := q.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	list := base.Preload("Author").Order("added_on DESC, id DESC")
	if f.Limit > 0 {
		list = list.Limit(f.Limit)
	}
	if f.Offset > 0 {
		list = list.Offset(f.Offset)
	}

	var out []models.NewsPost
	if err := list.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *NewsGormRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.NewsPost{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// --------------------------------------------------
// Comments
// --------------------------------------------------

func (r *NewsGormRepository) CreateComment(ctx context.Context, c *models.NewsComment) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *NewsGormRepository) GetComment(ctx context.Context, id uint) (*models.NewsComment, error) {
	var c models.NewsComment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND status <> ?", id, models.CommentDeleted).
		First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *NewsGormRepository) SaveComment(ctx context.Context, c *models.NewsComment) error {
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

func (r *NewsGormRepository) ActiveComments(ctx context.Context, newsID uint) ([]models.NewsComment, error) {
	var out []models.NewsComment
	err := r.db.WithContext(ctx).
		Where("news_id = ? AND status = ?", newsID, models.CommentActive).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// --------------------------------------------------
// Likes / shares
// --------------------------------------------------

func (r *NewsGormRepository) CreateLike(ctx context.Context, l *models.NewsLike) error {
	return translate(r.db.WithContext(ctx).Create(l).Error)
}

func (r *NewsGormRepository) GetLike(ctx context.Context, newsID, userID uint) (*models.NewsLike, error) {
	var l models.NewsLike
	if err := r.db.WithContext(ctx).
		Where("news_id = ? AND user_id = ?", newsID, userID).
		First(&l).Error; err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (r *NewsGormRepository) DeleteLike(ctx context.Context, newsID, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("news_id = ? AND user_id = ?", newsID, userID).
		Delete(&models.NewsLike{})
	return res.RowsAffected, res.Error
}

func (r *NewsGormRepository) ListLikes(ctx context.Context, newsID uint) ([]models.NewsLike, error) {
	var out []models.NewsLike
	err := r.db.WithContext(ctx).
		Where("news_id = ?", newsID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *NewsGormRepository) CreateShare(ctx context.Context, s *models.NewsShare) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *NewsGormRepository) ListShares(ctx context.Context, newsID uint) ([]models.NewsShare, error) {
	var out []models.NewsShare
	err := r.db.WithContext(ctx).
		Where("news_id = ?", newsID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *NewsGormRepository) SharesByUser(ctx context.Context, userID uint) ([]models.NewsShare, error) {
	var out []models.NewsShare
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *NewsGormRepository) Recount(ctx context.Context, newsID uint) (*models.NewsPost, error) {
	var post models.NewsPost
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comments, likes, shares int64
		if err := tx.Model(&models.NewsComment{}).
			Where("news_id = ? AND status = ?", newsID, models.CommentActive).
			Count(&comments).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.NewsLike{}).Where("news_id = ?", newsID).Count(&likes).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.NewsShare{}).Where("news_id = ?", newsID).Count(&shares).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.NewsPost{}).
			Where("id = ?", newsID).
			UpdateColumns(map[string]any{
				"comment_count": comments,
				"like_count":    likes,
				"share_count":   shares,
			}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", newsID).First(&post).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}
