package news

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/news"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/catalog"
)

var postStatuses = map[string]bool{
	models.NewsDraft:     true,
	models.NewsPublished: true,
	models.NewsArchived:  true,
	models.NewsDeleted:   true,
}

// ParseStatus upper-cases s and checks it names a post status.
func ParseStatus(s string) (string, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	if !postStatuses[up] {
		return "", httperr.BusinessError{Code: "invalid_status", Message: "Status must be one of DRAFT, PUBLISHED, ARCHIVED, DELETED."}
	}
	return up, nil
}

type Service struct {
	*catalog.Service[models.NewsPost, *models.NewsPost]

	repo  domain.Repository
	users crud.Repository[models.User]
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewService(repo domain.Repository, users crud.Repository[models.User], dispatcher *audit.Dispatcher) *Service {
	return &Service{
		Service: catalog.NewService[models.NewsPost, *models.NewsPost](repo, catalog.Options[models.NewsPost]{
			Table:         "news_posts",
			Label:         "News post",
			NameColumn:    "title",
			Name:          func(p *models.NewsPost) string { return p.Title },
			DuplicateCode: "news_title_exists",
			NotFoundCode:  "news_post_not_found",
		}, dispatcher, nil),
		repo:  repo,
		users: users,
		audit: dispatcher,
		now:   time.Now,
	}
}

// AvailableAuthors lists the users a post can be attributed to.
func (s *Service) AvailableAuthors(ctx context.Context) ([]models.User, error) {
	items, _, err := s.users.List(ctx, crud.Query{Order: "full_name ASC"}.OnlyActive(models.Yes))
	return items, err
}

func (s *Service) ListPosts(ctx context.Context, f domain.PostFilter) ([]models.NewsPost, int64, error) {
	if f.Status != "" {
		st, err := ParseStatus(f.Status)
		if err != nil {
			return nil, 0, err
		}
		f.Status = st
	}
	return s.repo.ListPosts(ctx, f)
}

// View returns the post and counts the read.
func (s *Service) View(ctx context.Context, id uint) (*models.NewsPost, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

type PostInput struct {
	Title          *string        `json:"title" binding:"omitempty,min=1,max=255"`
	Content        *string        `json:"content"`
	Summary        *string        `json:"summary"`
	Category       *string        `json:"category" binding:"omitempty,max=100"`
	AuthorID       *uint          `json:"author_id"`
	BusinessUserID *uint          `json:"business_user_id"`
	Tags           []string       `json:"tags"`
	FeaturedImage  *string        `json:"featured_image" binding:"omitempty,max=500"`
	Status         *string        `json:"status"`
	PublishDate    *time.Time     `json:"publish_date"`
	ExpiryDate     *time.Time     `json:"expiry_date"`
	IsFeatured     *bool          `json:"is_featured"`
	IsTopStory     *bool          `json:"is_top_story"`
	SEOTitle       *string        `json:"seo_title" binding:"omitempty,max=255"`
	SEODescription *string        `json:"seo_description"`
	SEOKeywords    *string        `json:"seo_keywords" binding:"omitempty,max=500"`
	MetaData       map[string]any `json:"meta_data"`
}

func (in PostInput) apply(p *models.NewsPost, now time.Time) error {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&p.Title, in.Title)
	set(&p.Content, in.Content)
	set(&p.Summary, in.Summary)
	set(&p.Category, in.Category)
	set(&p.FeaturedImage, in.FeaturedImage)
	set(&p.SEOTitle, in.SEOTitle)
	set(&p.SEODescription, in.SEODescription)
	set(&p.SEOKeywords, in.SEOKeywords)

	if in.AuthorID != nil {
		p.AuthorID = *in.AuthorID
	}
	if in.BusinessUserID != nil {
		p.BusinessUserID = in.BusinessUserID
	}
	if in.Tags != nil {
		raw, err := json.Marshal(in.Tags)
		if err != nil {
			return err
		}
		p.Tags = datatypes.JSON(raw)
	}
	if in.MetaData != nil {
		raw, err := json.Marshal(in.MetaData)
		if err != nil {
			return err
		}
		p.MetaData = datatypes.JSON(raw)
	}
	if in.Status != nil {
		st, err := ParseStatus(*in.Status)
		if err != nil {
			return err
		}
		p.Status = st
	}
	if in.PublishDate != nil {
		p.PublishDate = in.PublishDate
	}
	if in.ExpiryDate != nil {
		p.ExpiryDate = in.ExpiryDate
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	if in.IsTopStory != nil {
		p.IsTopStory = *in.IsTopStory
	}

	if p.Status == models.NewsPublished && p.PublishDate == nil {
		p.PublishDate = &now
	}
	return nil
}

func (s *Service) checkAuthor(ctx context.Context, id uint) error {
	if _, err := s.users.Get(ctx, id); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return httperr.NotFoundErr("author_not_found", "Author not found.")
		}
		return err
	}
	return nil
}

func (s *Service) CreatePost(ctx context.Context, actor audit.Actor, in PostInput) (*models.NewsPost, error) {
	if in.Title == nil || in.Content == nil || in.AuthorID == nil {
		return nil, httperr.BusinessError{Code: "invalid_request", Message: "title, content and author_id are required."}
	}
	if err := s.checkAuthor(ctx, *in.AuthorID); err != nil {
		return nil, err
	}

	p := &models.NewsPost{Status: models.NewsDraft}
	if err := in.apply(p, s.now()); err != nil {
		return nil, err
	}
	if err := s.Create(ctx, actor, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdatePost(ctx context.Context, actor audit.Actor, id uint, in PostInput) (*models.NewsPost, error) {
	if in.AuthorID != nil {
		if err := s.checkAuthor(ctx, *in.AuthorID); err != nil {
			return nil, err
		}
	}
	now := s.now()
	return s.Update(ctx, actor, id, func(p *models.NewsPost) error {
		return in.apply(p, now)
	})
}

// DeletePost marks the post DELETED and soft-deletes it.
func (s *Service) DeletePost(ctx context.Context, actor audit.Actor, id uint) error {
	if _, err := s.Update(ctx, actor, id, func(p *models.NewsPost) error {
		p.Status = models.NewsDeleted
		return nil
	}); err != nil {
		return err
	}
	return s.Delete(ctx, actor, id)
}
