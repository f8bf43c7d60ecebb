package news

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

const (
	LikeLike       = "LIKE"
	LikeLove       = "LOVE"
	LikeHelpful    = "HELPFUL"
	LikeInsightful = "INSIGHTFUL"
)

var likeTypes = []string{LikeLike, LikeLove, LikeHelpful, LikeInsightful}

var sharePlatforms = []string{"FACEBOOK", "TWITTER", "LINKEDIN", "WHATSAPP", "EMAIL", "COPY_LINK"}

func oneOf(v string, set []string) (string, bool) {
	up := strings.ToUpper(strings.TrimSpace(v))
	for _, s := range set {
		if s == up {
			return up, true
		}
	}
	return "", false
}

func (s *Service) checkUser(ctx context.Context, id uint) error {
	if _, err := s.users.Get(ctx, id); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return httperr.NotFoundErr("user_not_found", "User not found.")
		}
		return err
	}
	return nil
}

func (s *Service) recount(ctx context.Context, newsID uint) {
	if _, err := s.repo.Recount(ctx, newsID); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("news_id", newsID).Msg("news counter recount failed")
	}
}

// ======================================================
// Comments
// ======================================================

type CommentInput struct {
	NewsID          uint   `json:"news_id" binding:"required"`
	UserID          uint   `json:"user_id" binding:"required"`
	ParentCommentID *uint  `json:"parent_comment_id"`
	Content         string `json:"content" binding:"required,min=1"`
}

// Comments returns the top-level ACTIVE comments with their ACTIVE replies.
func (s *Service) Comments(ctx context.Context, newsID uint) ([]models.NewsComment, error) {
	if _, err := s.Get(ctx, newsID); err != nil {
		return nil, err
	}

	all, err := s.repo.ActiveComments(ctx, newsID)
	if err != nil {
		return nil, err
	}

	replies := map[uint][]models.NewsComment{}
	for _, c := range all {
		if c.ParentCommentID != nil {
			replies[*c.ParentCommentID] = append(replies[*c.ParentCommentID], c)
		}
	}

	out := []models.NewsComment{}
	for _, c := range all {
		if c.ParentCommentID == nil {
			c.Replies = replies[c.ID]
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) CreateComment(ctx context.Context, in CommentInput) (*models.NewsComment, error) {
	if _, err := s.Get(ctx, in.NewsID); err != nil {
		return nil, err
	}
	if err := s.checkUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	if in.ParentCommentID != nil {
		parent, err := s.repo.GetComment(ctx, *in.ParentCommentID)
		if err != nil && !errors.Is(err, crud.ErrNotFound) {
			return nil, err
		}
		if parent == nil || parent.NewsID != in.NewsID {
			return nil, httperr.BusinessError{Code: "invalid_parent_comment", Message: "Parent comment does not belong to this post."}
		}
	}

	c := &models.NewsComment{
		NewsID:          in.NewsID,
		UserID:          in.UserID,
		ParentCommentID: in.ParentCommentID,
		Content:         strings.TrimSpace(in.Content),
		Status:          models.CommentActive,
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	s.recount(ctx, c.NewsID)
	return c, nil
}

type CommentUpdate struct {
	Content *string `json:"content" binding:"omitempty,min=1"`
	Status  *string `json:"status" binding:"omitempty,oneof=ACTIVE MODERATED DELETED"`
}

func (s *Service) comment(ctx context.Context, id uint) (*models.NewsComment, error) {
	c, err := s.repo.GetComment(ctx, id)
	if errors.Is(err, crud.ErrNotFound) {
		return nil, httperr.NotFoundErr("comment_not_found", "Comment not found.")
	}
	return c, err
}

func (s *Service) UpdateComment(ctx context.Context, id uint, in CommentUpdate) (*models.NewsComment, error) {
	c, err := s.comment(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Content != nil {
		c.Content = strings.TrimSpace(*in.Content)
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if err := s.repo.SaveComment(ctx, c); err != nil {
		return nil, err
	}

	s.recount(ctx, c.NewsID)
	return c, nil
}

func (s *Service) DeleteComment(ctx context.Context, id uint) error {
	c, err := s.comment(ctx, id)
	if err != nil {
		return err
	}
	c.Status = models.CommentDeleted
	if err := s.repo.SaveComment(ctx, c); err != nil {
		return err
	}

	s.recount(ctx, c.NewsID)
	return nil
}

// ======================================================
// Likes
// ======================================================

type LikeInput struct {
	NewsID   uint   `json:"news_id" binding:"required"`
	UserID   uint   `json:"user_id" binding:"required"`
	LikeType string `json:"like_type"`
}

type LikeSummary struct {
	Likes     []models.NewsLike `json:"likes"`
	Total     int               `json:"total"`
	Breakdown map[string]int    `json:"breakdown"`
}

func (s *Service) Likes(ctx context.Context, newsID uint) (*LikeSummary, error) {
	if _, err := s.Get(ctx, newsID); err != nil {
		return nil, err
	}
	likes, err := s.repo.ListLikes(ctx, newsID)
	if err != nil {
		return nil, err
	}

	out := &LikeSummary{Likes: likes, Total: len(likes), Breakdown: map[string]int{}}
	for _, t := range likeTypes {
		out.Breakdown[t] = 0
	}
	for _, l := range likes {
		out.Breakdown[l.LikeType]++
	}
	return out, nil
}

func (s *Service) Like(ctx context.Context, in LikeInput) (*models.NewsLike, error) {
	kind := LikeLike
	if in.LikeType != "" {
		var ok bool
		if kind, ok = oneOf(in.LikeType, likeTypes); !ok {
			return nil, httperr.BusinessError{Code: "invalid_like_type", Message: "like_type must be one of LIKE, LOVE, HELPFUL, INSIGHTFUL."}
		}
	}
	if _, err := s.Get(ctx, in.NewsID); err != nil {
		return nil, err
	}
	if err := s.checkUser(ctx, in.UserID); err != nil {
		return nil, err
	}

	errLiked := httperr.BusinessError{Code: "already_liked", Message: "User already liked this post."}
	if _, err := s.repo.GetLike(ctx, in.NewsID, in.UserID); err == nil {
		return nil, errLiked
	} else if !errors.Is(err, crud.ErrNotFound) {
		return nil, err
	}

	l := &models.NewsLike{NewsID: in.NewsID, UserID: in.UserID, LikeType: kind}
	if err := s.repo.CreateLike(ctx, l); err != nil {
		if errors.Is(err, crud.ErrDuplicate) {
			return nil, errLiked
		}
		return nil, err
	}

	s.recount(ctx, in.NewsID)
	return l, nil
}

func (s *Service) Unlike(ctx context.Context, newsID, userID uint) error {
	n, err := s.repo.DeleteLike(ctx, newsID, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return httperr.NotFoundErr("like_not_found", "Like not found.")
	}

	s.recount(ctx, newsID)
	return nil
}

type LikeCheck struct {
	Liked    bool   `json:"liked"`
	LikeType string `json:"like_type,omitempty"`
}

func (s *Service) CheckLike(ctx context.Context, newsID, userID uint) (*LikeCheck, error) {
	l, err := s.repo.GetLike(ctx, newsID, userID)
	if errors.Is(err, crud.ErrNotFound) {
		return &LikeCheck{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &LikeCheck{Liked: true, LikeType: l.LikeType}, nil
}

// ======================================================
// Shares
// ======================================================

type ShareInput struct {
	NewsID        uint   `json:"news_id" binding:"required"`
	UserID        uint   `json:"user_id" binding:"required"`
	SharePlatform string `json:"share_platform" binding:"required"`
	ShareURL      string `json:"share_url" binding:"omitempty,max=500"`
}

func (s *Service) Share(ctx context.Context, in ShareInput) (*models.NewsShare, error) {
	platform, ok := oneOf(in.SharePlatform, sharePlatforms)
	if !ok {
		return nil, httperr.BusinessError{Code: "invalid_platform", Message: "Unsupported share platform."}
	}
	if _, err := s.Get(ctx, in.NewsID); err != nil {
		return nil, err
	}
	if err := s.checkUser(ctx, in.UserID); err != nil {
		return nil, err
	}

	sh := &models.NewsShare{NewsID: in.NewsID, UserID: in.UserID, SharePlatform: platform, ShareURL: in.ShareURL}
	if err := s.repo.CreateShare(ctx, sh); err != nil {
		return nil, err
	}

	s.recount(ctx, in.NewsID)
	return sh, nil
}

func (s *Service) Shares(ctx context.Context, newsID uint) ([]models.NewsShare, error) {
	if _, err := s.Get(ctx, newsID); err != nil {
		return nil, err
	}
	return s.repo.ListShares(ctx, newsID)
}

func (s *Service) UserShares(ctx context.Context, userID uint) ([]models.NewsShare, error) {
	return s.repo.SharesByUser(ctx, userID)
}

type ShareAnalytics struct {
	NewsID     uint           `json:"news_id"`
	Total      int            `json:"total_shares"`
	ByPlatform map[string]int `json:"platform_breakdown"`
}

func (s *Service) ShareAnalytics(ctx context.Context, newsID uint) (*ShareAnalytics, error) {
	shares, err := s.Shares(ctx, newsID)
	if err != nil {
		return nil, err
	}

	out := &ShareAnalytics{NewsID: newsID, Total: len(shares), ByPlatform: map[string]int{}}
	for _, p := range sharePlatforms {
		out.ByPlatform[p] = 0
	}
	for _, sh := range shares {
		out.ByPlatform[sh.SharePlatform]++
	}
	return out, nil
}
