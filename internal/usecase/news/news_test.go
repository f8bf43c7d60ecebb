package news

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/db/dbtest"
	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/news"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/infra/repository"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (*Service, models.User) {
	t.Helper()
	db := dbtest.New(t)

	ut := models.UserType{Name: "Editor", IsActive: models.Yes}
	require.NoError(t, db.Create(&ut).Error)
	u := models.User{FullName: "Kiran", Email: "kiran@example.com", PasswordHash: "x", UserTypeID: ut.ID, IsActive: models.Yes}
	require.NoError(t, db.Create(&u).Error)

	return NewService(repository.NewNewsGormRepository(db), repository.NewSoftDeleteRepository[models.User](db), nil), u
}

func TestPosts_Lifecycle(t *testing.T) {
	s, u := setup(t)
	ctx := context.Background()

	_, err := s.CreatePost(ctx, audit.Actor{}, PostInput{Title: ptr("Hello"), Content: ptr("c"), AuthorID: ptr(uint(999))})
	assert.True(t, httperr.IsBusiness(err, "author_not_found"))

	_, err = s.CreatePost(ctx, audit.Actor{}, PostInput{Title: ptr("Hello"), Content: ptr("c"), AuthorID: &u.ID, Status: ptr("bogus")})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	p, err := s.CreatePost(ctx, audit.Actor{}, PostInput{Title: ptr("Hello"), Content: ptr("c"), AuthorID: &u.ID, Status: ptr("published"), Tags: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, models.NewsPublished, p.Status)
	assert.NotNil(t, p.PublishDate)

	_, err = s.CreatePost(ctx, audit.Actor{}, PostInput{Title: ptr("HELLO"), Content: ptr("c"), AuthorID: &u.ID})
	assert.True(t, httperr.IsBusiness(err, "news_title_exists"))

	draft, err := s.CreatePost(ctx, audit.Actor{}, PostInput{Title: ptr("Draft"), Content: ptr("x"), AuthorID: &u.ID})
	require.NoError(t, err)
	assert.Nil(t, draft.PublishDate)

	viewed, err := s.View(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, viewed.ViewCount)

	list, total, err := s.ListPosts(ctx, domain.PostFilter{Status: "Published"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	require.NoError(t, s.DeletePost(ctx, audit.Actor{}, p.ID))
	_, total, err = s.ListPosts(ctx, domain.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, err = s.View(ctx, p.ID)
	assert.True(t, httperr.IsBusiness(err, "news_post_not_found"))
}

func TestEngagement_CountersFollowWrites(t *testing.T) {
	s, u := setup(t)
	ctx := context.Background()

	p, err := s.CreatePost(ctx, audit.Actor{}, PostInput{Title: ptr("Story"), Content: ptr("c"), AuthorID: &u.ID})
	require.NoError(t, err)
	other, err := s.CreatePost(ctx, audit.Actor{}, PostInput{Title: ptr("Other"), Content: ptr("c"), AuthorID: &u.ID})
	require.NoError(t, err)

	top, err := s.CreateComment(ctx, CommentInput{NewsID: p.ID, UserID: u.ID, Content: "first"})
	require.NoError(t, err)
	_, err = s.CreateComment(ctx, CommentInput{NewsID: p.ID, UserID: u.ID, ParentCommentID: &top.ID, Content: "reply"})
	require.NoError(t, err)

	_, err = s.CreateComment(ctx, CommentInput{NewsID: other.ID, UserID: u.ID, ParentCommentID: &top.ID, Content: "wrong post"})
	assert.True(t, httperr.IsBusiness(err, "invalid_parent_comment"))

	comments, err := s.Comments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Len(t, comments[0].Replies, 1)

	_, err = s.Like(ctx, LikeInput{NewsID: p.ID, UserID: u.ID, LikeType: "love"})
	require.NoError(t, err)
	_, err = s.Like(ctx, LikeInput{NewsID: p.ID, UserID: u.ID})
	assert.True(t, httperr.IsBusiness(err, "already_liked"))

	check, err := s.CheckLike(ctx, p.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, check.Liked)
	assert.Equal(t, LikeLove, check.LikeType)

	_, err = s.Share(ctx, ShareInput{NewsID: p.ID, UserID: u.ID, SharePlatform: "whatsapp"})
	require.NoError(t, err)
	_, err = s.Share(ctx, ShareInput{NewsID: p.ID, UserID: u.ID, SharePlatform: "myspace"})
	assert.True(t, httperr.IsBusiness(err, "invalid_platform"))

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentCount)
	assert.Equal(t, 1, got.LikeCount)
	assert.Equal(t, 1, got.ShareCount)

	require.NoError(t, s.DeleteComment(ctx, top.ID))
	require.NoError(t, s.Unlike(ctx, p.ID, u.ID))
	assert.True(t, httperr.IsBusiness(s.Unlike(ctx, p.ID, u.ID), "like_not_found"))

	got, err = s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CommentCount)
	assert.Equal(t, 0, got.LikeCount)

	analytics, err := s.ShareAnalytics(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, analytics.Total)
	assert.Equal(t, 1, analytics.ByPlatform["WHATSAPP"])
	assert.Equal(t, 0, analytics.ByPlatform["EMAIL"])
}
