package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/news"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/news"
)

type NewsHandler struct {
	svc *news.Service
}

func NewNewsHandler(svc *news.Service) *NewsHandler {
	return &NewsHandler{svc: svc}
}

// queryBool accepts Y/N as well as true/false; absent means no filter.
func queryBool(c *gin.Context, name string) *bool {
	v := strings.ToLower(strings.TrimSpace(c.Query(name)))
	var b bool
	switch v {
	case "y", "yes", "true", "1":
		b = true
	case "n", "no", "false", "0":
		b = false
	default:
		return nil
	}
	return &b
}

// ==========================
// Posts
// ==========================

func (h *NewsHandler) Authors(c *gin.Context) {
	items, err := h.svc.AvailableAuthors(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "Available authors retrieved successfully", items)
}

func (h *NewsHandler) ListPosts(c *gin.Context) {
	limit, offset := paging(c, 20, 100)
	f := domain.PostFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Featured: queryBool(c, "featured"),
		TopStory: queryBool(c, "top_story"),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
	}
	if id := queryUint(c, "author_id"); id != 0 {
		f.AuthorID = &id
	}

	items, total, err := h.svc.ListPosts(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Paged(c, "News posts retrieved successfully", items, total, limit, offset)
}

func (h *NewsHandler) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.View(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "News post retrieved successfully", p)
}

func (h *NewsHandler) CreatePost(c *gin.Context) {
	var req news.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	p, err := h.svc.CreatePost(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "News post created successfully", p)
}

func (h *NewsHandler) UpdatePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req news.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	p, err := h.svc.UpdatePost(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "News post updated successfully", p)
}

func (h *NewsHandler) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeletePost(c.Request.Context(), middleware.Actor(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "News post deleted successfully", gin.H{"id": id})
}

// ==========================
// Comments
// ==========================

func (h *NewsHandler) Comments(c *gin.Context) {
	id, ok := pathID(c, "news_id")
	if !ok {
		return
	}
	items, err := h.svc.Comments(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "Comments retrieved successfully", items)
}

func (h *NewsHandler) CreateComment(c *gin.Context) {
	var req news.CommentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	cm, err := h.svc.CreateComment(c.Request.Context(), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Comment created successfully", cm)
}

func (h *NewsHandler) UpdateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req news.CommentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	cm, err := h.svc.UpdateComment(c.Request.Context(), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Comment updated successfully", cm)
}

func (h *NewsHandler) DeleteComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteComment(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Comment deleted successfully", gin.H{"id": id})
}

// ==========================
// Likes
// ==========================

func (h *NewsHandler) Likes(c *gin.Context) {
	id, ok := pathID(c, "news_id")
	if !ok {
		return
	}
	summary, err := h.svc.Likes(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Likes retrieved successfully", summary)
}

func (h *NewsHandler) Like(c *gin.Context) {
	var req news.LikeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	l, err := h.svc.Like(c.Request.Context(), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Like added successfully", l)
}

func (h *NewsHandler) Unlike(c *gin.Context) {
	newsID, ok := pathID(c, "news_id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	if err := h.svc.Unlike(c.Request.Context(), newsID, userID); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Like removed successfully", gin.H{"news_id": newsID, "user_id": userID})
}

func (h *NewsHandler) CheckLike(c *gin.Context) {
	newsID, ok := pathID(c, "news_id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	res, err := h.svc.CheckLike(c.Request.Context(), newsID, userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Like status retrieved successfully", res)
}

// ==========================
// Shares
// ==========================

func (h *NewsHandler) Shares(c *gin.Context) {
	id, ok := pathID(c, "news_id")
	if !ok {
		return
	}
	items, err := h.svc.Shares(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "Shares retrieved successfully", items)
}

func (h *NewsHandler) Share(c *gin.Context) {
	var req news.ShareInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	sh, err := h.svc.Share(c.Request.Context(), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "Share recorded successfully", sh)
}

func (h *NewsHandler) ShareAnalytics(c *gin.Context) {
	id, ok := pathID(c, "news_id")
	if !ok {
		return
	}
	res, err := h.svc.ShareAnalytics(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Share analytics retrieved successfully", res)
}

func (h *NewsHandler) UserShares(c *gin.Context) {
	id, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	items, err := h.svc.UserShares(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "User shares retrieved successfully", items)
}
