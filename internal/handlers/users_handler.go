package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/user"
)

type UsersHandler struct {
	users *user.Service
}

func NewUsersHandler(users *user.Service) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) List(c *gin.Context) {
	limit, offset := paging(c, 100, 1000)

	items, total, err := h.users.List(c.Request.Context(), crud.Query{
		Active: activeFlag(c),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Paged(c, "Users retrieved successfully", items, total, limit, offset)
}

func (h *UsersHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "User retrieved successfully", u)
}

func (h *UsersHandler) ByName(c *gin.Context) {
	items, err := h.users.SearchByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, "Users retrieved successfully", items)
}

func (h *UsersHandler) Create(c *gin.Context) {
	var req user.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	u, err := h.users.CreateUser(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, "User created successfully", u)
}

func (h *UsersHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req user.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	u, err := h.users.UpdateUser(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "User updated successfully", u)
}

func (h *UsersHandler) UpdateProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req user.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	u, err := h.users.UpdateProfile(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Profile updated successfully", u)
}

func (h *UsersHandler) ProfileImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "A file field named \"file\" is required.")
		return
	}

	u, err := h.users.SetProfileImage(c.Request.Context(), middleware.Actor(c), id, fh)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "Profile image updated successfully", u)
}

func (h *UsersHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, "User deleted successfully", gin.H{"id": id})
}
