package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httpresp"
	"github.com/BruksfildServices01/appointmenttech-api/internal/middleware"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/vertical"
)

type (
	createFunc[PT any] func(ctx context.Context, actor audit.Actor, businessUserID uint, e PT) error
	updateFunc[PT any] func(ctx context.Context, actor audit.Actor, businessUserID, id uint, apply func(PT) error) (PT, error)
)

// ResourceHandler serves one tenant-scoped vertical table. The request body
// of create is the row itself; update merges the body onto the stored row.
type ResourceHandler[T any, PT interface {
	*T
	vertical.Tenanted
}] struct {
	res    *vertical.Resource[T, PT]
	label  string
	create createFunc[PT]
	update updateFunc[PT]
}

func NewResourceHandler[T any, PT interface {
	*T
	vertical.Tenanted
}](res *vertical.Resource[T, PT], label string) *ResourceHandler[T, PT] {
	return &ResourceHandler[T, PT]{
		res:    res,
		label:  label,
		create: res.Create,
		update: res.Update,
	}
}

// WithCreate replaces the plain insert with a domain specific one.
func (h *ResourceHandler[T, PT]) WithCreate(fn createFunc[PT]) *ResourceHandler[T, PT] {
	h.create = fn
	return h
}

func (h *ResourceHandler[T, PT]) WithUpdate(fn updateFunc[PT]) *ResourceHandler[T, PT] {
	h.update = fn
	return h
}

func (h *ResourceHandler[T, PT]) List(c *gin.Context) {
	limit, offset := paging(c, 100, 1000)
	q := crud.Query{Limit: limit, Offset: offset}
	if s := c.Query("status"); s != "" {
		q = q.Where("status", s)
	}

	items, total, err := h.res.List(c.Request.Context(), queryUint(c, "business_user_id"), q)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Paged(c, h.label+" list retrieved successfully", items, total, limit, offset)
}

func (h *ResourceHandler[T, PT]) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	e, err := h.res.Get(c.Request.Context(), queryUint(c, "business_user_id"), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, h.label+" retrieved successfully", e)
}

func (h *ResourceHandler[T, PT]) Create(c *gin.Context) {
	var e T
	if err := bindCreate(c, &e, "business_user_id"); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	bid := PT(&e).Tenant()
	if bid == 0 {
		bid = queryUint(c, "business_user_id")
	}
	if err := h.create(c.Request.Context(), middleware.Actor(c), bid, PT(&e)); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, h.label+" created successfully", &e)
}

func (h *ResourceHandler[T, PT]) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	e, err := h.update(c.Request.Context(), middleware.Actor(c), queryUint(c, "business_user_id"), id, func(e PT) error {
		return mergeValid(body, e)
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, h.label+" updated successfully", e)
}

func (h *ResourceHandler[T, PT]) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.res.Delete(c.Request.Context(), middleware.Actor(c), queryUint(c, "business_user_id"), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, h.label+" deleted successfully", gin.H{"id": id})
}
