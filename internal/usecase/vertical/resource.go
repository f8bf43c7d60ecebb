package vertical

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

// Tenanted rows belong to exactly one business user.
type Tenanted interface {
	PrimaryKey() uint
	Tenant() uint
	SetTenant(id uint)
}

// BookingNotifier tells a business owner about a new booking, appointment
// or order.
type BookingNotifier interface {
	Booking(ctx context.Context, ownerID, businessUserID uint, kind, number string)
}

type Options struct {
	Table         string
	Label         string
	NotFoundCode  string
	DuplicateCode string
	Order         string
}

// Resource is the tenant-scoped CRUD shared by the vertical tables.
type Resource[T any, PT interface {
	*T
	Tenanted
}] struct {
	repo       crud.Repository[T]
	businesses crud.Repository[models.BusinessUser]
	opt        Options
	audit      *audit.Dispatcher
}

func NewResource[T any, PT interface {
	*T
	Tenanted
}](repo crud.Repository[T], businesses crud.Repository[models.BusinessUser], opt Options, dispatcher *audit.Dispatcher) *Resource[T, PT] {
	return &Resource[T, PT]{repo: repo, businesses: businesses, opt: opt, audit: dispatcher}
}

func (r *Resource[T, PT]) Repo() crud.Repository[T] { return r.repo }

func (r *Resource[T, PT]) NotFound() error {
	return httperr.NotFoundErr(r.opt.NotFoundCode, r.opt.Label+" not found.")
}

// Business loads the owning business user.
func (r *Resource[T, PT]) Business(ctx context.Context, id uint) (*models.BusinessUser, error) {
	if id == 0 {
		return nil, httperr.BusinessError{Code: "business_user_id_required", Message: "business_user_id is required."}
	}
	b, err := r.businesses.Get(ctx, id)
	if errors.Is(err, crud.ErrNotFound) {
		return nil, httperr.NotFoundErr("business_user_not_found", "Business user not found.")
	}
	return b, err
}

func (r *Resource[T, PT]) List(ctx context.Context, businessUserID uint, q crud.Query) ([]T, int64, error) {
	if _, err := r.Business(ctx, businessUserID); err != nil {
		return nil, 0, err
	}
	if q.Order == "" {
		q.Order = r.opt.Order
	}
	return r.repo.List(ctx, q.Where("business_user_id", businessUserID))
}

// Get loads id; a non-zero businessUserID must own the row.
func (r *Resource[T, PT]) Get(ctx context.Context, businessUserID, id uint) (PT, error) {
	e, err := r.repo.Get(ctx, id)
	if errors.Is(err, crud.ErrNotFound) {
		return nil, r.NotFound()
	}
	if err != nil {
		return nil, err
	}
	if businessUserID != 0 && PT(e).Tenant() != businessUserID {
		return nil, r.NotFound()
	}
	return PT(e), nil
}

func (r *Resource[T, PT]) Create(ctx context.Context, actor audit.Actor, businessUserID uint, e PT) error {
	if _, err := r.Business(ctx, businessUserID); err != nil {
		return err
	}
	e.SetTenant(businessUserID)

	if err := r.repo.Create(ctx, (*T)(e)); err != nil {
		return r.writeErr(err)
	}
	r.record(actor, e, audit.ActionCreate)
	return nil
}

// Update applies the change to the stored row; the owner never changes.
func (r *Resource[T, PT]) Update(ctx context.Context, actor audit.Actor, businessUserID, id uint, apply func(PT) error) (PT, error) {
	e, err := r.Get(ctx, businessUserID, id)
	if err != nil {
		return nil, err
	}
	owner := e.Tenant()

	if err := apply(e); err != nil {
		return nil, err
	}
	if e.PrimaryKey() != id {
		return nil, errIDChanged
	}
	e.SetTenant(owner)

	if err := r.Save(ctx, actor, e, audit.ActionUpdate); err != nil {
		return nil, err
	}
	return e, nil
}

// Save writes e and records action against it.
func (r *Resource[T, PT]) Save(ctx context.Context, actor audit.Actor, e PT, action string) error {
	if err := r.repo.Update(ctx, (*T)(e)); err != nil {
		return r.writeErr(err)
	}
	r.record(actor, e, action)
	return nil
}

func (r *Resource[T, PT]) record(actor audit.Actor, e PT, action string) {
	owner := e.Tenant()
	r.audit.Dispatch(audit.Event{
		Actor:          actor,
		BusinessUserID: &owner,
		Action:         action,
		Table:          r.opt.Table,
		RecordID:       ptr(e.PrimaryKey()),
		Values:         e,
	})
}

func (r *Resource[T, PT]) Delete(ctx context.Context, actor audit.Actor, businessUserID, id uint) error {
	e, err := r.Get(ctx, businessUserID, id)
	if err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, id, actor.UserID); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return r.NotFound()
		}
		return err
	}

	owner := e.Tenant()
	r.audit.Dispatch(audit.Event{
		Actor:          actor,
		BusinessUserID: &owner,
		Action:         audit.ActionDelete,
		Table:          r.opt.Table,
		RecordID:       &id,
	})
	return nil
}

func (r *Resource[T, PT]) writeErr(err error) error {
	if errors.Is(err, crud.ErrDuplicate) && r.opt.DuplicateCode != "" {
		return httperr.E(http.StatusBadRequest, r.opt.DuplicateCode, r.opt.Label+" already exists.")
	}
	return err
}

var errIDChanged = httperr.E(http.StatusBadRequest, "invalid_request", "The id of a record cannot be changed.")

func ptr[T any](v T) *T { return &v }

// Number builds a human readable reference such as BK-20250101-1A2B3C4D.
func Number(prefix string, now time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), id)
}
