package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/cache"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

// Record is implemented by every table embedding models.Audit.
type Record interface {
	PrimaryKey() uint
	StampCreated(by *uint)
	StampModified(by *uint)
}

type Options[T any] struct {
	// Table names the rows in audit logs and cache keys.
	Table string
	Label string

	// NameColumn is unique case-insensitively; Name reads it from a row.
	NameColumn    string
	Name          func(*T) string
	DuplicateCode string

	NotFoundCode string
	// AlreadyDeletedCode turns a second delete into a 400 instead of a 404.
	AlreadyDeletedCode string

	// Cached lists are kept this long; zero disables list caching.
	CacheTTL time.Duration
}

// Service implements the create / read / update / soft-delete lifecycle
// shared by the catalogue tables.
type Service[T any, PT interface {
	*T
	Record
}] struct {
	repo  crud.Repository[T]
	opt   Options[T]
	audit *audit.Dispatcher
	cache cache.Cache
}

func NewService[T any, PT interface {
	*T
	Record
}](repo crud.Repository[T], opt Options[T], dispatcher *audit.Dispatcher, c cache.Cache) *Service[T, PT] {
	if c == nil {
		c = cache.Noop{}
	}
	if opt.NotFoundCode == "" {
		opt.NotFoundCode = "not_found"
	}
	return &Service[T, PT]{repo: repo, opt: opt, audit: dispatcher, cache: c}
}

func (s *Service[T, PT]) Repo() crud.Repository[T] { return s.repo }

func (s *Service[T, PT]) NotFound() error {
	return httperr.NotFoundErr(s.opt.NotFoundCode, s.opt.Label+" not found.")
}

func (s *Service[T, PT]) duplicate() error {
	return httperr.E(http.StatusBadRequest, s.opt.DuplicateCode, s.opt.Label+" with this name already exists.")
}

// ------------------------------------------------------
// Reads
// ------------------------------------------------------

type cachedList[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

func (s *Service[T, PT]) List(ctx context.Context, q crud.Query) ([]T, int64, error) {
	key, cacheable := s.listKey(q)
	if cacheable {
		var hit cachedList[T]
		found, err := s.cache.Get(ctx, key, &hit)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		if found {
			return hit.Items, hit.Total, nil
		}
	}

	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, cachedList[T]{Items: items, Total: total}, s.opt.CacheTTL); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return items, total, nil
}

func (s *Service[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	e, err := s.repo.Get(ctx, id)
	if errors.Is(err, crud.ErrNotFound) {
		return nil, s.NotFound()
	}
	return e, err
}

// CheckName fails with the duplicate code when name is taken by a row
// other than excludeID.
func (s *Service[T, PT]) CheckName(ctx context.Context, name string, excludeID uint) error {
	if s.opt.NameColumn == "" {
		return nil
	}
	taken, err := s.repo.Exists(ctx, s.opt.NameColumn, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return s.duplicate()
	}
	return nil
}

// ------------------------------------------------------
// Writes
// ------------------------------------------------------

func (s *Service[T, PT]) Create(ctx context.Context, actor audit.Actor, e PT) error {
	if s.opt.Name != nil {
		if err := s.CheckName(ctx, s.opt.Name((*T)(e)), 0); err != nil {
			return err
		}
	}

	e.StampCreated(actor.UserID)
	if err := s.repo.Create(ctx, (*T)(e)); err != nil {
		return s.writeErr(err)
	}

	s.invalidate(ctx)
	s.audit.Record(actor, audit.ActionCreate, s.opt.Table, e.PrimaryKey(), e)
	return nil
}

// Update loads the row, applies the change and saves it. The name check
// only runs when apply changed the name.
func (s *Service[T, PT]) Update(ctx context.Context, actor audit.Actor, id uint, apply func(PT) error) (PT, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	e := PT(current)

	var before string
	if s.opt.Name != nil {
		before = s.opt.Name(current)
	}

	if err := apply(e); err != nil {
		return nil, err
	}
	if e.PrimaryKey() != id {
		return nil, httperr.E(http.StatusBadRequest, "invalid_request", "The id of a record cannot be changed.")
	}

	if s.opt.Name != nil {
		if after := s.opt.Name(current); !strings.EqualFold(strings.TrimSpace(after), strings.TrimSpace(before)) {
			if err := s.CheckName(ctx, after, id); err != nil {
				return nil, err
			}
		}
	}

	e.StampModified(actor.UserID)
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, s.writeErr(err)
	}

	s.invalidate(ctx)
	s.audit.Record(actor, audit.ActionUpdate, s.opt.Table, id, e)
	return e, nil
}

func (s *Service[T, PT]) Delete(ctx context.Context, actor audit.Actor, id uint) error {
	err := s.repo.Delete(ctx, id, actor.UserID)
	if errors.Is(err, crud.ErrNotFound) {
		if s.opt.AlreadyDeletedCode != "" {
			if _, anyErr := s.repo.GetAny(ctx, id); anyErr == nil {
				return httperr.E(http.StatusBadRequest, s.opt.AlreadyDeletedCode, s.opt.Label+" is already deleted.")
			}
		}
		return s.NotFound()
	}
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	s.audit.Record(actor, audit.ActionDelete, s.opt.Table, id, nil)
	return nil
}

func (s *Service[T, PT]) SetActive(ctx context.Context, actor audit.Actor, id uint, flag models.YesNo) error {
	err := s.repo.SetActive(ctx, id, flag, actor.UserID)
	if errors.Is(err, crud.ErrNotFound) {
		return s.NotFound()
	}
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	s.audit.Record(actor, audit.ActionUpdate, s.opt.Table, id, map[string]any{"is_active": flag})
	return nil
}

// Toggle flips the active flag read by current and returns the new value.
func (s *Service[T, PT]) Toggle(ctx context.Context, actor audit.Actor, id uint, current func(*T) models.YesNo) (models.YesNo, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	next := current(e).Toggle()
	if err := s.SetActive(ctx, actor, id, next); err != nil {
		return "", err
	}
	return next, nil
}

func (s *Service[T, PT]) writeErr(err error) error {
	if errors.Is(err, crud.ErrDuplicate) && s.opt.DuplicateCode != "" {
		return s.duplicate()
	}
	return err
}

// ------------------------------------------------------
// Cache
// ------------------------------------------------------

// Only the unfiltered list and its active/inactive variants are cached.
func (s *Service[T, PT]) listKey(q crud.Query) (string, bool) {
	if s.opt.CacheTTL <= 0 || len(q.Filters) > 0 || q.Search != "" ||
		len(q.Preload) > 0 || q.Order != "" || q.Limit > 0 || q.Offset > 0 {
		return "", false
	}
	variant := "all"
	if q.Active != nil {
		variant = string(*q.Active)
	}
	return fmt.Sprintf("%s:list:%s", s.opt.Table, variant), true
}

func (s *Service[T, PT]) invalidate(ctx context.Context) {
	if s.opt.CacheTTL <= 0 {
		return
	}
	keys := []string{
		s.opt.Table + ":list:all",
		s.opt.Table + ":list:" + string(models.Yes),
		s.opt.Table + ":list:" + string(models.No),
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("table", s.opt.Table).Msg("cache invalidation failed")
	}
}
