package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type CrudGormRepository[T any] struct {
	db   *gorm.DB
	soft bool
}

// NewSoftDeleteRepository serves tables that embed models.Audit.
func NewSoftDeleteRepository[T any](db *gorm.DB) *CrudGormRepository[T] {
	return &CrudGormRepository[T]{db: db, soft: true}
}

// NewRepository serves tables without audit columns; Delete removes the row.
func NewRepository[T any](db *gorm.DB) *CrudGormRepository[T] {
	return &CrudGormRepository[T]{db: db}
}

var _ crud.Repository[models.UserType] = (*CrudGormRepository[models.UserType])(nil)

func (r *CrudGormRepository[T]) DB() *gorm.DB {
	return r.db
}

func (r *CrudGormRepository[T]) scoped(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T))
	if r.soft {
		q = q.Where("is_deleted = ?", models.No)
	}
	return q
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *CrudGormRepository[T]) List(ctx context.Context, query crud.Query) ([]T, int64, error) {
	q := r.scoped(ctx)

	if query.Active != nil {
		q = q.Where("is_active = ?", *query.Active)
	}
	for _, f := range query.Filters {
		q = q.Where(f.Column+" = ?", f.Value)
	}
	if s := strings.TrimSpace(query.Search); s != "" && query.SearchColumn != "" {
		q = q.Where("LOWER("+query.SearchColumn+") LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	base := q.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := query.Order
	if order == "" {
		order = "id ASC"
	}

	list := base.Order(order)
	for _, p := range query.Preload {
		list = list.Preload(p)
	}
	if query.Limit > 0 {
		list = list.Limit(query.Limit)
	}
	if query.Offset > 0 {
		list = list.Offset(query.Offset)
	}

	var out []T
	if err := list.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *CrudGormRepository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.scoped(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

func (r *CrudGormRepository[T]) GetAny(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

func (r *CrudGormRepository[T]) Exists(ctx context.Context, column, value string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(new(T)).
		Where("LOWER("+column+") = ?", strings.ToLower(strings.TrimSpace(value)))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CrudGormRepository[T]) Count(ctx context.Context, filters ...crud.Filter) (int64, error) {
	q := r.scoped(ctx)
	for _, f := range filters {
		q = q.Where(f.Column+" = ?", f.Value)
	}

	var count int64
	err := q.Count(&count).Error
	return count, err
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *CrudGormRepository[T]) Create(ctx context.Context, entity *T) error {
	return translate(r.db.WithContext(ctx).Create(entity).Error)
}

func (r *CrudGormRepository[T]) Update(ctx context.Context, entity *T) error {
	return translate(r.db.WithContext(ctx).Save(entity).Error)
}

func (r *CrudGormRepository[T]) Delete(ctx context.Context, id uint, by *uint) error {
	if !r.soft {
		res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return crud.ErrNotFound
		}
		return nil
	}

	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ? AND is_deleted = ?", id, models.No).
		Updates(map[string]any{
			"is_deleted":  models.Yes,
			"deleted_by":  by,
			"deleted_on":  now,
			"modified_on": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return crud.ErrNotFound
	}
	return nil
}

func (r *CrudGormRepository[T]) SetActive(ctx context.Context, id uint, flag models.YesNo, by *uint) error {
	values := map[string]any{"is_active": flag}
	if r.soft {
		values["modified_by"] = by
		values["modified_on"] = time.Now()
	}

	res := r.scoped(ctx).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return crud.ErrNotFound
	}
	return nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return crud.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return crud.ErrDuplicate
	}
	return err
}
