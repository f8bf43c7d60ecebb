package crud

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type Filter struct {
	Column string
	Value  any
}

type Query struct {
	Active  *models.YesNo
	Filters []Filter

	Search       string
	SearchColumn string

	Preload []string
	Order   string
	Limit   int
	Offset  int
}

// Where appends an equality filter.
func (q Query) Where(column string, value any) Query {
	q.Filters = append(q.Filters, Filter{Column: column, Value: value})
	return q
}

func (q Query) OnlyActive(flag models.YesNo) Query {
	q.Active = &flag
	return q
}

// Repository is the persistence contract shared by the catalogue tables.
// Implementations built with soft delete hide rows flagged is_deleted='Y'
// from every read except GetAny and Exists.
type Repository[T any] interface {
	List(ctx context.Context, q Query) ([]T, int64, error)
	Get(ctx context.Context, id uint) (*T, error)
	GetAny(ctx context.Context, id uint) (*T, error)

	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uint, by *uint) error
	SetActive(ctx context.Context, id uint, flag models.YesNo, by *uint) error

	// Exists compares case-insensitively, ignoring the row excludeID.
	Exists(ctx context.Context, column, value string, excludeID uint) (bool, error)
	Count(ctx context.Context, filters ...Filter) (int64, error)
}
