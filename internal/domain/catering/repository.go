package catering

import (
	"context"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type Repository interface {
	crud.Repository[models.CateringOrder]

	// GetWithItems loads the order and its lines.
	GetWithItems(ctx context.Context, id uint) (*models.CateringOrder, error)
	SetStatus(ctx context.Context, id uint, status string) error
}
