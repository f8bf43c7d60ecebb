package business

import (
	"context"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type UserRepository interface {
	crud.Repository[models.BusinessUser]

	// CreateMany inserts every row or none.
	CreateMany(ctx context.Context, rows []models.BusinessUser) error
}
