package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/business"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type BusinessUserGormRepository struct {
	*CrudGormRepository[models.BusinessUser]
}

func NewBusinessUserGormRepository(db *gorm.DB) *BusinessUserGormRepository {
	return &BusinessUserGormRepository{NewSoftDeleteRepository[models.BusinessUser](db)}
}

var _ business.UserRepository = (*BusinessUserGormRepository)(nil)

func (r *BusinessUserGormRepository) CreateMany(ctx context.Context, rows []models.BusinessUser) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return translate(err)
			}
		}
		return nil
	})
}
