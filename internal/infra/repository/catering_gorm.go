package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/catering"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type CateringOrderGormRepository struct {
	*CrudGormRepository[models.CateringOrder]
}

func NewCateringOrderGormRepository(db *gorm.DB) *CateringOrderGormRepository {
	return &CateringOrderGormRepository{NewRepository[models.CateringOrder](db)}
}

var _ catering.Repository = (*CateringOrderGormRepository)(nil)

func (r *CateringOrderGormRepository) GetWithItems(ctx context.Context, id uint) (*models.CateringOrder, error) {
	var o models.CateringOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&o).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *CateringOrderGormRepository) SetStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.CateringOrder{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return crud.ErrNotFound
	}
	return nil
}
