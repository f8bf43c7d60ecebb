package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/location"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type AddressGormRepository struct {
	*CrudGormRepository[models.LocationUserAddress]
}

func NewAddressGormRepository(db *gorm.DB) *AddressGormRepository {
	return &AddressGormRepository{NewSoftDeleteRepository[models.LocationUserAddress](db)}
}

var _ location.AddressRepository = (*AddressGormRepository)(nil)

func (r *AddressGormRepository) SaveDefault(ctx context.Context, a *models.LocationUserAddress) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if a.ID == 0 {
			err = tx.Create(a).Error
		} else {
			err = tx.Save(a).Error
		}
		if err != nil {
			return translate(err)
		}

		if a.IsDefault != models.Yes {
			return nil
		}
		return tx.Model(&models.LocationUserAddress{}).
			Where("user_id = ? AND id <> ? AND is_default = ?", a.UserID, a.ID, models.Yes).
			Update("is_default", models.No).Error
	})
}
