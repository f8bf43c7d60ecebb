package location

import (
	"context"

	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type AddressRepository interface {
	crud.Repository[models.LocationUserAddress]

	// SaveDefault writes a (creating when ID is zero) and, when it is the
	// default address, clears the flag on the user's other addresses in the
	// same transaction.
	SaveDefault(ctx context.Context, a *models.LocationUserAddress) error
}
