package location

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	domain "github.com/BruksfildServices01/appointmenttech-api/internal/domain/location"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/catalog"
)

type AddressService struct {
	*catalog.Service[models.LocationUserAddress, *models.LocationUserAddress]

	repo      domain.AddressRepository
	users     crud.Repository[models.User]
	locations crud.Repository[models.LocationMaster]
	pincodes  crud.Repository[models.LocationActivePincode]
	audit     *audit.Dispatcher
}

func NewAddressService(
	repo domain.AddressRepository,
	users crud.Repository[models.User],
	locations crud.Repository[models.LocationMaster],
	pincodes crud.Repository[models.LocationActivePincode],
	dispatcher *audit.Dispatcher,
) *AddressService {
	return &AddressService{
		Service: catalog.NewService[models.LocationUserAddress, *models.LocationUserAddress](repo, catalog.Options[models.LocationUserAddress]{
			Table:         "location_user_addresses",
			Label:         "Address",
			NameColumn:    "address_line1",
			Name:          func(a *models.LocationUserAddress) string { return a.AddressLine1 },
			DuplicateCode: "address_exists",
			NotFoundCode:  "address_not_found",
		}, dispatcher, nil),
		repo:      repo,
		users:     users,
		locations: locations,
		pincodes:  pincodes,
		audit:     dispatcher,
	}
}

type AddressInput struct {
	UserID       *uint         `json:"user_id"`
	LocationID   *uint         `json:"location_id"`
	PincodeID    *uint         `json:"pincode_id"`
	AddressLine1 *string       `json:"address_line1" binding:"omitempty,min=1,max=255"`
	AddressLine2 *string       `json:"address_line2" binding:"omitempty,max=255"`
	City         *string       `json:"city" binding:"omitempty,max=100"`
	Pincode      *string       `json:"pincode" binding:"omitempty,max=10"`
	Longitude    *string       `json:"longitude" binding:"omitempty,max=20"`
	Latitude     *string       `json:"latitude" binding:"omitempty,max=20"`
	MapURL       *string       `json:"map_url" binding:"omitempty,max=255"`
	AddressType  *string       `json:"address_type" binding:"omitempty,max=50"`
	IsDefault    *models.YesNo `json:"is_default" binding:"omitempty,oneof=Y N"`
	IsActive     *models.YesNo `json:"is_active" binding:"omitempty,oneof=Y N"`
}

func (in AddressInput) apply(a *models.LocationUserAddress) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	if in.UserID != nil {
		a.UserID = *in.UserID
	}
	if in.LocationID != nil {
		a.LocationID = *in.LocationID
	}
	if in.PincodeID != nil {
		a.PincodeID = *in.PincodeID
	}
	set(&a.AddressLine1, in.AddressLine1)
	set(&a.AddressLine2, in.AddressLine2)
	set(&a.City, in.City)
	set(&a.Pincode, in.Pincode)
	set(&a.Longitude, in.Longitude)
	set(&a.Latitude, in.Latitude)
	set(&a.MapURL, in.MapURL)
	set(&a.AddressType, in.AddressType)
	if in.IsDefault != nil {
		a.IsDefault = *in.IsDefault
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
}

func (s *AddressService) checkRefs(ctx context.Context, a *models.LocationUserAddress) error {
	if _, err := s.users.Get(ctx, a.UserID); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return httperr.NotFoundErr("user_not_found", "User not found.")
		}
		return err
	}
	if err := checkLocation(ctx, s.locations, a.LocationID); err != nil {
		return err
	}
	if _, err := s.pincodes.Get(ctx, a.PincodeID); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return httperr.NotFoundErr("pincode_not_found", "Pincode not found.")
		}
		return err
	}
	return nil
}

func (s *AddressService) CreateAddress(ctx context.Context, actor audit.Actor, in AddressInput) (*models.LocationUserAddress, error) {
	if in.UserID == nil || in.LocationID == nil || in.PincodeID == nil || in.AddressLine1 == nil {
		return nil, httperr.BusinessError{Code: "invalid_request", Message: "user_id, location_id, pincode_id and address_line1 are required."}
	}

	a := &models.LocationUserAddress{AddressType: "Home", IsDefault: models.No, IsActive: models.Yes}
	in.apply(a)
	if err := s.checkRefs(ctx, a); err != nil {
		return nil, err
	}
	if err := s.CheckName(ctx, a.AddressLine1, 0); err != nil {
		return nil, err
	}

	a.StampCreated(actor.UserID)
	if err := s.repo.SaveDefault(ctx, a); err != nil {
		if errors.Is(err, crud.ErrDuplicate) {
			return nil, httperr.BusinessError{Code: "address_exists", Message: "Address already exists."}
		}
		return nil, err
	}

	s.audit.Record(actor, audit.ActionCreate, "location_user_addresses", a.ID, a)
	return a, nil
}

func (s *AddressService) UpdateAddress(ctx context.Context, actor audit.Actor, id uint, in AddressInput) (*models.LocationUserAddress, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	before := a.AddressLine1
	in.apply(a)
	if err := s.checkRefs(ctx, a); err != nil {
		return nil, err
	}
	if !strings.EqualFold(before, a.AddressLine1) {
		if err := s.CheckName(ctx, a.AddressLine1, id); err != nil {
			return nil, err
		}
	}

	a.StampModified(actor.UserID)
	if err := s.repo.SaveDefault(ctx, a); err != nil {
		if errors.Is(err, crud.ErrDuplicate) {
			return nil, httperr.BusinessError{Code: "address_exists", Message: "Address already exists."}
		}
		return nil, err
	}

	s.audit.Record(actor, audit.ActionUpdate, "location_user_addresses", a.ID, a)
	return a, nil
}
