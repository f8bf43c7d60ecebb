package location

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/appointmenttech-api/internal/audit"
	"github.com/BruksfildServices01/appointmenttech-api/internal/cache"
	"github.com/BruksfildServices01/appointmenttech-api/internal/domain/crud"
	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
	"github.com/BruksfildServices01/appointmenttech-api/internal/usecase/catalog"
)

// ======================================================
// Location master
// ======================================================

type MasterService struct {
	*catalog.Service[models.LocationMaster, *models.LocationMaster]
}

func NewMasterService(repo crud.Repository[models.LocationMaster], dispatcher *audit.Dispatcher, c cache.Cache, opt catalog.Options[models.LocationMaster]) *MasterService {
	opt.Table = "location_master"
	opt.Label = "Location"
	opt.NameColumn = "name"
	opt.Name = func(l *models.LocationMaster) string { return l.Name }
	opt.DuplicateCode = "location_name_exists"
	opt.NotFoundCode = "location_not_found"

	return &MasterService{catalog.NewService[models.LocationMaster, *models.LocationMaster](repo, opt, dispatcher, c)}
}

type MasterInput struct {
	Name        *string       `json:"name" binding:"omitempty,min=1,max=100"`
	City        *string       `json:"city" binding:"omitempty,max=100"`
	District    *string       `json:"district" binding:"omitempty,max=100"`
	State       *string       `json:"state" binding:"omitempty,max=100"`
	Country     *string       `json:"country" binding:"omitempty,max=100"`
	Description *string       `json:"description" binding:"omitempty,max=255"`
	IsActive    *models.YesNo `json:"is_active" binding:"omitempty,oneof=Y N"`
}

func (in MasterInput) apply(l *models.LocationMaster) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&l.Name, in.Name)
	set(&l.City, in.City)
	set(&l.District, in.District)
	set(&l.State, in.State)
	set(&l.Country, in.Country)
	set(&l.Description, in.Description)
	if in.IsActive != nil {
		l.IsActive = *in.IsActive
	}
}

func (s *MasterService) CreateLocation(ctx context.Context, actor audit.Actor, in MasterInput) (*models.LocationMaster, error) {
	if in.Name == nil || in.City == nil || in.District == nil || in.State == nil || in.Country == nil {
		return nil, httperr.BusinessError{Code: "invalid_request", Message: "name, city, district, state and country are required."}
	}
	l := &models.LocationMaster{IsActive: models.Yes}
	in.apply(l)
	if err := s.Create(ctx, actor, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *MasterService) UpdateLocation(ctx context.Context, actor audit.Actor, id uint, in MasterInput) (*models.LocationMaster, error) {
	return s.Update(ctx, actor, id, func(l *models.LocationMaster) error {
		in.apply(l)
		return nil
	})
}

func (s *MasterService) ToggleLocation(ctx context.Context, actor audit.Actor, id uint) (models.YesNo, error) {
	return s.Toggle(ctx, actor, id, func(l *models.LocationMaster) models.YesNo { return l.IsActive })
}

// ======================================================
// Active pincodes
// ======================================================

type PincodeService struct {
	*catalog.Service[models.LocationActivePincode, *models.LocationActivePincode]

	locations crud.Repository[models.LocationMaster]
}

func NewPincodeService(
	repo crud.Repository[models.LocationActivePincode],
	locations crud.Repository[models.LocationMaster],
	dispatcher *audit.Dispatcher,
) *PincodeService {
	return &PincodeService{
		Service: catalog.NewService[models.LocationActivePincode, *models.LocationActivePincode](repo, catalog.Options[models.LocationActivePincode]{
			Table:         "location_active_pincodes",
			Label:         "Pincode",
			NameColumn:    "pincode",
			Name:          func(p *models.LocationActivePincode) string { return p.Pincode },
			DuplicateCode: "pincode_exists",
			NotFoundCode:  "pincode_not_found",
		}, dispatcher, nil),
		locations: locations,
	}
}

type PincodeInput struct {
	Pincode        *string       `json:"pincode" binding:"omitempty,min=1,max=10"`
	LocationID     *uint         `json:"location_id"`
	LocationStatus *string       `json:"location_status" binding:"omitempty,max=10"`
	IsActive       *models.YesNo `json:"is_active" binding:"omitempty,oneof=Y N"`
}

func (in PincodeInput) apply(p *models.LocationActivePincode) {
	if in.Pincode != nil {
		p.Pincode = strings.TrimSpace(*in.Pincode)
	}
	if in.LocationID != nil {
		p.LocationID = *in.LocationID
	}
	if in.LocationStatus != nil {
		p.LocationStatus = *in.LocationStatus
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

func checkLocation(ctx context.Context, repo crud.Repository[models.LocationMaster], id uint) error {
	if _, err := repo.Get(ctx, id); err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return httperr.NotFoundErr("location_not_found", "Location not found.")
		}
		return err
	}
	return nil
}

func (s *PincodeService) CreatePincode(ctx context.Context, actor audit.Actor, in PincodeInput) (*models.LocationActivePincode, error) {
	if in.Pincode == nil || in.LocationID == nil {
		return nil, httperr.BusinessError{Code: "invalid_request", Message: "pincode and location_id are required."}
	}
	if err := checkLocation(ctx, s.locations, *in.LocationID); err != nil {
		return nil, err
	}

	p := &models.LocationActivePincode{LocationStatus: "Active", IsActive: models.Yes}
	in.apply(p)
	if err := s.Create(ctx, actor, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PincodeService) UpdatePincode(ctx context.Context, actor audit.Actor, id uint, in PincodeInput) (*models.LocationActivePincode, error) {
	if in.LocationID != nil {
		if err := checkLocation(ctx, s.locations, *in.LocationID); err != nil {
			return nil, err
		}
	}
	return s.Update(ctx, actor, id, func(p *models.LocationActivePincode) error {
		in.apply(p)
		return nil
	})
}

func (s *PincodeService) TogglePincode(ctx context.Context, actor audit.Actor, id uint) (models.YesNo, error) {
	return s.Toggle(ctx, actor, id, func(p *models.LocationActivePincode) models.YesNo { return p.IsActive })
}
