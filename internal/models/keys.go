package models

func (m *UserType) PrimaryKey() uint              { return m.ID }
func (m *Page) PrimaryKey() uint                  { return m.ID }
func (m *UserPermission) PrimaryKey() uint        { return m.ID }
func (m *User) PrimaryKey() uint                  { return m.ID }
func (m *BusinessType) PrimaryKey() uint          { return m.ID }
func (m *BusinessCategory) PrimaryKey() uint      { return m.ID }
func (m *BusinessUser) PrimaryKey() uint          { return m.ID }
func (m *LocationMaster) PrimaryKey() uint        { return m.ID }
func (m *LocationActivePincode) PrimaryKey() uint { return m.ID }
func (m *LocationUserAddress) PrimaryKey() uint   { return m.ID }
func (m *NewsPost) PrimaryKey() uint              { return m.ID }

func (m *Staff) PrimaryKey() uint         { return m.ID }
func (m *Room) PrimaryKey() uint          { return m.ID }
func (m *Customer) PrimaryKey() uint      { return m.ID }
func (m *Booking) PrimaryKey() uint       { return m.ID }
func (m *Patient) PrimaryKey() uint       { return m.ID }
func (m *Appointment) PrimaryKey() uint   { return m.ID }
func (m *Vehicle) PrimaryKey() uint       { return m.ID }
func (m *GarageService) PrimaryKey() uint { return m.ID }
func (m *GarageBooking) PrimaryKey() uint { return m.ID }
func (m *MenuItem) PrimaryKey() uint      { return m.ID }
func (m *CateringOrder) PrimaryKey() uint { return m.ID }

// Tenant scoping for the vertical tables.
func (m *Staff) Tenant() uint         { return m.BusinessUserID }
func (m *Room) Tenant() uint          { return m.BusinessUserID }
func (m *Customer) Tenant() uint      { return m.BusinessUserID }
func (m *Booking) Tenant() uint       { return m.BusinessUserID }
func (m *Patient) Tenant() uint       { return m.BusinessUserID }
func (m *Appointment) Tenant() uint   { return m.BusinessUserID }
func (m *Vehicle) Tenant() uint       { return m.BusinessUserID }
func (m *GarageService) Tenant() uint { return m.BusinessUserID }
func (m *GarageBooking) Tenant() uint { return m.BusinessUserID }
func (m *MenuItem) Tenant() uint      { return m.BusinessUserID }
func (m *CateringOrder) Tenant() uint { return m.BusinessUserID }

func (m *Staff) SetTenant(id uint)         { m.BusinessUserID = id }
func (m *Room) SetTenant(id uint)          { m.BusinessUserID = id }
func (m *Customer) SetTenant(id uint)      { m.BusinessUserID = id }
func (m *Patient) SetTenant(id uint)       { m.BusinessUserID = id }
func (m *Vehicle) SetTenant(id uint)       { m.BusinessUserID = id }
func (m *GarageService) SetTenant(id uint) { m.BusinessUserID = id }
func (m *MenuItem) SetTenant(id uint)      { m.BusinessUserID = id }
func (m *Booking) SetTenant(id uint)       { m.BusinessUserID = id }
func (m *Appointment) SetTenant(id uint)   { m.BusinessUserID = id }
func (m *GarageBooking) SetTenant(id uint) { m.BusinessUserID = id }
func (m *CateringOrder) SetTenant(id uint) { m.BusinessUserID = id }
