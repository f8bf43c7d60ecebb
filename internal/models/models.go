package models

// All lists every table in migration order.
func All() []any {
	return []any{
		&UserType{},
		&Page{},
		&UserPermission{},
		&User{},
		&BusinessType{},
		&BusinessCategory{},
		&BusinessUser{},
		&LocationMaster{},
		&LocationActivePincode{},
		&LocationUserAddress{},
		&NewsPost{},
		&NewsComment{},
		&NewsLike{},
		&NewsShare{},
		&Notification{},
		&SecurityEvent{},
		&SecuritySession{},
		&SecurityBlock{},
		&AuditLog{},
		&Staff{},
		&Room{},
		&Customer{},
		&Booking{},
		&Patient{},
		&Appointment{},
		&Vehicle{},
		&GarageService{},
		&GarageBooking{},
		&MenuItem{},
		&CateringOrder{},
		&OrderItem{},
		&PaymentTransaction{},
	}
}
