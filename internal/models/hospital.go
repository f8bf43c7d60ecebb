package models

import "time"

const (
	AppointmentScheduled = "Scheduled"
	AppointmentConfirmed = "Confirmed"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
	AppointmentNoShow    = "No-show"
)

type Patient struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	BusinessUserID uint `gorm:"not null;index" json:"business_user_id"`

	PatientNumber        string     `gorm:"size:50;uniqueIndex;not null" json:"patient_number"`
	FullName             string     `gorm:"size:255;not null" json:"full_name" binding:"required"`
	DateOfBirth          *time.Time `json:"date_of_birth"`
	Gender               string     `gorm:"size:10" json:"gender" binding:"omitempty,oneof=Male Female Other"`
	BloodGroup           string     `gorm:"size:10" json:"blood_group"`
	Phone                string     `gorm:"size:20" json:"phone"`
	Email                string     `gorm:"size:255" json:"email" binding:"omitempty,email"`
	Address              string     `gorm:"type:text" json:"address"`
	EmergencyContact     string     `gorm:"size:20" json:"emergency_contact"`
	EmergencyContactName string     `gorm:"size:255" json:"emergency_contact_name"`
	MedicalHistory       string     `gorm:"type:text" json:"medical_history"`
	Allergies            string     `gorm:"type:text" json:"allergies"`
	InsuranceProvider    string     `gorm:"size:100" json:"insurance_provider"`
	InsuranceNumber      string     `gorm:"size:100" json:"insurance_number"`
	InsuranceValidity    *time.Time `json:"insurance_validity"`
	PatientType          string     `gorm:"size:20;default:'Outpatient'" json:"patient_type" binding:"omitempty,oneof=Outpatient Inpatient Emergency"`
	IsActive             YesNo      `gorm:"type:char(1);not null;default:'Y'" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Appointment struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	BusinessUserID uint `gorm:"not null;index" json:"business_user_id"`

	PatientID uint    `gorm:"not null;index" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	DoctorID  uint    `gorm:"not null;index" json:"doctor_id"`
	Doctor    Staff   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	AppointmentNumber string    `gorm:"size:50;uniqueIndex;not null" json:"appointment_number"`
	AppointmentTime   time.Time `gorm:"not null;index" json:"appointment_time"`
	DurationMinutes   int       `gorm:"not null;default:30" json:"duration_minutes"`
	AppointmentType   string    `gorm:"size:20" json:"appointment_type"`
	Status            string    `gorm:"size:20;not null;default:'Scheduled';index" json:"appointment_status"`

	Symptoms        string  `gorm:"type:text" json:"symptoms"`
	Diagnosis       string  `gorm:"type:text" json:"diagnosis"`
	Prescription    string  `gorm:"type:text" json:"prescription"`
	Notes           string  `gorm:"type:text" json:"notes"`
	ConsultationFee float64 `gorm:"type:numeric(10,2)" json:"consultation_fee"`
	PaymentStatus   string  `gorm:"size:20;default:'Pending'" json:"payment_status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// End is the instant the doctor's slot frees up.
func (a *Appointment) End() time.Time {
	d := a.DurationMinutes
	if d <= 0 {
		d = 30
	}
	return a.AppointmentTime.Add(time.Duration(d) * time.Minute)
}
