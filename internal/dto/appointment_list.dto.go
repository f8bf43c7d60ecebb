package dto

import "time"

type AppointmentListDTO struct {
	ID                uint      `json:"id"`
	AppointmentNumber string    `json:"appointment_number"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	Status            string    `json:"status"`
	PatientID         uint      `json:"patient_id"`
	PatientName       string    `json:"patient_name"`
	DoctorID          uint      `json:"doctor_id"`
	DoctorName        string    `json:"doctor_name"`
}
