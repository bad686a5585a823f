package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AddPatientRequest struct {
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
}

// Response DTOs

type DoctorPatientResponse struct {
	ID        int64         `json:"id"`
	DoctorID  uuid.UUID     `json:"doctor_id"`
	PatientID uuid.UUID     `json:"patient_id"`
	Patient   *UserResponse `json:"patient,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type PatientWithRecordsResponse struct {
	Patient    UserResponse     `json:"patient"`
	Records    []RecordResponse `json:"records"`
	LastRecord *RecordResponse  `json:"last_record,omitempty"`
}
