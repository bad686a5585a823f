package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorPatient links one clinician to one patient.
// The (doctor_id, patient_id) pair is unique.
type DoctorPatient struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:unique_doctor_patient" json:"doctor_id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:unique_doctor_patient" json:"patient_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (DoctorPatient) TableName() string {
	return "doctor_patients"
}
