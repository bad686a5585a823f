package repository

import (
	"medical-calculator-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorPatientRepository interface {
	Create(db *gorm.DB, link *entity.DoctorPatient) error
	FindLink(db *gorm.DB, doctorID, patientID uuid.UUID) (*entity.DoctorPatient, error)
	Delete(db *gorm.DB, link *entity.DoctorPatient) error
	// FindPatientsByDoctorID returns the doctor's active patients, name-ordered.
	FindPatientsByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.User, error)
	// FindDoctorsByPatientID returns the patient's active clinicians, name-ordered.
	FindDoctorsByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.User, error)
	// SearchPatients filters the doctor's active patients by a case-insensitive
	// substring over full name, email and username.
	SearchPatients(db *gorm.DB, doctorID uuid.UUID, term string, skip, limit int) ([]entity.User, error)
	PatientIDsByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]uuid.UUID, error)
}
