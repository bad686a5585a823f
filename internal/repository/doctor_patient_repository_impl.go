package repository

import (
	"errors"

	"medical-calculator-backend/internal/domain/entity"
	domainRepo "medical-calculator-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorPatientRepository struct{}

func NewDoctorPatientRepository() domainRepo.DoctorPatientRepository {
	return &doctorPatientRepository{}
}

func (r *doctorPatientRepository) Create(db *gorm.DB, link *entity.DoctorPatient) error {
	return db.Create(link).Error
}

func (r *doctorPatientRepository) FindLink(db *gorm.DB, doctorID, patientID uuid.UUID) (*entity.DoctorPatient, error) {
	var link entity.DoctorPatient
	err := db.Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *doctorPatientRepository) Delete(db *gorm.DB, link *entity.DoctorPatient) error {
	return db.Delete(link).Error
}

func (r *doctorPatientRepository) FindPatientsByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.User, error) {
	var patients []entity.User
	err := db.Model(&entity.User{}).
		Joins("JOIN doctor_patients ON doctor_patients.patient_id = users.id").
		Where("doctor_patients.doctor_id = ? AND users.is_active = ?", doctorID, true).
		Order("users.full_name").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *doctorPatientRepository) FindDoctorsByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.User, error) {
	var doctors []entity.User
	err := db.Model(&entity.User{}).
		Joins("JOIN doctor_patients ON doctor_patients.doctor_id = users.id").
		Where("doctor_patients.patient_id = ? AND users.is_active = ? AND users.is_medical = ?", patientID, true, true).
		Order("users.full_name").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorPatientRepository) SearchPatients(db *gorm.DB, doctorID uuid.UUID, term string, skip, limit int) ([]entity.User, error) {
	query := db.Model(&entity.User{}).
		Joins("JOIN doctor_patients ON doctor_patients.patient_id = users.id").
		Where("doctor_patients.doctor_id = ? AND users.is_active = ?", doctorID, true)

	if term != "" {
		pattern := "%" + term + "%"
		query = query.Where(
			"users.full_name ILIKE ? OR users.email ILIKE ? OR users.username ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var patients []entity.User
	err := query.
		Order("users.full_name").
		Offset(skip).
		Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *doctorPatientRepository) PatientIDsByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&entity.DoctorPatient{}).
		Joins("JOIN users ON users.id = doctor_patients.patient_id").
		Where("doctor_patients.doctor_id = ? AND users.is_active = ?", doctorID, true).
		Pluck("doctor_patients.patient_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
