package repository

import (
	"medical-calculator-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SDAIRecordRepository interface {
	Create(db *gorm.DB, record *entity.SDAIRecord) error
	FindByID(db *gorm.DB, id int64) (*entity.SDAIRecord, error)
	Save(db *gorm.DB, record *entity.SDAIRecord) error
	Delete(db *gorm.DB, record *entity.SDAIRecord) error
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, skip, limit int) ([]entity.SDAIRecord, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, skip, limit int) ([]entity.SDAIRecord, error)
	Search(db *gorm.DB, filter *entity.RecordFilter) ([]entity.SDAIRecord, error)
	// StatisticsByPatientIDs aggregates count/avg/min/max over the given patients.
	StatisticsByPatientIDs(db *gorm.DB, patientIDs []uuid.UUID) (*entity.RecordStatistics, error)
	// LatestByPatientIDs returns the most recent records across the given
	// patients, descending measurement date.
	LatestByPatientIDs(db *gorm.DB, patientIDs []uuid.UUID, limit int) ([]entity.SDAIRecord, error)
}
