package repository

import (
	"errors"

	"medical-calculator-backend/internal/domain/entity"
	domainRepo "medical-calculator-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sdaiRecordRepository struct{}

func NewSDAIRecordRepository() domainRepo.SDAIRecordRepository {
	return &sdaiRecordRepository{}
}

func (r *sdaiRecordRepository) Create(db *gorm.DB, record *entity.SDAIRecord) error {
	return db.Create(record).Error
}

func (r *sdaiRecordRepository) FindByID(db *gorm.DB, id int64) (*entity.SDAIRecord, error) {
	var record entity.SDAIRecord
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *sdaiRecordRepository) Save(db *gorm.DB, record *entity.SDAIRecord) error {
	return db.Save(record).Error
}

func (r *sdaiRecordRepository) Delete(db *gorm.DB, record *entity.SDAIRecord) error {
	return db.Delete(record).Error
}

func (r *sdaiRecordRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, skip, limit int) ([]entity.SDAIRecord, error) {
	var records []entity.SDAIRecord
	err := db.Preload("Patient").
		Where("patient_id = ?", patientID).
		Order("measurement_date DESC").
		Offset(skip).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *sdaiRecordRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, skip, limit int) ([]entity.SDAIRecord, error) {
	var records []entity.SDAIRecord
	err := db.Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *sdaiRecordRepository) Search(db *gorm.DB, filter *entity.RecordFilter) ([]entity.SDAIRecord, error) {
	query := db.Model(&entity.SDAIRecord{}).Preload("Patient")

	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.StartDate != nil {
		query = query.Where("measurement_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("measurement_date <= ?", *filter.EndDate)
	}
	if filter.MinSDAI != nil {
		query = query.Where("sdai_score >= ?", *filter.MinSDAI)
	}
	if filter.MaxSDAI != nil {
		query = query.Where("sdai_score <= ?", *filter.MaxSDAI)
	}

	var records []entity.SDAIRecord
	err := query.
		Order("measurement_date DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *sdaiRecordRepository) StatisticsByPatientIDs(db *gorm.DB, patientIDs []uuid.UUID) (*entity.RecordStatistics, error) {
	stats := &entity.RecordStatistics{}
	if len(patientIDs) == 0 {
		return stats, nil
	}

	row := struct {
		Count int64
		Avg   *float64
		Min   *float64
		Max   *float64
	}{}

	err := db.Model(&entity.SDAIRecord{}).
		Select("COUNT(*) AS count, AVG(sdai_score) AS avg, MIN(sdai_score) AS min, MAX(sdai_score) AS max").
		Where("patient_id IN ?", patientIDs).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	stats.RecordCount = row.Count
	// Aggregates are NULL when no rows match; keep zero values then.
	if row.Avg != nil {
		stats.AvgSDAIScore = *row.Avg
	}
	if row.Min != nil {
		stats.MinSDAIScore = *row.Min
	}
	if row.Max != nil {
		stats.MaxSDAIScore = *row.Max
	}
	return stats, nil
}

func (r *sdaiRecordRepository) LatestByPatientIDs(db *gorm.DB, patientIDs []uuid.UUID, limit int) ([]entity.SDAIRecord, error) {
	if len(patientIDs) == 0 {
		return []entity.SDAIRecord{}, nil
	}
	var records []entity.SDAIRecord
	err := db.Preload("Patient").
		Where("patient_id IN ?", patientIDs).
		Order("measurement_date DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
