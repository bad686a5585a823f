package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"medical-calculator-backend/internal/converter"
	"medical-calculator-backend/internal/delivery/dto"
	"medical-calculator-backend/internal/domain/entity"
	"medical-calculator-backend/internal/domain/repository"
	"medical-calculator-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound     = errors.New("patient not found or inactive")
	ErrPatientIsMedical    = errors.New("a clinician cannot be a patient")
	ErrRecordNotFound      = errors.New("record not found")
	ErrRecordAccessDenied  = errors.New("no access to this record")
	ErrStatsAccessDenied   = errors.New("no access to this patient's statistics")
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidExportFormat = errors.New("invalid export format, use csv or json")
)

const (
	measurementDateLayout = "2006-01-02"
	latestRecordsLimit    = 10
	exportRowLimit        = 10000
)

type SDAIUsecase interface {
	CreateRecord(ctx context.Context, doctor *entity.User, req *dto.CreateRecordRequest) (*dto.RecordResponse, error)
	GetRecord(ctx context.Context, caller *entity.User, recordID int64) (*dto.RecordWithPatientResponse, error)
	ListRecords(ctx context.Context, caller *entity.User, skip, limit int) ([]dto.RecordWithPatientResponse, error)
	UpdateRecord(ctx context.Context, caller *entity.User, recordID int64, req *dto.UpdateRecordRequest) (*dto.RecordResponse, error)
	DeleteRecord(ctx context.Context, caller *entity.User, recordID int64) error
	GetPatientsWithRecords(ctx context.Context, doctor *entity.User) ([]dto.PatientWithRecordsResponse, error)
	GetStatistics(ctx context.Context, caller *entity.User, patientID *uuid.UUID) (*dto.StatisticsResponse, error)
	SearchRecords(ctx context.Context, doctor *entity.User, filter *entity.RecordFilter) ([]dto.RecordWithPatientResponse, error)
	Export(ctx context.Context, doctor *entity.User, format string, startDate, endDate *time.Time) (interface{}, error)
}

type sdaiUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	recordRepo   repository.SDAIRecordRepository
	linkRepo     repository.DoctorPatientRepository
	auditService service.AuditService
}

func NewSDAIUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	recordRepo repository.SDAIRecordRepository,
	linkRepo repository.DoctorPatientRepository,
	auditService service.AuditService,
) SDAIUsecase {
	return &sdaiUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		recordRepo:   recordRepo,
		linkRepo:     linkRepo,
		auditService: auditService,
	}
}

func (u *sdaiUsecase) CreateRecord(ctx context.Context, doctor *entity.User, req *dto.CreateRecordRequest) (*dto.RecordResponse, error) {
	measurementDate, err := time.Parse(measurementDateLayout, req.MeasurementDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.userRepo.FindByID(tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil || !patient.Active() {
		return nil, ErrPatientNotFound
	}
	if patient.IsClinician() {
		return nil, ErrPatientIsMedical
	}

	// No doctor-patient link is required here; the link only drives
	// listing and statistics visibility.
	record := &entity.SDAIRecord{
		PatientID:                 req.PatientID,
		DoctorID:                  doctor.ID,
		TenderJointCount:          *req.TenderJointCount,
		SwollenJointCount:         *req.SwollenJointCount,
		DoctorActivityAssessment:  *req.DoctorActivityAssessment,
		PatientActivityAssessment: *req.PatientActivityAssessment,
		CRP:                       *req.CRP,
		MeasurementDate:           measurementDate,
		Notes:                     req.Notes,
	}
	record.Recalculate()

	if err := u.recordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create record: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &doctor.ID, entity.AuditActionRecordCreate, "sdai_record", strconv.FormatInt(record.ID, 10), map[string]interface{}{
		"patient_id": record.PatientID.String(),
		"sdai_score": record.SDAIScore,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.RecordToResponse(record), nil
}

func (u *sdaiUsecase) GetRecord(ctx context.Context, caller *entity.User, recordID int64) (*dto.RecordWithPatientResponse, error) {
	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), recordID)
	if err != nil {
		u.log.Warnf("Failed to find record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	if !canReadRecord(caller, record) {
		return nil, ErrRecordAccessDenied
	}

	return converter.RecordToResponseWithPatient(record), nil
}

func (u *sdaiUsecase) ListRecords(ctx context.Context, caller *entity.User, skip, limit int) ([]dto.RecordWithPatientResponse, error) {
	db := u.db.WithContext(ctx)

	var records []entity.SDAIRecord
	var err error
	if caller.IsClinician() {
		records, err = u.recordRepo.FindByDoctorID(db, caller.ID, skip, limit)
	} else {
		records, err = u.recordRepo.FindByPatientID(db, caller.ID, skip, limit)
	}
	if err != nil {
		u.log.Warnf("Failed to list records: %+v", err)
		return nil, err
	}

	return converter.RecordsToResponsesWithPatient(records), nil
}

func (u *sdaiUsecase) UpdateRecord(ctx context.Context, caller *entity.User, recordID int64, req *dto.UpdateRecordRequest) (*dto.RecordResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.recordRepo.FindByID(tx, recordID)
	if err != nil {
		u.log.Warnf("Failed to find record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	if !canModifyRecord(caller, record) {
		return nil, ErrRecordAccessDenied
	}

	oldScore := record.SDAIScore
	if err := applyRecordUpdate(record, req); err != nil {
		return nil, err
	}

	if err := u.recordRepo.Save(tx, record); err != nil {
		u.log.Warnf("Failed to save record: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &caller.ID, entity.AuditActionRecordUpdate, "sdai_record", strconv.FormatInt(record.ID, 10), map[string]interface{}{
		"sdai_score": oldScore,
	}, map[string]interface{}{
		"sdai_score": record.SDAIScore,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.RecordToResponse(record), nil
}

func (u *sdaiUsecase) DeleteRecord(ctx context.Context, caller *entity.User, recordID int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.recordRepo.FindByID(tx, recordID)
	if err != nil {
		u.log.Warnf("Failed to find record: %+v", err)
		return err
	}
	if record == nil {
		return ErrRecordNotFound
	}
	if !canModifyRecord(caller, record) {
		return ErrRecordAccessDenied
	}

	if err := u.recordRepo.Delete(tx, record); err != nil {
		u.log.Warnf("Failed to delete record: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &caller.ID, entity.AuditActionRecordDelete, "sdai_record", strconv.FormatInt(record.ID, 10), map[string]interface{}{
		"patient_id": record.PatientID.String(),
		"sdai_score": record.SDAIScore,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *sdaiUsecase) GetPatientsWithRecords(ctx context.Context, doctor *entity.User) ([]dto.PatientWithRecordsResponse, error) {
	db := u.db.WithContext(ctx)

	patients, err := u.linkRepo.FindPatientsByDoctorID(db, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	result := make([]dto.PatientWithRecordsResponse, 0, len(patients))
	for i := range patients {
		records, err := u.recordRepo.FindByPatientID(db, patients[i].ID, 0, latestRecordsLimit)
		if err != nil {
			u.log.Warnf("Failed to list patient records: %+v", err)
			return nil, err
		}

		item := dto.PatientWithRecordsResponse{
			Patient: *converter.UserToResponse(&patients[i]),
			Records: converter.RecordsToResponses(records),
		}
		if len(records) > 0 {
			item.LastRecord = converter.RecordToResponse(&records[0])
		}
		result = append(result, item)
	}

	return result, nil
}

func (u *sdaiUsecase) GetStatistics(ctx context.Context, caller *entity.User, patientID *uuid.UUID) (*dto.StatisticsResponse, error) {
	db := u.db.WithContext(ctx)

	var targetIDs []uuid.UUID
	patientCount := 0

	switch {
	case patientID != nil:
		if caller.IsClinician() {
			if !caller.IsSuperuser {
				linked, err := u.linkRepo.PatientIDsByDoctorID(db, caller.ID)
				if err != nil {
					return nil, err
				}
				if !containsID(linked, *patientID) {
					return nil, ErrStatsAccessDenied
				}
			}
		} else if *patientID != caller.ID {
			return nil, ErrStatsAccessDenied
		}
		targetIDs = []uuid.UUID{*patientID}
		patientCount = 1

	case caller.IsClinician():
		linked, err := u.linkRepo.PatientIDsByDoctorID(db, caller.ID)
		if err != nil {
			return nil, err
		}
		targetIDs = linked
		patientCount = len(linked)

	default:
		targetIDs = []uuid.UUID{caller.ID}
		patientCount = 1
	}

	stats, err := u.recordRepo.StatisticsByPatientIDs(db, targetIDs)
	if err != nil {
		u.log.Warnf("Failed to compute statistics: %+v", err)
		return nil, err
	}

	latest, err := u.recordRepo.LatestByPatientIDs(db, targetIDs, latestRecordsLimit)
	if err != nil {
		u.log.Warnf("Failed to load latest records: %+v", err)
		return nil, err
	}

	return &dto.StatisticsResponse{
		PatientCount:  patientCount,
		RecordCount:   stats.RecordCount,
		AvgSDAIScore:  stats.AvgSDAIScore,
		MinSDAIScore:  stats.MinSDAIScore,
		MaxSDAIScore:  stats.MaxSDAIScore,
		LatestRecords: converter.RecordsToResponses(latest),
	}, nil
}

func (u *sdaiUsecase) SearchRecords(ctx context.Context, doctor *entity.User, filter *entity.RecordFilter) ([]dto.RecordWithPatientResponse, error) {
	// Search is always scoped to the caller's own records.
	filter.DoctorID = &doctor.ID

	records, err := u.recordRepo.Search(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to search records: %+v", err)
		return nil, err
	}

	return converter.RecordsToResponsesWithPatient(records), nil
}

func (u *sdaiUsecase) Export(ctx context.Context, doctor *entity.User, format string, startDate, endDate *time.Time) (interface{}, error) {
	if format != "csv" && format != "json" {
		return nil, ErrInvalidExportFormat
	}

	filter := &entity.RecordFilter{
		DoctorID:  &doctor.ID,
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     exportRowLimit,
	}

	records, err := u.recordRepo.Search(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to load records for export: %+v", err)
		return nil, err
	}

	today := time.Now().Format(measurementDateLayout)

	if format == "csv" {
		return &dto.ExportCSVResponse{
			Content:     buildExportCSV(records),
			Filename:    fmt.Sprintf("sdai_export_%s.csv", today),
			ContentType: "text/csv",
		}, nil
	}

	data := make([]dto.ExportRecord, 0, len(records))
	for i := range records {
		data = append(data, converter.RecordToExportRecord(&records[i]))
	}
	return &dto.ExportJSONResponse{
		Data:       data,
		Count:      len(data),
		ExportDate: today,
	}, nil
}

// applyRecordUpdate merges non-nil fields into the record and recomputes
// the score unconditionally, even when no clinical input changed.
func applyRecordUpdate(record *entity.SDAIRecord, req *dto.UpdateRecordRequest) error {
	if req.TenderJointCount != nil {
		record.TenderJointCount = *req.TenderJointCount
	}
	if req.SwollenJointCount != nil {
		record.SwollenJointCount = *req.SwollenJointCount
	}
	if req.DoctorActivityAssessment != nil {
		record.DoctorActivityAssessment = *req.DoctorActivityAssessment
	}
	if req.PatientActivityAssessment != nil {
		record.PatientActivityAssessment = *req.PatientActivityAssessment
	}
	if req.CRP != nil {
		record.CRP = *req.CRP
	}
	if req.MeasurementDate != nil {
		measurementDate, err := time.Parse(measurementDateLayout, *req.MeasurementDate)
		if err != nil {
			return ErrInvalidDateFormat
		}
		record.MeasurementDate = measurementDate
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	record.Recalculate()
	return nil
}

// canReadRecord: superusers read everything, clinicians their authored
// records, patients their own.
func canReadRecord(caller *entity.User, record *entity.SDAIRecord) bool {
	if caller.IsSuperuser {
		return true
	}
	if caller.IsClinician() {
		return record.DoctorID == caller.ID
	}
	return record.PatientID == caller.ID
}

// canModifyRecord: only the authoring clinician or a superuser.
func canModifyRecord(caller *entity.User, record *entity.SDAIRecord) bool {
	if caller.IsSuperuser {
		return true
	}
	return record.DoctorID == caller.ID
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func buildExportCSV(records []entity.SDAIRecord) string {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write([]string{
		"ID", "Measurement Date", "Patient ID", "Patient",
		"Tender Joints", "Swollen Joints",
		"Doctor Assessment", "Patient Assessment", "CRP", "SDAI",
	})

	for i := range records {
		record := &records[i]
		patientName := ""
		if record.Patient != nil {
			patientName = record.Patient.FullName
			if patientName == "" {
				patientName = record.Patient.Username
			}
		}
		writer.Write([]string{
			strconv.FormatInt(record.ID, 10),
			record.MeasurementDate.Format(measurementDateLayout),
			record.PatientID.String(),
			patientName,
			strconv.Itoa(record.TenderJointCount),
			strconv.Itoa(record.SwollenJointCount),
			strconv.FormatFloat(record.DoctorActivityAssessment, 'f', -1, 64),
			strconv.FormatFloat(record.PatientActivityAssessment, 'f', -1, 64),
			strconv.FormatFloat(record.CRP, 'f', -1, 64),
			strconv.FormatFloat(record.SDAIScore, 'f', -1, 64),
		})
	}

	writer.Flush()
	return buf.String()
}
