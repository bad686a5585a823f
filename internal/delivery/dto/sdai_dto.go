package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateRecordRequest carries a new measurement. Numeric fields are
// pointers so that legitimate zero values pass the required check.
type CreateRecordRequest struct {
	PatientID                 uuid.UUID `json:"patient_id" validate:"required"`
	TenderJointCount          *int      `json:"tender_joint_count" validate:"required,gte=0,lte=28"`
	SwollenJointCount         *int      `json:"swollen_joint_count" validate:"required,gte=0,lte=28"`
	DoctorActivityAssessment  *float64  `json:"doctor_activity_assessment" validate:"required,gte=0,lte=100"`
	PatientActivityAssessment *float64  `json:"patient_activity_assessment" validate:"required,gte=0,lte=100"`
	CRP                       *float64  `json:"crp" validate:"required,gte=0"`
	MeasurementDate           string    `json:"measurement_date" validate:"required"` // Format: YYYY-MM-DD
	Notes                     string    `json:"notes" validate:"omitempty"`
}

// UpdateRecordRequest is a partial update; nil fields are left unchanged.
type UpdateRecordRequest struct {
	TenderJointCount          *int     `json:"tender_joint_count" validate:"omitempty,gte=0,lte=28"`
	SwollenJointCount         *int     `json:"swollen_joint_count" validate:"omitempty,gte=0,lte=28"`
	DoctorActivityAssessment  *float64 `json:"doctor_activity_assessment" validate:"omitempty,gte=0,lte=100"`
	PatientActivityAssessment *float64 `json:"patient_activity_assessment" validate:"omitempty,gte=0,lte=100"`
	CRP                       *float64 `json:"crp" validate:"omitempty,gte=0"`
	MeasurementDate           *string  `json:"measurement_date" validate:"omitempty"` // Format: YYYY-MM-DD
	Notes                     *string  `json:"notes" validate:"omitempty"`
}

// Response DTOs

type RecordResponse struct {
	ID                        int64     `json:"id"`
	PatientID                 uuid.UUID `json:"patient_id"`
	DoctorID                  uuid.UUID `json:"doctor_id"`
	TenderJointCount          int       `json:"tender_joint_count"`
	SwollenJointCount         int       `json:"swollen_joint_count"`
	DoctorActivityAssessment  float64   `json:"doctor_activity_assessment"`
	PatientActivityAssessment float64   `json:"patient_activity_assessment"`
	CRP                       float64   `json:"crp"`
	SDAIScore                 float64   `json:"sdai_score"`
	MeasurementDate           string    `json:"measurement_date"`
	Notes                     string    `json:"notes,omitempty"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

type RecordWithPatientResponse struct {
	RecordResponse
	Patient *UserResponse `json:"patient,omitempty"`
	Doctor  *UserResponse `json:"doctor,omitempty"`
}

type StatisticsResponse struct {
	PatientCount  int              `json:"patient_count"`
	RecordCount   int64            `json:"record_count"`
	AvgSDAIScore  float64          `json:"avg_sdai_score"`
	MinSDAIScore  float64          `json:"min_sdai_score"`
	MaxSDAIScore  float64          `json:"max_sdai_score"`
	LatestRecords []RecordResponse `json:"latest_records"`
}

// Export DTOs

type ExportRecord struct {
	ID                        int64     `json:"id"`
	MeasurementDate           string    `json:"measurement_date"`
	PatientID                 uuid.UUID `json:"patient_id"`
	PatientName               string    `json:"patient_name"`
	TenderJointCount          int       `json:"tender_joint_count"`
	SwollenJointCount         int       `json:"swollen_joint_count"`
	DoctorActivityAssessment  float64   `json:"doctor_activity_assessment"`
	PatientActivityAssessment float64   `json:"patient_activity_assessment"`
	CRP                       float64   `json:"crp"`
	SDAIScore                 float64   `json:"sdai_score"`
}

type ExportCSVResponse struct {
	Content     string `json:"content"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type ExportJSONResponse struct {
	Data       []ExportRecord `json:"data"`
	Count      int            `json:"count"`
	ExportDate string         `json:"export_date"`
}
