package entity

import (
	"time"

	"github.com/google/uuid"
)

// SDAIRecord is one disease-activity measurement event.
// SDAIScore is always derived from the five clinical inputs and is
// recomputed whenever any of them is set or changed.
type SDAIRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`

	TenderJointCount          int     `gorm:"not null" json:"tender_joint_count"`           // 0-28
	SwollenJointCount         int     `gorm:"not null" json:"swollen_joint_count"`          // 0-28
	DoctorActivityAssessment  float64 `gorm:"not null" json:"doctor_activity_assessment"`   // 0-100
	PatientActivityAssessment float64 `gorm:"not null" json:"patient_activity_assessment"`  // 0-100
	CRP                       float64 `gorm:"not null" json:"crp"`                          // mg/dl

	SDAIScore float64 `gorm:"not null" json:"sdai_score"`

	MeasurementDate time.Time `gorm:"not null;index" json:"measurement_date"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (SDAIRecord) TableName() string {
	return "sdai_records"
}

// CalculateSDAI computes the composite score from the five clinical inputs.
func (r *SDAIRecord) CalculateSDAI() float64 {
	return float64(r.TenderJointCount) +
		float64(r.SwollenJointCount) +
		(r.DoctorActivityAssessment / 10) +
		(r.PatientActivityAssessment / 10) +
		(r.CRP * 10)
}

// Recalculate refreshes the stored score from the current inputs.
func (r *SDAIRecord) Recalculate() {
	r.SDAIScore = r.CalculateSDAI()
}
