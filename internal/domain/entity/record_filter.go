package entity

import (
	"time"

	"github.com/google/uuid"
)

// RecordFilter is a domain-level filter for searching SDAI records.
// Used by repository layer to avoid coupling with delivery DTOs.
type RecordFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	StartDate *time.Time // measurement_date >=
	EndDate   *time.Time // measurement_date <=
	MinSDAI   *float64
	MaxSDAI   *float64
	Skip      int
	Limit     int
}
