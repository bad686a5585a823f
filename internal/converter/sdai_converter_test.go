package converter

import (
	"testing"
	"time"

	"medical-calculator-backend/internal/domain/entity"

	"github.com/google/uuid"
)

func TestRecordToResponse(t *testing.T) {
	if RecordToResponse(nil) != nil {
		t.Error("nil record should convert to nil")
	}

	record := &entity.SDAIRecord{
		ID:                        42,
		PatientID:                 uuid.New(),
		DoctorID:                  uuid.New(),
		TenderJointCount:          5,
		SwollenJointCount:         3,
		DoctorActivityAssessment:  40,
		PatientActivityAssessment: 60,
		CRP:                       1.2,
		SDAIScore:                 30,
		MeasurementDate:           time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Notes:                     "baseline",
	}

	resp := RecordToResponse(record)
	if resp.ID != 42 || resp.SDAIScore != 30 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.MeasurementDate != "2026-01-10" {
		t.Errorf("MeasurementDate = %q, want 2026-01-10", resp.MeasurementDate)
	}
}

func TestRecordToResponseWithPatient(t *testing.T) {
	record := &entity.SDAIRecord{
		ID:      1,
		Patient: &entity.User{Username: "jdoe"},
	}

	resp := RecordToResponseWithPatient(record)
	if resp.Patient == nil || resp.Patient.Username != "jdoe" {
		t.Errorf("patient not carried over: %+v", resp.Patient)
	}
	if resp.Doctor != nil {
		t.Error("absent doctor should stay nil")
	}
}

func TestRecordToExportRecordNameFallback(t *testing.T) {
	record := &entity.SDAIRecord{
		Patient: &entity.User{Username: "jdoe"},
	}
	if got := RecordToExportRecord(record).PatientName; got != "jdoe" {
		t.Errorf("PatientName = %q, want username fallback", got)
	}

	record.Patient.FullName = "Jane Doe"
	if got := RecordToExportRecord(record).PatientName; got != "Jane Doe" {
		t.Errorf("PatientName = %q, want full name", got)
	}

	record.Patient = nil
	if got := RecordToExportRecord(record).PatientName; got != "" {
		t.Errorf("PatientName = %q, want empty without a patient", got)
	}
}

func TestUserToResponseHidesInactiveNil(t *testing.T) {
	if UserToResponse(nil) != nil {
		t.Error("nil user should convert to nil")
	}

	active := true
	user := &entity.User{Username: "jdoe", IsActive: &active}
	if !UserToResponse(user).IsActive {
		t.Error("active user should map to is_active=true")
	}

	user.IsActive = nil
	if UserToResponse(user).IsActive {
		t.Error("unset is_active should map to false")
	}
}
