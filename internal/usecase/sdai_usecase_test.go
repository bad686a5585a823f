package usecase

import (
	"math"
	"strings"
	"testing"
	"time"

	"medical-calculator-backend/internal/delivery/dto"
	"medical-calculator-backend/internal/domain/entity"

	"github.com/google/uuid"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }

func TestApplyRecordUpdateMergesAndRecomputes(t *testing.T) {
	record := &entity.SDAIRecord{
		TenderJointCount:          5,
		SwollenJointCount:         3,
		DoctorActivityAssessment:  40,
		PatientActivityAssessment: 60,
		CRP:                       1.2,
		SDAIScore:                 30.0,
		Notes:                     "baseline",
	}

	err := applyRecordUpdate(record, &dto.UpdateRecordRequest{
		CRP: floatPtr(2.0),
	})
	if err != nil {
		t.Fatalf("applyRecordUpdate() error = %v", err)
	}

	if record.CRP != 2.0 {
		t.Errorf("CRP = %v, want 2.0", record.CRP)
	}
	if math.Abs(record.SDAIScore-38.0) > 1e-9 {
		t.Errorf("SDAIScore = %v, want 38.0", record.SDAIScore)
	}
	if record.TenderJointCount != 5 || record.Notes != "baseline" {
		t.Error("untouched fields must be preserved")
	}
}

func TestApplyRecordUpdateNotesOnlyStillRecomputes(t *testing.T) {
	record := &entity.SDAIRecord{
		TenderJointCount:          5,
		SwollenJointCount:         3,
		DoctorActivityAssessment:  40,
		PatientActivityAssessment: 60,
		CRP:                       1.2,
		SDAIScore:                 999, // stale stored score
	}

	err := applyRecordUpdate(record, &dto.UpdateRecordRequest{
		Notes: stringPtr("follow-up visit"),
	})
	if err != nil {
		t.Fatalf("applyRecordUpdate() error = %v", err)
	}

	if math.Abs(record.SDAIScore-30.0) > 1e-9 {
		t.Errorf("SDAIScore = %v, want 30.0 after recompute", record.SDAIScore)
	}
	if record.Notes != "follow-up visit" {
		t.Errorf("Notes = %q, want %q", record.Notes, "follow-up visit")
	}
}

func TestApplyRecordUpdateZeroValues(t *testing.T) {
	record := &entity.SDAIRecord{
		TenderJointCount:  5,
		SwollenJointCount: 3,
		CRP:               1.2,
	}

	err := applyRecordUpdate(record, &dto.UpdateRecordRequest{
		TenderJointCount: intPtr(0),
		CRP:              floatPtr(0),
	})
	if err != nil {
		t.Fatalf("applyRecordUpdate() error = %v", err)
	}

	if record.TenderJointCount != 0 || record.CRP != 0 {
		t.Error("explicit zero values must overwrite")
	}
	if record.SwollenJointCount != 3 {
		t.Error("absent fields must be preserved")
	}
}

func TestApplyRecordUpdateMeasurementDate(t *testing.T) {
	record := &entity.SDAIRecord{}

	err := applyRecordUpdate(record, &dto.UpdateRecordRequest{
		MeasurementDate: stringPtr("2026-03-15"),
	})
	if err != nil {
		t.Fatalf("applyRecordUpdate() error = %v", err)
	}

	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !record.MeasurementDate.Equal(want) {
		t.Errorf("MeasurementDate = %v, want %v", record.MeasurementDate, want)
	}

	err = applyRecordUpdate(record, &dto.UpdateRecordRequest{
		MeasurementDate: stringPtr("15/03/2026"),
	})
	if err != ErrInvalidDateFormat {
		t.Errorf("error = %v, want ErrInvalidDateFormat", err)
	}
}

func TestRecordAccessControl(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	otherID := uuid.New()

	record := &entity.SDAIRecord{DoctorID: doctorID, PatientID: patientID}

	authoringDoctor := &entity.User{ID: doctorID, IsMedical: true}
	otherDoctor := &entity.User{ID: otherID, IsMedical: true}
	ownPatient := &entity.User{ID: patientID}
	otherPatient := &entity.User{ID: otherID}
	superuser := &entity.User{ID: otherID, IsSuperuser: true}

	tests := []struct {
		name       string
		caller     *entity.User
		wantRead   bool
		wantModify bool
	}{
		{"authoring doctor", authoringDoctor, true, true},
		{"other doctor", otherDoctor, false, false},
		{"own patient", ownPatient, true, false},
		{"other patient", otherPatient, false, false},
		{"superuser", superuser, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canReadRecord(tt.caller, record); got != tt.wantRead {
				t.Errorf("canReadRecord() = %v, want %v", got, tt.wantRead)
			}
			if got := canModifyRecord(tt.caller, record); got != tt.wantModify {
				t.Errorf("canModifyRecord() = %v, want %v", got, tt.wantModify)
			}
		})
	}
}

func TestContainsID(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	if !containsID([]uuid.UUID{a, b}, b) {
		t.Error("expected id to be found")
	}
	if containsID([]uuid.UUID{a, b}, c) {
		t.Error("absent id should not be found")
	}
	if containsID(nil, a) {
		t.Error("nil slice contains nothing")
	}
}

func TestBuildExportCSV(t *testing.T) {
	patientID := uuid.New()
	records := []entity.SDAIRecord{
		{
			ID:                        7,
			PatientID:                 patientID,
			TenderJointCount:          5,
			SwollenJointCount:         3,
			DoctorActivityAssessment:  40,
			PatientActivityAssessment: 60,
			CRP:                       1.2,
			SDAIScore:                 30,
			MeasurementDate:           time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			Patient:                   &entity.User{FullName: "Jane Doe", Username: "jdoe"},
		},
		{
			ID:              8,
			PatientID:       patientID,
			MeasurementDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			Patient:         &entity.User{Username: "jdoe"}, // no full name
		},
	}

	content := buildExportCSV(records)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}

	if lines[0] != "ID,Measurement Date,Patient ID,Patient,Tender Joints,Swollen Joints,Doctor Assessment,Patient Assessment,CRP,SDAI" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "7,2026-01-10,"+patientID.String()+",Jane Doe,5,3,40,60,1.2,30") {
		t.Errorf("unexpected first row: %q", lines[1])
	}
	// Username stands in when the full name is missing
	if !strings.Contains(lines[2], ",jdoe,") {
		t.Errorf("expected username fallback in row: %q", lines[2])
	}
}

func TestBuildExportCSVEmpty(t *testing.T) {
	content := buildExportCSV(nil)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
}
