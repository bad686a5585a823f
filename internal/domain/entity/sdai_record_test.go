package entity

import (
	"math"
	"testing"
)

func TestCalculateSDAI(t *testing.T) {
	tests := []struct {
		name     string
		record   SDAIRecord
		expected float64
	}{
		{
			name:     "all zero inputs",
			record:   SDAIRecord{},
			expected: 0,
		},
		{
			name: "moderate disease activity",
			record: SDAIRecord{
				TenderJointCount:          5,
				SwollenJointCount:         3,
				DoctorActivityAssessment:  40,
				PatientActivityAssessment: 60,
				CRP:                       1.2,
			},
			expected: 30.0,
		},
		{
			name: "crp change shifts the score by ten per unit",
			record: SDAIRecord{
				TenderJointCount:          5,
				SwollenJointCount:         3,
				DoctorActivityAssessment:  40,
				PatientActivityAssessment: 60,
				CRP:                       2.0,
			},
			expected: 38.0,
		},
		{
			name: "maximum joint counts",
			record: SDAIRecord{
				TenderJointCount:          28,
				SwollenJointCount:         28,
				DoctorActivityAssessment:  100,
				PatientActivityAssessment: 100,
				CRP:                       10,
			},
			expected: 176.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.record.CalculateSDAI()
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("CalculateSDAI() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRecalculateStoresScore(t *testing.T) {
	record := SDAIRecord{
		TenderJointCount:          2,
		SwollenJointCount:         1,
		DoctorActivityAssessment:  10,
		PatientActivityAssessment: 20,
		CRP:                       0.5,
	}

	record.Recalculate()

	if math.Abs(record.SDAIScore-11.0) > 1e-9 {
		t.Errorf("SDAIScore = %v, want 11.0", record.SDAIScore)
	}
}

func TestUserRoleHelpers(t *testing.T) {
	active := true
	inactive := false

	clinician := User{IsMedical: true, IsActive: &active}
	if !clinician.IsClinician() || clinician.IsPatient() {
		t.Error("medical user should be a clinician, not a patient")
	}

	patient := User{IsMedical: false, IsActive: &active}
	if patient.IsClinician() || !patient.IsPatient() {
		t.Error("non-medical user should be a patient, not a clinician")
	}

	if !patient.Active() {
		t.Error("user with is_active=true should be active")
	}
	patient.IsActive = &inactive
	if patient.Active() {
		t.Error("user with is_active=false should be inactive")
	}
	patient.IsActive = nil
	if patient.Active() {
		t.Error("user with unset is_active should be inactive")
	}
}
