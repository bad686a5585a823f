package converter

import (
	"medical-calculator-backend/internal/delivery/dto"
	"medical-calculator-backend/internal/domain/entity"
)

const measurementDateLayout = "2006-01-02"

// RecordToResponse converts an SDAIRecord entity to RecordResponse DTO
func RecordToResponse(record *entity.SDAIRecord) *dto.RecordResponse {
	if record == nil {
		return nil
	}

	return &dto.RecordResponse{
		ID:                        record.ID,
		PatientID:                 record.PatientID,
		DoctorID:                  record.DoctorID,
		TenderJointCount:          record.TenderJointCount,
		SwollenJointCount:         record.SwollenJointCount,
		DoctorActivityAssessment:  record.DoctorActivityAssessment,
		PatientActivityAssessment: record.PatientActivityAssessment,
		CRP:                       record.CRP,
		SDAIScore:                 record.SDAIScore,
		MeasurementDate:           record.MeasurementDate.Format(measurementDateLayout),
		Notes:                     record.Notes,
		CreatedAt:                 record.CreatedAt,
		UpdatedAt:                 record.UpdatedAt,
	}
}

// RecordToResponseWithPatient includes the preloaded patient and doctor.
func RecordToResponseWithPatient(record *entity.SDAIRecord) *dto.RecordWithPatientResponse {
	if record == nil {
		return nil
	}

	return &dto.RecordWithPatientResponse{
		RecordResponse: *RecordToResponse(record),
		Patient:        UserToResponse(record.Patient),
		Doctor:         UserToResponse(record.Doctor),
	}
}

// RecordsToResponses converts a slice of records.
func RecordsToResponses(records []entity.SDAIRecord) []dto.RecordResponse {
	responses := make([]dto.RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *RecordToResponse(&records[i]))
	}
	return responses
}

// RecordsToResponsesWithPatient converts a slice of records with patients.
func RecordsToResponsesWithPatient(records []entity.SDAIRecord) []dto.RecordWithPatientResponse {
	responses := make([]dto.RecordWithPatientResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *RecordToResponseWithPatient(&records[i]))
	}
	return responses
}

// RecordToExportRecord flattens a record for export payloads. The patient
// name falls back to username when no full name is set.
func RecordToExportRecord(record *entity.SDAIRecord) dto.ExportRecord {
	patientName := ""
	if record.Patient != nil {
		patientName = record.Patient.FullName
		if patientName == "" {
			patientName = record.Patient.Username
		}
	}

	return dto.ExportRecord{
		ID:                        record.ID,
		MeasurementDate:           record.MeasurementDate.Format(measurementDateLayout),
		PatientID:                 record.PatientID,
		PatientName:               patientName,
		TenderJointCount:          record.TenderJointCount,
		SwollenJointCount:         record.SwollenJointCount,
		DoctorActivityAssessment:  record.DoctorActivityAssessment,
		PatientActivityAssessment: record.PatientActivityAssessment,
		CRP:                       record.CRP,
		SDAIScore:                 record.SDAIScore,
	}
}
