package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"medical-calculator-backend/internal/delivery/dto"
	"medical-calculator-backend/internal/delivery/http/middleware"
	"medical-calculator-backend/internal/domain/entity"
	"medical-calculator-backend/internal/usecase"
	"medical-calculator-backend/pkg/pagination"
	"medical-calculator-backend/pkg/response"
	"medical-calculator-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const dateLayout = "2006-01-02"

var (
	errInvalidPatientID = errors.New("invalid patient ID")
	errInvalidSDAIBound = errors.New("SDAI bounds must be non-negative numbers")
)

type SDAIHandler struct {
	sdaiUsecase usecase.SDAIUsecase
	validator   *validator.CustomValidator
}

func NewSDAIHandler(sdaiUsecase usecase.SDAIUsecase, validator *validator.CustomValidator) *SDAIHandler {
	return &SDAIHandler{
		sdaiUsecase: sdaiUsecase,
		validator:   validator,
	}
}

// CreateRecord creates a new SDAI measurement (clinician-only)
func (h *SDAIHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var req dto.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.sdaiUsecase.CreateRecord(r.Context(), user, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound, usecase.ErrPatientIsMedical, usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Record created successfully", record)
}

// ListRecords returns the caller's records: authored records for a
// clinician, own records for a patient
func (h *SDAIHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	params := pagination.FromRequest(r)
	records, err := h.sdaiUsecase.ListRecords(r.Context(), user, params.Skip, params.Limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list records")
		return
	}

	response.Success(w, http.StatusOK, "Records retrieved successfully", records)
}

// GetRecord returns one record with ownership checks
func (h *SDAIHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	recordID, err := parseRecordID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	record, err := h.sdaiUsecase.GetRecord(r.Context(), user, recordID)
	if err != nil {
		switch err {
		case usecase.ErrRecordNotFound:
			response.NotFound(w, "Record not found")
		case usecase.ErrRecordAccessDenied:
			response.Forbidden(w, "No access to this record")
		default:
			response.InternalServerError(w, "Failed to get record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Record retrieved successfully", record)
}

// UpdateRecord applies a partial update (authoring clinician or superuser)
func (h *SDAIHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	recordID, err := parseRecordID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	var req dto.UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.sdaiUsecase.UpdateRecord(r.Context(), user, recordID, &req)
	if err != nil {
		switch err {
		case usecase.ErrRecordNotFound:
			response.NotFound(w, "Record not found")
		case usecase.ErrRecordAccessDenied:
			response.Forbidden(w, "No permission to update this record")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Record updated successfully", record)
}

// DeleteRecord removes a record (authoring clinician or superuser)
func (h *SDAIHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	recordID, err := parseRecordID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	if err := h.sdaiUsecase.DeleteRecord(r.Context(), user, recordID); err != nil {
		switch err {
		case usecase.ErrRecordNotFound:
			response.NotFound(w, "Record not found")
		case usecase.ErrRecordAccessDenied:
			response.Forbidden(w, "No permission to delete this record")
		default:
			response.InternalServerError(w, "Failed to delete record")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPatients returns the clinician's linked patients with recent records
func (h *SDAIHandler) GetPatients(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	patients, err := h.sdaiUsecase.GetPatientsWithRecords(r.Context(), user)
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

// GetStatistics returns aggregate figures, optionally for one patient
func (h *SDAIHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var patientID *uuid.UUID
	if raw := r.URL.Query().Get("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
			return
		}
		patientID = &id
	}

	stats, err := h.sdaiUsecase.GetStatistics(r.Context(), user, patientID)
	if err != nil {
		switch err {
		case usecase.ErrStatsAccessDenied:
			response.Forbidden(w, "No access to this patient's statistics")
		default:
			response.InternalServerError(w, "Failed to compute statistics")
		}
		return
	}

	response.Success(w, http.StatusOK, "Statistics retrieved successfully", stats)
}

// SearchRecords filters the caller-clinician's records
func (h *SDAIHandler) SearchRecords(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	filter, err := buildRecordFilter(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	records, err := h.sdaiUsecase.SearchRecords(r.Context(), user, filter)
	if err != nil {
		response.InternalServerError(w, "Failed to search records")
		return
	}

	response.Success(w, http.StatusOK, "Records retrieved successfully", records)
}

// Export returns the caller-clinician's records as csv or json
func (h *SDAIHandler) Export(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	export, err := h.sdaiUsecase.Export(r.Context(), user, format, startDate, endDate)
	if err != nil {
		switch err {
		case usecase.ErrInvalidExportFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to export records")
		}
		return
	}

	response.Success(w, http.StatusOK, "Export generated successfully", export)
}

func parseRecordID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func parseDateRange(r *http.Request) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, nil, usecase.ErrInvalidDateFormat
		}
		startDate = &parsed
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, nil, usecase.ErrInvalidDateFormat
		}
		endDate = &parsed
	}

	return startDate, endDate, nil
}

func buildRecordFilter(r *http.Request) (*entity.RecordFilter, error) {
	params := pagination.FromRequest(r)
	filter := &entity.RecordFilter{
		Skip:  params.Skip,
		Limit: params.Limit,
	}

	if raw := r.URL.Query().Get("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errInvalidPatientID
		}
		filter.PatientID = &id
	}

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		return nil, err
	}
	filter.StartDate = startDate
	filter.EndDate = endDate

	if raw := r.URL.Query().Get("min_sdai"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			return nil, errInvalidSDAIBound
		}
		filter.MinSDAI = &value
	}
	if raw := r.URL.Query().Get("max_sdai"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			return nil, errInvalidSDAIBound
		}
		filter.MaxSDAI = &value
	}

	return filter, nil
}
