package handler

import (
	"encoding/json"
	"net/http"

	"medical-calculator-backend/internal/delivery/dto"
	"medical-calculator-backend/internal/delivery/http/middleware"
	"medical-calculator-backend/internal/usecase"
	"medical-calculator-backend/pkg/pagination"
	"medical-calculator-backend/pkg/response"
	"medical-calculator-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorPatientHandler struct {
	doctorPatientUsecase usecase.DoctorPatientUsecase
	validator            *validator.CustomValidator
}

func NewDoctorPatientHandler(doctorPatientUsecase usecase.DoctorPatientUsecase, validator *validator.CustomValidator) *DoctorPatientHandler {
	return &DoctorPatientHandler{
		doctorPatientUsecase: doctorPatientUsecase,
		validator:            validator,
	}
}

// AddPatient links a patient to the calling clinician
func (h *DoctorPatientHandler) AddPatient(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var req dto.AddPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	link, err := h.doctorPatientUsecase.AddPatient(r.Context(), user, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound, usecase.ErrPatientIsMedical, usecase.ErrLinkAlreadyExists:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to add patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient linked successfully", link)
}

// RemovePatient unlinks a patient from the calling clinician
func (h *DoctorPatientHandler) RemovePatient(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	patientID, err := uuid.Parse(mux.Vars(r)["patientId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	if err := h.doctorPatientUsecase.RemovePatient(r.Context(), user, patientID); err != nil {
		switch err {
		case usecase.ErrLinkNotFound:
			response.NotFound(w, "Link not found")
		default:
			response.InternalServerError(w, "Failed to remove patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient unlinked successfully", nil)
}

// GetMyDoctors lists the clinicians linked to the calling patient
func (h *DoctorPatientHandler) GetMyDoctors(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	doctors, err := h.doctorPatientUsecase.GetMyDoctors(r.Context(), user)
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// SearchPatients finds the caller's linked patients by name, email or username
func (h *DoctorPatientHandler) SearchPatients(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	query := r.URL.Query().Get("q")
	params := pagination.FromRequest(r)

	patients, err := h.doctorPatientUsecase.SearchPatients(r.Context(), user, query, params.Skip, params.Limit)
	if err != nil {
		response.InternalServerError(w, "Failed to search patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}
