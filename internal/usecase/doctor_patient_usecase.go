package usecase

import (
	"context"
	"errors"
	"strconv"

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
	ErrDoctorNotFound    = errors.New("clinician not found or inactive")
	ErrLinkAlreadyExists = errors.New("patient is already linked to this clinician")
	ErrLinkNotFound      = errors.New("patient is not linked to this clinician")
)

type DoctorPatientUsecase interface {
	AddPatient(ctx context.Context, doctor *entity.User, req *dto.AddPatientRequest) (*dto.DoctorPatientResponse, error)
	RemovePatient(ctx context.Context, doctor *entity.User, patientID uuid.UUID) error
	GetMyDoctors(ctx context.Context, patient *entity.User) ([]dto.UserResponse, error)
	SearchPatients(ctx context.Context, doctor *entity.User, term string, skip, limit int) ([]dto.UserResponse, error)
}

type doctorPatientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	linkRepo     repository.DoctorPatientRepository
	auditService service.AuditService
}

func NewDoctorPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	linkRepo repository.DoctorPatientRepository,
	auditService service.AuditService,
) DoctorPatientUsecase {
	return &doctorPatientUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		linkRepo:     linkRepo,
		auditService: auditService,
	}
}

func (u *doctorPatientUsecase) AddPatient(ctx context.Context, doctor *entity.User, req *dto.AddPatientRequest) (*dto.DoctorPatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// The doctor comes from the auth layer but is re-validated against the
	// store inside the same unit of work.
	storedDoctor, err := u.userRepo.FindByID(tx, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if storedDoctor == nil || !storedDoctor.Active() || !storedDoctor.IsClinician() {
		return nil, ErrDoctorNotFound
	}

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

	existing, err := u.linkRepo.FindLink(tx, doctor.ID, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to check existing link: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrLinkAlreadyExists
	}

	link := &entity.DoctorPatient{
		DoctorID:  doctor.ID,
		PatientID: req.PatientID,
	}

	if err := u.linkRepo.Create(tx, link); err != nil {
		// A concurrent insert loses the race at the unique constraint.
		if isDuplicateKeyError(err, "doctor_patient") {
			return nil, ErrLinkAlreadyExists
		}
		u.log.Warnf("Failed to create link: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &doctor.ID, entity.AuditActionPatientLink, "doctor_patient", strconv.FormatInt(link.ID, 10), map[string]interface{}{
		"patient_id": req.PatientID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.DoctorPatientResponse{
		ID:        link.ID,
		DoctorID:  link.DoctorID,
		PatientID: link.PatientID,
		Patient:   converter.UserToResponse(patient),
		CreatedAt: link.CreatedAt,
	}, nil
}

func (u *doctorPatientUsecase) RemovePatient(ctx context.Context, doctor *entity.User, patientID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	link, err := u.linkRepo.FindLink(tx, doctor.ID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find link: %+v", err)
		return err
	}
	if link == nil {
		return ErrLinkNotFound
	}

	if err := u.linkRepo.Delete(tx, link); err != nil {
		u.log.Warnf("Failed to delete link: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &doctor.ID, entity.AuditActionPatientUnlink, "doctor_patient", strconv.FormatInt(link.ID, 10), map[string]interface{}{
		"patient_id": patientID.String(),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *doctorPatientUsecase) GetMyDoctors(ctx context.Context, patient *entity.User) ([]dto.UserResponse, error) {
	doctors, err := u.linkRepo.FindDoctorsByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return usersToResponses(doctors), nil
}

func (u *doctorPatientUsecase) SearchPatients(ctx context.Context, doctor *entity.User, term string, skip, limit int) ([]dto.UserResponse, error) {
	patients, err := u.linkRepo.SearchPatients(u.db.WithContext(ctx), doctor.ID, term, skip, limit)
	if err != nil {
		u.log.Warnf("Failed to search patients: %+v", err)
		return nil, err
	}

	return usersToResponses(patients), nil
}

func usersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *converter.UserToResponse(&users[i]))
	}
	return responses
}
