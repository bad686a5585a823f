package repository

import (
	"medical-calculator-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByUsername(db *gorm.DB, username string) (*entity.User, error)
	// FindByEmailOrUsername resolves a login identifier that may be either.
	FindByEmailOrUsername(db *gorm.DB, identifier string) (*entity.User, error)
}
