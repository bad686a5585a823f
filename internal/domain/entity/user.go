package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table.
// is_medical marks clinicians; is_superuser is an orthogonal override flag.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	FullName       string    `gorm:"type:varchar(200)" json:"full_name"`
	HashedPassword string    `gorm:"type:varchar(255);not null" json:"-"`
	IsActive       *bool     `gorm:"not null;default:true;index" json:"is_active"`
	IsSuperuser    bool      `gorm:"not null;default:false" json:"is_superuser"`
	IsMedical      bool      `gorm:"not null;default:false;index" json:"is_medical"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsClinician reports whether the user carries the medical flag.
func (u *User) IsClinician() bool {
	return u.IsMedical
}

// IsPatient reports whether the user is a non-medical account.
func (u *User) IsPatient() bool {
	return !u.IsMedical
}

// Active reports the is_active flag, treating an unset pointer as inactive.
func (u *User) Active() bool {
	return u.IsActive != nil && *u.IsActive
}
