package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleCandidate UserRole = "CANDIDATE"
)

type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:36"`
	Name     *string  `json:"name" gorm:"size:120" validate:"omitempty,max=120"`
	Email    string   `json:"email" gorm:"not null;uniqueIndex;size:254" validate:"required,email"`
	Password string   `json:"-" gorm:"not null"`
	Role     UserRole `json:"role" gorm:"not null;default:CANDIDATE;index" validate:"omitempty,oneof=ADMIN CANDIDATE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Responses []Response `json:"-" gorm:"foreignKey:UserID"`
	Results   []Result   `json:"-" gorm:"foreignKey:UserID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
