package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type UserModel struct {
	Uid       uuid.UUID `json:"uid" gorm:"type:uuid;primaryKey"`
	Username  string    `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	Role      UserRole  `json:"role" gorm:"type:varchar(20);not null;default:user;check:valid_role_check,role IN ('user','admin')"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Address   string    `json:"address" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.Uid == uuid.Nil {
		u.Uid = uuid.New()
	}
	return nil
}
