package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookModel struct {
	Uid          uuid.UUID  `json:"uid" gorm:"type:uuid;primaryKey"`
	Title        string     `json:"title" gorm:"type:varchar(255);not null"`
	Author       string     `json:"author" gorm:"type:varchar(255);not null"`
	Category     string     `json:"category" gorm:"type:varchar(255);not null"`
	Availability bool       `json:"availability" gorm:"type:boolean;not null;default:true"`
	Summary      *string    `json:"summary" gorm:"type:text"`
	AdminID      uuid.UUID  `json:"adminId" gorm:"column:admin_id;type:uuid;not null"`
	Admin        *UserModel `json:"admin,omitempty" gorm:"foreignKey:AdminID;references:Uid"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"column:created_at;not null"`
	UpdatedAt    time.Time  `json:"updatedAt" gorm:"column:updated_at;not null"`
}

func (BookModel) TableName() string {
	return "books"
}

func (b *BookModel) BeforeCreate(tx *gorm.DB) error {
	if b.Uid == uuid.Nil {
		b.Uid = uuid.New()
	}
	return nil
}
