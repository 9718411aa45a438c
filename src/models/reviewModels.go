package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewModel struct {
	Uid         uuid.UUID  `json:"uid" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `json:"userId" gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_reviews_user_book"`
	User        *UserModel `json:"user,omitempty" gorm:"foreignKey:UserID;references:Uid"`
	BookID      uuid.UUID  `json:"bookId" gorm:"column:book_id;type:uuid;not null;uniqueIndex:idx_reviews_user_book"`
	Book        *BookModel `json:"book,omitempty" gorm:"foreignKey:BookID;references:Uid"`
	Rating      float64    `json:"rating" gorm:"type:numeric(2,1);not null"`
	Description *string    `json:"description" gorm:"type:varchar(255)"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"column:created_at;not null"`
	UpdatedAt   time.Time  `json:"updatedAt" gorm:"column:updated_at;not null"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

func (r *ReviewModel) BeforeCreate(tx *gorm.DB) error {
	if r.Uid == uuid.Nil {
		r.Uid = uuid.New()
	}
	return nil
}
