package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatus is the closed set of states a borrow request can be in.
// A request is created as pending and resolved exactly once, to accepted
// or rejected; resolved requests are never deleted.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

type RequestModel struct {
	Uid         uuid.UUID     `json:"uid" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID     `json:"userId" gorm:"column:user_id;type:uuid;not null;index"`
	User        *UserModel    `json:"user,omitempty" gorm:"foreignKey:UserID;references:Uid"`
	BookID      uuid.UUID     `json:"bookId" gorm:"column:book_id;type:uuid;not null;index"`
	Book        *BookModel    `json:"book,omitempty" gorm:"foreignKey:BookID;references:Uid"`
	RequestedAt time.Time     `json:"requestedAt" gorm:"column:requested_at;not null"`
	UpdatedAt   time.Time     `json:"updatedAt" gorm:"column:updated_at;not null"`
	Duration    int           `json:"duration" gorm:"not null"`
	Status      RequestStatus `json:"status" gorm:"type:varchar(20);not null;default:pending;check:valid_status_check,status IN ('pending','accepted','rejected')"`
	Description *string       `json:"description" gorm:"type:varchar(255)"`
}

func (RequestModel) TableName() string {
	return "requests"
}

func (r *RequestModel) BeforeCreate(tx *gorm.DB) error {
	if r.Uid == uuid.Nil {
		r.Uid = uuid.New()
	}
	return nil
}
