package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionModel is the loan record created when an admin accepts a borrow
// request. IsOverdue stays NULL until the book comes back and is computed
// exactly once at return time; a loan that is never returned is never flagged
// overdue, even long past its due date (known product gap, kept on purpose).
type TransactionModel struct {
	Uid        uuid.UUID     `json:"uid" gorm:"type:uuid;primaryKey"`
	AdminID    uuid.UUID     `json:"adminId" gorm:"column:admin_id;type:uuid;not null"`
	Admin      *UserModel    `json:"admin,omitempty" gorm:"foreignKey:AdminID;references:Uid"`
	RequestID  uuid.UUID     `json:"requestId" gorm:"column:request_id;type:uuid;not null;uniqueIndex"`
	Request    *RequestModel `json:"request,omitempty" gorm:"foreignKey:RequestID;references:Uid"`
	CreatedAt  time.Time     `json:"createdAt" gorm:"column:created_at;not null"`
	DueDate    time.Time     `json:"dueDate" gorm:"column:due_date;not null"`
	ReturnedAt *time.Time    `json:"returnedAt" gorm:"column:returned_at"`
	IsOverdue  *bool         `json:"isOverdue" gorm:"column:is_overdue"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func (t *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.Uid == uuid.Nil {
		t.Uid = uuid.New()
	}
	return nil
}
