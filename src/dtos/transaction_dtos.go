package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/mydeimos/elibrary-backend/src/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type BorrowRequestDTO struct {
	BookID   uuid.UUID `json:"book_id"`
	Duration int       `json:"duration"`
}

// DecisionDTO is the admin payload for accepting or rejecting a pending
// request; the description is an optional resolution note.
type DecisionDTO struct {
	RequestID   uuid.UUID `json:"request_id"`
	Description string    `json:"description"`
}

type ReturnBookDTO struct {
	TransactionID uuid.UUID `json:"transaction_id"`
}

type PendingRequestDTO struct {
	Uid         uuid.UUID            `json:"uid"`
	Username    string               `json:"username"`
	Name        string               `json:"name"`
	BookTitle   string               `json:"book_title"`
	DateRequest string               `json:"date_request"`
	TimeRequest string               `json:"time_request"`
	Duration    int                  `json:"duration"`
	Status      models.RequestStatus `json:"status"`
}

func NewPendingRequestDTO(req models.RequestModel) PendingRequestDTO {
	dto := PendingRequestDTO{
		Uid:         req.Uid,
		DateRequest: req.RequestedAt.Format(dateLayout),
		TimeRequest: req.RequestedAt.Format(timeLayout),
		Duration:    req.Duration,
		Status:      req.Status,
	}
	if req.User != nil {
		dto.Username = req.User.Username
		dto.Name = req.User.Name
	}
	if req.Book != nil {
		dto.BookTitle = req.Book.Title
	}
	return dto
}

type ProcessedRequestDTO struct {
	Uid         uuid.UUID            `json:"uid"`
	Username    string               `json:"username"`
	Name        string               `json:"name"`
	BookTitle   string               `json:"book_title"`
	DateRequest string               `json:"date_request"`
	TimeRequest string               `json:"time_request"`
	DateUpdate  string               `json:"date_update"`
	TimeUpdate  string               `json:"time_update"`
	Duration    int                  `json:"duration"`
	Description *string              `json:"description"`
	Status      models.RequestStatus `json:"status"`
}

func NewProcessedRequestDTO(req models.RequestModel) ProcessedRequestDTO {
	dto := ProcessedRequestDTO{
		Uid:         req.Uid,
		DateRequest: req.RequestedAt.Format(dateLayout),
		TimeRequest: req.RequestedAt.Format(timeLayout),
		DateUpdate:  req.UpdatedAt.Format(dateLayout),
		TimeUpdate:  req.UpdatedAt.Format(timeLayout),
		Duration:    req.Duration,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.User != nil {
		dto.Username = req.User.Username
		dto.Name = req.User.Name
	}
	if req.Book != nil {
		dto.BookTitle = req.Book.Title
	}
	return dto
}

// RejectedSiblingDTO reports a pending request that was auto-rejected as part
// of accepting a competing request for the same book.
type RejectedSiblingDTO struct {
	Uid         uuid.UUID            `json:"uid"`
	UserID      uuid.UUID            `json:"user_id"`
	BookID      uuid.UUID            `json:"book_id"`
	Status      models.RequestStatus `json:"status"`
	Description *string              `json:"description"`
	DateUpdate  string               `json:"date_update"`
	TimeUpdate  string               `json:"time_update"`
}

func NewRejectedSiblingDTO(req models.RequestModel) RejectedSiblingDTO {
	return RejectedSiblingDTO{
		Uid:         req.Uid,
		UserID:      req.UserID,
		BookID:      req.BookID,
		Status:      req.Status,
		Description: req.Description,
		DateUpdate:  req.UpdatedAt.Format(dateLayout),
		TimeUpdate:  req.UpdatedAt.Format(timeLayout),
	}
}

type AcceptedRequestDTO struct {
	RequestID uuid.UUID `json:"request_id"`
	CreatedAt time.Time `json:"created_at"`
	DueDate   time.Time `json:"due_date"`
}

type OngoingTransactionDTO struct {
	Uid        uuid.UUID `json:"uid"`
	Name       string    `json:"name"`
	BookTitle  string    `json:"book_title"`
	DateCreate string    `json:"date_create"`
	TimeCreate string    `json:"time_create"`
	DueDate    string    `json:"due_date"`
}

func NewOngoingTransactionDTO(trx models.TransactionModel) OngoingTransactionDTO {
	dto := OngoingTransactionDTO{
		Uid:        trx.Uid,
		DateCreate: trx.CreatedAt.Format(dateLayout),
		TimeCreate: trx.CreatedAt.Format(timeLayout),
		DueDate:    trx.DueDate.Format(dateLayout),
	}
	if trx.Request != nil {
		if trx.Request.User != nil {
			dto.Name = trx.Request.User.Name
		}
		if trx.Request.Book != nil {
			dto.BookTitle = trx.Request.Book.Title
		}
	}
	return dto
}

type FinishedTransactionDTO struct {
	Uid          uuid.UUID `json:"uid"`
	Name         string    `json:"name"`
	BookTitle    string    `json:"book_title"`
	DateReturned string    `json:"date_returned"`
	TimeReturned string    `json:"time_returned"`
	DueDate      string    `json:"due_date"`
	IsOverdue    *bool     `json:"is_overdue"`
}

func NewFinishedTransactionDTO(trx models.TransactionModel) FinishedTransactionDTO {
	dto := FinishedTransactionDTO{
		Uid:       trx.Uid,
		DueDate:   trx.DueDate.Format(dateLayout),
		IsOverdue: trx.IsOverdue,
	}
	if trx.ReturnedAt != nil {
		dto.DateReturned = trx.ReturnedAt.Format(dateLayout)
		dto.TimeReturned = trx.ReturnedAt.Format(timeLayout)
	}
	if trx.Request != nil {
		if trx.Request.User != nil {
			dto.Name = trx.Request.User.Name
		}
		if trx.Request.Book != nil {
			dto.BookTitle = trx.Request.Book.Title
		}
	}
	return dto
}
