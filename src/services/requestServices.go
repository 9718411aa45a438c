package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mydeimos/elibrary-backend/src/apperrors"
	"github.com/mydeimos/elibrary-backend/src/models"
)

// RequestService owns the borrow-request ledger. A request is a soft
// reservation only: submitting one does not flip the book's availability and
// does not guarantee the book will still be available when an admin decides.
// First accept wins; everyone else is auto-rejected by the lifecycle engine.
type RequestService struct {
	db *gorm.DB
}

// NewRequestService creates a new instance of RequestService
func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{db: db}
}

// Submit files a new pending borrow request for a book. It fails when the
// book is currently unavailable and when the user already has a pending
// request for the same book; duplicate processed requests are allowed.
func (s *RequestService) Submit(userID, bookID uuid.UUID, duration int) (*models.RequestModel, error) {
	if duration < 1 {
		return nil, apperrors.NewConflict("Duration must be at least one day.")
	}

	var request models.RequestModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// The book row lock serializes concurrent submits for the same book,
		// so the duplicate-pending check and the insert cannot interleave.
		var book models.BookModel
		if err := lockForUpdate(tx).First(&book, "uid = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("Book not found.")
			}
			return err
		}
		if !book.Availability {
			return apperrors.NewConflict("Book is not available.")
		}

		var existing models.RequestModel
		err := tx.Where("book_id = ? AND user_id = ? AND status = ?",
			bookID, userID, models.RequestPending).First(&existing).Error
		if err == nil {
			return apperrors.NewConflict("You're already requesting for this book, please wait for your request to be processed.")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		request = models.RequestModel{
			UserID:      userID,
			BookID:      bookID,
			RequestedAt: now,
			UpdatedAt:   now,
			Duration:    duration,
			Status:      models.RequestPending,
		}
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		request.Book = &book
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &request, nil
}

// GetPendingRequests lists pending requests oldest first, so admins see them
// in first-come-first-served order. userID narrows to one requester.
func (s *RequestService) GetPendingRequests(userID *uuid.UUID, page, limit int) ([]models.RequestModel, int64, error) {
	emptyMsg := "There is no request that requires processing."
	if userID != nil {
		emptyMsg = "You have no pending request."
	}
	return s.listRequests([]models.RequestStatus{models.RequestPending}, userID, page, limit, emptyMsg)
}

// GetProcessedRequests lists accepted and rejected requests oldest first.
func (s *RequestService) GetProcessedRequests(userID *uuid.UUID, page, limit int) ([]models.RequestModel, int64, error) {
	emptyMsg := "No processed request is found."
	if userID != nil {
		emptyMsg = "You have no processed request."
	}
	return s.listRequests([]models.RequestStatus{models.RequestAccepted, models.RequestRejected}, userID, page, limit, emptyMsg)
}

func (s *RequestService) listRequests(statuses []models.RequestStatus, userID *uuid.UUID, page, limit int, emptyMsg string) ([]models.RequestModel, int64, error) {
	base := func() *gorm.DB {
		query := s.db.Model(&models.RequestModel{}).Where("status IN ?", statuses)
		if userID != nil {
			query = query.Where("user_id = ?", *userID)
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.RequestModel
	err := base().
		Preload("User").
		Preload("Book").
		Order("requested_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	if len(requests) == 0 {
		return nil, 0, apperrors.NewNotFound(emptyMsg)
	}

	return requests, total, nil
}
