package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mydeimos/elibrary-backend/src/apperrors"
	"github.com/mydeimos/elibrary-backend/src/models"
)

// AutoRejectNote is stamped on every sibling pending request that loses to a
// concurrent acceptance for the same book.
const AutoRejectNote = "This request is automatically rejected because the book has already been borrowed"

// TransactionService drives the borrow lifecycle: accepting or rejecting a
// pending request and returning a loaned book. Accept and Return are the only
// writers of the book availability flag, and each runs as a single database
// transaction; a failure anywhere rolls back every record it touched.
type TransactionService struct {
	db          *gorm.DB
	bookService *BookService // optional, to invalidate the catalog cache on availability flips
}

// NewTransactionService creates a new instance of TransactionService.
// bookService may be nil when no cache invalidation is needed.
func NewTransactionService(db *gorm.DB, bookService *BookService) *TransactionService {
	return &TransactionService{db: db, bookService: bookService}
}

// AcceptResult carries the loan created by an acceptance together with the
// sibling pending requests that were auto-rejected in the same transaction.
type AcceptResult struct {
	Transaction      models.TransactionModel
	RejectedRequests []models.RequestModel
}

// lockForUpdate takes row-level locks so two concurrent accepts for the same
// book serialize on the book and request rows. sqlite has a single writer and
// no FOR UPDATE syntax, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// dueDate computes the loan deadline: duration days after the acceptance
// instant, pushed to the last microsecond of that calendar day (UTC).
func dueDate(from time.Time, durationDays int) time.Time {
	d := from.UTC().AddDate(0, 0, durationDays)
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999999000, time.UTC)
}

// Accept promotes a pending request to an active loan. In one transaction it
// marks the book unavailable, auto-rejects every other pending request for
// the same book, creates the loan record and marks the request accepted.
// Exactly one of two concurrent accepts for the same book can succeed: the
// loser either observes the book already unavailable or finds its request
// already rejected by the winner, and fails with an invalid-state error.
// Nothing is retried; the caller must re-initiate with fresh state.
func (s *TransactionService) Accept(adminID, requestID uuid.UUID, description string) (*AcceptResult, error) {
	var result AcceptResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock ordering: the book row is always the first lock taken, so two
		// accepts touching the same book serialize there instead of meeting
		// halfway. The request is read unlocked just to resolve the book, then
		// re-read under its own lock and re-checked.
		var request models.RequestModel
		if err := tx.First(&request, "uid = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("No request found.")
			}
			return err
		}
		if request.Status != models.RequestPending {
			return apperrors.NewInvalidState("This request has already been processed.")
		}

		var book models.BookModel
		if err := lockForUpdate(tx).First(&book, "uid = ?", request.BookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewDataIntegrity("Book not found.")
			}
			return err
		}
		if !book.Availability {
			return apperrors.NewInvalidState("Book is not available.")
		}

		// A competing accept may have resolved this request while we waited
		// on the book lock.
		if err := lockForUpdate(tx).First(&request, "uid = ?", requestID).Error; err != nil {
			return err
		}
		if request.Status != models.RequestPending {
			return apperrors.NewInvalidState("This request has already been processed.")
		}

		if err := tx.Model(&models.BookModel{}).
			Where("uid = ?", book.Uid).
			Update("availability", false).Error; err != nil {
			return err
		}

		now := time.Now().UTC()

		// Acceptance is the commit point: every competing pending request for
		// this book loses and is rejected in the same transaction.
		var siblings []models.RequestModel
		if err := lockForUpdate(tx).
			Where("book_id = ? AND uid <> ? AND status = ?", book.Uid, request.Uid, models.RequestPending).
			Find(&siblings).Error; err != nil {
			return err
		}
		if len(siblings) > 0 {
			note := AutoRejectNote
			if err := tx.Model(&models.RequestModel{}).
				Where("book_id = ? AND uid <> ? AND status = ?", book.Uid, request.Uid, models.RequestPending).
				Updates(map[string]interface{}{
					"status":      models.RequestRejected,
					"description": note,
					"updated_at":  now,
				}).Error; err != nil {
				return err
			}
			for i := range siblings {
				siblings[i].Status = models.RequestRejected
				siblings[i].Description = &note
				siblings[i].UpdatedAt = now
			}
		}

		transaction := models.TransactionModel{
			AdminID:   adminID,
			RequestID: request.Uid,
			DueDate:   dueDate(now, request.Duration),
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":     models.RequestAccepted,
			"updated_at": now,
		}
		if description != "" {
			updates["description"] = description
		}
		if err := tx.Model(&models.RequestModel{}).
			Where("uid = ?", request.Uid).
			Updates(updates).Error; err != nil {
			return err
		}

		result.Transaction = transaction
		result.RejectedRequests = siblings
		return nil
	})

	if err != nil {
		return nil, err
	}

	if s.bookService != nil {
		s.bookService.InvalidateBookCache()
	}

	return &result, nil
}

// Reject resolves a pending request without touching the book: the book was
// never marked unavailable for a request still in pending.
func (s *TransactionService) Reject(requestID uuid.UUID, description string) (*models.RequestModel, error) {
	var request models.RequestModel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&request, "uid = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("No request found.")
			}
			return err
		}
		if request.Status != models.RequestPending {
			return apperrors.NewInvalidState("This request has already been processed.")
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":     models.RequestRejected,
			"updated_at": now,
		}
		request.Status = models.RequestRejected
		request.UpdatedAt = now
		if description != "" {
			updates["description"] = description
			request.Description = &description
		}
		return tx.Model(&models.RequestModel{}).
			Where("uid = ?", request.Uid).
			Updates(updates).Error
	})

	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Return completes a loan: flips the book available again, stamps
// returned_at and freezes is_overdue from the comparison against the due
// date. The overdue flag is never recomputed after this point.
func (s *TransactionService) Return(transactionID uuid.UUID) (*models.TransactionModel, error) {
	var transaction models.TransactionModel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the loan row before anything is read from it, so a concurrent
		// return waits here and then fails the already-returned guard. The
		// locking clause does not cover preloads; associations are loaded
		// separately once the lock is held.
		if err := lockForUpdate(tx).First(&transaction, "uid = ?", transactionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("No transaction found.")
			}
			return err
		}
		if transaction.ReturnedAt != nil {
			return apperrors.NewInvalidState("The transaction is complete; the book has already been returned.")
		}

		var request models.RequestModel
		if err := tx.
			Preload("User").
			Preload("Book").
			First(&request, "uid = ?", transaction.RequestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewDataIntegrity("Request information is missing from the transaction.")
			}
			return err
		}
		transaction.Request = &request
		// A loan can only originate from an accepted request; anything else
		// means the ledger was corrupted outside this engine.
		if request.Status == models.RequestPending || request.Status == models.RequestRejected {
			return apperrors.NewInvalidState("This request is still pending or has already been rejected.")
		}
		if request.Book == nil {
			return apperrors.NewDataIntegrity("Book information is missing from the transaction.")
		}

		if err := tx.Model(&models.BookModel{}).
			Where("uid = ?", request.BookID).
			Update("availability", true).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		overdue := now.After(transaction.DueDate)
		if err := tx.Model(&models.TransactionModel{}).
			Where("uid = ?", transaction.Uid).
			Updates(map[string]interface{}{
				"returned_at": now,
				"is_overdue":  overdue,
			}).Error; err != nil {
			return err
		}
		transaction.ReturnedAt = &now
		transaction.IsOverdue = &overdue
		return nil
	})

	if err != nil {
		return nil, err
	}

	if s.bookService != nil {
		s.bookService.InvalidateBookCache()
	}

	return &transaction, nil
}

// GetOngoingTransactions lists loans not yet returned, oldest due date first.
// userID narrows the listing to one borrower; nil means all borrowers.
func (s *TransactionService) GetOngoingTransactions(userID *uuid.UUID, page, limit int) ([]models.TransactionModel, int64, error) {
	emptyMsg := "There is no ongoing transactions."
	if userID != nil {
		emptyMsg = "You have no ongoing transaction."
	}
	return s.listTransactions("transactions.returned_at IS NULL", userID, page, limit, emptyMsg)
}

// GetFinishedTransactions lists completed loans, oldest due date first.
func (s *TransactionService) GetFinishedTransactions(userID *uuid.UUID, page, limit int) ([]models.TransactionModel, int64, error) {
	emptyMsg := "There is no finished transactions."
	if userID != nil {
		emptyMsg = "You have no finished transaction."
	}
	return s.listTransactions("transactions.returned_at IS NOT NULL", userID, page, limit, emptyMsg)
}

func (s *TransactionService) listTransactions(returnedCond string, userID *uuid.UUID, page, limit int, emptyMsg string) ([]models.TransactionModel, int64, error) {
	base := func() *gorm.DB {
		query := s.db.Model(&models.TransactionModel{}).
			Joins("JOIN requests ON requests.uid = transactions.request_id").
			Where(returnedCond)
		if userID != nil {
			query = query.Where("requests.user_id = ?", *userID)
		}
		return query
	}

	// Count and page share the same predicate.
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.TransactionModel
	err := base().
		Preload("Request").
		Preload("Request.User").
		Preload("Request.Book").
		Order("transactions.due_date ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}
	if len(transactions) == 0 {
		return nil, 0, apperrors.NewNotFound(emptyMsg)
	}

	return transactions, total, nil
}
