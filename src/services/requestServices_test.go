package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mydeimos/elibrary-backend/src/apperrors"
	"github.com/mydeimos/elibrary-backend/src/models"
)

func TestSubmitCreatesPendingRequest(t *testing.T) {
	db := newTestDB(t)
	service := NewRequestService(db)

	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	book := createTestBook(t, db, admin, "Dune")

	request, err := service.Submit(alice.Uid, book.Uid, 7)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, request.Status)
	assert.Equal(t, 7, request.Duration)
	assert.False(t, request.RequestedAt.IsZero())

	// Submitting is a soft reservation: availability is untouched.
	var reloadedBook models.BookModel
	require.NoError(t, db.First(&reloadedBook, "uid = ?", book.Uid).Error)
	assert.True(t, reloadedBook.Availability)
}

func TestSubmitUnknownBook(t *testing.T) {
	db := newTestDB(t)
	service := NewRequestService(db)
	alice := createTestUser(t, db, "alice", models.RoleUser)

	_, err := service.Submit(alice.Uid, uuid.New(), 7)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestSubmitFailsWhenBookUnavailable(t *testing.T) {
	db := newTestDB(t)
	service := NewRequestService(db)

	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	book := createTestBook(t, db, admin, "Dune")
	require.NoError(t, db.Model(&models.BookModel{}).
		Where("uid = ?", book.Uid).
		Update("availability", false).Error)

	_, err := service.Submit(alice.Uid, book.Uid, 7)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestSubmitFailsOnDuplicatePendingRequest(t *testing.T) {
	db := newTestDB(t)
	service := NewRequestService(db)

	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	book := createTestBook(t, db, admin, "Dune")

	_, err := service.Submit(alice.Uid, book.Uid, 7)
	require.NoError(t, err)

	_, err = service.Submit(alice.Uid, book.Uid, 3)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestSubmitAllowedAfterPreviousRequestResolved(t *testing.T) {
	db := newTestDB(t)
	service := NewRequestService(db)

	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	book := createTestBook(t, db, admin, "Dune")

	first, err := service.Submit(alice.Uid, book.Uid, 7)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.RequestModel{}).
		Where("uid = ?", first.Uid).
		Update("status", models.RequestRejected).Error)

	// Only one *pending* request per (user, book) is enforced; a resolved
	// request does not block a new attempt.
	_, err = service.Submit(alice.Uid, book.Uid, 7)
	assert.NoError(t, err)
}

func TestSubmitDifferentUsersMayRequestSameBook(t *testing.T) {
	db := newTestDB(t)
	service := NewRequestService(db)

	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)
	book := createTestBook(t, db, admin, "Dune")

	_, err := service.Submit(alice.Uid, book.Uid, 7)
	require.NoError(t, err)
	_, err = service.Submit(bob.Uid, book.Uid, 7)
	assert.NoError(t, err)
}

func TestSubmitRejectsNonPositiveDuration(t *testing.T) {
	db := newTestDB(t)
	service := NewRequestService(db)

	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	book := createTestBook(t, db, admin, "Dune")

	_, err := service.Submit(alice.Uid, book.Uid, 0)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestPendingRequestsPagination(t *testing.T) {
	db := newTestDB(t)
	service := NewRequestService(db)

	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 15; i++ {
		user := createTestUser(t, db, fmt.Sprintf("reader%02d", i), models.RoleUser)
		book := createTestBook(t, db, admin, fmt.Sprintf("Book %02d", i))
		createTestRequest(t, db, user, book, base.Add(time.Duration(i)*time.Minute))
	}

	page1, total, err := service.GetPendingRequests(nil, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page1, 10)
	assert.EqualValues(t, 15, total)

	page2, total, err := service.GetPendingRequests(nil, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page2, 5)
	assert.EqualValues(t, 15, total)

	// Oldest first across the page boundary.
	assert.True(t, page1[0].RequestedAt.Before(page1[9].RequestedAt))
	assert.True(t, page1[9].RequestedAt.Before(page2[0].RequestedAt))

	// Past the last page, the empty result is a reportable condition.
	_, _, err = service.GetPendingRequests(nil, 3, 10)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestPendingRequestsScopedToUser(t *testing.T) {
	db := newTestDB(t)
	service := NewRequestService(db)

	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)
	book1 := createTestBook(t, db, admin, "Dune")
	book2 := createTestBook(t, db, admin, "Clean Architecture")

	now := time.Now().UTC()
	createTestRequest(t, db, alice, book1, now)
	createTestRequest(t, db, bob, book2, now)

	requests, total, err := service.GetPendingRequests(&alice.Uid, 1, 10)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, alice.Uid, requests[0].UserID)

	// Eager-loaded display data comes with the page.
	require.NotNil(t, requests[0].User)
	assert.Equal(t, "alice", requests[0].User.Username)
	require.NotNil(t, requests[0].Book)
	assert.Equal(t, "Dune", requests[0].Book.Title)
}

func TestProcessedRequestsListing(t *testing.T) {
	db := newTestDB(t)
	requestService := NewRequestService(db)
	transactionService := NewTransactionService(db, nil)

	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)
	book := createTestBook(t, db, admin, "Dune")

	now := time.Now().UTC()
	accepted := createTestRequest(t, db, alice, book, now.Add(-time.Hour))
	createTestRequest(t, db, bob, book, now)

	// Before any decision there is nothing processed.
	_, _, err := requestService.GetProcessedRequests(nil, 1, 10)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	// One accept resolves both: the winner and the auto-rejected sibling.
	_, err = transactionService.Accept(admin.Uid, accepted.Uid, "")
	require.NoError(t, err)

	processed, total, err := requestService.GetProcessedRequests(nil, 1, 10)
	require.NoError(t, err)
	assert.Len(t, processed, 2)
	assert.EqualValues(t, 2, total)
}

func TestConcurrentSubmitsCreateOnePendingRequest(t *testing.T) {
	db := newTestDB(t)
	service := NewRequestService(db)

	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	book := createTestBook(t, db, admin, "Dune")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = service.Submit(alice.Uid, book.Uid, 7)
		}(i)
	}
	wg.Wait()

	// The duplicate-pending guard and the insert run under the book row lock,
	// so the second submit sees the first one's row.
	var succeeded, failed int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			failed++
			assert.True(t, apperrors.IsKind(err, apperrors.KindConflict), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)

	var count int64
	require.NoError(t, db.Model(&models.RequestModel{}).
		Where("user_id = ? AND book_id = ? AND status = ?", alice.Uid, book.Uid, models.RequestPending).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
