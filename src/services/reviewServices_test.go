package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mydeimos/elibrary-backend/src/apperrors"
	"github.com/mydeimos/elibrary-backend/src/models"
)

func TestCreateReview(t *testing.T) {
	db := newTestDB(t)
	service := NewReviewService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	book := createTestBook(t, db, admin, "Dune")

	review, err := service.CreateReview(alice.Uid, book.Uid, 8.5, "Loved it.")
	require.NoError(t, err)
	assert.Equal(t, alice.Uid, review.UserID)
	assert.Equal(t, book.Uid, review.BookID)
	assert.Equal(t, 8.5, review.Rating)
	require.NotNil(t, review.Description)
	assert.Equal(t, "Loved it.", *review.Description)
}

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	db := newTestDB(t)
	service := NewReviewService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	book := createTestBook(t, db, admin, "Dune")

	_, err := service.CreateReview(alice.Uid, book.Uid, 10.0, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = service.CreateReview(alice.Uid, book.Uid, -0.1, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestCreateReviewUnknownBook(t *testing.T) {
	db := newTestDB(t)
	service := NewReviewService(db)
	alice := createTestUser(t, db, "alice", models.RoleUser)

	_, err := service.CreateReview(alice.Uid, uuid.New(), 5.0, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCreateReviewOncePerUserAndBook(t *testing.T) {
	db := newTestDB(t)
	service := NewReviewService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)
	book := createTestBook(t, db, admin, "Dune")

	_, err := service.CreateReview(alice.Uid, book.Uid, 7.0, "")
	require.NoError(t, err)

	_, err = service.CreateReview(alice.Uid, book.Uid, 9.0, "second try")
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	// A different reader may still review the same book.
	_, err = service.CreateReview(bob.Uid, book.Uid, 6.0, "")
	assert.NoError(t, err)
}

func TestGetBookReviewsAverageAndOrdering(t *testing.T) {
	db := newTestDB(t)
	service := NewReviewService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)
	book := createTestBook(t, db, admin, "Dune")

	_, err := service.CreateReview(alice.Uid, book.Uid, 8.0, "")
	require.NoError(t, err)
	_, err = service.CreateReview(bob.Uid, book.Uid, 6.0, "")
	require.NoError(t, err)

	reviews, average, err := service.GetBookReviews(book.Uid)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.InDelta(t, 7.0, average, 1e-9)
	for _, review := range reviews {
		require.NotNil(t, review.User)
		require.NotNil(t, review.Book)
		assert.Equal(t, book.Uid, review.Book.Uid)
	}
}

func TestGetBookReviewsEmptyIsNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewReviewService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	book := createTestBook(t, db, admin, "Dune")

	_, _, err := service.GetBookReviews(book.Uid)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateReviewAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	service := NewReviewService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)
	book := createTestBook(t, db, admin, "Dune")

	review, err := service.CreateReview(alice.Uid, book.Uid, 7.0, "fine")
	require.NoError(t, err)

	_, err = service.UpdateReview(bob.Uid, review.Uid, 1.0, "ruined")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))

	updated, err := service.UpdateReview(alice.Uid, review.Uid, 9.0, "grew on me")
	require.NoError(t, err)
	assert.Equal(t, 9.0, updated.Rating)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "grew on me", *updated.Description)
}

func TestDeleteReviewAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	service := NewReviewService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	alice := createTestUser(t, db, "alice", models.RoleUser)
	bob := createTestUser(t, db, "bob", models.RoleUser)
	book := createTestBook(t, db, admin, "Dune")

	review, err := service.CreateReview(alice.Uid, book.Uid, 7.0, "")
	require.NoError(t, err)

	err = service.DeleteReview(bob.Uid, review.Uid)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))

	require.NoError(t, service.DeleteReview(alice.Uid, review.Uid))

	_, err = service.GetReviewByID(review.Uid)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
