package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mydeimos/elibrary-backend/src/apperrors"
	"github.com/mydeimos/elibrary-backend/src/models"
)

type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// CreateReview posts a review for a book; a user can review a book once.
func (s *ReviewService) CreateReview(userID, bookID uuid.UUID, rating float64, description string) (*models.ReviewModel, error) {
	if rating < 0 || rating > 9.9 {
		return nil, apperrors.NewConflict("Rating must be between 0 and 9.9.")
	}

	var book models.BookModel
	if err := s.db.First(&book, "uid = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Book not found.")
		}
		return nil, err
	}

	var existing models.ReviewModel
	err := s.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
	if err == nil {
		return nil, apperrors.NewConflict("You've already submitted a review for this book.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := models.ReviewModel{
		UserID: userID,
		BookID: bookID,
		Rating: rating,
	}
	if description != "" {
		review.Description = &description
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}
	review.Book = &book

	return &review, nil
}

// GetReviewByID retrieves one review with its author and book.
func (s *ReviewService) GetReviewByID(id uuid.UUID) (*models.ReviewModel, error) {
	var review models.ReviewModel
	err := s.db.
		Preload("User").
		Preload("Book").
		First(&review, "uid = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Review not found.")
		}
		return nil, err
	}
	return &review, nil
}

// GetBookReviews lists every review for a book, newest first, with the
// average rating across them.
func (s *ReviewService) GetBookReviews(bookID uuid.UUID) ([]models.ReviewModel, float64, error) {
	var book models.BookModel
	if err := s.db.First(&book, "uid = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NewNotFound("Book not found.")
		}
		return nil, 0, err
	}

	var reviews []models.ReviewModel
	err := s.db.
		Preload("User").
		Preload("Book").
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	if len(reviews) == 0 {
		return nil, 0, apperrors.NewNotFound("This book has no reviews yet.")
	}

	var sum float64
	for _, review := range reviews {
		sum += review.Rating
	}
	average := sum / float64(len(reviews))

	return reviews, average, nil
}

// UpdateReview edits a review; only its author may change it.
func (s *ReviewService) UpdateReview(userID, reviewID uuid.UUID, rating float64, description string) (*models.ReviewModel, error) {
	if rating < 0 || rating > 9.9 {
		return nil, apperrors.NewConflict("Rating must be between 0 and 9.9.")
	}

	var review models.ReviewModel
	if err := s.db.First(&review, "uid = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Review not found.")
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, apperrors.NewUnauthorized("You can only edit your own review.")
	}

	updates := map[string]interface{}{"rating": rating}
	review.Rating = rating
	if description != "" {
		updates["description"] = description
		review.Description = &description
	}
	if err := s.db.Model(&review).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &review, nil
}

// DeleteReview removes a review; only its author may delete it.
func (s *ReviewService) DeleteReview(userID, reviewID uuid.UUID) error {
	var review models.ReviewModel
	if err := s.db.First(&review, "uid = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Review not found.")
		}
		return err
	}
	if review.UserID != userID {
		return apperrors.NewUnauthorized("You can only delete your own review.")
	}

	return s.db.Delete(&models.ReviewModel{}, "uid = ?", reviewID).Error
}
