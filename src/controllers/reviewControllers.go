package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mydeimos/elibrary-backend/src/dtos"
	"github.com/mydeimos/elibrary-backend/src/models"
	"github.com/mydeimos/elibrary-backend/src/services"
)

type ReviewController struct {
	service *services.ReviewService
}

func NewReviewController(service *services.ReviewService) *ReviewController {
	return &ReviewController{service: service}
}

func reviewDTO(review models.ReviewModel) dtos.ReviewDTO {
	dto := dtos.ReviewDTO{
		ReviewID:    review.Uid,
		Rating:      review.Rating,
		Description: review.Description,
		CreatedAt:   review.CreatedAt.Format("2006-01-02"),
	}
	if review.User != nil {
		dto.Reviewer = review.User.Username
	}
	if review.Book != nil {
		dto.BookTitle = review.Book.Title
	}
	return dto
}

// AddReview handles POST requests to review a book
func (c *ReviewController) AddReview(ctx *gin.Context) {
	var req dtos.AddReviewDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	review, err := c.service.CreateReview(currentUserID(ctx), req.BookID, req.Rating, req.Description)
	if err != nil {
		respondError(ctx, err)
		return
	}

	data := gin.H{
		"review_id":   review.Uid,
		"rating":      review.Rating,
		"description": review.Description,
	}
	if review.Book != nil {
		data["book_title"] = review.Book.Title
	}
	respondCreated(ctx, "Your review has been posted successfully!", data)
}

// GetReview handles GET requests for one review by id
func (c *ReviewController) GetReview(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid review ID")
		return
	}

	review, err := c.service.GetReviewByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "Success.", reviewDTO(*review))
}

// BookReviews handles GET requests for all reviews of a book
func (c *ReviewController) BookReviews(ctx *gin.Context) {
	bookID, err := uuid.Parse(ctx.Param("bookId"))
	if err != nil {
		respondBadRequest(ctx, "Invalid book ID")
		return
	}

	reviews, average, err := c.service.GetBookReviews(bookID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	items := make([]dtos.ReviewDTO, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, reviewDTO(review))
	}
	respondOK(ctx, "Success.", gin.H{
		"reviews":        items,
		"average_rating": average,
	})
}

// UpdateReview handles PUT requests to edit the caller's review
func (c *ReviewController) UpdateReview(ctx *gin.Context) {
	var req dtos.UpdateReviewDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	review, err := c.service.UpdateReview(currentUserID(ctx), req.ReviewID, req.Rating, req.Description)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "Your review has been updated.", gin.H{
		"review_id":   review.Uid,
		"rating":      review.Rating,
		"description": review.Description,
	})
}

// DeleteReview handles DELETE requests to remove the caller's review
func (c *ReviewController) DeleteReview(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid review ID")
		return
	}

	if err := c.service.DeleteReview(currentUserID(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "Your review has been deleted.", nil)
}
