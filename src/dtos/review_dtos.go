package dtos

import "github.com/google/uuid"

type AddReviewDTO struct {
	BookID      uuid.UUID `json:"book_id"`
	Rating      float64   `json:"rating"`
	Description string    `json:"description"`
}

type UpdateReviewDTO struct {
	ReviewID    uuid.UUID `json:"review_id"`
	Rating      float64   `json:"rating"`
	Description string    `json:"description"`
}

type ReviewDTO struct {
	ReviewID    uuid.UUID `json:"review_id"`
	Reviewer    string    `json:"reviewer"`
	BookTitle   string    `json:"book_title"`
	Rating      float64   `json:"rating"`
	Description *string   `json:"description"`
	CreatedAt   string    `json:"created_at"`
}
