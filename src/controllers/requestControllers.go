package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mydeimos/elibrary-backend/src/dtos"
	"github.com/mydeimos/elibrary-backend/src/services"
)

type RequestController struct {
	service *services.RequestService
}

func NewRequestController(service *services.RequestService) *RequestController {
	return &RequestController{service: service}
}

// BorrowRequest handles POST requests from a user asking to borrow a book
func (c *RequestController) BorrowRequest(ctx *gin.Context) {
	var req dtos.BorrowRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	request, err := c.service.Submit(currentUserID(ctx), req.BookID, req.Duration)
	if err != nil {
		respondError(ctx, err)
		return
	}

	data := gin.H{"duration": request.Duration}
	if request.Book != nil {
		data["borrowed_book"] = request.Book.Title
	}
	respondOK(ctx, "Request is sent!", data)
}

// PendingRequests handles POST requests listing all pending requests (admin)
func (c *RequestController) PendingRequests(ctx *gin.Context) {
	c.listRequests(ctx, nil, true)
}

// ProcessedRequests handles POST requests listing resolved requests (admin)
func (c *RequestController) ProcessedRequests(ctx *gin.Context) {
	c.listRequests(ctx, nil, false)
}

// UserPendingRequests handles POST requests listing the caller's pending requests
func (c *RequestController) UserPendingRequests(ctx *gin.Context) {
	userID := currentUserID(ctx)
	c.listRequests(ctx, &userID, true)
}

// UserProcessedRequests handles POST requests listing the caller's resolved requests
func (c *RequestController) UserProcessedRequests(ctx *gin.Context) {
	userID := currentUserID(ctx)
	c.listRequests(ctx, &userID, false)
}

func (c *RequestController) listRequests(ctx *gin.Context, userID *uuid.UUID, pending bool) {
	var page dtos.Pagination
	if err := ctx.ShouldBindJSON(&page); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}
	if !page.Valid() {
		respondBadRequest(ctx, "Page and limit must both be at least 1.")
		return
	}

	if pending {
		requests, total, err := c.service.GetPendingRequests(userID, page.Page, page.Limit)
		if err != nil {
			respondError(ctx, err)
			return
		}
		items := make([]dtos.PendingRequestDTO, 0, len(requests))
		for _, request := range requests {
			items = append(items, dtos.NewPendingRequestDTO(request))
		}
		respondPage(ctx, "Pending request:", items, total, page)
		return
	}

	requests, total, err := c.service.GetProcessedRequests(userID, page.Page, page.Limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	items := make([]dtos.ProcessedRequestDTO, 0, len(requests))
	for _, request := range requests {
		items = append(items, dtos.NewProcessedRequestDTO(request))
	}
	respondPage(ctx, "Processed request:", items, total, page)
}
