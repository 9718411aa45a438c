package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mydeimos/elibrary-backend/src/dtos"
	"github.com/mydeimos/elibrary-backend/src/services"
)

const (
	returnedOnTimeMsg = "This book has been successfully returned. Thank you for returning the related book on time. We appreciate your timely return!"
	returnedLateMsg   = "This book has been successfully returned. The related book is overdue. Please make sure to return books on time in the future."
)

type TransactionController struct {
	service *services.TransactionService
}

func NewTransactionController(service *services.TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

// Accept handles POST requests approving a pending borrow request (admin only)
func (c *TransactionController) Accept(ctx *gin.Context) {
	var req dtos.DecisionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	result, err := c.service.Accept(currentUserID(ctx), req.RequestID, req.Description)
	if err != nil {
		respondError(ctx, err)
		return
	}

	rejected := make([]dtos.RejectedSiblingDTO, 0, len(result.RejectedRequests))
	for _, sibling := range result.RejectedRequests {
		rejected = append(rejected, dtos.NewRejectedSiblingDTO(sibling))
	}

	respondOK(ctx, "Request accepted!", gin.H{
		"new_transaction": dtos.AcceptedRequestDTO{
			RequestID: result.Transaction.RequestID,
			CreatedAt: result.Transaction.CreatedAt,
			DueDate:   result.Transaction.DueDate,
		},
		"rejected_requests": rejected,
	})
}

// Reject handles POST requests declining a pending borrow request (admin only)
func (c *TransactionController) Reject(ctx *gin.Context) {
	var req dtos.DecisionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	request, err := c.service.Reject(req.RequestID, req.Description)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "Request rejected!", gin.H{
		"request_id":  request.Uid,
		"status":      request.Status,
		"description": request.Description,
		"date_update": request.UpdatedAt.Format("2006-01-02"),
		"time_update": request.UpdatedAt.Format("15:04"),
	})
}

// Return handles POST requests closing out a loan (admin only)
func (c *TransactionController) Return(ctx *gin.Context) {
	var req dtos.ReturnBookDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	transaction, err := c.service.Return(req.TransactionID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	msg := returnedOnTimeMsg
	if transaction.IsOverdue != nil && *transaction.IsOverdue {
		msg = returnedLateMsg
	}

	data := gin.H{
		"date_create":   transaction.CreatedAt.Format("2006-01-02"),
		"time_create":   transaction.CreatedAt.Format("15:04"),
		"date_returned": transaction.ReturnedAt.Format("2006-01-02"),
		"time_returned": transaction.ReturnedAt.Format("15:04"),
		"due_date":      transaction.DueDate.Format("2006-01-02"),
		"is_overdue":    transaction.IsOverdue,
	}
	if transaction.Request != nil {
		if transaction.Request.User != nil {
			data["borrower_name"] = transaction.Request.User.Name
		}
		if transaction.Request.Book != nil {
			data["book_title"] = transaction.Request.Book.Title
		}
	}
	respondOK(ctx, msg, data)
}

// OngoingTransactions handles POST requests listing all active loans (admin)
func (c *TransactionController) OngoingTransactions(ctx *gin.Context) {
	c.listTransactions(ctx, nil, true)
}

// FinishedTransactions handles POST requests listing all completed loans (admin)
func (c *TransactionController) FinishedTransactions(ctx *gin.Context) {
	c.listTransactions(ctx, nil, false)
}

// UserOngoingTransactions handles POST requests listing the caller's active loans
func (c *TransactionController) UserOngoingTransactions(ctx *gin.Context) {
	userID := currentUserID(ctx)
	c.listTransactions(ctx, &userID, true)
}

// UserFinishedTransactions handles POST requests listing the caller's completed loans
func (c *TransactionController) UserFinishedTransactions(ctx *gin.Context) {
	userID := currentUserID(ctx)
	c.listTransactions(ctx, &userID, false)
}

func (c *TransactionController) listTransactions(ctx *gin.Context, userID *uuid.UUID, ongoing bool) {
	var page dtos.Pagination
	if err := ctx.ShouldBindJSON(&page); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}
	if !page.Valid() {
		respondBadRequest(ctx, "Page and limit must both be at least 1.")
		return
	}

	if ongoing {
		transactions, total, err := c.service.GetOngoingTransactions(userID, page.Page, page.Limit)
		if err != nil {
			respondError(ctx, err)
			return
		}
		items := make([]dtos.OngoingTransactionDTO, 0, len(transactions))
		for _, transaction := range transactions {
			items = append(items, dtos.NewOngoingTransactionDTO(transaction))
		}
		respondPage(ctx, "Ongoing transactions:", items, total, page)
		return
	}

	transactions, total, err := c.service.GetFinishedTransactions(userID, page.Page, page.Limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	items := make([]dtos.FinishedTransactionDTO, 0, len(transactions))
	for _, transaction := range transactions {
		items = append(items, dtos.NewFinishedTransactionDTO(transaction))
	}
	respondPage(ctx, "Finished transactions:", items, total, page)
}
