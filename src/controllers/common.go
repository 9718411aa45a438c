package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mydeimos/elibrary-backend/src/apperrors"
	"github.com/mydeimos/elibrary-backend/src/dtos"
	"github.com/mydeimos/elibrary-backend/src/middleware"
)

// Every endpoint answers with the same envelope: a human-readable message
// and a structured payload, nil on failure. No endpoint reports partial
// success.
func respondOK(ctx *gin.Context, msg string, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{"resp_msg": msg, "resp_data": data})
}

func respondCreated(ctx *gin.Context, msg string, data interface{}) {
	ctx.JSON(http.StatusCreated, gin.H{"resp_msg": msg, "resp_data": data})
}

func respondBadRequest(ctx *gin.Context, msg string) {
	ctx.JSON(http.StatusBadRequest, gin.H{"resp_msg": msg, "resp_data": nil})
}

// respondPage answers a paginated listing: the page of items plus the total
// row count for the same filter predicate.
func respondPage(ctx *gin.Context, msg string, items interface{}, total int64, p dtos.Pagination) {
	ctx.JSON(http.StatusOK, gin.H{
		"resp_msg":  msg,
		"resp_data": items,
		"total":     total,
		"page":      p.Page,
		"limit":     p.Limit,
	})
}

// respondError maps the error taxonomy onto HTTP statuses. Everything the
// lending core can report is a client error; only unclassified errors
// surface as a 500, with the detail kept out of the response body.
func respondError(ctx *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindUnauthorized:
		ctx.JSON(http.StatusUnauthorized, gin.H{"resp_msg": err.Error(), "resp_data": nil})
	case apperrors.KindNotFound, apperrors.KindInvalidState, apperrors.KindConflict, apperrors.KindDataIntegrity:
		ctx.JSON(http.StatusBadRequest, gin.H{"resp_msg": err.Error(), "resp_data": nil})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"resp_msg": "Internal server error.", "resp_data": nil})
	}
}

// currentUserID reads the caller identity placed in the context by the auth
// middleware; the zero UUID means the route was not behind AuthMiddleware.
func currentUserID(ctx *gin.Context) uuid.UUID {
	value, exists := ctx.Get(middleware.CtxUserID)
	if !exists {
		return uuid.Nil
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
