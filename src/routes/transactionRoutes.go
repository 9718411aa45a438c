package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mydeimos/elibrary-backend/src/controllers"
	"github.com/mydeimos/elibrary-backend/src/middleware"
	"github.com/mydeimos/elibrary-backend/src/models"
	"github.com/mydeimos/elibrary-backend/src/services"
)

func SetupTransactionRoutes(router *gin.Engine, requestService *services.RequestService, transactionService *services.TransactionService) {

	requestController := controllers.NewRequestController(requestService)
	transactionController := controllers.NewTransactionController(transactionService)

	// User routes
	user := router.Group("/api/v1/transaction")
	user.Use(middleware.AuthMiddleware())
	{
		user.POST("/borrow-request", requestController.BorrowRequest)
		user.POST("/user-pending-request", requestController.UserPendingRequests)
		user.POST("/user-processed-request", requestController.UserProcessedRequests)
		user.POST("/user-ongoing-transaction", transactionController.UserOngoingTransactions)
		user.POST("/user-finished-transaction", transactionController.UserFinishedTransactions)
	}

	// Admin routes
	admin := router.Group("/api/v1/transaction")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/pending-request", requestController.PendingRequests)
		admin.POST("/processed-request", requestController.ProcessedRequests)
		admin.POST("/accept", transactionController.Accept)
		admin.POST("/reject", transactionController.Reject)
		admin.POST("/return", transactionController.Return)
		admin.POST("/ongoing-transaction", transactionController.OngoingTransactions)
		admin.POST("/finished-transaction", transactionController.FinishedTransactions)
	}
}
