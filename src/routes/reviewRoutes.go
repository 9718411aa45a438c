package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mydeimos/elibrary-backend/src/controllers"
	"github.com/mydeimos/elibrary-backend/src/middleware"
	"github.com/mydeimos/elibrary-backend/src/services"
)

func SetupReviewRoutes(router *gin.Engine, service *services.ReviewService) {

	reviewController := controllers.NewReviewController(service)

	// Protected routes
	review := router.Group("/api/v1/review")
	review.Use(middleware.AuthMiddleware())
	{
		review.POST("/", reviewController.AddReview)
		review.GET("/:id", reviewController.GetReview)
		review.GET("/book/:bookId", reviewController.BookReviews)
		review.PUT("/", reviewController.UpdateReview)
		review.DELETE("/:id", reviewController.DeleteReview)
	}
}
