package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mydeimos/elibrary-backend/src/controllers"
	"github.com/mydeimos/elibrary-backend/src/middleware"
	"github.com/mydeimos/elibrary-backend/src/models"
	"github.com/mydeimos/elibrary-backend/src/services"
)

func SetupBookRoutes(router *gin.Engine, service *services.BookService) {

	bookController := controllers.NewBookController(service)

	// Public routes
	public := router.Group("/api/v1/books")
	{
		public.POST("/filter", bookController.FilterBooks)
		public.GET("/available", bookController.AvailableBooks)
	}

	// Protected routes
	book := router.Group("/api/v1/books")
	book.Use(middleware.AuthMiddleware())
	{
		book.POST("/by-uid", bookController.BooksByUID)
		book.POST("/search", bookController.SearchByTitle)
	}

	// Admin routes
	admin := router.Group("/api/v1/books")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/", bookController.AddBook)
		admin.POST("/multiple", bookController.AddMultipleBooks)
		admin.POST("/import", bookController.ImportBooks)
		admin.PUT("/", bookController.UpdateBook)
		admin.DELETE("/:id", bookController.DeleteBook)
	}
}
