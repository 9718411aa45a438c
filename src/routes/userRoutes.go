package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mydeimos/elibrary-backend/src/controllers"
	"github.com/mydeimos/elibrary-backend/src/middleware"
	"github.com/mydeimos/elibrary-backend/src/services"
)

func SetupUserRoutes(router *gin.Engine, service *services.UserService) {

	userController := controllers.NewUserController(service)

	// Public routes
	public := router.Group("/api/v1/user")
	{
		public.POST("/register-user", userController.RegisterUser)
		public.POST("/login", userController.Login)
	}

	// Protected routes
	user := router.Group("/api/v1/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/info", userController.Info)
		user.GET("/summary", userController.Summary)
		user.GET("/check-token", userController.CheckToken)
		user.GET("/check-admin", userController.CheckAdmin)
	}
}
