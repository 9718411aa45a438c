package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mydeimos/elibrary-backend/src/db"
	"github.com/mydeimos/elibrary-backend/src/middleware"
	"github.com/mydeimos/elibrary-backend/src/models"
	"github.com/mydeimos/elibrary-backend/src/routes"
	"github.com/mydeimos/elibrary-backend/src/seed"
	"github.com/mydeimos/elibrary-backend/src/services"
)

func main() {

	// Database connection
	db, err := db.Connect()
	if err != nil {
		log.Fatalf("Error connecting to database: %v\n", err)
	}

	// Auto-migrate models
	if err := db.AutoMigrate(
		&models.UserModel{},
		&models.BookModel{},
		&models.RequestModel{},
		&models.TransactionModel{},
		&models.ReviewModel{},
	); err != nil {
		log.Fatalf("Error during auto-migration: %v\n", err)
	}

	// JWT secret setup
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	middleware.SetSecretKey(secret)

	// Optional demo data
	if os.Getenv("SEED") == "true" {
		seed.Seed(db)
	}

	// Port and host setup
	host := os.Getenv("SERVER_HOST")
	if host == "" {
		host = ":8080"
	}

	// Gin router setup
	router := gin.Default()
	router.Use(middleware.SetupCORS())

	// Services setup
	userService := services.NewUserService(db)
	bookService := services.NewBookService(db)
	requestService := services.NewRequestService(db)
	transactionService := services.NewTransactionService(db, bookService)
	reviewService := services.NewReviewService(db)

	// Routes setup
	routes.SetupUserRoutes(router, userService)
	routes.SetupBookRoutes(router, bookService)
	routes.SetupTransactionRoutes(router, requestService, transactionService)
	routes.SetupReviewRoutes(router, reviewService)

	router.GET("/", func(c *gin.Context) {
		c.String(200, "e-library API is up")
	})

	// Server run
	if err := router.Run(host); err != nil {
		log.Fatalf("Error starting server on %s: %v\n", host, err)
	}
}
