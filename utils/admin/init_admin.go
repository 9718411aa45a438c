package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mydeimos/elibrary-backend/src/models"
)

func main() {
	dsn := os.Getenv("DB_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Migrate schema if not exists
	if err := db.AutoMigrate(&models.UserModel{}); err != nil {
		log.Fatalf("failed to migrate user model: %v", err)
	}

	var user models.UserModel
	result := db.Where("username = ?", "admin").First(&user)
	if result.Error == nil {
		log.Println("User 'admin' already exists")
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD is not set")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	newUser := models.UserModel{
		Username: "admin",
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
		Name:     "LIBRARY ADMIN",
		Address:  "THE LIBRARY",
	}
	if err := db.Create(&newUser).Error; err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}
	log.Println("User 'admin' created")
}
