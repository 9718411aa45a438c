package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mydeimos/elibrary-backend/src/models"
)

func Seed(db *gorm.DB) {
	// Admin account
	var admin models.UserModel
	result := db.Where("username = ?", "admin").First(&admin)
	if result.Error == nil {
		log.Println("User 'admin' already exists")
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)

		admin = models.UserModel{
			Username: "admin",
			Password: string(hashedPassword),
			Role:     models.RoleAdmin,
			Name:     "LIBRARY ADMIN",
			Address:  "THE LIBRARY",
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Printf("Failed to create admin: %v\n", err)
			return
		}
		log.Println("User 'admin' created")
	}

	// Demo reader account
	var reader models.UserModel
	if err := db.Where("username = ?", "reader").First(&reader).Error; err != nil {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("reader"), bcrypt.DefaultCost)
		reader = models.UserModel{
			Username: "reader",
			Password: string(hashedPassword),
			Role:     models.RoleUser,
			Name:     "DEMO READER",
			Address:  "READING ROOM",
		}
		if err := db.Create(&reader).Error; err != nil {
			log.Printf("Failed to create reader: %v\n", err)
		} else {
			log.Println("User 'reader' created")
		}
	}

	// Starter catalog
	log.Println("Checking and creating starter catalog...")
	starter := []models.BookModel{
		{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Category: "Software"},
		{Title: "Clean Architecture", Author: "Robert C. Martin", Category: "Software"},
		{Title: "The Name of the Wind", Author: "Patrick Rothfuss", Category: "Fantasy"},
		{Title: "Dune", Author: "Frank Herbert", Category: "Science Fiction"},
		{Title: "A Short History of Nearly Everything", Author: "Bill Bryson", Category: "Science"},
		{Title: "Thinking, Fast and Slow", Author: "Daniel Kahneman", Category: "Psychology"},
	}
	createdCount := 0
	for _, book := range starter {
		var existing models.BookModel
		checkResult := db.Where("title = ? AND author = ?", book.Title, book.Author).First(&existing)
		if checkResult.Error == nil {
			continue
		}
		book.Availability = true
		book.AdminID = admin.Uid
		if err := db.Create(&book).Error; err != nil {
			log.Printf("Failed to create book %q: %v\n", book.Title, err)
		} else {
			createdCount++
		}
	}
	if createdCount > 0 {
		log.Printf("Finished creating %d starter books\n", createdCount)
	} else {
		log.Println("Starter catalog already exists")
	}
}
