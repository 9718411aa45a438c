package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mydeimos/elibrary-backend/src/models"
)

// newTestDB opens an in-memory sqlite database capped at one connection so
// write transactions serialize the same way row locks serialize them on
// Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.BookModel{},
		&models.RequestModel{},
		&models.TransactionModel{},
		&models.ReviewModel{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) models.UserModel {
	t.Helper()

	user := models.UserModel{
		Username: username,
		Password: "not-a-real-hash",
		Role:     role,
		Name:     "TEST USER",
		Address:  "TEST ADDRESS",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestBook(t *testing.T, db *gorm.DB, admin models.UserModel, title string) models.BookModel {
	t.Helper()

	summary := "test summary"
	book := models.BookModel{
		Title:        title,
		Author:       "Test Author",
		Category:     "Test",
		Summary:      &summary,
		Availability: true,
		AdminID:      admin.Uid,
	}
	require.NoError(t, db.Create(&book).Error)
	return book
}

func createTestRequest(t *testing.T, db *gorm.DB, user models.UserModel, book models.BookModel, requestedAt time.Time) models.RequestModel {
	t.Helper()

	request := models.RequestModel{
		UserID:      user.Uid,
		BookID:      book.Uid,
		RequestedAt: requestedAt,
		UpdatedAt:   requestedAt,
		Duration:    7,
		Status:      models.RequestPending,
	}
	require.NoError(t, db.Create(&request).Error)
	return request
}
