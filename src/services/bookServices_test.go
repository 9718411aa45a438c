package services

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"github.com/mydeimos/elibrary-backend/src/apperrors"
	"github.com/mydeimos/elibrary-backend/src/dtos"
	"github.com/mydeimos/elibrary-backend/src/models"
)

func TestCreateBookRejectsBlankFields(t *testing.T) {
	db := newTestDB(t)
	service := NewBookService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	_, err := service.CreateBook(admin.Uid, dtos.AddBookDTO{
		Title:    "Dune",
		Author:   "  ",
		Category: "Science Fiction",
		Summary:  "",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Contains(t, err.Error(), "Author")
	assert.Contains(t, err.Error(), "Summary")
}

func TestCreateBookDefaultsToAvailable(t *testing.T) {
	db := newTestDB(t)
	service := NewBookService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	book, err := service.CreateBook(admin.Uid, dtos.AddBookDTO{
		Title:    "Dune",
		Author:   "Frank Herbert",
		Category: "Science Fiction",
		Summary:  "Spice and sand.",
	})
	require.NoError(t, err)
	assert.True(t, book.Availability)
	assert.Equal(t, admin.Uid, book.AdminID)
}

func TestFilterBooksPagination(t *testing.T) {
	db := newTestDB(t)
	service := NewBookService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	for i := 0; i < 12; i++ {
		createTestBook(t, db, admin, fmt.Sprintf("Go Book %02d", i))
	}
	createTestBook(t, db, admin, "Unrelated Title")

	filter := dtos.BookFilterDTO{
		Title:      "go book",
		Pagination: dtos.Pagination{Page: 1, Limit: 10},
	}
	page1, total, err := service.FilterBooks(filter)
	require.NoError(t, err)
	assert.Len(t, page1, 10)
	assert.EqualValues(t, 12, total)

	filter.Page = 2
	page2, total, err := service.FilterBooks(filter)
	require.NoError(t, err)
	assert.Len(t, page2, 2)
	assert.EqualValues(t, 12, total)
}

func TestFilterBooksEmptyPageIsNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewBookService(db)

	_, _, err := service.FilterBooks(dtos.BookFilterDTO{
		Title:      "nope",
		Pagination: dtos.Pagination{Page: 1, Limit: 10},
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestFilterBooksByAvailability(t *testing.T) {
	db := newTestDB(t)
	service := NewBookService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	available := createTestBook(t, db, admin, "On The Shelf")
	borrowed := createTestBook(t, db, admin, "Out On Loan")
	require.NoError(t, db.Model(&models.BookModel{}).
		Where("uid = ?", borrowed.Uid).
		Update("availability", false).Error)

	wantAvailable := true
	books, total, err := service.FilterBooks(dtos.BookFilterDTO{
		Availability: &wantAvailable,
		Pagination:   dtos.Pagination{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, available.Uid, books[0].Uid)
}

func TestUpdateBookDoesNotTouchAvailability(t *testing.T) {
	db := newTestDB(t)
	service := NewBookService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	book := createTestBook(t, db, admin, "Dune")
	require.NoError(t, db.Model(&models.BookModel{}).
		Where("uid = ?", book.Uid).
		Update("availability", false).Error)

	updated, err := service.UpdateBook(dtos.UpdateBookDTO{
		Uid:      book.Uid,
		Title:    "Dune Messiah",
		Author:   "Frank Herbert",
		Category: "Science Fiction",
		Summary:  "The sequel.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)

	var reloaded models.BookModel
	require.NoError(t, db.First(&reloaded, "uid = ?", book.Uid).Error)
	assert.Equal(t, "Dune Messiah", reloaded.Title)
	// Only the lifecycle engine flips this flag.
	assert.False(t, reloaded.Availability)
}

func TestDeleteBookUnknownID(t *testing.T) {
	db := newTestDB(t)
	service := NewBookService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	book := createTestBook(t, db, admin, "Dune")
	require.NoError(t, service.DeleteBook(book.Uid))

	err := service.DeleteBook(book.Uid)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestImportBooksFromExcel(t *testing.T) {
	db := newTestDB(t)
	service := NewBookService(db)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Title", "Author", "Category", "Summary"},
		{"Dune", "Frank Herbert", "Science Fiction", "Spice and sand."},
		{"Clean Architecture", "Robert C. Martin", "Software", "Boundaries."},
		{"Missing Fields", "", "", ""},
	}
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	result, err := service.ImportBooksFromExcel(admin.Uid, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 4")

	var count int64
	require.NoError(t, db.Model(&models.BookModel{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
