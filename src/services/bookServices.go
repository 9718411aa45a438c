package services

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	excelize "github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/mydeimos/elibrary-backend/src/apperrors"
	"github.com/mydeimos/elibrary-backend/src/dtos"
	"github.com/mydeimos/elibrary-backend/src/models"
)

// Cache entry
type CacheEntry struct {
	Data      interface{}
	ExpiresAt time.Time
}

type ImportResult struct {
	Imported int
	Errors   []string
}

type BookService struct {
	db    *gorm.DB
	cache map[string]*CacheEntry
	mutex sync.RWMutex
}

func NewBookService(db *gorm.DB) *BookService {
	service := &BookService{
		db:    db,
		cache: make(map[string]*CacheEntry),
	}

	// Clean up cache every 30 minutes
	go service.cleanupCache()

	return service
}

func (s *BookService) cleanupCache() {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mutex.Lock()
		now := time.Now()
		for key, entry := range s.cache {
			if now.After(entry.ExpiresAt) {
				delete(s.cache, key)
			}
		}
		s.mutex.Unlock()
	}
}

func (s *BookService) setCache(key string, data interface{}, duration time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.cache[key] = &CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(duration),
	}
}

func (s *BookService) getCache(key string) (interface{}, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, exists := s.cache[key]
	if !exists || time.Now().After(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Data, true
}

// InvalidateBookCache drops every cached catalog read. It is called after any
// catalog write, including availability flips by the lifecycle engine.
func (s *BookService) InvalidateBookCache() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.cache = make(map[string]*CacheEntry)
}

func validateBookFields(title, author, category, summary string) error {
	var emptyFields []string
	if strings.TrimSpace(title) == "" {
		emptyFields = append(emptyFields, "Title")
	}
	if strings.TrimSpace(author) == "" {
		emptyFields = append(emptyFields, "Author")
	}
	if strings.TrimSpace(category) == "" {
		emptyFields = append(emptyFields, "Category")
	}
	if strings.TrimSpace(summary) == "" {
		emptyFields = append(emptyFields, "Summary")
	}
	if len(emptyFields) > 0 {
		return apperrors.NewConflict(fmt.Sprintf("%s field(s) cannot be empty.", strings.Join(emptyFields, ", ")))
	}
	return nil
}

// CreateBook adds a single book to the catalog, available by default.
func (s *BookService) CreateBook(adminID uuid.UUID, dto dtos.AddBookDTO) (*models.BookModel, error) {
	if err := validateBookFields(dto.Title, dto.Author, dto.Category, dto.Summary); err != nil {
		return nil, err
	}

	summary := dto.Summary
	book := models.BookModel{
		Title:        dto.Title,
		Author:       dto.Author,
		Category:     dto.Category,
		Summary:      &summary,
		Availability: true,
		AdminID:      adminID,
	}
	if err := s.db.Create(&book).Error; err != nil {
		return nil, err
	}

	s.InvalidateBookCache()
	return &book, nil
}

// CreateBooks adds a batch of books; the whole batch is validated up front
// and inserted in one transaction.
func (s *BookService) CreateBooks(adminID uuid.UUID, items []dtos.AddBookDTO) ([]models.BookModel, error) {
	for _, dto := range items {
		if err := validateBookFields(dto.Title, dto.Author, dto.Category, dto.Summary); err != nil {
			return nil, err
		}
	}

	books := make([]models.BookModel, 0, len(items))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, dto := range items {
			summary := dto.Summary
			book := models.BookModel{
				Title:        dto.Title,
				Author:       dto.Author,
				Category:     dto.Category,
				Summary:      &summary,
				Availability: true,
				AdminID:      adminID,
			}
			if err := tx.Create(&book).Error; err != nil {
				return err
			}
			books = append(books, book)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateBookCache()
	return books, nil
}

// GetBookByID retrieves a single book record.
func (s *BookService) GetBookByID(id uuid.UUID) (*models.BookModel, error) {
	var book models.BookModel
	if err := s.db.First(&book, "uid = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Book not found.")
		}
		return nil, err
	}
	return &book, nil
}

// GetBooksByUIDs resolves a list of catalog ids in one query.
func (s *BookService) GetBooksByUIDs(ids []uuid.UUID) ([]models.BookModel, error) {
	var books []models.BookModel
	if err := s.db.Where("uid IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, apperrors.NewNotFound("No books found matching the given uid.")
	}
	return books, nil
}

// FilterBooks searches the catalog with optional substring filters, ordered
// by title, counting before paging.
func (s *BookService) FilterBooks(filter dtos.BookFilterDTO) ([]models.BookModel, int64, error) {
	base := func() *gorm.DB {
		query := s.db.Model(&models.BookModel{})
		if filter.Title != "" {
			query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Title)+"%")
		}
		if filter.Author != "" {
			query = query.Where("LOWER(author) LIKE ?", "%"+strings.ToLower(filter.Author)+"%")
		}
		if filter.Category != "" {
			query = query.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(filter.Category)+"%")
		}
		if filter.Availability != nil {
			query = query.Where("availability = ?", *filter.Availability)
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []models.BookModel
	err := base().
		Order("title ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&books).Error
	if err != nil {
		return nil, 0, err
	}
	if len(books) == 0 {
		return nil, 0, apperrors.NewNotFound("No books found matching the given criteria.")
	}

	return books, total, nil
}

// GetAvailableBooks samples up to ten random books currently on the shelf,
// cached briefly since it backs the landing page.
func (s *BookService) GetAvailableBooks() ([]models.BookModel, error) {
	cacheKey := "available_books"
	if cached, found := s.getCache(cacheKey); found {
		return cached.([]models.BookModel), nil
	}

	var books []models.BookModel
	err := s.db.
		Where("availability = ?", true).
		Order("RANDOM()").
		Limit(10).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, apperrors.NewNotFound("No books available.")
	}

	s.setCache(cacheKey, books, 1*time.Minute)
	return books, nil
}

// SearchByTitle returns the first ten title matches for typeahead search.
func (s *BookService) SearchByTitle(title string) ([]models.BookModel, error) {
	query := s.db.Model(&models.BookModel{})
	if title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}

	var books []models.BookModel
	if err := query.Order("title ASC").Limit(10).Find(&books).Error; err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, apperrors.NewNotFound("No books found.")
	}
	return books, nil
}

// UpdateBook rewrites the descriptive fields of a catalog entry. The
// availability flag is deliberately not updatable here; only the lifecycle
// engine flips it.
func (s *BookService) UpdateBook(dto dtos.UpdateBookDTO) (*models.BookModel, error) {
	if err := validateBookFields(dto.Title, dto.Author, dto.Category, dto.Summary); err != nil {
		return nil, err
	}

	var book models.BookModel
	if err := s.db.First(&book, "uid = ?", dto.Uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Book not found.")
		}
		return nil, err
	}

	summary := dto.Summary
	updates := map[string]interface{}{
		"title":      dto.Title,
		"author":     dto.Author,
		"category":   dto.Category,
		"summary":    summary,
		"updated_at": time.Now().UTC(),
	}
	if err := s.db.Model(&book).Updates(updates).Error; err != nil {
		return nil, err
	}
	book.Title = dto.Title
	book.Author = dto.Author
	book.Category = dto.Category
	book.Summary = &summary

	s.InvalidateBookCache()
	return &book, nil
}

// DeleteBook removes a catalog entry.
func (s *BookService) DeleteBook(id uuid.UUID) error {
	var book models.BookModel
	if err := s.db.First(&book, "uid = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Book not found.")
		}
		return err
	}

	if err := s.db.Delete(&models.BookModel{}, "uid = ?", id).Error; err != nil {
		return err
	}

	s.InvalidateBookCache()
	return nil
}

// ImportBooksFromExcel bulk-loads the catalog from an .xlsx upload. Each row
// of the first sheet is Title | Author | Category | Summary; the first row is
// treated as a header and skipped. Bad rows are collected and reported
// without aborting the rest of the import.
func (s *BookService) ImportBooksFromExcel(adminID uuid.UUID, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %s: %w", sheet, err)
	}

	result := &ImportResult{Imported: 0, Errors: []string{}}

	for i, row := range rows {
		// Header row or empty row
		if i == 0 || len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		cell := func(idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		title := cell(0)
		author := cell(1)
		category := cell(2)
		summary := cell(3)

		if err := validateBookFields(title, author, category, summary); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		book := models.BookModel{
			Title:        title,
			Author:       author,
			Category:     category,
			Summary:      &summary,
			Availability: true,
			AdminID:      adminID,
		}
		if err := s.db.Create(&book).Error; err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Imported++
	}

	s.InvalidateBookCache()
	return result, nil
}
