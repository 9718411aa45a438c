package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mydeimos/elibrary-backend/src/dtos"
	"github.com/mydeimos/elibrary-backend/src/services"
)

type BookController struct {
	service *services.BookService
}

func NewBookController(service *services.BookService) *BookController {
	return &BookController{service: service}
}

// AddBook handles POST requests to add a single book (admin only)
func (c *BookController) AddBook(ctx *gin.Context) {
	var req dtos.AddBookDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	book, err := c.service.CreateBook(currentUserID(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondCreated(ctx, "The book has been successfully added to the e-library", gin.H{
		"title":        book.Title,
		"author":       book.Author,
		"category":     book.Category,
		"summary":      book.Summary,
		"availability": book.Availability,
	})
}

// AddMultipleBooks handles POST requests to add a batch of books (admin only)
func (c *BookController) AddMultipleBooks(ctx *gin.Context) {
	var req []dtos.AddBookDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	books, err := c.service.CreateBooks(currentUserID(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	items := make([]gin.H, 0, len(books))
	for _, book := range books {
		items = append(items, gin.H{
			"title":        book.Title,
			"author":       book.Author,
			"category":     book.Category,
			"summary":      book.Summary,
			"availability": book.Availability,
		})
	}
	respondCreated(ctx, "The books have been successfully added to the e-library", items)
}

// FilterBooks handles POST requests to search the catalog with pagination
func (c *BookController) FilterBooks(ctx *gin.Context) {
	var req dtos.BookFilterDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}
	if !req.Valid() {
		respondBadRequest(ctx, "Page and limit must both be at least 1.")
		return
	}

	books, total, err := c.service.FilterBooks(req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondPage(ctx, "Books found:", books, total, req.Pagination)
}

// BooksByUID handles POST requests to resolve a list of catalog ids
func (c *BookController) BooksByUID(ctx *gin.Context) {
	var req []dtos.UIDBookDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	ids := make([]uuid.UUID, 0, len(req))
	for _, item := range req {
		ids = append(ids, item.Uid)
	}

	books, err := c.service.GetBooksByUIDs(ids)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "Books found:", books)
}

// AvailableBooks handles GET requests for a random sample of available books
func (c *BookController) AvailableBooks(ctx *gin.Context) {
	books, err := c.service.GetAvailableBooks()
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "Available books:", books)
}

// SearchByTitle handles POST requests for typeahead title search
func (c *BookController) SearchByTitle(ctx *gin.Context) {
	var req dtos.SearchBookDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	books, err := c.service.SearchByTitle(req.Title)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "Books found:", books)
}

// UpdateBook handles PUT requests to edit a catalog entry (admin only)
func (c *BookController) UpdateBook(ctx *gin.Context) {
	var req dtos.UpdateBookDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	book, err := c.service.UpdateBook(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "The book has been successfully updated.", book)
}

// DeleteBook handles DELETE requests to remove a catalog entry (admin only)
func (c *BookController) DeleteBook(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid book ID")
		return
	}

	if err := c.service.DeleteBook(id); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "The book has been successfully deleted.", nil)
}

// ImportBooks handles POST requests with an .xlsx catalog upload (admin only)
func (c *BookController) ImportBooks(ctx *gin.Context) {
	file, _, err := ctx.Request.FormFile("catalog")
	if err != nil {
		respondBadRequest(ctx, "Missing 'catalog' file upload")
		return
	}
	defer file.Close()

	result, err := c.service.ImportBooksFromExcel(currentUserID(ctx), file)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "Catalog import finished.", gin.H{
		"imported": result.Imported,
		"errors":   result.Errors,
	})
}
