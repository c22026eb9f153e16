package controllers

import (
	"net/http"
	"strconv"

	"github.com/LibroTrack/LibroTrack-Backend/src/apperrors"
	"github.com/LibroTrack/LibroTrack-Backend/src/dtos"
	"github.com/LibroTrack/LibroTrack-Backend/src/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookController struct {
	service *services.BookService
}

func NewBookController(service *services.BookService) *BookController {
	return &BookController{service: service}
}

func parsePaging(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "20"))
	return page, size
}

// CreateBook handles POST requests to add a book or merge copies into an
// existing title.
func (c *BookController) CreateBook(ctx *gin.Context) {
	var req dtos.BookRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error(err.Error()))
		return
	}

	book, err := c.service.AddBook(&req)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusCreated, dtos.Success("Book added successfully", book))
}

// GetBooks handles GET requests for the paginated, optionally filtered list.
func (c *BookController) GetBooks(ctx *gin.Context) {
	page, size := parsePaging(ctx)

	var category *string
	if v := ctx.Query("category"); v != "" {
		category = &v
	}
	var available *bool
	if v := ctx.Query("available"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dtos.Error("available must be true or false"))
			return
		}
		available = &parsed
	}

	result, err := c.service.GetBooksWithFilters(category, available, page, size)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Books fetched successfully", result))
}

// SearchBooks handles GET requests for title/author substring search.
func (c *BookController) SearchBooks(ctx *gin.Context) {
	page, size := parsePaging(ctx)

	result, err := c.service.SearchBooks(ctx.Query("title"), ctx.Query("author"), page, size)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Books fetched successfully", result))
}

// GetBookByID handles GET requests for a single book.
func (c *BookController) GetBookByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error("Invalid book ID"))
		return
	}

	book, err := c.service.GetBookByID(id)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Book fetched successfully", book))
}

// GetAvailableBooks handles GET requests for books with copies on the shelf.
func (c *BookController) GetAvailableBooks(ctx *gin.Context) {
	books, err := c.service.GetAvailableBooks()
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Available books fetched successfully", books))
}

// GetBooksByCategory handles GET requests for all books in a category.
func (c *BookController) GetBooksByCategory(ctx *gin.Context) {
	books, err := c.service.GetBooksByCategory(ctx.Param("category"))
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Books fetched successfully", books))
}

// UpdateBook handles PUT requests to edit a book.
func (c *BookController) UpdateBook(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error("Invalid book ID"))
		return
	}

	var req dtos.BookRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error(err.Error()))
		return
	}

	book, err := c.service.UpdateBook(id, &req)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Book updated successfully", book))
}

// DeleteBook handles DELETE requests; removal is a soft delete.
func (c *BookController) DeleteBook(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error("Invalid book ID"))
		return
	}

	if err := c.service.DeleteBook(id); err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Book deleted successfully", nil))
}

// ImportBooks handles POST requests with an .xlsx upload of catalog rows.
func (c *BookController) ImportBooks(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error("file is required"))
		return
	}

	src, err := file.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error("could not open uploaded file"))
		return
	}
	defer src.Close()

	result, err := c.service.ImportBooksFromExcel(src)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Import finished", result))
}
