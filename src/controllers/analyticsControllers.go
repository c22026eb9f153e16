package controllers

import (
	"net/http"

	"github.com/LibroTrack/LibroTrack-Backend/src/apperrors"
	"github.com/LibroTrack/LibroTrack-Backend/src/dtos"
	"github.com/LibroTrack/LibroTrack-Backend/src/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnalyticsController struct {
	service *services.AnalyticsService
}

func NewAnalyticsController(service *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{service: service}
}

// GetTopBorrowedBooks handles GET requests for the five most-borrowed titles.
func (c *AnalyticsController) GetTopBorrowedBooks(ctx *gin.Context) {
	books, err := c.service.GetTopBorrowedBooks()
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Top borrowed books fetched successfully", books))
}

// GetBorrowerActivity handles GET requests for the per-borrower activity
// summary.
func (c *AnalyticsController) GetBorrowerActivity(ctx *gin.Context) {
	activity, err := c.service.GetBorrowerActivity()
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Borrower activity fetched successfully", activity))
}

// GetSimilarBooks handles GET requests for same-category suggestions.
func (c *AnalyticsController) GetSimilarBooks(ctx *gin.Context) {
	bookId, err := uuid.Parse(ctx.Param("bookId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error("Invalid book ID"))
		return
	}

	books, err := c.service.GetSimilarBooks(bookId)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Similar books fetched successfully", books))
}

// GetAvailabilitySummary handles GET requests for per-category copy counts.
func (c *AnalyticsController) GetAvailabilitySummary(ctx *gin.Context) {
	summary, err := c.service.GetAvailabilitySummary()
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Availability summary fetched successfully", summary))
}
