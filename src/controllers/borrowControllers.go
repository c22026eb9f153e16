package controllers

import (
	"net/http"
	"time"

	"github.com/LibroTrack/LibroTrack-Backend/src/apperrors"
	"github.com/LibroTrack/LibroTrack-Backend/src/dtos"
	"github.com/LibroTrack/LibroTrack-Backend/src/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BorrowController struct {
	service *services.BorrowService
}

func NewBorrowController(service *services.BorrowService) *BorrowController {
	return &BorrowController{service: service}
}

// BorrowBook handles POST requests to open a loan.
func (c *BorrowController) BorrowBook(ctx *gin.Context) {
	var req dtos.BorrowRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error(err.Error()))
		return
	}

	record, err := c.service.BorrowBook(req.BorrowerId, req.BookId)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusCreated, dtos.Success("Book borrowed successfully", record))
}

// ReturnBook handles POST requests to close a loan and settle the fine.
func (c *BorrowController) ReturnBook(ctx *gin.Context) {
	var req dtos.ReturnRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error(err.Error()))
		return
	}

	record, err := c.service.ReturnBook(req.BorrowRecordId)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Book returned successfully", record))
}

// GetActiveBorrowRecords handles GET requests for all open loans.
func (c *BorrowController) GetActiveBorrowRecords(ctx *gin.Context) {
	records, err := c.service.GetActiveBorrowRecords()
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Active records fetched successfully", records))
}

// GetOverdueBorrowRecords handles GET requests for open loans past due.
func (c *BorrowController) GetOverdueBorrowRecords(ctx *gin.Context) {
	records, err := c.service.GetOverdueBorrowRecords(time.Now())
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Overdue records fetched successfully", records))
}

// GetBorrowHistoryByBorrower handles GET requests for a borrower's loan
// history.
func (c *BorrowController) GetBorrowHistoryByBorrower(ctx *gin.Context) {
	borrowerId, err := uuid.Parse(ctx.Param("borrowerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error("Invalid borrower ID"))
		return
	}

	records, err := c.service.GetBorrowHistoryByBorrower(borrowerId)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Borrow history fetched successfully", records))
}
