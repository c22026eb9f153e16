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

type BorrowerController struct {
	service *services.BorrowerService
}

func NewBorrowerController(service *services.BorrowerService) *BorrowerController {
	return &BorrowerController{service: service}
}

// RegisterBorrower handles POST requests to register a borrower.
func (c *BorrowerController) RegisterBorrower(ctx *gin.Context) {
	var req dtos.BorrowerRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error(err.Error()))
		return
	}

	borrower, err := c.service.RegisterBorrower(&req)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusCreated, dtos.Success("Borrower registered successfully", borrower))
}

// GetBorrowers handles GET requests for all active borrowers.
func (c *BorrowerController) GetBorrowers(ctx *gin.Context) {
	borrowers, err := c.service.GetAllBorrowers()
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Borrowers fetched successfully", borrowers))
}

// SearchBorrowers handles GET requests matching name or email.
func (c *BorrowerController) SearchBorrowers(ctx *gin.Context) {
	term := ctx.Query("q")
	if term == "" {
		ctx.JSON(http.StatusBadRequest, dtos.Error("query parameter q is required"))
		return
	}

	borrowers, err := c.service.SearchBorrowers(term)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Borrowers fetched successfully", borrowers))
}

// GetBorrowerByID handles GET requests for a single borrower.
func (c *BorrowerController) GetBorrowerByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error("Invalid borrower ID"))
		return
	}

	borrower, err := c.service.GetBorrowerByID(id)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Borrower fetched successfully", borrower))
}

// GetBorrowersWithOverdueBooks handles GET requests for borrowers holding
// overdue loans.
func (c *BorrowerController) GetBorrowersWithOverdueBooks(ctx *gin.Context) {
	borrowers, err := c.service.GetBorrowersWithOverdueBooks(time.Now())
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Borrowers fetched successfully", borrowers))
}

// UpdateBorrower handles PUT requests to edit a borrower.
func (c *BorrowerController) UpdateBorrower(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error("Invalid borrower ID"))
		return
	}

	var req dtos.BorrowerRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error(err.Error()))
		return
	}

	borrower, err := c.service.UpdateBorrower(id, &req)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Borrower updated successfully", borrower))
}

// DeactivateBorrower handles DELETE requests; removal is a soft deactivation.
func (c *BorrowerController) DeactivateBorrower(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error("Invalid borrower ID"))
		return
	}

	if err := c.service.DeactivateBorrower(id); err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Borrower deactivated successfully", nil))
}
