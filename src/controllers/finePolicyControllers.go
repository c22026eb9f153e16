package controllers

import (
	"net/http"

	"github.com/LibroTrack/LibroTrack-Backend/src/apperrors"
	"github.com/LibroTrack/LibroTrack-Backend/src/dtos"
	"github.com/LibroTrack/LibroTrack-Backend/src/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FinePolicyController struct {
	service *services.FinePolicyService
}

func NewFinePolicyController(service *services.FinePolicyService) *FinePolicyController {
	return &FinePolicyController{service: service}
}

type finePolicyRequest struct {
	Category   string          `json:"category"`
	FinePerDay decimal.Decimal `json:"finePerDay"`
	IsActive   *bool           `json:"isActive"`
}

// GetPolicies handles GET requests for all active fine policies.
func (c *FinePolicyController) GetPolicies(ctx *gin.Context) {
	policies, err := c.service.GetAllPolicies()
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Fine policies fetched successfully", policies))
}

// GetPolicyByID handles GET requests for a single policy.
func (c *FinePolicyController) GetPolicyByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error("Invalid fine policy ID"))
		return
	}

	policy, err := c.service.GetPolicyByID(id)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Fine policy fetched successfully", policy))
}

// CreatePolicy handles POST requests to register a category rate.
func (c *FinePolicyController) CreatePolicy(ctx *gin.Context) {
	var req finePolicyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error(err.Error()))
		return
	}

	policy, err := c.service.CreatePolicy(req.Category, req.FinePerDay)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusCreated, dtos.Success("Fine policy created successfully", policy))
}

// UpdatePolicy handles PUT requests to change a rate or active flag.
func (c *FinePolicyController) UpdatePolicy(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error("Invalid fine policy ID"))
		return
	}

	var req finePolicyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error(err.Error()))
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	policy, err := c.service.UpdatePolicy(id, req.FinePerDay, active)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Fine policy updated successfully", policy))
}

// DeletePolicy handles DELETE requests; removal is a deactivation.
func (c *FinePolicyController) DeletePolicy(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error("Invalid fine policy ID"))
		return
	}

	if err := c.service.DeletePolicy(id); err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Fine policy deleted successfully", nil))
}
