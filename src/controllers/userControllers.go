package controllers

import (
	"net/http"

	"github.com/LibroTrack/LibroTrack-Backend/src/apperrors"
	"github.com/LibroTrack/LibroTrack-Backend/src/dtos"
	"github.com/LibroTrack/LibroTrack-Backend/src/models"
	"github.com/LibroTrack/LibroTrack-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// CreateUser handles POST requests to register an API user.
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error(err.Error()))
		return
	}

	user := models.UserModel{Username: req.Username, Password: req.Password}
	created, err := c.service.CreateUser(&user)
	if err != nil {
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusCreated, dtos.Success("User created successfully",
		models.RegisterResponse{ID: created.Id, Username: created.Username}))
}

// AuthenticateUser handles POST requests to exchange credentials for a JWT.
func (c *UserController) AuthenticateUser(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dtos.Error(err.Error()))
		return
	}

	token, err := c.service.AuthenticateUser(req.Username, req.Password)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.ValidationError {
			ctx.JSON(http.StatusUnauthorized, dtos.Error("invalid username or password"))
			return
		}
		ctx.JSON(apperrors.HTTPStatus(err), dtos.Error(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dtos.Success("Login successful", gin.H{"token": token}))
}
