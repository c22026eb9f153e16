package services

import (
	"errors"
	"time"

	"github.com/LibroTrack/LibroTrack-Backend/src/apperrors"
	"github.com/LibroTrack/LibroTrack-Backend/src/middleware"
	"github.com/LibroTrack/LibroTrack-Backend/src/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser registers an API user with a bcrypt-hashed password.
func (s *UserService) CreateUser(user *models.UserModel) (*models.UserModel, error) {
	if user.Username == "" || user.Password == "" {
		return nil, apperrors.New(apperrors.ValidationError, "username and password are required")
	}

	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to check username")
	}
	if count > 0 {
		return nil, apperrors.New(apperrors.Conflict, "username %s already exists", user.Username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to hash password")
	}
	user.Password = string(hashedPassword)

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to create user")
	}
	return user, nil
}

// AuthenticateUser checks credentials and returns a signed JWT valid for 12h.
func (s *UserService) AuthenticateUser(username, password string) (string, error) {
	var user models.UserModel
	result := s.db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", apperrors.New(apperrors.ValidationError, "invalid username or password")
		}
		return "", apperrors.Wrap(apperrors.Internal, result.Error, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.New(apperrors.ValidationError, "invalid username or password")
	}

	claims := jwt.MapClaims{
		"id":  user.Id,
		"exp": time.Now().Add(time.Hour * 12).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(middleware.GetSecretKey()))
	if err != nil {
		return "", apperrors.Wrap(apperrors.Internal, err, "failed to sign token")
	}

	return tokenString, nil
}
