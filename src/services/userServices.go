package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mydeimos/elibrary-backend/src/apperrors"
	"github.com/mydeimos/elibrary-backend/src/dtos"
	"github.com/mydeimos/elibrary-backend/src/middleware"
	"github.com/mydeimos/elibrary-backend/src/models"
)

type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// RegisterUser creates a new account with a bcrypt-hashed password. Name and
// address are stored upper-cased, matching what the catalog screens display.
func (s *UserService) RegisterUser(req dtos.RegisterUserDTO) (*models.UserModel, error) {
	var emptyFields []string
	if strings.TrimSpace(req.Username) == "" {
		emptyFields = append(emptyFields, "Username")
	}
	if strings.TrimSpace(req.Password) == "" {
		emptyFields = append(emptyFields, "Password")
	}
	if strings.TrimSpace(req.Name) == "" {
		emptyFields = append(emptyFields, "Name")
	}
	if strings.TrimSpace(req.Address) == "" {
		emptyFields = append(emptyFields, "Address")
	}
	if len(emptyFields) > 0 {
		return nil, apperrors.NewConflict(fmt.Sprintf("%s field cannot be empty.", strings.Join(emptyFields, ", ")))
	}

	var existing models.UserModel
	err := s.db.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return nil, apperrors.NewConflict("The username is already in use.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Hash the password before saving
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.UserModel{
		Username: req.Username,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
		Name:     strings.ToUpper(req.Name),
		Address:  strings.ToUpper(req.Address),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// AuthenticateUser checks user credentials and returns a JWT token if valid.
// The same message covers an unknown username and a wrong password.
func (s *UserService) AuthenticateUser(username, password string) (string, error) {
	var emptyFields []string
	if strings.TrimSpace(username) == "" {
		emptyFields = append(emptyFields, "Username")
	}
	if strings.TrimSpace(password) == "" {
		emptyFields = append(emptyFields, "Password")
	}
	if len(emptyFields) > 0 {
		return "", apperrors.NewConflict(fmt.Sprintf("%s field cannot be empty.", strings.Join(emptyFields, ", ")))
	}

	var user models.UserModel
	result := s.db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", apperrors.NewUnauthorized("Invalid username or password.")
		}
		return "", result.Error
	}

	// Compare the provided password with the hashed password in the database
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.NewUnauthorized("Invalid username or password.")
	}

	claims := jwt.MapClaims{
		"uid":      user.Uid.String(),
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(60 * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(middleware.GetSecretKey()))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserByID retrieves a user profile.
func (s *UserService) GetUserByID(id uuid.UUID) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, "uid = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User not found.")
		}
		return nil, err
	}
	return &user, nil
}

// GetUserSummary aggregates a user's borrowing activity for the profile page.
func (s *UserService) GetUserSummary(userID uuid.UUID) (*dtos.UserSummaryDTO, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	summary := dtos.UserSummaryDTO{Username: user.Username}

	countRequests := func(cond string, args ...interface{}) (int64, error) {
		var n int64
		err := s.db.Model(&models.RequestModel{}).
			Where("user_id = ?", userID).
			Where(cond, args...).
			Count(&n).Error
		return n, err
	}

	if summary.TotalBooksBorrowed, err = countRequests("status <> ?", models.RequestPending); err != nil {
		return nil, err
	}
	if summary.TotalPendingRequests, err = countRequests("status = ?", models.RequestPending); err != nil {
		return nil, err
	}
	if summary.TotalAcceptedRequests, err = countRequests("status = ?", models.RequestAccepted); err != nil {
		return nil, err
	}
	if summary.TotalRejectedRequests, err = countRequests("status = ?", models.RequestRejected); err != nil {
		return nil, err
	}

	countTransactions := func(returnedCond string) (int64, error) {
		var n int64
		err := s.db.Model(&models.TransactionModel{}).
			Joins("JOIN requests ON requests.uid = transactions.request_id").
			Where("requests.user_id = ?", userID).
			Where(returnedCond).
			Count(&n).Error
		return n, err
	}

	if summary.TotalOngoingTransactions, err = countTransactions("transactions.returned_at IS NULL"); err != nil {
		return nil, err
	}
	if summary.TotalFinishedTransactions, err = countTransactions("transactions.returned_at IS NOT NULL"); err != nil {
		return nil, err
	}

	return &summary, nil
}

// IsAdmin reports whether the user holds the admin role.
func (s *UserService) IsAdmin(userID uuid.UUID) (bool, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}
