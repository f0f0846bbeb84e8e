package services

import (
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/utils"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidEmail    = errors.New("no account with that email")
	ErrInvalidPassword = errors.New("password incorrect")
)

// AuthService owns account creation and credential checks. Session
// establishment stays in the handlers.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register creates a new account. The email must not already be in use.
func (s *AuthService) Register(email, name, password string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Name:     name,
		Password: hash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// Unique index is the backstop for a concurrent register
		return nil, ErrEmailTaken
	}
	return &user, nil
}

// Login resolves the account and checks the password against its hash.
// The two failure modes are reported separately.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidEmail
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidPassword
	}
	return &user, nil
}
