package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"topic-board/config"
	"topic-board/models"
	"topic-board/repositories"
)

type AuthService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	GetProfile(username string) (*models.User, error)
	ChangePassword(username string, req models.ChangePasswordRequest) error
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	// Self-registration never grants elevated roles; seeding an admin is
	// the provisioning tool's job.
	if _, err := s.userRepo.CreateUser(req.Username, req.Password, models.DefaultRoles()); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUser(req.Username)
	if err != nil {
		return nil, err
	}

	// Auto-login after register.
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	ok, err := s.userRepo.VerifyUser(req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("login failed: %w", models.ErrInvalidCredential)
	}

	user, err := s.userRepo.GetUser(req.Username)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) GetProfile(username string) (*models.User, error) {
	return s.userRepo.GetUser(username)
}

func (s *authService) ChangePassword(username string, req models.ChangePasswordRequest) error {
	return s.userRepo.ChangePassword(username, req.OldPassword, req.NewPassword)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"roles":    user.Roles,
		"exp":      now.Add(config.JWTExpiration).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}
