package services

import (
	"context"

	"shelter_backend/internal/auth"
	"shelter_backend/internal/logger"
	"shelter_backend/internal/models"
	"shelter_backend/internal/repositories"
	"shelter_backend/pkg/apperrors"
)

type RegisterRequest struct {
	Login      string `json:"login" validate:"required,min=3,max=100"`
	Password   string `json:"password" validate:"required,min=8"`
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	MiddleName string `json:"middle_name" validate:"max=100"`
	Email      string `json:"email" validate:"omitempty,email"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, login, password string) (*LoginResponse, error)
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
	GetUser(ctx context.Context, userID uint) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(ctx context.Context, login, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.RoleID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user authenticated", "user_id", user.ID, "login", user.Login)
	return &LoginResponse{AccessToken: token, User: user}, nil
}

// Register creates a regular user. Staff accounts are seeded or created
// out of band.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Login:        req.Login,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MiddleName:   req.MiddleName,
		Email:        req.Email,
		RoleID:       models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.Is(err, repositories.ErrLoginTaken) {
			return nil, apperrors.Duplicate("user", "Login already taken")
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("user registered", "user_id", user.ID, "login", user.Login)
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NotFound("user", "User not found")
		}
		return apperrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *authService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NotFound("user", "User not found")
		}
		return nil, apperrors.DatabaseError(err)
	}
	return user, nil
}
