// internal/service/auth_service.go
package service

import (
	"context"
	"errors"

	"yanindayim/internal/middleware"
	"yanindayim/internal/model"
	"yanindayim/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.User, error)
	GetUser(ctx context.Context, userID uint) (*model.User, error)
}

type authService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

func NewAuthService(db *gorm.DB, userRepo repository.UserRepository) AuthService {
	return &authService{db: db, userRepo: userRepo}
}

// Register creates an account. A duplicate email surfaces as ErrConflict with
// a Turkish message; password hashing happens before the transaction so a
// bcrypt failure never leaves a half-written row.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Error hashing password", "error", err)
		return nil, model.ErrInternalServer
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("CONFLICT", "Bu e-posta adresi zaten kayıtlı", "email", model.ErrConflict)
		}
		logger.Error("Transaction failed for Register", "error", err)
		return nil, model.ErrInternalServer
	}

	return user, nil
}

// Login verifies credentials. Unknown email and wrong password produce the
// same error so the endpoint does not leak which accounts exist.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("INVALID_CREDENTIALS", "E-posta veya şifre hatalı", "", model.ErrInvalidInput)
		}
		logger.Error("Error finding user by email", "error", err)
		return nil, model.ErrInternalServer
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.NewAppError("INVALID_CREDENTIALS", "E-posta veya şifre hatalı", "", model.ErrInvalidInput)
	}

	return user, nil
}

func (s *authService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	return s.userRepo.FindByID(ctx, s.db, userID)
}
