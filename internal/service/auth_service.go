package service

import (
	"go-farm-ledger/internal/apperr"
	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"
	"go-farm-ledger/pkg/jwt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	ResetPassword(username, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"` // Flat privileges array for easy checking
}

type TokenValidationResponse struct {
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type authService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, logger *zap.Logger) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{userRepo: userRepo, logger: logger}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, apperr.Validation("اسم المستخدم أو كلمة المرور غير صحيحة")
	}

	if !user.IsActive {
		return nil, apperr.Validation("user account is inactive")
	}

	if !user.CheckPassword(password) {
		return nil, apperr.Validation("اسم المستخدم أو كلمة المرور غير صحيحة")
	}

	roleCode := ""
	if user.Role != nil {
		roleCode = user.Role.Code
	}

	// Single session: a fresh token version invalidates older tokens.
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, roleCode, user.IsAdmin, user.GetPrivilegeCodes(), newTokenVersion)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("username", user.Username))

	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) ResetPassword(username, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return apperr.NotFound("user", username)
	}

	if !user.CheckPassword(oldPassword) {
		return apperr.Validation("current password is incorrect")
	}

	if len(newPassword) < 6 {
		return apperr.Validation("password must be at least 6 characters")
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	return s.userRepo.Update(user)
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, apperr.NotFound("user", claims.UserID)
	}

	if !user.IsActive {
		return nil, apperr.Validation("user account is inactive")
	}

	// Strict session check against the DB token version.
	if user.TokenVersion != claims.TokenVersion {
		return nil, apperr.Validation("session expired (logged in on another device)")
	}

	return &TokenValidationResponse{
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}
