package usecase

import (
	"context"
	"fmt"
	"time"

	"servilink/internal/authz"
	"servilink/internal/data/entity"
	"servilink/internal/data/repository"
	"servilink/internal/dto/request"
	"servilink/internal/dto/response"
	"servilink/pkg/apperr"
	"servilink/pkg/token"
	"servilink/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Me(ctx context.Context, principal authz.Principal) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	tokens *token.Service
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, tokens *token.Service, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(errs)
	}

	// 2. Check email not already registered
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflictf("email already registered")
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Create user entity. Administrators are provisioned out of band,
	// never through registration.
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
		City:         req.City,
		Role:         authz.Role(req.Role),
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create account: %w", err)
	}

	// 5. Issue bearer credential
	tokenStr, expiresAt, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		s.log.Error("Failed to issue token after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))

	resp := response.AuthToResponse(user, tokenStr, expiresAt)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(errs)
	}

	// 2. Find user by email
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("find user: %w", err)
	}

	// Same failure for unknown email and wrong password.
	if user == nil || !utils.CheckPassword(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("email", req.Email))
		return nil, fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthenticated)
	}

	if !user.IsActive {
		return nil, apperr.Forbiddenf("account is disabled")
	}

	// 3. Issue bearer credential
	tokenStr, expiresAt, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		s.log.Error("Failed to issue token",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.AuthToResponse(user, tokenStr, expiresAt)
	return &resp, nil
}

func (s *authService) Me(ctx context.Context, principal authz.Principal) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFoundf("user %s not found", principal.ID.String())
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
