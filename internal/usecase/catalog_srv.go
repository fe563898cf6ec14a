package usecase

import (
	"context"
	"time"

	"servilink/internal/authz"
	"servilink/internal/data/entity"
	"servilink/internal/data/repository"
	"servilink/internal/dto/request"
	"servilink/internal/dto/response"
	"servilink/pkg/apperr"
	"servilink/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService manages the service/category reference data the booking core
// reads from. Categories are admin-managed; services belong to providers.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]response.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *request.CreateCategoryRequest) (*response.CategoryResponse, error)
	UpdateCategory(ctx context.Context, categoryID string, req *request.UpdateCategoryRequest) (*response.CategoryResponse, error)
	DeleteCategory(ctx context.Context, categoryID string) error

	ListServices(ctx context.Context, categoryID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ServiceResponse], error)
	GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error)
	CreateService(ctx context.Context, principal authz.Principal, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, principal authz.Principal, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error)
	DeleteService(ctx context.Context, principal authz.Principal, serviceID string) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

// ==================== CATEGORIES ====================

func (s *catalogService) ListCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list categories", zap.Error(err))
		return nil, err
	}

	responses := make([]response.CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = response.CategoryToResponse(category)
	}

	return responses, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req *request.CreateCategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create category validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(errs)
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	}

	if err := s.repo.Category.Create(ctx, category); err != nil {
		s.log.Error("Failed to create category", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}

	s.log.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, categoryID string, req *request.UpdateCategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update category validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(errs)
	}

	categoryUUID, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, apperr.NotFoundf("category %s not found", categoryID)
	}

	category, err := s.repo.Category.FindByID(ctx, categoryUUID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.NotFoundf("category %s not found", categoryID)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	if req.Icon != nil {
		category.Icon = req.Icon
	}

	if err := s.repo.Category.Update(ctx, category); err != nil {
		s.log.Error("Failed to update category", zap.Error(err), zap.String("category_id", categoryID))
		return nil, err
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, categoryID string) error {
	categoryUUID, err := uuid.Parse(categoryID)
	if err != nil {
		return apperr.NotFoundf("category %s not found", categoryID)
	}

	category, err := s.repo.Category.FindByID(ctx, categoryUUID)
	if err != nil {
		return err
	}
	if category == nil {
		return apperr.NotFoundf("category %s not found", categoryID)
	}

	if err := s.repo.Category.Delete(ctx, categoryUUID); err != nil {
		s.log.Error("Failed to delete category", zap.Error(err), zap.String("category_id", categoryID))
		return err
	}

	s.log.Info("Category deleted", zap.String("category_id", categoryID))
	return nil
}

// ==================== SERVICES ====================

func (s *catalogService) ListServices(ctx context.Context, categoryID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ServiceResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	var (
		services []*entity.Service
		err      error
	)

	if categoryID != "" {
		categoryUUID, parseErr := uuid.Parse(categoryID)
		if parseErr != nil {
			return nil, apperr.NotFoundf("category %s not found", categoryID)
		}
		services, err = s.repo.Service.FindByCategoryID(ctx, categoryUUID, limit, offset)
	} else {
		services, err = s.repo.Service.FindAll(ctx, limit, offset)
	}

	if err != nil {
		s.log.Error("Failed to list services", zap.Error(err))
		return nil, err
	}

	total, err := s.repo.Service.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count services", zap.Error(err))
		return nil, err
	}

	responses := make([]response.ServiceResponse, len(services))
	for i, service := range services {
		responses[i] = s.buildServiceResponse(ctx, service)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *catalogService) GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error) {
	serviceUUID, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, apperr.NotFoundf("service %s not found", serviceID)
	}

	service, err := s.repo.Service.FindByID(ctx, serviceUUID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperr.NotFoundf("service %s not found", serviceID)
	}

	resp := s.buildServiceResponse(ctx, service)
	return &resp, nil
}

func (s *catalogService) CreateService(ctx context.Context, principal authz.Principal, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create service validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(errs)
	}

	// Providers create services they own; the gate treats creation as
	// managing an owned service.
	if !authz.CanPerform(principal.Role, authz.ActionManageService, true) {
		return nil, apperr.Forbiddenf("only providers can create services")
	}

	categoryUUID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apperr.Validation(map[string]string{"category_id": "Must be a valid UUID"})
	}

	category, err := s.repo.Category.FindByID(ctx, categoryUUID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.NotFoundf("category %s not found", req.CategoryID)
	}

	now := time.Now()
	service := &entity.Service{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProviderID:  principal.ID,
		CategoryID:  categoryUUID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		City:        req.City,
		IsActive:    true,
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		s.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("provider_id", principal.ID.String()),
		)
		return nil, err
	}

	s.log.Info("Service created",
		zap.String("service_id", service.ID.String()),
		zap.String("provider_id", principal.ID.String()),
		zap.Float64("price", service.Price))

	resp := s.buildServiceResponse(ctx, service)
	return &resp, nil
}

func (s *catalogService) UpdateService(ctx context.Context, principal authz.Principal, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update service validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(errs)
	}

	service, err := s.findOwnedService(ctx, principal, serviceID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		categoryUUID, parseErr := uuid.Parse(*req.CategoryID)
		if parseErr != nil {
			return nil, apperr.Validation(map[string]string{"category_id": "Must be a valid UUID"})
		}
		service.CategoryID = categoryUUID
	}
	if req.Title != nil {
		service.Title = *req.Title
	}
	if req.Description != nil {
		service.Description = req.Description
	}
	if req.Price != nil {
		// Existing bookings keep the amount captured at creation time.
		service.Price = *req.Price
	}
	if req.City != nil {
		service.City = req.City
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	service.UpdatedAt = time.Now()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		s.log.Error("Failed to update service", zap.Error(err), zap.String("service_id", serviceID))
		return nil, err
	}

	resp := s.buildServiceResponse(ctx, service)
	return &resp, nil
}

func (s *catalogService) DeleteService(ctx context.Context, principal authz.Principal, serviceID string) error {
	service, err := s.findOwnedService(ctx, principal, serviceID)
	if err != nil {
		return err
	}

	if err := s.repo.Service.Delete(ctx, service.ID); err != nil {
		s.log.Error("Failed to delete service", zap.Error(err), zap.String("service_id", serviceID))
		return err
	}

	return nil
}

// ==================== HELPERS ====================

// findOwnedService loads a service and checks the principal may manage it.
func (s *catalogService) findOwnedService(ctx context.Context, principal authz.Principal, serviceID string) (*entity.Service, error) {
	serviceUUID, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, apperr.NotFoundf("service %s not found", serviceID)
	}

	service, err := s.repo.Service.FindByID(ctx, serviceUUID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperr.NotFoundf("service %s not found", serviceID)
	}

	owner := service.ProviderID == principal.ID
	if !authz.CanPerform(principal.Role, authz.ActionManageService, owner) {
		return nil, apperr.Forbiddenf("you cannot manage this service")
	}

	return service, nil
}

func (s *catalogService) buildServiceResponse(ctx context.Context, service *entity.Service) response.ServiceResponse {
	providerName := ""
	if provider, _ := s.repo.User.FindByID(ctx, service.ProviderID); provider != nil {
		providerName = provider.Name
	}

	categoryName := ""
	if category, _ := s.repo.Category.FindByID(ctx, service.CategoryID); category != nil {
		categoryName = category.Name
	}

	return response.ServiceToResponse(service, providerName, categoryName)
}
