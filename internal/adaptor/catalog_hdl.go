package adaptor

import (
	"encoding/json"
	"net/http"

	"servilink/internal/dto/request"
	"servilink/internal/usecase"
	"servilink/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ==================== CATEGORIES ====================

// ListCategories handles GET /api/categories. Public, no auth.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListCategories(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list categories")
		return
	}

	utils.ResponseSuccess(w, "Categories retrieved", resp)
}

// CreateCategory handles POST /api/categories. Admin only.
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Invalid create category request body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create category")
		return
	}

	utils.ResponseCreated(w, "Category created", resp)
}

// UpdateCategory handles PUT /api/categories/{id}. Admin only.
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "id")

	var req request.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Invalid update category request body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateCategory(r.Context(), categoryID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update category")
		return
	}

	utils.ResponseSuccess(w, "Category updated", resp)
}

// DeleteCategory handles DELETE /api/categories/{id}. Admin only.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "id")

	if err := h.service.DeleteCategory(r.Context(), categoryID); err != nil {
		handleServiceError(w, h.log, err, "delete category")
		return
	}

	utils.ResponseSuccess(w, "Category deleted", nil)
}

// ==================== SERVICES ====================

// ListServices handles GET /api/services. Public, no auth.
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category_id")
	req := paginationFromQuery(r)

	resp, err := h.service.ListServices(r.Context(), categoryID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "Services retrieved", resp)
}

// GetService handles GET /api/services/{id}. Public, no auth.
func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")

	resp, err := h.service.GetService(r.Context(), serviceID)
	if err != nil {
		handleServiceError(w, h.log, err, "get service")
		return
	}

	utils.ResponseSuccess(w, "Service retrieved", resp)
}

// CreateService handles POST /api/services. Providers only.
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Invalid create service request body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CreateService(r.Context(), principal, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create service")
		return
	}

	utils.ResponseCreated(w, "Service created", resp)
}

// UpdateService handles PUT /api/services/{id}
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	serviceID := chi.URLParam(r, "id")

	var req request.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Invalid update service request body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateService(r.Context(), principal, serviceID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "Service updated", resp)
}

// DeleteService handles DELETE /api/services/{id}
func (h *CatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	serviceID := chi.URLParam(r, "id")

	if err := h.service.DeleteService(r.Context(), principal, serviceID); err != nil {
		handleServiceError(w, h.log, err, "delete service")
		return
	}

	utils.ResponseSuccess(w, "Service deleted", nil)
}
