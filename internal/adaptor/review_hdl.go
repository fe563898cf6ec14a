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

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// Create handles POST /api/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Invalid create review request body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CreateReview(r.Context(), principal, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created", resp)
}

// ListByProvider handles GET /api/reviews/{providerId}. Public, no auth.
func (h *ReviewHandler) ListByProvider(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerId")
	req := paginationFromQuery(r)

	resp, err := h.service.GetProviderReviews(r.Context(), providerID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list provider reviews")
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved", resp)
}

// Delete handles DELETE /api/reviews/{id}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviewID := chi.URLParam(r, "id")

	if err := h.service.DeleteReview(r.Context(), principal, reviewID); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "Review deleted", nil)
}
