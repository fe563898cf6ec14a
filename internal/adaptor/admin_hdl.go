package adaptor

import (
	"encoding/json"
	"net/http"

	"servilink/internal/usecase"
	"servilink/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	resp, err := h.service.ListUsers(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved", resp)
}

// GetStats handles GET /api/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetGlobalStats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get global stats")
		return
	}

	utils.ResponseSuccess(w, "Statistics retrieved", resp)
}

// ListPayments handles GET /api/admin/payments
func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	resp, err := h.service.ListPayments(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list payments")
		return
	}

	utils.ResponseSuccess(w, "Payments retrieved", resp)
}

// UpdatePaymentStatus handles PUT /api/admin/payments/{id}
func (h *AdminHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	var req struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Invalid update payment status request body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdatePaymentStatus(r.Context(), bookingID, req.PaymentStatus)
	if err != nil {
		handleServiceError(w, h.log, err, "update payment status")
		return
	}

	utils.ResponseSuccess(w, "Payment status updated", resp)
}
