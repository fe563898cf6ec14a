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

const defaultBookingDuration = 60 // minutes

type BookingService interface {
	CreateBooking(ctx context.Context, principal authz.Principal, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, principal authz.Principal, bookingID string) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, principal authz.Principal, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBookingStatus(ctx context.Context, principal authz.Principal, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, principal authz.Principal, bookingID string) error
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, principal authz.Principal, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(errs)
	}

	if !authz.CanPerform(principal.Role, authz.ActionCreateBooking, true) {
		return nil, apperr.Forbiddenf("you cannot create bookings")
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apperr.Validation(map[string]string{"service_id": "Must be a valid UUID"})
	}

	// The service is the price source; it must exist at creation time.
	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to look up service", zap.Error(err), zap.String("service_id", req.ServiceID))
		return nil, err
	}
	if service == nil {
		return nil, apperr.NotFoundf("service %s not found", req.ServiceID)
	}
	if !service.IsActive {
		return nil, apperr.InvalidStatef("service %s is not active", req.ServiceID)
	}

	duration := defaultBookingDuration
	if req.Duration != nil {
		duration = *req.Duration
	}

	// total_amount is captured from the service price now and never
	// recomputed; later price changes must not touch existing bookings.
	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ClientID:      principal.ID,
		ProviderID:    service.ProviderID,
		ServiceID:     service.ID,
		BookingDate:   req.BookingDate,
		BookingTime:   req.BookingTime,
		Duration:      duration,
		Status:        entity.BookingStatusPending,
		Address:       req.Address,
		City:          req.City,
		Phone:         req.Phone,
		Notes:         req.Notes,
		TotalAmount:   service.Price,
		PaymentStatus: entity.PaymentStatusPending,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("client_id", principal.ID.String()),
			zap.String("service_id", req.ServiceID),
		)
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("client_id", principal.ID.String()),
		zap.String("service_id", req.ServiceID),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	resp := response.BookingToResponse(booking)
	resp.ServiceTitle = &service.Title
	resp.ServiceDescription = service.Description

	if provider, _ := s.repo.User.FindByID(ctx, service.ProviderID); provider != nil {
		resp.ProviderName = &provider.Name
	}

	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, principal authz.Principal, bookingID string) (*response.BookingResponse, error) {
	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperr.NotFoundf("booking %s not found", bookingID)
	}

	detail, err := s.repo.Booking.FindDetailByID(ctx, bookingUUID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, apperr.NotFoundf("booking %s not found", bookingID)
	}

	if !authz.CanPerform(principal.Role, authz.ActionReadBooking, ownsBooking(principal, &detail.Booking)) {
		return nil, apperr.Forbiddenf("you cannot access this booking")
	}

	resp := response.BookingDetailToResponse(detail)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, principal authz.Principal, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	// One visibility rule for every listing path: admins see all bookings,
	// providers see bookings for their services, clients see their own.
	var (
		details []*entity.BookingDetail
		total   int64
		err     error
	)

	switch principal.Role {
	case authz.RoleAdmin:
		details, err = s.repo.Booking.FindAll(ctx, limit, offset)
		if err == nil {
			total, err = s.repo.Booking.CountAll(ctx)
		}
	case authz.RoleProvider:
		details, err = s.repo.Booking.FindByProviderID(ctx, principal.ID, limit, offset)
		if err == nil {
			total, err = s.repo.Booking.CountByProviderID(ctx, principal.ID)
		}
	default:
		details, err = s.repo.Booking.FindByClientID(ctx, principal.ID, limit, offset)
		if err == nil {
			total, err = s.repo.Booking.CountByClientID(ctx, principal.ID)
		}
	}

	if err != nil {
		s.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("user_id", principal.ID.String()),
			zap.String("role", string(principal.Role)),
		)
		return nil, err
	}

	bookingResponses := make([]response.BookingResponse, len(details))
	for i, detail := range details {
		bookingResponses[i] = response.BookingDetailToResponse(detail)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, principal authz.Principal, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking status validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(errs)
	}

	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperr.NotFoundf("booking %s not found", bookingID)
	}

	newStatus := entity.BookingStatus(req.Status)

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFoundf("booking %s not found", bookingID)
	}

	action, ok := transitionAction(newStatus)
	if !ok {
		return nil, apperr.Validation(map[string]string{"status": "Unknown booking status"})
	}

	if !authz.CanPerform(principal.Role, action, ownsBooking(principal, booking)) {
		return nil, apperr.Forbiddenf("you cannot change this booking to %s", newStatus)
	}

	// Terminal states have no outgoing edges.
	if !booking.Status.CanTransitionTo(newStatus) {
		return nil, apperr.InvalidStatef("cannot change booking status from %s to %s",
			booking.Status, newStatus)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, bookingUUID, newStatus); err != nil {
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("status", req.Status),
		)
		return nil, err
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("from", string(booking.Status)),
		zap.String("to", req.Status),
		zap.String("user_id", principal.ID.String()),
	)

	detail, err := s.repo.Booking.FindDetailByID(ctx, bookingUUID)
	if err != nil || detail == nil {
		// The update succeeded; fall back to the pre-join row.
		booking.Status = newStatus
		resp := response.BookingToResponse(booking)
		return &resp, nil
	}

	resp := response.BookingDetailToResponse(detail)
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, principal authz.Principal, bookingID string) error {
	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return apperr.NotFoundf("booking %s not found", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return err
	}
	if booking == nil {
		return apperr.NotFoundf("booking %s not found", bookingID)
	}

	if !authz.CanPerform(principal.Role, authz.ActionDeleteBooking, ownsBooking(principal, booking)) {
		return apperr.Forbiddenf("you cannot delete this booking")
	}

	if err := s.repo.Booking.Delete(ctx, bookingUUID); err != nil {
		s.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return err
	}

	s.log.Info("Booking deleted",
		zap.String("booking_id", bookingID),
		zap.String("user_id", principal.ID.String()),
	)

	return nil
}

// ==================== HELPERS ====================

// ownsBooking reports the principal's side of the engagement: the client who
// made the booking or the provider of the booked service.
func ownsBooking(principal authz.Principal, booking *entity.Booking) bool {
	switch principal.Role {
	case authz.RoleClient:
		return booking.ClientID == principal.ID
	case authz.RoleProvider:
		return booking.ProviderID == principal.ID
	case authz.RoleAdmin:
		return true
	}
	return false
}

func transitionAction(status entity.BookingStatus) (authz.Action, bool) {
	switch status {
	case entity.BookingStatusConfirmed:
		return authz.ActionConfirmBooking, true
	case entity.BookingStatusRejected:
		return authz.ActionRejectBooking, true
	case entity.BookingStatusCompleted:
		return authz.ActionCompleteBooking, true
	case entity.BookingStatusCancelled:
		return authz.ActionCancelBooking, true
	}
	return 0, false
}
