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

type ReviewService interface {
	CreateReview(ctx context.Context, principal authz.Principal, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetProviderReviews(ctx context.Context, providerID string, req *request.PaginatedRequest) (*response.ProviderReviewsResponse, error)
	DeleteReview(ctx context.Context, principal authz.Principal, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, principal authz.Principal, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(errs)
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperr.Validation(map[string]string{"booking_id": "Must be a valid UUID"})
	}

	// Eligibility: the booking must exist, belong to the reviewer, and be
	// completed. All three failures look the same to the caller.
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to look up booking for review", zap.Error(err),
			zap.String("booking_id", req.BookingID))
		return nil, err
	}
	if booking == nil || booking.ClientID != principal.ID || booking.Status != entity.BookingStatusCompleted {
		return nil, apperr.InvalidStatef("booking invalid or not completed")
	}

	// One review per booking.
	existing, err := s.repo.Review.FindByBookingID(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err),
			zap.String("booking_id", req.BookingID))
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflictf("booking already reviewed")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BookingID:  bookingID,
		ClientID:   principal.ID,
		ProviderID: booking.ProviderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	// Insert and aggregate recompute share one transaction in the repository.
	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
			zap.String("client_id", principal.ID.String()),
		)
		return nil, err
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("booking_id", req.BookingID),
		zap.String("provider_id", booking.ProviderID.String()),
		zap.Int("rating", req.Rating),
	)

	clientName := ""
	if client, _ := s.repo.User.FindByID(ctx, principal.ID); client != nil {
		clientName = client.Name
	}

	resp := response.ReviewToResponse(review, clientName)
	return &resp, nil
}

func (s *reviewService) GetProviderReviews(ctx context.Context, providerID string, req *request.PaginatedRequest) (*response.ProviderReviewsResponse, error) {
	providerUUID, err := uuid.Parse(providerID)
	if err != nil {
		return nil, apperr.NotFoundf("provider %s not found", providerID)
	}

	reviews, err := s.repo.Review.FindByProviderID(ctx, providerUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get provider reviews",
			zap.Error(err),
			zap.String("provider_id", providerID),
		)
		return nil, err
	}

	// The summary derives from the same AVG/COUNT the aggregate recompute
	// uses, so the two can never diverge.
	stats, err := s.repo.Review.GetProviderReviewStats(ctx, providerUUID)
	if err != nil {
		s.log.Error("Failed to get provider review stats",
			zap.Error(err),
			zap.String("provider_id", providerID),
		)
		return nil, err
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		clientName := ""
		if client, _ := s.repo.User.FindByID(ctx, review.ClientID); client != nil {
			clientName = client.Name
		}
		reviewResponses[i] = response.ReviewToResponse(review, clientName)
	}

	return &response.ProviderReviewsResponse{
		Data: reviewResponses,
		Summary: response.ReviewSummary{
			Total:         stats.ReviewCount,
			AverageRating: stats.AverageRating,
		},
	}, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, principal authz.Principal, reviewID string) error {
	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return apperr.NotFoundf("review %s not found", reviewID)
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil {
		return err
	}
	if review == nil {
		return apperr.NotFoundf("review %s not found", reviewID)
	}

	owner := review.ClientID == principal.ID
	if !authz.CanPerform(principal.Role, authz.ActionDeleteReview, owner) {
		return apperr.Forbiddenf("you cannot delete this review")
	}

	// Delete and aggregate recompute share one transaction in the repository.
	if err := s.repo.Review.Delete(ctx, reviewUUID, review.ProviderID); err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return err
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("provider_id", review.ProviderID.String()),
		zap.String("user_id", principal.ID.String()),
	)

	return nil
}
