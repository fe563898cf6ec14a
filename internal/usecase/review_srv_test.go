package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"servilink/internal/authz"
	"servilink/internal/data/entity"
	"servilink/internal/dto/request"
	"servilink/internal/usecase"
	"servilink/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func reviewRequest(bookingID uuid.UUID, rating int) *request.CreateReviewRequest {
	return &request.CreateReviewRequest{
		BookingID: bookingID.String(),
		Rating:    rating,
	}
}

func TestCreateReviewRequiresCompletedOwnBooking(t *testing.T) {
	repo, users, services, bookings, _ := newTestRepo()
	svc := usecase.NewReviewService(repo, zap.NewNop())

	client := seedUser(users, authz.RoleClient)
	other := seedUser(users, authz.RoleClient)
	provider := seedUser(users, authz.RoleProvider)
	offered := seedService(services, provider.ID, 50.0)

	pending := seedBooking(bookings, client.ID, provider.ID, offered.ID, entity.BookingStatusPending, 50.0)
	completed := seedBooking(bookings, client.ID, provider.ID, offered.ID, entity.BookingStatusCompleted, 50.0)

	// Nonexistent booking
	_, err := svc.CreateReview(context.Background(), principalFor(client), reviewRequest(uuid.New(), 4))
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("unknown booking: got %v, want ErrInvalidState", err)
	}

	// Booking not completed
	_, err = svc.CreateReview(context.Background(), principalFor(client), reviewRequest(pending.ID, 4))
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("pending booking: got %v, want ErrInvalidState", err)
	}

	// Someone else's booking
	_, err = svc.CreateReview(context.Background(), principalFor(other), reviewRequest(completed.ID, 4))
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("foreign booking: got %v, want ErrInvalidState", err)
	}

	// The eligible case succeeds
	resp, err := svc.CreateReview(context.Background(), principalFor(client), reviewRequest(completed.ID, 4))
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if resp.Rating != 4 {
		t.Errorf("rating = %d, want 4", resp.Rating)
	}
	if resp.ProviderID != provider.ID.String() {
		t.Errorf("provider id = %s, want %s", resp.ProviderID, provider.ID)
	}
}

func TestCreateReviewOnePerBooking(t *testing.T) {
	repo, users, services, bookings, _ := newTestRepo()
	svc := usecase.NewReviewService(repo, zap.NewNop())

	client := seedUser(users, authz.RoleClient)
	provider := seedUser(users, authz.RoleProvider)
	offered := seedService(services, provider.ID, 50.0)
	completed := seedBooking(bookings, client.ID, provider.ID, offered.ID, entity.BookingStatusCompleted, 50.0)

	if _, err := svc.CreateReview(context.Background(), principalFor(client), reviewRequest(completed.ID, 5)); err != nil {
		t.Fatalf("first review: %v", err)
	}

	_, err := svc.CreateReview(context.Background(), principalFor(client), reviewRequest(completed.ID, 2))
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("second review: got %v, want ErrConflict", err)
	}
}

func TestReviewAggregateRecompute(t *testing.T) {
	repo, users, services, bookings, _ := newTestRepo()
	svc := usecase.NewReviewService(repo, zap.NewNop())

	client := seedUser(users, authz.RoleClient)
	provider := seedUser(users, authz.RoleProvider)
	offered := seedService(services, provider.ID, 50.0)

	ratings := []int{5, 3, 4}
	for _, rating := range ratings {
		booking := seedBooking(bookings, client.ID, provider.ID, offered.ID, entity.BookingStatusCompleted, 50.0)
		if _, err := svc.CreateReview(context.Background(), principalFor(client), reviewRequest(booking.ID, rating)); err != nil {
			t.Fatalf("CreateReview(rating=%d): %v", rating, err)
		}
	}

	stored, _ := users.FindByID(context.Background(), provider.ID)
	if stored.ReviewCount != 3 {
		t.Errorf("review count = %d, want 3", stored.ReviewCount)
	}
	if stored.Rating != 4.0 {
		t.Errorf("rating = %v, want 4.0", stored.Rating)
	}

	listed, err := svc.GetProviderReviews(context.Background(), provider.ID.String(),
		&request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("GetProviderReviews: %v", err)
	}
	if listed.Summary.Total != 3 || listed.Summary.AverageRating != 4.0 {
		t.Errorf("summary = {%d, %v}, want {3, 4.0}",
			listed.Summary.Total, listed.Summary.AverageRating)
	}
}

func TestProviderWithoutReviewsHasZeroAggregate(t *testing.T) {
	repo, users, _, _, _ := newTestRepo()
	svc := usecase.NewReviewService(repo, zap.NewNop())

	provider := seedUser(users, authz.RoleProvider)

	listed, err := svc.GetProviderReviews(context.Background(), provider.ID.String(),
		&request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("GetProviderReviews: %v", err)
	}
	if listed.Summary.Total != 0 || listed.Summary.AverageRating != 0 {
		t.Errorf("empty summary = {%d, %v}, want {0, 0}",
			listed.Summary.Total, listed.Summary.AverageRating)
	}
	if len(listed.Data) != 0 {
		t.Errorf("empty provider has %d reviews listed", len(listed.Data))
	}
}

func TestDeleteReviewRecomputesAggregate(t *testing.T) {
	repo, users, services, bookings, _ := newTestRepo()
	svc := usecase.NewReviewService(repo, zap.NewNop())

	client := seedUser(users, authz.RoleClient)
	provider := seedUser(users, authz.RoleProvider)
	offered := seedService(services, provider.ID, 50.0)

	booking1 := seedBooking(bookings, client.ID, provider.ID, offered.ID, entity.BookingStatusCompleted, 50.0)
	booking2 := seedBooking(bookings, client.ID, provider.ID, offered.ID, entity.BookingStatusCompleted, 50.0)

	first, err := svc.CreateReview(context.Background(), principalFor(client), reviewRequest(booking1.ID, 5))
	if err != nil {
		t.Fatalf("first review: %v", err)
	}
	if _, err := svc.CreateReview(context.Background(), principalFor(client), reviewRequest(booking2.ID, 1)); err != nil {
		t.Fatalf("second review: %v", err)
	}

	if err := svc.DeleteReview(context.Background(), principalFor(client), first.ID); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}

	stored, _ := users.FindByID(context.Background(), provider.ID)
	if stored.ReviewCount != 1 {
		t.Errorf("review count after delete = %d, want 1", stored.ReviewCount)
	}
	if stored.Rating != 1.0 {
		t.Errorf("rating after delete = %v, want 1.0", stored.Rating)
	}
}

func TestDeleteReviewOnlyByAuthorOrAdmin(t *testing.T) {
	repo, users, services, bookings, _ := newTestRepo()
	svc := usecase.NewReviewService(repo, zap.NewNop())

	client := seedUser(users, authz.RoleClient)
	other := seedUser(users, authz.RoleClient)
	provider := seedUser(users, authz.RoleProvider)
	admin := seedUser(users, authz.RoleAdmin)
	offered := seedService(services, provider.ID, 50.0)

	booking1 := seedBooking(bookings, client.ID, provider.ID, offered.ID, entity.BookingStatusCompleted, 50.0)
	booking2 := seedBooking(bookings, client.ID, provider.ID, offered.ID, entity.BookingStatusCompleted, 50.0)

	r1, err := svc.CreateReview(context.Background(), principalFor(client), reviewRequest(booking1.ID, 5))
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	r2, err := svc.CreateReview(context.Background(), principalFor(client), reviewRequest(booking2.ID, 3))
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	if err := svc.DeleteReview(context.Background(), principalFor(other), r1.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("other client delete: got %v, want ErrForbidden", err)
	}
	if err := svc.DeleteReview(context.Background(), principalFor(provider), r1.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("provider delete: got %v, want ErrForbidden", err)
	}

	if err := svc.DeleteReview(context.Background(), principalFor(client), r1.ID); err != nil {
		t.Errorf("author delete: %v", err)
	}
	if err := svc.DeleteReview(context.Background(), principalFor(admin), r2.ID); err != nil {
		t.Errorf("admin delete: %v", err)
	}

	if err := svc.DeleteReview(context.Background(), principalFor(client), uuid.New().String()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing review: got %v, want ErrNotFound", err)
	}
}

func TestConcurrentReviewsKeepAggregateConsistent(t *testing.T) {
	repo, users, services, bookings, _ := newTestRepo()
	svc := usecase.NewReviewService(repo, zap.NewNop())

	provider := seedUser(users, authz.RoleProvider)
	offered := seedService(services, provider.ID, 50.0)

	const n = 20
	clients := make([]*entity.User, n)
	bookingIDs := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		clients[i] = seedUser(users, authz.RoleClient)
		b := seedBooking(bookings, clients[i].ID, provider.ID, offered.ID, entity.BookingStatusCompleted, 50.0)
		bookingIDs[i] = b.ID
	}

	errCh := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rating := (i % 5) + 1
			if _, err := svc.CreateReview(context.Background(), principalFor(clients[i]), reviewRequest(bookingIDs[i], rating)); err != nil {
				errCh <- fmt.Errorf("review %d: %w", i, err)
			}
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Error(err)
	}

	stored, _ := users.FindByID(context.Background(), provider.ID)
	if stored.ReviewCount != n {
		t.Errorf("review count = %d, want %d", stored.ReviewCount, n)
	}

	// n=20 spreads ratings 1..5 evenly, so the mean is exactly 3.
	if stored.Rating != 3.0 {
		t.Errorf("rating = %v, want 3.0", stored.Rating)
	}
}
