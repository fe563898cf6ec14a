package usecase_test

import (
	"context"
	"sync"
	"time"

	"servilink/internal/authz"
	"servilink/internal/data/entity"
	"servilink/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repositories backing the service tests. The review fake mirrors
// the production contract: every insert or delete recomputes the provider
// aggregate together with the write.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, role authz.Role) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	services map[uuid.UUID]*entity.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*entity.Service)}
}

func (f *fakeServiceRepo) Create(ctx context.Context, service *entity.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.services[id], nil
}

func (f *fakeServiceRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Service
	for _, s := range f.services {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeServiceRepo) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Service
	for _, s := range f.services {
		if s.ProviderID == providerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) FindByCategoryID(ctx context.Context, categoryID uuid.UUID, limit, offset int) ([]*entity.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Service
	for _, s := range f.services {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.services)), nil
}

func (f *fakeServiceRepo) Update(ctx context.Context, service *entity.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.services, id)
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) find(id uuid.UUID) *entity.Booking {
	for _, b := range f.bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.find(id), nil
}

func (f *fakeBookingRepo) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.find(id)
	if b == nil {
		return nil, nil
	}
	return &entity.BookingDetail{Booking: *b}, nil
}

func (f *fakeBookingRepo) toDetails(bookings []*entity.Booking) []*entity.BookingDetail {
	out := make([]*entity.BookingDetail, len(bookings))
	for i, b := range bookings {
		out[i] = &entity.BookingDetail{Booking: *b}
	}
	return out
}

func (f *fakeBookingRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.BookingDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.toDetails(f.bookings), nil
}

func (f *fakeBookingRepo) FindByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.ClientID == clientID {
			out = append(out, b)
		}
	}
	return f.toDetails(out), nil
}

func (f *fakeBookingRepo) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.ProviderID == providerID {
			out = append(out, b)
		}
	}
	return f.toDetails(out), nil
}

func (f *fakeBookingRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.bookings {
		if b.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.bookings {
		if b.ProviderID == providerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b := f.find(bookingID); b != nil {
		b.Status = status
	}
	return nil
}

func (f *fakeBookingRepo) UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, status entity.PaymentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b := f.find(bookingID); b != nil {
		b.PaymentStatus = status
	}
	return nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.bookings {
		if b.ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeBookingRepo) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.bookings {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) SumCompletedAmount(ctx context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum float64
	for _, b := range f.bookings {
		if b.Status == entity.BookingStatusCompleted {
			sum += b.TotalAmount
		}
	}
	return sum, nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []*entity.Review
	users   *fakeUserRepo
}

func newFakeReviewRepo(users *fakeUserRepo) *fakeReviewRepo {
	return &fakeReviewRepo{users: users}
}

// recompute mirrors the transactional aggregate update: the provider's rating
// and review_count are derived from the full review set, never adjusted
// incrementally. Caller holds f.mu.
func (f *fakeReviewRepo) recompute(providerID uuid.UUID) {
	var sum, count int64
	for _, r := range f.reviews {
		if r.ProviderID == providerID {
			sum += int64(r.Rating)
			count++
		}
	}

	f.users.mu.Lock()
	defer f.users.mu.Unlock()
	if u, ok := f.users.users[providerID]; ok {
		if count == 0 {
			u.Rating = 0
		} else {
			u.Rating = float64(sum) / float64(count)
		}
		u.ReviewCount = count
	}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews = append(f.reviews, review)
	f.recompute(review.ProviderID)
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.BookingID == bookingID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Review
	for _, r := range f.reviews {
		if r.ProviderID == providerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.reviews {
		if r.ProviderID == providerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReviewRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.reviews)), nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID, providerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.reviews {
		if r.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			break
		}
	}
	f.recompute(providerID)
	return nil
}

func (f *fakeReviewRepo) GetProviderReviewStats(ctx context.Context, providerID uuid.UUID) (*entity.ProviderReviewStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum, count int64
	for _, r := range f.reviews {
		if r.ProviderID == providerID {
			sum += int64(r.Rating)
			count++
		}
	}

	stats := &entity.ProviderReviewStats{ReviewCount: count}
	if count > 0 {
		stats.AverageRating = float64(sum) / float64(count)
	}
	return stats, nil
}

// newTestRepo assembles the fakes behind the repository facade.
func newTestRepo() (*repository.Repository, *fakeUserRepo, *fakeServiceRepo, *fakeBookingRepo, *fakeReviewRepo) {
	users := newFakeUserRepo()
	services := newFakeServiceRepo()
	bookings := newFakeBookingRepo()
	reviews := newFakeReviewRepo(users)

	repo := &repository.Repository{
		User:    users,
		Service: services,
		Booking: bookings,
		Review:  reviews,
	}
	return repo, users, services, bookings, reviews
}

func seedUser(users *fakeUserRepo, role authz.Role) *entity.User {
	u := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:     "Test " + string(role),
		Email:    uuid.New().String() + "@example.com",
		Role:     role,
		IsActive: true,
	}
	users.Create(context.Background(), u)
	return u
}

func seedService(services *fakeServiceRepo, providerID uuid.UUID, price float64) *entity.Service {
	s := &entity.Service{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ProviderID: providerID,
		CategoryID: uuid.New(),
		Title:      "Home cleaning",
		Price:      price,
		IsActive:   true,
	}
	services.Create(context.Background(), s)
	return s
}

func seedBooking(bookings *fakeBookingRepo, clientID, providerID, serviceID uuid.UUID, status entity.BookingStatus, amount float64) *entity.Booking {
	b := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ClientID:      clientID,
		ProviderID:    providerID,
		ServiceID:     serviceID,
		BookingDate:   "2026-09-15",
		BookingTime:   "10:00",
		Duration:      60,
		Status:        status,
		Address:       "12 Rue de la Paix",
		TotalAmount:   amount,
		PaymentStatus: entity.PaymentStatusPending,
	}
	bookings.Create(context.Background(), b)
	return b
}
