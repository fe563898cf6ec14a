package repository

import (
	"context"
	"fmt"

	"servilink/internal/data/entity"
	"servilink/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.BookingDetail, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error)
	CountAll(ctx context.Context) (int64, error)
	CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error)
	CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, status entity.PaymentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Business queries
	CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error)
	SumCompletedAmount(ctx context.Context) (float64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, client_id, provider_id, service_id, booking_date, booking_time, duration, status, address, city, phone, notes, total_amount, payment_status, created_at`

// Display fields come from LEFT JOINs so a deleted service or provider
// degrades the booking to a stub instead of dropping the row.
const bookingDetailSelect = `
	SELECT b.id, b.client_id, b.provider_id, b.service_id, b.booking_date, b.booking_time,
	       b.duration, b.status, b.address, b.city, b.phone, b.notes, b.total_amount,
	       b.payment_status, b.created_at,
	       s.title AS service_title, s.description AS service_description,
	       p.name AS provider_name, c.name AS client_name
	FROM bookings b
	LEFT JOIN services s ON s.id = b.service_id
	LEFT JOIN users p ON p.id = b.provider_id
	LEFT JOIN users c ON c.id = b.client_id
`

func scanBookingDetail(row pgx.Row) (*entity.BookingDetail, error) {
	var detail entity.BookingDetail
	err := row.Scan(
		&detail.ID,
		&detail.ClientID,
		&detail.ProviderID,
		&detail.ServiceID,
		&detail.BookingDate,
		&detail.BookingTime,
		&detail.Duration,
		&detail.Status,
		&detail.Address,
		&detail.City,
		&detail.Phone,
		&detail.Notes,
		&detail.TotalAmount,
		&detail.PaymentStatus,
		&detail.CreatedAt,
		&detail.ServiceTitle,
		&detail.ServiceDescription,
		&detail.ProviderName,
		&detail.ClientName,
	)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ClientID,
		booking.ProviderID,
		booking.ServiceID,
		booking.BookingDate,
		booking.BookingTime,
		booking.Duration,
		booking.Status,
		booking.Address,
		booking.City,
		booking.Phone,
		booking.Notes,
		booking.TotalAmount,
		booking.PaymentStatus,
		booking.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("client_id", booking.ClientID.String()),
			zap.String("service_id", booking.ServiceID.String()),
		)
		return fmt.Errorf("create booking for service %s by client %s: %w",
			booking.ServiceID.String(), booking.ClientID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.ProviderID,
		&booking.ServiceID,
		&booking.BookingDate,
		&booking.BookingTime,
		&booking.Duration,
		&booking.Status,
		&booking.Address,
		&booking.City,
		&booking.Phone,
		&booking.Notes,
		&booking.TotalAmount,
		&booking.PaymentStatus,
		&booking.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	query := bookingDetailSelect + ` WHERE b.id = $1`

	detail, err := scanBookingDetail(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking detail by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking detail by ID %s: %w", id.String(), err)
	}

	return detail, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.BookingDetail, error) {
	query := bookingDetailSelect + `
		ORDER BY b.created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryBookingDetails(ctx, query, limit, offset)
}

func (r *bookingRepository) FindByClientID(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	query := bookingDetailSelect + `
		WHERE b.client_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryBookingDetails(ctx, query, clientID, limit, offset)
}

func (r *bookingRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	query := bookingDetailSelect + `
		WHERE b.provider_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryBookingDetails(ctx, query, providerID, limit, offset)
}

func (r *bookingRepository) queryBookingDetails(ctx context.Context, query string, args ...any) ([]*entity.BookingDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.BookingDetail
	for rows.Next() {
		detail, err := scanBookingDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, detail)
	}

	return bookings, nil
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM bookings`)
}

func (r *bookingRepository) CountByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM bookings WHERE client_id = $1`, clientID)
}

func (r *bookingRepository) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM bookings WHERE provider_id = $1`, providerID)
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status)
}

func (r *bookingRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), status, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, status entity.PaymentStatus) error {
	query := `UPDATE bookings SET payment_status = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("payment_status", string(status)),
		)
		return fmt.Errorf("update booking %s payment status to %s: %w", bookingID.String(), status, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func (r *bookingRepository) SumCompletedAmount(ctx context.Context) (float64, error) {
	query := `SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE status = $1`

	var total float64
	if err := r.db.QueryRow(ctx, query, entity.BookingStatusCompleted).Scan(&total); err != nil {
		r.log.Error("Failed to sum completed booking amounts", zap.Error(err))
		return 0, fmt.Errorf("sum completed booking amounts: %w", err)
	}

	return total, nil
}
