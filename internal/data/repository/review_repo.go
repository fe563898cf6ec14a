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

type ReviewRepository interface {
	// Create inserts the review and recomputes the provider aggregate in one
	// transaction, so the aggregate can never observe a half-applied write.
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	// Delete removes the review and recomputes the aggregate transactionally.
	Delete(ctx context.Context, id uuid.UUID, providerID uuid.UUID) error

	// Business queries
	GetProviderReviewStats(ctx context.Context, providerID uuid.UUID) (*entity.ProviderReviewStats, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

// recomputeProviderRating refreshes the denormalized aggregate on the provider
// row from the reviews table. Always a full recompute, never an increment:
// AVG/COUNT over current rows cannot drift, and COALESCE floors the empty set
// to rating 0, review_count 0.
const recomputeProviderRating = `
	UPDATE users
	SET rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE provider_id = $1), 0),
	    review_count = (SELECT COUNT(*) FROM reviews WHERE provider_id = $1)
	WHERE id = $1
`

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin review create transaction", zap.Error(err))
		return fmt.Errorf("begin review create: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO reviews (id, booking_id, client_id, provider_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.Exec(ctx, insert,
		review.ID,
		review.BookingID,
		review.ClientID,
		review.ProviderID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("booking_id", review.BookingID.String()),
			zap.String("provider_id", review.ProviderID.String()),
		)
		return fmt.Errorf("create review for booking %s: %w", review.BookingID.String(), err)
	}

	if _, err := tx.Exec(ctx, recomputeProviderRating, review.ProviderID); err != nil {
		r.log.Error("Failed to recompute provider rating",
			zap.Error(err),
			zap.String("provider_id", review.ProviderID.String()),
		)
		return fmt.Errorf("recompute rating for provider %s: %w", review.ProviderID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit review create", zap.Error(err))
		return fmt.Errorf("commit review create: %w", err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, booking_id, client_id, provider_id, rating, comment, created_at
		FROM reviews
		WHERE id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.BookingID,
		&review.ClientID,
		&review.ProviderID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, booking_id, client_id, provider_id, rating, comment, created_at
		FROM reviews
		WHERE booking_id = $1
		LIMIT 1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&review.ID,
		&review.BookingID,
		&review.ClientID,
		&review.ProviderID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find review by booking ID %s: %w", bookingID.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT id, booking_id, client_id, provider_id, rating, comment, created_at
		FROM reviews
		WHERE provider_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, providerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by provider ID",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews by provider ID %s: %w", providerID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.BookingID,
			&review.ClientID,
			&review.ProviderID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}

func (r *reviewRepository) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE provider_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, providerID).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews by provider ID",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return 0, fmt.Errorf("count reviews by provider ID %s: %w", providerID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return 0, fmt.Errorf("count reviews: %w", err)
	}

	return count, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID, providerID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin review delete transaction", zap.Error(err))
		return fmt.Errorf("begin review delete: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	if _, err := tx.Exec(ctx, recomputeProviderRating, providerID); err != nil {
		r.log.Error("Failed to recompute provider rating",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return fmt.Errorf("recompute rating for provider %s: %w", providerID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit review delete", zap.Error(err))
		return fmt.Errorf("commit review delete: %w", err)
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

func (r *reviewRepository) GetProviderReviewStats(ctx context.Context, providerID uuid.UUID) (*entity.ProviderReviewStats, error) {
	// Same AVG/COUNT the recompute uses, so the list summary and the stored
	// aggregate derive from one source of truth.
	query := `
		SELECT
			COALESCE(AVG(rating), 0) as average_rating,
			COUNT(*) as review_count
		FROM reviews
		WHERE provider_id = $1
	`

	var stats entity.ProviderReviewStats
	err := r.db.QueryRow(ctx, query, providerID).Scan(&stats.AverageRating, &stats.ReviewCount)
	if err != nil {
		r.log.Error("Failed to get provider review stats",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("get provider review stats for %s: %w", providerID.String(), err)
	}

	return &stats, nil
}
