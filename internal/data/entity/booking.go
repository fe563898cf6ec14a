package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRejected  BookingStatus = "rejected"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted,
		BookingStatusCancelled, BookingStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo is the booking state machine:
// pending -> confirmed | cancelled | rejected, confirmed -> completed | cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled ||
			next == BookingStatusRejected
	case BookingStatusConfirmed:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

type Booking struct {
	BaseSimple
	ClientID      uuid.UUID     `db:"client_id"`
	ProviderID    uuid.UUID     `db:"provider_id"`
	ServiceID     uuid.UUID     `db:"service_id"`
	BookingDate   string        `db:"booking_date"` // YYYY-MM-DD
	BookingTime   string        `db:"booking_time"` // HH:MM
	Duration      int           `db:"duration"`     // minutes
	Status        BookingStatus `db:"status"`
	Address       string        `db:"address"`
	City          *string       `db:"city"`
	Phone         *string       `db:"phone"`
	Notes         *string       `db:"notes"`
	TotalAmount   float64       `db:"total_amount"`
	PaymentStatus PaymentStatus `db:"payment_status"`
}

// BookingDetail joins display fields onto a booking. A service or provider
// deleted after the booking was made leaves the fields nil; the booking row
// itself is still returned.
type BookingDetail struct {
	Booking
	ServiceTitle       *string `db:"service_title"`
	ServiceDescription *string `db:"service_description"`
	ProviderName       *string `db:"provider_name"`
	ClientName         *string `db:"client_name"`
}
