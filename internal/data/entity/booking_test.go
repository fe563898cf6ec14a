package entity_test

import (
	"testing"

	"servilink/internal/data/entity"
)

func TestBookingStatusValid(t *testing.T) {
	valid := []entity.BookingStatus{
		entity.BookingStatusPending,
		entity.BookingStatusConfirmed,
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
		entity.BookingStatusRejected,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}

	if entity.BookingStatus("expired").Valid() {
		t.Error("unknown status should not be valid")
	}
	if entity.BookingStatus("").Valid() {
		t.Error("empty status should not be valid")
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	terminal := []entity.BookingStatus{
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
		entity.BookingStatusRejected,
	}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("status %q should be terminal", s)
		}
	}

	open := []entity.BookingStatus{
		entity.BookingStatusPending,
		entity.BookingStatusConfirmed,
	}
	for _, s := range open {
		if s.Terminal() {
			t.Errorf("status %q should not be terminal", s)
		}
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	all := []entity.BookingStatus{
		entity.BookingStatusPending,
		entity.BookingStatusConfirmed,
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
		entity.BookingStatusRejected,
	}

	allowed := map[entity.BookingStatus][]entity.BookingStatus{
		entity.BookingStatusPending: {
			entity.BookingStatusConfirmed,
			entity.BookingStatusCancelled,
			entity.BookingStatusRejected,
		},
		entity.BookingStatusConfirmed: {
			entity.BookingStatusCompleted,
			entity.BookingStatusCancelled,
		},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("CanTransitionTo(%q -> %q) = %v, want %v", from, to, got, want)
			}
		}
	}
}

// Terminal states must have no outgoing edges at all.
func TestTerminalStatesHaveNoTransitions(t *testing.T) {
	terminal := []entity.BookingStatus{
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
		entity.BookingStatusRejected,
	}
	targets := []entity.BookingStatus{
		entity.BookingStatusPending,
		entity.BookingStatusConfirmed,
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
		entity.BookingStatusRejected,
	}

	for _, from := range terminal {
		for _, to := range targets {
			if from.CanTransitionTo(to) {
				t.Errorf("terminal status %q should not transition to %q", from, to)
			}
		}
	}
}

func TestPaymentStatusValid(t *testing.T) {
	valid := []entity.PaymentStatus{
		entity.PaymentStatusPending,
		entity.PaymentStatusPaid,
		entity.PaymentStatusRefunded,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("payment status %q should be valid", s)
		}
	}

	if entity.PaymentStatus("failed").Valid() {
		t.Error("unknown payment status should not be valid")
	}
}
