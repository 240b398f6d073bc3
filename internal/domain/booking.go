package domain

import (
	"context"
	"errors"
	"time"
)

// ErrEventNotFound is returned when a booking references an event that does
// not exist. Detected before any write.
var ErrEventNotFound = errors.New("referenced event does not exist")

// Booking records intent to attend an event, keyed by event and email.
// Email is stored trimmed and lowercased. Bookings are immutable once created.
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingRepository defines the interface for booking storage.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
	// DeleteAll removes every booking. Used by the seed tool only.
	DeleteAll(ctx context.Context) error
}

// BookingService defines the application-level booking operations.
type BookingService interface {
	CreateBooking(ctx context.Context, eventID, email string) (*Booking, error)
	ListBookingsByEvent(ctx context.Context, eventID string) ([]*Booking, error)
}
