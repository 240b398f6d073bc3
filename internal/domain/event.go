package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSlugConflict is returned by EventRepository.Create when the slug
// collides with an existing event. The event service resolves it
// transparently by probing alternate slugs.
var ErrSlugConflict = errors.New("slug already exists")

// ErrSlugExhausted is returned when the duplicate-slug resolver gives up
// after exhausting its candidate bound.
var ErrSlugExhausted = errors.New("could not find a free slug")

// Event represents a listed event with its descriptive and logistical metadata.
// Date is a normalized calendar date (YYYY-MM-DD) and Time a normalized
// 24-hour clock value (HH:MM).
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	ImageURL    string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	// Create inserts the event and sets its ID. Returns ErrSlugConflict when
	// the slug is already taken.
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// List returns all events, newest-created first.
	List(ctx context.Context) ([]*Event, error)
	// ListSimilar returns events other than eventID that share at least one
	// of the given tags.
	ListSimilar(ctx context.Context, eventID string, tags []string) ([]*Event, error)
	// DeleteAll removes every event. Used by the seed tool only.
	DeleteAll(ctx context.Context) error
}

// EventService defines the application-level event operations.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	ListSimilarEvents(ctx context.Context, slug string) ([]*Event, error)
}
