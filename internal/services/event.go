package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"devevent/internal/domain"
)

// maxSlugAttempts bounds the duplicate-slug resolver.
const maxSlugAttempts = 1000

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

// CreateEvent validates and normalizes the event, derives its slug from the
// title when absent, and inserts it. A slug collision is resolved by probing
// numbered alternates against the store.
func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateEvent(event); err != nil {
		return err
	}

	if event.Slug == "" {
		event.Slug = slugBase(event.Title)
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	err := s.eventRepo.Create(ctx, event)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrSlugConflict) {
		return fmt.Errorf("create event: %w", err)
	}
	return s.resolveSlugConflict(ctx, event)
}

// slugBase derives the slug base for a title. A title with no alphanumeric
// characters slugifies to "", which would violate the non-empty slug
// constraint, so it falls back to a time-based name.
func slugBase(title string) string {
	if s := domain.Slugify(title); s != "" {
		return s
	}
	return fmt.Sprintf("event-%d", time.Now().Unix())
}

// resolveSlugConflict probes base-1, base-2, ... in increasing order and
// retries the insert under the first candidate the store does not know.
// Existence is re-checked against the store per candidate rather than
// computed in memory; two concurrent creators may still race on the same
// candidate, in which case the loser gets another ErrSlugConflict and keeps
// probing. The unique index is the correctness backstop.
func (s *eventService) resolveSlugConflict(ctx context.Context, event *domain.Event) error {
	base := slugBase(event.Title)
	for i := 1; i <= maxSlugAttempts; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		exists, err := s.eventRepo.SlugExists(ctx, candidate)
		if err != nil {
			return fmt.Errorf("probe slug %q: %w", candidate, err)
		}
		if exists {
			continue
		}
		event.Slug = candidate
		err = s.eventRepo.Create(ctx, event)
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrSlugConflict) {
			continue
		}
		return fmt.Errorf("create event: %w", err)
	}
	return domain.ErrSlugExhausted
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, domain.ErrNotFound
	}
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// ListSimilarEvents returns all other events sharing at least one tag with
// the event identified by slug. An unknown slug yields an empty list, not an
// error.
func (s *eventService) ListSimilarEvents(ctx context.Context, slug string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []*domain.Event{}, nil
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}

	similar, err := s.eventRepo.ListSimilar(ctx, event.ID, event.Tags)
	if err != nil {
		return nil, fmt.Errorf("list similar events: %w", err)
	}
	if similar == nil {
		similar = []*domain.Event{}
	}
	return similar, nil
}
