// cmd/seed resets the local database and fills it with sample events.
// It goes through the event service so validation, normalization, and slug
// derivation run exactly as they do for real submissions.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"devevent/config"
	"devevent/internal/domain"
	"devevent/internal/repository/postgres"
	"devevent/internal/services"
)

func main() {
	if os.Getenv("GO_ENV") == "production" {
		log.Println("seed skipped in production environment")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("db ping: %v", err)
	}

	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	eventSvc := services.NewEventService(eventRepo, 10*time.Second)

	// Bookings reference events, so they go first.
	if err := bookingRepo.DeleteAll(ctx); err != nil {
		log.Fatalf("delete bookings: %v", err)
	}
	if err := eventRepo.DeleteAll(ctx); err != nil {
		log.Fatalf("delete events: %v", err)
	}

	for _, e := range sampleEvents() {
		if err := eventSvc.CreateEvent(ctx, e); err != nil {
			log.Fatalf("seed event %q: %v", e.Title, err)
		}
		log.Printf("seeded %q as /events/%s", e.Title, e.Slug)
	}
	log.Println("seed complete")
}

func sampleEvents() []*domain.Event {
	return []*domain.Event{
		{
			Title:       "Go Meetup Berlin",
			Description: "Monthly meetup for Go developers of all levels.",
			Overview:    "Two talks, lightning rounds, and time to chat over pizza.",
			ImageURL:    "https://res.cloudinary.com/demo/image/upload/go-meetup.png",
			Venue:       "c-base",
			Location:    "Berlin, Germany",
			Date:        "2026-10-14",
			Time:        "19:00",
			Mode:        "in-person",
			Audience:    "developers",
			Agenda:      []string{"Doors open", "Talk: profiling in production", "Lightning talks", "Networking"},
			Organizer:   "Go Berlin User Group",
			Tags:        []string{"go", "backend", "community"},
		},
		{
			Title:       "Frontend Fridays: State of CSS",
			Description: "A virtual session on what changed in CSS this year.",
			Overview:    "Walkthrough of new layout primitives with live demos.",
			ImageURL:    "https://res.cloudinary.com/demo/image/upload/frontend-fridays.png",
			Venue:       "Online",
			Location:    "Remote",
			Date:        "2026-11-06",
			Time:        "17:30",
			Mode:        "virtual",
			Audience:    "frontend engineers",
			Agenda:      []string{"Intro", "New in CSS", "Q&A"},
			Organizer:   "Frontend Fridays",
			Tags:        []string{"css", "frontend", "web"},
		},
		{
			Title:       "Data Engineering Summit",
			Description: "A full-day hybrid summit on modern data platforms.",
			Overview:    "Streaming, lakehouses, and the tooling in between.",
			ImageURL:    "https://res.cloudinary.com/demo/image/upload/data-summit.png",
			Venue:       "Convention Centre Dublin",
			Location:    "Dublin, Ireland",
			Date:        "2026-09-22",
			Time:        "09:00",
			Mode:        "hybrid",
			Audience:    "data engineers",
			Agenda:      []string{"Registration", "Keynote", "Streaming track", "Lakehouse track", "Closing panel"},
			Organizer:   "DataEng Ireland",
			Tags:        []string{"data", "backend", "streaming"},
		},
	}
}
