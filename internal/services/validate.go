package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"devevent/internal/domain"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)
)

// validateEvent checks a candidate event before persistence and normalizes
// it in place: required strings are trimmed and must be non-empty, date is
// canonicalized to YYYY-MM-DD, time to zero-padded HH:MM, and agenda/tags
// must be non-empty lists of non-blank entries. A failure here prevents any
// write.
func validateEvent(e *domain.Event) error {
	required := []struct {
		name  string
		value *string
	}{
		{"title", &e.Title},
		{"description", &e.Description},
		{"overview", &e.Overview},
		{"image", &e.ImageURL},
		{"venue", &e.Venue},
		{"location", &e.Location},
		{"date", &e.Date},
		{"time", &e.Time},
		{"mode", &e.Mode},
		{"audience", &e.Audience},
		{"organizer", &e.Organizer},
	}
	for _, f := range required {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return domain.NewValidationError(f.name, "is required and cannot be empty")
		}
	}

	if err := normalizeAgenda("agenda", e.Agenda); err != nil {
		return err
	}
	if err := normalizeAgenda("tags", e.Tags); err != nil {
		return err
	}

	// time.Parse alone is lenient about leading zeros, so the shape is
	// checked first; Parse then rejects overflow dates like Feb 30.
	if !datePattern.MatchString(e.Date) {
		return domain.NewValidationError("date", "must be in YYYY-MM-DD format")
	}
	d, err := time.Parse("2006-01-02", e.Date)
	if err != nil {
		return domain.NewValidationError("date", "must be a real calendar date")
	}
	e.Date = d.Format("2006-01-02")

	m := timePattern.FindStringSubmatch(e.Time)
	if m == nil {
		return domain.NewValidationError("time", "must be a 24-hour HH:MM time")
	}
	hour, _ := strconv.Atoi(m[1])
	e.Time = fmt.Sprintf("%02d:%s", hour, m[2])

	return nil
}

// normalizeAgenda trims every entry of a string-list field and rejects empty
// lists and blank entries.
func normalizeAgenda(field string, items []string) error {
	if len(items) == 0 {
		return domain.NewValidationError(field, "must be a non-empty list")
	}
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
		if items[i] == "" {
			return domain.NewValidationError(field, "entries cannot be blank")
		}
	}
	return nil
}
