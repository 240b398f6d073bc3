package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createEventErr  error
	lastCreated     *domain.Event
	listResult      []*domain.Event
	listErr         error
	getBySlugResult *domain.Event
	getBySlugErr    error
	lastGetSlug     string
	similarResult   []*domain.Event
	similarErr      error
	lastSimilarSlug string
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	f.lastCreated = event
	if f.createEventErr != nil {
		return f.createEventErr
	}
	event.ID = "ev-1"
	if event.Slug == "" {
		event.Slug = domain.Slugify(event.Title)
	}
	return nil
}

func (f *fakeEventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.lastGetSlug = slug
	return f.getBySlugResult, f.getBySlugErr
}

func (f *fakeEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return f.listResult, f.listErr
}

func (f *fakeEventService) ListSimilarEvents(ctx context.Context, slug string) ([]*domain.Event, error) {
	f.lastSimilarSlug = slug
	return f.similarResult, f.similarErr
}

// fakeUploader implements domain.MediaUploader for handler tests.
type fakeUploader struct {
	url          string
	err          error
	lastFilename string
	lastData     []byte
	calls        int
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	f.calls++
	f.lastData = data
	f.lastFilename = filename
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func validEventForm() map[string]string {
	return map[string]string{
		"title":       "My Talk",
		"description": "A talk",
		"overview":    "An overview",
		"venue":       "Main Hall",
		"location":    "Berlin",
		"date":        "2026-02-28",
		"time":        "09:05",
		"mode":        "in-person",
		"audience":    "developers",
		"organizer":   "DevEvent Crew",
		"tags":        `["go","backend"]`,
		"agenda":      `["Intro","Deep dive"]`,
	}
}

func newCreateEventRequest(t *testing.T, fields map[string]string, withImage bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withImage {
		fw, err := mw.CreateFormFile("image", "poster.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake-image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/events", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestEventController_CreateEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEventService{}
		up := &fakeUploader{url: "https://cdn.example.com/poster.png"}
		c := NewEventController(testLogger, svc, up)

		rec := httptest.NewRecorder()
		c.CreateEvent(rec, newCreateEventRequest(t, validEventForm(), true))

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, 1, up.calls)
		assert.Equal(t, "poster.png", up.lastFilename)
		assert.Equal(t, []byte("fake-image-bytes"), up.lastData)

		require.NotNil(t, svc.lastCreated)
		assert.Equal(t, "https://cdn.example.com/poster.png", svc.lastCreated.ImageURL)
		assert.Equal(t, []string{"go", "backend"}, svc.lastCreated.Tags)
		assert.Equal(t, []string{"Intro", "Deep dive"}, svc.lastCreated.Agenda)

		var resp struct {
			Data  *domain.Event     `json:"data"`
			Error *helpers.APIError `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Nil(t, resp.Error)
		assert.Equal(t, "my-talk", resp.Data.Slug)
		assert.Equal(t, "ev-1", resp.Data.ID)
	})

	t.Run("missing image", func(t *testing.T) {
		svc := &fakeEventService{}
		up := &fakeUploader{url: "https://cdn.example.com/poster.png"}
		c := NewEventController(testLogger, svc, up)

		rec := httptest.NewRecorder()
		c.CreateEvent(rec, newCreateEventRequest(t, validEventForm(), false))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 0, up.calls)
		assert.Nil(t, svc.lastCreated)
	})

	t.Run("invalid JSON in tags", func(t *testing.T) {
		svc := &fakeEventService{}
		c := NewEventController(testLogger, svc, &fakeUploader{})

		fields := validEventForm()
		fields["tags"] = `not-json`
		rec := httptest.NewRecorder()
		c.CreateEvent(rec, newCreateEventRequest(t, fields, true))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid JSON in tags")
		assert.Nil(t, svc.lastCreated)
	})

	t.Run("missing agenda field", func(t *testing.T) {
		svc := &fakeEventService{}
		c := NewEventController(testLogger, svc, &fakeUploader{})

		fields := validEventForm()
		delete(fields, "agenda")
		rec := httptest.NewRecorder()
		c.CreateEvent(rec, newCreateEventRequest(t, fields, true))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.lastCreated)
	})

	t.Run("validation failure from service", func(t *testing.T) {
		svc := &fakeEventService{createEventErr: domain.NewValidationError("date", "must be a real calendar date")}
		c := NewEventController(testLogger, svc, &fakeUploader{url: "https://cdn.example.com/p.png"})

		rec := httptest.NewRecorder()
		c.CreateEvent(rec, newCreateEventRequest(t, validEventForm(), true))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "date")
	})

	t.Run("upload failure", func(t *testing.T) {
		svc := &fakeEventService{}
		c := NewEventController(testLogger, svc, &fakeUploader{err: errors.New("cloudinary down")})

		rec := httptest.NewRecorder()
		c.CreateEvent(rec, newCreateEventRequest(t, validEventForm(), true))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Nil(t, svc.lastCreated, "upload failure must prevent any write")
		assert.NotContains(t, rec.Body.String(), "cloudinary", "internal detail must not leak")
	})

	t.Run("store failure is generic", func(t *testing.T) {
		svc := &fakeEventService{createEventErr: errors.New("pq: connection refused")}
		c := NewEventController(testLogger, svc, &fakeUploader{url: "https://cdn.example.com/p.png"})

		rec := httptest.NewRecorder()
		c.CreateEvent(rec, newCreateEventRequest(t, validEventForm(), true))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "pq:")
	})
}

func TestEventController_ListEvents(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEventService{listResult: []*domain.Event{{ID: "ev-2", Slug: "b"}, {ID: "ev-1", Slug: "a"}}}
		c := NewEventController(testLogger, svc, &fakeUploader{})

		rec := httptest.NewRecorder()
		c.ListEvents(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Data []*domain.Event `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "ev-2", resp.Data[0].ID)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := &fakeEventService{listErr: errors.New("pq: connection refused")}
		c := NewEventController(testLogger, svc, &fakeUploader{})

		rec := httptest.NewRecorder()
		c.ListEvents(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "pq:")
	})
}

func TestEventController_GetEventBySlug(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEventService{getBySlugResult: &domain.Event{ID: "ev-1", Slug: "my-talk"}}
		c := NewEventController(testLogger, svc, &fakeUploader{})

		req := httptest.NewRequest(http.MethodGet, "/events/my-talk", nil)
		req.SetPathValue("slug", "my-talk")
		rec := httptest.NewRecorder()
		c.GetEventBySlug(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "my-talk", svc.lastGetSlug)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEventService{getBySlugErr: domain.ErrNotFound}
		c := NewEventController(testLogger, svc, &fakeUploader{})

		req := httptest.NewRequest(http.MethodGet, "/events/missing", nil)
		req.SetPathValue("slug", "missing")
		rec := httptest.NewRecorder()
		c.GetEventBySlug(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), helpers.ErrCodeNotFound)
	})
}

func TestEventController_ListSimilarEvents(t *testing.T) {
	svc := &fakeEventService{similarResult: []*domain.Event{{ID: "ev-2", Slug: "other"}}}
	c := NewEventController(testLogger, svc, &fakeUploader{})

	req := httptest.NewRequest(http.MethodGet, "/events/my-talk/similar", nil)
	req.SetPathValue("slug", "my-talk")
	rec := httptest.NewRecorder()
	c.ListSimilarEvents(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "my-talk", svc.lastSimilarSlug)
	var resp struct {
		Data []*domain.Event `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
}
