package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingService implements domain.BookingService for handler tests.
type fakeBookingService struct {
	createResult *domain.Booking
	createErr    error
	lastEventID  string
	lastEmail    string
	listResult   []*domain.Booking
	listErr      error
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	f.lastEventID = eventID
	f.lastEmail = email
	return f.createResult, f.createErr
}

func (f *fakeBookingService) ListBookingsByEvent(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	f.lastEventID = eventID
	return f.listResult, f.listErr
}

func newBookingRequest(eventID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/events/"+eventID+"/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("eventID", eventID)
	return req
}

func TestBookingController_CreateBooking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeBookingService{createResult: &domain.Booking{ID: "bk-1", EventID: "ev-1", Email: "a@b.co"}}
		c := NewBookingController(testLogger, svc)

		rec := httptest.NewRecorder()
		c.CreateBooking(rec, newBookingRequest("ev-1", `{"email":"A@B.co"}`))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "ev-1", svc.lastEventID)
		assert.Equal(t, "A@B.co", svc.lastEmail)

		var resp struct {
			Data  *domain.Booking   `json:"data"`
			Error *helpers.APIError `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Nil(t, resp.Error)
		assert.Equal(t, "a@b.co", resp.Data.Email)
	})

	t.Run("malformed email", func(t *testing.T) {
		svc := &fakeBookingService{createErr: domain.NewValidationError("email", "must be a valid email address")}
		c := NewBookingController(testLogger, svc)

		rec := httptest.NewRecorder()
		c.CreateBooking(rec, newBookingRequest("ev-1", `{"email":"not-an-email"}`))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "email")
	})

	t.Run("missing email", func(t *testing.T) {
		svc := &fakeBookingService{}
		c := NewBookingController(testLogger, svc)

		rec := httptest.NewRecorder()
		c.CreateBooking(rec, newBookingRequest("ev-1", `{}`))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.lastEventID, "service must not be called")
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := &fakeBookingService{createErr: domain.ErrEventNotFound}
		c := NewBookingController(testLogger, svc)

		rec := httptest.NewRecorder()
		c.CreateBooking(rec, newBookingRequest("ev-missing", `{"email":"a@b.co"}`))

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), helpers.ErrCodeNotFound)
	})

	t.Run("store failure is generic", func(t *testing.T) {
		svc := &fakeBookingService{createErr: errors.New("pq: connection refused")}
		c := NewBookingController(testLogger, svc)

		rec := httptest.NewRecorder()
		c.CreateBooking(rec, newBookingRequest("ev-1", `{"email":"a@b.co"}`))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "pq:")
	})
}

func TestBookingController_ListBookings(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeBookingService{listResult: []*domain.Booking{{ID: "bk-1", EventID: "ev-1", Email: "a@b.co"}}}
		c := NewBookingController(testLogger, svc)

		req := httptest.NewRequest(http.MethodGet, "/events/ev-1/bookings", nil)
		req.SetPathValue("eventID", "ev-1")
		rec := httptest.NewRecorder()
		c.ListBookings(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Data []*domain.Booking `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := &fakeBookingService{listErr: domain.ErrEventNotFound}
		c := NewBookingController(testLogger, svc)

		req := httptest.NewRequest(http.MethodGet, "/events/ev-missing/bookings", nil)
		req.SetPathValue("eventID", "ev-missing")
		rec := httptest.NewRecorder()
		c.ListBookings(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
