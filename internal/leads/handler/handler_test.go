package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foamparty/internal/leads/flow"
	"foamparty/internal/leads/form"
	"foamparty/internal/leads/repository"
	"foamparty/internal/leads/validator"
	"foamparty/pkg/logger"
	"foamparty/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, model.BookingRequest) error { return nil }

type rejectingRelay struct{}

func (rejectingRelay) Deliver(context.Context, model.BookingRequest) error {
	return errors.New("status 500")
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func newTestRouter(t *testing.T) (*httprouter.Router, repository.LeadRepository) {
	t.Helper()
	log := logger.Discard()
	repo := repository.NewMemoryLeadRepository()

	f := flow.New(flow.Config{
		Inbox:         "bookings@gulfcoastfoamparty.com",
		BusinessPhone: "(228) 365-3626",
		BusinessEmail: "info@gulfcoastfoamparty.com",
	}, flow.Channels{Store: repo, Mail: nopNotifier{}, Relay: rejectingRelay{}}, log)
	t.Cleanup(f.Wait)

	v := validator.NewBookingValidator(time.UTC, nil, log)
	contact := model.ContactInfo{
		Phone:       "(228) 365-3626",
		Email:       "info@gulfcoastfoamparty.com",
		ServiceArea: "Mississippi Gulf Coast",
		Options:     model.DefaultFormOptions(),
	}

	h := NewLeadHandler(func() *form.Form { return form.New(f, v) }, repo, contact, log)
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router, repo
}

const janeDoeBody = `{
	"name": "Jane Doe",
	"email": "jane@example.com",
	"phone": "2285551234",
	"date": "2099-07-04",
	"time": "14:00",
	"partySize": "11-15",
	"location": "",
	"package": "glow"
}`

func TestLeadHandler_Create(t *testing.T) {
	router, repo := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(janeDoeBody)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data model.SubmissionOutcome `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	outcome := resp.Data
	if outcome.State != model.StateSubmitted {
		t.Errorf("State = %q", outcome.State)
	}
	if outcome.Confirmation == nil || outcome.Confirmation.Phone != "(228) 365-3626" {
		t.Errorf("Confirmation = %+v", outcome.Confirmation)
	}
	if strings.Contains(rec.Body.String(), "relay") {
		t.Error("channel results must not be exposed")
	}

	_, total, _ := repo.List(context.Background(), 10, 0)
	if total != 1 {
		t.Errorf("stored %d leads, want 1", total)
	}
}

func TestLeadHandler_CreateErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantText   string
	}{
		{
			name:       "malformed json",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-string value",
			body:       `{"name":"Jane","partySize":12}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"name":"Jane","coupon":"FREE"}`,
			wantStatus: http.StatusBadRequest,
			wantText:   "unknown booking form field",
		},
		{
			name:       "missing required fields",
			body:       `{"name":"Jane"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantText:   "email is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := newTestRouter(t)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantText != "" && !strings.Contains(rec.Body.String(), tt.wantText) {
				t.Errorf("body %s missing %q", rec.Body.String(), tt.wantText)
			}
			if tt.wantStatus == http.StatusUnprocessableEntity && !strings.Contains(rec.Body.String(), "Please call us directly at (228) 365-3626") {
				t.Errorf("failed submission should carry the call-us message, got %s", rec.Body.String())
			}
			if _, total, _ := repo.List(context.Background(), 10, 0); total != 0 {
				t.Errorf("stored %d leads, want 0", total)
			}
		})
	}
}

func TestLeadHandler_GetAll(t *testing.T) {
	router, _ := newTestRouter(t)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(janeDoeBody)))
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d", rec.Code)
		}
	}

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLen    int
	}{
		{name: "defaults", query: "", wantStatus: http.StatusOK, wantLen: 3},
		{name: "paged", query: "?limit=2&offset=1", wantStatus: http.StatusOK, wantLen: 2},
		{name: "past the end", query: "?offset=10", wantStatus: http.StatusOK, wantLen: 0},
		{name: "invalid limit", query: "?limit=abc", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings"+tt.query, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp struct {
				Data       []model.BookingRequest `json:"data"`
				TotalCount int64                  `json:"total_count"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if len(resp.Data) != tt.wantLen {
				t.Errorf("got %d leads, want %d", len(resp.Data), tt.wantLen)
			}
			if resp.TotalCount != 3 {
				t.Errorf("TotalCount = %d", resp.TotalCount)
			}
		})
	}
}

func TestLeadHandler_Contact(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/contact", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Data model.ContactInfo `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	contact := resp.Data
	if contact.Phone != "(228) 365-3626" || len(contact.Options.PartySizes) != 5 {
		t.Errorf("contact = %+v", contact)
	}
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]Pinger
		wantStatus int
	}{
		{
			name:       "all dependencies up",
			checks:     map[string]Pinger{"leads": repository.NewMemoryLeadRepository()},
			wantStatus: http.StatusOK,
		},
		{
			name: "one dependency down",
			checks: map[string]Pinger{
				"leads": repository.NewMemoryLeadRepository(),
				"redis": failingPinger{},
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			NewHealthHandler(tt.checks, logger.Discard()).RegisterRoutes(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			if rec.Code != http.StatusOK {
				t.Errorf("health status = %d", rec.Code)
			}

			rec = httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("ready status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
