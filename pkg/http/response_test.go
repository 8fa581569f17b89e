package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "foamparty/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "app error keeps its status",
			err:         apperrors.InvalidInput("invalid request body"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    apperrors.CodeInvalidInput,
			wantMessage: "invalid request body",
		},
		{
			name:        "rate limited",
			err:         apperrors.RateLimited("too many requests"),
			wantStatus:  http.StatusTooManyRequests,
			wantCode:    apperrors.CodeRateLimited,
			wantMessage: "too many requests",
		},
		{
			name:        "plain error hides cause",
			err:         errors.New("badger: closed"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    apperrors.CodeInternal,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatalf("WriteError() error: %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}

			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.wantCode || resp.Error != tt.wantMessage {
				t.Errorf("got %+v", resp)
			}
		})
	}
}

func TestExtractLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int64
		wantErr    bool
	}{
		{name: "defaults", query: "", wantLimit: 10, wantOffset: 0},
		{name: "explicit", query: "limit=5&offset=20", wantLimit: 5, wantOffset: 20},
		{name: "negative offset clamps", query: "offset=-3", wantLimit: 10, wantOffset: 0},
		{name: "bad limit", query: "limit=abc", wantErr: true},
		{name: "bad offset", query: "offset=1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?"+tt.query, nil)
			limit, offset, err := ExtractLimitOffset(r)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("got (%d, %d), want (%d, %d)", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
