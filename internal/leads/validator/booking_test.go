package validator

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"foamparty/pkg/logger"
	"foamparty/pkg/model"
)

var chicago = mustLoad("America/Chicago")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func validBooking() model.BookingRequest {
	return model.BookingRequest{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Phone:     "2285551234",
		Date:      "2025-07-04",
		Time:      "14:00",
		PartySize: "11-15",
		Location:  "Biloxi",
		Package:   "glow",
	}
}

func newTestValidator(now time.Time) *BookingValidator {
	return NewBookingValidator(chicago, func() time.Time { return now }, logger.Discard())
}

func TestBookingValidator_Validate(t *testing.T) {
	// 2025-07-01 03:00 UTC is still June 30th in Chicago.
	now := time.Date(2025, 7, 1, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mutate    func(*model.BookingRequest)
		wantField string
	}{
		{name: "valid", mutate: func(*model.BookingRequest) {}},
		{name: "optional fields empty", mutate: func(b *model.BookingRequest) { b.Location = ""; b.Package = "" }},
		{name: "today in business zone", mutate: func(b *model.BookingRequest) { b.Date = "2025-06-30" }},
		{name: "missing name", mutate: func(b *model.BookingRequest) { b.Name = "" }, wantField: "name"},
		{name: "missing phone", mutate: func(b *model.BookingRequest) { b.Phone = "" }, wantField: "phone"},
		{name: "email without at", mutate: func(b *model.BookingRequest) { b.Email = "jane.example.com" }, wantField: "email"},
		{name: "email with space", mutate: func(b *model.BookingRequest) { b.Email = "jane doe@example.com" }, wantField: "email"},
		{name: "malformed date", mutate: func(b *model.BookingRequest) { b.Date = "07/04/2025" }, wantField: "date"},
		{name: "past date", mutate: func(b *model.BookingRequest) { b.Date = "2025-06-29" }, wantField: "date"},
		{name: "slot outside hours", mutate: func(b *model.BookingRequest) { b.Time = "18:00" }, wantField: "time"},
		{name: "unknown party size", mutate: func(b *model.BookingRequest) { b.PartySize = "100" }, wantField: "partySize"},
		{name: "unknown package", mutate: func(b *model.BookingRequest) { b.Package = "deluxe" }, wantField: "package"},
	}

	v := newTestValidator(now)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(&b)

			err := v.Validate(&b)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if _, ok := verrs.Fields()[tt.wantField]; !ok {
				t.Errorf("expected failure on %q, got %v", tt.wantField, verrs.Fields())
			}
		})
	}
}

func TestBookingValidator_ReportsEveryMissingField(t *testing.T) {
	v := newTestValidator(time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC))

	err := v.Validate(&model.BookingRequest{})

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	for _, field := range []string{"name", "email", "phone", "date", "time", "partySize"} {
		if msg, ok := verrs.Fields()[field]; !ok || msg != field+" is required" {
			t.Errorf("field %s: got %q", field, msg)
		}
	}
	if _, ok := verrs.Fields()["location"]; ok {
		t.Error("location is optional")
	}
}
