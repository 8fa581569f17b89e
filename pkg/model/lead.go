package model

import "time"

const (
	// DateLayout is the layout of the preferred party date picked in the form.
	DateLayout = "2006-01-02"
	// TimestampLayout matches the ISO-8601 form browsers produce with Date.toISOString.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

var (
	TimeSlots  = []string{"10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}
	PartySizes = []string{"5-10", "11-15", "16-20", "21-25", "25+"}
	Packages   = []string{"color", "glow", "basic"}
)

// BookingRequest is a single booking inquiry captured by the landing page form.
// Once Timestamp is set the record is treated as immutable.
type BookingRequest struct {
	ID        string `json:"id,omitempty" bson:"lead_id,omitempty"`
	Name      string `json:"name" bson:"name" validate:"required,max=100"`
	Email     string `json:"email" bson:"email" validate:"required,max=254,email_shape"`
	Phone     string `json:"phone" bson:"phone" validate:"required,max=30"`
	Date      string `json:"date" bson:"date" validate:"required,datetime=2006-01-02,not_past"`
	Time      string `json:"time" bson:"time" validate:"required,oneof=10:00 11:00 12:00 13:00 14:00 15:00 16:00 17:00"`
	PartySize string `json:"partySize" bson:"party_size" validate:"required,oneof=5-10 11-15 16-20 21-25 25+"`
	Location  string `json:"location" bson:"location" validate:"omitempty,max=200"`
	Package   string `json:"package" bson:"package" validate:"omitempty,oneof=color glow basic"`
	Timestamp string `json:"timestamp,omitempty" bson:"timestamp"`
}

// Stamp returns a copy of the request with the submission timestamp attached.
func (b BookingRequest) Stamp(at time.Time) BookingRequest {
	b.Timestamp = at.UTC().Format(TimestampLayout)
	return b
}

// SubmittedAt parses Timestamp. The zero time is returned for unstamped records.
func (b BookingRequest) SubmittedAt() time.Time {
	t, err := time.Parse(TimestampLayout, b.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateSubmitting SubmissionState = "submitting"
	StateSubmitted  SubmissionState = "submitted"
	StateFailed     SubmissionState = "failed"
)

// Confirmation is the manual fallback contact path shown once a lead was submitted.
type Confirmation struct {
	Phone   string `json:"phone"`
	TelURI  string `json:"tel_uri,omitempty"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ChannelResult records what happened on one best-effort delivery channel.
// It is kept for logs and metrics only and never rendered to the user.
type ChannelResult struct {
	Channel   string
	Attempted bool
	Err       error
}

type SubmissionOutcome struct {
	State        SubmissionState   `json:"state"`
	Reason       string            `json:"reason,omitempty"`
	Message      string            `json:"message,omitempty"`
	Fields       map[string]string `json:"fields,omitempty"`
	Booking      *BookingRequest   `json:"booking,omitempty"`
	Confirmation *Confirmation     `json:"confirmation,omitempty"`
	ComposeURL   string            `json:"compose_url,omitempty"`
	Channels     []ChannelResult   `json:"-"`
}

// Channel returns the result recorded for the named channel.
func (o *SubmissionOutcome) Channel(name string) (ChannelResult, bool) {
	for _, c := range o.Channels {
		if c.Channel == name {
			return c, true
		}
	}
	return ChannelResult{}, false
}

// ContactInfo is the public business contact card.
type ContactInfo struct {
	Phone       string      `json:"phone"`
	TelURI      string      `json:"tel_uri,omitempty"`
	Email       string      `json:"email"`
	ServiceArea string      `json:"service_area"`
	Options     FormOptions `json:"options"`
}

type FormOptions struct {
	TimeSlots  []string `json:"time_slots"`
	PartySizes []string `json:"party_sizes"`
	Packages   []string `json:"packages"`
}

func DefaultFormOptions() FormOptions {
	return FormOptions{
		TimeSlots:  TimeSlots,
		PartySizes: PartySizes,
		Packages:   Packages,
	}
}
