package model

import "time"

type OfferStatus struct {
	VisitorID string        `json:"visitor_id"`
	Active    bool          `json:"active"`
	Expired   bool          `json:"expired"`
	Remaining time.Duration `json:"-"`
	Display   string        `json:"display"`
	EndsAt    *time.Time    `json:"ends_at,omitempty"`
}
