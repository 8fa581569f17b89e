package notify

import (
	"context"
	"fmt"

	"foamparty/pkg/model"
)

// ShareData mirrors the payload of a native share sheet.
type ShareData struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

func NewShareData(siteURL string, lead model.BookingRequest) ShareData {
	return ShareData{
		Title: "🎉 NEW FOAM PARTY BOOKING!",
		Text:  fmt.Sprintf("New booking from %s - %s - %s at %s", lead.Name, lead.Phone, lead.Date, lead.Time),
		URL:   siteURL,
	}
}

// Sharer is a native share capability. Hosts without one leave it unset.
type Sharer interface {
	Share(ctx context.Context, lead model.BookingRequest, data ShareData) error
}

type Share struct {
	siteURL string
	sharer  Sharer
}

func NewShare(siteURL string, sharer Sharer) *Share {
	return &Share{siteURL: siteURL, sharer: sharer}
}

func (s *Share) Notify(ctx context.Context, lead model.BookingRequest) error {
	return s.sharer.Share(ctx, lead, NewShareData(s.siteURL, lead))
}
