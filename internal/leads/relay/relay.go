package relay

import (
	"context"
	"fmt"
	"time"

	"foamparty/pkg/client"
	"foamparty/pkg/logger"
	"foamparty/pkg/model"
)

// Payload is the JSON body posted to the form relay.
type Payload struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	PartySize string `json:"partySize"`
	Location  string `json:"location"`
	Package   string `json:"package"`
	Message   string `json:"message"`
}

func NewPayload(lead model.BookingRequest) Payload {
	return Payload{
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Date:      lead.Date,
		Time:      lead.Time,
		PartySize: lead.PartySize,
		Location:  lead.Location,
		Package:   lead.Package,
		Message:   fmt.Sprintf("NEW FOAM PARTY BOOKING: %s - %s - %s", lead.Name, lead.Phone, lead.Date),
	}
}

// DeliveryError reports a relay call that did not end in a 2xx response.
// StatusCode is zero when the request never got an answer.
type DeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("relay delivery failed: %v", e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("relay rejected lead with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("relay rejected lead with status %d", e.StatusCode)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Client posts leads to a hosted form endpoint. It makes exactly one attempt
// per lead.
type Client struct {
	http *client.HttpClient
	url  string
	log  *logger.Logger
}

func NewClient(url string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		http: client.NewHttpClient("", timeout),
		url:  url,
		log:  log,
	}
}

func (c *Client) Deliver(ctx context.Context, lead model.BookingRequest) error {
	start := time.Now()

	resp, err := c.http.POST(ctx, c.url, NewPayload(lead))
	if err != nil {
		return &DeliveryError{Err: err}
	}

	if !resp.IsSuccess() {
		return &DeliveryError{
			StatusCode: resp.StatusCode,
			Body:       truncate(client.GetErrorMessage(resp), 200),
		}
	}

	c.log.Debug("lead delivered to relay",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
