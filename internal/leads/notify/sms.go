package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	"foamparty/pkg/client"
	"foamparty/pkg/logger"
	"foamparty/pkg/sanitizer"
)

type TwilioConfig struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	FromNumber string
	Timeout    time.Duration
}

// SMSSender texts the operator through the Twilio messages API.
type SMSSender struct {
	http *client.HttpClient
	cfg  TwilioConfig
	log  *logger.Logger
}

func NewSMSSender(cfg TwilioConfig, log *logger.Logger) *SMSSender {
	return &SMSSender{
		http: client.NewHttpClient(cfg.BaseURL, cfg.Timeout),
		cfg:  cfg,
		log:  log,
	}
}

// Send texts body to the given number. Numbers without a country code are
// read as US numbers.
func (s *SMSSender) Send(ctx context.Context, to, body string) error {
	e164 := sanitizer.NormalizePhone(to)
	if e164 == "" {
		return fmt.Errorf("invalid destination phone number %q", to)
	}

	form := url.Values{}
	form.Set("To", e164)
	form.Set("From", s.cfg.FromNumber)
	form.Set("Body", body)

	credentials := base64.StdEncoding.EncodeToString([]byte(s.cfg.AccountSID + ":" + s.cfg.AuthToken))
	path := fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", url.PathEscape(s.cfg.AccountSID))

	resp, err := s.http.POSTForm(ctx, path, form, map[string]string{
		"Authorization": "Basic " + credentials,
		"Accept":        "application/json",
	})
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("send sms: status %d: %s", resp.StatusCode, client.GetErrorMessage(resp))
	}

	var sent struct {
		SID string `json:"sid"`
	}
	if err := resp.DecodeJSON(&sent); err != nil {
		s.log.Warn("sms sent but response could not be decoded", "error", err)
		return nil
	}

	s.log.Info("sms sent", "to", e164, "sid", sent.SID)
	return nil
}
