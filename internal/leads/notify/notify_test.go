package notify

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"net/url"
	"strings"
	"testing"
	"time"

	"foamparty/pkg/kafka"
	"foamparty/pkg/logger"
	"foamparty/pkg/model"
)

func janeDoe() model.BookingRequest {
	return model.BookingRequest{
		ID:        "lead-1",
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

type mockOpener struct {
	opened []Message
	err    error
}

func (m *mockOpener) Open(_ context.Context, msg Message) error {
	m.opened = append(m.opened, msg)
	return m.err
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage("bookings@gulfcoastfoamparty.com", janeDoe())

	if msg.To != "bookings@gulfcoastfoamparty.com" {
		t.Errorf("To = %q", msg.To)
	}
	if msg.Subject != "🎉 NEW FOAM PARTY BOOKING - Jane Doe" {
		t.Errorf("Subject = %q", msg.Subject)
	}

	for _, want := range []string{
		"Parent/Guardian: Jane Doe",
		"Email: jane@example.com",
		"Phone: 2285551234",
		"Preferred Date: 2025-07-04",
		"Preferred Time: 14:00",
		"Number of Kids: 11-15",
		"Location: Biloxi",
		"Package Selected: glow",
		"Call: 2285551234",
	} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestMessage_URL(t *testing.T) {
	msg := Message{To: "bookings@example.com", Subject: "Hi (Jane)!", Body: "a b\nc&d"}

	got := msg.URL()
	want := "mailto:bookings@example.com?subject=Hi%20(Jane)!&body=a%20b%0Ac%26d"
	if got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}

	u, err := url.Parse(msg.URL())
	if err != nil {
		t.Fatalf("compose url does not parse: %v", err)
	}
	if u.Query().Get("body") != "a b\nc&d" {
		t.Errorf("body round trip = %q", u.Query().Get("body"))
	}
}

func TestEncodeComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"two words", "two%20words"},
		{"a+b", "a%2Bb"},
		{"it's *fun* ~", "it's%20*fun*%20~"},
		{"🎉", "%F0%9F%8E%89"},
	}
	for _, tt := range tests {
		if got := EncodeComponent(tt.in); got != tt.want {
			t.Errorf("EncodeComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMailCompose_Notify(t *testing.T) {
	opener := &mockOpener{err: errors.New("no mail client")}
	m := NewMailCompose("bookings@gulfcoastfoamparty.com", opener)

	err := m.Notify(context.Background(), janeDoe())
	if err == nil {
		t.Error("expected opener error to be returned")
	}
	if len(opener.opened) != 1 || opener.opened[0].To != "bookings@gulfcoastfoamparty.com" {
		t.Errorf("opened = %+v", opener.opened)
	}
}

func TestLogOpener_Open(t *testing.T) {
	if err := NewLogOpener(logger.Discard()).Open(context.Background(), NewMessage("a@b.c", janeDoe())); err != nil {
		t.Errorf("Open() error: %v", err)
	}
}

func TestSMTPOpener_Open(t *testing.T) {
	cfg := SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "user",
		Password: "secret",
		From:     "site@gulfcoastfoamparty.com",
	}
	o := NewSMTPOpener(cfg, logger.Discard())

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	var gotAuth smtp.Auth
	o.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
		return nil
	}

	if err := o.Open(context.Background(), NewMessage("bookings@gulfcoastfoamparty.com", janeDoe())); err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	if gotAuth == nil {
		t.Error("expected auth when username is set")
	}
	if gotFrom != cfg.From || len(gotTo) != 1 || gotTo[0] != "bookings@gulfcoastfoamparty.com" {
		t.Errorf("envelope from=%q to=%v", gotFrom, gotTo)
	}

	raw := string(gotMsg)
	if !strings.Contains(raw, "Subject: =?UTF-8?B?") {
		t.Error("subject should be encoded")
	}
	if !strings.Contains(raw, "Parent/Guardian: Jane Doe\r\n") {
		t.Error("body lines should use CRLF")
	}
}

func TestSMTPOpener_OpenFailures(t *testing.T) {
	o := NewSMTPOpener(SMTPConfig{Host: "localhost", Port: 25}, logger.Discard())
	o.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	if err := o.Open(context.Background(), Message{To: "a@b.c"}); err == nil {
		t.Error("expected send error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	o.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}
	if err := o.Open(ctx, Message{To: "a@b.c"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Error("cancelled open should not send")
	}
}

func TestNewShareData(t *testing.T) {
	data := NewShareData("https://gulfcoastfoamparty.com", janeDoe())

	if data.Title != "🎉 NEW FOAM PARTY BOOKING!" {
		t.Errorf("Title = %q", data.Title)
	}
	if data.Text != "New booking from Jane Doe - 2285551234 - 2025-07-04 at 14:00" {
		t.Errorf("Text = %q", data.Text)
	}
	if data.URL != "https://gulfcoastfoamparty.com" {
		t.Errorf("URL = %q", data.URL)
	}
}

type mockPublisher struct {
	published []kafka.Message
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return m.err
}

func TestShare_NotifyPublishesEvent(t *testing.T) {
	pub := &mockPublisher{}
	s := NewShare("https://gulfcoastfoamparty.com", NewKafkaSharer(pub))

	if err := s.Notify(context.Background(), janeDoe()); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("published %d messages", len(pub.published))
	}

	msg := pub.published[0]
	if msg.Key != "lead-1" {
		t.Errorf("Key = %q", msg.Key)
	}
	if msg.GetEventType() != kafka.EventBookingShared {
		t.Errorf("event type = %q", msg.GetEventType())
	}

	var event SharedEvent
	if err := msg.DecodeValue(&event); err != nil {
		t.Fatalf("DecodeValue() error: %v", err)
	}
	if event.Booking.PartySize != "11-15" || event.Share.URL != "https://gulfcoastfoamparty.com" {
		t.Errorf("event = %+v", event)
	}
}

func TestKafkaSharer_PublishError(t *testing.T) {
	pub := &mockPublisher{err: kafka.ErrProducerClosed}
	err := NewKafkaSharer(pub).Share(context.Background(), janeDoe(), ShareData{})
	if !errors.Is(err, kafka.ErrProducerClosed) {
		t.Errorf("expected ErrProducerClosed, got %v", err)
	}
}

func TestSMSSender_Send(t *testing.T) {
	var form url.Values
	var authHeader, path string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		authHeader = r.Header.Get("Authorization")
		_ = r.ParseForm()
		form = r.PostForm
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM123"}`))
	}))
	defer server.Close()

	s := NewSMSSender(TwilioConfig{
		BaseURL:    server.URL,
		AccountSID: "AC123",
		AuthToken:  "token",
		FromNumber: "+15005550006",
		Timeout:    time.Second,
	}, logger.Discard())

	if err := s.Send(context.Background(), "(228) 365-3626", "New booking"); err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	if path != "/2010-04-01/Accounts/AC123/Messages.json" {
		t.Errorf("path = %q", path)
	}
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("AC123:token"))
	if authHeader != wantAuth {
		t.Errorf("Authorization = %q", authHeader)
	}
	if form.Get("To") != "+12283653626" || form.Get("From") != "+15005550006" || form.Get("Body") != "New booking" {
		t.Errorf("form = %v", form)
	}
}

func TestSMSSender_SendFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Authenticate"}`))
	}))
	defer server.Close()

	s := NewSMSSender(TwilioConfig{BaseURL: server.URL, AccountSID: "AC123"}, logger.Discard())

	if err := s.Send(context.Background(), "not a number", "x"); err == nil {
		t.Error("expected invalid number error")
	}

	err := s.Send(context.Background(), "2283653626", "x")
	if err == nil || !strings.Contains(err.Error(), "Authenticate") {
		t.Errorf("expected upstream message in error, got %v", err)
	}
}
