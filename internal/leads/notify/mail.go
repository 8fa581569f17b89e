package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"foamparty/pkg/model"
)

// Message is an operator notification ready to be handed to a mail client.
type Message struct {
	To      string
	Subject string
	Body    string
}

// NewMessage builds the operator notification for a lead.
func NewMessage(inbox string, lead model.BookingRequest) Message {
	var b strings.Builder
	b.WriteString("NEW FOAM PARTY BOOKING REQUEST!\n\n")
	fmt.Fprintf(&b, "👤 Parent/Guardian: %s\n", lead.Name)
	fmt.Fprintf(&b, "📧 Email: %s\n", lead.Email)
	fmt.Fprintf(&b, "📱 Phone: %s\n", lead.Phone)
	fmt.Fprintf(&b, "📅 Preferred Date: %s\n", lead.Date)
	fmt.Fprintf(&b, "⏰ Preferred Time: %s\n", lead.Time)
	fmt.Fprintf(&b, "👶 Number of Kids: %s\n", lead.PartySize)
	fmt.Fprintf(&b, "📍 Location: %s\n", lead.Location)
	fmt.Fprintf(&b, "✨ Package Selected: %s\n\n", lead.Package)
	b.WriteString("📞 CONTACT THEM IMMEDIATELY to confirm!\n")
	fmt.Fprintf(&b, "📱 Call: %s\n", lead.Phone)
	fmt.Fprintf(&b, "📧 Email: %s\n\n", lead.Email)
	b.WriteString("This is a high-priority booking request!")

	return Message{
		To:      inbox,
		Subject: "🎉 NEW FOAM PARTY BOOKING - " + lead.Name,
		Body:    b.String(),
	}
}

// URL renders the message as a mailto: link.
func (m Message) URL() string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", m.To, EncodeComponent(m.Subject), EncodeComponent(m.Body))
}

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s the way browsers encode URI components,
// so spaces become %20 rather than +.
func EncodeComponent(s string) string {
	return componentReplacer.Replace(url.QueryEscape(s))
}

// Opener hands a composed message to whatever delivers it.
type Opener interface {
	Open(ctx context.Context, msg Message) error
}

// MailCompose notifies the operator by composing a mail to the bookings inbox.
type MailCompose struct {
	inbox  string
	opener Opener
}

func NewMailCompose(inbox string, opener Opener) *MailCompose {
	return &MailCompose{inbox: inbox, opener: opener}
}

func (m *MailCompose) Notify(ctx context.Context, lead model.BookingRequest) error {
	return m.opener.Open(ctx, NewMessage(m.inbox, lead))
}
