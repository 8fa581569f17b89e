package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"foamparty/pkg/logger"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPOpener delivers the composed message through an SMTP relay.
type SMTPOpener struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
	log      *logger.Logger
}

func NewSMTPOpener(cfg SMTPConfig, log *logger.Logger) *SMTPOpener {
	return &SMTPOpener{
		cfg:      cfg,
		sendMail: smtp.SendMail,
		log:      log,
	}
}

func (o *SMTPOpener) Open(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if o.cfg.Username != "" {
		auth = smtp.PlainAuth("", o.cfg.Username, o.cfg.Password, o.cfg.Host)
	}

	addr := net.JoinHostPort(o.cfg.Host, strconv.Itoa(o.cfg.Port))
	if err := o.sendMail(addr, auth, o.cfg.From, []string{msg.To}, o.render(msg, time.Now())); err != nil {
		return fmt.Errorf("send operator mail via %s: %w", addr, err)
	}

	o.log.Info("operator notification sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (o *SMTPOpener) render(msg Message, at time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", o.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: =?UTF-8?B?%s?=\r\n", base64.StdEncoding.EncodeToString([]byte(msg.Subject)))
	fmt.Fprintf(&b, "Date: %s\r\n", at.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}
