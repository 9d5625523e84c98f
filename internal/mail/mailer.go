// Package mail sends transactional email over SMTP.
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"

	"github.com/candyland-dev/candyland-backend/pkg/config"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
	"github.com/candyland-dev/candyland-backend/pkg/logger"
)

// Message is one outbound email. At least one of HTML or Text must be set.
type Message struct {
	To      string  `json:"to" validate:"required,email"`
	Subject string  `json:"subject" validate:"required,max=200"`
	HTML    *string `json:"html,omitempty"`
	Text    *string `json:"text,omitempty"`
	ReplyTo *string `json:"replyTo,omitempty"`
}

// Receipt reports a sent message.
type Receipt struct {
	DeliveryID string `json:"deliveryId"`
	To         string `json:"to"`
}

type dialer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// Mailer composes and delivers messages through an SMTP dialer.
type Mailer struct {
	dialer dialer
	from   string
	logg   *logger.Logger
}

// NewMailer builds a mailer over a real SMTP client from config.
func NewMailer(cfg config.SMTPConfig, logg *logger.Logger) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host required")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.User),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return newMailer(client, cfg.From, logg), nil
}

func newMailer(d dialer, from string, logg *logger.Logger) *Mailer {
	return &Mailer{dialer: d, from: from, logg: logg}
}

// Send validates, composes and delivers one message.
func (m *Mailer) Send(ctx context.Context, msg Message) (*Receipt, error) {
	if strings.TrimSpace(msg.To) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject is required")
	}
	if emptyBody(msg.HTML) && emptyBody(msg.Text) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "either html or text body is required")
	}

	out := gomail.NewMsg()
	if err := out.From(m.from); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mail: set sender")
	}
	if err := out.To(msg.To); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient address is not valid").
			WithDetails(map[string]string{"to": msg.To})
	}
	if msg.ReplyTo != nil && *msg.ReplyTo != "" {
		if err := out.ReplyTo(*msg.ReplyTo); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "replyTo address is not valid")
		}
	}
	out.Subject(msg.Subject)

	switch {
	case !emptyBody(msg.HTML) && !emptyBody(msg.Text):
		out.SetBodyString(gomail.TypeTextPlain, *msg.Text)
		out.AddAlternativeString(gomail.TypeTextHTML, *msg.HTML)
	case !emptyBody(msg.HTML):
		out.SetBodyString(gomail.TypeTextHTML, *msg.HTML)
	default:
		out.SetBodyString(gomail.TypeTextPlain, *msg.Text)
	}

	deliveryID := uuid.NewString()
	out.SetMessageIDWithValue(deliveryID)

	if err := m.dialer.DialAndSendWithContext(ctx, out); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "smtp delivery failed")
	}

	if m.logg != nil {
		m.logg.Info(m.logg.WithFields(ctx, map[string]any{
			"delivery_id": deliveryID,
			"to":          msg.To,
		}), "email.sent")
	}
	return &Receipt{DeliveryID: deliveryID, To: msg.To}, nil
}

func emptyBody(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
