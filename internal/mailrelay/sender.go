package mailrelay

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/wneessen/go-mail"
)

// plainBody is the text part shown by clients without HTML support.
const plainBody = "Diese E-Mail wird im HTML-Format angezeigt."

// Mail is one outgoing HTML message.
type Mail struct {
	To       string
	Subject  string
	Template *template.Template
	Data     any
}

type Sender interface {
	Send(ctx context.Context, mails ...Mail) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// ImplicitTLS connects with TLS right away instead of STARTTLS.
	ImplicitTLS bool
	Timeout     time.Duration
}

type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	}
	if s.cfg.ImplicitTLS {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}
	if s.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.cfg.Timeout))
	}

	return mail.NewClient(s.cfg.Host, opts...)
}

// Send delivers all mails over one connection.
func (s *SMTPSender) Send(ctx context.Context, mails ...Mail) error {
	msgs := make([]*mail.Msg, 0, len(mails))
	for _, m := range mails {
		msg, err := s.message(m)
		if err != nil {
			return fmt.Errorf("build mail %q: %w", m.Subject, err)
		}
		msgs = append(msgs, msg)
	}

	c, err := s.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := c.DialAndSendWithContext(ctx, msgs...); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) message(m Mail) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return nil, err
	}
	if err := msg.To(m.To); err != nil {
		return nil, err
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, plainBody)
	if err := msg.AddAlternativeHTMLTemplate(m.Template, m.Data); err != nil {
		return nil, err
	}

	return msg, nil
}
