package invoice

import (
	"context"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/MarcGrol/salesbackend/lib/myconfig"
	"github.com/MarcGrol/salesbackend/lib/mylog"
)

type Mail struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
}

//go:generate mockgen -source=mailer.go -package invoice -destination mailer_mock.go Mailer
type Mailer interface {
	Send(c context.Context, mail Mail) error
}

// NewMailer sends over SMTP when a host is configured. Otherwise mails are only logged.
func NewMailer(cfg myconfig.SMTP) Mailer {
	if cfg.Host == "" {
		return &loggingMailer{
			logger: mylog.New("mailer"),
		}
	}

	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		sender: cfg.Sender,
		logger: mylog.New("mailer"),
	}
}

type smtpMailer struct {
	dialer *gomail.Dialer
	sender string
	logger mylog.Logger
}

func (m *smtpMailer) Send(c context.Context, mail Mail) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/plain", mail.Body)
	if mail.AttachmentName != "" {
		msg.Attach(mail.AttachmentName,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(mail.Attachment)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {"application/pdf"},
			}),
		)
	}

	err := m.dialer.DialAndSend(msg)
	if err != nil {
		return err
	}

	m.logger.Log(c, "", mylog.SeverityInfo, "Mailed %q to %s", mail.Subject, mail.To)

	return nil
}

type loggingMailer struct {
	logger mylog.Logger
}

func (m *loggingMailer) Send(c context.Context, mail Mail) error {
	m.logger.Log(c, "", mylog.SeverityInfo, "No SMTP host configured, not mailing %q to %s (%s, %d bytes)", mail.Subject, mail.To, mail.AttachmentName, len(mail.Attachment))
	return nil
}
