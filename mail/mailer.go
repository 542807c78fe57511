package mail

import (
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/followup-app/followup/apperr"
	"github.com/followup-app/followup/config"
)

const htmlStyle = `font-family: ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, "Liberation Mono", "Courier New", monospace; white-space: pre-wrap`

// Mailer sends a finalized action plan as a multipart/alternative email
// over an authenticated STARTTLS SMTP session.
type Mailer struct {
	host    string
	port    int
	user    string
	pass    string
	from    string
	appName string
}

func NewMailer(cfg config.Config) *Mailer {
	return &Mailer{
		host:    cfg.SMTPHost,
		port:    cfg.SMTPPort,
		user:    cfg.SMTPUser,
		pass:    cfg.SMTPPass,
		from:    cfg.FromEmail,
		appName: cfg.AppName,
	}
}

// Send delivers the markdown body to a single recipient. The session is
// opened, upgraded, authenticated and closed per call.
func (m *Mailer) Send(to, subject, markdownBody string) error {
	if m.host == "" || m.user == "" || m.pass == "" || m.from == "" {
		return apperr.Config("SMTP settings not set; set SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, FROM_EMAIL")
	}

	msg := m.compose(to, subject, markdownBody)
	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := dialer.DialAndSend(msg); err != nil {
		return apperr.Delivery("sending mail failed", err)
	}
	return nil
}

func (m *Mailer) compose(to, subject, markdownBody string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.appName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", PlainFromMarkdown(markdownBody))
	msg.AddAlternative("text/html", "<pre style='"+htmlStyle+"'>"+markdownBody+"</pre>")
	return msg
}

// PlainFromMarkdown is the plain-text fallback for the email body. It is a
// narrow textual strip, not a markdown renderer: bold and heading markers
// are deleted and bullets become hyphens.
func PlainFromMarkdown(body string) string {
	plain := strings.ReplaceAll(body, "**", "")
	plain = strings.ReplaceAll(plain, "#", "")
	return strings.ReplaceAll(plain, "•", "-")
}
