package mailer

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/flowblog/flowblog/domain"
	"gopkg.in/mail.v2"
)

//go:embed "templates"
var templateFS embed.FS

// Mailer wraps a mail.Dialer (used to connect to an SMTP server) and the
// sender address transactional mail goes out as.
type Mailer struct {
	dialer *mail.Dialer
	sender string
}

var _ domain.Mailer = Mailer{}

func New(host string, port int, username, password, sender string) Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second
	return Mailer{
		dialer: dialer,
		sender: sender,
	}
}

func (m Mailer) SendVerificationCode(toEmail, code string) error {
	return m.send(toEmail, "verification_code.tmpl", map[string]string{"Code": code})
}

func (m Mailer) send(recipient, templateFile string, data any) error {
	tmpl, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return err
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return err
	}
	htmlBody := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(htmlBody, "htmlBody", data); err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/html", htmlBody.String())

	return m.dialer.DialAndSend(msg)
}
