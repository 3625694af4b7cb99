package client

import (
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"autohaus-service/internal/config"
	"autohaus-service/internal/model"
)

// Mailer sends enquiry notifications over SMTP. Sending is best-effort: a
// failed recipient is logged and the rest are still attempted.
type Mailer struct {
	dialer     *gomail.Dialer
	from       string
	recipients []string
	adminURL   string
	log        zerolog.Logger
}

func NewMailer(cfg *config.Config, log zerolog.Logger) *Mailer {
	return &Mailer{
		dialer:     gomail.NewDialer(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.SMTPUser, cfg.Mail.SMTPPass),
		from:       cfg.Mail.From,
		recipients: cfg.Mail.Recipients,
		adminURL:   cfg.Mail.AdminURL,
		log:        log,
	}
}

func (m *Mailer) SendEnquiry(submission model.FormSubmission) error {
	if len(m.recipients) == 0 {
		return fmt.Errorf("no enquiry recipients configured")
	}

	var failed []string
	for _, recipient := range m.recipients {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", recipient)
		msg.SetHeader("Reply-To", submission.Email)
		msg.SetHeader("Subject", "New Enquiry: "+submission.Name)
		msg.SetBody("text/html", m.renderEnquiry(submission))

		if err := m.dialer.DialAndSend(msg); err != nil {
			m.log.Error().Err(err).Str("recipient", recipient).Msg("enquiry email failed")
			failed = append(failed, recipient)
			continue
		}
		m.log.Info().Str("recipient", recipient).Msg("enquiry email sent")
	}

	if len(failed) > 0 {
		return fmt.Errorf("enquiry email failed for: %s", strings.Join(failed, ", "))
	}
	return nil
}

func (m *Mailer) renderEnquiry(s model.FormSubmission) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: sans-serif; max-width: 600px; padding: 20px;">`)
	b.WriteString(`<h2>New Website Enquiry</h2><hr/>`)
	fmt.Fprintf(&b, "<p><strong>Customer Name:</strong> %s</p>", html.EscapeString(s.Name))
	fmt.Fprintf(&b, "<p><strong>Customer Email:</strong> %s</p>", html.EscapeString(s.Email))
	if s.Phone != nil {
		fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", html.EscapeString(*s.Phone))
	}
	if s.Vehicle != nil {
		fmt.Fprintf(&b, "<p><strong>Vehicle:</strong> %s</p>", html.EscapeString(*s.Vehicle))
	}
	if s.Budget != nil {
		fmt.Fprintf(&b, "<p><strong>Budget:</strong> %s</p>", html.EscapeString(*s.Budget))
	}
	fmt.Fprintf(&b, `<div style="background: #f9f9f9; padding: 15px;"><p><strong>Message:</strong></p><p>%s</p></div>`, html.EscapeString(s.Message))
	if m.adminURL != "" {
		fmt.Fprintf(&b, `<hr/><p style="font-size: 12px;">View this enquiry in the <a href="%s/admin/forms">admin dashboard</a>.</p>`, m.adminURL)
	}
	b.WriteString(`</div>`)
	return b.String()
}
