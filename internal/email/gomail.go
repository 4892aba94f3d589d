package email

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/intake-api/config"
	"github.com/jwalitptl/intake-api/internal/model"
)

const offerSubject = "Available appointment times"

var offerTemplate = template.Must(template.New("offer").Parse(
	`Hi {{.Name}},

Thank you for reaching out to us. The following appointment times are currently available:

{{range .Offers}}  - {{.Day}} at {{.Time}} with {{.Clinicians}}
{{end}}
Please reply to this email with the option that works best for you and we will get you scheduled.

Warm regards,
The Intake Team
`))

type offerData struct {
	Name   string
	Offers []offerLine
}

type offerLine struct {
	Day        string
	Time       string
	Clinicians string
}

// GomailService sends mail through the practice's SMTP relay.
type GomailService struct {
	dialer  *gomail.Dialer
	from    string
	replyTo string
}

func NewGomailService(cfg config.SMTPConfig, replyTo string) *GomailService {
	return &GomailService{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    cfg.From,
		replyTo: replyTo,
	}
}

func (s *GomailService) SendOffer(ctx context.Context, to, clientName string, offers []model.SelectedSlotInfo) error {
	body, err := RenderOffer(clientName, offers)
	if err != nil {
		return err
	}
	return s.send(ctx, to, offerSubject, body)
}

func (s *GomailService) SendCustom(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body)
}

func (s *GomailService) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	if s.replyTo != "" {
		m.SetHeader("Reply-To", s.replyTo)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// RenderOffer builds the plain-text offer body from the selected slots.
func RenderOffer(clientName string, offers []model.SelectedSlotInfo) (string, error) {
	data := offerData{Name: clientName}
	for _, o := range offers {
		data.Offers = append(data.Offers, offerLine{
			Day:        o.Day,
			Time:       o.Time,
			Clinicians: strings.Join(o.Clinicians, " or "),
		})
	}

	var buf bytes.Buffer
	if err := offerTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render offer email: %w", err)
	}
	return buf.String(), nil
}
