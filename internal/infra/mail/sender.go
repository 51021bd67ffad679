package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/ipshopy/order-notify/internal/entity"
	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     "no-reply@ipshopy.com",
	}
}

var reportTemplate = template.Must(template.New("report").Parse(`WhatsApp automation run {{.RunID}} finished.

Total:   {{.Result.Total}}
Success: {{.Result.Success}}
Failed:  {{.Result.Failed}}
Skipped: {{.Result.Skipped}}

Per-order outcomes:
{{range .Result.Details}}  #{{.OrderID}}  {{.Status}}{{if .Reason}} ({{.Reason}}){{end}}
{{end}}`))

// SendBatchReport mails the run summary to the operations address.
func (s *EmailSender) SendBatchReport(to string, runID string, result entity.BatchResult) error {
	data := struct {
		RunID  string
		Result entity.BatchResult
	}{RunID: runID, Result: result}

	var body bytes.Buffer
	if err := reportTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("report template failed: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("WhatsApp batch report: %d sent, %d failed, %d skipped",
		result.Success, result.Failed, result.Skipped))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("report email send failed: %w", err)
	}

	return nil
}
