package mailer

import mailtpl "github.com/oksasatya/go-qkart-backend/pkg/mailer/templates"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template is set and rendered with Data, or Subject/Text/HTML are sent as-is.
type EmailJob struct {
	To       string       `json:"to"`
	Subject  string       `json:"subject,omitempty"`
	Text     string       `json:"text,omitempty"`
	HTML     string       `json:"html,omitempty"`
	Template string       `json:"template,omitempty"` // "welcome" or "address_updated"
	Data     mailtpl.Data `json:"data"`
}

// Content resolves the subject and bodies to send.
func (j EmailJob) Content() (subject, text, html string, err error) {
	if j.Template == "" {
		return j.Subject, j.Text, j.HTML, nil
	}
	return mailtpl.Render(j.Template, j.Data)
}
