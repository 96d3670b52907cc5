package email

import (
	_ "embed"
	"strings"
	"text/template"
)

// The subject and message are embedded verbatim; the mail vendor owns any
// further sanitization, matching the platform's original template contract.
//
//go:embed template/email.html.tmpl
var emailTemplate string

var tmpl = template.Must(template.New("email").Parse(emailTemplate))

func renderTemplate(subject, message string) (string, error) {
	var buf strings.Builder
	err := tmpl.Execute(&buf, struct {
		Subject string
		Message string
	}{Subject: subject, Message: message})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
