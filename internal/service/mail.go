package service

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"time"

	"github.com/MKhiriev/vitascope/models"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var mailTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

const (
	activationSubject = "VitaScope Account Activation"
	otpSubject        = "VitaScope Verification Code"
)

func activationMail(user models.User, link string, validFor time.Duration) (models.MailMessage, error) {
	return renderMail("activation.tmpl", user.Email, activationSubject, map[string]string{
		"Username": user.Username,
		"Link":     link,
		"ValidFor": humanDuration(validFor),
	})
}

func otpMail(pending models.PendingAuth, validFor time.Duration) (models.MailMessage, error) {
	return renderMail("otp.tmpl", pending.Email, otpSubject, map[string]string{
		"Username": pending.Username,
		"Code":     pending.OTPCode,
		"ValidFor": humanDuration(validFor),
	})
}

func renderMail(name, to, subject string, data any) (models.MailMessage, error) {
	var body bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&body, name, data); err != nil {
		return models.MailMessage{}, fmt.Errorf("error rendering %s: %w", name, err)
	}
	return models.MailMessage{To: to, Subject: subject, Body: body.String()}, nil
}

// humanDuration renders whole hours or minutes, e.g. "1 hour", "5 minutes".
func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
