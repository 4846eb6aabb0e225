// File: /services/email_service.go
package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"kustommania/config"
	applog "kustommania/logger"
	"kustommania/models"
)

// LeadNotifier is told about every lead that was stored
type LeadNotifier interface {
	NotifyLead(ctx context.Context, lead *models.Lead) error
}

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailService struct {
	config *config.Config
	dialer mailSender
}

// NewEmailService returns nil when SMTP or the recipient is not configured
func NewEmailService(cfg *config.Config) *EmailService {
	if cfg.SMTPHost == "" || cfg.LeadNotifyEmail == "" {
		return nil
	}
	return &EmailService{
		config: cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// NotifyLead mails the lead summary to LEAD_NOTIFY_EMAIL
func (es *EmailService) NotifyLead(ctx context.Context, lead *models.Lead) error {
	m := es.leadMessage(lead)
	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send lead email: %w", err)
	}

	applog.FromContext(ctx).Info("lead notification sent",
		zap.String("lead_id", lead.ID),
		zap.String("to", es.config.LeadNotifyEmail),
	)
	return nil
}

func (es *EmailService) leadMessage(lead *models.Lead) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", es.config.LeadNotifyEmail)
	m.SetHeader("Subject", fmt.Sprintf("%s - Nueva consulta de %s", es.config.SiteName, lead.Name))

	fields := leadFields(lead)

	var text strings.Builder
	text.WriteString("Nueva consulta recibida\n\n")
	for _, f := range fields {
		fmt.Fprintf(&text, "%s: %s\n", f[0], f[1])
	}

	var rows strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&rows, `<tr><td class="label">%s</td><td>%s</td></tr>`,
			html.EscapeString(f[0]), html.EscapeString(f[1]))
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Nueva consulta</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #222; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #111; color: #f5c518; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 24px; border-radius: 0 0 10px 10px; }
        td { padding: 6px 10px; vertical-align: top; }
        .label { font-weight: bold; color: #555; white-space: nowrap; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>%s</h2><p>Nueva consulta recibida</p></div>
        <div class="content"><table>%s</table></div>
    </div>
</body>
</html>`, html.EscapeString(es.config.SiteName), rows.String())

	m.SetBody("text/plain", text.String())
	m.AddAlternative("text/html", htmlBody)
	return m
}

func leadFields(lead *models.Lead) [][2]string {
	fields := [][2]string{
		{"Nombre", lead.Name},
		{"Localidad", lead.Location},
		{"Origen", string(lead.Source)},
	}
	optional := []struct {
		label string
		value *string
	}{
		{"DNI", lead.DNI},
		{"Moto", lead.MotorcycleName},
		{"Motivo", lead.ConsultationReason},
		{"Interés", lead.InterestArea},
		{"Pregunta", lead.SpecificQuestion},
		{"utm_source", lead.UTMSource},
		{"utm_medium", lead.UTMMedium},
		{"utm_campaign", lead.UTMCampaign},
		{"Página", lead.OriginRoute},
	}
	for _, o := range optional {
		if o.value != nil && *o.value != "" {
			fields = append(fields, [2]string{o.label, *o.value})
		}
	}
	return fields
}
