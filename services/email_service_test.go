package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"kustommania/config"
	"kustommania/models"
	"kustommania/testutil"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func testEmailConfig() *config.Config {
	return &config.Config{
		SiteName:        "Kustom Mania",
		SMTPHost:        "smtp.example.com",
		SMTPPort:        587,
		FromEmail:       "noreply@kustommania.com",
		FromName:        "Kustom Mania",
		LeadNotifyEmail: "ventas@kustommania.com",
	}
}

func TestNewEmailService_DisabledWithoutConfig(t *testing.T) {
	cfg := testEmailConfig()
	cfg.LeadNotifyEmail = ""
	assert.Nil(t, NewEmailService(cfg))

	assert.NotNil(t, NewEmailService(testEmailConfig()))
}

func TestEmailService_NotifyLead(t *testing.T) {
	sender := &fakeSender{}
	es := &EmailService{config: testEmailConfig(), dialer: sender}

	lead := &models.Lead{
		ID:             "lead-1",
		Name:           "Ana <script>",
		Location:       "Córdoba",
		MotorcycleName: testutil.Ptr("Fat Boy"),
		Source:         models.LeadSourceContactForm,
	}
	require.NoError(t, es.NotifyLead(context.Background(), lead))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"ventas@kustommania.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Kustom Mania - Nueva consulta de Ana <script>"}, msg.GetHeader("Subject"))

	var body bytes.Buffer
	_, err := msg.WriteTo(&body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "Moto: Fat Boy")
	assert.NotContains(t, body.String(), "DNI:")
}

func TestEmailService_NotifyLeadError(t *testing.T) {
	es := &EmailService{config: testEmailConfig(), dialer: &fakeSender{err: errors.New("connection refused")}}

	err := es.NotifyLead(context.Background(), &models.Lead{ID: "lead-1"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestLeadFields(t *testing.T) {
	fields := leadFields(&models.Lead{
		Name:      "Juan",
		Location:  "Rosario",
		Source:    models.LeadSourceWhatsApp,
		DNI:       testutil.Ptr(""),
		UTMSource: testutil.Ptr("google"),
	})
	assert.Equal(t, [][2]string{
		{"Nombre", "Juan"},
		{"Localidad", "Rosario"},
		{"Origen", "whatsapp_button"},
		{"utm_source", "google"},
	}, fields)
}
