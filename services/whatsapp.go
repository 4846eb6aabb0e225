// File: /services/whatsapp.go
package services

import (
	"net/url"
	"strings"
	"unicode"

	"kustommania/models"
)

const (
	// DetailLeadName and DetailLeadLocation label leads from the detail
	// page button, where the visitor leaves no personal data.
	DetailLeadName     = "Consulta desde detalle"
	DetailLeadLocation = "ubicación a confirmar"
)

// StripNonDigits removes every rune that is not an ASCII digit
func StripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink builds a wa.me deep link. The fallback number is used when
// the configured one has no digits.
func WhatsAppLink(number, fallback, text string) string {
	digits := StripNonDigits(number)
	if digits == "" {
		digits = StripNonDigits(fallback)
	}
	link := "https://wa.me/" + digits
	if text == "" {
		return link
	}
	return link + "?text=" + encodeURIComponent(text)
}

// encodeURIComponent escapes text for the wa.me query with spaces as %20.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// DetailMessage is the prefilled text for the detail page button
func DetailMessage(motorcycleName, location string) string {
	return "Hola Kustom Mania, estoy interesado en la moto " + motorcycleName +
		" desde " + location + ". ¿Podrían darme más información?"
}

// ContactMessage is the prefilled text for the contact form
func ContactMessage(req models.ContactRequest) string {
	var b strings.Builder
	b.WriteString("Hola Kustom Mania, soy " + clean(req.Name) + " de " + clean(req.Location) + ".")
	if v := clean(req.DNI); v != "" {
		b.WriteString(" Mi DNI es " + v + ".")
	}
	if v := clean(req.Model); v != "" {
		b.WriteString(" Estoy interesado en " + v + ".")
	}
	if v := clean(req.ConsultationReason); v != "" {
		b.WriteString(" Motivo de consulta: " + v + ".")
	}
	if v := clean(req.InterestArea); v != "" {
		b.WriteString(" Me interesa: " + v + ".")
	}
	if v := clean(req.SpecificQuestion); v != "" {
		b.WriteString(" Pregunta: " + v)
	}
	return b.String()
}

func clean(s string) string {
	return strings.TrimFunc(s, unicode.IsSpace)
}
