package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kustommania/models"
)

func TestStripNonDigits(t *testing.T) {
	inputs := map[string]string{
		"+54 9 351 123-4567": "5493511234567",
		"(011) 4444.5555":    "01144445555",
		"sin número":         "",
		"٣٤٥12":              "12",
		"":                   "",
	}
	for in, want := range inputs {
		got := StripNonDigits(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, StripNonDigits(got), "idempotent for %q", in)
	}
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/5493511234567", WhatsAppLink("+54 9 351 123-4567", "", ""))
	assert.Equal(t, "https://wa.me/5491112345678?text=Hola%20mundo%3F", WhatsAppLink("", "5491112345678", "Hola mundo?"))
	assert.Equal(t, "https://wa.me/5491112345678", WhatsAppLink("n/a", "+54 9 11 1234-5678", ""))
}

func TestDetailMessage(t *testing.T) {
	assert.Equal(t,
		"Hola Kustom Mania, estoy interesado en la moto Fat Boy desde Córdoba. ¿Podrían darme más información?",
		DetailMessage("Fat Boy", "Córdoba"),
	)
}

func TestContactMessage(t *testing.T) {
	t.Run("required fields only", func(t *testing.T) {
		msg := ContactMessage(models.ContactRequest{Name: " Juan ", Location: "Rosario"})
		assert.Equal(t, "Hola Kustom Mania, soy Juan de Rosario.", msg)
	})

	t.Run("all fields", func(t *testing.T) {
		msg := ContactMessage(models.ContactRequest{
			Name:               "Ana",
			Location:           "Córdoba",
			DNI:                "30111222",
			Model:              "Fat Boy",
			ConsultationReason: "Compra",
			InterestArea:       "Bobbers",
			SpecificQuestion:   "¿Aceptan permuta?",
		})
		assert.Equal(t, "Hola Kustom Mania, soy Ana de Córdoba. Mi DNI es 30111222. Estoy interesado en Fat Boy."+
			" Motivo de consulta: Compra. Me interesa: Bobbers. Pregunta: ¿Aceptan permuta?", msg)
	})
}

func TestGenerateSlug(t *testing.T) {
	tests := map[string]string{
		"Harley Davidson Sportster": "harley-davidson-sportster",
		"Café Racer Ñandú":          "cafe-racer-nandu",
		"  --Bobber 883!!  ":        "bobber-883",
		"Chopper/Custom (2019)":     "chopper-custom-2019",
		"¿¿??":                      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, GenerateSlug(in), in)
	}
}
