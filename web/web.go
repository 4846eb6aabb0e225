// Package web holds the embedded HTML templates and static assets of the
// public site and the admin panel.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"kustommania/models"
	"kustommania/services"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page and partial with the view helpers
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templateFS,
		"templates/*.html",
		"templates/admin/*.html",
	)
}

// Static serves css and images bundled with the binary
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatARS":    services.FormatARS,
		"formatUSD":    services.FormatUSD,
		"formatNumber": services.FormatNumber,
		"priceView": func(m models.Motorcycle) services.PriceView {
			return services.NewPriceView(m.Price, m.PriceUSD, m.OfferPercentage)
		},
		"cover": func(m models.Motorcycle) string {
			if img := m.PrimaryImage(); img != nil {
				return img.ImageURL
			}
			return "/static/placeholder.svg"
		},
		"str":       deref,
		"num":       numberInput,
		"int":       intInput,
		"date":      dateInput,
		"percent":   func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
		"plain":     func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
		"add":       func(a, b int) int { return a + b },
		"jsonLD":    jsonLD,
		"year":      func() int { return time.Now().Year() },
		"stages":    func() []models.MotorcycleStatus { return models.PipelineStages },
		"shortDate": func(t time.Time) string { return t.Format("02/01/2006 15:04") },
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// numberInput renders an optional figure for a form field
func numberInput(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func intInput(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func dateInput(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// jsonLD encodes a structured data block for a script tag
func jsonLD(v interface{}) (template.JS, error) {
	out, err := services.MarshalLD(v)
	if err != nil {
		return "", err
	}
	return template.JS(out), nil
}
