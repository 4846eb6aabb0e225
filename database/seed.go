// File: /database/seed.go
package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	applog "kustommania/logger"
	"kustommania/models"
)

// SeedData populates an empty database with the site configuration and a
// few sample motorcycles for development.
func SeedData(db *gorm.DB, whatsAppNumber string) error {
	log := applog.GetLogger()

	var existing models.SiteConfig
	err := db.First(&existing, "id = ?", models.SiteConfigID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg := models.DefaultSiteConfig()
		cfg.WhatsAppNumber = whatsAppNumber
		if err := db.Create(&cfg).Error; err != nil {
			return fmt.Errorf("failed to seed site config: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to read site config: %w", err)
	}

	var count int64
	if err := db.Model(&models.Motorcycle{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count motorcycles: %w", err)
	}
	if count > 0 {
		log.Info("database already has motorcycles, skipping seed")
		return nil
	}

	for i, m := range sampleMotorcycles() {
		m.ID = uuid.New().String()
		m.DisplayOrder = i
		if err := db.Create(&m).Error; err != nil {
			log.Warn("could not create sample motorcycle", zap.String("slug", m.Slug), zap.Error(err))
		}
	}

	log.Info("database seeded with sample motorcycles")
	return nil
}

func sampleMotorcycles() []models.Motorcycle {
	str := func(s string) *string { return &s }
	num := func(f float64) *float64 { return &f }
	year := func(y int) *int { return &y }

	return []models.Motorcycle{
		{
			Name:          "Harley-Davidson Sportster 883 Bobber",
			Slug:          "harley-davidson-sportster-883-bobber",
			Description:   "Bobber de líneas limpias con guardabarros recortados y asiento solo.",
			Engine:        "Evolution 883cc V-Twin",
			Exhaust:       "Escape corto 2 en 2 cromado",
			Paint:         "Negro mate con filetes dorados",
			Modifications: "Manubrio drag bar, faro bates, asiento solo de cuero",
			Brand:         str("Harley-Davidson"),
			Type:          str("Bobber"),
			Year:          year(2008),
			Price:         num(12500000),
			PriceUSD:      num(11000),
			Featured:      true,
			Status:        models.StatusStock,
		},
		{
			Name:            "Honda Shadow 750 Chopper",
			Slug:            "honda-shadow-750-chopper",
			Description:     "Chopper de horquilla extendida y tanque peanut.",
			Engine:          "750cc V-Twin refrigerado por agua",
			Exhaust:         "Escape fishtail",
			Paint:           "Rojo candy",
			Modifications:   "Horquilla +4, tanque peanut, sissy bar",
			Brand:           str("Honda"),
			Type:            str("Chopper"),
			Year:            year(2004),
			Price:           num(8900000),
			PriceUSD:        num(7800),
			OfferPercentage: num(10),
			Status:          models.StatusStock,
		},
		{
			Name:          "Triumph Bonneville Café Racer",
			Slug:          "triumph-bonneville-cafe-racer",
			Description:   "Café racer con semimanillares y colín monoplaza.",
			Engine:        "865cc bicilíndrico paralelo",
			Exhaust:       "Megafonos",
			Paint:         "Verde inglés",
			Modifications: "Semimanillares, colín, comandos retrasados",
			Brand:         str("Triumph"),
			Type:          str("Café Racer"),
			Year:          year(2012),
			Price:         num(4500000),
			Status:        models.StatusReserved,
		},
	}
}
