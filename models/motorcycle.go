// File: /models/motorcycle.go
package models

import (
	"time"
)

type Motorcycle struct {
	ID            string  `json:"id" gorm:"primaryKey;size:36"`
	Name          string  `json:"name" gorm:"not null;size:200"`
	Slug          string  `json:"slug" gorm:"uniqueIndex;not null;size:191"`
	Description   string  `json:"description" gorm:"type:text"`
	Engine        string  `json:"engine" gorm:"size:255"`
	Exhaust       string  `json:"exhaust" gorm:"size:255"`
	Paint         string  `json:"paint" gorm:"size:255"`
	Modifications string  `json:"modifications" gorm:"type:text"`
	Brand         *string `json:"brand" gorm:"size:100;index"`
	Type          *string `json:"motorcycle_type" gorm:"column:motorcycle_type;size:100"`
	Year          *int    `json:"year"`

	// Public prices
	Price           *float64 `json:"price"`
	PriceUSD        *float64 `json:"price_usd" gorm:"column:price_usd"`
	OfferPercentage *float64 `json:"offer_percentage"`
	Featured        bool     `json:"featured" gorm:"default:false"`
	DisplayOrder    int      `json:"display_order" gorm:"default:0;index"`

	// Internal commercial data, never rendered on public pages
	PurchasePrice       *float64         `json:"-"`
	SalePrice           *float64         `json:"-"`
	Expenses            *float64         `json:"-"`
	PurchaseDate        *time.Time       `json:"-"`
	SaleDate            *time.Time       `json:"-"`
	Status              MotorcycleStatus `json:"status" gorm:"size:20;default:stock;index"`
	Notes               *string          `json:"-" gorm:"type:text"`
	TradeInMotorcycleID *string          `json:"-" gorm:"size:36"`
	TradeInValue        *float64         `json:"-"`
	CashPayment         *float64         `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Images []MotorcycleImage `json:"images,omitempty" gorm:"foreignKey:MotorcycleID;constraint:OnDelete:CASCADE"`
}

// Stage returns the pipeline stage, treating an empty status as stock.
func (m Motorcycle) Stage() MotorcycleStatus {
	if m.Status == "" {
		return StatusStock
	}
	return m.Status
}

// IsAvailable reports whether the motorcycle is still for sale.
func (m Motorcycle) IsAvailable() bool {
	return m.Stage() == StatusStock
}

// BrandName returns the brand or an empty string.
func (m Motorcycle) BrandName() string {
	if m.Brand == nil {
		return ""
	}
	return *m.Brand
}

// TypeName returns the motorcycle type or an empty string.
func (m Motorcycle) TypeName() string {
	if m.Type == nil {
		return ""
	}
	return *m.Type
}

// PriceValue returns the ARS price, zero when unset.
func (m Motorcycle) PriceValue() float64 {
	if m.Price == nil {
		return 0
	}
	return *m.Price
}

// PrimaryImage returns the cover image: the flagged primary, otherwise the
// lowest display order, ties broken by creation time.
func (m Motorcycle) PrimaryImage() *MotorcycleImage {
	var cover *MotorcycleImage
	for i := range m.Images {
		img := &m.Images[i]
		if img.IsPrimary {
			return img
		}
		if cover == nil || img.before(cover) {
			cover = img
		}
	}
	return cover
}

// OrderedImages returns the gallery with the cover first and the rest by
// display order.
func (m Motorcycle) OrderedImages() []MotorcycleImage {
	cover := m.PrimaryImage()
	if cover == nil {
		return nil
	}
	rest := make([]MotorcycleImage, 0, len(m.Images))
	for _, img := range m.Images {
		if img.ID != cover.ID {
			rest = append(rest, img)
		}
	}
	SortImages(rest)
	return append([]MotorcycleImage{*cover}, rest...)
}

type MotorcycleRequest struct {
	Name            string `form:"name" json:"name" binding:"required,max=200"`
	Slug            string `form:"slug" json:"slug" binding:"max=191"`
	Description     string `form:"description" json:"description"`
	Engine          string `form:"engine" json:"engine"`
	Exhaust         string `form:"exhaust" json:"exhaust"`
	Paint           string `form:"paint" json:"paint"`
	Modifications   string `form:"modifications" json:"modifications"`
	Brand           string `form:"brand" json:"brand"`
	Type            string `form:"motorcycle_type" json:"motorcycle_type"`
	Year            string `form:"year" json:"year"`
	Price           string `form:"price" json:"price"`
	PriceUSD        string `form:"price_usd" json:"price_usd"`
	OfferPercentage string `form:"offer_percentage" json:"offer_percentage"`
	Featured        bool   `form:"featured" json:"featured"`
	DisplayOrder    string `form:"display_order" json:"display_order"`
	PurchasePrice   string `form:"purchase_price" json:"purchase_price"`
	SalePrice       string `form:"sale_price" json:"sale_price"`
	Expenses        string `form:"expenses" json:"expenses"`
	PurchaseDate    string `form:"purchase_date" json:"purchase_date"`
	SaleDate        string `form:"sale_date" json:"sale_date"`
	Status          string `form:"status" json:"status"`
	Notes           string `form:"notes" json:"notes"`
	TradeInID       string `form:"trade_in_motorcycle_id" json:"trade_in_motorcycle_id"`
	TradeInValue    string `form:"trade_in_value" json:"trade_in_value"`
	CashPayment     string `form:"cash_payment" json:"cash_payment"`
}
