// File: /models/site_config.go
package models

import "time"

// SiteConfigID is the primary key of the singleton configuration row
const SiteConfigID = "site"

type SiteConfig struct {
	ID                string    `json:"id" gorm:"primaryKey;size:36"`
	WhatsAppNumber    string    `json:"whatsapp_number" gorm:"column:whatsapp_number;size:50"`
	HeroTitle         string    `json:"hero_title" gorm:"size:200"`
	HeroSubtitle      string    `json:"hero_subtitle" gorm:"size:200"`
	HeroDescription   string    `json:"hero_description" gorm:"type:text"`
	HeroButtonText    string    `json:"hero_button_text" gorm:"size:100"`
	HeroBackgroundURL *string   `json:"hero_background_url" gorm:"size:1000"`
	InstagramURL      *string   `json:"instagram_url" gorm:"size:500"`
	FacebookURL       *string   `json:"facebook_url" gorm:"size:500"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (SiteConfig) TableName() string {
	return "site_config"
}

// DefaultSiteConfig is rendered when no configuration row exists
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		ID:              SiteConfigID,
		HeroTitle:       "KUSTOM MANIA",
		HeroSubtitle:    "PASIÓN POR LAS DOS RUEDAS",
		HeroDescription: "Donde la personalidad se encuentra con el asfalto.",
		HeroButtonText:  "EXPLORAR LA COLECCIÓN",
	}
}

type SiteConfigRequest struct {
	WhatsAppNumber    string `form:"whatsapp_number" json:"whatsapp_number" binding:"required,max=50"`
	HeroTitle         string `form:"hero_title" json:"hero_title" binding:"required,max=200"`
	HeroSubtitle      string `form:"hero_subtitle" json:"hero_subtitle" binding:"max=200"`
	HeroDescription   string `form:"hero_description" json:"hero_description"`
	HeroButtonText    string `form:"hero_button_text" json:"hero_button_text" binding:"max=100"`
	HeroBackgroundURL string `form:"hero_background_url" json:"hero_background_url" binding:"omitempty,url"`
	InstagramURL      string `form:"instagram_url" json:"instagram_url" binding:"omitempty,url"`
	FacebookURL       string `form:"facebook_url" json:"facebook_url" binding:"omitempty,url"`
}
