// File: /models/lead.go
package models

import "time"

// Lead is a write-once contact intent left by a visitor
type Lead struct {
	ID                 string     `json:"id" gorm:"primaryKey;size:36"`
	Name               string     `json:"name" gorm:"not null;size:200"`
	Location           string     `json:"location" gorm:"not null;size:200"`
	DNI                *string    `json:"dni" gorm:"column:dni;size:20"`
	ConsultationReason *string    `json:"consultation_reason" gorm:"size:100"`
	InterestArea       *string    `json:"interest_area" gorm:"size:200"`
	SpecificQuestion   *string    `json:"specific_question" gorm:"type:text"`
	MotorcycleID       *string    `json:"motorcycle_id" gorm:"size:36;index"`
	MotorcycleName     *string    `json:"motorcycle_name" gorm:"size:200"`
	UTMSource          *string    `json:"utm_source" gorm:"column:utm_source;size:100"`
	UTMMedium          *string    `json:"utm_medium" gorm:"column:utm_medium;size:100"`
	UTMCampaign        *string    `json:"utm_campaign" gorm:"column:utm_campaign;size:100"`
	OriginRoute        *string    `json:"origin_route" gorm:"size:500"`
	Source             LeadSource `json:"source" gorm:"size:30;default:contact_form"`
	CreatedAt          time.Time  `json:"created_at" gorm:"index"`
}

// Attribution carries the UTM parameters and the page a lead came from
type Attribution struct {
	UTMSource   string `form:"utm_source" json:"utm_source"`
	UTMMedium   string `form:"utm_medium" json:"utm_medium"`
	UTMCampaign string `form:"utm_campaign" json:"utm_campaign"`
	OriginRoute string `form:"origin_route" json:"origin_route"`
}

type ContactRequest struct {
	Name               string `form:"nombre" json:"name" binding:"required,max=200"`
	Location           string `form:"localidad" json:"location" binding:"required,max=200"`
	DNI                string `form:"dni" json:"dni" binding:"max=20"`
	Model              string `form:"modelo" json:"model" binding:"max=200"`
	ConsultationReason string `form:"motivoConsulta" json:"consultation_reason" binding:"max=100"`
	InterestArea       string `form:"interes" json:"interest_area" binding:"max=200"`
	SpecificQuestion   string `form:"preguntaEspecifica" json:"specific_question" binding:"max=2000"`
}

type WhatsAppLeadRequest struct {
	MotorcycleID string `json:"motorcycle_id" binding:"required"`
	Location     string `json:"location"`
	Attribution
}

// LeadStats summarizes the leads table for the admin view
type LeadStats struct {
	Total          int
	WithMotorcycle int
	ThisMonth      int
	ByMotorcycle   []LeadCount
}

type LeadCount struct {
	MotorcycleName string
	Count          int
}
