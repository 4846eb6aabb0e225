// File: /models/types.go
package models

import (
	"database/sql/driver"
	"fmt"
)

// MotorcycleStatus is the commercial stage of a motorcycle
type MotorcycleStatus string

const (
	StatusStock     MotorcycleStatus = "stock"
	StatusReserved  MotorcycleStatus = "reserved"
	StatusSold      MotorcycleStatus = "sold"
	StatusDelivered MotorcycleStatus = "delivered"
)

// PipelineStages lists the stages in board order
var PipelineStages = []MotorcycleStatus{StatusStock, StatusReserved, StatusSold, StatusDelivered}

var statusLabels = map[MotorcycleStatus]string{
	StatusStock:     "En Stock",
	StatusReserved:  "Reservada",
	StatusSold:      "Vendida",
	StatusDelivered: "Entregada",
}

// Label returns the display name of the stage
func (s MotorcycleStatus) Label() string {
	if s == "" {
		return statusLabels[StatusStock]
	}
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Valid reports whether s is one of the four stages
func (s MotorcycleStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// IsSold reports whether the stage counts as a completed sale
func (s MotorcycleStatus) IsSold() bool {
	return s == StatusSold || s == StatusDelivered
}

// ParseStatus converts a form value into a stage. Empty input means stock.
func ParseStatus(value string) (MotorcycleStatus, error) {
	if value == "" {
		return StatusStock, nil
	}
	s := MotorcycleStatus(value)
	if !s.Valid() {
		return "", fmt.Errorf("invalid status %q", value)
	}
	return s, nil
}

// Value implements driver.Valuer interface for database storage
func (s MotorcycleStatus) Value() (driver.Value, error) {
	if s == "" {
		return string(StatusStock), nil
	}
	return string(s), nil
}

// Scan implements sql.Scanner interface for database retrieval
func (s *MotorcycleStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = StatusStock
	case []byte:
		*s = MotorcycleStatus(v)
	case string:
		*s = MotorcycleStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into MotorcycleStatus", value)
	}
	return nil
}

// LeadSource records which surface produced a lead
type LeadSource string

const (
	LeadSourceContactForm LeadSource = "contact_form"
	LeadSourceWhatsApp    LeadSource = "whatsapp_button"
)
