// File: /models/currency.go
package models

import "time"

// BlueRate is one quote of the informal ARS/USD exchange rate
type BlueRate struct {
	Buy       float64   `json:"compra"`
	Sell      float64   `json:"venta"`
	House     string    `json:"casa"`
	Name      string    `json:"nombre"`
	Currency  string    `json:"moneda"`
	UpdatedAt time.Time `json:"fechaActualizacion"`
}

type ConversionResponse struct {
	Amount    float64   `json:"amount"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Result    float64   `json:"result"`
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updated_at"`
}
