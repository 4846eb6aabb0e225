// File: /services/pricing.go
package services

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Discount applies a percentage discount: price * (1 - pct/100).
func Discount(price, pct float64) float64 {
	p := decimal.NewFromFloat(price)
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(pct).Div(hundred))
	v, _ := p.Mul(factor).Float64()
	return v
}

// PriceView is what the pricing block renders for one motorcycle
type PriceView struct {
	Visible         bool
	HasOffer        bool
	OfferPercentage float64

	HasARS      bool
	OriginalARS float64
	FinalARS    float64

	HasUSD      bool
	OriginalUSD float64
	FinalUSD    float64
}

// NewPriceView computes original and discounted figures independently per
// currency. A nil or non-positive percentage means no offer, and a nil or
// non-positive price leaves that currency out.
func NewPriceView(priceARS, priceUSD, offerPct *float64) PriceView {
	view := PriceView{}
	if offerPct != nil && *offerPct > 0 {
		view.HasOffer = true
		view.OfferPercentage = *offerPct
	}

	if priceARS != nil && *priceARS > 0 {
		view.HasARS = true
		view.OriginalARS = *priceARS
		view.FinalARS = *priceARS
		if view.HasOffer {
			view.FinalARS = Discount(*priceARS, view.OfferPercentage)
		}
	}
	if priceUSD != nil && *priceUSD > 0 {
		view.HasUSD = true
		view.OriginalUSD = *priceUSD
		view.FinalUSD = *priceUSD
		if view.HasOffer {
			view.FinalUSD = Discount(*priceUSD, view.OfferPercentage)
		}
	}

	view.Visible = view.HasARS || view.HasUSD
	return view
}

// RoundPrice rounds half away from zero to a whole number
func RoundPrice(v float64) int64 {
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

// FormatARS renders "ARS 1.234.567" using Argentine grouping
func FormatARS(v float64) string {
	return "ARS " + humanize.FormatInteger("#.###,", int(RoundPrice(v)))
}

// FormatUSD renders "12,500 USD" using US grouping
func FormatUSD(v float64) string {
	return humanize.FormatInteger("#,###.", int(RoundPrice(v))) + " USD"
}

// FormatNumber renders a plain figure with Argentine grouping
func FormatNumber(v float64) string {
	return humanize.FormatInteger("#.###,", int(RoundPrice(v)))
}

// NetProfit is sale - purchase - expenses, with missing values as zero
func NetProfit(sale, purchase, expenses *float64) float64 {
	v, _ := decimalOf(sale).Sub(decimalOf(purchase)).Sub(decimalOf(expenses)).Float64()
	return v
}

// MarginPercent is profit / sale * 100, zero when there is no sale price
func MarginPercent(profit float64, sale *float64) float64 {
	s := decimalOf(sale)
	if s.IsZero() {
		return 0
	}
	v, _ := decimal.NewFromFloat(profit).Div(s).Mul(hundred).Float64()
	return v
}

func decimalOf(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}
