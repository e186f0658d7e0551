// Package pricing computes quote totals from a configuration snapshot and a
// customer selection. Everything here is a pure function over its inputs.
package pricing

import (
	"math"

	"pricecard/internal/models"
)

// AppliedModifier represents one modifier's contribution to a quote
type AppliedModifier struct {
	Name    string `json:"name"`
	Percent int    `json:"percent"`
	Amount  int    `json:"amount"`
}

// Quote represents the priced result of a selection
type Quote struct {
	Subtotal int               `json:"subtotal"`
	Total    int               `json:"total"`
	Applied  []AppliedModifier `json:"appliedModifiers"`
}

// Calculate prices the selection against the configuration. Cart entries for
// unknown item ids contribute nothing; active modifiers apply in the
// configuration's modifier order, never in toggle order. The total is floored
// at zero, the subtotal is not (it cannot go negative by construction).
func Calculate(cfg *models.AppData, cart models.Cart, active models.ModifierSet) Quote {
	quote := Quote{Applied: []AppliedModifier{}}
	if cfg == nil {
		return quote
	}

	for _, cat := range cfg.Categories {
		for _, item := range cat.Items {
			if qty := cart.Quantity(item.ID); qty > 0 {
				quote.Subtotal += item.Price * qty
			}
		}
	}

	total := quote.Subtotal
	for _, mod := range cfg.Modifiers {
		if !active.Has(mod.ID) {
			continue
		}
		amount := roundPercent(quote.Subtotal, mod.Percent)
		total += amount
		quote.Applied = append(quote.Applied, AppliedModifier{
			Name:    mod.Name,
			Percent: mod.Percent,
			Amount:  amount,
		})
	}

	if total < 0 {
		total = 0
	}
	quote.Total = total
	return quote
}

// roundPercent rounds half away from zero, so -10% of 25 is -3, not -2.
func roundPercent(subtotal, percent int) int {
	return int(math.Round(float64(subtotal) * float64(percent) / 100))
}
