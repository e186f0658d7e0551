// Package receipt renders the copyable plain-text order summary. The output
// is byte-stable for identical inputs.
package receipt

import (
	"fmt"
	"strings"

	"pricecard/internal/models"
	"pricecard/internal/pricing"
)

const (
	// EmptyNotice is returned when the selection holds no items
	EmptyNotice = "Nothing selected yet."

	header    = "=== Your order ==="
	separator = "----------------"
)

// Format renders a text receipt for the selection. With no selected items it
// returns EmptyNotice and nothing else; modifiers are only shown when at
// least one applies, preceded by a subtotal line.
func Format(cfg *models.AppData, cart models.Cart, active models.ModifierSet) string {
	if cfg == nil {
		return EmptyNotice
	}

	var lines []string
	for _, cat := range cfg.Categories {
		for _, item := range cat.Items {
			qty := cart.Quantity(item.ID)
			if qty <= 0 {
				continue
			}
			if qty > 1 {
				lines = append(lines, fmt.Sprintf("%s x%d $%d", item.Name, qty, item.Price*qty))
			} else {
				lines = append(lines, fmt.Sprintf("%s $%d", item.Name, item.Price))
			}
		}
	}
	if len(lines) == 0 {
		return EmptyNotice
	}

	quote := pricing.Calculate(cfg, cart, active)

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if len(quote.Applied) > 0 {
		fmt.Fprintf(&b, "Subtotal: $%d\n", quote.Subtotal)
		for _, mod := range quote.Applied {
			fmt.Fprintf(&b, "%s (%d%%): %+d\n", mod.Name, mod.Percent, mod.Amount)
		}
	}

	b.WriteString(separator)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Total: $%d", quote.Total)
	return b.String()
}
