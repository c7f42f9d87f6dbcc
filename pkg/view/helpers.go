package view

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// MoneyFromCents formats cents with the currency symbol, e.g. 1050 EUR -> "€10.50".
func MoneyFromCents(cents int, currency string) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, currencySymbol(currency), cents/100, cents%100)
}

// Money formats a decimal amount.
func Money(amount float64, currency string) string {
	return fmt.Sprintf("%s%.2f", currencySymbol(currency), amount)
}

func currencySymbol(code string) string {
	switch code {
	case "EUR":
		return "€"
	case "USD":
		return "$"
	case "GBP":
		return "£"
	case "TRY":
		return "₺"
	case "":
		return ""
	default:
		return code + " "
	}
}

// Date renders an optional date; nil renders as "".
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// Named pairs an id with a display name; the id is shown when the name is
// unknown.
type Named struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NamedList(ids []string, names map[string]string) []Named {
	out := make([]Named, 0, len(ids))
	for _, id := range ids {
		n := names[id]
		if n == "" {
			n = id
		}
		out = append(out, Named{ID: id, Name: n})
	}
	return out
}
