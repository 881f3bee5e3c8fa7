// Package display formats ledger values for people. The ledger itself only
// stores and compares raw values.
package display

import (
	"math"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const (
	storedDateLayout  = "2006-01-02"
	displayDateLayout = "02 Jan 2006"
)

// Amounts whose cents do not fit an int64 are grouped from the decimal text.
var maxCents = decimal.NewFromInt(math.MaxInt64)

// amountFormatter groups thousands with a space and keeps two decimals.
var amountFormatter = money.NewFormatter(2, ".", " ", "", "1")

// FormatDate renders an ISO date as "05 Mar 2024". Anything that does not
// parse is returned unchanged.
func FormatDate(s string) string {
	t, err := time.Parse(storedDateLayout, s)
	if err != nil {
		return s
	}
	return t.Format(displayDateLayout)
}

// FormatCurrency renders an amount as "1 234 567.89".
func FormatCurrency(amount float64) string {
	return FormatDecimal(decimal.NewFromFloat(amount))
}

// FormatDecimal is FormatCurrency for exact amounts.
func FormatDecimal(amount decimal.Decimal) string {
	cents := amount.Shift(2).Round(0)
	if cents.Abs().GreaterThan(maxCents) {
		return groupFixed(amount.StringFixed(2))
	}
	return amountFormatter.Format(cents.IntPart())
}

// groupFixed inserts the thousands separator into a "-1234.56" string.
func groupFixed(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(amountFormatter.Thousand)
		}
		b.WriteRune(r)
	}
	return sign + b.String() + amountFormatter.Decimal + frac
}

// FormatMoney appends the currency code, as in "1 000.00 KZT".
func FormatMoney(amount float64, currency string) string {
	if currency == "" {
		return FormatCurrency(amount)
	}
	return FormatCurrency(amount) + " " + currency
}

// FormatPercent renders a percentage with one decimal, as in "50.0%".
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}
