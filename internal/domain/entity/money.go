package entity

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of fractional digits kept for baht amounts.
const MoneyPlaces = 2

// RoundMoney rounds half away from zero to two digits, which is round-half-up
// for the non-negative amounts handled here.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// SumMoney adds amounts exactly and rounds the result.
func SumMoney(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return RoundMoney(total)
}
