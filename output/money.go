package output

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders amount in the given ISO currency, e.g. "$1,234.50" or
// "-$20.00". The amount is rounded to the currency's minor unit. Unknown
// currency codes fall back to the plain decimal followed by the code.
func FormatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}

	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
