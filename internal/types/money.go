// README: Common money value object used for stored trip costs and driver/passenger totals.
package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const DefaultCurrency = "USD"

// Money is an amount in minor units (cents).
type Money struct {
	Amount   int64
	Currency string
}

func Cents(amount int64) Money {
	return Money{Amount: amount, Currency: DefaultCurrency}
}

// ParseMoney parses decimal text such as "12.5" or "7" into cents, rounding half away from zero.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, fmt.Errorf("parse money %q: out of range", s)
	}
	return Cents(int64(math.Round(f * 100))), nil
}

func (m Money) Add(o Money) Money {
	cur := m.Currency
	if cur == "" {
		cur = o.Currency
	}
	return Money{Amount: m.Amount + o.Amount, Currency: cur}
}

func (m Money) String() string {
	sign := ""
	amt := m.Amount
	if amt < 0 {
		sign = "-"
		amt = -amt
	}
	return fmt.Sprintf("%s%d.%02d", sign, amt/100, amt%100)
}
