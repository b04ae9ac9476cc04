package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is a USD amount in whole cents. Integer cents keep sums exact and
// independent of summation order.
type Money int64

// MoneyFromFloat rounds a decimal dollar amount to the nearest cent.
func MoneyFromFloat(dollars float64) Money {
	return Money(math.Round(dollars * 100))
}

// Dollars returns the amount as a decimal dollar value.
func (m Money) Dollars() float64 {
	return float64(m) / 100
}

// String renders the amount in US currency notation with cents.
func (m Money) String() string {
	p := message.NewPrinter(language.AmericanEnglish)
	return p.Sprint(currency.Symbol(currency.USD.Amount(m.Dollars())))
}

// MarshalJSON encodes the amount as a JSON number of dollars.
func (m Money) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, m.Dollars(), 'f', 2, 64), nil
}

// UnmarshalJSON accepts a JSON number, a numeric string, or null.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*m = MoneyFromFloat(f)
	return nil
}
