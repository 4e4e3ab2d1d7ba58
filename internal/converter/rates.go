package converter

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"

	"github.com/mukundrex/flight-mcp-server/internal/domain"
)

// RateProvider normalizes a vendor-quoted price into the display currency.
type RateProvider interface {
	Convert(amount float64, currencyCode string) domain.Price
}

// FixedRate applies one static exchange rate. It does not follow the market;
// swap in another RateProvider for live rates.
type FixedRate struct {
	From currency.Unit
	To   currency.Unit
	Rate float64
}

// NewFixedRate validates both ISO 4217 codes.
func NewFixedRate(from, to string, rate float64) (*FixedRate, error) {
	fromUnit, err := currency.ParseISO(from)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", from, err)
	}
	toUnit, err := currency.ParseISO(to)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", to, err)
	}
	if rate <= 0 {
		return nil, fmt.Errorf("rate must be positive, got %v", rate)
	}
	return &FixedRate{From: fromUnit, To: toUnit, Rate: rate}, nil
}

// DefaultRate is EUR to INR at 102.57.
func DefaultRate() *FixedRate {
	return &FixedRate{From: currency.EUR, To: currency.INR, Rate: 102.57}
}

func (r *FixedRate) Convert(amount float64, currencyCode string) domain.Price {
	if currencyCode != r.From.String() {
		return domain.Price{Amount: amount, Currency: currencyCode}
	}
	return domain.Price{Amount: roundCents(amount * r.Rate), Currency: r.To.String()}
}

// PassThrough leaves prices untouched.
type PassThrough struct{}

func (PassThrough) Convert(amount float64, currencyCode string) domain.Price {
	return domain.Price{Amount: amount, Currency: currencyCode}
}

// roundCents rounds half away from zero at two decimals. Prices are never
// negative, so this matches round-half-up.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// truncCents drops everything past two decimals. The epsilon absorbs binary
// representation error such as 100.0/3*100 = 3333.3333333333335.
func truncCents(v float64) float64 {
	return math.Trunc(v*100+1e-9) / 100
}
