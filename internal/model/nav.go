package model

import "github.com/shopspring/decimal"

// NavSnapshot is one point-in-time valuation of the fund as reported upstream.
type NavSnapshot struct {
	FundCode         string
	Nav              Quantity
	CmpPrevDay       Quantity
	PercentageChange Quantity
	BaseDate         string // yyyymmdd
}

// Quantity is an upstream value kept as sent. Numeric is set when Raw
// parses as a decimal; otherwise Raw is rendered untouched.
type Quantity struct {
	Raw     string
	Value   decimal.Decimal
	Numeric bool
}

// ParseQuantity keeps s and, when it is a number, its decimal value.
func ParseQuantity(s string) Quantity {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{Raw: s}
	}
	return Quantity{Raw: s, Value: d, Numeric: true}
}

// NewQuantity wraps a known number.
func NewQuantity(d decimal.Decimal) Quantity {
	return Quantity{Raw: d.String(), Value: d, Numeric: true}
}

// IsPositive is false for anything that is not a number above zero.
func (q Quantity) IsPositive() bool {
	return q.Numeric && q.Value.IsPositive()
}

func (q Quantity) String() string {
	if q.Numeric {
		return q.Value.String()
	}
	return q.Raw
}
