package common

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Amount is an arbitrary precision integer serialized as a decimal string.
// Operations never mutate the receiver.
type Amount big.Int

var Zero = NewAmount(0)

func NewAmount(v int64) Amount {
	var a Amount
	a.Big().SetInt64(v)
	return a
}

func NewAmountFromBig(v *big.Int) Amount {
	var a Amount
	if v != nil {
		a.Big().Set(v)
	}
	return a
}

func ParseAmount(s string) (Amount, error) {
	var a Amount
	if err := a.UnmarshalText([]byte(s)); err != nil {
		return Zero, err
	}
	return a, nil
}

func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ExpandDecimals returns n * 10^decimals
func ExpandDecimals(n int64, decimals int) Amount {
	var a Amount
	a.Big().Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	a.Big().Mul(a.Big(), big.NewInt(n))
	return a
}

func (a *Amount) Big() *big.Int {
	return (*big.Int)(a)
}

// Clone returns a copy that does not share memory with a
func (a Amount) Clone() *big.Int {
	return new(big.Int).Set(a.Big())
}

func (a Amount) Add(b Amount) Amount {
	var r Amount
	r.Big().Add(a.Big(), b.Big())
	return r
}

func (a Amount) Sub(b Amount) Amount {
	var r Amount
	r.Big().Sub(a.Big(), b.Big())
	return r
}

func (a Amount) Mul(b Amount) Amount {
	var r Amount
	r.Big().Mul(a.Big(), b.Big())
	return r
}

func (a Amount) Mul64(b int64) Amount {
	return a.Mul(NewAmount(b))
}

// Div truncates toward zero. Division by zero yields zero.
func (a Amount) Div(b Amount) Amount {
	if b.IsZero() {
		return Zero
	}
	var r Amount
	r.Big().Quo(a.Big(), b.Big())
	return r
}

func (a Amount) Div64(b int64) Amount {
	return a.Div(NewAmount(b))
}

func (a Amount) Cmp(b Amount) int {
	return a.Big().Cmp(b.Big())
}

func (a Amount) Equal(b Amount) bool {
	return a.Cmp(b) == 0
}

func (a Amount) IsLess(b Amount) bool {
	return a.Cmp(b) < 0
}

func (a Amount) IsZero() bool {
	return a.Big().Sign() == 0
}

func (a Amount) IsNeg() bool {
	return a.Big().Sign() < 0
}

func (a Amount) IsPositive() bool {
	return a.Big().Sign() > 0
}

func (a Amount) String() string {
	return a.Big().String()
}

// Format renders the amount as a decimal number with displayDecimals fractional digits (truncated)
func (a Amount) Format(decimals int, displayDecimals int) string {
	if displayDecimals > decimals {
		displayDecimals = decimals
	}
	scaled := a.Div(ExpandDecimals(1, decimals-displayDecimals))
	s := scaled.Big().String()
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if displayDecimals > 0 {
		if len(s) <= displayDecimals {
			s = strings.Repeat("0", displayDecimals-len(s)+1) + s
		}
		s = s[:len(s)-displayDecimals] + "." + s[len(s)-displayDecimals:]
	}
	if negative {
		s = "-" + s
	}
	return s
}

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalText(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" {
		a.Big().SetInt64(0)
		return nil
	}
	if _, ok := a.Big().SetString(s, 10); !ok {
		return fmt.Errorf("invalid amount '%s'", s)
	}
	return nil
}

// UnmarshalJSON accepts both quoted decimal strings and bare numbers
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return a.UnmarshalText([]byte(s))
	}
	return a.UnmarshalText(data)
}

// MarshalCSV renders amounts in csv reports
func (a Amount) MarshalCSV() (string, error) {
	return a.String(), nil
}

func SumAmounts(amounts ...Amount) Amount {
	total := Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}
