package cartera

import "github.com/shopspring/decimal"

// ARS is a helper for tests to create peso money from const
func ARS(v float64) Money { return M(v, LocalCurrency) }

// USD is a helper for tests to create dollar money from const
func USD(v float64) Money { return M(v, ReferenceCurrency) }

// fxrate is a helper for tests to create an exchange rate from const
func fxrate(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// closeTo reports whether two monetary values differ by less than a cent.
func closeTo(a, b Money) bool {
	return a.Decimal().Sub(b.Decimal()).Abs().LessThan(decimal.NewFromFloat(0.01))
}
