package utils

import "github.com/shopspring/decimal"

var (
	Hundred = decimal.NewFromInt(100)
	Twelve  = decimal.NewFromInt(12)
)

// Round2 arredonda para centavos (half away from zero)
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent retorna value * pct / 100
func Percent(value, pct decimal.Decimal) decimal.Decimal {
	return value.Mul(pct).Div(Hundred)
}

// ApplyPercentDiscount retorna value * (1 - pct/100)
func ApplyPercentDiscount(value, pct decimal.Decimal) decimal.Decimal {
	return value.Mul(Hundred.Sub(pct)).Div(Hundred)
}

// ValidPercent indica se pct está em [0, 100]
func ValidPercent(pct decimal.Decimal) bool {
	return !pct.IsNegative() && pct.LessThanOrEqual(Hundred)
}

func MaxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
