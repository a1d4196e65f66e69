package pricing

import "github.com/shopspring/decimal"

// AdjustMode modo de cálculo de un ajuste masivo.
type AdjustMode string

const (
	// ModePercentage nuevo = actual × (1 + valor/100)
	ModePercentage AdjustMode = "percentage"
	// ModeFixed nuevo = actual + valor
	ModeFixed AdjustMode = "fixed"
)

var cien = decimal.NewFromInt(100)

// Adjust aplica el ajuste sobre el valor actual (servicio de dominio, puro).
// El resultado nunca es negativo: se trunca en cero.
func Adjust(current decimal.Decimal, mode AdjustMode, value decimal.Decimal) decimal.Decimal {
	var result decimal.Decimal
	switch mode {
	case ModePercentage:
		factor := decimal.NewFromInt(1).Add(value.Div(cien))
		result = current.Mul(factor)
	case ModeFixed:
		result = current.Add(value)
	default:
		return current
	}
	return ClampZero(result)
}

// ClampZero trunca valores monetarios negativos a cero.
func ClampZero(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
