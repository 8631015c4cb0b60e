package service

import (
	"github.com/vraj1599/jasubhaichappal/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals: итоговые суммы заказа, округлённые до двух знаков.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals считает subtotal, скидку по процентному купону и итог.
func ComputeTotals(items []models.OrderItem, discountPercent float64) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(line)
	}
	subtotal = subtotal.Round(2)

	discount := decimal.Zero
	if discountPercent > 0 {
		discount = subtotal.Mul(decimal.NewFromFloat(discountPercent)).Div(hundred).Round(2)
	}
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return Totals{Subtotal: subtotal, Discount: discount, Total: total.Round(2)}
}

// ToMinorUnits переводит сумму в пайсы для платёжного шлюза.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
