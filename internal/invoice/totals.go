package invoice

import (
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
)

// Totals consolida os itens da fatura. BalanceDue nunca é negativo;
// RawBalance guarda o valor real (negativo quando há pagamento a maior).
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discountTotal"`
	Total         decimal.Decimal `json:"total"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	BalanceDue    decimal.Decimal `json:"balanceDue"`
	RawBalance    decimal.Decimal `json:"rawBalance"`
}

// LineItemAmount calcula o valor do item. Desconto fixo maior que o bruto zera o item.
func LineItemAmount(item models.InvoiceLineItem) (decimal.Decimal, error) {
	if item.Quantity.IsNegative() || item.Rate.IsNegative() || item.DiscountValue.IsNegative() {
		return decimal.Zero, utils.InvalidInput("item %q com quantidade, valor ou desconto negativo", item.Description)
	}
	gross := item.Quantity.Mul(item.Rate)

	switch item.DiscountType {
	case models.DiscountPercent:
		if item.DiscountValue.GreaterThan(utils.Hundred) {
			return decimal.Zero, utils.InvalidInput("item %q com desconto acima de 100%%", item.Description)
		}
		return utils.Round2(utils.ApplyPercentDiscount(gross, item.DiscountValue)), nil
	case models.DiscountFlat:
		return utils.Round2(utils.MaxZero(gross.Sub(item.DiscountValue))), nil
	case "":
		if !item.DiscountValue.IsZero() {
			return decimal.Zero, utils.InvalidInput("item %q com desconto sem tipo", item.Description)
		}
		return utils.Round2(gross), nil
	}
	return decimal.Zero, utils.InvalidInput("tipo de desconto desconhecido: %q", item.DiscountType)
}

// ComputeTotals soma os itens. Subtotal é antes do desconto; Total é depois.
func ComputeTotals(items []models.InvoiceLineItem, amountPaid decimal.Decimal) (Totals, error) {
	if amountPaid.IsNegative() {
		return Totals{}, utils.InvalidInput("valor pago negativo")
	}
	subtotal := decimal.Zero
	total := decimal.Zero
	for _, item := range items {
		amount, err := LineItemAmount(item)
		if err != nil {
			return Totals{}, err
		}
		subtotal = subtotal.Add(item.Quantity.Mul(item.Rate))
		total = total.Add(amount)
	}
	subtotal = utils.Round2(subtotal)
	raw := total.Sub(amountPaid)
	return Totals{
		Subtotal:      subtotal,
		DiscountTotal: subtotal.Sub(total),
		Total:         total,
		AmountPaid:    amountPaid,
		BalanceDue:    utils.MaxZero(raw),
		RawBalance:    raw,
	}, nil
}

// StatusFor deriva o status da fatura a partir do que já foi pago
func StatusFor(t Totals) models.InvoiceStatus {
	switch {
	case !t.RawBalance.IsPositive():
		return models.InvoicePaid
	case t.AmountPaid.IsPositive():
		return models.InvoicePartiallyPaid
	}
	return models.InvoiceOpen
}

// Recalculate atualiza valores dos itens, totais e status da fatura
func Recalculate(inv *models.Invoice) error {
	for i := range inv.Items {
		amount, err := LineItemAmount(inv.Items[i])
		if err != nil {
			return err
		}
		inv.Items[i].Amount = amount
	}
	t, err := ComputeTotals(inv.Items, inv.AmountPaid)
	if err != nil {
		return err
	}
	inv.Subtotal = t.Subtotal
	inv.DiscountTotal = t.DiscountTotal
	inv.Total = t.Total
	inv.AmountPaid = t.AmountPaid
	inv.BalanceDue = t.BalanceDue
	inv.RawBalance = t.RawBalance
	inv.Status = StatusFor(t)
	return nil
}

// ApplyPayment registra o pagamento na fatura. Pagamento a maior é aceito e
// aparece em RawBalance.
func ApplyPayment(inv *models.Invoice, amount decimal.Decimal, paidAt time.Time, reference string) (models.InvoicePayment, error) {
	if !amount.IsPositive() {
		return models.InvoicePayment{}, utils.InvalidInput("valor do pagamento deve ser positivo")
	}
	inv.AmountPaid = inv.AmountPaid.Add(amount)
	if err := Recalculate(inv); err != nil {
		return models.InvoicePayment{}, err
	}
	return models.InvoicePayment{
		InvoiceID: inv.ID,
		Amount:    amount,
		PaidAt:    paidAt,
		Reference: reference,
	}, nil
}
