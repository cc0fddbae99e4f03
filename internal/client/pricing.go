package client

import (
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
)

// ApplyPricing é a única derivação do MRR gravado no cliente.
// Com custo e quantidade de assentos o MRR informado é descartado.
func ApplyPricing(c *models.Client) error {
	if !c.PricingModel.Valid() {
		return utils.InvalidInput("modelo de precificação desconhecido: %q", c.PricingModel)
	}
	if !c.BillingCycle.Valid() {
		return utils.InvalidInput("ciclo de cobrança desconhecido: %q", c.BillingCycle)
	}
	if !c.Status.Valid() {
		return utils.InvalidInput("status desconhecido: %q", c.Status)
	}
	if !utils.ValidPercent(c.Discount) {
		return utils.InvalidInput("desconto fora de 0-100: %s", c.Discount)
	}
	if c.OneTimeRevenue.IsNegative() {
		return utils.InvalidInput("receita única negativa")
	}
	if c.PerSeatCost.Valid && c.PerSeatCost.Decimal.IsNegative() {
		return utils.InvalidInput("custo por assento negativo")
	}
	if c.SeatCount != nil && *c.SeatCount < 0 {
		return utils.InvalidInput("quantidade de assentos negativa")
	}
	c.OneTimeRevenue = utils.Round2(c.OneTimeRevenue)

	switch {
	case c.PricingModel == models.PricingPerSeat && c.PerSeatCost.Valid && c.SeatCount != nil:
		gross := c.PerSeatCost.Decimal.Mul(decimal.NewFromInt(int64(*c.SeatCount)))
		c.PricingMode = models.PricingDerived
		c.MRR = utils.Round2(utils.ApplyPercentDiscount(gross, c.Discount))
	case c.PricingModel == models.PricingOneTimeOnly:
		c.PricingMode = models.PricingDerived
		c.MRR = decimal.Zero
	default:
		if c.MRR.IsNegative() {
			return utils.InvalidInput("MRR negativo")
		}
		c.PricingMode = models.PricingManual
		c.MRR = utils.Round2(c.MRR)
	}
	return nil
}
