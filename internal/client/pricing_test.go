package client

import (
	"testing"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seats(n int) *int { return &n }

func base() models.Client {
	return models.Client{
		Name:         "Acme",
		Status:       models.ClientActive,
		PricingModel: models.PricingFlatMRR,
		BillingCycle: models.CycleMonthly,
	}
}

func TestApplyPricingPerSeatIgnoresCallerMRR(t *testing.T) {
	c := base()
	c.PricingModel = models.PricingPerSeat
	c.PerSeatCost = decimal.NewNullDecimal(dec("49.90"))
	c.SeatCount = seats(25)
	c.Discount = dec("10")
	c.MRR = dec("99999")

	require.NoError(t, ApplyPricing(&c))
	assert.Equal(t, models.PricingDerived, c.PricingMode)
	// 49.90 * 25 * 0.9 = 1122.75
	assert.True(t, dec("1122.75").Equal(c.MRR), c.MRR.String())
}

func TestApplyPricingZeroSeats(t *testing.T) {
	c := base()
	c.PricingModel = models.PricingPerSeat
	c.PerSeatCost = decimal.NewNullDecimal(dec("10"))
	c.SeatCount = seats(0)

	require.NoError(t, ApplyPricing(&c))
	assert.True(t, c.MRR.IsZero())
}

func TestApplyPricingPerSeatWithoutInputsIsManual(t *testing.T) {
	c := base()
	c.PricingModel = models.PricingPerSeat
	c.MRR = dec("500.456")

	require.NoError(t, ApplyPricing(&c))
	assert.Equal(t, models.PricingManual, c.PricingMode)
	assert.True(t, dec("500.46").Equal(c.MRR))
}

func TestApplyPricingOneTimeOnly(t *testing.T) {
	c := base()
	c.PricingModel = models.PricingOneTimeOnly
	c.MRR = dec("300")
	c.OneTimeRevenue = dec("5000")

	require.NoError(t, ApplyPricing(&c))
	assert.Equal(t, models.PricingDerived, c.PricingMode)
	assert.True(t, c.MRR.IsZero())
	assert.True(t, dec("5000").Equal(c.OneTimeRevenue))
}

func TestApplyPricingRejectsInvalidInput(t *testing.T) {
	cases := map[string]func(*models.Client){
		"modelo":        func(c *models.Client) { c.PricingModel = "freemium" },
		"ciclo":         func(c *models.Client) { c.BillingCycle = "Weekly" },
		"status":        func(c *models.Client) { c.Status = "paused" },
		"desconto":      func(c *models.Client) { c.Discount = dec("120") },
		"mrr negativo":  func(c *models.Client) { c.MRR = dec("-1") },
		"receita única": func(c *models.Client) { c.OneTimeRevenue = dec("-1") },
		"assentos":      func(c *models.Client) { c.SeatCount = seats(-2) },
		"custo": func(c *models.Client) {
			c.PerSeatCost = decimal.NewNullDecimal(dec("-5"))
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base()
			mutate(&c)
			assert.ErrorIs(t, ApplyPricing(&c), utils.ErrInvalidInput)
		})
	}
}
