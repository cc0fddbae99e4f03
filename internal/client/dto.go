package client

import (
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/shopspring/decimal"
)

// ClientDTO usado no POST /clients e no PUT /clients/{id}
type ClientDTO struct {
	Name           string              `json:"name" validate:"required,max=255"`
	Email          string              `json:"email" validate:"omitempty,email,max=255"`
	Phone          string              `json:"phone" validate:"max=32"`
	Status         models.ClientStatus `json:"status"`
	PricingModel   models.PricingModel `json:"pricingModel"`
	PerSeatCost    decimal.NullDecimal `json:"perSeatCost"`
	SeatCount      *int                `json:"seatCount"`
	MRR            decimal.Decimal     `json:"mrr"`
	OneTimeRevenue decimal.Decimal     `json:"oneTimeRevenue"`
	BillingCycle   models.BillingCycle `json:"billingCycle"`
	Discount       decimal.Decimal     `json:"discount"`
	SalesPartner   string              `json:"salesPartner" validate:"max=255"`
	OnboardingDate *time.Time          `json:"onboardingDate"`
}

// apply copia o DTO para o cliente preenchendo os padrões
func (d ClientDTO) apply(c *models.Client, now time.Time) {
	c.Name = d.Name
	c.Email = d.Email
	c.Phone = d.Phone
	c.Status = d.Status
	if c.Status == "" {
		c.Status = models.ClientActive
	}
	c.PricingModel = d.PricingModel
	if c.PricingModel == "" {
		c.PricingModel = models.PricingFlatMRR
	}
	c.PerSeatCost = d.PerSeatCost
	c.SeatCount = d.SeatCount
	c.MRR = d.MRR
	c.OneTimeRevenue = d.OneTimeRevenue
	c.BillingCycle = d.BillingCycle
	if c.BillingCycle == "" {
		c.BillingCycle = models.CycleMonthly
	}
	c.Discount = d.Discount
	c.SalesPartner = d.SalesPartner
	switch {
	case d.OnboardingDate != nil:
		c.OnboardingDate = *d.OnboardingDate
	case c.OnboardingDate.IsZero():
		c.OnboardingDate = now
	}
}

// ClientResponse devolve o cliente e o que aconteceu com o cronograma
type ClientResponse struct {
	Client      *models.Client           `json:"client"`
	Receivables []models.ReceivableEntry `json:"receivables,omitempty"`
}
