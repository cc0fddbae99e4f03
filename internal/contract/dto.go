package contract

import (
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/shopspring/decimal"
)

// StreamDTO usado no POST /contracts/{cid}/streams e dentro do contrato
type StreamDTO struct {
	Name      string                 `json:"name"`
	Type      models.StreamType      `json:"type" validate:"required"`
	Frequency models.StreamFrequency `json:"frequency" validate:"required"`
	Amount    decimal.Decimal        `json:"amount"`
}

func (d StreamDTO) toModel(contractID uint) models.RevenueStream {
	return models.RevenueStream{
		ContractID: contractID,
		Name:       d.Name,
		Type:       d.Type,
		Frequency:  d.Frequency,
		Amount:     d.Amount,
	}
}

// ContractDTO usado no POST /clients/{id}/contracts e no PUT /contracts/{cid}
type ContractDTO struct {
	StartDate    time.Time             `json:"startDate" validate:"required"`
	EndDate      *time.Time            `json:"endDate"`
	BillingCycle models.BillingCycle   `json:"billingCycle" validate:"required"`
	Status       models.ContractStatus `json:"status"`
	URL          string                `json:"url"`
	Streams      []StreamDTO           `json:"streams" validate:"dive"`
}

func (d ContractDTO) apply(c *models.Contract) {
	c.StartDate = d.StartDate
	c.EndDate = d.EndDate
	c.BillingCycle = d.BillingCycle
	c.URL = d.URL
	if d.Status != "" {
		c.Status = d.Status
	}
	if c.Status == "" {
		c.Status = models.ContractActive
	}
}
