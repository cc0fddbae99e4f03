package partner

import (
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
)

// PartnerDTO usado no POST /partners e PUT /partners/{id}
type PartnerDTO struct {
	Name                        string          `json:"name" validate:"required,max=255"`
	Email                       string          `json:"email" validate:"omitempty,email,max=255"`
	Phone                       string          `json:"phone" validate:"max=32"`
	CommissionPercentage        decimal.Decimal `json:"commissionPercentage"`
	OneTimeCommissionPercentage decimal.Decimal `json:"oneTimeCommissionPercentage"`
	IsActive                    *bool           `json:"isActive"`
}

func (d PartnerDTO) apply(p *models.Partner, region string) error {
	if !utils.ValidPercent(d.CommissionPercentage) || !utils.ValidPercent(d.OneTimeCommissionPercentage) {
		return utils.InvalidInput("percentuais de comissão devem estar entre 0 e 100")
	}
	phone, err := utils.NormalizePhone(d.Phone, region)
	if err != nil {
		return err
	}
	p.Name = d.Name
	p.Email = d.Email
	p.Phone = phone
	p.CommissionPercentage = d.CommissionPercentage
	p.OneTimeCommissionPercentage = d.OneTimeCommissionPercentage
	if d.IsActive != nil {
		p.IsActive = *d.IsActive
	} else if p.ID == 0 {
		p.IsActive = true
	}
	return nil
}

// SummaryDTO é o resumo do parceiro para o painel
type SummaryDTO struct {
	ID                uint            `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	IsActive          bool            `json:"isActive"`
	AttributedClients int             `json:"attributedClients"`
	MonthlyCommission decimal.Decimal `json:"monthlyCommission"`
	AnnualCommission  decimal.Decimal `json:"annualCommission"`
	TotalPaid         decimal.Decimal `json:"totalPaid"`
	PendingAmount     decimal.Decimal `json:"pendingAmount"`
}
