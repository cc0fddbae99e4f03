// Package partnerlink mantém os vínculos de atribuição entre clientes e parceiros.
package partnerlink

import (
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
)

// LinkDTO usado no POST /clients/{id}/partner-links
type LinkDTO struct {
	PartnerID      uint            `json:"partnerId" validate:"required"`
	AttributionPct decimal.Decimal `json:"attributionPct"`
}

// CheckAttribution valida um novo vínculo contra os já existentes do cliente:
// percentual em (0, 100], um vínculo por parceiro e soma até 100.
func CheckAttribution(existing []models.CustomerPartnerLink, partnerID uint, pct decimal.Decimal) error {
	if !pct.IsPositive() || !utils.ValidPercent(pct) {
		return utils.InvalidInput("percentual de atribuição deve estar em (0, 100]")
	}
	sum := pct
	for _, l := range existing {
		if l.PartnerID == partnerID {
			return utils.Inconsistent("cliente já vinculado ao parceiro %d", partnerID)
		}
		sum = sum.Add(l.AttributionPct)
	}
	if sum.GreaterThan(utils.Hundred) {
		return utils.Inconsistent("atribuição total do cliente passaria de 100%% (%s)", sum)
	}
	return nil
}
