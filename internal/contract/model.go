package contract

import (
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
)

// Authoritative escolhe, entre os contratos ativos, o que vale para novos
// recebíveis e faturas: o de início mais recente. Nil se não houver ativo.
func Authoritative(contracts []models.Contract) *models.Contract {
	var best *models.Contract
	for i := range contracts {
		c := &contracts[i]
		if c.Status != models.ContractActive {
			continue
		}
		if best == nil || c.StartDate.After(best.StartDate) ||
			(c.StartDate.Equal(best.StartDate) && c.ID > best.ID) {
			best = c
		}
	}
	return best
}

// Terminate encerra o contrato; encerrado sai do MRR na hora, mesmo com data final futura.
func Terminate(c *models.Contract, at time.Time) error {
	if c.Status == models.ContractTerminated {
		return utils.InvalidTransition("contrato %d já encerrado", c.ID)
	}
	c.Status = models.ContractTerminated
	if c.EndDate == nil || c.EndDate.After(at) {
		end := at
		c.EndDate = &end
	}
	return nil
}

func validateStream(s models.RevenueStream) error {
	if !s.Type.Valid() {
		return utils.InvalidInput("tipo de stream desconhecido: %q", s.Type)
	}
	if !s.Frequency.Valid() {
		return utils.InvalidInput("frequência desconhecida: %q", s.Frequency)
	}
	if s.Amount.LessThan(decimal.Zero) {
		return utils.InvalidInput("valor do stream não pode ser negativo")
	}
	return nil
}

func validateContract(c models.Contract) error {
	if !c.BillingCycle.Valid() {
		return utils.InvalidInput("ciclo de cobrança desconhecido: %q", c.BillingCycle)
	}
	if !c.Status.Valid() {
		return utils.InvalidInput("status de contrato inválido: %q", c.Status)
	}
	if c.StartDate.IsZero() {
		return utils.InvalidInput("data de início obrigatória")
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return utils.InvalidInput("data final anterior ao início")
	}
	for _, s := range c.Streams {
		if err := validateStream(s); err != nil {
			return err
		}
	}
	return nil
}
