package receivable

import (
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
)

// pago é terminal
var transitions = map[models.ReceivableStatus][]models.ReceivableStatus{
	models.ReceivablePending:  {models.ReceivableInvoiced, models.ReceivablePaid, models.ReceivableOverdue},
	models.ReceivableOverdue:  {models.ReceivableInvoiced, models.ReceivablePaid},
	models.ReceivableInvoiced: {models.ReceivablePaid, models.ReceivableOverdue},
}

func CanTransition(from, to models.ReceivableStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition aplica a mudança de status na entrada. Repetir o status atual é no-op.
func Transition(e *models.ReceivableEntry, to models.ReceivableStatus, now time.Time) error {
	if !to.Valid() {
		return utils.InvalidInput("status inválido: %q", to)
	}
	if e.Status == to {
		return nil
	}
	if !CanTransition(e.Status, to) {
		return utils.InvalidTransition("recebível %d não pode ir de %s para %s", e.ID, e.Status, to)
	}
	e.Status = to
	if to == models.ReceivablePaid {
		paidAt := now
		e.PaidAt = &paidAt
	}
	return nil
}

// MarkOverdue move para overdue as entradas pendentes de meses já encerrados
// e devolve só as que mudaram.
func MarkOverdue(entries []models.ReceivableEntry, now time.Time) []models.ReceivableEntry {
	current := utils.MonthKey(now)
	changed := []models.ReceivableEntry{}
	for i := range entries {
		if entries[i].Status == models.ReceivablePending && entries[i].Month < current {
			entries[i].Status = models.ReceivableOverdue
			changed = append(changed, entries[i])
		}
	}
	return changed
}
