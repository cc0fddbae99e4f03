package receivable

import (
	"fmt"
	"sort"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
)

const DefaultHorizonMonths = 12

// Options controla a janela do cronograma. Anchor substitui a data de
// onboarding como início da fase do ciclo. From descarta meses anteriores a
// ele sem mudar a fase.
type Options struct {
	Anchor        *time.Time
	From          *time.Time
	HorizonMonths int
}

// Generate monta o cronograma de cobranças do cliente. Cliente inativo ou sem
// receita não gera nada.
func Generate(c models.Client, opts Options) ([]models.ReceivableEntry, error) {
	period, ok := c.BillingCycle.PeriodMonths()
	if !ok {
		return nil, utils.InvalidInput("ciclo de cobrança desconhecido: %q", c.BillingCycle)
	}
	if c.MRR.IsNegative() || c.OneTimeRevenue.IsNegative() {
		return nil, utils.InvalidInput("cliente %d com receita negativa", c.ID)
	}
	if !c.IsActive() || (!c.MRR.IsPositive() && !c.OneTimeRevenue.IsPositive()) {
		return []models.ReceivableEntry{}, nil
	}

	anchor := c.OnboardingDate
	if opts.Anchor != nil {
		anchor = *opts.Anchor
	}
	if anchor.IsZero() {
		return nil, utils.InvalidInput("cliente %d sem data de onboarding", c.ID)
	}
	horizon := opts.HorizonMonths
	if horizon <= 0 {
		horizon = DefaultHorizonMonths
	}

	anchorMonth := utils.StartOfMonth(anchor)
	start := anchorMonth
	if opts.From != nil && utils.StartOfMonth(*opts.From).After(start) {
		start = utils.StartOfMonth(*opts.From)
	}
	end := start.AddDate(0, horizon, 0)

	entries := []models.ReceivableEntry{}
	if period > 0 && c.MRR.IsPositive() {
		amount := utils.Round2(c.MRR.Mul(decimal.NewFromInt(int64(period))))
		for m := anchorMonth; m.Before(end); m = m.AddDate(0, period, 0) {
			if m.Before(start) {
				continue
			}
			entries = append(entries, models.ReceivableEntry{
				ClientID:    c.ID,
				Month:       utils.MonthKey(m),
				Amount:      amount,
				Description: recurringDescription(c.BillingCycle, m, period),
				Kind:        models.KindRecurring,
				Status:      models.ReceivablePending,
			})
		}
	}
	if c.OneTimeRevenue.IsPositive() {
		entries = append(entries, models.ReceivableEntry{
			ClientID:    c.ID,
			Month:       utils.MonthKey(start),
			Amount:      utils.Round2(c.OneTimeRevenue),
			Description: "Receita única",
			Kind:        models.KindOneTime,
			Status:      models.ReceivablePending,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Month < entries[j].Month })
	return entries, nil
}

func recurringDescription(cycle models.BillingCycle, m time.Time, period int) string {
	if period == 1 {
		return fmt.Sprintf("Mensalidade %s", utils.MonthKey(m))
	}
	last := m.AddDate(0, period-1, 0)
	return fmt.Sprintf("%s %s a %s", cycle, utils.MonthKey(m), utils.MonthKey(last))
}

// NeedsRegeneration indica se a mudança no cliente afeta o cronograma
func NeedsRegeneration(before, after models.Client, existing int) bool {
	if existing == 0 {
		return true
	}
	return !before.MRR.Equal(after.MRR) ||
		before.BillingCycle != after.BillingCycle ||
		!before.OneTimeRevenue.Equal(after.OneTimeRevenue) ||
		before.Status != after.Status ||
		!utils.StartOfMonth(before.OnboardingDate).Equal(utils.StartOfMonth(after.OnboardingDate))
}

// Plan é o resultado de comparar o cronograma atual com o novo
type Plan struct {
	Delete []models.ReceivableEntry `json:"delete"`
	Create []models.ReceivableEntry `json:"create"`
	Kept   []models.ReceivableEntry `json:"kept"`
}

// PlanRegeneration remove todas as entradas pendentes/vencidas e recria a
// partir do cronograma novo. Entradas pagas, faturadas ou ligadas a uma
// fatura (mesmo que depois vencidas) ficam intactas e
// nenhum mês que já tem uma delas recebe entrada nova. Receita única já
// liquidada também não é cobrada de novo.
func PlanRegeneration(existing, generated []models.ReceivableEntry) (Plan, error) {
	plan := Plan{Delete: []models.ReceivableEntry{}, Create: []models.ReceivableEntry{}, Kept: []models.ReceivableEntry{}}
	settledMonths := map[string]bool{}
	oneTimeSettled := false

	for _, e := range existing {
		if !e.Status.Valid() {
			return Plan{}, utils.Inconsistent("recebível %d com status desconhecido %q", e.ID, e.Status)
		}
		if e.Protected() {
			settledMonths[e.Month] = true
			if e.Kind == models.KindOneTime {
				oneTimeSettled = true
			}
			plan.Kept = append(plan.Kept, e)
			continue
		}
		plan.Delete = append(plan.Delete, e)
	}

	for _, g := range generated {
		if settledMonths[g.Month] {
			continue
		}
		if g.Kind == models.KindOneTime && oneTimeSettled {
			continue
		}
		plan.Create = append(plan.Create, g)
	}
	return plan, nil
}
