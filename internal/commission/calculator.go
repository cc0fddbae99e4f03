package commission

import (
	"sort"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
)

// Rates são os percentuais (0-100) aplicados ao MRR e à receita única
type Rates struct {
	MRRPct     decimal.Decimal `json:"mrrPct"`
	OneTimePct decimal.Decimal `json:"oneTimePct"`
}

// Config substitui as taxas cadastradas do parceiro (chave = ID do parceiro)
type Config struct {
	Overrides map[uint]Rates
}

const (
	SourceLink = "link"
	SourceName = "name"
)

// Attribution é a fatia de um cliente creditada ao parceiro
type Attribution struct {
	ClientID        uint            `json:"clientId"`
	Name            string          `json:"name"`
	Source          string          `json:"source"`
	Weight          decimal.Decimal `json:"weight"`
	MRR             decimal.Decimal `json:"mrr"`
	OneTimeRevenue  decimal.Decimal `json:"oneTimeRevenue"`
	OnboardingMonth string          `json:"onboardingMonth"`
}

type Result struct {
	PartnerID         uint            `json:"partnerId"`
	Rates             Rates           `json:"rates"`
	AttributedMRR     decimal.Decimal `json:"attributedMrr"`
	AttributedOneTime decimal.Decimal `json:"attributedOneTime"`
	MonthlyCommission decimal.Decimal `json:"monthlyCommission"`
	OneTimeCommission decimal.Decimal `json:"oneTimeCommission"`
	AnnualCommission  decimal.Decimal `json:"annualCommission"`
	Clients           []Attribution   `json:"clients"`
}

type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// RatesFor devolve as taxas efetivas do parceiro
func (c *Calculator) RatesFor(p models.Partner) (Rates, error) {
	r := Rates{MRRPct: p.CommissionPercentage, OneTimePct: p.OneTimeCommissionPercentage}
	if o, ok := c.cfg.Overrides[p.ID]; ok {
		r = o
	}
	if !utils.ValidPercent(r.MRRPct) || !utils.ValidPercent(r.OneTimePct) {
		return Rates{}, utils.InvalidInput("parceiro %d com percentual de comissão fora de 0-100", p.ID)
	}
	return r, nil
}

// Attribute decide quais clientes ativos contam para o parceiro e com qual peso.
// Vínculo explícito (CustomerPartnerLink) prevalece sobre o nome em salesPartner;
// cliente com vínculo só para outros parceiros não conta pelo nome.
func (c *Calculator) Attribute(p models.Partner, clients []models.Client, links []models.CustomerPartnerLink) ([]Attribution, error) {
	byClient := map[uint][]models.CustomerPartnerLink{}
	for _, l := range links {
		if !utils.ValidPercent(l.AttributionPct) {
			return nil, utils.InvalidInput("vínculo %d com percentual fora de 0-100", l.ID)
		}
		byClient[l.ClientID] = append(byClient[l.ClientID], l)
	}
	for clientID, ls := range byClient {
		sum := decimal.Zero
		for _, l := range ls {
			sum = sum.Add(l.AttributionPct)
		}
		if sum.GreaterThan(utils.Hundred) {
			return nil, utils.Inconsistent("cliente %d com atribuição total de %s%%", clientID, sum)
		}
	}

	out := []Attribution{}
	for _, cl := range clients {
		if !cl.IsActive() {
			continue
		}
		a := Attribution{
			ClientID:        cl.ID,
			Name:            cl.Name,
			MRR:             cl.MRR,
			OneTimeRevenue:  cl.OneTimeRevenue,
			OnboardingMonth: utils.MonthKey(cl.OnboardingDate),
		}
		ls, hasLinks := byClient[cl.ID]
		switch {
		case hasLinks:
			found := false
			for _, l := range ls {
				if l.PartnerID == p.ID {
					a.Weight = l.AttributionPct.Div(utils.Hundred)
					a.Source = SourceLink
					found = true
					break
				}
			}
			if !found {
				continue
			}
		case cl.SalesPartner != "" && cl.SalesPartner == p.Name:
			a.Weight = decimal.NewFromInt(1)
			a.Source = SourceName
		default:
			continue
		}
		if a.Weight.IsZero() {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClientID < out[j].ClientID })
	return out, nil
}

// Compute aplica as taxas do parceiro sobre os clientes atribuídos
func (c *Calculator) Compute(p models.Partner, clients []models.Client, links []models.CustomerPartnerLink) (Result, error) {
	rates, err := c.RatesFor(p)
	if err != nil {
		return Result{}, err
	}
	attrs, err := c.Attribute(p, clients, links)
	if err != nil {
		return Result{}, err
	}

	mrr := decimal.Zero
	oneTime := decimal.Zero
	for _, a := range attrs {
		mrr = mrr.Add(a.MRR.Mul(a.Weight))
		oneTime = oneTime.Add(a.OneTimeRevenue.Mul(a.Weight))
	}

	monthly := utils.Round2(utils.Percent(mrr, rates.MRRPct))
	oneTimeCommission := utils.Round2(utils.Percent(oneTime, rates.OneTimePct))
	return Result{
		PartnerID:         p.ID,
		Rates:             rates,
		AttributedMRR:     utils.Round2(mrr),
		AttributedOneTime: utils.Round2(oneTime),
		MonthlyCommission: monthly,
		OneTimeCommission: oneTimeCommission,
		AnnualCommission:  utils.Round2(monthly.Mul(utils.Twelve).Add(oneTimeCommission)),
		Clients:           attrs,
	}, nil
}

// BuildStatement monta o extrato do mês: comissão mensal mais a comissão única
// dos clientes que entraram naquele mês.
func BuildStatement(month string, res Result) (models.CommissionStatement, error) {
	if _, err := utils.ParseMonth(month); err != nil {
		return models.CommissionStatement{}, err
	}
	oneTimeThisMonth := decimal.Zero
	for _, a := range res.Clients {
		if a.OnboardingMonth == month {
			oneTimeThisMonth = oneTimeThisMonth.Add(a.OneTimeRevenue.Mul(a.Weight))
		}
	}
	payable := res.MonthlyCommission.Add(utils.Round2(utils.Percent(oneTimeThisMonth, res.Rates.OneTimePct)))

	return models.CommissionStatement{
		PartnerID:         res.PartnerID,
		Month:             month,
		AttributedMRR:     res.AttributedMRR,
		AttributedOneTime: res.AttributedOneTime,
		MonthlyCommission: res.MonthlyCommission,
		OneTimeCommission: res.OneTimeCommission,
		AnnualCommission:  res.AnnualCommission,
		PayableAmount:     payable,
		Status:            models.StatementPending,
	}, nil
}
