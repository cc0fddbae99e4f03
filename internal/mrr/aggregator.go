package mrr

import (
	"sort"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
)

// Config é o catálogo de streams usado pelo agregador: quais tipos são
// recorrentes, quais são receita única e o divisor mensal de cada frequência.
type Config struct {
	RecurringTypes map[models.StreamType]bool
	OneTimeTypes   map[models.StreamType]bool
	Divisors       map[models.StreamFrequency]int64
}

func DefaultConfig() Config {
	return Config{
		RecurringTypes: map[models.StreamType]bool{
			models.StreamSubscription:   true,
			models.StreamAddOn:          true,
			models.StreamManagedService: true,
		},
		OneTimeTypes: map[models.StreamType]bool{
			models.StreamOneTime: true,
		},
		Divisors: map[models.StreamFrequency]int64{
			models.FrequencyMonthly:   1,
			models.FrequencyQuarterly: 3,
			models.FrequencyAnnual:    12,
		},
	}
}

// Totals é o resultado da agregação de um cliente
type Totals struct {
	ClientID       uint            `json:"clientId"`
	MRR            decimal.Decimal `json:"mrr"`
	ARR            decimal.Decimal `json:"arr"`
	OneTimeRevenue decimal.Decimal `json:"oneTimeRevenue"`
}

// Summary soma todos os clientes
type Summary struct {
	MRR            decimal.Decimal `json:"mrr"`
	ARR            decimal.Decimal `json:"arr"`
	OneTimeRevenue decimal.Decimal `json:"oneTimeRevenue"`
	Clients        []Totals        `json:"clients"`
}

type Aggregator struct {
	cfg Config
}

func NewAggregator(cfg Config) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Aggregate soma os streams dos contratos ativos do cliente. Contratos de
// outros clientes são ignorados; um stream apontando para contrato que não
// está na lista é estado inconsistente.
func (a *Aggregator) Aggregate(clientID uint, contracts []models.Contract, streams []models.RevenueStream) (Totals, error) {
	byID := make(map[uint]models.Contract, len(contracts))
	for _, c := range contracts {
		byID[c.ID] = c
	}

	monthly := decimal.Zero
	oneTime := decimal.Zero
	for _, s := range streams {
		c, ok := byID[s.ContractID]
		if !ok {
			return Totals{}, utils.Inconsistent("stream %d referencia contrato inexistente %d", s.ID, s.ContractID)
		}
		if c.ClientID != clientID || c.Status != models.ContractActive {
			continue
		}
		m, o, err := a.normalize(s)
		if err != nil {
			return Totals{}, err
		}
		monthly = monthly.Add(m)
		oneTime = oneTime.Add(o)
	}

	monthly = utils.Round2(monthly)
	return Totals{
		ClientID:       clientID,
		MRR:            monthly,
		ARR:            monthly.Mul(utils.Twelve),
		OneTimeRevenue: utils.Round2(oneTime),
	}, nil
}

// AggregateAll agrega todos os clientes que aparecem nos contratos
func (a *Aggregator) AggregateAll(contracts []models.Contract, streams []models.RevenueStream) (Summary, error) {
	seen := map[uint]bool{}
	var ids []uint
	for _, c := range contracts {
		if !seen[c.ClientID] {
			seen[c.ClientID] = true
			ids = append(ids, c.ClientID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := Summary{MRR: decimal.Zero, ARR: decimal.Zero, OneTimeRevenue: decimal.Zero, Clients: []Totals{}}
	for _, id := range ids {
		t, err := a.Aggregate(id, contracts, streams)
		if err != nil {
			return Summary{}, err
		}
		out.MRR = out.MRR.Add(t.MRR)
		out.OneTimeRevenue = out.OneTimeRevenue.Add(t.OneTimeRevenue)
		out.Clients = append(out.Clients, t)
	}
	out.ARR = out.MRR.Mul(utils.Twelve)
	return out, nil
}

// normalize devolve a contribuição mensal e a contribuição única de um stream
func (a *Aggregator) normalize(s models.RevenueStream) (decimal.Decimal, decimal.Decimal, error) {
	if s.Amount.IsNegative() {
		return decimal.Zero, decimal.Zero, utils.InvalidInput("stream %d com valor negativo", s.ID)
	}
	if a.cfg.OneTimeTypes[s.Type] || s.Frequency == models.FrequencyOneTime {
		return decimal.Zero, s.Amount, nil
	}
	if !a.cfg.RecurringTypes[s.Type] {
		return decimal.Zero, decimal.Zero, utils.InvalidInput("tipo de stream desconhecido: %s", s.Type)
	}
	divisor, ok := a.cfg.Divisors[s.Frequency]
	if !ok {
		return decimal.Zero, decimal.Zero, utils.InvalidInput("frequência desconhecida: %s", s.Frequency)
	}
	if divisor <= 0 {
		return decimal.Zero, decimal.Zero, nil
	}
	return s.Amount.Div(decimal.NewFromInt(divisor)), decimal.Zero, nil
}

// StreamsOf achata os streams carregados junto com os contratos
func StreamsOf(contracts []models.Contract) []models.RevenueStream {
	var out []models.RevenueStream
	for _, c := range contracts {
		out = append(out, c.Streams...)
	}
	return out
}
