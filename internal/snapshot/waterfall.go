package snapshot

import (
	"sort"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
)

// UnassignedPartner agrupa clientes sem parceiro nos mapas por parceiro
const UnassignedPartner = "unassigned"

// Waterfall decompõe a variação de MRR entre dois meses
type Waterfall struct {
	NewMRR         decimal.Decimal `json:"newMRR"`
	ExpansionMRR   decimal.Decimal `json:"expansionMRR"`
	ContractionMRR decimal.Decimal `json:"contractionMRR"`
	ChurnedMRR     decimal.Decimal `json:"churnedMRR"`
	NetNewMRR      decimal.Decimal `json:"netNewMRR"`
	NewClients     int             `json:"newClients"`
	ChurnedClients int             `json:"churnedClients"`
}

func index(snaps []models.ClientSnapshot, label string) (map[uint]models.ClientSnapshot, decimal.Decimal, error) {
	out := make(map[uint]models.ClientSnapshot, len(snaps))
	total := decimal.Zero
	for _, s := range snaps {
		if _, dup := out[s.ClientID]; dup {
			return nil, decimal.Zero, utils.Inconsistent("cliente %d repetido no conjunto %s", s.ClientID, label)
		}
		if s.MRR.IsNegative() {
			return nil, decimal.Zero, utils.InvalidInput("cliente %d com MRR negativo no conjunto %s", s.ClientID, label)
		}
		out[s.ClientID] = s
		total = total.Add(s.MRR)
	}
	return out, total, nil
}

// ComputeWaterfall classifica a diferença entre o conjunto atual de clientes
// ativos e o snapshot anterior. Sem snapshot anterior todo MRR é novo.
func ComputeWaterfall(current []models.ClientSnapshot, prev *models.MonthlySnapshot) (Waterfall, error) {
	cur, curTotal, err := index(current, "atual")
	if err != nil {
		return Waterfall{}, err
	}

	w := Waterfall{
		NewMRR:         decimal.Zero,
		ExpansionMRR:   decimal.Zero,
		ContractionMRR: decimal.Zero,
		ChurnedMRR:     decimal.Zero,
	}

	var before map[uint]models.ClientSnapshot
	prevTotal := decimal.Zero
	if prev != nil {
		before, prevTotal, err = index(prev.ClientSnapshots, prev.Month)
		if err != nil {
			return Waterfall{}, err
		}
		if !prevTotal.Equal(prev.TotalMRR) {
			return Waterfall{}, utils.Inconsistent("snapshot %s: total %s difere da soma dos clientes %s", prev.Month, prev.TotalMRR, prevTotal)
		}
	}

	for id, c := range cur {
		p, existed := before[id]
		switch {
		case !existed:
			w.NewMRR = w.NewMRR.Add(c.MRR)
			w.NewClients++
		case c.MRR.GreaterThan(p.MRR):
			w.ExpansionMRR = w.ExpansionMRR.Add(c.MRR.Sub(p.MRR))
		case c.MRR.LessThan(p.MRR):
			w.ContractionMRR = w.ContractionMRR.Add(p.MRR.Sub(c.MRR))
		}
	}
	for id, p := range before {
		if _, still := cur[id]; !still {
			w.ChurnedMRR = w.ChurnedMRR.Add(p.MRR)
			w.ChurnedClients++
		}
	}

	w.NetNewMRR = w.NewMRR.Add(w.ExpansionMRR).Sub(w.ContractionMRR).Sub(w.ChurnedMRR)
	if !w.NetNewMRR.Equal(curTotal.Sub(prevTotal)) {
		return Waterfall{}, utils.Inconsistent("waterfall não fecha: líquido %s, variação %s", w.NetNewMRR, curTotal.Sub(prevTotal))
	}
	return w, nil
}

// Capture monta o snapshot do mês. prev precisa ser de um mês anterior.
func Capture(month string, current []models.ClientSnapshot, prev *models.MonthlySnapshot, now time.Time) (models.MonthlySnapshot, error) {
	if _, err := utils.ParseMonth(month); err != nil {
		return models.MonthlySnapshot{}, err
	}
	if prev != nil && prev.Month >= month {
		return models.MonthlySnapshot{}, utils.InvalidInput("snapshot anterior %s não é anterior a %s", prev.Month, month)
	}

	w, err := ComputeWaterfall(current, prev)
	if err != nil {
		return models.MonthlySnapshot{}, err
	}

	clients := make([]models.ClientSnapshot, len(current))
	copy(clients, current)
	sort.Slice(clients, func(i, j int) bool { return clients[i].ClientID < clients[j].ClientID })

	total := decimal.Zero
	partnerMRR := map[string]decimal.Decimal{}
	partnerClients := map[string]int{}
	for _, c := range clients {
		total = total.Add(c.MRR)
		key := c.Partner
		if key == "" {
			key = UnassignedPartner
		}
		if _, ok := partnerMRR[key]; !ok {
			partnerMRR[key] = decimal.Zero
		}
		partnerMRR[key] = partnerMRR[key].Add(c.MRR)
		partnerClients[key]++
	}

	return models.MonthlySnapshot{
		Month:           month,
		TotalMRR:        total,
		TotalARR:        total.Mul(utils.Twelve),
		ClientCount:     len(clients),
		PartnerMRR:      partnerMRR,
		PartnerClients:  partnerClients,
		ClientSnapshots: clients,
		NewMRR:          w.NewMRR,
		ExpansionMRR:    w.ExpansionMRR,
		ContractionMRR:  w.ContractionMRR,
		ChurnedMRR:      w.ChurnedMRR,
		NetNewMRR:       w.NetNewMRR,
		NewClients:      w.NewClients,
		ChurnedClients:  w.ChurnedClients,
		CapturedAt:      now,
	}, nil
}

// ClientSnapshotsFrom converte os clientes ativos no formato do snapshot
func ClientSnapshotsFrom(clients []models.Client) []models.ClientSnapshot {
	out := make([]models.ClientSnapshot, 0, len(clients))
	for _, c := range clients {
		if !c.IsActive() {
			continue
		}
		out = append(out, models.ClientSnapshot{
			ClientID: c.ID,
			Name:     c.Name,
			Partner:  c.SalesPartner,
			Status:   c.Status,
			MRR:      c.MRR,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClientID < out[j].ClientID })
	return out
}
