// Package scheduler agenda os jobs periódicos: marcação de vencidos com
// avisos e a captura mensal do snapshot.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/notification"
	"github.com/KromaEnergia/api-faturamento/internal/receivable"
	"github.com/KromaEnergia/api-faturamento/internal/snapshot"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DailySpec   = "0 6 * * *"
	MonthlySpec = "0 2 1 * *"
)

// Jobs reúne as dependências dos jobs. SMS e Team podem ser nil.
type Jobs struct {
	DB          *gorm.DB
	Receivables *receivable.Service
	Snapshots   *snapshot.Service
	SMS         notification.Notifier
	Team        notification.Notifier
	Now         func() time.Time
}

func (j *Jobs) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

// OverdueReport resume uma execução do job diário
type OverdueReport struct {
	Entries  int             `json:"entries"`
	Clients  int             `json:"clients"`
	Amount   decimal.Decimal `json:"amount"`
	Notified int             `json:"notified"`
}

// MarkOverdue vence as entradas pendentes de meses passados, avisa cada
// cliente por SMS e manda o resumo para a equipe.
func (j *Jobs) MarkOverdue(ctx context.Context) (OverdueReport, error) {
	report := OverdueReport{Amount: decimal.Zero}
	entries, err := j.Receivables.MarkOverdue(ctx, j.now())
	if err != nil {
		return report, err
	}
	if len(entries) == 0 {
		return report, nil
	}

	byClient := map[uint][]models.ReceivableEntry{}
	ids := []uint{}
	for _, e := range entries {
		if _, ok := byClient[e.ClientID]; !ok {
			ids = append(ids, e.ClientID)
		}
		byClient[e.ClientID] = append(byClient[e.ClientID], e)
		report.Amount = report.Amount.Add(e.Amount)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	report.Entries = len(entries)
	report.Clients = len(ids)

	var clients []models.Client
	if err := j.DB.Where("id IN ?", ids).Find(&clients).Error; err != nil {
		return report, err
	}

	if j.SMS != nil {
		for _, c := range clients {
			if c.Phone == "" {
				continue
			}
			if err := j.SMS.Notify(ctx, reminder(c, byClient[c.ID])); err != nil {
				config.LogError(config.GetLogger(), "scheduler", "MarkOverdue", "avisando cliente", c.ID, err)
				continue
			}
			report.Notified++
		}
	}

	if j.Team != nil {
		msg := notification.Message{
			Subject: "Recebíveis vencidos",
			Body: fmt.Sprintf("%d recebíveis de %d clientes venceram, total %s",
				report.Entries, report.Clients, report.Amount.StringFixed(2)),
			Data: map[string]any{"clientIds": ids, "amount": report.Amount},
		}
		if err := j.Team.Notify(ctx, msg); err != nil {
			config.LogError(config.GetLogger(), "scheduler", "MarkOverdue", "avisando equipe", report, err)
		}
	}
	return report, nil
}

func reminder(c models.Client, entries []models.ReceivableEntry) notification.Message {
	total := decimal.Zero
	months := make([]string, 0, len(entries))
	for _, e := range entries {
		total = total.Add(e.Amount)
		months = append(months, e.Month)
	}
	return notification.Message{
		To:      c.Phone,
		Subject: "Cobrança vencida",
		Body: fmt.Sprintf("Olá %s, identificamos %d cobrança(s) em aberto (%v) no total de R$ %s.",
			c.Name, len(entries), months, total.StringFixed(2)),
	}
}

// CaptureClosedMonth tira o snapshot do mês que acabou de fechar
func (j *Jobs) CaptureClosedMonth(ctx context.Context) (*models.MonthlySnapshot, error) {
	now := j.now()
	month := utils.PreviousMonth(now)
	snap, err := j.Snapshots.Capture(ctx, month, now)
	if err != nil {
		return nil, err
	}
	config.GetLogger().WithFields(logrus.Fields{
		"module":   "scheduler",
		"month":    month,
		"totalMrr": snap.TotalMRR.String(),
	}).Info("snapshot mensal capturado")
	return snap, nil
}
