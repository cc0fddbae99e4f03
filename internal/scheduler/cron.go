package scheduler

import (
	"context"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/robfig/cron/v3"
)

const jobTimeout = 10 * time.Minute

// Start registra os jobs no fuso informado e inicia o cron.
// Quem chama deve usar Stop() no desligamento.
func Start(loc *time.Location, jobs *Jobs) (*cron.Cron, error) {
	logger := cron.PrintfLogger(config.GetLogger())
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	if _, err := c.AddFunc(DailySpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if _, err := jobs.MarkOverdue(ctx); err != nil {
			config.LogError(config.GetLogger(), "scheduler", "MarkOverdue", "job diário", nil, err)
		}
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(MonthlySpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if _, err := jobs.CaptureClosedMonth(ctx); err != nil {
			config.LogError(config.GetLogger(), "scheduler", "CaptureClosedMonth", "job mensal", nil, err)
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	config.GetLogger().WithField("module", "scheduler").Info("agendador iniciado")
	return c, nil
}
