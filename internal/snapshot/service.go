package snapshot

import (
	"context"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/cache"
	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/metrics"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
)

type Service struct {
	Repo    *Repository
	Locker  *cache.Locker
	Cache   *cache.Cache
	Metrics *metrics.Metrics
}

func NewService(repo *Repository, locker *cache.Locker, c *cache.Cache, m *metrics.Metrics) *Service {
	return &Service{Repo: repo, Locker: locker, Cache: c, Metrics: m}
}

// CaptureLockKey serializa todas as capturas: a validação de meses
// posteriores só vale se ninguém gravar outro mês ao mesmo tempo.
const CaptureLockKey = "snapshot:capture"

// Capture tira a foto dos clientes ativos para o mês e compara com o snapshot anterior.
// Recapturar um mês é permitido só enquanto não existir snapshot de mês posterior,
// senão o waterfall gravado no mês seguinte deixaria de bater com o anterior.
func (s *Service) Capture(ctx context.Context, month string, now time.Time) (*models.MonthlySnapshot, error) {
	if _, err := utils.ParseMonth(month); err != nil {
		return nil, err
	}

	var saved *models.MonthlySnapshot
	err := s.Locker.WithLock(ctx, CaptureLockKey, func() error {
		tx := s.Repo.DB.Begin()
		if tx.Error != nil {
			return tx.Error
		}
		repo := s.Repo.WithDB(tx)

		next, err := repo.NextOf(month)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if next != nil {
			_ = tx.Rollback()
			return utils.InvalidTransition("snapshot de %s não pode ser recapturado: já existe snapshot de %s", month, next.Month)
		}

		var clients []models.Client
		if err := tx.Where("status = ?", models.ClientActive).Find(&clients).Error; err != nil {
			_ = tx.Rollback()
			return err
		}
		prev, err := repo.PreviousOf(month)
		if err != nil {
			_ = tx.Rollback()
			return err
		}

		snap, err := Capture(month, ClientSnapshotsFrom(clients), prev, now)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := repo.Upsert(&snap); err != nil {
			_ = tx.Rollback()
			return err
		}
		saved, err = repo.FindByMonth(month)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		return tx.Commit().Error
	})
	s.Metrics.Capture(err)
	if err != nil {
		config.LogError(config.GetLogger(), "snapshot", "Capture", "capturando snapshot", month, err)
		return nil, err
	}
	_ = s.Cache.Invalidate(ctx, cache.DashboardKey)
	return saved, nil
}
