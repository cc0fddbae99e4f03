package receivable

import (
	"context"
	"fmt"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/cache"
	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/metrics"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"gorm.io/gorm"
)

type Service struct {
	Repo          *Repository
	Locker        *cache.Locker
	Cache         *cache.Cache
	Metrics       *metrics.Metrics
	HorizonMonths int
}

func NewService(repo *Repository, locker *cache.Locker, c *cache.Cache, m *metrics.Metrics, horizon int) *Service {
	return &Service{Repo: repo, Locker: locker, Cache: c, Metrics: m, HorizonMonths: horizon}
}

// Result resume o que a regeneração fez
type Result struct {
	ClientID uint                     `json:"clientId"`
	Deleted  int                      `json:"deleted"`
	Created  int                      `json:"created"`
	Kept     int                      `json:"kept"`
	Entries  []models.ReceivableEntry `json:"entries"`
}

func LockKey(clientID uint) string {
	return fmt.Sprintf("client:%d", clientID)
}

// Regenerate refaz o cronograma do cliente a partir dos campos atuais.
// A janela começa no mês corrente ou na entrada em aberto mais antiga.
func (s *Service) Regenerate(ctx context.Context, clientID uint, now time.Time) (*Result, error) {
	return s.Apply(ctx, clientID, now, func(*gorm.DB) (bool, error) { return true, nil })
}

// Apply roda write e a regeneração (quando write pede) na mesma transação,
// sob o lock do cliente. Se qualquer parte falhar nada é gravado.
func (s *Service) Apply(ctx context.Context, clientID uint, now time.Time, write func(tx *gorm.DB) (bool, error)) (*Result, error) {
	var res *Result
	regenerated := false
	err := s.Locker.WithLock(ctx, LockKey(clientID), func() error {
		tx := s.Repo.DB.Begin()
		if tx.Error != nil {
			return tx.Error
		}
		needed, err := write(tx)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if needed {
			regenerated = true
			if res, err = s.RegenerateTx(tx, clientID, now); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
		return tx.Commit().Error
	})
	if regenerated {
		s.Metrics.Regeneration(err)
	}
	if err != nil {
		config.LogError(config.GetLogger(), "receivable", "Apply", "gravando cliente e cronograma", clientID, err)
		return nil, err
	}
	_ = s.Cache.Invalidate(ctx, cache.DashboardKey)
	return res, nil
}

// RegenerateTx refaz o cronograma dentro de uma transação aberta por quem chama.
// Quem chama responde pelo lock do cliente.
func (s *Service) RegenerateTx(tx *gorm.DB, clientID uint, now time.Time) (*Result, error) {
	repo := s.Repo.WithDB(tx)

	var client models.Client
	if err := tx.First(&client, clientID).Error; err != nil {
		return nil, err
	}

	existing, err := repo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}

	from := utils.StartOfMonth(now)
	for _, e := range existing {
		if e.Protected() {
			continue
		}
		if m, err := utils.ParseMonth(e.Month); err == nil && m.Before(from) {
			from = m
		}
	}

	generated, err := Generate(client, Options{From: &from, HorizonMonths: s.HorizonMonths})
	if err != nil {
		return nil, err
	}
	plan, err := PlanRegeneration(existing, generated)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(plan.Delete))
	for _, e := range plan.Delete {
		ids = append(ids, e.ID)
	}
	if err := repo.DeleteByIDs(ids); err != nil {
		return nil, err
	}
	if err := repo.CreateInBatch(plan.Create); err != nil {
		return nil, err
	}

	entries, err := repo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	return &Result{
		ClientID: clientID,
		Deleted:  len(plan.Delete),
		Created:  len(plan.Create),
		Kept:     len(plan.Kept),
		Entries:  entries,
	}, nil
}

// UpdateStatus valida a transição e grava
func (s *Service) UpdateStatus(ctx context.Context, id uint, to models.ReceivableStatus, now time.Time) (*models.ReceivableEntry, error) {
	entry, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	err = s.Locker.WithLock(ctx, LockKey(entry.ClientID), func() error {
		// relê dentro do lock
		current, err := s.Repo.FindByID(id)
		if err != nil {
			return err
		}
		if err := Transition(current, to, now); err != nil {
			return err
		}
		entry = current
		return s.Repo.UpdateStatus(current)
	})
	if err != nil {
		return nil, err
	}
	_ = s.Cache.Invalidate(ctx, cache.DashboardKey)
	return entry, nil
}

// MarkOverdue roda no job diário e devolve as entradas que venceram
func (s *Service) MarkOverdue(ctx context.Context, now time.Time) ([]models.ReceivableEntry, error) {
	pending, err := s.Repo.ListPendingBefore(utils.MonthKey(now))
	if err != nil {
		return nil, err
	}
	changed := MarkOverdue(pending, now)
	ids := make([]uint, 0, len(changed))
	for _, e := range changed {
		ids = append(ids, e.ID)
	}
	if err := s.Repo.MarkOverdueByIDs(ids, now); err != nil {
		return nil, err
	}
	if len(changed) > 0 {
		_ = s.Cache.Invalidate(ctx, cache.DashboardKey)
	}
	return changed, nil
}
