package client

import (
	"context"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/cache"
	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/receivable"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"gorm.io/gorm"
)

// Service mantém o cliente e o cronograma de recebíveis coerentes
type Service struct {
	DB          *gorm.DB
	Repo        Repository
	Receivables *receivable.Service
	Cache       *cache.Cache
	PhoneRegion string
}

func NewService(db *gorm.DB, receivables *receivable.Service, c *cache.Cache, phoneRegion string) *Service {
	return &Service{DB: db, Repo: NewRepository(), Receivables: receivables, Cache: c, PhoneRegion: phoneRegion}
}

func (s *Service) prepare(c *models.Client) error {
	phone, err := utils.NormalizePhone(c.Phone, s.PhoneRegion)
	if err != nil {
		return err
	}
	c.Phone = phone
	return ApplyPricing(c)
}

// Create grava o cliente e gera o cronograma inicial na mesma transação
func (s *Service) Create(ctx context.Context, in ClientDTO, now time.Time) (*ClientResponse, error) {
	var c models.Client
	in.apply(&c, now)
	if err := s.prepare(&c); err != nil {
		return nil, err
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	if err := s.Repo.Create(tx, &c); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	res, err := s.Receivables.RegenerateTx(tx, c.ID, now)
	s.Receivables.Metrics.Regeneration(err)
	if err != nil {
		_ = tx.Rollback()
		config.LogError(config.GetLogger(), "client", "Create", "gerando cronograma", c.Name, err)
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	_ = s.Cache.Invalidate(ctx, cache.DashboardKey)
	return response(&c, res), nil
}

// Update substitui os campos do cliente; se algum campo de cobrança mudou o
// cronograma é refeito. Cliente e cronograma são gravados juntos ou nada é gravado.
func (s *Service) Update(ctx context.Context, id uint, in ClientDTO, now time.Time) (*ClientResponse, error) {
	var after models.Client
	res, err := s.Receivables.Apply(ctx, id, now, func(tx *gorm.DB) (bool, error) {
		before, err := s.Repo.FindByID(tx, id)
		if err != nil {
			return false, err
		}
		after = *before
		in.apply(&after, now)
		if err := s.prepare(&after); err != nil {
			return false, err
		}
		if err := s.Repo.Update(tx, &after); err != nil {
			return false, err
		}
		count, err := s.Receivables.Repo.WithDB(tx).CountByClient(id)
		if err != nil {
			return false, err
		}
		return receivable.NeedsRegeneration(*before, after, int(count)), nil
	})
	if err != nil {
		return nil, err
	}
	return response(&after, res), nil
}

// Delete remove o cliente e as entradas em aberto. Pagas e faturadas ficam como histórico.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Repo.FindByID(s.DB, id); err != nil {
		return err
	}
	err := s.Receivables.Locker.WithLock(ctx, receivable.LockKey(id), func() error {
		tx := s.DB.Begin()
		if tx.Error != nil {
			return tx.Error
		}
		if err := s.Receivables.Repo.WithDB(tx).DeleteOpenByClient(id); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := s.Repo.Delete(tx, id); err != nil {
			_ = tx.Rollback()
			return err
		}
		return tx.Commit().Error
	})
	if err != nil {
		config.LogError(config.GetLogger(), "client", "Delete", "removendo cliente", id, err)
		return err
	}
	_ = s.Cache.Invalidate(ctx, cache.DashboardKey)
	return nil
}

func response(c *models.Client, res *receivable.Result) *ClientResponse {
	out := &ClientResponse{Client: c}
	if res != nil {
		out.Receivables = res.Entries
	}
	return out
}
