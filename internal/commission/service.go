package commission

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
	Repo       *Repository
	Calculator *Calculator
	Locker     *cache.Locker
	Cache      *cache.Cache
	Metrics    *metrics.Metrics
}

func NewService(repo *Repository, calc *Calculator, locker *cache.Locker, c *cache.Cache, m *metrics.Metrics) *Service {
	return &Service{Repo: repo, Calculator: calc, Locker: locker, Cache: c, Metrics: m}
}

func lockKey(partnerID uint) string {
	return fmt.Sprintf("partner:%d", partnerID)
}

// Compute calcula a comissão corrente do parceiro sem persistir nada
func (s *Service) Compute(partnerID uint) (Result, error) {
	return s.compute(s.Repo, partnerID)
}

func (s *Service) compute(repo *Repository, partnerID uint) (Result, error) {
	p, err := repo.FindPartner(partnerID)
	if err != nil {
		return Result{}, err
	}
	clients, links, err := repo.Inputs()
	if err != nil {
		return Result{}, err
	}
	return s.Calculator.Compute(*p, clients, links)
}

// GenerateStatement grava (ou recalcula) o extrato do mês. Extrato pago é imutável.
func (s *Service) GenerateStatement(ctx context.Context, partnerID uint, month string) (*models.CommissionStatement, error) {
	if _, err := utils.ParseMonth(month); err != nil {
		return nil, err
	}
	var saved *models.CommissionStatement
	err := s.Locker.WithLock(ctx, lockKey(partnerID), func() error {
		tx := s.Repo.DB.Begin()
		if tx.Error != nil {
			return tx.Error
		}
		st, err := s.generate(tx, partnerID, month)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		saved = st
		return tx.Commit().Error
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *Service) generate(tx *gorm.DB, partnerID uint, month string) (*models.CommissionStatement, error) {
	repo := s.Repo.WithDB(tx)
	existing, err := repo.FindStatement(partnerID, month)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == models.StatementPaid {
		return nil, utils.InvalidTransition("extrato %s do parceiro %d já pago", month, partnerID)
	}

	res, err := s.compute(repo, partnerID)
	if err != nil {
		return nil, err
	}
	st, err := BuildStatement(month, res)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		st.ID = existing.ID
		st.CreatedAt = existing.CreatedAt
	}
	if err := repo.SaveStatement(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

// PayStatement quita o extrato e registra o pagamento no histórico do parceiro
func (s *Service) PayStatement(ctx context.Context, id uint, in PayStatementDTO, now time.Time) (*models.CommissionStatement, error) {
	st, err := s.Repo.FindStatementByID(id)
	if err != nil {
		return nil, err
	}
	paidAt := now
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}

	err = s.Locker.WithLock(ctx, lockKey(st.PartnerID), func() error {
		tx := s.Repo.DB.Begin()
		if tx.Error != nil {
			return tx.Error
		}
		repo := s.Repo.WithDB(tx)
		current, err := repo.FindStatementByID(id)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if current.Status == models.StatementPaid {
			_ = tx.Rollback()
			return utils.InvalidTransition("extrato %d já pago", id)
		}
		current.Status = models.StatementPaid
		current.PaidAt = &paidAt
		if err := repo.SaveStatement(current); err != nil {
			_ = tx.Rollback()
			return err
		}
		payout := models.PartnerPayout{
			PartnerID:   current.PartnerID,
			StatementID: &current.ID,
			Amount:      current.PayableAmount,
			PaidAt:      paidAt,
			Note:        in.Note,
		}
		if err := repo.CreatePayout(&payout); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := repo.AddToTotalPaid(current.PartnerID, current.PayableAmount); err != nil {
			_ = tx.Rollback()
			return err
		}
		st = current
		return tx.Commit().Error
	})
	if err != nil {
		config.LogError(config.GetLogger(), "commission", "PayStatement", "pagando extrato", id, err)
		return nil, err
	}
	s.Metrics.Payment("payout")
	_ = s.Cache.Invalidate(ctx, cache.DashboardKey)
	return st, nil
}

// RecordPayout registra um pagamento avulso ao parceiro
func (s *Service) RecordPayout(ctx context.Context, partnerID uint, in PayoutDTO, now time.Time) (*models.PartnerPayout, error) {
	if !in.Amount.IsPositive() {
		return nil, utils.InvalidInput("valor do pagamento deve ser positivo")
	}
	if _, err := s.Repo.FindPartner(partnerID); err != nil {
		return nil, err
	}
	payout := models.PartnerPayout{PartnerID: partnerID, Amount: utils.Round2(in.Amount), PaidAt: now, Note: in.Note}
	if in.PaidAt != nil {
		payout.PaidAt = *in.PaidAt
	}

	err := s.Locker.WithLock(ctx, lockKey(partnerID), func() error {
		tx := s.Repo.DB.Begin()
		if tx.Error != nil {
			return tx.Error
		}
		repo := s.Repo.WithDB(tx)
		if err := repo.CreatePayout(&payout); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := repo.AddToTotalPaid(partnerID, payout.Amount); err != nil {
			_ = tx.Rollback()
			return err
		}
		return tx.Commit().Error
	})
	if err != nil {
		config.LogError(config.GetLogger(), "commission", "RecordPayout", "registrando pagamento", partnerID, err)
		return nil, err
	}
	s.Metrics.Payment("payout")
	_ = s.Cache.Invalidate(ctx, cache.DashboardKey)
	return &payout, nil
}
