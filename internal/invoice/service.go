package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/cache"
	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/contract"
	"github.com/KromaEnergia/api-faturamento/internal/metrics"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/receivable"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultDueDays = 30

type Service struct {
	Repo        *Repository
	Contracts   contract.Repository
	Receivables *receivable.Repository
	Numberer    *Numberer
	Locker      *cache.Locker
	Cache       *cache.Cache
	Metrics     *metrics.Metrics
}

func NewService(repo *Repository, n *Numberer, locker *cache.Locker, c *cache.Cache, m *metrics.Metrics) *Service {
	return &Service{
		Repo:        repo,
		Contracts:   contract.NewRepository(),
		Receivables: receivable.NewRepository(repo.DB),
		Numberer:    n,
		Locker:      locker,
		Cache:       c,
		Metrics:     m,
	}
}

// Create emite a fatura. Se vier de um recebível, ele passa para invoiced.
func (s *Service) Create(ctx context.Context, in CreateInvoiceDTO, now time.Time) (*models.Invoice, error) {
	var created *models.Invoice
	err := s.Locker.WithLock(ctx, receivable.LockKey(in.ClientID), func() error {
		tx := s.Repo.DB.Begin()
		if tx.Error != nil {
			return tx.Error
		}
		inv, err := s.create(tx, in, now)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit().Error; err != nil {
			return err
		}
		created = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = s.Cache.Invalidate(ctx, cache.DashboardKey)
	return s.Repo.FindByID(created.ID)
}

func (s *Service) create(tx *gorm.DB, in CreateInvoiceDTO, now time.Time) (*models.Invoice, error) {
	var client models.Client
	if err := tx.First(&client, in.ClientID).Error; err != nil {
		return nil, err
	}

	inv := &models.Invoice{
		ClientID:   client.ID,
		IssueDate:  now,
		Notes:      in.Notes,
		AmountPaid: decimal.Zero,
		Items:      itemsFrom(in.Items),
	}
	if in.IssueDate != nil {
		inv.IssueDate = *in.IssueDate
	}
	inv.DueDate = inv.IssueDate.AddDate(0, 0, defaultDueDays)
	if in.DueDate != nil {
		if in.DueDate.Before(inv.IssueDate) {
			return nil, utils.InvalidInput("vencimento anterior à emissão")
		}
		inv.DueDate = *in.DueDate
	}

	if in.ContractID != nil {
		c, err := s.Contracts.FindByID(tx, *in.ContractID)
		if err != nil {
			return nil, err
		}
		if c.ClientID != client.ID {
			return nil, utils.InvalidInput("contrato %d não pertence ao cliente %d", c.ID, client.ID)
		}
		inv.ContractID = &c.ID
	} else {
		list, err := s.Contracts.ListByClient(tx, client.ID)
		if err != nil {
			return nil, err
		}
		if c := contract.Authoritative(list); c != nil {
			inv.ContractID = &c.ID
		}
	}

	var entry *models.ReceivableEntry
	if in.ReceivableEntryID != nil {
		var err error
		entry, err = s.Receivables.WithDB(tx).FindByID(*in.ReceivableEntryID)
		if err != nil {
			return nil, err
		}
		if entry.ClientID != client.ID {
			return nil, utils.InvalidInput("recebível %d não pertence ao cliente %d", entry.ID, client.ID)
		}
		if entry.InvoiceID != nil {
			return nil, utils.InvalidTransition("recebível %d já faturado", entry.ID)
		}
		if err := receivable.Transition(entry, models.ReceivableInvoiced, now); err != nil {
			return nil, err
		}
		inv.ReceivableEntryID = &entry.ID
		if len(inv.Items) == 0 {
			inv.Items = []models.InvoiceLineItem{{
				Description: fmt.Sprintf("%s (%s)", entry.Description, entry.Month),
				Quantity:    decimal.NewFromInt(1),
				Rate:        entry.Amount,
			}}
		}
	}
	if len(inv.Items) == 0 {
		return nil, utils.InvalidInput("fatura sem itens")
	}

	if err := Recalculate(inv); err != nil {
		return nil, err
	}
	inv.Number = s.Numberer.Next()
	if err := s.Repo.WithDB(tx).Create(inv); err != nil {
		return nil, err
	}

	if entry != nil {
		entry.InvoiceID = &inv.ID
		if err := s.Receivables.WithDB(tx).UpdateStatus(entry); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

// AddPayment aplica um pagamento. Quitando a fatura, o recebível vinculado vira paid.
func (s *Service) AddPayment(ctx context.Context, id uint, in PaymentDTO, now time.Time) (*models.Invoice, error) {
	current, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	paidAt := now
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}

	err = s.Locker.WithLock(ctx, receivable.LockKey(current.ClientID), func() error {
		tx := s.Repo.DB.Begin()
		if tx.Error != nil {
			return tx.Error
		}
		if err := s.pay(tx, id, in, paidAt, now); err != nil {
			_ = tx.Rollback()
			return err
		}
		return tx.Commit().Error
	})
	if err != nil {
		config.LogError(config.GetLogger(), "invoice", "AddPayment", "aplicando pagamento", id, err)
		return nil, err
	}
	s.Metrics.Payment("invoice")
	_ = s.Cache.Invalidate(ctx, cache.DashboardKey)
	return s.Repo.FindByID(id)
}

func (s *Service) pay(tx *gorm.DB, id uint, in PaymentDTO, paidAt, now time.Time) error {
	repo := s.Repo.WithDB(tx)
	inv, err := repo.FindByID(id)
	if err != nil {
		return err
	}
	payment, err := ApplyPayment(inv, in.Amount, paidAt, in.Reference)
	if err != nil {
		return err
	}
	if err := repo.CreatePayment(&payment); err != nil {
		return err
	}
	if err := repo.UpdateTotals(inv); err != nil {
		return err
	}

	if inv.Status != models.InvoicePaid || inv.ReceivableEntryID == nil {
		return nil
	}
	recRepo := s.Receivables.WithDB(tx)
	entry, err := recRepo.FindByID(*inv.ReceivableEntryID)
	if err != nil {
		return err
	}
	if err := receivable.Transition(entry, models.ReceivablePaid, now); err != nil {
		return err
	}
	return recRepo.UpdateStatus(entry)
}
