package snapshot

import (
	"errors"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

// Upsert grava o snapshot do mês, sobrescrevendo se já existir
func (r *Repository) Upsert(s *models.MonthlySnapshot) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_mrr", "total_arr", "client_count",
			"partner_mrr", "partner_clients", "client_snapshots",
			"new_mrr", "expansion_mrr", "contraction_mrr", "churned_mrr", "net_new_mrr",
			"new_clients", "churned_clients", "captured_at", "updated_at",
		}),
	}).Create(s).Error
}

func (r *Repository) FindByMonth(month string) (*models.MonthlySnapshot, error) {
	var s models.MonthlySnapshot
	if err := r.DB.Where("month = ?", month).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// PreviousOf devolve o snapshot mais recente anterior ao mês, ou nil se não houver
func (r *Repository) PreviousOf(month string) (*models.MonthlySnapshot, error) {
	var s models.MonthlySnapshot
	err := r.DB.Where("month < ?", month).Order("month DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// NextOf devolve o primeiro snapshot posterior ao mês, ou nil se não houver
func (r *Repository) NextOf(month string) (*models.MonthlySnapshot, error) {
	var s models.MonthlySnapshot
	err := r.DB.Where("month > ?", month).Order("month ASC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Latest() (*models.MonthlySnapshot, error) {
	var s models.MonthlySnapshot
	err := r.DB.Order("month DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List devolve o histórico em ordem de mês
func (r *Repository) List() ([]models.MonthlySnapshot, error) {
	var out []models.MonthlySnapshot
	err := r.DB.Order("month ASC").Find(&out).Error
	return out, err
}
