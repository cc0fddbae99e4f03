package invoice

import (
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"gorm.io/gorm"
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

// Create grava a fatura junto com os itens
func (r *Repository) Create(inv *models.Invoice) error {
	return r.DB.Create(inv).Error
}

func (r *Repository) FindByID(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("paid_at ASC, id ASC") }).
		First(&inv, id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *Repository) ListByClient(clientID uint) ([]models.Invoice, error) {
	var list []models.Invoice
	err := r.DB.Where("client_id = ?", clientID).Order("issue_date DESC, id DESC").Find(&list).Error
	return list, err
}

// UpdateTotals grava só os campos derivados da fatura
func (r *Repository) UpdateTotals(inv *models.Invoice) error {
	return r.DB.Model(&models.Invoice{}).Where("id = ?", inv.ID).Updates(map[string]interface{}{
		"subtotal":       inv.Subtotal,
		"discount_total": inv.DiscountTotal,
		"total":          inv.Total,
		"amount_paid":    inv.AmountPaid,
		"balance_due":    inv.BalanceDue,
		"raw_balance":    inv.RawBalance,
		"status":         inv.Status,
	}).Error
}

// CreatePayment só acrescenta; pagamentos não são editados
func (r *Repository) CreatePayment(p *models.InvoicePayment) error {
	return r.DB.Create(p).Error
}
