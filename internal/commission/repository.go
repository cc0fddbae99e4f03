package commission

import (
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository encapsula extratos e pagamentos de comissão
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando outro *gorm.DB (ex.: tx)
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

func (r *Repository) FindPartner(id uint) (*models.Partner, error) {
	var p models.Partner
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Inputs carrega os clientes ativos e todos os vínculos de atribuição
func (r *Repository) Inputs() ([]models.Client, []models.CustomerPartnerLink, error) {
	var clients []models.Client
	if err := r.DB.Where("status = ?", models.ClientActive).Order("id ASC").Find(&clients).Error; err != nil {
		return nil, nil, err
	}
	var links []models.CustomerPartnerLink
	if err := r.DB.Find(&links).Error; err != nil {
		return nil, nil, err
	}
	return clients, links, nil
}

// FindStatement busca o extrato do parceiro no mês; devolve nil se não existir
func (r *Repository) FindStatement(partnerID uint, month string) (*models.CommissionStatement, error) {
	var list []models.CommissionStatement
	err := r.DB.Where("partner_id = ? AND month = ?", partnerID, month).Limit(1).Find(&list).Error
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}

func (r *Repository) FindStatementByID(id uint) (*models.CommissionStatement, error) {
	var st models.CommissionStatement
	if err := r.DB.First(&st, id).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *Repository) ListStatements(partnerID uint) ([]models.CommissionStatement, error) {
	var list []models.CommissionStatement
	err := r.DB.Where("partner_id = ?", partnerID).Order("month DESC").Find(&list).Error
	return list, err
}

func (r *Repository) SaveStatement(st *models.CommissionStatement) error {
	return r.DB.Save(st).Error
}

func (r *Repository) CreatePayout(p *models.PartnerPayout) error {
	return r.DB.Create(p).Error
}

func (r *Repository) ListPayouts(partnerID uint) ([]models.PartnerPayout, error) {
	var list []models.PartnerPayout
	err := r.DB.Where("partner_id = ?", partnerID).Order("paid_at DESC, id DESC").Find(&list).Error
	return list, err
}

// AddToTotalPaid incrementa o acumulado pago ao parceiro direto no banco
func (r *Repository) AddToTotalPaid(partnerID uint, amount decimal.Decimal) error {
	return r.DB.Model(&models.Partner{}).
		Where("id = ?", partnerID).
		Update("total_paid", gorm.Expr("total_paid + ?", amount)).Error
}
