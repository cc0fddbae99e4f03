package partner

import (
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Create(db *gorm.DB, p *models.Partner) error
	List(db *gorm.DB) ([]models.Partner, error)
	FindByID(db *gorm.DB, id uint) (*models.Partner, error)
	FindByName(db *gorm.DB, name string) (*models.Partner, error)
	Update(db *gorm.DB, p *models.Partner) error
	Rename(db *gorm.DB, oldName, newName string) error
	Delete(db *gorm.DB, id uint) error
	PendingAmount(db *gorm.DB, id uint) (decimal.Decimal, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, p *models.Partner) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) List(db *gorm.DB) ([]models.Partner, error) {
	var list []models.Partner
	err := db.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Partner, error) {
	var p models.Partner
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByName devolve nil quando não existe
func (r *repositoryImpl) FindByName(db *gorm.DB, name string) (*models.Partner, error) {
	var list []models.Partner
	if err := db.Unscoped().Where("name = ?", name).Limit(1).Find(&list).Error; err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (r *repositoryImpl) Update(db *gorm.DB, p *models.Partner) error {
	return db.Omit("total_paid").Save(p).Error
}

// Rename acompanha a troca de nome nos clientes que apontam para o parceiro pelo nome
func (r *repositoryImpl) Rename(db *gorm.DB, oldName, newName string) error {
	return db.Model(&models.Client{}).
		Where("sales_partner = ?", oldName).
		Update("sales_partner", newName).Error
}

// Delete remove o parceiro (soft delete) e os vínculos de atribuição
func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	if err := db.Where("partner_id = ?", id).Delete(&models.CustomerPartnerLink{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Partner{}, id).Error
}

// PendingAmount soma os extratos ainda não pagos
func (r *repositoryImpl) PendingAmount(db *gorm.DB, id uint) (decimal.Decimal, error) {
	var list []models.CommissionStatement
	err := db.Where("partner_id = ? AND status = ?", id, models.StatementPending).Find(&list).Error
	total := decimal.Zero
	for _, st := range list {
		total = total.Add(st.PayableAmount)
	}
	return total, err
}
