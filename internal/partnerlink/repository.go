package partnerlink

import (
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Create(db *gorm.DB, l *models.CustomerPartnerLink) error
	ListByClient(db *gorm.DB, clientID uint) ([]models.CustomerPartnerLink, error)
	FindByID(db *gorm.DB, id uint) (*models.CustomerPartnerLink, error)
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, l *models.CustomerPartnerLink) error {
	return db.Create(l).Error
}

func (r *repositoryImpl) ListByClient(db *gorm.DB, clientID uint) ([]models.CustomerPartnerLink, error) {
	var list []models.CustomerPartnerLink
	err := db.Where("client_id = ?", clientID).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*models.CustomerPartnerLink, error) {
	var l models.CustomerPartnerLink
	if err := db.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&models.CustomerPartnerLink{}, id).Error
}
