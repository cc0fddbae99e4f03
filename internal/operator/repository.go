package operator

import (
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	FindByEmail(db *gorm.DB, email string) (*models.Operator, error)
	Save(db *gorm.DB, o *models.Operator) error
	ListAll(db *gorm.DB) ([]models.Operator, error)
	Count(db *gorm.DB) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Operator, error) {
	var o models.Operator
	if err := db.Where("email = ?", email).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repositoryImpl) Save(db *gorm.DB, o *models.Operator) error {
	return db.Create(o).Error
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]models.Operator, error) {
	var list []models.Operator
	err := db.Order("nome ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Count(db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(&models.Operator{}).Count(&n).Error
	return n, err
}
