package client

import (
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Create(db *gorm.DB, c *models.Client) error
	List(db *gorm.DB, status string) ([]models.Client, error)
	FindByID(db *gorm.DB, id uint) (*models.Client, error)
	Update(db *gorm.DB, c *models.Client) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, c *models.Client) error {
	return db.Create(c).Error
}

// List aceita filtro opcional por status
func (r *repositoryImpl) List(db *gorm.DB, status string) ([]models.Client, error) {
	var list []models.Client
	q := db.Order("name ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Client, error) {
	var c models.Client
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Update(db *gorm.DB, c *models.Client) error {
	return db.Save(c).Error
}

// Delete apaga o cliente (soft delete) e os vínculos com parceiros
func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	if err := db.Where("client_id = ?", id).Delete(&models.CustomerPartnerLink{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Client{}, id).Error
}
