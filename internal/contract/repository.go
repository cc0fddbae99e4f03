package contract

import (
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Create(db *gorm.DB, c *models.Contract) error
	FindByID(db *gorm.DB, id uint) (*models.Contract, error)
	ListByClient(db *gorm.DB, clientID uint) ([]models.Contract, error)
	Update(db *gorm.DB, c *models.Contract) error
	Delete(db *gorm.DB, id uint) error

	CreateStream(db *gorm.DB, s *models.RevenueStream) error
	FindStream(db *gorm.DB, id uint) (*models.RevenueStream, error)
	ListStreams(db *gorm.DB, contractID uint) ([]models.RevenueStream, error)
	UpdateStream(db *gorm.DB, s *models.RevenueStream) error
	DeleteStream(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, c *models.Contract) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Contract, error) {
	var c models.Contract
	if err := db.Preload("Streams").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListByClient(db *gorm.DB, clientID uint) ([]models.Contract, error) {
	var list []models.Contract
	err := db.Preload("Streams").Where("client_id = ?", clientID).Order("start_date DESC").Find(&list).Error
	return list, err
}

// Update grava só o contrato; streams têm rotas próprias
func (r *repositoryImpl) Update(db *gorm.DB, c *models.Contract) error {
	return db.Omit("Streams").Save(c).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", id).Delete(&models.RevenueStream{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Contract{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *repositoryImpl) CreateStream(db *gorm.DB, s *models.RevenueStream) error {
	return db.Create(s).Error
}

func (r *repositoryImpl) FindStream(db *gorm.DB, id uint) (*models.RevenueStream, error) {
	var s models.RevenueStream
	if err := db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repositoryImpl) ListStreams(db *gorm.DB, contractID uint) ([]models.RevenueStream, error) {
	var list []models.RevenueStream
	err := db.Where("contract_id = ?", contractID).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) UpdateStream(db *gorm.DB, s *models.RevenueStream) error {
	return db.Save(s).Error
}

func (r *repositoryImpl) DeleteStream(db *gorm.DB, id uint) error {
	res := db.Delete(&models.RevenueStream{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
