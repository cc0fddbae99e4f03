package goal

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

func (r *Repository) Create(p *models.GoalPlan) error {
	return r.DB.Create(p).Error
}

func (r *Repository) FindByID(id uint) (*models.GoalPlan, error) {
	var p models.GoalPlan
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) List() ([]models.GoalPlan, error) {
	var list []models.GoalPlan
	err := r.DB.Order("id DESC").Find(&list).Error
	return list, err
}

// UpdateOverrides grava apenas o mapa de ajustes manuais
func (r *Repository) UpdateOverrides(p *models.GoalPlan) error {
	return r.DB.Model(p).Select("overrides", "updated_at").Updates(p).Error
}

// CountActiveClients usado quando a meta é criada sem a contagem atual
func (r *Repository) CountActiveClients() (int64, error) {
	var n int64
	err := r.DB.Model(&models.Client{}).Where("status = ?", models.ClientActive).Count(&n).Error
	return n, err
}
