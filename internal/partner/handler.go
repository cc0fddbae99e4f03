package partner

import (
	"net/http"

	"github.com/KromaEnergia/api-faturamento/internal/cache"
	"github.com/KromaEnergia/api-faturamento/internal/commission"
	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB          *gorm.DB
	Repository  Repository
	Calculator  *commission.Calculator
	Cache       *cache.Cache
	PhoneRegion string
}

func NewHandler(db *gorm.DB, calc *commission.Calculator, c *cache.Cache, phoneRegion string) *Handler {
	return &Handler{
		DB:          db,
		Repository:  NewRepository(),
		Calculator:  calc,
		Cache:       c,
		PhoneRegion: phoneRegion,
	}
}

func (h *Handler) ensureUniqueName(name string, selfID uint) error {
	existing, err := h.Repository.FindByName(h.DB, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return utils.Inconsistent("já existe parceiro com o nome %q", name)
	}
	return nil
}

// GET /partners
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.List(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar parceiros", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// POST /partners
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in PartnerDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, config.GetLogger(), "partner", "Create", err)
		return
	}
	var p models.Partner
	if err := in.apply(&p, h.PhoneRegion); err != nil {
		utils.WriteError(w, config.GetLogger(), "partner", "Create", err)
		return
	}
	if err := h.ensureUniqueName(p.Name, 0); err != nil {
		utils.WriteError(w, config.GetLogger(), "partner", "Create", err)
		return
	}
	if err := h.Repository.Create(h.DB, &p); err != nil {
		http.Error(w, "Erro ao salvar parceiro", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, p)
}

// GET /partners/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do parceiro inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		http.Error(w, "Parceiro não encontrado", http.StatusNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

// PUT /partners/{id}
// Renomear o parceiro atualiza o salesPartner dos clientes que usavam o nome antigo.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do parceiro inválido", http.StatusBadRequest)
		return
	}
	var in PartnerDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, config.GetLogger(), "partner", "Update", err)
		return
	}

	p, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		http.Error(w, "Parceiro não encontrado", http.StatusNotFound)
		return
	}
	oldName := p.Name
	if err := in.apply(p, h.PhoneRegion); err != nil {
		utils.WriteError(w, config.GetLogger(), "partner", "Update", err)
		return
	}
	if err := h.ensureUniqueName(p.Name, p.ID); err != nil {
		utils.WriteError(w, config.GetLogger(), "partner", "Update", err)
		return
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Não foi possível iniciar transação", http.StatusInternalServerError)
		return
	}
	if err := h.Repository.Update(tx, p); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao atualizar parceiro", http.StatusInternalServerError)
		return
	}
	if oldName != p.Name {
		if err := h.Repository.Rename(tx, oldName, p.Name); err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao atualizar clientes do parceiro", http.StatusInternalServerError)
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Erro ao confirmar transação", http.StatusInternalServerError)
		return
	}
	_ = h.Cache.Invalidate(r.Context(), cache.DashboardKey)
	utils.WriteJSON(w, http.StatusOK, p)
}

// DELETE /partners/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do parceiro inválido", http.StatusBadRequest)
		return
	}
	if _, err := h.Repository.FindByID(h.DB, id); err != nil {
		http.Error(w, "Parceiro não encontrado", http.StatusNotFound)
		return
	}
	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Não foi possível iniciar transação", http.StatusInternalServerError)
		return
	}
	if err := h.Repository.Delete(tx, id); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao deletar parceiro", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Erro ao confirmar transação", http.StatusInternalServerError)
		return
	}
	_ = h.Cache.Invalidate(r.Context(), cache.DashboardKey)
	w.WriteHeader(http.StatusNoContent)
}

// GET /partners/{id}/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do parceiro inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		http.Error(w, "Parceiro não encontrado", http.StatusNotFound)
		return
	}

	var clients []models.Client
	if err := h.DB.Where("status = ?", models.ClientActive).Find(&clients).Error; err != nil {
		http.Error(w, "Erro ao buscar clientes", http.StatusInternalServerError)
		return
	}
	var links []models.CustomerPartnerLink
	if err := h.DB.Find(&links).Error; err != nil {
		http.Error(w, "Erro ao buscar vínculos", http.StatusInternalServerError)
		return
	}
	res, err := h.Calculator.Compute(*p, clients, links)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "partner", "Summary", err)
		return
	}
	pending, err := h.Repository.PendingAmount(h.DB, id)
	if err != nil {
		http.Error(w, "Erro ao somar extratos", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, SummaryDTO{
		ID:                p.ID,
		Name:              p.Name,
		Email:             p.Email,
		Phone:             p.Phone,
		IsActive:          p.IsActive,
		AttributedClients: len(res.Clients),
		MonthlyCommission: res.MonthlyCommission,
		AnnualCommission:  res.AnnualCommission,
		TotalPaid:         p.TotalPaid,
		PendingAmount:     pending,
	})
}
