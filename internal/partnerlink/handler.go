package partnerlink

import (
	"context"
	"net/http"

	"github.com/KromaEnergia/api-faturamento/internal/cache"
	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/receivable"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"gorm.io/gorm"
)

// Handler encapsula o DB e o Repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Locker     *cache.Locker
	Cache      *cache.Cache
}

func NewHandler(db *gorm.DB, locker *cache.Locker, c *cache.Cache) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Locker:     locker,
		Cache:      c,
	}
}

// GET /clients/{id}/partner-links
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do cliente inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.ListByClient(h.DB, id)
	if err != nil {
		http.Error(w, "Erro ao buscar vínculos", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// POST /clients/{id}/partner-links
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	clientID, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do cliente inválido", http.StatusBadRequest)
		return
	}
	var in LinkDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, config.GetLogger(), "partnerlink", "Create", err)
		return
	}

	link, err := h.create(r.Context(), clientID, in)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "partnerlink", "Create", err)
		return
	}
	_ = h.Cache.Invalidate(r.Context(), cache.DashboardKey)
	utils.WriteJSON(w, http.StatusCreated, link)
}

func (h *Handler) create(ctx context.Context, clientID uint, in LinkDTO) (*models.CustomerPartnerLink, error) {
	if err := h.DB.First(&models.Client{}, clientID).Error; err != nil {
		return nil, err
	}
	if err := h.DB.First(&models.Partner{}, in.PartnerID).Error; err != nil {
		return nil, err
	}

	link := &models.CustomerPartnerLink{
		ClientID:       clientID,
		PartnerID:      in.PartnerID,
		AttributionPct: utils.Round2(in.AttributionPct),
	}
	err := h.Locker.WithLock(ctx, receivable.LockKey(clientID), func() error {
		existing, err := h.Repository.ListByClient(h.DB, clientID)
		if err != nil {
			return err
		}
		if err := CheckAttribution(existing, in.PartnerID, link.AttributionPct); err != nil {
			return err
		}
		return h.Repository.Create(h.DB, link)
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// DELETE /partner-links/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do vínculo inválido", http.StatusBadRequest)
		return
	}
	if _, err := h.Repository.FindByID(h.DB, id); err != nil {
		http.Error(w, "Vínculo não encontrado", http.StatusNotFound)
		return
	}
	if err := h.Repository.Delete(h.DB, id); err != nil {
		http.Error(w, "Erro ao remover vínculo", http.StatusInternalServerError)
		return
	}
	_ = h.Cache.Invalidate(r.Context(), cache.DashboardKey)
	w.WriteHeader(http.StatusNoContent)
}
