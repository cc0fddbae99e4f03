package contract

import (
	"net/http"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/cache"
	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Cache      *cache.Cache
}

func NewHandler(db *gorm.DB, c *cache.Cache) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Cache: c}
}

func (h *Handler) invalidate(r *http.Request) {
	_ = h.Cache.Invalidate(r.Context(), cache.DashboardKey)
}

// POST /clients/{id}/contracts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	clientID, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do cliente inválido", http.StatusBadRequest)
		return
	}
	var in ContractDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, config.GetLogger(), "contract", "Create", err)
		return
	}

	var client models.Client
	if err := h.DB.First(&client, clientID).Error; err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}

	c := models.Contract{ClientID: clientID}
	in.apply(&c)
	for _, s := range in.Streams {
		c.Streams = append(c.Streams, s.toModel(0))
	}
	if err := validateContract(c); err != nil {
		utils.WriteError(w, config.GetLogger(), "contract", "Create", err)
		return
	}

	if err := h.Repository.Create(h.DB, &c); err != nil {
		http.Error(w, "Erro ao salvar contrato", http.StatusInternalServerError)
		return
	}
	h.invalidate(r)
	utils.WriteJSON(w, http.StatusCreated, c)
}

// GET /clients/{id}/contracts
func (h *Handler) ListByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do cliente inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.ListByClient(h.DB, clientID)
	if err != nil {
		http.Error(w, "Erro ao listar contratos", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// PUT /contracts/{cid}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "cid")
	if err != nil {
		http.Error(w, "ID do contrato inválido", http.StatusBadRequest)
		return
	}
	var in ContractDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, config.GetLogger(), "contract", "Update", err)
		return
	}

	c, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		http.Error(w, "Contrato não encontrado", http.StatusNotFound)
		return
	}
	if c.Status == models.ContractTerminated && in.Status == models.ContractActive {
		utils.WriteError(w, config.GetLogger(), "contract", "Update", utils.InvalidTransition("contrato encerrado não pode ser reativado"))
		return
	}
	in.apply(c)
	if err := validateContract(*c); err != nil {
		utils.WriteError(w, config.GetLogger(), "contract", "Update", err)
		return
	}
	if err := h.Repository.Update(h.DB, c); err != nil {
		http.Error(w, "Erro ao atualizar contrato", http.StatusInternalServerError)
		return
	}
	h.invalidate(r)
	utils.WriteJSON(w, http.StatusOK, c)
}

// POST /contracts/{cid}/terminate
func (h *Handler) Terminate(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "cid")
	if err != nil {
		http.Error(w, "ID do contrato inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.FindByID(h.DB, id)
	if err != nil {
		http.Error(w, "Contrato não encontrado", http.StatusNotFound)
		return
	}
	if err := Terminate(c, time.Now()); err != nil {
		utils.WriteError(w, config.GetLogger(), "contract", "Terminate", err)
		return
	}
	if err := h.Repository.Update(h.DB, c); err != nil {
		http.Error(w, "Erro ao encerrar contrato", http.StatusInternalServerError)
		return
	}
	h.invalidate(r)
	utils.WriteJSON(w, http.StatusOK, c)
}

// DELETE /contracts/{cid}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "cid")
	if err != nil {
		http.Error(w, "ID do contrato inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Delete(h.DB, id); err != nil {
		utils.WriteError(w, config.GetLogger(), "contract", "Delete", err)
		return
	}
	h.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

// GET /contracts/{cid}/streams
func (h *Handler) ListStreams(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "cid")
	if err != nil {
		http.Error(w, "ID do contrato inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.ListStreams(h.DB, id)
	if err != nil {
		http.Error(w, "Erro ao listar streams", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// POST /contracts/{cid}/streams
func (h *Handler) CreateStream(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "cid")
	if err != nil {
		http.Error(w, "ID do contrato inválido", http.StatusBadRequest)
		return
	}
	var in StreamDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if _, err := h.Repository.FindByID(h.DB, id); err != nil {
		http.Error(w, "Contrato não encontrado", http.StatusNotFound)
		return
	}
	s := in.toModel(id)
	if err := validateStream(s); err != nil {
		utils.WriteError(w, config.GetLogger(), "contract", "CreateStream", err)
		return
	}
	if err := h.Repository.CreateStream(h.DB, &s); err != nil {
		http.Error(w, "Erro ao salvar stream", http.StatusInternalServerError)
		return
	}
	h.invalidate(r)
	utils.WriteJSON(w, http.StatusCreated, s)
}

// PUT /streams/{sid}
func (h *Handler) UpdateStream(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "sid")
	if err != nil {
		http.Error(w, "ID do stream inválido", http.StatusBadRequest)
		return
	}
	var in StreamDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	s, err := h.Repository.FindStream(h.DB, id)
	if err != nil {
		http.Error(w, "Stream não encontrado", http.StatusNotFound)
		return
	}
	updated := in.toModel(s.ContractID)
	updated.ID = s.ID
	updated.CreatedAt = s.CreatedAt
	if err := validateStream(updated); err != nil {
		utils.WriteError(w, config.GetLogger(), "contract", "UpdateStream", err)
		return
	}
	if err := h.Repository.UpdateStream(h.DB, &updated); err != nil {
		http.Error(w, "Erro ao atualizar stream", http.StatusInternalServerError)
		return
	}
	h.invalidate(r)
	utils.WriteJSON(w, http.StatusOK, updated)
}

// DELETE /streams/{sid}
func (h *Handler) DeleteStream(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "sid")
	if err != nil {
		http.Error(w, "ID do stream inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.DeleteStream(h.DB, id); err != nil {
		utils.WriteError(w, config.GetLogger(), "contract", "DeleteStream", err)
		return
	}
	h.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}
