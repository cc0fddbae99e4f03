package client

import (
	"net/http"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
)

// Handler encapsula o serviço de clientes
type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// GET /clients?status=active
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Repo.List(h.Service.DB, r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, "Erro ao buscar clientes", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// POST /clients
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in ClientDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, config.GetLogger(), "client", "Create", err)
		return
	}

	res, err := h.Service.Create(r.Context(), in, time.Now())
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "client", "Create", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, res)
}

// GET /clients/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do cliente inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Service.Repo.FindByID(h.Service.DB, id)
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

// PUT /clients/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do cliente inválido", http.StatusBadRequest)
		return
	}
	var in ClientDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, config.GetLogger(), "client", "Update", err)
		return
	}

	res, err := h.Service.Update(r.Context(), id, in, time.Now())
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "client", "Update", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

// DELETE /clients/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do cliente inválido", http.StatusBadRequest)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, config.GetLogger(), "client", "Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
