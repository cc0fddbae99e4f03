package receivable

import (
	"fmt"
	"net/http"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/export"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// StatusUpdateDTO usado no PATCH /receivables/{rid}/status
type StatusUpdateDTO struct {
	Status models.ReceivableStatus `json:"status" validate:"required,oneof=pending invoiced paid overdue"`
}

// GET /clients/{id}/receivables
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do cliente inválido", http.StatusBadRequest)
		return
	}

	entries, err := h.Service.Repo.ListByClient(id)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "receivable", "List", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, entries)
}

// POST /clients/{id}/receivables/regenerate
func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do cliente inválido", http.StatusBadRequest)
		return
	}

	res, err := h.Service.Regenerate(r.Context(), id, time.Now())
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "receivable", "Regenerate", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

// PATCH /receivables/{rid}/status
// Regra: pago é terminal.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	rid, err := utils.ParseID(r, "rid")
	if err != nil {
		http.Error(w, "ID do recebível inválido", http.StatusBadRequest)
		return
	}

	var in StatusUpdateDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		http.Error(w, "Status inválido. Use 'pending', 'invoiced', 'paid' ou 'overdue'.", http.StatusBadRequest)
		return
	}

	entry, err := h.Service.UpdateStatus(r.Context(), rid, in.Status, time.Now())
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "receivable", "UpdateStatus", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, entry)
}

// GET /clients/{id}/receivables/export
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do cliente inválido", http.StatusBadRequest)
		return
	}

	entries, err := h.Service.Repo.ListByClient(id)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "receivable", "Export", err)
		return
	}
	f, err := export.Receivables(entries)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "receivable", "Export", err)
		return
	}
	if err := export.Serve(w, f, fmt.Sprintf("recebiveis-cliente-%d.xlsx", id)); err != nil {
		config.LogError(config.GetLogger(), "receivable", "Export", "escrevendo planilha", id, err)
	}
}
