package invoice

import (
	"net/http"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// POST /invoices
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInvoiceDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, config.GetLogger(), "invoice", "Create", err)
		return
	}

	inv, err := h.Service.Create(r.Context(), in, time.Now())
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "invoice", "Create", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, inv)
}

// GET /invoices/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID da fatura inválido", http.StatusBadRequest)
		return
	}
	inv, err := h.Service.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "Fatura não encontrada", http.StatusNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, inv)
}

// GET /clients/{id}/invoices
func (h *Handler) ListByClient(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do cliente inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Service.Repo.ListByClient(id)
	if err != nil {
		http.Error(w, "Erro ao buscar faturas", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// POST /invoices/{id}/payments
func (h *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID da fatura inválido", http.StatusBadRequest)
		return
	}
	var in PaymentDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, config.GetLogger(), "invoice", "AddPayment", err)
		return
	}

	inv, err := h.Service.AddPayment(r.Context(), id, in, time.Now())
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "invoice", "AddPayment", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, inv)
}

// POST /invoices/preview
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var in PreviewDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, config.GetLogger(), "invoice", "Preview", err)
		return
	}

	items := itemsFrom(in.Items)
	for i := range items {
		amount, err := LineItemAmount(items[i])
		if err != nil {
			utils.WriteError(w, config.GetLogger(), "invoice", "Preview", err)
			return
		}
		items[i].Amount = amount
	}
	totals, err := ComputeTotals(items, in.AmountPaid)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "invoice", "Preview", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, PreviewResponse{Items: items, Totals: totals, Status: StatusFor(totals)})
}
