package commission

import (
	"net/http"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
)

// Handler gerencia as rotas de comissão
type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// GET /partners/{id}/commission
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do parceiro inválido", http.StatusBadRequest)
		return
	}
	res, err := h.Service.Compute(id)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "commission", "Get", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

// POST /partners/{id}/statements
func (h *Handler) GenerateStatement(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do parceiro inválido", http.StatusBadRequest)
		return
	}
	var in StatementDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, config.GetLogger(), "commission", "GenerateStatement", err)
		return
	}

	st, err := h.Service.GenerateStatement(r.Context(), id, in.Month)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "commission", "GenerateStatement", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, st)
}

// GET /partners/{id}/statements
func (h *Handler) ListStatements(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do parceiro inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Service.Repo.ListStatements(id)
	if err != nil {
		http.Error(w, "Erro ao buscar extratos", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// POST /statements/{id}/pay
func (h *Handler) PayStatement(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do extrato inválido", http.StatusBadRequest)
		return
	}
	var in PayStatementDTO
	if r.ContentLength != 0 {
		if err := utils.DecodeJSON(r, &in); err != nil {
			http.Error(w, "JSON mal formado", http.StatusBadRequest)
			return
		}
	}
	st, err := h.Service.PayStatement(r.Context(), id, in, time.Now())
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "commission", "PayStatement", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, st)
}

// GET /partners/{id}/payouts
func (h *Handler) ListPayouts(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do parceiro inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Service.Repo.ListPayouts(id)
	if err != nil {
		http.Error(w, "Erro ao buscar pagamentos", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// POST /partners/{id}/payouts
func (h *Handler) RecordPayout(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do parceiro inválido", http.StatusBadRequest)
		return
	}
	var in PayoutDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(in); err != nil {
		utils.WriteError(w, config.GetLogger(), "commission", "RecordPayout", err)
		return
	}
	p, err := h.Service.RecordPayout(r.Context(), id, in, time.Now())
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "commission", "RecordPayout", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, p)
}
