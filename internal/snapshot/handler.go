package snapshot

import (
	"net/http"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/export"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/gorilla/mux"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// CaptureDTO usado no POST /snapshots/capture. Mês vazio = mês corrente.
type CaptureDTO struct {
	Month string `json:"month"`
}

// POST /snapshots/capture
func (h *Handler) Capture(w http.ResponseWriter, r *http.Request) {
	var in CaptureDTO
	if r.ContentLength != 0 {
		if err := utils.DecodeJSON(r, &in); err != nil {
			http.Error(w, "JSON mal formado", http.StatusBadRequest)
			return
		}
	}
	now := time.Now()
	if in.Month == "" {
		in.Month = utils.MonthKey(now)
	}

	snap, err := h.Service.Capture(r.Context(), in.Month, now)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "snapshot", "Capture", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, snap)
}

// GET /snapshots
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.Service.Repo.List()
	if err != nil {
		http.Error(w, "Erro ao buscar snapshots", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, snaps)
}

// GET /snapshots/{month}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	month := mux.Vars(r)["month"]
	if _, err := utils.ParseMonth(month); err != nil {
		http.Error(w, "Mês inválido, use YYYY-MM", http.StatusBadRequest)
		return
	}
	snap, err := h.Service.Repo.FindByMonth(month)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "snapshot", "Get", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, snap)
}

// GET /snapshots/export
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.Service.Repo.List()
	if err != nil {
		http.Error(w, "Erro ao buscar snapshots", http.StatusInternalServerError)
		return
	}
	f, err := export.Snapshots(snaps)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "snapshot", "Export", err)
		return
	}
	if err := export.Serve(w, f, "snapshots.xlsx"); err != nil {
		config.LogError(config.GetLogger(), "snapshot", "Export", "escrevendo planilha", nil, err)
	}
}
