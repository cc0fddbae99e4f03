package mrr

import (
	"net/http"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Aggregator *Aggregator
}

func NewHandler(db *gorm.DB, agg *Aggregator) *Handler {
	return &Handler{DB: db, Aggregator: agg}
}

// ClientMRRResponse compara o MRR derivado dos contratos com o gravado no cliente
type ClientMRRResponse struct {
	Totals
	StoredMRR decimal.Decimal `json:"storedMrr"`
	Drift     decimal.Decimal `json:"drift"`
}

// GetByClient agrega o MRR de um cliente a partir dos contratos
func (h *Handler) GetByClient(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID do cliente inválido", http.StatusBadRequest)
		return
	}

	var client models.Client
	if err := h.DB.First(&client, id).Error; err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}

	var contracts []models.Contract
	if err := h.DB.Preload("Streams").Where("client_id = ?", id).Find(&contracts).Error; err != nil {
		utils.WriteError(w, config.GetLogger(), "mrr", "GetByClient", err)
		return
	}

	totals, err := h.Aggregator.Aggregate(id, contracts, StreamsOf(contracts))
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "mrr", "GetByClient", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, ClientMRRResponse{
		Totals:    totals,
		StoredMRR: client.MRR,
		Drift:     totals.MRR.Sub(client.MRR),
	})
}

// GetAll agrega o MRR de todos os contratos ativos
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	var contracts []models.Contract
	if err := h.DB.Preload("Streams").Where("status = ?", models.ContractActive).Find(&contracts).Error; err != nil {
		utils.WriteError(w, config.GetLogger(), "mrr", "GetAll", err)
		return
	}

	summary, err := h.Aggregator.AggregateAll(contracts, StreamsOf(contracts))
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "mrr", "GetAll", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}
