package goal

import (
	"net/http"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// build valida a entrada e monta o plano (sem persistir)
func (h *Handler) build(in CreateGoalDTO) (*models.GoalPlan, []MonthTarget, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, nil, err
	}
	months, err := in.months()
	if err != nil {
		return nil, nil, err
	}
	current := 0
	if in.CurrentClientCount != nil {
		current = *in.CurrentClientCount
	} else {
		n, err := h.Repo.CountActiveClients()
		if err != nil {
			return nil, nil, err
		}
		current = int(n)
	}
	targets, err := Plan(current, in.TargetClientCount, months, in.Overrides)
	if err != nil {
		return nil, nil, err
	}
	overrides := in.Overrides
	if overrides == nil {
		overrides = map[string]int{}
	}
	return &models.GoalPlan{
		Name:               in.Name,
		CurrentClientCount: current,
		TargetClientCount:  in.TargetClientCount,
		Months:             months,
		Overrides:          overrides,
	}, targets, nil
}

// POST /goals
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateGoalDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	plan, targets, err := h.build(in)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "goal", "Create", err)
		return
	}
	if err := h.Repo.Create(plan); err != nil {
		http.Error(w, "Erro ao criar meta", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, PlanResponse{Plan: plan, Targets: targets})
}

// POST /goals/preview
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var in CreateGoalDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	_, targets, err := h.build(in)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "goal", "Preview", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, PlanResponse{Targets: targets})
}

// GET /goals
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List()
	if err != nil {
		http.Error(w, "Erro ao buscar metas", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// GET /goals/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID da meta inválido", http.StatusBadRequest)
		return
	}
	plan, err := h.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "Meta não encontrada", http.StatusNotFound)
		return
	}
	targets, err := Plan(plan.CurrentClientCount, plan.TargetClientCount, plan.Months, plan.Overrides)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "goal", "Get", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, PlanResponse{Plan: plan, Targets: targets})
}

// PUT /goals/{id}/overrides
func (h *Handler) UpdateOverrides(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r, "id")
	if err != nil {
		http.Error(w, "ID da meta inválido", http.StatusBadRequest)
		return
	}
	var in OverridesDTO
	if err := utils.DecodeJSON(r, &in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	plan, err := h.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "Meta não encontrada", http.StatusNotFound)
		return
	}
	if in.Overrides == nil {
		in.Overrides = map[string]int{}
	}
	targets, err := Plan(plan.CurrentClientCount, plan.TargetClientCount, plan.Months, in.Overrides)
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "goal", "UpdateOverrides", err)
		return
	}
	plan.Overrides = in.Overrides
	if err := h.Repo.UpdateOverrides(plan); err != nil {
		http.Error(w, "Erro ao atualizar meta", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, PlanResponse{Plan: plan, Targets: targets})
}
