package goal

import (
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
)

// CreateGoalDTO usado no POST /goals e no POST /goals/preview.
// Sem months, usa os doze meses de year.
type CreateGoalDTO struct {
	Name               string         `json:"name" validate:"max=255"`
	Year               int            `json:"year" validate:"omitempty,min=2000,max=2100"`
	Months             []string       `json:"months"`
	CurrentClientCount *int           `json:"currentClientCount" validate:"omitempty,min=0"`
	TargetClientCount  int            `json:"targetClientCount" validate:"min=0"`
	Overrides          map[string]int `json:"overrides"`
}

// OverridesDTO usado no PUT /goals/{id}/overrides. Substitui o mapa inteiro.
type OverridesDTO struct {
	Overrides map[string]int `json:"overrides"`
}

// PlanResponse devolve a meta com a série recalculada
type PlanResponse struct {
	Plan    *models.GoalPlan `json:"plan,omitempty"`
	Targets []MonthTarget    `json:"targets"`
}

func (d CreateGoalDTO) months() ([]string, error) {
	if len(d.Months) > 0 {
		return d.Months, nil
	}
	if d.Year == 0 {
		return nil, utils.InvalidInput("informe months ou year")
	}
	return MonthsOfYear(d.Year), nil
}
