// Package goal distribui a meta de novos clientes ao longo dos meses.
package goal

import (
	"fmt"

	"github.com/KromaEnergia/api-faturamento/internal/utils"
)

// MonthTarget é a meta de um mês da série
type MonthTarget struct {
	Month            string `json:"month"`
	MonthlyNew       int    `json:"monthlyNew"`
	CumulativeTarget int    `json:"cumulativeTarget"`
	Overridden       bool   `json:"overridden"`
}

// MonthsOfYear devolve os doze meses do ano no formato YYYY-MM
func MonthsOfYear(year int) []string {
	months := make([]string, 0, 12)
	for m := 1; m <= 12; m++ {
		months = append(months, fmt.Sprintf("%04d-%02d", year, m))
	}
	return months
}

// Plan distribui (target - current) igualmente entre os meses. O resto vai
// para os últimos meses. Overrides substituem o acumulado do mês; a série
// final nunca decresce e nunca passa de max(current, target).
func Plan(current, target int, months []string, overrides map[string]int) ([]MonthTarget, error) {
	if current < 0 || target < 0 {
		return nil, utils.InvalidInput("contagens de clientes não podem ser negativas")
	}
	index := make(map[string]int, len(months))
	for i, m := range months {
		if _, err := utils.ParseMonth(m); err != nil {
			return nil, err
		}
		if _, dup := index[m]; dup {
			return nil, utils.InvalidInput("mês %s repetido", m)
		}
		if i > 0 && m < months[i-1] {
			return nil, utils.InvalidInput("meses fora de ordem: %s depois de %s", m, months[i-1])
		}
		index[m] = i
	}
	for m, v := range overrides {
		if _, ok := index[m]; !ok {
			return nil, utils.InvalidInput("override para mês %s fora do plano", m)
		}
		if v < 0 {
			return nil, utils.InvalidInput("override negativo em %s", m)
		}
	}

	n := len(months)
	out := make([]MonthTarget, 0, n)
	if n == 0 {
		return out, nil
	}

	ceiling := max(current, target)
	gap := max(0, target-current)
	base := gap / n
	remainder := gap - base*n

	values := make([]int, n)
	overridden := make([]bool, n)
	running := current
	for i, m := range months {
		running += base
		if i >= n-remainder {
			running++
		}
		values[i] = running
		if v, ok := overrides[m]; ok {
			values[i] = v
			overridden[i] = true
		}
		values[i] = min(values[i], ceiling)
	}

	// meses automáticos não podem passar do próximo override
	bound := ceiling
	for i := n - 1; i >= 0; i-- {
		if overridden[i] {
			bound = min(bound, values[i])
			continue
		}
		values[i] = min(values[i], bound)
	}

	prev := current
	for i, m := range months {
		v := max(values[i], prev)
		out = append(out, MonthTarget{
			Month:            m,
			MonthlyNew:       v - prev,
			CumulativeTarget: v,
			Overridden:       overridden[i],
		})
		prev = v
	}
	return out, nil
}
