package goal

import (
	"testing"

	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cumulative(ts []MonthTarget) []int {
	out := make([]int, len(ts))
	for i, t := range ts {
		out[i] = t.CumulativeTarget
	}
	return out
}

func assertSeries(t *testing.T, ts []MonthTarget, current, target int) {
	t.Helper()
	prev := current
	sum := 0
	for _, m := range ts {
		assert.GreaterOrEqual(t, m.CumulativeTarget, prev, "série decresceu em %s", m.Month)
		assert.LessOrEqual(t, m.CumulativeTarget, max(current, target))
		assert.Equal(t, m.CumulativeTarget-prev, m.MonthlyNew)
		sum += m.MonthlyNew
		prev = m.CumulativeTarget
	}
	assert.Equal(t, prev-current, sum)
}

func TestPlanRemainderGoesToLastMonths(t *testing.T) {
	months := MonthsOfYear(2026)[:9]
	ts, err := Plan(10, 50, months, nil)
	require.NoError(t, err)
	require.Len(t, ts, 9)

	assert.Equal(t, []int{14, 18, 22, 26, 30, 35, 40, 45, 50}, cumulative(ts))
	sum := 0
	for _, m := range ts {
		sum += m.MonthlyNew
	}
	assert.Equal(t, 40, sum)
	assertSeries(t, ts, 10, 50)
}

func TestPlanOverrideDeltaFromEffectiveValue(t *testing.T) {
	months := MonthsOfYear(2026)[:9]
	ts, err := Plan(10, 50, months, map[string]int{"2026-03": 30})
	require.NoError(t, err)

	assert.Equal(t, []int{14, 18, 30, 30, 30, 35, 40, 45, 50}, cumulative(ts))
	assert.Equal(t, 12, ts[2].MonthlyNew)
	assert.True(t, ts[2].Overridden)
	assert.Equal(t, 0, ts[3].MonthlyNew)
	assertSeries(t, ts, 10, 50)
}

func TestPlanLowOverrideClampsEarlierAutoMonths(t *testing.T) {
	months := MonthsOfYear(2026)[:9]
	ts, err := Plan(10, 50, months, map[string]int{"2026-07": 25})
	require.NoError(t, err)

	assert.Equal(t, []int{14, 18, 22, 25, 25, 25, 25, 45, 50}, cumulative(ts))
	assertSeries(t, ts, 10, 50)
}

func TestPlanOverridesCappedAndMonotonic(t *testing.T) {
	months := MonthsOfYear(2026)[:6]
	ts, err := Plan(0, 12, months, map[string]int{"2026-02": 40, "2026-04": 3})
	require.NoError(t, err)

	// 40 é limitado à meta; o override menor posterior não faz a série cair
	assert.Equal(t, []int{2, 12, 12, 12, 12, 12}, cumulative(ts))
	assertSeries(t, ts, 0, 12)
}

func TestPlanTargetBelowCurrent(t *testing.T) {
	ts, err := Plan(30, 20, MonthsOfYear(2026)[:3], nil)
	require.NoError(t, err)
	assert.Equal(t, []int{30, 30, 30}, cumulative(ts))
	for _, m := range ts {
		assert.Zero(t, m.MonthlyNew)
	}
}

func TestPlanEmptyMonths(t *testing.T) {
	ts, err := Plan(10, 50, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, ts)
}

func TestPlanRejectsInvalidInput(t *testing.T) {
	months := MonthsOfYear(2026)[:3]
	cases := map[string]func() error{
		"current negativo": func() error { _, err := Plan(-1, 5, months, nil); return err },
		"target negativo":  func() error { _, err := Plan(1, -5, months, nil); return err },
		"mês inválido":     func() error { _, err := Plan(1, 5, []string{"2026-13"}, nil); return err },
		"mês repetido":     func() error { _, err := Plan(1, 5, []string{"2026-01", "2026-01"}, nil); return err },
		"fora de ordem":    func() error { _, err := Plan(1, 5, []string{"2026-02", "2026-01"}, nil); return err },
		"override de fora": func() error { _, err := Plan(1, 5, months, map[string]int{"2027-01": 2}); return err },
		"override negativo": func() error {
			_, err := Plan(1, 5, months, map[string]int{"2026-01": -2})
			return err
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, fn(), utils.ErrInvalidInput)
		})
	}
}

func TestMonthsOfYear(t *testing.T) {
	months := MonthsOfYear(2025)
	require.Len(t, months, 12)
	assert.Equal(t, "2025-01", months[0])
	assert.Equal(t, "2025-12", months[11])
}
