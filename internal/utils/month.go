package utils

import (
	"time"
)

const MonthLayout = "2006-01"

// ParseMonth valida uma chave "YYYY-MM" e devolve o primeiro dia do mês em UTC
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil || t.Format(MonthLayout) != month {
		return time.Time{}, InvalidInput("mês %q fora do formato YYYY-MM", month)
	}
	return t, nil
}

// MonthKey formata a data como "YYYY-MM"
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// StartOfMonth devolve o primeiro dia do mês de t, em UTC
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths soma n meses a partir do primeiro dia do mês de t
func AddMonths(t time.Time, n int) time.Time {
	return StartOfMonth(t).AddDate(0, n, 0)
}

// PreviousMonth devolve a chave do mês anterior ao de t
func PreviousMonth(t time.Time) string {
	return MonthKey(AddMonths(t, -1))
}
