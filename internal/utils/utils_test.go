package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), m)

	for _, bad := range []string{"2024-13", "2024-2", "24-02", "", "2024-02-01"} {
		_, err := ParseMonth(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestAddMonthsCrossesYear(t *testing.T) {
	start := time.Date(2024, 11, 30, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-02", MonthKey(AddMonths(start, 3)))
	assert.Equal(t, "2024-10", PreviousMonth(start))
}

func TestMoneyHelpers(t *testing.T) {
	assert.True(t, decimal.RequireFromString("1350").Equal(ApplyPercentDiscount(decimal.NewFromInt(1500), decimal.NewFromInt(10))))
	assert.True(t, decimal.RequireFromString("10.13").Equal(Round2(decimal.RequireFromString("10.125"))))
	assert.True(t, MaxZero(decimal.NewFromInt(-3)).IsZero())
	assert.False(t, ValidPercent(decimal.NewFromInt(101)))
	assert.True(t, ValidPercent(decimal.Zero))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(InvalidInput("x")))
	assert.Equal(t, http.StatusConflict, StatusFor(Inconsistent("x")))
	assert.Equal(t, http.StatusNotFound, StatusFor(fmt.Errorf("busca: %w", gorm.ErrRecordNotFound)))
	assert.Equal(t, http.StatusConflict, StatusFor(InvalidTransition("x")))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestNormalizePhone(t *testing.T) {
	p, err := NormalizePhone("(11) 98765-4321", "BR")
	require.NoError(t, err)
	assert.Equal(t, "+5511987654321", p)

	_, err = NormalizePhone("123", "BR")
	assert.ErrorIs(t, err, ErrInvalidInput)

	p, err = NormalizePhone("", "BR")
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestSenha(t *testing.T) {
	hash, err := HashSenha("s3nha")
	require.NoError(t, err)
	assert.True(t, CheckSenha(hash, "s3nha"))
	assert.False(t, CheckSenha(hash, "outra"))

	tmp, err := GerarSenhaTemporaria()
	require.NoError(t, err)
	assert.Len(t, tmp, 12)
}
