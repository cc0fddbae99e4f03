package export

import (
	"net/http/httptest"
	"testing"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReceivablesWorkbook(t *testing.T) {
	f, err := Receivables([]models.ReceivableEntry{
		{Month: "2025-11", Description: "Mensalidade 2025-11", Kind: models.KindRecurring, Status: models.ReceivablePaid, Amount: decimal.RequireFromString("1125")},
		{Month: "2025-12", Description: "Mensalidade 2025-12", Kind: models.KindRecurring, Status: models.ReceivablePending, Amount: decimal.RequireFromString("1125")},
	})
	require.NoError(t, err)

	v, err := f.GetCellValue(sheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "2025-12", v)
	v, err = f.GetCellValue(sheetName, "E2")
	require.NoError(t, err)
	assert.Equal(t, "1125", v)
}

func TestServeWritesReadableXLSX(t *testing.T) {
	f, err := Snapshots([]models.MonthlySnapshot{{Month: "2025-01", TotalMRR: decimal.NewFromInt(100), ClientCount: 2}})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, Serve(rec, f, "snapshots.xlsx"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "snapshots.xlsx")

	back, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	v, err := back.GetCellValue(sheetName, "D2")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}
