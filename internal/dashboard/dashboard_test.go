package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverview(t *testing.T) {
	db := testutil.OpenDB(t)
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	clients := []models.Client{
		{Name: "A", Status: models.ClientActive, MRR: decimal.NewFromInt(100), OneTimeRevenue: decimal.NewFromInt(50), BillingCycle: models.CycleMonthly},
		{Name: "B", Status: models.ClientActive, MRR: decimal.NewFromInt(200), BillingCycle: models.CycleMonthly},
		{Name: "C", Status: models.ClientInactive, MRR: decimal.NewFromInt(999), BillingCycle: models.CycleMonthly},
	}
	require.NoError(t, db.Create(&clients).Error)
	entries := []models.ReceivableEntry{
		{ClientID: clients[0].ID, Month: "2025-03", Amount: decimal.NewFromInt(100), Kind: models.KindRecurring, Status: models.ReceivablePending},
		{ClientID: clients[1].ID, Month: "2025-03", Amount: decimal.NewFromInt(200), Kind: models.KindRecurring, Status: models.ReceivablePaid},
		{ClientID: clients[1].ID, Month: "2025-02", Amount: decimal.NewFromInt(200), Kind: models.KindRecurring, Status: models.ReceivableOverdue},
	}
	require.NoError(t, db.Create(&entries).Error)
	snap := models.MonthlySnapshot{Month: "2025-02", TotalMRR: decimal.NewFromInt(300), NewMRR: decimal.NewFromInt(300), NetNewMRR: decimal.NewFromInt(300), ClientCount: 2, CapturedAt: now}
	require.NoError(t, db.Create(&snap).Error)

	s := NewService(db, nil)
	ov, err := s.Overview(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, "2025-03", ov.Month)
	assert.Equal(t, 2, ov.ActiveClients)
	assert.True(t, decimal.NewFromInt(300).Equal(ov.TotalMRR))
	assert.True(t, decimal.NewFromInt(3600).Equal(ov.TotalARR))
	assert.True(t, decimal.NewFromInt(50).Equal(ov.OneTimeRevenue))
	assert.True(t, decimal.NewFromInt(200).Equal(ov.OverdueTotal))

	byStatus := map[models.ReceivableStatus]int64{}
	for _, st := range ov.Receivables {
		byStatus[st.Status] = st.Count
	}
	assert.Equal(t, int64(1), byStatus[models.ReceivablePending])
	assert.Equal(t, int64(1), byStatus[models.ReceivablePaid])
	assert.Equal(t, int64(0), byStatus[models.ReceivableOverdue])

	require.NotNil(t, ov.LatestSnapshot)
	assert.Equal(t, "2025-02", ov.LatestSnapshot.Month)
}

func TestHandlerWithoutData(t *testing.T) {
	db := testutil.OpenDB(t)
	h := NewHandler(NewService(db, nil))

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest("GET", "/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var ov Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ov))
	assert.Zero(t, ov.ActiveClients)
	assert.Nil(t, ov.LatestSnapshot)
}
