package contract

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/testutil"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestAuthoritativePicksLatestActive(t *testing.T) {
	list := []models.Contract{
		{ID: 1, Status: models.ContractActive, StartDate: day(2024, 1, 1)},
		{ID: 2, Status: models.ContractTerminated, StartDate: day(2025, 6, 1)},
		{ID: 3, Status: models.ContractActive, StartDate: day(2025, 1, 1)},
	}
	got := Authoritative(list)
	require.NotNil(t, got)
	assert.Equal(t, uint(3), got.ID)

	assert.Nil(t, Authoritative([]models.Contract{{ID: 9, Status: models.ContractTerminated}}))
}

func TestTerminate(t *testing.T) {
	future := day(2030, 1, 1)
	c := &models.Contract{ID: 1, Status: models.ContractActive, EndDate: &future}
	now := day(2025, 5, 5)

	require.NoError(t, Terminate(c, now))
	assert.Equal(t, models.ContractTerminated, c.Status)
	assert.Equal(t, now, *c.EndDate)
	assert.ErrorIs(t, Terminate(c, now), utils.ErrInvalidTransition)
}

func TestValidateContract(t *testing.T) {
	c := models.Contract{BillingCycle: models.CycleMonthly, Status: models.ContractActive, StartDate: day(2025, 1, 1)}
	require.NoError(t, validateContract(c))

	bad := c
	bad.BillingCycle = "Weekly"
	assert.ErrorIs(t, validateContract(bad), utils.ErrInvalidInput)

	bad = c
	bad.Streams = []models.RevenueStream{{Type: models.StreamSubscription, Frequency: "daily"}}
	assert.ErrorIs(t, validateContract(bad), utils.ErrInvalidInput)
}

func TestCreateAndTerminateHandlers(t *testing.T) {
	db := testutil.OpenDB(t)
	client := models.Client{Name: "Acme", Status: models.ClientActive, BillingCycle: models.CycleMonthly}
	require.NoError(t, db.Create(&client).Error)

	h := NewHandler(db, nil)
	router := mux.NewRouter()
	router.HandleFunc("/clients/{id}/contracts", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/contracts/{cid}/terminate", h.Terminate).Methods(http.MethodPost)

	body, _ := json.Marshal(map[string]any{
		"startDate":    "2025-01-01T00:00:00Z",
		"billingCycle": "Quarterly",
		"streams": []map[string]any{
			{"name": "Base", "type": "subscription", "frequency": "quarterly", "amount": 3000},
		},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clients/1/contracts", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Contract
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, models.ContractActive, created.Status)
	require.Len(t, created.Streams, 1)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contracts/1/terminate", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contracts/1/terminate", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
