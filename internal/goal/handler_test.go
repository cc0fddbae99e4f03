package goal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/testutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/goals", h.Create).Methods("POST")
	r.HandleFunc("/goals/preview", h.Preview).Methods("POST")
	r.HandleFunc("/goals/{id}", h.Get).Methods("GET")
	r.HandleFunc("/goals/{id}/overrides", h.UpdateOverrides).Methods("PUT")
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGoalLifecycle(t *testing.T) {
	db := testutil.OpenDB(t)
	for i := 0; i < 10; i++ {
		c := models.Client{Name: fmt.Sprintf("c%d", i), Status: models.ClientActive, BillingCycle: models.CycleMonthly}
		require.NoError(t, db.Create(&c).Error)
	}
	inactive := models.Client{Name: "off", Status: models.ClientInactive, BillingCycle: models.CycleMonthly}
	require.NoError(t, db.Create(&inactive).Error)

	r := newRouter(NewHandler(NewRepository(db)))

	rec := do(r, "POST", "/goals", `{"name":"Meta 2026","year":2026,"targetClientCount":22}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.Plan)
	assert.Equal(t, 10, created.Plan.CurrentClientCount)
	require.Len(t, created.Targets, 12)
	assert.Equal(t, 22, created.Targets[11].CumulativeTarget)

	path := fmt.Sprintf("/goals/%d/overrides", created.Plan.ID)
	rec = do(r, "PUT", path, `{"overrides":{"2026-03":20}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(r, "GET", fmt.Sprintf("/goals/%d", created.Plan.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, map[string]int{"2026-03": 20}, got.Plan.Overrides)
	assert.Equal(t, 20, got.Targets[2].CumulativeTarget)
	assert.Equal(t, 8, got.Targets[2].MonthlyNew)
	assert.Equal(t, 20, got.Targets[3].CumulativeTarget)
	assert.Equal(t, 22, got.Targets[11].CumulativeTarget)

	rec = do(r, "PUT", path, `{"overrides":{"2027-01":5}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoalPreviewValidation(t *testing.T) {
	db := testutil.OpenDB(t)
	r := newRouter(NewHandler(NewRepository(db)))

	rec := do(r, "POST", "/goals/preview", `{"months":["2026-01","2026-02"],"currentClientCount":0,"targetClientCount":3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Plan)
	require.Len(t, resp.Targets, 2)
	assert.Equal(t, 1, resp.Targets[0].MonthlyNew)
	assert.Equal(t, 2, resp.Targets[1].MonthlyNew)

	rec = do(r, "POST", "/goals/preview", `{"targetClientCount":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, "POST", "/goals/preview", `{"year":2026,"targetClientCount":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, "POST", "/goals/preview", `{bad`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
