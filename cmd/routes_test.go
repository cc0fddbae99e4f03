package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/auth"
	"github.com/KromaEnergia/api-faturamento/internal/cache"
	"github.com/KromaEnergia/api-faturamento/internal/invoice"
	"github.com/KromaEnergia/api-faturamento/internal/metrics"
	"github.com/KromaEnergia/api-faturamento/internal/testutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) (*mux.Router, services) {
	t.Helper()
	numberer, err := invoice.NewNumberer(1)
	require.NoError(t, err)
	d := deps{
		DB:          testutil.OpenDB(t),
		Locker:      cache.NewLocker(nil),
		Metrics:     metrics.New(),
		Tokens:      auth.NewTokenIssuer("segredo-de-teste", time.Hour),
		Numberer:    numberer,
		PhoneRegion: "BR",
		Horizon:     12,
	}
	s := buildServices(d)
	return newRouter(d, s), s
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, r http.Handler, email, senha string) string {
	t.Helper()
	rec := do(r, "POST", "/auth/login", "", map[string]string{"email": email, "password": senha})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func TestPublicRoutes(t *testing.T) {
	r, _ := testRouter(t)

	assert.Equal(t, http.StatusOK, do(r, "GET", "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, "GET", "/metrics", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "GET", "/clients", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "GET", "/dashboard", "", nil).Code)
}

func TestAuthenticatedRoutes(t *testing.T) {
	r, s := testRouter(t)
	require.NoError(t, s.Operators.EnsureAdmin("Admin@Kroma.com", "segredo123"))

	token := login(t, r, "admin@kroma.com", "segredo123")

	rec := do(r, "GET", "/clients", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	assert.Equal(t, http.StatusOK, do(r, "GET", "/operators", token, nil).Code)
	assert.Equal(t, http.StatusOK, do(r, "GET", "/dashboard", token, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, "GET", "/snapshots/2025-01", token, nil).Code)
	assert.Equal(t, http.StatusOK, do(r, "GET", "/snapshots", token, nil).Code)
}

func TestOperatorsRequireAdmin(t *testing.T) {
	r, s := testRouter(t)
	require.NoError(t, s.Operators.EnsureAdmin("admin@kroma.com", "segredo123"))
	admin := login(t, r, "admin@kroma.com", "segredo123")

	rec := do(r, "POST", "/operators", admin, map[string]any{"nome": "Ana", "email": "ana@kroma.com", "senha": "senha-forte"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	ana := login(t, r, "ana@kroma.com", "senha-forte")
	assert.Equal(t, http.StatusForbidden, do(r, "GET", "/operators", ana, nil).Code)
	assert.Equal(t, http.StatusOK, do(r, "GET", "/partners", ana, nil).Code)
}
