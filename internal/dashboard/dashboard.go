// Package dashboard monta o resumo do painel, guardado no Redis até a próxima escrita.
package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/cache"
	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/receivable"
	"github.com/KromaEnergia/api-faturamento/internal/snapshot"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Waterfall é o último snapshot sem a lista de clientes
type Waterfall struct {
	Month          string          `json:"month"`
	TotalMRR       decimal.Decimal `json:"totalMRR"`
	NewMRR         decimal.Decimal `json:"newMRR"`
	ExpansionMRR   decimal.Decimal `json:"expansionMRR"`
	ContractionMRR decimal.Decimal `json:"contractionMRR"`
	ChurnedMRR     decimal.Decimal `json:"churnedMRR"`
	NetNewMRR      decimal.Decimal `json:"netNewMRR"`
	NewClients     int             `json:"newClients"`
	ChurnedClients int             `json:"churnedClients"`
}

type Overview struct {
	Month          string                   `json:"month"`
	ActiveClients  int                      `json:"activeClients"`
	TotalMRR       decimal.Decimal          `json:"totalMRR"`
	TotalARR       decimal.Decimal          `json:"totalARR"`
	OneTimeRevenue decimal.Decimal          `json:"oneTimeRevenue"`
	Receivables    []receivable.StatusTotal `json:"receivables"`
	OverdueTotal   decimal.Decimal          `json:"overdueTotal"`
	LatestSnapshot *Waterfall               `json:"latestSnapshot"`
	GeneratedAt    time.Time                `json:"generatedAt"`
}

type Service struct {
	DB          *gorm.DB
	Receivables *receivable.Repository
	Snapshots   *snapshot.Repository
	Cache       *cache.Cache
}

func NewService(db *gorm.DB, c *cache.Cache) *Service {
	return &Service{
		DB:          db,
		Receivables: receivable.NewRepository(db),
		Snapshots:   snapshot.NewRepository(db),
		Cache:       c,
	}
}

// Overview devolve o resumo do cache ou recalcula e guarda
func (s *Service) Overview(ctx context.Context, now time.Time) (*Overview, error) {
	var cached Overview
	if ok, err := s.Cache.GetObject(ctx, cache.DashboardKey, &cached); err == nil && ok {
		return &cached, nil
	}

	ov, err := s.build(now)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.SetObject(ctx, cache.DashboardKey, ov); err != nil {
		config.LogError(config.GetLogger(), "dashboard", "Overview", "gravando cache", nil, err)
	}
	return ov, nil
}

func (s *Service) build(now time.Time) (*Overview, error) {
	var clients []models.Client
	if err := s.DB.Where("status = ?", models.ClientActive).Find(&clients).Error; err != nil {
		return nil, err
	}
	ov := &Overview{
		Month:          utils.MonthKey(now),
		ActiveClients:  len(clients),
		TotalMRR:       decimal.Zero,
		OneTimeRevenue: decimal.Zero,
		OverdueTotal:   decimal.Zero,
		GeneratedAt:    now,
	}
	for _, c := range clients {
		ov.TotalMRR = ov.TotalMRR.Add(c.MRR)
		ov.OneTimeRevenue = ov.OneTimeRevenue.Add(c.OneTimeRevenue)
	}
	ov.TotalARR = ov.TotalMRR.Mul(utils.Twelve)

	totals, err := s.Receivables.TotalsByStatus(ov.Month)
	if err != nil {
		return nil, err
	}
	ov.Receivables = totals

	all, err := s.Receivables.TotalsByStatus("")
	if err != nil {
		return nil, err
	}
	for _, t := range all {
		if t.Status == models.ReceivableOverdue {
			ov.OverdueTotal = t.Amount
		}
	}

	latest, err := s.Snapshots.Latest()
	if err != nil {
		return nil, err
	}
	if latest != nil {
		ov.LatestSnapshot = &Waterfall{
			Month:          latest.Month,
			TotalMRR:       latest.TotalMRR,
			NewMRR:         latest.NewMRR,
			ExpansionMRR:   latest.ExpansionMRR,
			ContractionMRR: latest.ContractionMRR,
			ChurnedMRR:     latest.ChurnedMRR,
			NetNewMRR:      latest.NetNewMRR,
			NewClients:     latest.NewClients,
			ChurnedClients: latest.ChurnedClients,
		}
	}
	return ov, nil
}

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// GET /dashboard
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ov, err := h.Service.Overview(r.Context(), time.Now())
	if err != nil {
		utils.WriteError(w, config.GetLogger(), "dashboard", "Get", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ov)
}
