package receivable

import (
	"context"
	"testing"

	"github.com/KromaEnergia/api-faturamento/internal/cache"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	db := testutil.OpenDB(t)
	return NewService(NewRepository(db), cache.NewLocker(nil), nil, nil, 12)
}

func TestRegenerateMonthlyToQuarterly(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	c := monthlyClient()
	c.ID = 0
	c.Name = "Acme"
	require.NoError(t, s.Repo.DB.Create(&c).Error)

	res, err := s.Regenerate(ctx, c.ID, date(2025, 11, 10))
	require.NoError(t, err)
	assert.Equal(t, 12, res.Created)
	require.Len(t, res.Entries, 12)

	// primeira mensalidade paga
	first := res.Entries[0]
	_, err = s.UpdateStatus(ctx, first.ID, models.ReceivablePaid, date(2025, 11, 12))
	require.NoError(t, err)

	require.NoError(t, s.Repo.DB.Model(&models.Client{}).Where("id = ?", c.ID).
		Update("billing_cycle", models.CycleQuarterly).Error)

	res, err = s.Regenerate(ctx, c.ID, date(2025, 11, 15))
	require.NoError(t, err)
	assert.Equal(t, 11, res.Deleted)
	assert.Equal(t, 1, res.Kept)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, []string{"2025-11", "2026-02", "2026-05", "2026-08"}, months(res.Entries))

	paid, err := s.Repo.FindByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReceivablePaid, paid.Status)
	assert.True(t, dec("1125").Equal(paid.Amount))
	for _, e := range res.Entries[1:] {
		assert.True(t, dec("3375").Equal(e.Amount))
	}
}

func TestRegenerateOnePaidTwoPending(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	c := monthlyClient()
	c.ID = 0
	require.NoError(t, s.Repo.DB.Create(&c).Error)
	seed := []models.ReceivableEntry{
		{ClientID: c.ID, Month: "2025-11", Amount: dec("1125"), Status: models.ReceivablePaid, Kind: models.KindRecurring},
		{ClientID: c.ID, Month: "2025-12", Amount: dec("999"), Status: models.ReceivablePending, Kind: models.KindRecurring},
		{ClientID: c.ID, Month: "2026-01", Amount: dec("999"), Status: models.ReceivablePending, Kind: models.KindRecurring},
	}
	require.NoError(t, s.Repo.CreateInBatch(seed))

	res, err := s.Regenerate(ctx, c.ID, date(2025, 12, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Deleted)
	assert.Equal(t, 1, res.Kept)

	var count int64
	require.NoError(t, s.Repo.DB.Model(&models.ReceivableEntry{}).Where("client_id = ? AND month = ?", c.ID, "2025-11").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	for _, e := range res.Entries {
		if e.Status == models.ReceivablePending {
			assert.True(t, dec("1125").Equal(e.Amount))
		}
	}
}

func TestUpdateStatusRejectsLeavingPaid(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	e := models.ReceivableEntry{ClientID: 1, Month: "2025-11", Amount: dec("10"), Status: models.ReceivablePaid, Kind: models.KindRecurring}
	require.NoError(t, s.Repo.DB.Create(&e).Error)

	_, err := s.UpdateStatus(ctx, e.ID, models.ReceivablePending, date(2025, 11, 2))
	assert.Error(t, err)
}

func TestMarkOverduePersists(t *testing.T) {
	s := newService(t)
	seed := []models.ReceivableEntry{
		{ClientID: 1, Month: "2025-10", Amount: dec("10"), Status: models.ReceivablePending, Kind: models.KindRecurring},
		{ClientID: 1, Month: "2025-11", Amount: dec("10"), Status: models.ReceivablePending, Kind: models.KindRecurring},
	}
	require.NoError(t, s.Repo.CreateInBatch(seed))

	changed, err := s.MarkOverdue(context.Background(), date(2025, 11, 3))
	require.NoError(t, err)
	require.Len(t, changed, 1)

	entries, err := s.Repo.ListByClient(1)
	require.NoError(t, err)
	assert.Equal(t, models.ReceivableOverdue, entries[0].Status)
	assert.Equal(t, models.ReceivablePending, entries[1].Status)
}

func TestRegenerateKeepsInvoicedEntryAfterItGoesOverdue(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	c := monthlyClient()
	c.ID = 0
	require.NoError(t, s.Repo.DB.Create(&c).Error)
	res, err := s.Regenerate(ctx, c.ID, date(2025, 11, 1))
	require.NoError(t, err)
	first := res.Entries[0]

	invoiceID := uint(42)
	first.InvoiceID = &invoiceID
	first.Status = models.ReceivableInvoiced
	require.NoError(t, s.Repo.UpdateStatus(&first))
	_, err = s.UpdateStatus(ctx, first.ID, models.ReceivableOverdue, date(2025, 12, 2))
	require.NoError(t, err)

	require.NoError(t, s.Repo.DB.Model(&models.Client{}).Where("id = ?", c.ID).Update("mrr", dec("1500")).Error)
	res, err = s.Regenerate(ctx, c.ID, date(2025, 12, 3))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Kept)

	kept, err := s.Repo.FindByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReceivableOverdue, kept.Status)
	require.NotNil(t, kept.InvoiceID)
	assert.True(t, dec("1125").Equal(kept.Amount))

	require.NoError(t, s.Repo.DeleteOpenByClient(c.ID))
	_, err = s.Repo.FindByID(first.ID)
	assert.NoError(t, err)
	n, err := s.Repo.CountByClient(c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRegenerateWindowStartsAtCurrentMonthForPastOnboarding(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	c := monthlyClient()
	c.ID = 0
	c.OnboardingDate = date(2025, 6, 1)
	c.OneTimeRevenue = dec("500")
	require.NoError(t, s.Repo.DB.Create(&c).Error)

	res, err := s.Regenerate(ctx, c.ID, date(2025, 11, 10))
	require.NoError(t, err)
	require.Len(t, res.Entries, 13)
	assert.Equal(t, "2025-11", res.Entries[0].Month)
	assert.Equal(t, "2026-10", res.Entries[len(res.Entries)-1].Month)

	var oneTime []models.ReceivableEntry
	for _, e := range res.Entries {
		if e.Kind == models.KindOneTime {
			oneTime = append(oneTime, e)
		}
	}
	require.Len(t, oneTime, 1)
	assert.Equal(t, "2025-11", oneTime[0].Month)
	assert.True(t, dec("500").Equal(oneTime[0].Amount))
}
