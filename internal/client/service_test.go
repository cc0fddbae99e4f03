package client

import (
	"context"
	"testing"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/cache"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/receivable"
	"github.com/KromaEnergia/api-faturamento/internal/testutil"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	db := testutil.OpenDB(t)
	rec := receivable.NewService(receivable.NewRepository(db), cache.NewLocker(nil), nil, nil, 12)
	return NewService(db, rec, nil, "BR")
}

func TestClientLifecycleKeepsScheduleInSync(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	now := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	onboarding := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	in := ClientDTO{
		Name:           "Acme",
		Phone:          "(11) 98765-4321",
		MRR:            dec("1125"),
		BillingCycle:   models.CycleMonthly,
		OnboardingDate: &onboarding,
	}
	created, err := s.Create(ctx, in, now)
	require.NoError(t, err)
	assert.Equal(t, "+5511987654321", created.Client.Phone)
	assert.Equal(t, models.ClientActive, created.Client.Status)
	assert.Equal(t, models.PricingManual, created.Client.PricingMode)
	require.Len(t, created.Receivables, 12)
	assert.Equal(t, "2025-11", created.Receivables[0].Month)

	id := created.Client.ID

	in.BillingCycle = models.CycleQuarterly
	updated, err := s.Update(ctx, id, in, now)
	require.NoError(t, err)
	require.Len(t, updated.Receivables, 4)
	for _, e := range updated.Receivables {
		assert.True(t, dec("3375").Equal(e.Amount))
	}

	// mudar só o nome não refaz o cronograma
	in.Name = "Acme Ltda"
	renamed, err := s.Update(ctx, id, in, now)
	require.NoError(t, err)
	assert.Empty(t, renamed.Receivables)
	assert.Equal(t, "Acme Ltda", renamed.Client.Name)

	first := updated.Receivables[0]
	_, err = s.Receivables.UpdateStatus(ctx, first.ID, models.ReceivablePaid, now)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Repo.FindByID(s.DB, id)
	assert.Error(t, err)

	left, err := s.Receivables.Repo.ListByClient(id)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, first.ID, left[0].ID)
}

func TestCreateRejectsInvalidPricing(t *testing.T) {
	s := newService(t)
	_, err := s.Create(context.Background(), ClientDTO{Name: "x", Discount: dec("150")}, time.Now())
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = s.Create(context.Background(), ClientDTO{Name: "x", Phone: "123"}, time.Now())
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestUpdateRollsBackWhenScheduleFails(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	now := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)

	in := ClientDTO{Name: "Acme", MRR: dec("1125"), BillingCycle: models.CycleMonthly}
	created, err := s.Create(ctx, in, now)
	require.NoError(t, err)
	id := created.Client.ID

	broken := models.ReceivableEntry{ClientID: id, Month: "2025-10", Amount: dec("1"), Kind: models.KindRecurring, Status: "lost"}
	require.NoError(t, s.DB.Create(&broken).Error)

	in.MRR = dec("2000")
	_, err = s.Update(ctx, id, in, now)
	assert.ErrorIs(t, err, utils.ErrInconsistentState)

	stored, err := s.Repo.FindByID(s.DB, id)
	require.NoError(t, err)
	assert.True(t, dec("1125").Equal(stored.MRR))

	entries, err := s.Receivables.Repo.ListByClient(id)
	require.NoError(t, err)
	assert.Len(t, entries, 13)
}
