package snapshot

import (
	"context"
	"testing"

	"github.com/KromaEnergia/api-faturamento/internal/cache"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/testutil"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureUpsertsByMonth(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewService(NewRepository(db), cache.NewLocker(nil), nil, nil)
	ctx := context.Background()

	a := models.Client{Name: "A", Status: models.ClientActive, MRR: dec("100"), BillingCycle: models.CycleMonthly, SalesPartner: "P"}
	b := models.Client{Name: "B", Status: models.ClientActive, MRR: dec("200"), BillingCycle: models.CycleMonthly}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	jan, err := s.Capture(ctx, "2025-01", now)
	require.NoError(t, err)
	assert.True(t, dec("300").Equal(jan.TotalMRR))
	require.Len(t, jan.ClientSnapshots, 2)

	require.NoError(t, db.Model(&a).Update("mrr", dec("150")).Error)
	require.NoError(t, db.Model(&b).Update("status", models.ClientInactive).Error)

	feb, err := s.Capture(ctx, "2025-02", now)
	require.NoError(t, err)
	assert.True(t, dec("50").Equal(feb.ExpansionMRR))
	assert.True(t, dec("200").Equal(feb.ChurnedMRR))
	assert.True(t, dec("-150").Equal(feb.NetNewMRR))

	// recapturar o mesmo mês sobrescreve
	c := models.Client{Name: "C", Status: models.ClientActive, MRR: dec("40"), BillingCycle: models.CycleMonthly}
	require.NoError(t, db.Create(&c).Error)
	feb2, err := s.Capture(ctx, "2025-02", now)
	require.NoError(t, err)
	assert.True(t, dec("40").Equal(feb2.NewMRR))
	assert.Equal(t, 2, feb2.ClientCount)

	var count int64
	require.NoError(t, db.Model(&models.MonthlySnapshot{}).Where("month = ?", "2025-02").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	history, err := s.Repo.List()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2025-01", history[0].Month)
	assert.Equal(t, "P", history[0].ClientSnapshots[0].Partner)
}

func TestCaptureRejectsMonthBeforeExistingSnapshot(t *testing.T) {
	db := testutil.OpenDB(t)
	s := NewService(NewRepository(db), cache.NewLocker(nil), nil, nil)
	ctx := context.Background()

	a := models.Client{Name: "A", Status: models.ClientActive, MRR: dec("100"), BillingCycle: models.CycleMonthly}
	require.NoError(t, db.Create(&a).Error)
	_, err := s.Capture(ctx, "2025-01", now)
	require.NoError(t, err)
	feb, err := s.Capture(ctx, "2025-02", now)
	require.NoError(t, err)

	require.NoError(t, db.Model(&a).Update("mrr", dec("400")).Error)
	_, err = s.Capture(ctx, "2025-01", now)
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)

	jan, err := s.Repo.FindByMonth("2025-01")
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(jan.TotalMRR))

	// o mês mais recente continua recapturável
	feb2, err := s.Capture(ctx, "2025-02", now)
	require.NoError(t, err)
	assert.Equal(t, feb.ID, feb2.ID)
	assert.True(t, dec("300").Equal(feb2.ExpansionMRR))
}
