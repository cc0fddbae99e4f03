package commission

import (
	"testing"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixture() (models.Partner, []models.Client, []models.CustomerPartnerLink) {
	p := models.Partner{ID: 1, Name: "Alpha", CommissionPercentage: dec("10"), OneTimeCommissionPercentage: dec("5"), IsActive: true}
	march := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	clients := []models.Client{
		{ID: 1, Name: "Acme", Status: models.ClientActive, MRR: dec("1000"), OneTimeRevenue: dec("500"), SalesPartner: "Alpha", OnboardingDate: march},
		{ID: 2, Name: "Beta", Status: models.ClientActive, MRR: dec("2000"), SalesPartner: "Alpha", OnboardingDate: march},
		{ID: 3, Name: "Gama", Status: models.ClientActive, MRR: dec("400"), OneTimeRevenue: dec("200"), OnboardingDate: april},
		{ID: 4, Name: "Delta", Status: models.ClientInactive, MRR: dec("999"), SalesPartner: "Alpha"},
	}
	links := []models.CustomerPartnerLink{
		{ID: 1, ClientID: 2, PartnerID: 2, AttributionPct: dec("50")},
		{ID: 2, ClientID: 3, PartnerID: 1, AttributionPct: dec("50")},
		{ID: 3, ClientID: 3, PartnerID: 2, AttributionPct: dec("50")},
	}
	return p, clients, links
}

func TestComputeAttribution(t *testing.T) {
	p, clients, links := fixture()
	res, err := NewCalculator(Config{}).Compute(p, clients, links)
	require.NoError(t, err)

	require.Len(t, res.Clients, 2)
	assert.Equal(t, uint(1), res.Clients[0].ClientID)
	assert.Equal(t, SourceName, res.Clients[0].Source)
	assert.Equal(t, uint(3), res.Clients[1].ClientID)
	assert.Equal(t, SourceLink, res.Clients[1].Source)

	assert.True(t, dec("1200").Equal(res.AttributedMRR), res.AttributedMRR.String())
	assert.True(t, dec("600").Equal(res.AttributedOneTime))
	assert.True(t, dec("120").Equal(res.MonthlyCommission))
	assert.True(t, dec("30").Equal(res.OneTimeCommission))
	assert.True(t, dec("1470").Equal(res.AnnualCommission))
}

func TestComputeUsesOverrides(t *testing.T) {
	p, clients, links := fixture()
	calc := NewCalculator(Config{Overrides: map[uint]Rates{1: {MRRPct: dec("20"), OneTimePct: dec("0")}}})
	res, err := calc.Compute(p, clients, links)
	require.NoError(t, err)
	assert.True(t, dec("240").Equal(res.MonthlyCommission))
	assert.True(t, res.OneTimeCommission.IsZero())
	assert.True(t, dec("2880").Equal(res.AnnualCommission))
}

func TestComputeRejectsBadInputs(t *testing.T) {
	p, clients, links := fixture()

	bad := p
	bad.CommissionPercentage = dec("101")
	_, err := NewCalculator(Config{}).Compute(bad, clients, links)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	over := append([]models.CustomerPartnerLink{}, links...)
	over = append(over, models.CustomerPartnerLink{ID: 9, ClientID: 3, PartnerID: 5, AttributionPct: dec("10")})
	_, err = NewCalculator(Config{}).Compute(p, clients, over)
	assert.ErrorIs(t, err, utils.ErrInconsistentState)

	outOfRange := []models.CustomerPartnerLink{{ID: 1, ClientID: 1, PartnerID: 1, AttributionPct: dec("120")}}
	_, err = NewCalculator(Config{}).Compute(p, clients, outOfRange)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestComputeNoClients(t *testing.T) {
	p, _, _ := fixture()
	res, err := NewCalculator(Config{}).Compute(p, nil, nil)
	require.NoError(t, err)
	assert.True(t, res.MonthlyCommission.IsZero())
	assert.True(t, res.AnnualCommission.IsZero())
	assert.Empty(t, res.Clients)
}

func TestBuildStatementPayable(t *testing.T) {
	p, clients, links := fixture()
	res, err := NewCalculator(Config{}).Compute(p, clients, links)
	require.NoError(t, err)

	march, err := BuildStatement("2025-03", res)
	require.NoError(t, err)
	assert.True(t, dec("145").Equal(march.PayableAmount), march.PayableAmount.String())
	assert.Equal(t, models.StatementPending, march.Status)

	april, err := BuildStatement("2025-04", res)
	require.NoError(t, err)
	assert.True(t, dec("125").Equal(april.PayableAmount))

	may, err := BuildStatement("2025-05", res)
	require.NoError(t, err)
	assert.True(t, dec("120").Equal(may.PayableAmount))

	_, err = BuildStatement("2025-5", res)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}
