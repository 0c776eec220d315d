package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/licitaIA/tender-analysis-service/internal/models"
)

func simInput() SimulationInput {
	offer := models.NewOffer()
	offer.CostePersonal = "60000"
	offer.TechnicalScore = "45"
	return SimulationInput{
		Offer: offer,
		Settings: models.CompetitionSettings{
			TenderBudget:     "100000",
			MaxEconomicScore: "40",
			VatPercent:       "21",
		},
		CompetitorDiscountPercent: "15",
		CompetitorTechnicalScore:  "50",
	}
}

func TestSimulateCompetitorPrice(t *testing.T) {
	r := Simulate(simInput())

	// 15% off a 100000 budget.
	assert.InDelta(t, 85000, r.Competitor.TaxableBase, 1e-9)
	assert.InDelta(t, 15000, r.Competitor.DiscountAmount, 1e-9)
	assert.InDelta(t, 15, r.Competitor.DiscountPercent, 1e-9)
}

func TestSimulateLowestPrice(t *testing.T) {
	r := Simulate(simInput())

	// Our base: 60000 * 1.13 * 1.06 = 71868, below the competitor's 85000.
	assert.InDelta(t, 71868, r.Ours.TaxableBase, 1e-9)
	assert.InDelta(t, 71868, r.LowestPrice, 1e-9)

	// The cheaper in-budget offer takes the full economic score.
	assert.InDelta(t, 40, r.Ours.EconomicScore, 1e-9)
	assert.InDelta(t, 40*71868.0/85000.0, r.Competitor.EconomicScore, 1e-6)
}

func TestSimulateWinner(t *testing.T) {
	in := simInput()
	r := Simulate(in)
	// Ours: 45 + 40 = 85. Competitor: 50 + 33.82 = 83.82.
	assert.Equal(t, WinnerOurs, r.Winner)

	in.CompetitorTechnicalScore = "60"
	r = Simulate(in)
	assert.Equal(t, WinnerCompetitor, r.Winner)
}

func TestSimulateTieFavoursOurs(t *testing.T) {
	in := simInput()
	// Economic scoring off, identical technical scores: an exact tie.
	in.Settings.MaxEconomicScore = "0"
	in.Offer.TechnicalScore = "45"
	in.CompetitorTechnicalScore = "45"

	r := Simulate(in)
	assert.Equal(t, r.Ours.TotalScore, r.Competitor.TotalScore)
	assert.Equal(t, WinnerOurs, r.Winner)
}

func TestSimulateNoBudget(t *testing.T) {
	in := simInput()
	in.Settings.TenderBudget = ""
	r := Simulate(in)

	assert.Zero(t, r.Competitor.TaxableBase)
	assert.Zero(t, r.Ours.EconomicScore)
	assert.Zero(t, r.Competitor.EconomicScore)
	// Technical scores still compare.
	assert.Equal(t, WinnerCompetitor, r.Winner)
}

func TestSimulateEmptyAllAround(t *testing.T) {
	r := Simulate(SimulationInput{Offer: models.NewOffer()})

	assert.Zero(t, r.Ours.TotalScore)
	assert.Zero(t, r.Competitor.TotalScore)
	assert.Equal(t, WinnerNone, r.Winner)
}

func TestSimulateOverBudgetOfferExcludedFromLowest(t *testing.T) {
	in := simInput()
	in.Offer.CostePersonal = "95000" // base 95000*1.1978 > budget

	r := Simulate(in)
	// Only the competitor's price qualifies as reference.
	assert.InDelta(t, 85000, r.LowestPrice, 1e-9)
	// Our base: 95000 * 1.13 * 1.06 = 113791. The default proportional
	// formula still scores it against the competitor's price.
	assert.InDelta(t, 113791, r.Ours.TaxableBase, 1e-9)
	assert.InDelta(t, 40*85000.0/113791.0, r.Ours.EconomicScore, 1e-6)
}

func TestSimulateCompetitorProfitAssumption(t *testing.T) {
	r := Simulate(simInput())

	// Competitor profit is estimated against our cost subtotal.
	assert.InDelta(t, r.Competitor.TaxableBase-r.Costs.Subtotal, r.Competitor.Profit, 1e-9)
	assert.InDelta(t, r.Competitor.Profit/r.Competitor.TaxableBase*100, r.Competitor.MarginPercent, 1e-9)
}
