package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/licitaIA/tender-analysis-service/internal/models"
)

func TestComputeCostsChain(t *testing.T) {
	offer := models.NewOffer()
	offer.CostePersonal = "10000"

	b := ComputeCosts(offer, 21)

	assert.InDelta(t, 10000, b.PersonnelCosts, 1e-9)
	assert.InDelta(t, 10000, b.DirectCost, 1e-9)
	assert.InDelta(t, 1300, b.GeneralExpenses, 1e-9)
	assert.InDelta(t, 11300, b.Subtotal, 1e-9)
	assert.InDelta(t, 678, b.Profit, 1e-9)
	assert.InDelta(t, 11978, b.TaxableBase, 1e-9)
	assert.InDelta(t, 2515.38, b.VatAmount, 1e-9)
	assert.InDelta(t, 14493.38, b.TotalWithVat, 1e-9)
	assert.InDelta(t, 5.6604, b.ProfitMarginPercent, 0.0001)
}

func TestComputeCostsGroups(t *testing.T) {
	offer := models.Offer{
		CostePersonal:    "1000",
		Vacaciones:       "200",
		MaterialIncluido: "500",
		EquiposIT:        "300",
		Subcontratacion1: "400",
		Subcontratacion8: "100",
		Vehiculos:        "250",
		OtrosGastos2:     "50",
	}
	b := ComputeCosts(offer, 21)

	assert.InDelta(t, 1200, b.PersonnelCosts, 1e-9)
	assert.InDelta(t, 800, b.MaterialCosts, 1e-9)
	assert.InDelta(t, 500, b.SubcontractingCosts, 1e-9)
	assert.InDelta(t, 300, b.OtherDirectCosts, 1e-9)
	assert.InDelta(t, 2800, b.DirectCost, 1e-9)
	// No percentages set on a zero-value offer.
	assert.InDelta(t, 2800, b.TaxableBase, 1e-9)
}

func TestComputeCostsEmptyOffer(t *testing.T) {
	b := ComputeCosts(models.NewOffer(), 21)

	assert.Zero(t, b.DirectCost)
	assert.Zero(t, b.TaxableBase)
	assert.Zero(t, b.TotalWithVat)
	// Margin guard: zero base yields zero margin, not NaN.
	assert.Zero(t, b.ProfitMarginPercent)
}

func TestComputeCostsIgnoresGarbage(t *testing.T) {
	offer := models.NewOffer()
	offer.CostePersonal = "10000"
	offer.Guardias = "n/a"
	offer.Consumos = "por determinar"

	b := ComputeCosts(offer, 21)
	assert.InDelta(t, 10000, b.DirectCost, 1e-9)
}
