package calc

import "github.com/licitaIA/tender-analysis-service/internal/models"

// CostBreakdown is the full aggregation chain of one offer, from the four
// direct-cost groups to the VAT-inclusive total. No intermediate rounding
// is applied; presentation formats at the edge.
type CostBreakdown struct {
	PersonnelCosts      float64 `json:"personnelCosts"`
	MaterialCosts       float64 `json:"materialCosts"`
	SubcontractingCosts float64 `json:"subcontractingCosts"`
	OtherDirectCosts    float64 `json:"otherDirectCosts"`

	DirectCost          float64 `json:"directCost"`
	GeneralExpenses     float64 `json:"generalExpenses"`
	Subtotal            float64 `json:"subtotal"`
	Profit              float64 `json:"profit"`
	TaxableBase         float64 `json:"taxableBase"`
	VatAmount           float64 `json:"vatAmount"`
	TotalWithVat        float64 `json:"totalWithVat"`
	ProfitMarginPercent float64 `json:"profitMarginPercent"`
}

// ComputeCosts aggregates an offer's cost sheet. Every field coerces
// through ParseNumber, so blanks and garbage count as zero and the chain
// always yields a result.
func ComputeCosts(o models.Offer, vatPercent float64) CostBreakdown {
	p := ParseNumber

	personnel := p(o.CostePersonal) + p(o.Vacaciones) + p(o.EdesEquipoRespuestaRapida) +
		p(o.PersonalOtros1) + p(o.PersonalOtros2) + p(o.PersonalOtros3)

	materials := p(o.MaterialIncluido) + p(o.MaterialExcluidoVentas) + p(o.RenovacionTecnologica) +
		p(o.BolsaMateriales) + p(o.DotacionTaller) + p(o.EquiposIT) + p(o.EquiposSustitucion) +
		p(o.Comprobadores) + p(o.MaterialInventarioRfid) + p(o.ComprasOtros1) + p(o.ComprasOtros2)

	subcontracting := p(o.Subcontratacion1) + p(o.Subcontratacion2) + p(o.Subcontratacion3) +
		p(o.Subcontratacion4) + p(o.Subcontratacion5) + p(o.Subcontratacion6) +
		p(o.Subcontratacion7) + p(o.Subcontratacion8)

	other := p(o.HorasExtra) + p(o.Guardias) + p(o.InventarioViajes) + p(o.PisosSedes) +
		p(o.Vehiculos) + p(o.CombustibleAutopista) + p(o.KilometrajeAdicional) + p(o.Consumos) +
		p(o.AtencionesViajesDietas) + p(o.Publicidad) + p(o.OtrosGastos1) + p(o.OtrosGastos2)

	b := CostBreakdown{
		PersonnelCosts:      personnel,
		MaterialCosts:       materials,
		SubcontractingCosts: subcontracting,
		OtherDirectCosts:    other,
	}
	b.DirectCost = personnel + materials + subcontracting + other
	b.GeneralExpenses = b.DirectCost * p(o.GeneralExpensesPercent) / 100
	b.Subtotal = b.DirectCost + b.GeneralExpenses
	b.Profit = b.Subtotal * p(o.IndustrialProfitPercent) / 100
	b.TaxableBase = b.Subtotal + b.Profit
	b.VatAmount = b.TaxableBase * vatPercent / 100
	b.TotalWithVat = b.TaxableBase + b.VatAmount
	if b.TaxableBase > 0 {
		b.ProfitMarginPercent = b.Profit / b.TaxableBase * 100
	}
	return b
}
