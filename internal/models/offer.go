package models

// Offer is the editable cost sheet for one bid. Every field is a free-text
// numeric string: empty or unparsable values count as zero in all
// aggregations, matching the behaviour of the spreadsheet it replaces.
type Offer struct {
	// Personal
	CostePersonal             string `json:"costePersonal,omitempty"`
	Vacaciones                string `json:"vacaciones,omitempty"`
	EdesEquipoRespuestaRapida string `json:"edesEquipoRespuestaRapida,omitempty"`
	PersonalOtros1            string `json:"personalOtros1,omitempty"`
	PersonalOtros2            string `json:"personalOtros2,omitempty"`
	PersonalOtros3            string `json:"personalOtros3,omitempty"`

	// Compras y material
	MaterialIncluido       string `json:"materialIncluido,omitempty"`
	MaterialExcluidoVentas string `json:"materialExcluidoVentas,omitempty"`
	RenovacionTecnologica  string `json:"renovacionTecnologica,omitempty"`
	BolsaMateriales        string `json:"bolsaMateriales,omitempty"`
	DotacionTaller         string `json:"dotacionTaller,omitempty"`
	EquiposIT              string `json:"equiposIT,omitempty"`
	EquiposSustitucion     string `json:"equiposSustitucion,omitempty"`
	Comprobadores          string `json:"comprobadores,omitempty"`
	MaterialInventarioRfid string `json:"materialInventarioRfid,omitempty"`
	ComprasOtros1          string `json:"comprasOtros1,omitempty"`
	ComprasOtros2          string `json:"comprasOtros2,omitempty"`

	// Subcontratacion (fixed 8 slots)
	Subcontratacion1 string `json:"subcontratacion1,omitempty"`
	Subcontratacion2 string `json:"subcontratacion2,omitempty"`
	Subcontratacion3 string `json:"subcontratacion3,omitempty"`
	Subcontratacion4 string `json:"subcontratacion4,omitempty"`
	Subcontratacion5 string `json:"subcontratacion5,omitempty"`
	Subcontratacion6 string `json:"subcontratacion6,omitempty"`
	Subcontratacion7 string `json:"subcontratacion7,omitempty"`
	Subcontratacion8 string `json:"subcontratacion8,omitempty"`

	// Otros costes directos
	HorasExtra             string `json:"horasExtra,omitempty"`
	Guardias               string `json:"guardias,omitempty"`
	InventarioViajes       string `json:"inventarioViajes,omitempty"`
	PisosSedes             string `json:"pisosSedes,omitempty"`
	Vehiculos              string `json:"vehiculos,omitempty"`
	CombustibleAutopista   string `json:"combustibleAutopista,omitempty"`
	KilometrajeAdicional   string `json:"kilometrajeAdicional,omitempty"`
	Consumos               string `json:"consumos,omitempty"`
	AtencionesViajesDietas string `json:"atencionesViajesDietas,omitempty"`
	Publicidad             string `json:"publicidad,omitempty"`
	OtrosGastos1           string `json:"otrosGastos1,omitempty"`
	OtrosGastos2           string `json:"otrosGastos2,omitempty"`

	// Porcentajes globales y puntuacion
	GeneralExpensesPercent  string `json:"generalExpensesPercent,omitempty"`
	IndustrialProfitPercent string `json:"industrialProfitPercent,omitempty"`
	TechnicalScore          string `json:"technicalScore,omitempty"`
}

// NewOffer returns a fully populated default offer. Always build offers
// through this factory so no shared default value can be mutated between
// analyses.
func NewOffer() Offer {
	return Offer{
		GeneralExpensesPercent:  "13",
		IndustrialProfitPercent: "6",
	}
}

// Merge overlays the non-empty fields of o2 (an AI cost recommendation)
// onto a copy of o.
func (o Offer) Merge(o2 *Offer) Offer {
	if o2 == nil {
		return o
	}
	merged := o
	src := *o2
	dst := &merged
	overlay(&dst.CostePersonal, src.CostePersonal)
	overlay(&dst.Vacaciones, src.Vacaciones)
	overlay(&dst.EdesEquipoRespuestaRapida, src.EdesEquipoRespuestaRapida)
	overlay(&dst.PersonalOtros1, src.PersonalOtros1)
	overlay(&dst.PersonalOtros2, src.PersonalOtros2)
	overlay(&dst.PersonalOtros3, src.PersonalOtros3)
	overlay(&dst.MaterialIncluido, src.MaterialIncluido)
	overlay(&dst.MaterialExcluidoVentas, src.MaterialExcluidoVentas)
	overlay(&dst.RenovacionTecnologica, src.RenovacionTecnologica)
	overlay(&dst.BolsaMateriales, src.BolsaMateriales)
	overlay(&dst.DotacionTaller, src.DotacionTaller)
	overlay(&dst.EquiposIT, src.EquiposIT)
	overlay(&dst.EquiposSustitucion, src.EquiposSustitucion)
	overlay(&dst.Comprobadores, src.Comprobadores)
	overlay(&dst.MaterialInventarioRfid, src.MaterialInventarioRfid)
	overlay(&dst.ComprasOtros1, src.ComprasOtros1)
	overlay(&dst.ComprasOtros2, src.ComprasOtros2)
	overlay(&dst.Subcontratacion1, src.Subcontratacion1)
	overlay(&dst.Subcontratacion2, src.Subcontratacion2)
	overlay(&dst.Subcontratacion3, src.Subcontratacion3)
	overlay(&dst.Subcontratacion4, src.Subcontratacion4)
	overlay(&dst.Subcontratacion5, src.Subcontratacion5)
	overlay(&dst.Subcontratacion6, src.Subcontratacion6)
	overlay(&dst.Subcontratacion7, src.Subcontratacion7)
	overlay(&dst.Subcontratacion8, src.Subcontratacion8)
	overlay(&dst.HorasExtra, src.HorasExtra)
	overlay(&dst.Guardias, src.Guardias)
	overlay(&dst.InventarioViajes, src.InventarioViajes)
	overlay(&dst.PisosSedes, src.PisosSedes)
	overlay(&dst.Vehiculos, src.Vehiculos)
	overlay(&dst.CombustibleAutopista, src.CombustibleAutopista)
	overlay(&dst.KilometrajeAdicional, src.KilometrajeAdicional)
	overlay(&dst.Consumos, src.Consumos)
	overlay(&dst.AtencionesViajesDietas, src.AtencionesViajesDietas)
	overlay(&dst.Publicidad, src.Publicidad)
	overlay(&dst.OtrosGastos1, src.OtrosGastos1)
	overlay(&dst.OtrosGastos2, src.OtrosGastos2)
	overlay(&dst.GeneralExpensesPercent, src.GeneralExpensesPercent)
	overlay(&dst.IndustrialProfitPercent, src.IndustrialProfitPercent)
	overlay(&dst.TechnicalScore, src.TechnicalScore)
	return merged
}

func overlay(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// CompetitionSettings are the tender-level parameters for the cost and
// score simulation. All values are user-editable numeric strings.
type CompetitionSettings struct {
	TenderBudget     string `json:"tenderBudget"`
	MaxEconomicScore string `json:"maxEconomicScore"`
	VatPercent       string `json:"vatPercent"`
}
