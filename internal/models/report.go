package models

// ReportData is the structured tender report extracted by the AI from the
// PCAP and PPT texts. Field names follow the JSON contract of the analysis
// prompt (Spanish, camelCase).
type ReportData struct {
	EsPorLotes bool      `json:"esPorLotes"`
	Lotes      []LotData `json:"lotes,omitempty"`

	ObjetoLicitacion struct {
		Descripcion string `json:"descripcion"`
		CPV         string `json:"cpv"`
		Entidad     string `json:"entidad"`
	} `json:"objetoLicitacion"`

	AlcanceContrato struct {
		Geografico         string `json:"geografico"`
		ServiciosProductos string `json:"serviciosProductos"`
		RequisitosTecnicos string `json:"requisitosTecnicos"`
		Exclusiones        string `json:"exclusiones"`
	} `json:"alcanceContrato"`

	MarcoTemporal struct {
		DuracionBase   string `json:"duracionBase"`
		InicioPrevisto string `json:"inicioPrevisto"`
		FinEstimado    string `json:"finEstimado"`
	} `json:"marcoTemporal"`

	RegimenProrrogas struct {
		NumeroMaximo  string `json:"numeroMaximo"`
		Duracion      string `json:"duracion"`
		Condiciones   string `json:"condiciones"`
		Procedimiento string `json:"procedimiento"`
	} `json:"regimenProrrogas"`

	ModificacionesContractuales struct {
		Supuestos        string `json:"supuestos"`
		PorcentajeMaximo string `json:"porcentajeMaximo"`
		Procedimiento    string `json:"procedimiento"`
		Documentacion    string `json:"documentacion"`
	} `json:"modificacionesContractuales"`

	CronogramaProceso struct {
		LimitePresentacion string `json:"limitePresentacion"`
		AperturaSobres     string `json:"aperturaSobres"`
		PlazoAdjudicacion  string `json:"plazoAdjudicacion"`
		InicioEjecucion    string `json:"inicioEjecucion"`
	} `json:"cronogramaProceso"`

	AnalisisEconomico     AnalisisEconomico     `json:"analisisEconomico"`
	CriteriosAdjudicacion CriteriosAdjudicacion `json:"criteriosAdjudicacion"`
}

// LotData describes one lot when the tender is split into lots.
type LotData struct {
	Nombre          string `json:"nombre"`
	CentroAsociado  string `json:"centroAsociado"`
	Descripcion     string `json:"descripcion"`
	Presupuesto     string `json:"presupuesto"`
	RequisitosClave string `json:"requisitosClave"`
}

// AnalisisEconomico carries the budget, the strategic cost recommendation
// and the economic context sections of the report.
type AnalisisEconomico struct {
	PresupuestoBaseLicitacion string `json:"presupuestoBaseLicitacion"`

	// Pre-filled offer recommended by the AI; keys overlay the default
	// empty Offer. Optional.
	CostesDetalladosRecomendados *Offer `json:"costesDetalladosRecomendados,omitempty"`

	Personal struct {
		TotalTrabajadores  string `json:"totalTrabajadores"`
		DesglosePorPuesto  string `json:"desglosePorPuesto"`
		PerfilesRequeridos string `json:"perfilesRequeridos"`
		Dedicacion         string `json:"dedicacion"`
		CostesEstimados    string `json:"costesEstimados"`
	} `json:"personal"`

	Compras struct {
		Equipamiento string `json:"equipamiento"`
		Consumibles  string `json:"consumibles"`
		Repuestos    string `json:"repuestos"`
	} `json:"compras"`

	Subcontrataciones struct {
		Servicios string `json:"servicios"`
		Limites   string `json:"limites"`
		Costes    string `json:"costes"`
	} `json:"subcontrataciones"`

	OtrosGastos struct {
		Seguros    string `json:"seguros"`
		Generales  string `json:"generales"`
		Indirectos string `json:"indirectos"`
	} `json:"otrosGastos"`
}

// CriterioDetallado is one award criterion with its maximum points.
type CriterioDetallado struct {
	Descripcion      string    `json:"descripcion"`
	PuntuacionMaxima FlexFloat `json:"puntuacionMaxima"`
}

// CriteriosAdjudicacion holds the award criteria extracted from the PCAP.
type CriteriosAdjudicacion struct {
	PuntuacionEconomica  FlexFloat           `json:"puntuacionEconomica"`
	FormulaEconomica     string              `json:"formulaEconomica,omitempty"`
	UmbralBajaTemeraria  string              `json:"umbralBajaTemeraria,omitempty"`
	CriteriosAutomaticos []CriterioDetallado `json:"criteriosAutomaticos"`
	CriteriosSubjetivos  []CriterioDetallado `json:"criteriosSubjetivos"`
}

// AnalysisResult bundles everything the analyze endpoint returns: the parsed
// report plus the ready-to-edit simulation inputs seeded from it.
type AnalysisResult struct {
	Report     *ReportData         `json:"report"`
	Settings   CompetitionSettings `json:"settings"`
	Offer      Offer               `json:"offer"`
	Confidence float64             `json:"confidence"`
}
