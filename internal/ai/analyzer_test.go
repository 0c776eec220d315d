package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licitaIA/tender-analysis-service/internal/models"
)

const sampleResponse = "```json\n" + `{
  "esPorLotes": false,
  "lotes": [],
  "objetoLicitacion": {
    "descripcion": "Mantenimiento integral de equipos de electromedicina",
    "cpv": "50400000-9",
    "entidad": "Servicio Andaluz de Salud"
  },
  "alcanceContrato": {
    "geografico": "Provincia de Sevilla",
    "serviciosProductos": "Mantenimiento preventivo y correctivo",
    "requisitosTecnicos": "Certificación ISO 13485",
    "exclusiones": "No especificado en los documentos"
  },
  "marcoTemporal": {
    "duracionBase": "24 meses",
    "inicioPrevisto": "2025-01-01",
    "finEstimado": "2026-12-31"
  },
  "regimenProrrogas": {
    "numeroMaximo": "2",
    "duracion": "12 meses cada una",
    "condiciones": "Acuerdo mutuo",
    "procedimiento": "No especificado en los documentos"
  },
  "modificacionesContractuales": {
    "supuestos": "Ampliación de equipos",
    "porcentajeMaximo": "20%",
    "procedimiento": "Según LCSP",
    "documentacion": "No especificado en los documentos"
  },
  "cronogramaProceso": {
    "limitePresentacion": "2024-11-15",
    "aperturaSobres": "2024-11-20",
    "plazoAdjudicacion": "2024-12-15",
    "inicioEjecucion": "2025-01-01"
  },
  "analisisEconomico": {
    "presupuestoBaseLicitacion": "1.250.000,00 €",
    "costesDetalladosRecomendados": {
      "costePersonal": "480000",
      "materialIncluido": "120000",
      "industrialProfitPercent": "4"
    },
    "personal": {
      "totalTrabajadores": "8",
      "desglosePorPuesto": "5 Técnicos de Electromedicina, 2 Ingenieros Biomédicos, 1 Responsable de Servicio",
      "perfilesRequeridos": "FP Electromedicina, Ingeniería Biomédica",
      "dedicacion": "Jornada completa",
      "costesEstimados": "364000"
    },
    "compras": {"equipamiento": "Comprobadores", "consumibles": "Repuestos originales", "repuestos": "Incluidos"},
    "subcontrataciones": {"servicios": "Calibraciones", "limites": "30%", "costes": "No especificado en los documentos"},
    "otrosGastos": {"seguros": "RC 600.000", "generales": "13%", "indirectos": "No especificado en los documentos"}
  },
  "criteriosAdjudicacion": {
    "puntuacionEconomica": "40",
    "formulaEconomica": "maxScore * sqrt((tenderBudget - price) / (tenderBudget - lowestPrice))",
    "umbralBajaTemeraria": "Ofertas inferiores en más de 10 unidades porcentuales a la media",
    "criteriosAutomaticos": [
      {"descripcion": "Bolsa de horas adicional", "puntuacionMaxima": 5}
    ],
    "criteriosSubjetivos": [
      {"descripcion": "Memoria técnica", "puntuacionMaxima": "30"}
    ]
  }
}` + "\n```"

type stubProvider struct {
	response string
	err      error
}

func (s *stubProvider) Name() string { return "stub" }
func (s *stubProvider) GenerateJSON(context.Context, string) (string, error) {
	return s.response, s.err
}
func (s *stubProvider) GenerateText(context.Context, string) (string, error) {
	return s.response, s.err
}

func defaults() models.CompetitionSettings {
	return models.CompetitionSettings{MaxEconomicScore: "40", VatPercent: "21"}
}

func TestAnalyzeParsesFencedResponse(t *testing.T) {
	a := NewAnalyzer(&stubProvider{response: sampleResponse}, defaults())

	result, _, err := a.Analyze(context.Background(), "texto pcap", "texto ppt")
	require.NoError(t, err)

	report := result.Report
	assert.False(t, report.EsPorLotes)
	assert.Equal(t, "Servicio Andaluz de Salud", report.ObjetoLicitacion.Entidad)
	assert.Equal(t, "1.250.000,00 €", report.AnalisisEconomico.PresupuestoBaseLicitacion)

	// Quoted numbers decode like plain ones.
	assert.InDelta(t, 40, report.CriteriosAdjudicacion.PuntuacionEconomica.Float64(), 1e-9)
	require.Len(t, report.CriteriosAdjudicacion.CriteriosSubjetivos, 1)
	assert.InDelta(t, 30, report.CriteriosAdjudicacion.CriteriosSubjetivos[0].PuntuacionMaxima.Float64(), 1e-9)
}

func TestAnalyzeSeedsSettingsAndOffer(t *testing.T) {
	a := NewAnalyzer(&stubProvider{response: sampleResponse}, defaults())

	result, _, err := a.Analyze(context.Background(), "pcap", "ppt")
	require.NoError(t, err)

	assert.Equal(t, "1250000", result.Settings.TenderBudget)
	assert.Equal(t, "40", result.Settings.MaxEconomicScore)
	assert.Equal(t, "21", result.Settings.VatPercent)

	// Recommended costs overlay the default offer.
	assert.Equal(t, "480000", result.Offer.CostePersonal)
	assert.Equal(t, "120000", result.Offer.MaterialIncluido)
	assert.Equal(t, "4", result.Offer.IndustrialProfitPercent)
	// Untouched default survives.
	assert.Equal(t, "13", result.Offer.GeneralExpensesPercent)

	assert.Greater(t, result.Confidence, 0.8)
}

func TestAnalyzeRejectsGarbage(t *testing.T) {
	a := NewAnalyzer(&stubProvider{response: "esto no es JSON"}, defaults())
	_, _, err := a.Analyze(context.Background(), "pcap", "ppt")
	assert.Error(t, err)
}

func TestParseReportUnfenced(t *testing.T) {
	report, err := parseReport(`{"esPorLotes": true, "lotes": [{"nombre": "Lote 1"}]}`)
	require.NoError(t, err)
	assert.True(t, report.EsPorLotes)
	require.Len(t, report.Lotes, 1)
	assert.Equal(t, "Lote 1", report.Lotes[0].Nombre)
}

func TestConfidenceEmptyReport(t *testing.T) {
	assert.Zero(t, confidenceScore(&models.ReportData{}))
}
