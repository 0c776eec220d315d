package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/licitaIA/tender-analysis-service/internal/calc"
	"github.com/licitaIA/tender-analysis-service/internal/models"
)

// Analyzer turns the extracted PCAP and PPT texts into a structured tender
// report through the configured LLM provider.
type Analyzer struct {
	provider Provider
	defaults models.CompetitionSettings
}

// NewAnalyzer creates an analyzer. defaults seed the competition settings
// for values the documents do not state (VAT, max economic score).
func NewAnalyzer(provider Provider, defaults models.CompetitionSettings) *Analyzer {
	return &Analyzer{provider: provider, defaults: defaults}
}

// notSpecified is the sentinel the prompt mandates for missing data.
const notSpecified = "No especificado"

var fenceRegex = regexp.MustCompile("(?s)^```(?:\\w+)?\\s*\n?(.*?)\n?\\s*```$")

// Analyze sends both document texts to the LLM, parses the JSON report and
// seeds the editable simulation inputs from it. Returns the result and the
// provider round-trip duration in seconds.
func (a *Analyzer) Analyze(ctx context.Context, pcapText, pptText string) (*models.AnalysisResult, float64, error) {
	prompt := buildAnalysisPrompt(pcapText, pptText)

	start := time.Now()
	response, err := a.provider.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, 0, fmt.Errorf("AI analysis failed: %w", err)
	}
	duration := time.Since(start).Seconds()

	report, err := parseReport(response)
	if err != nil {
		return nil, duration, fmt.Errorf("failed to parse AI response: %w", err)
	}

	result := &models.AnalysisResult{
		Report:     report,
		Settings:   a.seedSettings(report),
		Offer:      models.NewOffer().Merge(report.AnalisisEconomico.CostesDetalladosRecomendados),
		Confidence: confidenceScore(report),
	}
	return result, duration, nil
}

// parseReport strips markdown fences the model may wrap around the JSON and
// unmarshals the report. Numeric fields tolerate quoted numbers.
func parseReport(response string) (*models.ReportData, error) {
	jsonStr := strings.TrimSpace(response)
	if m := fenceRegex.FindStringSubmatch(jsonStr); m != nil {
		jsonStr = strings.TrimSpace(m[1])
	}

	var report models.ReportData
	if err := json.Unmarshal([]byte(jsonStr), &report); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return &report, nil
}

// seedSettings builds the initial competition settings: defaults for VAT
// and max score, overridden by what the report actually states.
func (a *Analyzer) seedSettings(report *models.ReportData) models.CompetitionSettings {
	settings := a.defaults
	if v, ok := calc.ParseCurrencyString(report.AnalisisEconomico.PresupuestoBaseLicitacion); ok && v > 0 {
		settings.TenderBudget = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if maxScore := report.CriteriosAdjudicacion.PuntuacionEconomica.Float64(); maxScore > 0 {
		settings.MaxEconomicScore = strconv.FormatFloat(maxScore, 'f', -1, 64)
	}
	return settings
}

// confidenceScore estimates extraction quality as the share of key report
// fields the model actually filled.
func confidenceScore(report *models.ReportData) float64 {
	checks := []bool{
		filled(report.ObjetoLicitacion.Descripcion),
		filled(report.ObjetoLicitacion.Entidad),
		filled(report.AlcanceContrato.ServiciosProductos),
		filled(report.MarcoTemporal.DuracionBase),
		filled(report.CronogramaProceso.LimitePresentacion),
		filled(report.AnalisisEconomico.PresupuestoBaseLicitacion),
		budgetParses(report.AnalisisEconomico.PresupuestoBaseLicitacion),
		report.CriteriosAdjudicacion.PuntuacionEconomica > 0,
		filled(report.CriteriosAdjudicacion.FormulaEconomica),
		len(report.CriteriosAdjudicacion.CriteriosAutomaticos) > 0 ||
			len(report.CriteriosAdjudicacion.CriteriosSubjetivos) > 0,
	}
	hits := 0
	for _, ok := range checks {
		if ok {
			hits++
		}
	}
	return float64(hits) / float64(len(checks))
}

func filled(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !strings.HasPrefix(s, notSpecified)
}

func budgetParses(s string) bool {
	v, ok := calc.ParseCurrencyString(s)
	return ok && v > 0
}

// ChatMessage is one turn of the follow-up conversation. Role is "user" or
// "assistant"; the client keeps the history and sends it back each turn.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat answers a follow-up question about an analyzed report. Stateless:
// the report JSON and prior turns travel in the prompt.
func (a *Analyzer) Chat(ctx context.Context, report *models.ReportData, history []ChatMessage, question string) (string, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to serialize report: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Eres un consultor experto en licitaciones públicas de electromedicina en España. ")
	sb.WriteString("Responde a las preguntas del usuario basándote EXCLUSIVAMENTE en el siguiente informe de análisis de una licitación. ")
	sb.WriteString("Si la respuesta no está en el informe, dilo claramente. Responde en español, de forma concisa y profesional.\n\n")
	sb.WriteString("--- INFORME DE ANÁLISIS (JSON) ---\n")
	sb.Write(reportJSON)
	sb.WriteString("\n--- FIN DEL INFORME ---\n\n")
	for _, msg := range history {
		switch msg.Role {
		case "assistant":
			sb.WriteString("Asistente: ")
		default:
			sb.WriteString("Usuario: ")
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("Usuario: ")
	sb.WriteString(question)
	sb.WriteString("\nAsistente:")

	answer, err := a.provider.GenerateText(ctx, sb.String())
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
