package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Analysis is a persisted tender analysis: the AI report plus the metadata
// needed to list and reopen it. Lives in the tenant schema, table analisis.
type Analysis struct {
	ID              string          `json:"id"`
	Titulo          string          `json:"titulo"`
	Report          json.RawMessage `json:"report"`
	PresupuestoBase float64         `json:"presupuesto_base"`
	Confidence      float64         `json:"confidence"`
	Provider        string          `json:"provider"`
	DurationSeconds float64         `json:"duration_seconds"`
	PcapObject      string          `json:"pcap_object"`
	PptObject       string          `json:"ppt_object"`
	CreatedAt       time.Time       `json:"created_at"`
}

// AnalysisSummary is the list-view projection, without the report payload.
type AnalysisSummary struct {
	ID              string    `json:"id"`
	Titulo          string    `json:"titulo"`
	PresupuestoBase float64   `json:"presupuesto_base"`
	Confidence      float64   `json:"confidence"`
	Provider        string    `json:"provider"`
	CreatedAt       time.Time `json:"created_at"`
}

// SaveAnalysis inserts a completed analysis into the tenant schema and
// fills in the generated ID and timestamp.
func SaveAnalysis(ctx context.Context, empresaAlias string, a *Analysis) error {
	if Pool == nil {
		return fmt.Errorf("database not available")
	}
	schema := GetSchemaForEmpresa(empresaAlias)

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now()

	query := fmt.Sprintf(`INSERT INTO %s.analisis
		(id, titulo, report, presupuesto_base, confidence, provider, duration_seconds, pcap_object, ppt_object, created_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, schema)

	_, err := Pool.Exec(ctx, query,
		a.ID, a.Titulo, a.Report, a.PresupuestoBase, a.Confidence,
		a.Provider, a.DurationSeconds, a.PcapObject, a.PptObject, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// ListAnalyses returns the most recent analyses for a tenant, newest first.
func ListAnalyses(ctx context.Context, empresaAlias string, limit int) ([]AnalysisSummary, error) {
	if Pool == nil {
		return nil, fmt.Errorf("database not available")
	}
	schema := GetSchemaForEmpresa(empresaAlias)
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`SELECT id, titulo, presupuesto_base, confidence, provider, created_at
		FROM %s.analisis ORDER BY created_at DESC LIMIT $1`, schema)

	rows, err := Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var result []AnalysisSummary
	for rows.Next() {
		var s AnalysisSummary
		if err := rows.Scan(&s.ID, &s.Titulo, &s.PresupuestoBase, &s.Confidence, &s.Provider, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetAnalysis loads one analysis with its full report.
func GetAnalysis(ctx context.Context, empresaAlias, id string) (*Analysis, error) {
	if Pool == nil {
		return nil, fmt.Errorf("database not available")
	}
	schema := GetSchemaForEmpresa(empresaAlias)

	query := fmt.Sprintf(`SELECT id, titulo, report, presupuesto_base, confidence, provider,
		duration_seconds, pcap_object, ppt_object, created_at
		FROM %s.analisis WHERE id = $1::uuid`, schema)

	var a Analysis
	err := Pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Titulo, &a.Report, &a.PresupuestoBase, &a.Confidence,
		&a.Provider, &a.DurationSeconds, &a.PcapObject, &a.PptObject, &a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("analysis not found: %w", err)
	}
	return &a, nil
}

// DeleteAnalysis removes one analysis.
func DeleteAnalysis(ctx context.Context, empresaAlias, id string) error {
	if Pool == nil {
		return fmt.Errorf("database not available")
	}
	schema := GetSchemaForEmpresa(empresaAlias)

	tag, err := Pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s.analisis WHERE id = $1::uuid", schema), id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("analysis not found")
	}
	return nil
}
