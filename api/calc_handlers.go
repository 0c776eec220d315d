package api

import (
	"encoding/json"
	"net/http"

	"github.com/licitaIA/tender-analysis-service/internal/auth"
	"github.com/licitaIA/tender-analysis-service/internal/calc"
)

// Simulate runs the cost aggregation and the competitive comparison over
// an editable offer. Total by construction: malformed numeric strings
// coerce to zero and broken formulas fall back, so this never fails on
// user input.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if _, err := auth.GetClaimsFromContext(r.Context()); err != nil {
		h.sendError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input calc.SimulationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.CompetitorDiscountPercent == "" {
		input.CompetitorDiscountPercent = h.config.Analysis.CompetitorDiscount
	}
	if input.Settings.VatPercent == "" {
		input.Settings.VatPercent = h.config.DefaultSettings().VatPercent
	}

	json.NewEncoder(w).Encode(calc.Simulate(input))
}

// ScoreRequest carries the three scoring categories for aggregation.
type ScoreRequest struct {
	EconomicScore string                     `json:"economicScore"`
	Automatic     []calc.AutomaticCriterion  `json:"automatic"`
	Subjective    []calc.SubjectiveCriterion `json:"subjective"`
}

// ScoreResponse echoes the sanitized subjective rows next to the totals.
type ScoreResponse struct {
	Summary    calc.ScoringSummary        `json:"summary"`
	Subjective []calc.SubjectiveCriterion `json:"subjective"`
}

// Score aggregates the scoring projection: economic points as entered,
// automatic criteria by achievement, subjective estimates clamped to each
// criterion's maximum.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if _, err := auth.GetClaimsFromContext(r.Context()); err != nil {
		h.sendError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	subjective := make([]calc.SubjectiveCriterion, len(req.Subjective))
	for i, c := range req.Subjective {
		c.ScoredPoints = calc.ClampSubjectiveScore(c.ScoredPoints, c.MaxPoints)
		subjective[i] = c
	}

	json.NewEncoder(w).Encode(ScoreResponse{
		Summary:    calc.ComputeScoring(req.EconomicScore, req.Automatic, subjective),
		Subjective: subjective,
	})
}
