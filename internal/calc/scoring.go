package calc

import (
	"strconv"
	"strings"

	"github.com/licitaIA/tender-analysis-service/internal/models"
)

// AutomaticCriterion is an award criterion scored by formula or threshold:
// either the offer meets it and earns the fixed points, or it earns zero.
type AutomaticCriterion struct {
	ID       int     `json:"id"`
	Label    string  `json:"label"`
	Points   float64 `json:"points"`
	Achieved bool    `json:"achieved"`
}

// SubjectiveCriterion is a judgement-based criterion; the expected score is
// a user estimate, kept as an editable string and clamped on entry.
type SubjectiveCriterion struct {
	ID           int     `json:"id"`
	Label        string  `json:"label"`
	MaxPoints    float64 `json:"maxPoints"`
	ScoredPoints string  `json:"scoredPoints"`
}

// CriteriaFromReport converts the criteria extracted from the PCAP into
// editable scoring rows, numbered in document order.
func CriteriaFromReport(c models.CriteriosAdjudicacion) ([]AutomaticCriterion, []SubjectiveCriterion) {
	auto := make([]AutomaticCriterion, 0, len(c.CriteriosAutomaticos))
	for i, crit := range c.CriteriosAutomaticos {
		auto = append(auto, AutomaticCriterion{
			ID:     i + 1,
			Label:  crit.Descripcion,
			Points: crit.PuntuacionMaxima.Float64(),
		})
	}
	subjective := make([]SubjectiveCriterion, 0, len(c.CriteriosSubjetivos))
	for i, crit := range c.CriteriosSubjetivos {
		subjective = append(subjective, SubjectiveCriterion{
			ID:        i + 1,
			Label:     crit.Descripcion,
			MaxPoints: crit.PuntuacionMaxima.Float64(),
		})
	}
	return auto, subjective
}

// ClampSubjectiveScore sanitizes a user-entered expected score: unparsable
// input clears the field, anything else is clamped to [0, maxPoints].
func ClampSubjectiveScore(value string, maxPoints float64) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return ""
	}
	if v < 0 {
		v = 0
	}
	if v > maxPoints {
		v = maxPoints
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ScoringSummary is the aggregated scoring projection for our offer.
type ScoringSummary struct {
	EconomicScore   float64 `json:"economicScore"`
	AutomaticScore  float64 `json:"automaticScore"`
	SubjectiveScore float64 `json:"subjectiveScore"`
	TotalScore      float64 `json:"totalScore"`
}

// ComputeScoring totals the three scoring categories. The economic score
// arrives precomputed (from the simulation or entered by hand); automatic
// criteria contribute their full points when achieved; subjective scores
// are clamped to each criterion's maximum before summing.
func ComputeScoring(economicScore string, auto []AutomaticCriterion, subjective []SubjectiveCriterion) ScoringSummary {
	s := ScoringSummary{EconomicScore: ParseNumber(economicScore)}
	for _, c := range auto {
		if c.Achieved {
			s.AutomaticScore += c.Points
		}
	}
	for _, c := range subjective {
		v := ParseNumber(c.ScoredPoints)
		if v < 0 {
			v = 0
		}
		if v > c.MaxPoints {
			v = c.MaxPoints
		}
		s.SubjectiveScore += v
	}
	s.TotalScore = s.EconomicScore + s.AutomaticScore + s.SubjectiveScore
	return s
}
