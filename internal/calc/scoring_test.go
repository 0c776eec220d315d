package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/licitaIA/tender-analysis-service/internal/models"
)

func TestCriteriaFromReport(t *testing.T) {
	report := models.CriteriosAdjudicacion{
		CriteriosAutomaticos: []models.CriterioDetallado{
			{Descripcion: "Bolsa de horas adicional", PuntuacionMaxima: 5},
			{Descripcion: "Reducción del tiempo de respuesta", PuntuacionMaxima: 10},
		},
		CriteriosSubjetivos: []models.CriterioDetallado{
			{Descripcion: "Calidad de la memoria técnica", PuntuacionMaxima: 30},
		},
	}

	auto, subjective := CriteriaFromReport(report)

	assert.Len(t, auto, 2)
	assert.Equal(t, 1, auto[0].ID)
	assert.Equal(t, "Bolsa de horas adicional", auto[0].Label)
	assert.InDelta(t, 5, auto[0].Points, 1e-9)
	assert.False(t, auto[0].Achieved)

	assert.Len(t, subjective, 1)
	assert.InDelta(t, 30, subjective[0].MaxPoints, 1e-9)
	assert.Empty(t, subjective[0].ScoredPoints)
}

func TestClampSubjectiveScore(t *testing.T) {
	tests := []struct {
		value     string
		maxPoints float64
		want      string
	}{
		{"25", 30, "25"},
		{"35", 30, "30"},
		{"-5", 30, "0"},
		{"0", 30, "0"},
		{"12.5", 30, "12.5"},
		{"", 30, ""},
		{"abc", 30, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampSubjectiveScore(tt.value, tt.maxPoints), "value: %q", tt.value)
	}
}

func TestComputeScoring(t *testing.T) {
	auto := []AutomaticCriterion{
		{ID: 1, Points: 5, Achieved: true},
		{ID: 2, Points: 10, Achieved: false},
		{ID: 3, Points: 3, Achieved: true},
	}
	subjective := []SubjectiveCriterion{
		{ID: 1, MaxPoints: 30, ScoredPoints: "22"},
		{ID: 2, MaxPoints: 10, ScoredPoints: "50"}, // over max, clamped
		{ID: 3, MaxPoints: 5, ScoredPoints: ""},
	}

	s := ComputeScoring("28.5", auto, subjective)

	assert.InDelta(t, 28.5, s.EconomicScore, 1e-9)
	assert.InDelta(t, 8, s.AutomaticScore, 1e-9)
	assert.InDelta(t, 32, s.SubjectiveScore, 1e-9)
	assert.InDelta(t, 68.5, s.TotalScore, 1e-9)
}

func TestComputeScoringEmpty(t *testing.T) {
	s := ComputeScoring("", nil, nil)
	assert.Zero(t, s.TotalScore)
}
