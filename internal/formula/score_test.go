package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	vars := Vars{Price: 90000, TenderBudget: 100000, MaxScore: 40, LowestPrice: 80000}

	tests := []struct {
		name string
		expr string
		want float64
	}{
		{"arithmetic", "2 + 3 * 4", 14},
		{"parens", "(2 + 3) * 4", 20},
		{"unary minus", "-2 + 5", 3},
		{"power", "2 ^ 10", 1024},
		{"power right assoc", "2 ^ 3 ^ 2", 512},
		{"identifiers", "maxScore * lowestPrice / price", 35.555555555555554},
		{"sqrt", "sqrt(16)", 4},
		{"cbrt", "cbrt(27)", 3},
		{"abs", "abs(3 - 5)", 2},
		{"pow call", "pow(2, 8)", 256},
		{"min", "min(3, 1, 2)", 1},
		{"max", "max(maxScore, 50)", 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expr, vars)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	exprs := []string{
		"",
		"1 +",
		"foo + 1",
		"1 / 0",
		"sqrt(-4)",
		"sqrt(1, 2)",
		"rm(1)",
		"1 @ 2",
		"(1 + 2",
		"raíz cuadrada de tenderBudget",
	}
	for _, expr := range exprs {
		_, err := Evaluate(expr, Vars{})
		assert.Error(t, err, "expr: %s", expr)
	}
}

func TestEconomicScoreFormula(t *testing.T) {
	// maxScore * sqrt of the discount quotient.
	got := EconomicScore(90000, 100000, 40, 80000, "U * raíz cuadrada de (A-B)/(A-C)")
	assert.InDelta(t, 28.2843, got, 0.001)
}

func TestEconomicScoreDefaultFormula(t *testing.T) {
	got := EconomicScore(100000, 100000, 40, 80000, "")
	assert.InDelta(t, 32.0, got, 1e-9)

	// Lowest offer scores the full maximum.
	got = EconomicScore(80000, 100000, 40, 80000, "")
	assert.InDelta(t, 40.0, got, 1e-9)

	// No reference price known.
	assert.Zero(t, EconomicScore(90000, 100000, 40, 0, ""))
}

func TestEconomicScoreGuards(t *testing.T) {
	assert.Zero(t, EconomicScore(0, 100000, 40, 80000, ""))
	assert.Zero(t, EconomicScore(-1, 100000, 40, 80000, ""))
	assert.Zero(t, EconomicScore(90000, 0, 40, 80000, ""))
	assert.Zero(t, EconomicScore(90000, 100000, 0, 80000, "40 * lowestPrice / price"))
}

func TestEconomicScoreFallback(t *testing.T) {
	// Unparsable formula falls back to the proportional default when the
	// offer is within budget and a lowest price is known.
	got := EconomicScore(90000, 100000, 40, 80000, "garbage ### formula")
	assert.InDelta(t, 40.0*80000/90000, got, 1e-9)

	// Fallback denied when the offer exceeds the budget.
	assert.Zero(t, EconomicScore(110000, 100000, 40, 80000, "garbage ### formula"))

	// Division by zero in the formula routes through the fallback too.
	got = EconomicScore(90000, 100000, 40, 80000, "maxScore / (price - price)")
	assert.InDelta(t, 40.0*80000/90000, got, 1e-9)

	// A negative evaluation means the offer fails the admission condition.
	got = EconomicScore(90000, 100000, 40, 80000, "0 - 10")
	assert.InDelta(t, 40.0*80000/90000, got, 1e-9)
}

func TestEconomicScoreClamp(t *testing.T) {
	// A formula that awards more than the maximum is clamped.
	got := EconomicScore(90000, 100000, 40, 80000, "maxScore * 2")
	assert.InDelta(t, 40.0, got, 1e-9)
}

// Whatever text arrives, the score stays within [0, maxScore].
func TestEconomicScoreTotal(t *testing.T) {
	formulas := []string{
		"", "√", "((((", "precio precio precio", "Math.floor(price)",
		"1/0", "-maxScore", "raíz cuadrada de", "42 elevado a", "ñ",
	}
	for _, f := range formulas {
		got := EconomicScore(90000, 100000, 40, 80000, f)
		assert.GreaterOrEqual(t, got, 0.0, "formula: %q", f)
		assert.LessOrEqual(t, got, 40.0, "formula: %q", f)
	}
}
