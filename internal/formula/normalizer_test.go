package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "cube root",
			input: "raíz cúbica de (presupuesto - oferta)",
			want:  "pow(tenderBudget - price, 1/3)",
		},
		{
			name:  "nth root",
			input: "raíz a la 5 de (P_min/precio)",
			want:  "pow(lowestPrice/price, 1/5)",
		},
		{
			name:  "root glyph",
			input: "√(oferta_minima / oferta)",
			want:  "sqrt(lowestPrice / price)",
		},
		{
			name:  "unaccented root phrase",
			input: "raiz cuadrada de (X/Y)",
			want:  "sqrt(tenderBudget/price)",
		},
		{
			name:  "operator words",
			input: "puntuacion_maxima por precio_minimo entre precio_oferta",
			want:  "maxScore * lowestPrice / price",
		},
		{
			name:  "dividido entre",
			input: "oferta_minima dividido entre oferta_a_valorar multiplicado por puntos_maximos",
			want:  "lowestPrice / price * maxScore",
		},
		{
			name:  "elevado a",
			input: "(precio_minimo/precio) elevado a 2 * P_max",
			want:  "(lowestPrice/price)^2 * maxScore",
		},
		{
			name:  "javascript leftovers",
			input: "Math.sqrt(P_min / P_i) ** 2 * U_max",
			want:  "sqrt(lowestPrice / price) ^ 2 * maxScore",
		},
		{
			name:  "spaced spanish variable names",
			input: "puntuación máxima * oferta mínima / precio_oferta",
			want:  "maxScore * lowestPrice / price",
		},
		{
			name:  "presupuesto base de licitacion",
			input: "40 * (presupuesto base de licitación - oferta) / presupuesto base de licitación",
			want:  "40 * (tenderBudget - price) / tenderBudget",
		},
		{
			name:  "single letter conventions XYZ",
			input: "U * Z / Y",
			want:  "maxScore * lowestPrice / price",
		},
		{
			name:  "single letter conventions LOP",
			input: "(L - O) / L * P",
			want:  "(tenderBudget - price) / tenderBudget * price",
		},
		{
			name:  "underscores stripped from unknown tokens",
			input: "mi_variable + 1",
			want:  "mivariable + 1",
		},
		{
			name:  "whitespace collapse",
			input: "  maxScore   *   lowestPrice  /  price ",
			want:  "maxScore * lowestPrice / price",
		},
		{
			name:  "empty",
			input: "   ",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

// The radicand of a root phrase is the whole chain of parenthesized groups
// that follows it, so a quotient stays under the root.
func TestNormalizeRootOverQuotient(t *testing.T) {
	got := Normalize("U * raíz cuadrada de (A-B)/(A-C)")
	assert.Equal(t, "maxScore * sqrt((tenderBudget-price)/(tenderBudget-lowestPrice))", got)
}

// Canonical output must survive a second pass unchanged.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"maxScore * sqrt((tenderBudget-price)/(tenderBudget-lowestPrice))",
		"maxScore * lowestPrice / price",
		"pow(tenderBudget - price, 1/3)",
		"40 * (tenderBudget - price) / tenderBudget",
	}
	for _, in := range inputs {
		assert.Equal(t, in, Normalize(in), "input: %s", in)
	}
}

func TestNormalizeRootWithoutParensLeftAlone(t *testing.T) {
	// No parenthesized radicand, the phrase stays and the evaluator will
	// reject it, which routes scoring through the fallback.
	got := Normalize("raíz cuadrada de presupuesto")
	assert.Contains(t, got, "tenderBudget")
}

func TestNormalizeRootAfterUnmatchedRoot(t *testing.T) {
	// An earlier root with no parenthesized radicand does not stop the scan,
	// later roots are still rewritten.
	got := Normalize("√ precio + raíz cuadrada de (presupuesto)")
	assert.Contains(t, got, "sqrt(tenderBudget)")
}
