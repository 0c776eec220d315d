package formula

import "regexp"

// RulesVersion identifies the substitution table below. Bump it whenever a
// pattern is added, removed or reordered so downstream consumers can tell
// which normalization behaviour produced a stored result.
const RulesVersion = 2

// Canonical identifiers a normalized formula may reference.
const (
	VarPrice        = "price"        // the offer being scored
	VarTenderBudget = "tenderBudget" // base budget of the tender, pre-VAT
	VarMaxScore     = "maxScore"     // maximum awardable economic points
	VarLowestPrice  = "lowestPrice"  // lowest valid competing price
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

// rootPhrase matches an "nth root of" prefix; the radicand that follows is
// captured separately (see captureRadicand) so that a quotient of
// parenthesized groups stays inside the root.
type rootPhrase struct {
	re  *regexp.Regexp
	exp string // exponent as "1/n"; empty means square root
}

var rootPhrases = []rootPhrase{
	{regexp.MustCompile(`(?i)ra[ií]z\s+sexta\s+de\s*`), "1/6"},
	{regexp.MustCompile(`(?i)ra[ií]z\s+quinta\s+de\s*`), "1/5"},
	{regexp.MustCompile(`(?i)ra[ií]z\s+cuarta\s+de\s*`), "1/4"},
	{regexp.MustCompile(`(?i)ra[ií]z\s+c[uú]bica\s+de\s*`), "1/3"},
	{regexp.MustCompile(`(?i)ra[ií]z\s+cuadrada\s+de\s*`), ""},
	{regexp.MustCompile(`√\s*`), ""},
}

// "raíz a la n de (...)" with an arbitrary n.
var rootNth = regexp.MustCompile(`(?i)ra[ií]z\s+a\s+la\s+(\d+)\s+de\s*`)

// mathRules rewrite operator words and JavaScript leftovers (the analysis
// prompt asks the model for a JS expression, so Math.* calls and ** show up)
// into the evaluator's notation. Applied after root substitution, in order.
var mathRules = []rule{
	{regexp.MustCompile(`Math\.`), ""},
	{regexp.MustCompile(`\*\*`), "^"},
	{regexp.MustCompile(`(?i)\s*elevado\s+a\s+(\d+)`), "^$1"},
	{regexp.MustCompile(`(?i)\s+dividido\s+entre\s+`), " / "},
	{regexp.MustCompile(`(?i)\s+dividido\s+por\s+`), " / "},
	{regexp.MustCompile(`(?i)\s+entre\s+`), " / "},
	{regexp.MustCompile(`(?i)\s+multiplicado\s+por\s+`), " * "},
	{regexp.MustCompile(`(?i)\s+por\s+`), " * "},
	{regexp.MustCompile(`\s+`), " "},
}

// variableRules map the token zoo found in tender documents to the four
// canonical identifiers. Longer and more specific patterns come first so a
// partial token can never shadow a full one; multi-word spellings precede
// their underscore forms because both appear in extracted text.
var variableRules = []rule{
	// lowest valid competing price
	{regexp.MustCompile(`(?i)\b(precio\s+m[aá]s\s+bajo|oferta\s+m[aá]s\s+baja|oferta\s+m[ií]nima|precio\s+m[ií]nimo|precio_mas_bajo|precio_minimo|oferta_minima|oferta_baja|P_minimo|P_min|O_baja|P_baja|O_min|min_price|minimo)\b`), VarLowestPrice},
	// maximum economic score
	{regexp.MustCompile(`(?i)\b(puntuaci[oó]n\s+m[aá]xima|puntos\s+m[aá]ximos|puntuacion_maxima|puntos_maximos|puntuacion_max|P_maxima|P_max|U_max|puntos_max|max_puntos|maxima)\b`), VarMaxScore},
	// tender budget
	{regexp.MustCompile(`(?i)\b(presupuesto\s+base\s+de\s+licitaci[oó]n|valor\s+estimado\s+del?\s+contrato|presupuesto_base_licitacion|presupuesto_licitacion|presupuesto_base|valor_estimado_contrato|P_lic|PBL|VEC|licitaci[oó]n|presupuesto|budget)\b`), VarTenderBudget},
	// offer under evaluation
	{regexp.MustCompile(`(?i)\b(precio_oferta|oferta_a_valorar|oferta_evaluar|oferta_valorar|precio_i|P_i|Pi|Pe|oferta|precio)\b`), VarPrice},
}

// letterRules resolve single-letter conventions, case-sensitive and
// word-boundary only so already-substituted identifiers are never touched.
// Precedence: when a formula uses A/B/C, A is the budget, B the offer under
// evaluation, C the lowest offer; the remaining letters follow the fallback
// table (X budget, Y offer, Z lowest, U max score, L "Licitación",
// O "Oferta", P "Precio").
var letterRules = []rule{
	{regexp.MustCompile(`\bZ\b`), VarLowestPrice},
	{regexp.MustCompile(`\bY\b`), VarPrice},
	{regexp.MustCompile(`\bX\b`), VarTenderBudget},
	{regexp.MustCompile(`\bU\b`), VarMaxScore},
	{regexp.MustCompile(`\bL\b`), VarTenderBudget},
	{regexp.MustCompile(`\bO\b`), VarPrice},
	{regexp.MustCompile(`\bP\b`), VarPrice},
	{regexp.MustCompile(`\bC\b`), VarLowestPrice},
	{regexp.MustCompile(`\bB\b`), VarPrice},
	{regexp.MustCompile(`\bA\b`), VarTenderBudget},
}

var (
	underscores = regexp.MustCompile(`_`)
	whitespace  = regexp.MustCompile(`\s+`)
)
