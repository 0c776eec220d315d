package formula

import "strings"

// Normalize rewrites a formula as found in tender documents (Spanish prose
// operators, ad-hoc variable names, JavaScript fragments emitted by the
// model) into the canonical expression language the evaluator understands.
// It never fails: text it cannot rewrite is left in place and rejected
// later by the parser, which triggers the scoring fallback.
//
// The pass order matters and is fixed: root phrases, then operator words
// and exponents, then whitespace, then variable substitution from longest
// token to single letters, then underscore removal.
func Normalize(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}

	s = substituteRoots(s)

	for _, r := range mathRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}

	for _, r := range variableRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	for _, r := range letterRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}

	s = underscores.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// substituteRoots rewrites every "nth root of" phrase into a sqrt or pow
// call. The radicand is the chain of parenthesized groups joined by * or /
// that follows the phrase, so "raíz cuadrada de (A-B)/(A-C)" keeps the whole
// quotient under the root. A phrase with no parenthesized radicand is left
// in place and the scan continues, so later phrases still get rewritten.
func substituteRoots(s string) string {
	offset := 0
	for offset < len(s) {
		start, end, exp, ok := findRootPhrase(s[offset:])
		if !ok {
			break
		}
		start += offset
		end += offset
		radicand, radEnd, ok := captureRadicand(s, end)
		if !ok {
			offset = end
			continue
		}
		// A single parenthesized group already delimits the radicand, keep
		// the call argument free of redundant parens.
		if g, gok := consumeGroup(radicand, 0); gok && g == len(radicand) {
			radicand = radicand[1 : len(radicand)-1]
		}
		var call string
		if exp == "" {
			call = "sqrt(" + radicand + ")"
		} else {
			call = "pow(" + radicand + ", " + exp + ")"
		}
		s = s[:start] + call + s[radEnd:]
		// Rescan from the call so phrases nested in the radicand are found.
		offset = start
	}
	return s
}

// findRootPhrase locates the leftmost root phrase and reports its span and
// exponent ("" for square root).
func findRootPhrase(s string) (start, end int, exp string, ok bool) {
	start = -1
	for _, p := range rootPhrases {
		if loc := p.re.FindStringIndex(s); loc != nil {
			if start == -1 || loc[0] < start {
				start, end, exp, ok = loc[0], loc[1], p.exp, true
			}
		}
	}
	if loc := rootNth.FindStringSubmatchIndex(s); loc != nil {
		if start == -1 || loc[0] < start {
			n := s[loc[2]:loc[3]]
			start, end, exp, ok = loc[0], loc[1], "1/"+n, true
		}
	}
	return start, end, exp, ok
}

// captureRadicand reads, starting at i, a parenthesized group optionally
// followed by more groups joined with * or /, and returns the spanned text.
func captureRadicand(s string, i int) (string, int, bool) {
	i = skipSpaces(s, i)
	begin := i
	end, ok := consumeGroup(s, i)
	if !ok {
		return "", 0, false
	}
	for {
		j := skipSpaces(s, end)
		if j >= len(s) || (s[j] != '*' && s[j] != '/') {
			break
		}
		k := skipSpaces(s, j+1)
		next, ok := consumeGroup(s, k)
		if !ok {
			break
		}
		end = next
	}
	return s[begin:end], end, true
}

// consumeGroup consumes a balanced parenthesized group starting at i and
// returns the index just past its closing parenthesis.
func consumeGroup(s string, i int) (int, bool) {
	if i >= len(s) || s[i] != '(' {
		return 0, false
	}
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j + 1, true
			}
		}
	}
	return 0, false
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}
