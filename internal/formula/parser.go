package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Vars binds the four canonical identifiers a formula may reference.
type Vars struct {
	Price        float64
	TenderBudget float64
	MaxScore     float64
	LowestPrice  float64
}

// Evaluate parses a normalized expression and interprets it against vars.
// The expression language is deliberately small: decimal numbers, the four
// canonical identifiers, + - * / ^, parentheses, and the whitelisted calls
// sqrt, cbrt, pow, abs, min and max. Anything else is an error, as are
// division by zero, a negative square-root radicand and non-finite results.
func Evaluate(expr string, vars Vars) (float64, error) {
	toks, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	p := &parser{toks: toks}
	node, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if !p.atEOF() {
		return 0, fmt.Errorf("unexpected token %q", p.peek().text)
	}
	v, err := node.eval(vars)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("result is not finite")
	}
	return v, nil
}

type tokKind int

const (
	tokNumber tokKind = iota
	tokIdent
	tokOp    // + - * / ^
	tokParen // ( )
	tokComma
	tokEOF
)

type token struct {
	kind tokKind
	num  float64
	text string
}

func tokenize(expr string) ([]token, error) {
	var toks []token
	rs := []rune(expr)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r >= '0' && r <= '9' || r == '.':
			j := i
			for j < len(rs) && (rs[j] >= '0' && rs[j] <= '9' || rs[j] == '.') {
				j++
			}
			text := string(rs[i:j])
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q", text)
			}
			toks = append(toks, token{kind: tokNumber, num: v, text: text})
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j])) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: string(rs[i:j])})
			i = j
		case strings.ContainsRune("+-*/^", r):
			toks = append(toks, token{kind: tokOp, text: string(r)})
			i++
		case r == '(' || r == ')':
			toks = append(toks, token{kind: tokParen, text: string(r)})
			i++
		case r == ',':
			toks = append(toks, token{kind: tokComma, text: ","})
			i++
		default:
			return nil, fmt.Errorf("unknown character %q", string(r))
		}
	}
	toks = append(toks, token{kind: tokEOF})
	return toks, nil
}

type node interface {
	eval(vars Vars) (float64, error)
}

type numNode float64

func (n numNode) eval(Vars) (float64, error) { return float64(n), nil }

type varNode string

func (n varNode) eval(vars Vars) (float64, error) {
	switch string(n) {
	case VarPrice:
		return vars.Price, nil
	case VarTenderBudget:
		return vars.TenderBudget, nil
	case VarMaxScore:
		return vars.MaxScore, nil
	case VarLowestPrice:
		return vars.LowestPrice, nil
	}
	return 0, fmt.Errorf("unknown identifier %q", string(n))
}

type binNode struct {
	op          byte
	left, right node
}

func (n binNode) eval(vars Vars) (float64, error) {
	l, err := n.left.eval(vars)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(vars)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return l / r, nil
	case '^':
		return math.Pow(l, r), nil
	}
	return 0, fmt.Errorf("unknown operator %q", string(n.op))
}

type negNode struct{ inner node }

func (n negNode) eval(vars Vars) (float64, error) {
	v, err := n.inner.eval(vars)
	return -v, err
}

type callNode struct {
	name string
	args []node
}

func (n callNode) eval(vars Vars) (float64, error) {
	args := make([]float64, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(vars)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	switch n.name {
	case "sqrt":
		if len(args) != 1 {
			return 0, fmt.Errorf("sqrt expects 1 argument")
		}
		if args[0] < 0 {
			return 0, fmt.Errorf("square root of negative value")
		}
		return math.Sqrt(args[0]), nil
	case "cbrt":
		if len(args) != 1 {
			return 0, fmt.Errorf("cbrt expects 1 argument")
		}
		return math.Cbrt(args[0]), nil
	case "abs":
		if len(args) != 1 {
			return 0, fmt.Errorf("abs expects 1 argument")
		}
		return math.Abs(args[0]), nil
	case "pow":
		if len(args) != 2 {
			return 0, fmt.Errorf("pow expects 2 arguments")
		}
		return math.Pow(args[0], args[1]), nil
	case "min":
		if len(args) < 2 {
			return 0, fmt.Errorf("min expects at least 2 arguments")
		}
		v := args[0]
		for _, a := range args[1:] {
			v = math.Min(v, a)
		}
		return v, nil
	case "max":
		if len(args) < 2 {
			return 0, fmt.Errorf("max expects at least 2 arguments")
		}
		v := args[0]
		for _, a := range args[1:] {
			v = math.Max(v, a)
		}
		return v, nil
	}
	return 0, fmt.Errorf("unknown function %q", n.name)
}

// Recursive-descent parser. Grammar, lowest precedence first:
//
//	expr   = term  { ("+" | "-") term }
//	term   = unary { ("*" | "/") unary }
//	unary  = "-" unary | power
//	power  = atom [ "^" unary ]          (right associative)
//	atom   = number | ident | ident "(" expr { "," expr } ")" | "(" expr ")"
type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }
func (p *parser) next() token { t := p.toks[p.pos]; p.pos++; return t }
func (p *parser) atEOF() bool { return p.peek().kind == tokEOF }

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOp && (p.peek().text == "+" || p.peek().text == "-") {
		op := p.next().text[0]
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOp && (p.peek().text == "*" || p.peek().text == "/") {
		op := p.next().text[0]
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.peek().kind == tokOp && p.peek().text == "-" {
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return negNode{inner: inner}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tokOp && p.peek().text == "^" {
		p.next()
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binNode{op: '^', left: base, right: exp}, nil
	}
	return base, nil
}

func (p *parser) parseAtom() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return numNode(t.num), nil
	case tokIdent:
		if p.peek().kind == tokParen && p.peek().text == "(" {
			p.next()
			var args []node
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.peek().kind == tokComma {
					p.next()
					continue
				}
				break
			}
			if p.peek().kind != tokParen || p.peek().text != ")" {
				return nil, fmt.Errorf("expected closing parenthesis after %s arguments", t.text)
			}
			p.next()
			return callNode{name: t.text, args: args}, nil
		}
		return varNode(t.text), nil
	case tokParen:
		if t.text == "(" {
			inner, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if p.peek().kind != tokParen || p.peek().text != ")" {
				return nil, fmt.Errorf("expected closing parenthesis")
			}
			p.next()
			return inner, nil
		}
	}
	return nil, fmt.Errorf("unexpected token %q", t.text)
}
