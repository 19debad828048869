// Package parse turns raw equation text into symbolic expressions: glyph
// normalization, equals-sign handling, token-level implicit multiplication,
// and recursive-descent parsing against a fixed symbol vocabulary.
package parse

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"graphcalc/symbolic"
)

// Error reports why an input could not be parsed.
type Error struct {
	Input string
	Pos   int
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid equation at position %d: %s", e.Pos, e.Msg)
}

// Config fixes the symbol vocabulary a Parser recognizes. It is read once at
// construction; a Parser never consults mutable shared state afterwards.
type Config struct {
	Variables []string
	Constants []string
	Functions []string
}

// DefaultConfig recognizes the variables {x, y, z, t}, the constants pi and
// e, and the full function vocabulary of the symbolic backend plus sqrt.
func DefaultConfig() Config {
	fns := make([]string, 0, len(symbolic.FnNames)+1)
	for name := range symbolic.FnNames {
		fns = append(fns, name)
	}
	fns = append(fns, "sqrt")
	return Config{
		Variables: []string{"x", "y", "z", "t"},
		Constants: []string{"pi", "e"},
		Functions: fns,
	}
}

// Parser parses equation strings against one immutable Config.
type Parser struct {
	config    Config
	variables map[string]bool
	constants map[string]bool
	functions map[string]bool
}

// New builds a Parser from the given Config.
func New(config Config) *Parser {
	p := &Parser{
		config:    config,
		variables: map[string]bool{},
		constants: map[string]bool{},
		functions: map[string]bool{},
	}
	for _, v := range config.Variables {
		p.variables[v] = true
	}
	for _, c := range config.Constants {
		p.constants[c] = true
	}
	for _, f := range config.Functions {
		p.functions[f] = true
	}
	return p
}

// Default is New(DefaultConfig()).
func Default() *Parser { return New(DefaultConfig()) }

// Config returns a copy of the parser's configuration.
func (p *Parser) Config() Config { return p.config }

// reserved left-hand sides: "z = ...", "y = ...", "f = ..." name the output,
// so only the right side is the expression to analyze.
var outputNames = map[string]bool{"z": true, "y": true, "f": true}

// Parse turns a raw equation string into a simplified symbolic expression.
//
// A single "=" either names the output (left side z, y, or f) or states an
// implicit equation, which becomes (left) - (right) so its solution set is
// the zero set of the result. More than one "=" is malformed input.
func (p *Parser) Parse(raw string) (symbolic.Expr, error) {
	cleaned := normalizeGlyphs(strings.TrimSpace(raw))
	if cleaned == "" {
		return nil, &Error{Input: raw, Msg: "empty equation"}
	}

	switch strings.Count(cleaned, "=") {
	case 0:
		return p.parseSide(cleaned)
	case 1:
		left, right, _ := strings.Cut(cleaned, "=")
		if outputNames[strings.TrimSpace(left)] {
			return p.parseSide(right)
		}
		l, err := p.parseSide(left)
		if err != nil {
			return nil, err
		}
		r, err := p.parseSide(right)
		if err != nil {
			return nil, err
		}
		return symbolic.Sum(l, symbolic.Neg(r)).Simplify(), nil
	default:
		return nil, &Error{Input: raw, Pos: strings.Index(cleaned, "="), Msg: "multiple '=' signs"}
	}
}

func (p *Parser) parseSide(s string) (symbolic.Expr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &Error{Input: s, Msg: "empty expression"}
	}
	toks, err := p.tokenize(s)
	if err != nil {
		return nil, err
	}
	st := &parseState{input: s, toks: toks}
	expr, err := st.parseExpr()
	if err != nil {
		return nil, err
	}
	if !st.atEnd() {
		t := st.peek()
		return nil, &Error{Input: s, Pos: t.pos, Msg: "unexpected " + quote(t.text)}
	}
	return expr.Simplify(), nil
}

// parseState is a cursor over the token stream for one recursive descent.
type parseState struct {
	input string
	toks  []token
	i     int
}

func (st *parseState) atEnd() bool { return st.i >= len(st.toks) }

func (st *parseState) peek() token { return st.toks[st.i] }

func (st *parseState) next() token {
	t := st.toks[st.i]
	st.i++
	return t
}

func (st *parseState) accept(kind tokenKind) bool {
	if !st.atEnd() && st.toks[st.i].kind == kind {
		st.i++
		return true
	}
	return false
}

func (st *parseState) errHere(msg string) error {
	pos := len(st.input)
	if !st.atEnd() {
		pos = st.peek().pos
	}
	return &Error{Input: st.input, Pos: pos, Msg: msg}
}

// parseExpr handles addition and subtraction.
func (st *parseState) parseExpr() (symbolic.Expr, error) {
	left, err := st.parseTerm()
	if err != nil {
		return nil, err
	}
	for !st.atEnd() {
		switch st.peek().kind {
		case tokPlus:
			st.next()
			right, err := st.parseTerm()
			if err != nil {
				return nil, err
			}
			left = symbolic.Sum(left, right)
		case tokMinus:
			st.next()
			right, err := st.parseTerm()
			if err != nil {
				return nil, err
			}
			left = symbolic.Sum(left, symbolic.Neg(right))
		default:
			return left, nil
		}
	}
	return left, nil
}

// parseTerm handles multiplication and division.
func (st *parseState) parseTerm() (symbolic.Expr, error) {
	left, err := st.parseUnary()
	if err != nil {
		return nil, err
	}
	for !st.atEnd() {
		switch st.peek().kind {
		case tokStar:
			st.next()
			right, err := st.parseUnary()
			if err != nil {
				return nil, err
			}
			left = symbolic.Prod(left, right)
		case tokSlash:
			st.next()
			right, err := st.parseUnary()
			if err != nil {
				return nil, err
			}
			left = symbolic.Div(left, right)
		default:
			return left, nil
		}
	}
	return left, nil
}

// parseUnary handles prefix signs.
func (st *parseState) parseUnary() (symbolic.Expr, error) {
	if st.atEnd() {
		return nil, st.errHere("unexpected end of expression")
	}
	switch st.peek().kind {
	case tokMinus:
		st.next()
		inner, err := st.parseUnary()
		if err != nil {
			return nil, err
		}
		return symbolic.Neg(inner), nil
	case tokPlus:
		st.next()
		return st.parseUnary()
	}
	return st.parsePower()
}

// parsePower handles exponentiation, right associative with unary exponents
// so x**-2 parses.
func (st *parseState) parsePower() (symbolic.Expr, error) {
	base, err := st.parseAtom()
	if err != nil {
		return nil, err
	}
	if st.accept(tokPower) {
		exp, err := st.parseUnary()
		if err != nil {
			return nil, err
		}
		return symbolic.Power(base, exp), nil
	}
	return base, nil
}

func (st *parseState) parseAtom() (symbolic.Expr, error) {
	if st.atEnd() {
		return nil, st.errHere("unexpected end of expression")
	}
	t := st.next()
	switch t.kind {
	case tokNumber:
		return parseNumber(st.input, t)
	case tokVariable:
		return symbolic.V(t.text), nil
	case tokConstant:
		if c := symbolic.ConstByName(t.text); c != nil {
			return c, nil
		}
		return nil, &Error{Input: st.input, Pos: t.pos, Msg: "unknown constant " + quote(t.text)}
	case tokFunction:
		if !st.accept(tokLParen) {
			return nil, st.errHere("expected '(' after " + quote(t.text))
		}
		arg, err := st.parseExpr()
		if err != nil {
			return nil, err
		}
		if !st.accept(tokRParen) {
			return nil, st.errHere("missing ')' closing " + quote(t.text))
		}
		if t.text == "sqrt" {
			return symbolic.Sqrt(arg), nil
		}
		return symbolic.Apply(t.text, arg), nil
	case tokLParen:
		inner, err := st.parseExpr()
		if err != nil {
			return nil, err
		}
		if !st.accept(tokRParen) {
			return nil, st.errHere("missing ')'")
		}
		return inner, nil
	}
	return nil, &Error{Input: st.input, Pos: t.pos, Msg: "unexpected " + quote(t.text)}
}

// parseNumber converts a numeric literal to an exact rational: the digits
// after the decimal point become a power-of-ten denominator. Literals too
// long for int64 fall back to float conversion.
func parseNumber(input string, t token) (symbolic.Expr, error) {
	text := t.text

	// Decimal scale: digits after the dot shift right, an exponent suffix
	// shifts left, so "2.5e3" is 25 * 10^2.
	mant, exp := text, 0
	if k := strings.IndexAny(text, "eE"); k >= 0 {
		e, err := strconv.Atoi(text[k+1:])
		if err != nil {
			return nil, &Error{Input: input, Pos: t.pos, Msg: "malformed number " + quote(text)}
		}
		mant, exp = text[:k], e
	}
	digits := mant
	if dot := strings.IndexByte(mant, '.'); dot >= 0 {
		digits = mant[:dot] + mant[dot+1:]
		exp -= len(mant) - dot - 1
	}

	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		mag := exp
		if mag < 0 {
			mag = -mag
		}
		scale := int64(1)
		overflow := false
		for i := 0; i < mag; i++ {
			if scale > math.MaxInt64/10 {
				overflow = true
				break
			}
			scale *= 10
		}
		switch {
		case overflow:
			// fall through to the float path
		case exp >= 0:
			if n == 0 || (n <= math.MaxInt64/scale && n >= math.MinInt64/scale) {
				return symbolic.Int(n * scale), nil
			}
		default:
			return symbolic.Rat(n, scale), nil
		}
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, &Error{Input: input, Pos: t.pos, Msg: "malformed number " + quote(text)}
	}
	return symbolic.Float(f), nil
}

// NumericFunc compiles an expression to a float evaluator. A nil variable
// list defaults to the expression's free variables in lexicographic order.
func NumericFunc(expr symbolic.Expr, variables []string) (symbolic.EvalFunc, error) {
	if variables == nil {
		variables = symbolic.Vars(expr)
	}
	return symbolic.Compile(expr, variables)
}
