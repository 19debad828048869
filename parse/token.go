package parse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokVariable
	tokConstant
	tokFunction
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPower
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// aliases maps accepted function spellings to the canonical vocabulary.
var aliases = map[string]string{
	"ln":     "log",
	"arcsin": "asin",
	"arccos": "acos",
	"arctan": "atan",
}

// normalizeGlyphs rewrites alternate math glyphs to their ASCII equivalents.
func normalizeGlyphs(s string) string {
	r := strings.NewReplacer(
		"×", "*",
		"÷", "/",
		"−", "-",
	)
	return r.Replace(s)
}

// tokenize splits the normalized input into tokens. Unknown words are broken
// into single-letter variables greedily, longest known name first, so "2xy"
// and "xsin(x)" come apart without regex passes over the whole string.
func (p *Parser) tokenize(input string) ([]token, error) {
	var toks []token
	runes := []rune(input)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(runes) && (runes[i] >= '0' && runes[i] <= '9' || runes[i] == '.') {
				i++
			}
			// Scientific notation: e or E, optional sign, then digits.
			// A trailing "e" without digits stays a separate word so
			// "2e" still means 2 times the constant.
			if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
				j := i + 1
				if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
					j++
				}
				if j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
					for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
						j++
					}
					i = j
				}
			}
			text := string(runes[start:i])
			if text == "." || strings.Count(text, ".") > 1 {
				return nil, &Error{Input: input, Pos: start, Msg: "malformed number " + quote(text)}
			}
			toks = append(toks, token{kind: tokNumber, text: text, pos: start})
		case unicode.IsLetter(c) || c == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			toks = append(toks, p.splitWord(string(runes[start:i]), start)...)
		case c == '+':
			toks = append(toks, token{kind: tokPlus, text: "+", pos: i})
			i++
		case c == '-':
			toks = append(toks, token{kind: tokMinus, text: "-", pos: i})
			i++
		case c == '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				toks = append(toks, token{kind: tokPower, text: "**", pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokStar, text: "*", pos: i})
				i++
			}
		case c == '^':
			toks = append(toks, token{kind: tokPower, text: "**", pos: i})
			i++
		case c == '/':
			toks = append(toks, token{kind: tokSlash, text: "/", pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		default:
			return nil, &Error{Input: input, Pos: i, Msg: "unexpected character " + quote(string(c))}
		}
	}
	return insertImplicitMul(toks), nil
}

// splitWord resolves a scanned word against the known vocabulary. A word that
// is not itself a function, constant, or variable is decomposed greedily:
// repeatedly take the longest known-name prefix, otherwise a single letter as
// a variable. Digits inside a word become number tokens ("x2" is x*2).
func (p *Parser) splitWord(word string, pos int) []token {
	var toks []token
	rest := word
	off := pos
	for rest != "" {
		if d := len(rest) - len(strings.TrimLeft(rest, "0123456789")); d > 0 {
			toks = append(toks, token{kind: tokNumber, text: rest[:d], pos: off})
			rest, off = rest[d:], off+d
			continue
		}
		consumed, canonical, kind := p.longestKnownPrefix(rest)
		if consumed == "" {
			// Single unknown letter: take the whole rune as a free
			// variable and let validation flag it.
			_, size := utf8.DecodeRuneInString(rest)
			consumed, canonical, kind = rest[:size], rest[:size], tokVariable
		}
		toks = append(toks, token{kind: kind, text: canonical, pos: off})
		rest, off = rest[len(consumed):], off+len(consumed)
	}
	return toks
}

// longestKnownPrefix finds the longest function, constant, or variable name
// starting the word. Function aliases canonicalize here: the consumed text
// and the emitted token text differ for spellings like "ln" and "arcsin".
func (p *Parser) longestKnownPrefix(word string) (consumed, canonical string, kind tokenKind) {
	for n := len(word); n > 0; n-- {
		prefix := word[:n]
		if c, ok := aliases[prefix]; ok && p.functions[c] {
			return prefix, c, tokFunction
		}
		if p.functions[prefix] {
			return prefix, prefix, tokFunction
		}
		if p.constants[prefix] {
			return prefix, prefix, tokConstant
		}
		if p.variables[prefix] {
			return prefix, prefix, tokVariable
		}
	}
	return "", "", tokVariable
}

// insertImplicitMul places multiplication between adjacent value-like tokens:
// number/variable/constant/closing paren followed by anything that starts a
// value. Function names followed by their argument list stay applications.
func insertImplicitMul(toks []token) []token {
	out := make([]token, 0, len(toks))
	for i, t := range toks {
		if i > 0 && startsValue(t) && endsValue(toks[i-1]) {
			out = append(out, token{kind: tokStar, text: "*", pos: t.pos})
		}
		out = append(out, t)
	}
	return out
}

func endsValue(t token) bool {
	switch t.kind {
	case tokNumber, tokVariable, tokConstant, tokRParen:
		return true
	}
	return false
}

func startsValue(t token) bool {
	switch t.kind {
	case tokNumber, tokVariable, tokConstant, tokFunction, tokLParen:
		return true
	}
	return false
}

func quote(s string) string { return "'" + s + "'" }
