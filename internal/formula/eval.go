// Package formula implements the sandboxed arithmetic engine behind
// calculated table fields. The grammar recognizes numbers, the four binary
// operators, a postfix percent, and parentheses. Identifiers, calls, and
// property access are not part of the grammar, so user-authored text
// substituted into an expression cannot execute logic.
package formula

import (
	"math"
	"strconv"
	"strings"
)

// Evaluate parses and computes a pure arithmetic expression. It returns a
// *SyntaxError for any character outside the whitelist or any structural
// problem, and a *ResultError when the computed value is not finite.
func Evaluate(expr string) (float64, error) {
	if err := checkCharacters(expr); err != nil {
		return 0, err
	}
	p := &parser{expr: expr, src: []rune(expr)}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return 0, &SyntaxError{Expr: expr, Pos: p.pos, Reason: "unexpected trailing input"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ResultError{Expr: expr, Value: v}
	}
	return v, nil
}

// checkCharacters enforces the character whitelist and balanced parentheses
// via a running depth counter: depth must never go negative and must return
// to zero.
func checkCharacters(expr string) error {
	depth := 0
	for i, c := range expr {
		switch {
		case c >= '0' && c <= '9':
		case c == '.' || c == '+' || c == '-' || c == '*' || c == '/' || c == '%':
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return &SyntaxError{Expr: expr, Pos: i, Reason: "unbalanced closing parenthesis"}
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		default:
			return &SyntaxError{Expr: expr, Pos: i, Reason: "character " + strconv.QuoteRune(c) + " not allowed"}
		}
	}
	if depth != 0 {
		return &SyntaxError{Expr: expr, Pos: len(expr), Reason: "unbalanced opening parenthesis"}
	}
	return nil
}

// parser is a small recursive-descent parser over the whitelisted alphabet.
//
//	expr   := term (('+'|'-') term)*
//	term   := unary (('*'|'/') unary)*
//	unary  := ('-'|'+')? postfix
//	postfix := primary '%'*
//	primary := number | '(' expr ')'
type parser struct {
	expr string
	src  []rune
	pos  int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) peek() rune {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *parser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		op := p.peek()
		if op != '+' && op != '-' {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		op := p.peek()
		if op != '*' && op != '/' {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			v *= rhs
		} else {
			v /= rhs
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	p.skipSpace()
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (float64, error) {
	v, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		if p.peek() != '%' {
			return v, nil
		}
		p.pos++
		v /= 100
	}
}

func (p *parser) parsePrimary() (float64, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, &SyntaxError{Expr: p.expr, Pos: p.pos, Reason: "unexpected end of expression"}
	}
	if p.peek() == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return 0, &SyntaxError{Expr: p.expr, Pos: p.pos, Reason: "expected closing parenthesis"}
		}
		p.pos++
		return v, nil
	}
	return p.parseNumber()
}

func (p *parser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return 0, &SyntaxError{Expr: p.expr, Pos: start, Reason: "expected a number"}
	}
	lit := string(p.src[start:p.pos])
	if strings.Count(lit, ".") > 1 {
		return 0, &SyntaxError{Expr: p.expr, Pos: start, Reason: "malformed number " + strconv.Quote(lit)}
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, &SyntaxError{Expr: p.expr, Pos: start, Reason: "malformed number " + strconv.Quote(lit)}
	}
	return v, nil
}
