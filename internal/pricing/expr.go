package pricing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// countToken is the only identifier a pricing formula may reference; it is
// replaced by the page count before evaluation.
const countToken = "count"

var (
	errBadFormula   = errors.New("formula contains disallowed characters")
	errBadSyntax    = errors.New("formula syntax error")
	errDivideByZero = errors.New("formula divides by zero")
	errNotFinite    = errors.New("formula result is not finite")
)

// evalFormula substitutes the page count for the `count` token and evaluates
// the remaining arithmetic expression. Only digits, `.`, `+ - * / ( )` and
// whitespace survive validation; anything else is rejected so user-supplied
// formulas can never execute code.
func evalFormula(formula string, count int64) (float64, error) {
	substituted, err := substitute(formula, count)
	if err != nil {
		return 0, err
	}

	p := &parser{input: substituted}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, errBadSyntax
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errNotFinite
	}
	return value, nil
}

func substitute(formula string, count int64) (string, error) {
	replaced := strings.ReplaceAll(formula, countToken, strconv.FormatInt(count, 10))
	for _, ch := range replaced {
		switch {
		case ch >= '0' && ch <= '9':
		case ch == '.' || ch == '+' || ch == '-' || ch == '*' || ch == '/' || ch == '(' || ch == ')':
		case ch == ' ' || ch == '\t':
		default:
			return "", fmt.Errorf("%w: %q", errBadFormula, ch)
		}
	}
	return replaced, nil
}

// parser is a recursive-descent evaluator for the four arithmetic operators
// and parentheses, with conventional precedence.
type parser struct {
	input string
	pos   int
}

func (p *parser) parseExpr() (float64, error) {
	value, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value += rhs
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value -= rhs
		default:
			return value, nil
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	value, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			value *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, errDivideByZero
			}
			value /= rhs
		default:
			return value, nil
		}
	}
}

func (p *parser) parseFactor() (float64, error) {
	p.skipSpace()
	switch p.peek() {
	case '-':
		p.pos++
		value, err := p.parseFactor()
		return -value, err
	case '+':
		p.pos++
		return p.parseFactor()
	case '(':
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return 0, errBadSyntax
		}
		p.pos++
		return value, nil
	default:
		return p.parseNumber()
	}
}

func (p *parser) parseNumber() (float64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if (ch >= '0' && ch <= '9') || ch == '.' {
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		return 0, errBadSyntax
	}
	value, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, errBadSyntax
	}
	return value, nil
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}
