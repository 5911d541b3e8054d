// Package eval implements the recursive-descent arithmetic evaluator.
// It operates on decimal digit text only; expressions in other bases are
// transcoded to base 10 before reaching Evaluate.
//
// Grammar, precedence low to high:
//
//	expression := term (('+'|'-') term)*          left-assoc
//	term       := factor (('*'|'/'|'%') factor)*  left-assoc
//	factor     := ('+'|'-')? power                unary sign
//	power      := primary ('^' power)?            right-assoc
//	primary    := number | '(' expression ')'
//
// The accumulator is a float64, so integers are exact only below 2^53.
// That boundary is a preserved behavioral contract, not an oversight.
package eval

import (
	"math"
	"strconv"

	"basejump/internal/errors"
)

// maxExactResult is 2^53, the smallest integer a float64 cannot be
// trusted to represent exactly.
const maxExactResult = float64(1 << 53)

type parser struct {
	input string
	pos   int
}

// Evaluate parses and evaluates a decimal arithmetic expression, returning
// the result truncated toward zero. It fails on malformed syntax, unconsumed
// trailing input, division or modulo by zero, and results that are negative,
// not a number, or not exactly representable (>= 2^53).
func Evaluate(text string) (uint64, error) {
	p := &parser{input: text}
	result, err := p.parseExpression()
	if err != nil {
		return 0, err
	}
	p.skipWhitespace()
	if p.pos < len(p.input) {
		return 0, errors.Newf(errors.TrailingInput, "unexpected %q at offset %d", p.input[p.pos], p.pos)
	}
	if math.IsNaN(result) {
		return 0, errors.New(errors.ResultOutOfRange, "result is not a number")
	}
	if result < 0 {
		return 0, errors.New(errors.ResultOutOfRange, "result is negative")
	}
	if result >= maxExactResult {
		return 0, errors.Newf(errors.ResultOutOfRange, "result is not below 2^53")
	}
	return uint64(result), nil
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseExpression() (float64, error) {
	value, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipWhitespace()
		op := p.peek()
		if op != '+' && op != '-' {
			return value, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			value += right
		} else {
			value -= right
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	value, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		p.skipWhitespace()
		op := p.peek()
		if op != '*' && op != '/' && op != '%' {
			return value, nil
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		switch op {
		case '*':
			value *= right
		case '/':
			if right == 0 {
				return 0, errors.New(errors.DivisionByZero, "division by zero")
			}
			value /= right
		case '%':
			if right == 0 {
				return 0, errors.New(errors.DivisionByZero, "modulo by zero")
			}
			value = math.Mod(value, right)
		}
	}
}

func (p *parser) parseFactor() (float64, error) {
	p.skipWhitespace()
	negative := false
	switch p.peek() {
	case '-':
		negative = true
		p.pos++
	case '+':
		p.pos++
	}
	value, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	if negative {
		value = -value
	}
	return value, nil
}

func (p *parser) parsePower() (float64, error) {
	p.skipWhitespace()
	var value float64
	var err error
	if p.peek() == '(' {
		p.pos++
		value, err = p.parseExpression()
		if err != nil {
			return 0, err
		}
		p.skipWhitespace()
		if p.peek() != ')' {
			return 0, errors.Newf(errors.ParseError, "missing ')' at offset %d", p.pos)
		}
		p.pos++
	} else {
		value, err = p.parseNumber()
		if err != nil {
			return 0, err
		}
	}

	p.skipWhitespace()
	if p.peek() == '^' {
		p.pos++
		exponent, err := p.parsePower()
		if err != nil {
			return 0, err
		}
		value = math.Pow(value, exponent)
	}
	return value, nil
}

// parseNumber scans a decimal floating literal: optional sign, digits with
// an optional fraction, and an optional exponent part.
func (p *parser) parseNumber() (float64, error) {
	p.skipWhitespace()
	start := p.pos
	i := p.pos

	if i < len(p.input) && (p.input[i] == '+' || p.input[i] == '-') {
		i++
	}
	mantissa := 0
	for i < len(p.input) && isDecimal(p.input[i]) {
		i++
		mantissa++
	}
	if i < len(p.input) && p.input[i] == '.' {
		i++
		for i < len(p.input) && isDecimal(p.input[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return 0, errors.Newf(errors.ParseError, "expected number at offset %d", start)
	}
	// Exponent is consumed only when complete; a bare 'e' is left as
	// trailing input.
	if i < len(p.input) && (p.input[i] == 'e' || p.input[i] == 'E') {
		j := i + 1
		if j < len(p.input) && (p.input[j] == '+' || p.input[j] == '-') {
			j++
		}
		if j < len(p.input) && isDecimal(p.input[j]) {
			for j < len(p.input) && isDecimal(p.input[j]) {
				j++
			}
			i = j
		}
	}

	value, err := strconv.ParseFloat(p.input[start:i], 64)
	if err != nil {
		return 0, errors.Newf(errors.ParseError, "malformed number %q", p.input[start:i])
	}
	p.pos = i
	return value, nil
}

func isDecimal(c byte) bool {
	return c >= '0' && c <= '9'
}
