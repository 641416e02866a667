package parser

import (
	"fmt"
	"strconv"

	"github.com/KirkDiggler/rollem/internal/ast"
)

// ParseError describes why expression text failed to parse.
type ParseError struct {
	// Pos is the byte offset the parser had reached
	Pos int

	// Msg is a human-readable description of the failure
	Msg string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}

// Parse turns dice-notation text into an expression tree.
//
// Grammar, loosest binding first:
//
//	expr     := term (('+' | '-') term)*
//	term     := unary (('*' | '/' | '%') unary)*
//	unary    := ('+' | '-') unary | primary
//	primary  := number | dice | '(' expr ')'
//	dice     := [int] 'd' int modifier*
//	modifier := code [selector prefix] int
//
// Modifier codes are mi, ma, ro, rr, ra, e, k and p; selector prefixes are
// h, l, '<' and '>'. Whitespace is ignored between operators and operands
// but a dice term and its modifiers must be contiguous.
func Parse(input string) (ast.Node, error) {
	p := &parser{input: input}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return nil, p.errorf("unexpected trailing input %q", p.input[p.pos:])
	}
	return node, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

// peek returns the next byte without consuming it, or 0 at end of input.
func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

// peekAt looks offset bytes past the cursor.
func (p *parser) peekAt(offset int) byte {
	if p.pos+offset >= len(p.input) {
		return 0
	}
	return p.input[p.pos+offset]
}

func (p *parser) parseExpr() (ast.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		p.skipSpace()
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.BinaryOperator(op), Left: left, Right: right}
	}
}

func (p *parser) parseTerm() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		p.skipSpace()
		op := p.peek()
		if op != '*' && op != '/' && op != '%' {
			return left, nil
		}
		p.pos++

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.BinaryOperator(op), Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (ast.Node, error) {
	p.skipSpace()
	if op := p.peek(); op == '+' || op == '-' {
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.UnaryOperator(op), Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ast.Node, error) {
	p.skipSpace()

	switch c := p.peek(); {
	case c == '(':
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, p.errorf("unbalanced parentheses: missing ')'")
		}
		p.pos++
		return &ast.Paren{Inner: inner}, nil

	case c == 'd':
		// Bare "d6" rolls a single die.
		return p.parseDice(1)

	case isDigit(c):
		value, err := p.scanInt()
		if err != nil {
			return nil, err
		}
		if p.peek() == 'd' {
			return p.parseDice(value)
		}
		if p.peek() == '.' {
			return p.parseDecimal(value)
		}
		return &ast.Literal{Value: float64(value)}, nil

	case c == 0:
		return nil, p.errorf("expected an expression, found end of input")

	default:
		return nil, p.errorf("unexpected character %q", string(c))
	}
}

func (p *parser) parseDecimal(whole int) (ast.Node, error) {
	start := p.pos
	p.pos++ // consume '.'
	if !isDigit(p.peek()) {
		return nil, p.errorf("expected digits after decimal point")
	}
	for isDigit(p.peek()) {
		p.pos++
	}

	text := strconv.Itoa(whole) + p.input[start:p.pos]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.errorf("invalid number %q", text)
	}
	return &ast.Literal{Value: value}, nil
}

func (p *parser) parseDice(count int) (ast.Node, error) {
	p.pos++ // consume 'd'
	if !isDigit(p.peek()) {
		return nil, p.errorf("expected die sides after 'd'")
	}
	sides, err := p.scanInt()
	if err != nil {
		return nil, err
	}

	dice := &ast.Dice{Count: count, Sides: sides}
	for {
		op, ok, err := p.parseModifier()
		if err != nil {
			return nil, err
		}
		if !ok {
			return dice, nil
		}
		dice.Ops = append(dice.Ops, op)
	}
}

// parseModifier consumes one modifier if the cursor sits on one. The second
// return value reports whether a modifier was found. Modifiers bind tightly
// to the dice term, so no whitespace is skipped here.
func (p *parser) parseModifier() (ast.Operation, bool, error) {
	var kind ast.OperationKind

	switch p.peek() {
	case 'm':
		switch p.peekAt(1) {
		case 'i':
			kind = ast.OperationMinimum
		case 'a':
			kind = ast.OperationMaximum
		default:
			return ast.Operation{}, false, p.errorf("unknown modifier code %q", p.remainder(2))
		}
		p.pos += 2
	case 'r':
		switch p.peekAt(1) {
		case 'o':
			kind = ast.OperationRerollOnce
		case 'r':
			kind = ast.OperationReroll
		case 'a':
			kind = ast.OperationExplodeOnce
		default:
			return ast.Operation{}, false, p.errorf("unknown modifier code %q", p.remainder(2))
		}
		p.pos += 2
	case 'e':
		kind = ast.OperationExplode
		p.pos++
	case 'k':
		kind = ast.OperationKeep
		p.pos++
	case 'p':
		kind = ast.OperationDrop
		p.pos++
	default:
		return ast.Operation{}, false, nil
	}

	sel, err := p.parseSelector(kind)
	if err != nil {
		return ast.Operation{}, false, err
	}

	op := ast.Operation{Kind: kind, Selector: sel}
	if err := op.Validate(); err != nil {
		return ast.Operation{}, false, err
	}
	return op, true, nil
}

func (p *parser) parseSelector(kind ast.OperationKind) (ast.Selector, error) {
	mode := ast.SelectorExact
	switch p.peek() {
	case 'h':
		mode = ast.SelectorHighest
		p.pos++
	case 'l':
		mode = ast.SelectorLowest
		p.pos++
	case '<':
		mode = ast.SelectorLessThan
		p.pos++
	case '>':
		mode = ast.SelectorGreaterThan
		p.pos++
	}

	if !isDigit(p.peek()) {
		return ast.Selector{}, p.errorf("modifier %q requires an integer", kind)
	}
	value, err := p.scanInt()
	if err != nil {
		return ast.Selector{}, err
	}
	return ast.Selector{Mode: mode, Value: value}, nil
}

func (p *parser) scanInt() (int, error) {
	start := p.pos
	for isDigit(p.peek()) {
		p.pos++
	}
	value, err := strconv.Atoi(p.input[start:p.pos])
	if err != nil {
		return 0, p.errorf("invalid integer %q", p.input[start:p.pos])
	}
	return value, nil
}

// remainder returns up to n bytes at the cursor, for error messages.
func (p *parser) remainder(n int) string {
	end := p.pos + n
	if end > len(p.input) {
		end = len(p.input)
	}
	return p.input[p.pos:end]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
