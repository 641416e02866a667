package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node is a single node of a parsed dice expression. Nodes are immutable
// once the parser has built them; both evaluators walk the same tree.
type Node interface {
	// String returns the canonical, whitespace-normalized form of the node.
	String() string

	node()
}

// Literal is a constant number, integer or decimal.
type Literal struct {
	Value float64
}

// Dice is a dice term: <count>d<sides> followed by zero or more modifiers,
// applied in the order given.
type Dice struct {
	Count int
	Sides int
	Ops   []Operation
}

// Unary applies a sign to its operand.
type Unary struct {
	Op      UnaryOperator
	Operand Node
}

// Binary combines two sub-expressions with an arithmetic operator.
type Binary struct {
	Op    BinaryOperator
	Left  Node
	Right Node
}

// Paren is an explicitly parenthesized sub-expression.
type Paren struct {
	Inner Node
}

func (*Literal) node() {}
func (*Dice) node()    {}
func (*Unary) node()   {}
func (*Binary) node()  {}
func (*Paren) node()   {}

func (l *Literal) String() string {
	return FormatNumber(l.Value)
}

func (d *Dice) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dd%d", d.Count, d.Sides)
	for _, op := range d.Ops {
		b.WriteString(op.String())
	}
	return b.String()
}

func (u *Unary) String() string {
	return string(u.Op) + u.Operand.String()
}

func (b *Binary) String() string {
	return b.Left.String() + " " + string(b.Op) + " " + b.Right.String()
}

func (p *Paren) String() string {
	return "(" + p.Inner.String() + ")"
}

// UnaryOperator is a sign applied to a single operand.
type UnaryOperator string

const (
	// UnaryPlus leaves the operand unchanged
	UnaryPlus UnaryOperator = "+"

	// UnaryMinus negates the operand
	UnaryMinus UnaryOperator = "-"
)

// BinaryOperator is an arithmetic operator between two operands.
type BinaryOperator string

const (
	// OpAdd adds the operands
	OpAdd BinaryOperator = "+"

	// OpSub subtracts the right operand from the left
	OpSub BinaryOperator = "-"

	// OpMul multiplies the operands
	OpMul BinaryOperator = "*"

	// OpDiv divides and floors the result
	OpDiv BinaryOperator = "/"

	// OpMod is the remainder of dividing the operands
	OpMod BinaryOperator = "%"
)

// ApplyBinary combines two totals with the given operator. Division floors
// toward negative infinity; modulo keeps the sign of the dividend. Both
// evaluators route arithmetic through here so the semantics live once.
func ApplyBinary(op BinaryOperator, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return math.Floor(a / b), nil
	case OpMod:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return math.Mod(a, b), nil
	default:
		return 0, ErrUnknownOperator
	}
}

// ApplyUnary applies a sign to a total.
func ApplyUnary(op UnaryOperator, v float64) (float64, error) {
	switch op {
	case UnaryPlus:
		return v, nil
	case UnaryMinus:
		return -v, nil
	default:
		return 0, ErrUnknownOperator
	}
}

// FormatNumber renders a numeric total without a trailing ".0" for whole
// values, matching how expressions are written.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
