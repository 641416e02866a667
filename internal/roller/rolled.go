package roller

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/rollem/internal/ast"
)

// Rolled is one node of an evaluated expression tree. The tree mirrors the
// expression's structure so a concrete outcome can be traced back through
// the text that produced it.
type Rolled interface {
	// Total returns the node's numeric result, counting kept dice only.
	Total() float64

	// String renders the concrete outcome: kept die values in roll order
	// inside brackets, composed through the expression's operator tokens.
	String() string

	// Expression reconstructs the canonical, whitespace-normalized text of
	// the underlying expression, independent of the rolled values.
	Expression() string
}

// Die is a single live die in a pool. Its value is redrawn by reroll
// modifiers; keep and drop modifiers only flip the Kept flag so the pool's
// roll order stays intact for display.
type Die struct {
	Sides int
	Value int
	Kept  bool

	exploded bool
}

// RolledLiteral is a constant leaf.
type RolledLiteral struct {
	Value float64
}

func (l *RolledLiteral) Total() float64 {
	return l.Value
}

func (l *RolledLiteral) String() string {
	return ast.FormatNumber(l.Value)
}

func (l *RolledLiteral) Expression() string {
	return ast.FormatNumber(l.Value)
}

// RolledDice is an evaluated dice term together with its full pool, in roll
// and explosion order. Dropped dice stay in the pool for traceability but
// contribute nothing to the total and are omitted from the display string.
type RolledDice struct {
	Node *ast.Dice
	Pool []*Die
}

func (d *RolledDice) Total() float64 {
	total := 0
	for _, die := range d.Pool {
		if die.Kept {
			total += die.Value
		}
	}
	return float64(total)
}

// KeptDice returns the values of the kept dice in roll order.
func (d *RolledDice) KeptDice() []int {
	var kept []int
	for _, die := range d.Pool {
		if die.Kept {
			kept = append(kept, die.Value)
		}
	}
	return kept
}

func (d *RolledDice) String() string {
	kept := d.KeptDice()
	parts := make([]string, len(kept))
	for i, v := range kept {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (d *RolledDice) Expression() string {
	return d.Node.String()
}

// RolledUnary is an evaluated sign node.
type RolledUnary struct {
	Op      ast.UnaryOperator
	Operand Rolled

	total float64
}

func (u *RolledUnary) Total() float64 {
	return u.total
}

func (u *RolledUnary) String() string {
	return string(u.Op) + u.Operand.String()
}

func (u *RolledUnary) Expression() string {
	return string(u.Op) + u.Operand.Expression()
}

// RolledBinary is an evaluated arithmetic node.
type RolledBinary struct {
	Op    ast.BinaryOperator
	Left  Rolled
	Right Rolled

	total float64
}

func (b *RolledBinary) Total() float64 {
	return b.total
}

func (b *RolledBinary) String() string {
	return b.Left.String() + " " + string(b.Op) + " " + b.Right.String()
}

func (b *RolledBinary) Expression() string {
	return b.Left.Expression() + " " + string(b.Op) + " " + b.Right.Expression()
}

// RolledParen is an evaluated parenthesized sub-expression.
type RolledParen struct {
	Inner Rolled
}

func (p *RolledParen) Total() float64 {
	return p.Inner.Total()
}

func (p *RolledParen) String() string {
	return "(" + p.Inner.String() + ")"
}

func (p *RolledParen) Expression() string {
	return "(" + p.Inner.Expression() + ")"
}
