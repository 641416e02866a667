package roller

import (
	"github.com/KirkDiggler/rollem/internal/ast"
	"github.com/KirkDiggler/rollem/internal/dice"
)

// Roll evaluates the expression once: a single pass over the tree, drawing
// concrete dice from src and applying modifiers in the order written.
func Roll(node ast.Node, src dice.Roller) (Rolled, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return &RolledLiteral{Value: n.Value}, nil

	case *ast.Dice:
		return rollDice(n, src)

	case *ast.Unary:
		operand, err := Roll(n.Operand, src)
		if err != nil {
			return nil, err
		}
		total, err := ast.ApplyUnary(n.Op, operand.Total())
		if err != nil {
			return nil, err
		}
		return &RolledUnary{Op: n.Op, Operand: operand, total: total}, nil

	case *ast.Binary:
		left, err := Roll(n.Left, src)
		if err != nil {
			return nil, err
		}
		right, err := Roll(n.Right, src)
		if err != nil {
			return nil, err
		}
		total, err := ast.ApplyBinary(n.Op, left.Total(), right.Total())
		if err != nil {
			return nil, err
		}
		return &RolledBinary{Op: n.Op, Left: left, Right: right, total: total}, nil

	case *ast.Paren:
		inner, err := Roll(n.Inner, src)
		if err != nil {
			return nil, err
		}
		return &RolledParen{Inner: inner}, nil

	default:
		return nil, ast.ErrUnknownNode
	}
}

func rollDice(n *ast.Dice, src dice.Roller) (*RolledDice, error) {
	rolled := &RolledDice{Node: n}

	// Zero dice is a valid empty pool totalling 0, even with zero sides.
	if n.Count == 0 {
		return rolled, nil
	}

	for i := 0; i < n.Count; i++ {
		die, err := draw(n.Sides, src)
		if err != nil {
			return nil, err
		}
		rolled.Pool = append(rolled.Pool, die)
	}

	for _, op := range n.Ops {
		if err := rolled.apply(op, src); err != nil {
			return nil, err
		}
	}
	return rolled, nil
}

func draw(sides int, src dice.Roller) (*Die, error) {
	value, err := src.Draw(sides)
	if err != nil {
		return nil, err
	}
	return &Die{Sides: sides, Value: value, Kept: true}, nil
}

// apply runs one modifier against the live pool. Matched sets are drawn
// from the currently-kept dice; only minimum and maximum touch dropped
// dice as well.
func (d *RolledDice) apply(op ast.Operation, src dice.Roller) error {
	if err := op.Validate(); err != nil {
		return err
	}

	switch op.Kind {
	case ast.OperationMinimum:
		for _, die := range d.Pool {
			if die.Value < op.Selector.Value {
				die.Value = op.Selector.Value
			}
		}

	case ast.OperationMaximum:
		for _, die := range d.Pool {
			if die.Value > op.Selector.Value {
				die.Value = op.Selector.Value
			}
		}

	case ast.OperationReroll:
		for _, die := range d.Pool {
			if !die.Kept {
				continue
			}
			for op.Selector.Matches(die.Value) {
				value, err := src.Draw(die.Sides)
				if err != nil {
					return err
				}
				die.Value = value
			}
		}

	case ast.OperationRerollOnce:
		// The matched set is fixed up front, so ranking selectors are fine.
		for _, i := range op.Selector.Pick(d.values(), d.keptIndices()) {
			die := d.Pool[i]
			value, err := src.Draw(die.Sides)
			if err != nil {
				return err
			}
			die.Value = value
		}

	case ast.OperationExplodeOnce:
		matched := op.Selector.Pick(d.values(), d.keptIndices())
		if len(matched) > 0 {
			die, err := draw(d.Node.Sides, src)
			if err != nil {
				return err
			}
			d.Pool = append(d.Pool, die)
		}

	case ast.OperationExplode:
		// Explosion appends new dice, never redraws the trigger die. Each
		// die explodes at most once, but a freshly appended die can match
		// and explode on a later pass.
		for {
			matched := op.Selector.Pick(d.values(), d.unexplodedIndices())
			if len(matched) == 0 {
				break
			}
			for _, i := range matched {
				d.Pool[i].exploded = true
				die, err := draw(d.Node.Sides, src)
				if err != nil {
					return err
				}
				d.Pool = append(d.Pool, die)
			}
		}

	case ast.OperationKeep:
		matched := op.Selector.Pick(d.values(), d.keptIndices())
		isMatched := make(map[int]bool, len(matched))
		for _, i := range matched {
			isMatched[i] = true
		}
		for i, die := range d.Pool {
			die.Kept = isMatched[i]
		}

	case ast.OperationDrop:
		for _, i := range op.Selector.Pick(d.values(), d.keptIndices()) {
			d.Pool[i].Kept = false
		}

	default:
		return ast.ErrUnknownOperation
	}
	return nil
}

func (d *RolledDice) values() []int {
	values := make([]int, len(d.Pool))
	for i, die := range d.Pool {
		values[i] = die.Value
	}
	return values
}

func (d *RolledDice) keptIndices() []int {
	var indices []int
	for i, die := range d.Pool {
		if die.Kept {
			indices = append(indices, i)
		}
	}
	return indices
}

func (d *RolledDice) unexplodedIndices() []int {
	var indices []int
	for i, die := range d.Pool {
		if die.Kept && !die.exploded {
			indices = append(indices, i)
		}
	}
	return indices
}
