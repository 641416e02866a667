package distribution

import (
	"github.com/KirkDiggler/rollem/internal/ast"
	"github.com/KirkDiggler/rollem/internal/dice"
)

// DefaultMaxDiceUnits caps Sides·Count for unmodified pools. Convolution
// keeps large plain pools tractable, but input size is still bounded to cap
// total work.
const DefaultMaxDiceUnits = 101 * 101

// DefaultMaxOperationUnits caps Sides^Count before a modified pool is
// enumerated. Modifiers couple the dice (keep-highest depends on the joint
// ordering), so every ordered outcome tuple must be visited.
const DefaultMaxOperationUnits = 8192

// Config holds the combinatorial ceilings for the engine
type Config struct {
	// MaxDiceUnits caps Sides·Count for unmodified pools; 0 uses the default
	MaxDiceUnits int

	// MaxOperationUnits caps Sides^Count for modified pools; 0 uses the default
	MaxOperationUnits int
}

// Engine computes exact probability distributions for expression totals.
type Engine struct {
	maxDiceUnits      int
	maxOperationUnits int
}

// NewEngine creates a new distribution engine
func NewEngine(cfg *Config) *Engine {
	engine := &Engine{
		maxDiceUnits:      DefaultMaxDiceUnits,
		maxOperationUnits: DefaultMaxOperationUnits,
	}
	if cfg != nil && cfg.MaxDiceUnits > 0 {
		engine.maxDiceUnits = cfg.MaxDiceUnits
	}
	if cfg != nil && cfg.MaxOperationUnits > 0 {
		engine.maxOperationUnits = cfg.MaxOperationUnits
	}
	return engine
}

// Evaluate computes the exact distribution of the expression's total,
// bottom-up, combining sub-distributions as pure values.
func (e *Engine) Evaluate(node ast.Node) (*Distribution, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return point(n.Value)

	case *ast.Dice:
		return e.evaluateDice(n)

	case *ast.Unary:
		inner, err := e.Evaluate(n.Operand)
		if err != nil {
			return nil, err
		}
		if n.Op == ast.UnaryPlus {
			return inner, nil
		}
		return inner.TransformKeys(func(outcome float64) float64 { return -outcome })

	case *ast.Binary:
		left, err := e.Evaluate(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.Evaluate(n.Right)
		if err != nil {
			return nil, err
		}
		return combine(n.Op, left, right)

	case *ast.Paren:
		return e.Evaluate(n.Inner)

	default:
		return nil, ast.ErrUnknownNode
	}
}

// point is the single-outcome distribution.
func point(value float64) (*Distribution, error) {
	return New(map[float64]float64{value: 1})
}

// combine crosses two independent distributions through an arithmetic
// operator, accumulating mass per combined outcome. A zero outcome in the
// right distribution fails division and modulo outright: the expression can
// divide by zero, so its distribution is undefined.
func combine(op ast.BinaryOperator, left, right *Distribution) (*Distribution, error) {
	weights := make(map[float64]float64, len(left.weights)*len(right.weights))
	for a, massA := range left.weights {
		for b, massB := range right.weights {
			outcome, err := ast.ApplyBinary(op, a, b)
			if err != nil {
				return nil, err
			}
			weights[outcome] += massA * massB
		}
	}
	return New(weights)
}

func (e *Engine) evaluateDice(n *ast.Dice) (*Distribution, error) {
	// Zero dice totals 0 with certainty, even with zero sides.
	if n.Count == 0 {
		return point(0)
	}
	if n.Sides < 1 {
		return nil, dice.ErrInvalidSides
	}
	if len(n.Ops) == 0 {
		return e.convolve(n)
	}
	return e.enumerate(n)
}

// convolve handles unmodified pools: the dice are independent, so the pool
// is the iterated sum of Count uniform single-die distributions.
func (e *Engine) convolve(n *ast.Dice) (*Distribution, error) {
	if n.Sides*n.Count > e.maxDiceUnits {
		return nil, ErrSizeExceeded
	}

	die := make(map[float64]float64, n.Sides)
	mass := 1 / float64(n.Sides)
	for v := 1; v <= n.Sides; v++ {
		die[float64(v)] = mass
	}
	uniform, err := New(die)
	if err != nil {
		return nil, err
	}

	result, err := point(0)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n.Count; i++ {
		result, err = combine(ast.OpAdd, result, uniform)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// enumerate handles modified pools by visiting every ordered outcome tuple,
// applying the modifiers functionally to the tuple, and accumulating the
// uniform tuple mass under the resulting total.
func (e *Engine) enumerate(n *ast.Dice) (*Distribution, error) {
	units := 1
	for i := 0; i < n.Count; i++ {
		units *= n.Sides
		if units > e.maxOperationUnits {
			return nil, ErrSizeExceeded
		}
	}

	for _, op := range n.Ops {
		if err := op.Validate(); err != nil {
			return nil, err
		}
		switch op.Kind {
		case ast.OperationReroll, ast.OperationRerollOnce,
			ast.OperationExplode, ast.OperationExplodeOnce:
			// Rerolls and explosions change the outcome's support
			// dynamically, which a fixed tuple cannot represent.
			return nil, ErrUnsupportedOperation
		}
	}

	weights := make(map[float64]float64)
	mass := 1 / float64(units)
	tuple := make([]int, n.Count)
	for i := range tuple {
		tuple[i] = 1
	}

	for {
		weights[float64(applyOps(tuple, n.Ops))] += mass

		carry := 0
		for ; carry < n.Count; carry++ {
			if tuple[carry] < n.Sides {
				tuple[carry]++
				break
			}
			tuple[carry] = 1
		}
		if carry == n.Count {
			break
		}
	}
	return New(weights)
}

// applyOps runs the modifier sequence against one concrete tuple and
// returns the total of the surviving components. Same semantics as the
// stochastic roller, minus the operations that draw new dice.
func applyOps(tuple []int, ops []ast.Operation) int {
	values := append([]int(nil), tuple...)
	kept := make([]bool, len(values))
	for i := range kept {
		kept[i] = true
	}

	for _, op := range ops {
		switch op.Kind {
		case ast.OperationMinimum:
			for i, v := range values {
				if v < op.Selector.Value {
					values[i] = op.Selector.Value
				}
			}
		case ast.OperationMaximum:
			for i, v := range values {
				if v > op.Selector.Value {
					values[i] = op.Selector.Value
				}
			}
		case ast.OperationKeep:
			matched := op.Selector.Pick(values, keptIndices(kept))
			next := make([]bool, len(values))
			for _, i := range matched {
				next[i] = true
			}
			kept = next
		case ast.OperationDrop:
			for _, i := range op.Selector.Pick(values, keptIndices(kept)) {
				kept[i] = false
			}
		}
	}

	total := 0
	for i, v := range values {
		if kept[i] {
			total += v
		}
	}
	return total
}

func keptIndices(kept []bool) []int {
	var indices []int
	for i, k := range kept {
		if k {
			indices = append(indices, i)
		}
	}
	return indices
}
