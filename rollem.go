// Package rollem evaluates dice-notation expressions such as "4d6kh3+2",
// either stochastically (one concrete outcome with a readable trace) or
// exactly (the full probability mass function of the total). Both modes
// share one grammar and one modifier vocabulary.
package rollem

import (
	"github.com/KirkDiggler/rollem/internal/dice"
	"github.com/KirkDiggler/rollem/internal/distribution"
	"github.com/KirkDiggler/rollem/internal/parser"
	"github.com/KirkDiggler/rollem/internal/roller"
)

// Rolled is one concrete evaluation of an expression.
type Rolled interface {
	// Total returns the numeric result, counting kept dice only.
	Total() float64

	// String renders the kept die values composed through the expression.
	String() string

	// Expression reconstructs the canonical expression text.
	Expression() string
}

// PMF is the exact probability mass function of an expression's total.
type PMF struct {
	*distribution.Distribution
}

// TransformKeys returns a new PMF with outcomes remapped through transform;
// colliding outcomes sum their masses.
func (p PMF) TransformKeys(transform func(float64) float64) (PMF, error) {
	d, err := p.Distribution.TransformKeys(transform)
	if err != nil {
		return PMF{}, err
	}
	return PMF{d}, nil
}

// Roll evaluates expression once with a time-seeded roller and the default
// roll budget.
func Roll(expression string) (Rolled, error) {
	return RollWithSeed(expression, 0)
}

// RollWithSeed evaluates expression once with a fixed seed, for
// reproducible outcomes. A seed of 0 seeds from the system time.
func RollWithSeed(expression string, seed int64) (Rolled, error) {
	node, err := parser.Parse(expression)
	if err != nil {
		return nil, err
	}
	return roller.Roll(node, dice.New(&dice.Config{Seed: seed}))
}

// Distribution computes the exact probability mass function of the
// expression's total under the default size ceilings.
func Distribution(expression string) (PMF, error) {
	node, err := parser.Parse(expression)
	if err != nil {
		return PMF{}, err
	}
	d, err := distribution.NewEngine(nil).Evaluate(node)
	if err != nil {
		return PMF{}, err
	}
	return PMF{d}, nil
}
