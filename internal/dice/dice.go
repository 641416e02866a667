package dice

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/rollem/internal/dice Roller

// Roller draws individual die values. One Roller serves exactly one
// top-level evaluation and is never shared between evaluations, so the
// budget below cannot leak across calls.
type Roller interface {
	// Draw returns a value uniformly drawn from [1, sides].
	Draw(sides int) (int, error)
}

// DefaultMaxRolls bounds the total draws of one evaluation. Reroll and
// explode can loop without bound on degenerate input (a 1-sided die that
// rerolls on 1 never settles); the budget turns that into a reportable
// failure instead of a hang.
const DefaultMaxRolls = 1000

// Config for the budgeted roller
type Config struct {
	// Optional seed for testing
	Seed int64

	// MaxRolls caps total draws; 0 uses DefaultMaxRolls
	MaxRolls int
}

// BudgetRoller implements Roller using a seeded source and a draw budget.
type BudgetRoller struct {
	random   *rand.Rand
	maxRolls int
	rolls    int
}

// New creates a new budgeted roller
func New(cfg *Config) *BudgetRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	maxRolls := DefaultMaxRolls
	if cfg != nil && cfg.MaxRolls > 0 {
		maxRolls = cfg.MaxRolls
	}

	return &BudgetRoller{
		random:   rand.New(rand.NewSource(seed)),
		maxRolls: maxRolls,
	}
}

// Draw rolls a single die with the given number of sides. A zero-sided die
// cannot produce a value and is rejected immediately.
func (r *BudgetRoller) Draw(sides int) (int, error) {
	if sides < 1 {
		return 0, ErrInvalidSides
	}

	r.rolls++
	if r.rolls > r.maxRolls {
		return 0, ErrBudgetExceeded
	}

	return r.random.Intn(sides) + 1, nil
}

// Rolls returns how many draws this roller has served so far.
func (r *BudgetRoller) Rolls() int {
	return r.rolls
}
