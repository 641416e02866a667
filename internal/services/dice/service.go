package dice

import (
	"context"

	"github.com/KirkDiggler/rollem/internal/common/clock"
	"github.com/KirkDiggler/rollem/internal/common/uuid"
	dicePool "github.com/KirkDiggler/rollem/internal/dice"
	"github.com/KirkDiggler/rollem/internal/distribution"
	"github.com/KirkDiggler/rollem/internal/models"
	"github.com/KirkDiggler/rollem/internal/parser"
	"github.com/KirkDiggler/rollem/internal/roller"
)

// service implements the Service interface
type service struct {
	config *Config
	clock  clock.Clock
	uuid   uuid.UUID
	engine *distribution.Engine
}

// NewService creates a new dice service
func NewService(cfg *Config) (*service, error) {
	// Set default values if not provided
	if cfg == nil {
		cfg = &Config{}
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	gen := cfg.UUID
	if gen == nil {
		gen = uuid.New()
	}

	return &service{
		config: cfg,
		clock:  clk,
		uuid:   gen,
		engine: distribution.NewEngine(&distribution.Config{
			MaxDiceUnits:      cfg.MaxDiceUnits,
			MaxOperationUnits: cfg.MaxOperationUnits,
		}),
	}, nil
}

// Roll evaluates an expression once and returns the outcome with its audit
// record
func (s *service) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Expression == "" {
		return nil, ErrEmptyExpression
	}

	node, err := parser.Parse(input.Expression)
	if err != nil {
		return nil, err
	}

	// Each evaluation owns a fresh budgeted roller; nothing is retained
	// between calls.
	src := dicePool.New(&dicePool.Config{
		Seed:     s.config.Seed,
		MaxRolls: s.config.MaxRolls,
	})

	rolled, err := roller.Roll(node, src)
	if err != nil {
		return nil, err
	}

	return &RollOutput{
		Roll: &models.Roll{
			ID:         s.uuid.NewUUID(),
			Expression: rolled.Expression(),
			Display:    rolled.String(),
			Total:      rolled.Total(),
			Timestamp:  s.clock.Now(),
		},
		Node: rolled,
	}, nil
}

// Distribution computes the exact probability distribution of an
// expression's total
func (s *service) Distribution(ctx context.Context, input *DistributionInput) (*DistributionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Expression == "" {
		return nil, ErrEmptyExpression
	}

	node, err := parser.Parse(input.Expression)
	if err != nil {
		return nil, err
	}

	dist, err := s.engine.Evaluate(node)
	if err != nil {
		return nil, err
	}

	return &DistributionOutput{
		Distribution: dist,
		Mean:         dist.Mean(),
		StdDev:       dist.StdDev(),
	}, nil
}
