package dice

import "context"

// Service defines the interface for dice expression operations
type Service interface {
	// Roll evaluates an expression once, producing a concrete outcome
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)

	// Distribution computes the exact probability distribution of an
	// expression's total
	Distribution(ctx context.Context, input *DistributionInput) (*DistributionOutput, error)
}
