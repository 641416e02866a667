package dice

import (
	"github.com/KirkDiggler/rollem/internal/common/clock"
	"github.com/KirkDiggler/rollem/internal/common/uuid"
	"github.com/KirkDiggler/rollem/internal/distribution"
	"github.com/KirkDiggler/rollem/internal/models"
	"github.com/KirkDiggler/rollem/internal/roller"
)

// Config holds configuration for the dice service
type Config struct {
	// Seed fixes the random source for testing; 0 seeds from the system time
	Seed int64

	// MaxRolls caps dice drawn per evaluation; 0 uses the default budget
	MaxRolls int

	// MaxDiceUnits caps sides·count for unmodified pools; 0 uses the default
	MaxDiceUnits int

	// MaxOperationUnits caps sides^count for modified pools; 0 uses the default
	MaxOperationUnits int

	// Clock provides roll timestamps; nil uses the system clock
	Clock clock.Clock

	// UUID provides roll identifiers; nil uses random UUIDs
	UUID uuid.UUID
}

// RollInput is the request for a single concrete evaluation
type RollInput struct {
	// Expression is the dice-notation text to evaluate
	Expression string
}

// RollOutput is the result of a single concrete evaluation
type RollOutput struct {
	// Roll is the audit record for this evaluation
	Roll *models.Roll

	// Node is the rolled tree, for callers that need per-die detail
	Node roller.Rolled
}

// DistributionInput is the request for an exact evaluation
type DistributionInput struct {
	// Expression is the dice-notation text to evaluate
	Expression string
}

// DistributionOutput is the result of an exact evaluation
type DistributionOutput struct {
	// Distribution maps each possible total to its probability mass
	Distribution *distribution.Distribution

	// Mean is the distribution's expected value
	Mean float64

	// StdDev is the distribution's standard deviation
	StdDev float64
}
