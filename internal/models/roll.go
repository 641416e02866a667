package models

import (
	"time"
)

// Roll represents one concrete evaluation of a dice expression
type Roll struct {
	// ID is the unique identifier for the roll
	ID string

	// Expression is the canonical, whitespace-normalized expression text
	Expression string

	// Display shows the kept die values composed through the expression
	Display string

	// Total is the numeric result, counting kept dice only
	Total float64

	// Timestamp is when the roll was made
	Timestamp time.Time
}
