package dice

// DiceError is a custom error type for die-drawing errors
type DiceError string

// Error implements the error interface
func (e DiceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidSides   DiceError = "die must have at least one side"
	ErrBudgetExceeded DiceError = "roll budget exceeded"
)
