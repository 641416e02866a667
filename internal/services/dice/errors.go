package dice

// ServiceError is a custom error type for dice service errors
type ServiceError string

// Error implements the error interface
func (e ServiceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilInput        ServiceError = "input cannot be nil"
	ErrEmptyExpression ServiceError = "expression cannot be empty"
)
