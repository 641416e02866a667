package distribution

// DistributionError is a custom error type for distribution computation errors
type DistributionError string

// Error implements the error interface
func (e DistributionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSizeExceeded         DistributionError = "distribution size ceiling exceeded"
	ErrUnsupportedOperation DistributionError = "modifier is not supported for exact distributions"
	ErrInvalidMass          DistributionError = "distribution mass does not sum to 1"
)
