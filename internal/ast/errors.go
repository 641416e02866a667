package ast

// ExprError is a custom error type for expression evaluation errors
type ExprError string

// Error implements the error interface
func (e ExprError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrDivisionByZero   ExprError = "division by zero"
	ErrUnknownNode      ExprError = "unknown expression node"
	ErrInvalidSelector  ExprError = "modifier does not support this selector"
	ErrUnknownOperation ExprError = "unknown dice modifier"
	ErrUnknownOperator  ExprError = "unknown arithmetic operator"
)
