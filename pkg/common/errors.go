package common

// NotFoundError is returned when the required value is not found.
type NotFoundError struct {
	Message string
}

func (nf NotFoundError) Error() string {
	return nf.Message
}

// NewNotFoundError creates a new instance of NotFoundError with the given message.
func NewNotFoundError(message string) NotFoundError {
	return NotFoundError{
		Message: message,
	}
}

// UnknownComparatorError is returned when no comparator is registered under a name.
type UnknownComparatorError struct {
	Message string
}

func (uc UnknownComparatorError) Error() string {
	return uc.Message
}

// NewUnknownComparatorError creates a new instance of UnknownComparatorError with the given message.
func NewUnknownComparatorError(message string) UnknownComparatorError {
	return UnknownComparatorError{
		Message: message,
	}
}

// ComparatorMismatchError is returned when an index is opened with a comparator other
// than the one it expects. Keys ordered by one comparator are garbage to another.
type ComparatorMismatchError struct {
	Message string
}

func (cm ComparatorMismatchError) Error() string {
	return cm.Message
}

// NewComparatorMismatchError creates a new instance of ComparatorMismatchError with the given message.
func NewComparatorMismatchError(message string) ComparatorMismatchError {
	return ComparatorMismatchError{
		Message: message,
	}
}

// ClosedError is returned when an operation is called on a closed storage.
type ClosedError struct {
	Message string
}

func (ce ClosedError) Error() string {
	return ce.Message
}

// NewClosedError creates a new instance of ClosedError with the given message.
func NewClosedError(message string) ClosedError {
	return ClosedError{
		Message: message,
	}
}
