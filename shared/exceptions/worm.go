package exceptions

import "errors"

var (
	ErrReadBeforeSet = NewReadBeforeSetError()
	ErrDoubleSet     = NewDoubleSetError()
)

// ReadBeforeSetError is returned when a WORM cell is read before its value was set.
type ReadBeforeSetError struct {
	error
}

func NewReadBeforeSetError() *ReadBeforeSetError {
	return &ReadBeforeSetError{errors.New("tried to read a WORM cell that wasn't set")}
}

func (e *ReadBeforeSetError) Error() string {
	return e.error.Error()
}

// Is matches any other ReadBeforeSetError, so errors.Is(err, ErrReadBeforeSet) works
// regardless of which instance was returned.
func (e *ReadBeforeSetError) Is(target error) bool {
	_, ok := target.(*ReadBeforeSetError)
	return ok
}

// DoubleSetError is returned when a WORM cell that already holds a value is set again.
type DoubleSetError struct {
	error
}

func NewDoubleSetError() *DoubleSetError {
	return &DoubleSetError{errors.New("tried to set a WORM cell twice")}
}

func (e *DoubleSetError) Error() string {
	return e.error.Error()
}

func (e *DoubleSetError) Is(target error) bool {
	_, ok := target.(*DoubleSetError)
	return ok
}

func IsWormCellError(err error) bool {
	return errors.Is(err, ErrReadBeforeSet) || errors.Is(err, ErrDoubleSet)
}
