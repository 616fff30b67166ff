package helpers

import (
	"errors"

	"github.com/ztrue/tracerr"
)

// Error carries one or more stack-traced errors. The zero value is NilError.
type Error struct {
	errs []tracerr.Error
}

var NilError = Error{nil}

func IsNil(err error) bool {
	if traceableErr, ok := err.(Error); ok {
		return traceableErr.First() == nil
	}
	if traceableErr, ok := err.(*Error); ok {
		return traceableErr == nil || traceableErr.First() == nil
	}
	return err == nil
}

func (e Error) IsNil() bool {
	return IsNil(e)
}

var _errorNumber = 0
var _errorIndents = []string{
	".  ",
	"-  ",
}

func (e Error) Error() string {
	_errorNumber = (_errorNumber + 1) % len(_errorIndents)
	result := ""
	for _, err := range e.errs {
		result += Indent(err.Error(), _errorIndents[_errorNumber]) + "\n"
	}
	return result
}

// String includes the captured stack frames with source context.
func (e Error) String() string {
	result := ""
	for _, err := range e.errs {
		result += "-------------------------------------------------------------------------------\n"
		result += tracerr.SprintSource(err, 3) + "\n"
	}
	return result
}

func (e Error) First() tracerr.Error {
	if e.errs == nil {
		return nil
	}
	return e.errs[0]
}

// Unwrap exposes the wrapped causes so errors.Is / errors.As see through Error.
func (e Error) Unwrap() []error {
	return MapSlice(e.errs, func(err tracerr.Error) error {
		return err.Unwrap()
	})
}

func (e Error) NumErrors() int {
	if IsNil(e) {
		return 0
	}
	num := 0
	for _, err := range e.errs {
		if err != nil {
			num++
		}
	}
	return num
}

func Wrap(err error) Error {
	if err == nil {
		return NilError
	}
	var traceable Error
	if errors.As(err, &traceable) {
		return traceable
	}
	return Error{[]tracerr.Error{tracerr.Wrap(err)}}
}

func WrapReturn[T any](x T, err error) (T, Error) {
	return x, Wrap(err)
}

func Join(others ...Error) Error {
	others = FilterSlice(others, func(err Error) bool {
		return !IsNil(err)
	})
	if len(others) == 0 {
		return NilError
	} else if len(others) == 1 {
		return others[0]
	}
	result := Error{}
	for _, o := range others {
		result.errs = append(result.errs, o.errs...)
	}
	return result
}

func Errorf(format string, args ...interface{}) Error {
	return Error{[]tracerr.Error{tracerr.Errorf(format, args...)}}
}
