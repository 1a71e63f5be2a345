package cmd

import (
	"errors"
	"strings"
)

var (
	ErrQuit           = errors.New("quit")
	ErrUnknownCommand = errors.New("unknown command")
	ErrArity          = errors.New("wrong number of arguments")
	ErrInvalidRepeat  = errors.New("invalid repeat count")
)

// MultiError collects the failures of a script run.
type MultiError []error

func (m MultiError) Error() string {
	var b strings.Builder
	b.WriteString("multiple errors:")
	for _, err := range m {
		b.WriteString("\n- " + err.Error())
	}
	return b.String()
}

func (m MultiError) Unwrap() []error {
	return m
}
