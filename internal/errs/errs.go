package errs

import (
	"errors"
	"strings"
)

type Kind uint8

const (
	KindOther   Kind = iota // Unclassified error
	KindIO                  // Download, file system issues
	KindNetwork             // DNS, ping, association issues
	KindInvalid             // Validation errors (user input)
	KindNotFound            // Device or port not found
	KindSystem              // OS level failures (exec launch, timeout)
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindInvalid:
		return "invalid input"
	case KindNotFound:
		return "not found"
	case KindSystem:
		return "system error"
	}
	return "other error"
}

type Op string

type Error struct {
	Op      Op     // Where did it happen?
	Kind    Kind   // What category is it?
	Err     error  // The underlying error (the root cause)
	Message string // Human-readable message
}

// E builds an *Error from its arguments, picking fields by type.
// A nested *Error keeps its own Kind unless one is given here.
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch arg := arg.(type) {
		case Op:
			e.Op = arg
		case Kind:
			e.Kind = arg
		case *Error:
			copy := *arg
			e.Err = &copy
		case error:
			e.Err = arg
		case string:
			e.Message = arg
		}
	}

	var inner *Error
	if e.Kind == KindOther && errors.As(e.Err, &inner) {
		e.Kind = inner.Kind
	}
	return e
}

func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteString(string(e.Op))
	}

	if e.Message != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Message)
	}

	if e.Err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// Is reports whether err carries the given kind.
func Is(kind Kind, err error) bool {
	return err != nil && KindOf(err) == kind
}
