// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the errors reported by this package so that callers can
// switch on the failure category instead of matching error strings.
type Kind int

const (
	// KindDomain reports an out-of-range argument: a bad variable index or
	// domain value, an empty or invalid range, or an operand of the wrong
	// shape (such as a non-cube given to Restrict). BuildEquals and BuildAdd
	// do not report a width mismatch between domains: the narrower domain's
	// missing high bits read as 0. Pairing.Set accepts only variable
	// indices, so there is no wrong-kind replacement to report.
	KindDomain Kind = iota
	// KindUseAfterFree reports a handle already consumed by an "...With"
	// operation, or otherwise freed, being used again.
	KindUseAfterFree
	// KindResourceExhausted reports that the node table cannot grow
	// further. Factory state remains consistent but further allocation will
	// re-fail.
	KindResourceExhausted
	// KindModeViolation reports an attempt to change BDD/ZDD mode after
	// creation of a non-terminal node, or a handle from one factory used
	// with another.
	KindModeViolation
	// KindIterator reports misuse of an enumeration iterator: MintermIter's
	// Remove called before the first Next. Next past the end is not an
	// error (it returns false), and FastForward takes no position, so
	// neither reports one.
	KindIterator
)

func (k Kind) String() string {
	switch k {
	case KindDomain:
		return "domain"
	case KindUseAfterFree:
		return "use-after-free"
	case KindResourceExhausted:
		return "resource-exhausted"
	case KindModeViolation:
		return "mode-violation"
	case KindIterator:
		return "iterator-misuse"
	default:
		return "unknown"
	}
}

// Error is the distinguished error type returned by this package. It wraps
// an underlying cause with errors.WithStack so that %+v prints a
// construction-site stack trace, and exposes Kind for programmatic
// dispatch.
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string {
	return e.err.Error()
}

// Unwrap lets errors.Is/errors.As see through to the wrapped cause.
func (e *Error) Unwrap() error {
	return e.err
}

// Format forwards to the underlying error so that %+v on an *Error prints
// the stack trace captured at construction.
func (e *Error) Format(s fmt.State, verb rune) {
	if f, ok := e.err.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	fmt.Fprint(s, e.err.Error())
}

func newError(kind Kind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, err: errors.WithStack(fmt.Errorf(format, a...))}
}

// IsKind reports whether err is (or wraps) a *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
