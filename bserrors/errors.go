// Package bserrors provides the sentinel error taxonomy shared by the
// bigint, reduction, recoding, point, formula and scalarmult packages, plus
// a parameterized wrapper for attaching debugging context to them.
//
// The taxonomy mirrors spec.md's status codes exactly: ok (nil error), oom,
// invalid-input, buffer-too-small, overflow, max-iterations. Callers use
// errors.Is against the sentinels below; nothing here ever exits the
// process — translating an error into a protocol-visible status byte is the
// command package's job, not this one's.
package bserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors. Wrap with Wrap/Wrapf to attach parameters; compare with
// errors.Is, which follows the wrap chain.
var (
	ErrOOM             = errors.New("bigint: allocation failure")
	ErrInvalidInput    = errors.New("bigint: invalid input")
	ErrBufferTooSmall  = errors.New("bigint: destination buffer too small")
	ErrOverflow        = errors.New("bigint: result overflows requested width")
	ErrMaxIterations   = errors.New("bigint: exceeded maximum iteration count")
	ErrUnsupportedWidth = errors.New("recoding: unsupported digit width")
)

// WithParams is an error that additionally carries a map of named
// parameters useful for post-mortem debugging (which modulus, which
// digit index, ...), following the wrap-with-parameters shape of
// Bandersnatch's bandersnatchErrors package, simplified to a single
// concrete type since the engine does not need bandersnatchErrors'
// interface-heavy extensibility.
type WithParams struct {
	cause  error
	detail string
	params map[string]any
}

func (e *WithParams) Error() string {
	if len(e.params) == 0 {
		return e.detail
	}
	return fmt.Sprintf("%s (%v)", e.detail, e.params)
}

func (e *WithParams) Unwrap() error { return e.cause }

// Param returns the named parameter and whether it was set.
func (e *WithParams) Param(name string) (any, bool) {
	v, ok := e.params[name]
	return v, ok
}

// Wrap attaches params to cause, producing a *WithParams whose Error()
// message is detail plus the parameter map, and whose Unwrap() is cause
// (so errors.Is(wrapped, bserrors.ErrInvalidInput) keeps working).
func Wrap(cause error, detail string, params map[string]any) error {
	if cause == nil {
		return nil
	}
	return &WithParams{cause: cause, detail: detail, params: params}
}

// Wrapf is Wrap with a formatted detail string and no parameters.
func Wrapf(cause error, format string, args ...any) error {
	return Wrap(cause, fmt.Sprintf(format, args...), nil)
}
