package placement

import "fmt"

// ErrorKind classifies a command rejection. Kinds are stable and part of
// the command surface; reasons are human-readable and are not.
type ErrorKind string

const (
	KindUnauthenticated   ErrorKind = "unauthenticated"
	KindPermissionDenied  ErrorKind = "permission-denied"
	KindResourceExhausted ErrorKind = "resource-exhausted"
	KindInvalidArgument   ErrorKind = "invalid-argument"
	KindAlreadyExists     ErrorKind = "already-exists"
)

// CommandError is a terminal, synchronous rejection of a command. None of
// these are retried by the pipeline.
type CommandError struct {
	Kind   ErrorKind
	Reason string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func newError(kind ErrorKind, format string, args ...interface{}) *CommandError {
	return &CommandError{
		Kind:   kind,
		Reason: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the error kind, or "" for errors that are not command
// rejections (e.g. transient store failures).
func KindOf(err error) ErrorKind {
	if cmdErr, ok := err.(*CommandError); ok {
		return cmdErr.Kind
	}
	return ""
}

func IsUnauthenticated(err error) bool {
	return KindOf(err) == KindUnauthenticated
}

func IsPermissionDenied(err error) bool {
	return KindOf(err) == KindPermissionDenied
}

func IsResourceExhausted(err error) bool {
	return KindOf(err) == KindResourceExhausted
}

func IsInvalidArgument(err error) bool {
	return KindOf(err) == KindInvalidArgument
}

func IsAlreadyExists(err error) bool {
	return KindOf(err) == KindAlreadyExists
}
