// Package common defines the failure classes shared by the catalog, cart,
// inventory and AR layers. Callers match classes with errors.Is; the
// Error() text of a classified error is always a short message fit to
// show a user.
package common

import "errors"

var (
	// ErrValidation blocks a submission locally; nothing reaches the network.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is a 404 from the collaborator. Terminal for a view.
	ErrNotFound = errors.New("not found")

	// ErrTransport is a network failure or non-2xx response. Retryable by
	// re-invoking the user action; nothing retries automatically.
	ErrTransport = errors.New("transport error")

	// ErrGuardRejected is a sold-item mutation stopped before any request.
	ErrGuardRejected = errors.New("guard rejected")

	// ErrPermission is a denied device permission. Recoverable.
	ErrPermission = errors.New("permission denied")
)

// Error is a classified failure. Msg is user-facing; Err is the underlying
// cause, kept for logs and errors.Is/As. An empty Msg means the caller
// picks the wording (see Message).
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Kind.Error() + ": " + e.Err.Error()
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Validation returns an ErrValidation with the given message.
func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

// NotFound returns an ErrNotFound with the given message.
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

// Transport returns an ErrTransport with the given message and cause.
func Transport(msg string, cause error) error {
	return &Error{Kind: ErrTransport, Msg: msg, Err: cause}
}

// GuardRejected returns an ErrGuardRejected with the given message.
func GuardRejected(msg string) error {
	return &Error{Kind: ErrGuardRejected, Msg: msg}
}

// Permission returns an ErrPermission with the given message and cause.
func Permission(msg string, cause error) error {
	return &Error{Kind: ErrPermission, Msg: msg, Err: cause}
}

// Message returns the user-facing text of err. Unclassified errors
// collapse to fallback so no protocol detail leaks into the UI.
func Message(err error, fallback string) string {
	var ce *Error
	if errors.As(err, &ce) && ce.Msg != "" {
		return ce.Msg
	}
	return fallback
}
