// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Kind is the closed set of failure classes the poller knows how to handle.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindAPI
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "ConfigurationError"
	case KindAPI:
		return "ApiError"
	case KindResponse:
		return "ResponseError"
	default:
		return "UnknownError"
	}
}

// Causes wrapped by KindResponse errors.
var (
	ErrMissingKey    = errors.New("missing key")
	ErrWrongType     = errors.New("wrong type")
	ErrUnknownStatus = errors.New("unknown homework status")
)

// Error is the single error type returned by the domain and its adapters.
type Error struct {
	Kind       Kind
	Op         string
	Endpoint   string
	Params     url.Values
	StatusCode int
	Key        string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}
	if e.Endpoint != "" {
		fmt.Fprintf(&b, " (endpoint=%s", e.Endpoint)
		if len(e.Params) > 0 {
			fmt.Fprintf(&b, " params=%s", e.Params.Encode())
		}
		if e.StatusCode != 0 {
			fmt.Fprintf(&b, " status=%d", e.StatusCode)
		}
		b.WriteString(")")
	}
	if e.Key != "" {
		fmt.Fprintf(&b, " key=%q", e.Key)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var he *Error
	if errors.As(err, &he) {
		return he.Kind
	}
	return KindUnknown
}

func responseError(op, key string, cause error, format string, args ...any) *Error {
	return &Error{
		Kind: KindResponse,
		Op:   op,
		Key:  key,
		Err:  fmt.Errorf("%w: "+format, append([]any{cause}, args...)...),
	}
}
