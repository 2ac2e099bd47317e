package rotation

import (
	"errors"
	"fmt"
	"net/http"
)

// statusError is implemented by provider errors that carry an HTTP status
// and a provider-reported status string (see gemini.StatusError).
type statusError interface {
	error
	HTTPStatus() int
	ProviderStatus() string
}

// invalidRequestError is implemented by client-side validation errors
// (see gemini.RequestError). The request itself is bad, so no credential
// or model rotation can correct it.
type invalidRequestError interface {
	error
	InvalidRequest() bool
}

// transientStatuses are provider status strings that indicate a
// rotation-correctable condition.
var transientStatuses = map[string]bool{
	"RESOURCE_EXHAUSTED": true,
	"UNAVAILABLE":        true,
	"DEADLINE_EXCEEDED":  true,
	"INTERNAL":           true,
}

// Transient reports whether an attempt error is rotation-correctable:
// rate limits, server-side errors and transport failures. Everything else
// (malformed audio, invalid credentials) is permanent and surfaces
// immediately.
func Transient(err error) bool {
	var ire invalidRequestError
	if errors.As(err, &ire) && ire.InvalidRequest() {
		return false
	}

	var se statusError
	if errors.As(err, &se) {
		code := se.HTTPStatus()
		if code >= 500 || code == http.StatusTooManyRequests {
			return true
		}
		return transientStatuses[se.ProviderStatus()]
	}
	// Transport-level failures (timeouts, resets) have no status to
	// classify; a different key or model may be routed elsewhere, so
	// they stay inside the retry loop.
	return true
}

// ErrorClass names the failure class of an attempt error, for logs and
// the exhaustion report.
func ErrorClass(err error) string {
	if err == nil {
		return ""
	}
	var ire invalidRequestError
	if errors.As(err, &ire) && ire.InvalidRequest() {
		return "invalid_request"
	}
	var se statusError
	if errors.As(err, &se) {
		if st := se.ProviderStatus(); st != "" {
			return st
		}
		return fmt.Sprintf("http_%d", se.HTTPStatus())
	}
	return "transport"
}

// ExhaustedError reports that every (credential, model) pair was attempted
// within a single request without success.
type ExhaustedError struct {
	Attempts  int
	LastClass string
	Last      error
}

func (e *ExhaustedError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("transcription failed after %d attempts, last error class %s: %v",
			e.Attempts, e.LastClass, e.Last)
	}
	return fmt.Sprintf("transcription failed after %d attempts", e.Attempts)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }
