package hass

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrorKind classifies a request failure for retry decisions.
type ErrorKind int

const (
	Transient ErrorKind = iota // Worth one more attempt
	Permanent                  // Fail immediately
	Unknown                    // Unclassified — treated as permanent
)

func (k ErrorKind) String() string {
	switch k {
	case Transient:
		return "TRANSIENT"
	case Permanent:
		return "PERMANENT"
	default:
		return "UNKNOWN"
	}
}

// transientKeywords in a transport error indicate temporary failures.
var transientKeywords = []string{
	"timeout",
	"connection refused",
	"connection reset",
	"temporary",
	"unavailable",
	"no such host",
}

// ClassifyStatus classifies an HTTP response status code.
func ClassifyStatus(code int) ErrorKind {
	switch {
	case code == http.StatusRequestTimeout || code == http.StatusTooManyRequests:
		return Transient
	case code >= 500:
		return Transient
	case code >= 400:
		return Permanent
	default:
		return Unknown
	}
}

// ClassifyErr classifies a transport-level error. Context cancellation is
// permanent: the caller gave up, retrying would only delay the exit.
func ClassifyErr(err error) ErrorKind {
	if err == nil {
		return Unknown
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Permanent
	}

	lower := strings.ToLower(err.Error())
	for _, kw := range transientKeywords {
		if strings.Contains(lower, kw) {
			return Transient
		}
	}
	return Unknown
}
