package provider

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/kursadbilgin/sms-console/internal/domain"
)

// TransportError means the gateway could not be reached or did not answer
// in time. No upstream response exists for it.
type TransportError struct {
	Provider domain.ProviderID
	Cause    error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 3)
	parts = append(parts, "transport error")
	if e.Provider != "" {
		parts = append(parts, "provider="+e.Provider.String())
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// IsTimeout reports whether err was caused by the request deadline.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
