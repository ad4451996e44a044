package provider

import (
	"github.com/kursadbilgin/sms-console/internal/domain"
)

// Provider is one upstream SMS gateway variant. The set of variants is closed;
// see service.DispatchService for the selection switch.
type Provider interface {
	ID() domain.ProviderID
	Endpoint() string
	// BuildRequest returns the form fields to POST. Operator fields are
	// forwarded as-is; the upstream is the authority on their validity.
	BuildRequest(req domain.SendRequest) map[string]string
	Classify(resp domain.UpstreamResponse) domain.DispatchResult
}
