package domain

import (
	"fmt"
	"strings"
)

// ProviderID identifies one of the fixed upstream SMS gateways.
type ProviderID string

const (
	// ProviderStandard is the form-encoded gateway with free-text responses (API 1).
	ProviderStandard ProviderID = "api1"
	// ProviderSMPP is the SMPP/HTTP bridge that reports through status codes (API 2).
	ProviderSMPP ProviderID = "api2"
)

func (p ProviderID) String() string { return string(p) }

func (p ProviderID) IsValid() bool {
	switch p {
	case ProviderStandard, ProviderSMPP:
		return true
	}
	return false
}

func ParseProviderID(s string) (ProviderID, error) {
	id := ProviderID(strings.ToLower(strings.TrimSpace(s)))
	if !id.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
	return id, nil
}

// Outcome is the normalized verdict of a single dispatch.
type Outcome string

const (
	OutcomeSuccess        Outcome = "SUCCESS"
	OutcomeProviderError  Outcome = "PROVIDER_ERROR"
	OutcomeTransportError Outcome = "TRANSPORT_ERROR"
)

func (o Outcome) String() string { return string(o) }

func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeSuccess, OutcomeProviderError, OutcomeTransportError:
		return true
	}
	return false
}

// SendRequest carries the operator-supplied fields of one send attempt.
// Sender and Gateway are only read by providers that accept them.
type SendRequest struct {
	Provider  ProviderID
	Recipient string
	Sender    string
	Message   string
	Gateway   string
}

// UpstreamResponse is the raw provider reply. Body is never trimmed.
type UpstreamResponse struct {
	StatusCode int
	Body       string
}

// DispatchResult is what the operator sees after a dispatch.
type DispatchResult struct {
	Outcome  Outcome    `json:"outcome"`
	Message  string     `json:"message"`
	Provider ProviderID `json:"provider"`
}

func (r DispatchResult) Succeeded() bool { return r.Outcome == OutcomeSuccess }

// Severity maps the outcome to the alert style used by the dashboard.
func (r DispatchResult) Severity() string {
	if r.Succeeded() {
		return "success"
	}
	return "danger"
}

func NewSuccessResult(provider ProviderID, body string) DispatchResult {
	return DispatchResult{Outcome: OutcomeSuccess, Message: "Success: " + body, Provider: provider}
}

func NewProviderErrorResult(provider ProviderID, message string) DispatchResult {
	return DispatchResult{Outcome: OutcomeProviderError, Message: message, Provider: provider}
}

func NewTransportErrorResult(provider ProviderID, cause error) DispatchResult {
	description := "unknown transport failure"
	if cause != nil {
		description = cause.Error()
	}
	return DispatchResult{
		Outcome:  OutcomeTransportError,
		Message:  "System Error: " + description,
		Provider: provider,
	}
}
