package provider

import (
	"net/http"
	"strings"
	"testing"

	"github.com/kursadbilgin/sms-console/internal/config"
	"github.com/kursadbilgin/sms-console/internal/domain"
)

func testStandardProvider() *StandardProvider {
	return NewStandardProvider(config.StandardProviderConfig{
		URL:      "https://api1.example.com/send",
		Username: "api1-user",
		Password: "api1-pass",
		Sender:   "ACME",
		CD:       "7",
		Int:      "1",
	})
}

func TestStandardProviderBuildRequest(t *testing.T) {
	t.Parallel()

	p := testStandardProvider()
	got := p.BuildRequest(domain.SendRequest{
		Provider:  domain.ProviderStandard,
		Recipient: "+905551112233",
		Sender:    "ignored",
		Message:   "hello",
		Gateway:   "ignored",
	})

	want := map[string]string{
		"username": "api1-user",
		"pass":     "api1-pass",
		"sender":   "ACME",
		"cd":       "7",
		"int":      "1",
		"smstext":  "hello",
		"gsm":      "+905551112233",
	}
	if len(got) != len(want) {
		t.Fatalf("BuildRequest() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("field %s = %q, want %q", k, got[k], v)
		}
	}
	for _, foreign := range []string{"to", "from", "message", "gateway", "password", "message-type"} {
		if _, ok := got[foreign]; ok {
			t.Errorf("field %s must not be sent to the standard gateway", foreign)
		}
	}
}

func TestStandardProviderBuildRequestPassesEmptyFields(t *testing.T) {
	t.Parallel()

	got := testStandardProvider().BuildRequest(domain.SendRequest{Provider: domain.ProviderStandard})

	if v, ok := got["smstext"]; !ok || v != "" {
		t.Fatalf("smstext = %q (present=%v), want empty and present", v, ok)
	}
	if v, ok := got["gsm"]; !ok || v != "" {
		t.Fatalf("gsm = %q (present=%v), want empty and present", v, ok)
	}
}

func TestStandardProviderClassify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		statusCode  int
		body        string
		wantOutcome domain.Outcome
	}{
		{name: "success marker lowercase", statusCode: http.StatusOK, body: "message sent success", wantOutcome: domain.OutcomeSuccess},
		{name: "success marker uppercase", statusCode: http.StatusOK, body: "SUCCESS", wantOutcome: domain.OutcomeSuccess},
		{name: "success marker mixed case", statusCode: http.StatusOK, body: "Status: SuCcEsS id=42", wantOutcome: domain.OutcomeSuccess},
		{name: "success marker needs 200", statusCode: http.StatusInternalServerError, body: "success", wantOutcome: domain.OutcomeProviderError},
		{name: "body exactly zero", statusCode: http.StatusOK, body: "0", wantOutcome: domain.OutcomeSuccess},
		{name: "body starts with zero", statusCode: http.StatusOK, body: "0 OK", wantOutcome: domain.OutcomeSuccess},
		{name: "starts with zero on non-200", statusCode: http.StatusBadGateway, body: "0 OK", wantOutcome: domain.OutcomeSuccess},
		{name: "legacy zero prefix accepts failure text", statusCode: http.StatusOK, body: "0 messages failed", wantOutcome: domain.OutcomeSuccess},
		{name: "leading space is not zero prefix", statusCode: http.StatusOK, body: " 0 OK", wantOutcome: domain.OutcomeProviderError},
		{name: "result=0 anywhere", statusCode: http.StatusOK, body: "id=991&result=0&cost=1", wantOutcome: domain.OutcomeSuccess},
		{name: "result=0 uppercase", statusCode: http.StatusOK, body: "RESULT=0", wantOutcome: domain.OutcomeSuccess},
		{name: "result=0 on non-200", statusCode: http.StatusBadRequest, body: "result=0", wantOutcome: domain.OutcomeSuccess},
		{name: "non-zero result", statusCode: http.StatusOK, body: "result=13", wantOutcome: domain.OutcomeProviderError},
		{name: "failure text", statusCode: http.StatusOK, body: "FAILED: invalid number", wantOutcome: domain.OutcomeProviderError},
		{name: "empty body", statusCode: http.StatusOK, body: "", wantOutcome: domain.OutcomeProviderError},
		{name: "non-200 plain error", statusCode: http.StatusUnauthorized, body: "auth failed", wantOutcome: domain.OutcomeProviderError},
	}

	p := testStandardProvider()
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := p.Classify(domain.UpstreamResponse{StatusCode: tc.statusCode, Body: tc.body})
			if result.Outcome != tc.wantOutcome {
				t.Fatalf("Outcome = %s, want %s", result.Outcome, tc.wantOutcome)
			}
			if result.Provider != domain.ProviderStandard {
				t.Fatalf("Provider = %s, want %s", result.Provider, domain.ProviderStandard)
			}
			if !strings.Contains(result.Message, tc.body) {
				t.Fatalf("Message = %q, should contain raw body %q", result.Message, tc.body)
			}
		})
	}
}

func TestStandardProviderClassifyMessageFormat(t *testing.T) {
	t.Parallel()

	p := testStandardProvider()

	result := p.Classify(domain.UpstreamResponse{StatusCode: http.StatusOK, Body: "Success ID:77"})
	if result.Message != "Success: Success ID:77" {
		t.Fatalf("Message = %q", result.Message)
	}

	result = p.Classify(domain.UpstreamResponse{StatusCode: http.StatusOK, Body: "FAILED: invalid number"})
	if result.Message != "Error: FAILED: invalid number" {
		t.Fatalf("Message = %q", result.Message)
	}
}
