package provider

import (
	"net/http"
	"strings"

	"github.com/kursadbilgin/sms-console/internal/config"
	"github.com/kursadbilgin/sms-console/internal/domain"
)

var _ Provider = (*StandardProvider)(nil)

// StandardProvider talks to the API 1 gateway. Its replies are loosely
// structured text mixing legacy numeric codes and free-form words, so
// Classify accepts several independent success markers:
//
//   - status 200 and the body contains "success" (any case)
//   - the body starts with "0", whatever the status
//   - the body contains "result=0" (any case), whatever the status
//
// The "starts with 0" rule also accepts bodies such as "0 messages failed".
// That is long-standing gateway behaviour and is kept on purpose.
type StandardProvider struct {
	cfg config.StandardProviderConfig
}

func NewStandardProvider(cfg config.StandardProviderConfig) *StandardProvider {
	return &StandardProvider{cfg: cfg}
}

func (p *StandardProvider) ID() domain.ProviderID { return domain.ProviderStandard }

func (p *StandardProvider) Endpoint() string { return p.cfg.URL }

func (p *StandardProvider) BuildRequest(req domain.SendRequest) map[string]string {
	payload := p.cfg.FixedFields()
	payload["smstext"] = req.Message
	payload["gsm"] = req.Recipient
	return payload
}

func (p *StandardProvider) Classify(resp domain.UpstreamResponse) domain.DispatchResult {
	if isStandardSuccess(resp) {
		return domain.NewSuccessResult(p.ID(), resp.Body)
	}
	return domain.NewProviderErrorResult(p.ID(), "Error: "+resp.Body)
}

func isStandardSuccess(resp domain.UpstreamResponse) bool {
	lowered := strings.ToLower(resp.Body)

	if resp.StatusCode == http.StatusOK && strings.Contains(lowered, "success") {
		return true
	}
	if strings.HasPrefix(resp.Body, "0") {
		return true
	}
	return strings.Contains(lowered, "result=0")
}
