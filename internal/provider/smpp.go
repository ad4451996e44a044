package provider

import (
	"fmt"
	"net/http"

	"github.com/kursadbilgin/sms-console/internal/config"
	"github.com/kursadbilgin/sms-console/internal/domain"
)

var _ Provider = (*SMPPProvider)(nil)

// SMPPProvider talks to the API 2 SMPP/HTTP bridge. Only the status code
// decides the verdict; the body is echoed for the operator.
type SMPPProvider struct {
	cfg config.SMPPProviderConfig
}

func NewSMPPProvider(cfg config.SMPPProviderConfig) *SMPPProvider {
	return &SMPPProvider{cfg: cfg}
}

func (p *SMPPProvider) ID() domain.ProviderID { return domain.ProviderSMPP }

func (p *SMPPProvider) Endpoint() string { return p.cfg.URL }

func (p *SMPPProvider) BuildRequest(req domain.SendRequest) map[string]string {
	payload := p.cfg.FixedFields()
	payload["to"] = req.Recipient
	payload["from"] = req.Sender
	payload["message"] = req.Message
	payload["gateway"] = req.Gateway
	return payload
}

func (p *SMPPProvider) Classify(resp domain.UpstreamResponse) domain.DispatchResult {
	if resp.StatusCode == http.StatusOK {
		return domain.NewSuccessResult(p.ID(), resp.Body)
	}
	return domain.NewProviderErrorResult(p.ID(), fmt.Sprintf("Error: (%d) %s", resp.StatusCode, resp.Body))
}
