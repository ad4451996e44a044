package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kursadbilgin/sms-console/internal/domain"
	"github.com/kursadbilgin/sms-console/internal/observability"
	"github.com/kursadbilgin/sms-console/internal/provider"
	"go.uber.org/zap"
)

// FormPoster performs a single form POST against a gateway endpoint.
type FormPoster interface {
	PostForm(ctx context.Context, providerID domain.ProviderID, endpoint string, fields map[string]string) (domain.UpstreamResponse, error)
}

// DispatchService sends one SMS through the selected gateway and turns the
// reply into a DispatchResult. It holds no mutable state.
type DispatchService struct {
	standard *provider.StandardProvider
	smpp     *provider.SMPPProvider
	client   FormPoster
	logger   *zap.Logger
	metrics  *observability.Metrics
	now      func() time.Time
}

func NewDispatchService(
	standard *provider.StandardProvider,
	smpp *provider.SMPPProvider,
	client FormPoster,
	logger *zap.Logger,
	metrics *observability.Metrics,
) (*DispatchService, error) {
	if standard == nil || smpp == nil {
		return nil, fmt.Errorf("both providers are required")
	}
	if client == nil {
		return nil, fmt.Errorf("provider client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DispatchService{
		standard: standard,
		smpp:     smpp,
		client:   client,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}, nil
}

// Dispatch performs exactly one upstream call. The returned error is non-nil
// only when req names a provider outside the known set; every gateway
// outcome, transport failures included, is reported through the result.
func (s *DispatchService) Dispatch(ctx context.Context, req domain.SendRequest) (domain.DispatchResult, error) {
	p, err := s.variant(req.Provider)
	if err != nil {
		return domain.DispatchResult{}, err
	}

	logger := observability.WithContextLogger(s.logger, ctx).With(
		zap.String("provider", p.ID().String()),
		observability.RecipientField(req.Recipient),
	)

	payload := p.BuildRequest(req)

	start := s.now()
	resp, err := s.client.PostForm(ctx, p.ID(), p.Endpoint(), payload)
	elapsed := s.now().Sub(start)

	if err != nil {
		result := s.transportFailure(p.ID(), err)
		s.metrics.ObserveDispatch(p.ID().String(), result.Outcome.String(), elapsed)
		logger.Warn("sms dispatch transport failure",
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return result, nil
	}

	result := p.Classify(resp)
	s.metrics.ObserveDispatch(p.ID().String(), result.Outcome.String(), elapsed)

	fields := []zap.Field{
		zap.String("outcome", result.Outcome.String()),
		zap.Int("statusCode", resp.StatusCode),
		zap.Duration("duration", elapsed),
	}
	if result.Succeeded() {
		logger.Info("sms dispatched", fields...)
	} else {
		logger.Warn("sms rejected by provider", append(fields, zap.String("body", resp.Body))...)
	}

	return result, nil
}

// variant is the only place that maps an identifier to a gateway. Adding a
// provider means adding a case here; there is no fallback.
func (s *DispatchService) variant(id domain.ProviderID) (provider.Provider, error) {
	switch id {
	case domain.ProviderStandard:
		return s.standard, nil
	case domain.ProviderSMPP:
		return s.smpp, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, id)
}

func (s *DispatchService) transportFailure(id domain.ProviderID, err error) domain.DispatchResult {
	reason := "network"
	if provider.IsTimeout(err) {
		reason = "timeout"
	}
	s.metrics.IncTransportError(id.String(), reason)

	cause := err
	var transportErr *provider.TransportError
	if errors.As(err, &transportErr) && transportErr.Cause != nil {
		cause = transportErr.Cause
	}

	return domain.NewTransportErrorResult(id, cause)
}
