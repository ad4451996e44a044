package provider

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kursadbilgin/sms-console/internal/domain"
)

// DefaultTimeout bounds every gateway call. There are no retries.
const DefaultTimeout = 10 * time.Second

// Client submits form-encoded requests to a gateway endpoint.
type Client struct {
	client *resty.Client
}

func NewClient() *Client {
	client := resty.New()
	client.SetTimeout(DefaultTimeout)
	client.SetRetryCount(0)

	c, _ := NewClientWithResty(client)
	return c
}

func NewClientWithResty(client *resty.Client) (*Client, error) {
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}

	if client.GetClient().Timeout == 0 {
		client.SetTimeout(DefaultTimeout)
	}
	client.SetRetryCount(0)

	return &Client{client: client}, nil
}

// PostForm performs exactly one POST. Any failure before a status line is
// received comes back as *TransportError.
func (c *Client) PostForm(ctx context.Context, providerID domain.ProviderID, endpoint string, fields map[string]string) (domain.UpstreamResponse, error) {
	if c == nil || c.client == nil {
		return domain.UpstreamResponse{}, fmt.Errorf("provider client is not initialized")
	}

	trimmedEndpoint := strings.TrimSpace(endpoint)
	if _, err := url.ParseRequestURI(trimmedEndpoint); err != nil {
		return domain.UpstreamResponse{}, &TransportError{
			Provider: providerID,
			Cause:    fmt.Errorf("invalid endpoint: %w", err),
		}
	}

	response, err := c.client.R().
		SetContext(ctx).
		SetFormData(fields).
		Post(trimmedEndpoint)
	if err != nil {
		return domain.UpstreamResponse{}, &TransportError{Provider: providerID, Cause: err}
	}
	if response == nil {
		return domain.UpstreamResponse{}, &TransportError{
			Provider: providerID,
			Cause:    errors.New("provider returned empty response"),
		}
	}

	return domain.UpstreamResponse{
		StatusCode: response.StatusCode(),
		Body:       string(response.Body()),
	}, nil
}
