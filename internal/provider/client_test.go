package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kursadbilgin/sms-console/internal/domain"
)

func TestClientPostFormSendsFormEncodedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
			t.Errorf("Content-Type = %q, want form encoding", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error = %v", err)
		}
		if got := r.PostForm.Get("gsm"); got != "+905551112233" {
			t.Errorf("gsm = %q", got)
		}
		if got := r.PostForm.Get("smstext"); got != "hello world" {
			t.Errorf("smstext = %q", got)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("  0 OK\n"))
	}))
	defer server.Close()

	resp, err := NewClient().PostForm(context.Background(), domain.ProviderStandard, server.URL, map[string]string{
		"gsm":     "+905551112233",
		"smstext": "hello world",
	})
	if err != nil {
		t.Fatalf("PostForm() error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("StatusCode = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if resp.Body != "  0 OK\n" {
		t.Fatalf("Body = %q, want raw untrimmed body", resp.Body)
	}
}

func TestClientPostFormTimeoutIsTransportError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-release:
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	defer close(release)

	client := resty.New()
	client.SetTimeout(30 * time.Millisecond)
	c, err := NewClientWithResty(client)
	if err != nil {
		t.Fatalf("NewClientWithResty() error = %v", err)
	}

	_, err = c.PostForm(context.Background(), domain.ProviderSMPP, server.URL, map[string]string{"to": "1"})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if transportErr.Provider != domain.ProviderSMPP {
		t.Fatalf("Provider = %s, want %s", transportErr.Provider, domain.ProviderSMPP)
	}
	if !IsTimeout(err) {
		t.Fatalf("IsTimeout() = false, want true (err=%v)", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("upstream calls = %d, want 1", got)
	}
}

func TestClientPostFormConnectionRefused(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	_, err := NewClient().PostForm(context.Background(), domain.ProviderStandard, endpoint, nil)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if IsTimeout(err) {
		t.Fatal("connection refused should not be reported as timeout")
	}
}

func TestClientPostFormInvalidEndpoint(t *testing.T) {
	t.Parallel()

	_, err := NewClient().PostForm(context.Background(), domain.ProviderStandard, "::not-a-url", nil)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
}

func TestNewClientWithRestyRequiresClient(t *testing.T) {
	t.Parallel()

	if _, err := NewClientWithResty(nil); err == nil {
		t.Fatal("expected error for nil resty client")
	}
}

func TestNewClientUsesFixedTimeoutWithoutRetries(t *testing.T) {
	t.Parallel()

	client := NewClient()

	if got := client.client.GetClient().Timeout; got != 10*time.Second {
		t.Fatalf("timeout = %s, want 10s", got)
	}
	if client.client.RetryCount != 0 {
		t.Fatalf("RetryCount = %d, want 0", client.client.RetryCount)
	}
}

func TestNewClientWithRestyDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		timeout     time.Duration
		retries     int
		wantTimeout time.Duration
	}{
		{name: "zero timeout gets default", timeout: 0, retries: 3, wantTimeout: DefaultTimeout},
		{name: "explicit timeout kept", timeout: 2 * time.Second, retries: 5, wantTimeout: 2 * time.Second},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rc := resty.New().SetRetryCount(tt.retries)
			if tt.timeout > 0 {
				rc.SetTimeout(tt.timeout)
			}

			client, err := NewClientWithResty(rc)
			if err != nil {
				t.Fatalf("NewClientWithResty() error = %v", err)
			}
			if got := client.client.GetClient().Timeout; got != tt.wantTimeout {
				t.Fatalf("timeout = %s, want %s", got, tt.wantTimeout)
			}
			if client.client.RetryCount != 0 {
				t.Fatalf("RetryCount = %d, want 0", client.client.RetryCount)
			}
		})
	}
}

func TestClientPostFormDoesNotRetryServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("busy"))
	}))
	defer server.Close()

	client, err := NewClientWithResty(resty.New().SetRetryCount(3))
	if err != nil {
		t.Fatalf("NewClientWithResty() error = %v", err)
	}

	resp, err := client.PostForm(context.Background(), domain.ProviderSMPP, server.URL, map[string]string{"to": "1"})
	if err != nil {
		t.Fatalf("PostForm() error = %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable || resp.Body != "busy" {
		t.Fatalf("response = %+v", resp)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("upstream calls = %d, want 1", got)
	}
}
