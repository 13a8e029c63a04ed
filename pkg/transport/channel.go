// Package transport implements the secured SOAP request/response channel
// for the DSS-P port type, one independent channel per authentication mode.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/egelke/dssp-client/pkg/message"
	"github.com/egelke/dssp-client/pkg/security"
)

// Mode is the authentication mode of a secured channel.
type Mode int

const (
	ModeAnonymous Mode = iota
	ModeClientCert
	ModeClientCertByLookup
	ModeUsernamePassword
	ModeSecureConversation
)

func (m Mode) String() string {
	switch m {
	case ModeAnonymous:
		return "anonymous"
	case ModeClientCert:
		return "client-cert"
	case ModeClientCertByLookup:
		return "client-cert-by-lookup"
	case ModeUsernamePassword:
		return "username-password"
	case ModeSecureConversation:
		return "secure-conversation"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ModeFor selects the authentication mode for the configured application
// credentials. Evaluated in fixed precedence: anonymous when nothing is
// configured, then inline certificate, then store lookup, then
// username/password. SecureConversation is never selected from
// credentials; it is bound to an established session.
func ModeFor(creds *security.Credentials) Mode {
	switch {
	case creds.Anonymous():
		return ModeAnonymous
	case creds != nil && creds.Certificate != nil:
		return ModeClientCert
	case creds != nil && creds.CertificateLookup != nil:
		return ModeClientCertByLookup
	default:
		return ModeUsernamePassword
	}
}

// SessionToken is the key material binding a SecureConversation channel
// to an established async session.
type SessionToken struct {
	// KeyID is the security context token identifier.
	KeyID string
	// Key is the derived symmetric key.
	Key []byte
	// Reference is the opaque unattached token reference, echoed
	// unmodified in the security header.
	Reference []byte
}

// Channel is the request/response invoker for the DSS-P port type. Every
// operation exists in a blocking and a context-aware form with identical
// behavior.
type Channel interface {
	Sign(req *message.SignRequest) (*message.SignResponse, error)
	SignContext(ctx context.Context, req *message.SignRequest) (*message.SignResponse, error)

	Pending(req *message.PendingRequest) (*message.SignResponse, error)
	PendingContext(ctx context.Context, req *message.PendingRequest) (*message.SignResponse, error)

	Verify(req *message.VerifyRequest) (*message.VerifyResponse, error)
	VerifyContext(ctx context.Context, req *message.VerifyRequest) (*message.VerifyResponse, error)
}

// Config describes one secured channel. Channels never share mutable
// state: every NewChannel call constructs an independent invoker so switching
// modes cannot bleed credentials across calls.
type Config struct {
	// Address is the service endpoint URL.
	Address string

	// Mode selects the authentication mode.
	Mode Mode

	// Credentials backs the ClientCert, ClientCertByLookup and
	// UsernamePassword modes.
	Credentials *security.Credentials

	// CertificateStore resolves CertificateLookup descriptors for the
	// ClientCertByLookup mode.
	CertificateStore security.CertificateStore

	// Session backs the SecureConversation mode.
	Session *SessionToken

	// RootCAs overrides the trust anchors for the service's TLS
	// certificate. Nil means system roots.
	RootCAs *x509.CertPool

	// Timeout bounds the whole round trip. Zero means 30s.
	Timeout time.Duration
}

// NewChannel constructs an independent invoker bound to the configured
// authentication mode.
func NewChannel(cfg *Config) (Channel, error) {
	if cfg == nil || cfg.Address == "" {
		return nil, fmt.Errorf("channel address is required")
	}

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    cfg.RootCAs,
	}

	switch cfg.Mode {
	case ModeClientCert:
		if cfg.Credentials == nil || cfg.Credentials.Certificate == nil {
			return nil, fmt.Errorf("client certificate is required for %s mode", cfg.Mode)
		}
		tlsConfig.Certificates = []tls.Certificate{*cfg.Credentials.Certificate}

	case ModeClientCertByLookup:
		if cfg.Credentials == nil || cfg.Credentials.CertificateLookup == nil {
			return nil, fmt.Errorf("certificate lookup is required for %s mode", cfg.Mode)
		}
		if cfg.CertificateStore == nil {
			return nil, fmt.Errorf("certificate store is required for %s mode", cfg.Mode)
		}
		cert, err := cfg.CertificateStore.Find(cfg.Credentials.CertificateLookup)
		if err != nil {
			return nil, fmt.Errorf("certificate lookup failed: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{*cert}

	case ModeUsernamePassword:
		if cfg.Credentials == nil || cfg.Credentials.Username == "" || cfg.Credentials.Password == "" {
			return nil, fmt.Errorf("username and password are required for %s mode", cfg.Mode)
		}

	case ModeSecureConversation:
		if cfg.Session == nil || len(cfg.Session.Key) == 0 {
			return nil, fmt.Errorf("session token is required for %s mode", cfg.Mode)
		}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &soapChannel{
		address: cfg.Address,
		mode:    cfg.Mode,
		creds:   cfg.Credentials,
		session: cfg.Session,
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig:     tlsConfig,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
			Timeout: timeout,
		},
	}, nil
}

// soapChannel is the SOAP 1.2 over HTTP invoker.
type soapChannel struct {
	address string
	mode    Mode
	creds   *security.Credentials
	session *SessionToken
	client  *http.Client
}

func (c *soapChannel) Sign(req *message.SignRequest) (*message.SignResponse, error) {
	return c.SignContext(context.Background(), req)
}

func (c *soapChannel) SignContext(ctx context.Context, req *message.SignRequest) (*message.SignResponse, error) {
	var resp message.SignResponse
	if err := c.call(ctx, message.ActionSign, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *soapChannel) Pending(req *message.PendingRequest) (*message.SignResponse, error) {
	return c.PendingContext(context.Background(), req)
}

func (c *soapChannel) PendingContext(ctx context.Context, req *message.PendingRequest) (*message.SignResponse, error) {
	var resp message.SignResponse
	if err := c.call(ctx, message.ActionPending, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *soapChannel) Verify(req *message.VerifyRequest) (*message.VerifyResponse, error) {
	return c.VerifyContext(context.Background(), req)
}

func (c *soapChannel) VerifyContext(ctx context.Context, req *message.VerifyRequest) (*message.VerifyResponse, error) {
	var resp message.VerifyResponse
	if err := c.call(ctx, message.ActionVerify, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// call performs one request/response exchange: serialize, envelope,
// attach the security header, POST, fault check, extract the body.
func (c *soapChannel) call(ctx context.Context, action string, payload, out interface{}) error {
	body, err := xml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize request: %w", err)
	}

	envelope, err := buildEnvelope(c.mode, c.creds, c.session, action, c.address, body)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.address, bytes.NewReader(envelope))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", fmt.Sprintf(`application/soap+xml; charset=utf-8; action="%s"`, action))
	httpReq.Header.Set("User-Agent", "dssp-client/1.0")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		// Transport failures propagate unmodified
		return err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK && httpResp.StatusCode != http.StatusInternalServerError {
		return fmt.Errorf("unexpected status code %d: %s", httpResp.StatusCode, string(respBody))
	}

	inner, err := extractBody(respBody)
	if err != nil {
		return err
	}

	if err := xml.Unmarshal(inner, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
