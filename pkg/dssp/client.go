package dssp

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/egelke/dssp-client/pkg/message"
	"github.com/egelke/dssp-client/pkg/report"
	"github.com/egelke/dssp-client/pkg/security"
	"github.com/egelke/dssp-client/pkg/transport"
)

// ErrMissingDocument is returned when an operation is called without a
// document.
var ErrMissingDocument = errors.New("document is required")

// Document is an opaque byte payload with its MIME type. The client
// copies the content into the request envelope without retaining it.
type Document struct {
	MimeType string
	Content  []byte
}

// Client is the DSS-P protocol session engine. Its configuration is
// immutable after construction, so concurrent calls on one instance do
// not interfere: each operation gets its own channel and its own
// randomized nonce and document id.
type Client struct {
	address       string
	creds         *security.Credentials
	signatureType string
	certStore     security.CertificateStore
	chainBuilder  security.ChainBuilder
	rootCAs       *x509.CertPool
	timeout       time.Duration
	logger        *zap.Logger

	newChannel func(*transport.Config) (transport.Channel, error)
}

// Option configures a Client.
type Option func(*Client)

// WithCredentials sets the application credentials. Exactly one mode may
// be active; Validate runs at construction.
func WithCredentials(creds *security.Credentials) Option {
	return func(c *Client) { c.creds = creds }
}

// WithSignatureType overrides the service's default signature format.
func WithSignatureType(signatureType string) Option {
	return func(c *Client) { c.signatureType = signatureType }
}

// WithCertificateStore sets the store used to resolve certificate
// lookups for the ClientCertByLookup mode.
func WithCertificateStore(store security.CertificateStore) Option {
	return func(c *Client) { c.certStore = store }
}

// WithChainBuilder sets the trust-store capability used to complete
// two-step signer chains.
func WithChainBuilder(builder security.ChainBuilder) Option {
	return func(c *Client) { c.chainBuilder = builder }
}

// WithRootCAs overrides the trust anchors for the service's TLS
// certificate.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(c *Client) { c.rootCAs = pool }
}

// WithTimeout bounds each round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// WithLogger sets the structured logger. Default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a DSS-P client for the given endpoint address.
func NewClient(address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, fmt.Errorf("endpoint address is required")
	}

	c := &Client{
		address:    address,
		logger:     zap.NewNop(),
		newChannel: transport.NewChannel,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.creds.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// channel constructs a fresh invoker for the configured credentials.
func (c *Client) channel() (transport.Channel, error) {
	return c.newChannel(&transport.Config{
		Address:          c.address,
		Mode:             transport.ModeFor(c.creds),
		Credentials:      c.creds,
		CertificateStore: c.certStore,
		RootCAs:          c.rootCAs,
		Timeout:          c.timeout,
	})
}

// sessionChannel constructs a fresh invoker bound to an async session.
func (c *Client) sessionChannel(session *AsyncSession) (transport.Channel, error) {
	return c.newChannel(&transport.Config{
		Address: c.address,
		Mode:    transport.ModeSecureConversation,
		Session: &transport.SessionToken{
			KeyID:     session.KeyID,
			Key:       session.KeyValue,
			Reference: session.KeyReference,
		},
		RootCAs: c.rootCAs,
		Timeout: c.timeout,
	})
}

// UploadDocument starts the asynchronous browser signing flow. The
// returned session resumes the flow once the signer completed the
// browser leg.
func (c *Client) UploadDocument(doc *Document) (*AsyncSession, error) {
	return c.UploadDocumentContext(context.Background(), doc)
}

// UploadDocumentContext is UploadDocument with a caller context.
func (c *Client) UploadDocumentContext(ctx context.Context, doc *Document) (*AsyncSession, error) {
	if doc == nil || len(doc.Content) == 0 {
		return nil, ErrMissingDocument
	}

	req, nonce, err := message.NewAsyncSignRequest(doc.Content, doc.MimeType, c.signatureType)
	if err != nil {
		return nil, err
	}

	ch, err := c.channel()
	if err != nil {
		return nil, err
	}

	resp, err := ch.SignContext(ctx, req)
	if err != nil {
		return nil, err
	}

	// Pending is the expected async state, not a failure
	if err := checkResult(resp.Result, message.ResultMajorPending, ""); err != nil {
		return nil, err
	}

	session, err := extractAsyncSession(resp, nonce)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("async upload accepted",
		zap.String("serverId", session.ServerID),
		zap.Time("expiresOn", session.ExpiresOn))
	return session, nil
}

// DownloadSignedDocument collects the signed document of an async
// session. The session is consumed: a second download on the same
// session fails with ErrSessionConsumed.
func (c *Client) DownloadSignedDocument(session *AsyncSession) (*Document, error) {
	return c.DownloadSignedDocumentContext(context.Background(), session)
}

// DownloadSignedDocumentContext is DownloadSignedDocument with a caller
// context.
func (c *Client) DownloadSignedDocumentContext(ctx context.Context, session *AsyncSession) (*Document, error) {
	if err := session.validate(); err != nil {
		return nil, err
	}
	if err := session.consume(); err != nil {
		return nil, err
	}

	ch, err := c.sessionChannel(session)
	if err != nil {
		return nil, err
	}

	resp, err := ch.PendingContext(ctx, message.NewPendingRequest(session.ServerID, session.KeyReference))
	if err != nil {
		return nil, err
	}

	if err := checkResult(resp.Result, message.ResultMajorSuccess, ""); err != nil {
		return nil, err
	}

	c.logger.Debug("async download completed", zap.String("serverId", session.ServerID))
	return extractSignedDocument(resp)
}

// Seal applies an organizational eSeal in a single synchronous call. The
// service selects the sealing key from the authenticated identity.
func (c *Client) Seal(doc *Document) (*Document, error) {
	return c.SealContext(context.Background(), doc)
}

// SealContext is Seal with a caller context.
func (c *Client) SealContext(ctx context.Context, doc *Document) (*Document, error) {
	if doc == nil || len(doc.Content) == 0 {
		return nil, ErrMissingDocument
	}

	req, err := message.NewSealRequest(doc.Content, doc.MimeType, c.signatureType)
	if err != nil {
		return nil, err
	}

	ch, err := c.channel()
	if err != nil {
		return nil, err
	}

	resp, err := ch.SignContext(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := checkResult(resp.Result, message.ResultMajorSuccess, ""); err != nil {
		return nil, err
	}

	c.logger.Debug("seal completed")
	return extractSignedDocument(resp)
}

// UploadDocumentTwoStep starts the two-step local signing flow: the
// service retains the document and returns the hash the caller signs
// with the chain's private key.
func (c *Client) UploadDocumentTwoStep(doc *Document, chain *security.SignerChain) (*TwoStepSession, error) {
	return c.UploadDocumentTwoStepContext(context.Background(), doc, chain)
}

// UploadDocumentTwoStepContext is UploadDocumentTwoStep with a caller
// context.
func (c *Client) UploadDocumentTwoStepContext(ctx context.Context, doc *Document, chain *security.SignerChain) (*TwoStepSession, error) {
	if doc == nil || len(doc.Content) == 0 {
		return nil, ErrMissingDocument
	}
	// Precondition failures never reach the network
	if err := chain.Validate(); err != nil {
		return nil, err
	}

	certs, err := chain.Complete(c.chainBuilder)
	if err != nil {
		return nil, err
	}

	req, err := message.NewTwoStepSignRequest(doc.Content, doc.MimeType, c.signatureType, certs)
	if err != nil {
		return nil, err
	}

	ch, err := c.channel()
	if err != nil {
		return nil, err
	}

	resp, err := ch.SignContext(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := checkResult(resp.Result, message.ResultMajorSuccess, message.ResultMinorDocumentHash); err != nil {
		return nil, err
	}

	session, err := extractTwoStepSession(resp, chain)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("two-step upload accepted",
		zap.String("correlationId", session.CorrelationID),
		zap.String("digestAlgorithm", session.DigestAlgorithm))
	return session, nil
}

// DownloadSignedDocumentTwoStep finishes the two-step flow with the
// locally computed signature value.
func (c *Client) DownloadSignedDocumentTwoStep(session *TwoStepSession, signatureValue []byte) (*Document, error) {
	return c.DownloadSignedDocumentTwoStepContext(context.Background(), session, signatureValue)
}

// DownloadSignedDocumentTwoStepContext is DownloadSignedDocumentTwoStep
// with a caller context.
func (c *Client) DownloadSignedDocumentTwoStepContext(ctx context.Context, session *TwoStepSession, signatureValue []byte) (*Document, error) {
	if err := session.validate(); err != nil {
		return nil, err
	}

	req, err := message.NewTwoStepDownloadRequest(session.CorrelationID, signatureValue)
	if err != nil {
		return nil, err
	}

	ch, err := c.channel()
	if err != nil {
		return nil, err
	}

	resp, err := ch.SignContext(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := checkResult(resp.Result, message.ResultMajorSuccess, ""); err != nil {
		return nil, err
	}

	c.logger.Debug("two-step download completed", zap.String("correlationId", session.CorrelationID))
	return extractSignedDocument(resp)
}

// Verify requests a verification report for a signed document. A
// document without any signature yields (nil, nil): explicit absence,
// not an error.
func (c *Client) Verify(doc *Document) (*report.SecurityInfo, error) {
	return c.VerifyContext(context.Background(), doc)
}

// VerifyContext is Verify with a caller context.
func (c *Client) VerifyContext(ctx context.Context, doc *Document) (*report.SecurityInfo, error) {
	if doc == nil || len(doc.Content) == 0 {
		return nil, ErrMissingDocument
	}

	req, err := message.NewVerifyRequest(doc.Content, doc.MimeType)
	if err != nil {
		return nil, err
	}

	ch, err := c.channel()
	if err != nil {
		return nil, err
	}

	resp, err := ch.VerifyContext(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := checkResult(resp.Result, message.ResultMajorSuccess, ""); err != nil {
		return nil, err
	}

	if resp.OptionalOutputs == nil || resp.OptionalOutputs.VerificationReport == nil {
		c.logger.Debug("verify found no signature")
		return nil, nil
	}

	info, err := report.Map(resp.OptionalOutputs.VerificationReport, resp.OptionalOutputs.TimeStampRenewal)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("verify completed", zap.Int("signatures", len(info.Signatures)))
	return info, nil
}

// extractAsyncSession materializes the session state from the upload
// response: the service correlation id, the issued token and the key
// derived from both parties' entropy.
func extractAsyncSession(resp *message.SignResponse, clientNonce []byte) (*AsyncSession, error) {
	oo := resp.OptionalOutputs
	if oo == nil || oo.ResponseID == "" {
		return nil, fmt.Errorf("async response carries no response id")
	}
	coll := oo.RequestSecurityTokenResponseCollection
	if coll == nil || len(coll.RequestSecurityTokenResponse) == 0 {
		return nil, fmt.Errorf("async response carries no security token response")
	}

	rstr := coll.RequestSecurityTokenResponse[0]
	if rstr.RequestedSecurityToken == nil || rstr.RequestedSecurityToken.SecurityContextToken == nil {
		return nil, fmt.Errorf("async response carries no security context token")
	}
	if rstr.Entropy == nil || rstr.Entropy.BinarySecret == nil {
		return nil, fmt.Errorf("async response carries no server entropy")
	}
	if rstr.RequestedUnattachedReference == nil || len(rstr.RequestedUnattachedReference.TokenReference) == 0 {
		return nil, fmt.Errorf("async response carries no token reference")
	}

	serverEntropy, err := base64.StdEncoding.DecodeString(rstr.Entropy.BinarySecret.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid server entropy: %w", err)
	}

	keySize := rstr.KeySize
	if keySize == 0 {
		keySize = message.SessionKeySize
	}
	key, err := security.DeriveKey(clientNonce, serverEntropy, keySize)
	if err != nil {
		return nil, err
	}

	session := &AsyncSession{
		ServerID:     oo.ResponseID,
		KeyID:        rstr.RequestedSecurityToken.SecurityContextToken.Identifier,
		KeyValue:     key,
		KeyReference: rstr.RequestedUnattachedReference.TokenReference,
	}

	if rstr.Lifetime != nil && rstr.Lifetime.Expires != "" {
		expires, err := time.Parse(time.RFC3339, rstr.Lifetime.Expires)
		if err != nil {
			return nil, fmt.Errorf("invalid token lifetime %q: %w", rstr.Lifetime.Expires, err)
		}
		session.ExpiresOn = expires.UTC()
	}

	return session, nil
}

// extractTwoStepSession captures the correlation id and document hash,
// binding the originally supplied chain into the session.
func extractTwoStepSession(resp *message.SignResponse, chain *security.SignerChain) (*TwoStepSession, error) {
	oo := resp.OptionalOutputs
	if oo == nil || oo.CorrelationID == "" {
		return nil, fmt.Errorf("two-step response carries no correlation id")
	}
	if oo.DocumentHash == nil || oo.DocumentHash.DigestValue == "" {
		return nil, fmt.Errorf("two-step response carries no document hash")
	}

	digest, err := base64.StdEncoding.DecodeString(oo.DocumentHash.DigestValue)
	if err != nil {
		return nil, fmt.Errorf("invalid document hash: %w", err)
	}

	session := &TwoStepSession{
		Chain:         chain,
		CorrelationID: oo.CorrelationID,
		DigestValue:   digest,
	}
	if oo.DocumentHash.DigestMethod != nil {
		session.DigestAlgorithm = oo.DocumentHash.DigestMethod.Algorithm
	}
	return session, nil
}

// extractSignedDocument pulls the single embedded document out of a
// success response. Zero or multiple documents violate the service
// contract and fail loudly.
func extractSignedDocument(resp *message.SignResponse) (*Document, error) {
	oo := resp.OptionalOutputs
	if oo == nil || oo.DocumentWithSignature == nil || len(oo.DocumentWithSignature.Document) == 0 {
		return nil, fmt.Errorf("response carries no signed document")
	}
	if n := len(oo.DocumentWithSignature.Document); n != 1 {
		return nil, fmt.Errorf("response carries %d signed documents, want exactly 1", n)
	}

	doc := oo.DocumentWithSignature.Document[0]
	if doc.Base64Data == nil {
		return nil, fmt.Errorf("signed document carries no content")
	}
	content, err := base64.StdEncoding.DecodeString(doc.Base64Data.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid signed document encoding: %w", err)
	}

	return &Document{
		MimeType: doc.Base64Data.MimeType,
		Content:  content,
	}, nil
}
