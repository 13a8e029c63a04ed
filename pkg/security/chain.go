package security

import (
	"bytes"
	"crypto"
	"crypto/x509"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyChain is returned when a signer chain has no certificates.
	ErrEmptyChain = errors.New("signer chain is empty")
	// ErrNoPrivateKey is returned when the leaf certificate has no
	// private key capable of signing.
	ErrNoPrivateKey = errors.New("signer chain leaf has no private key")
)

// ChainBuilder is the capability interface for completing a certificate
// chain from a local trust store: given a leaf, it returns the full
// chain leaf first.
type ChainBuilder interface {
	BuildChain(leaf *x509.Certificate) ([]*x509.Certificate, error)
}

// TrustStoreChainBuilder builds chains against configurable certificate
// pools. A nil Roots pool falls back to the system trust store.
type TrustStoreChainBuilder struct {
	Roots         *x509.CertPool
	Intermediates *x509.CertPool
}

// BuildChain completes the chain for the given leaf via issuer lookup.
func (b *TrustStoreChainBuilder) BuildChain(leaf *x509.Certificate) ([]*x509.Certificate, error) {
	chains, err := leaf.Verify(x509.VerifyOptions{
		Roots:         b.Roots,
		Intermediates: b.Intermediates,
		CurrentTime:   time.Now(),
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build certificate chain: %w", err)
	}
	return chains[0], nil
}

// SignerChain is the signing identity for the two-step flow: the
// certificate chain (leaf first) and the leaf's private key, used by the
// caller to sign the document hash locally.
type SignerChain struct {
	Certificates []*x509.Certificate
	PrivateKey   crypto.Signer
}

// Validate checks the two-step preconditions: a non-empty chain whose
// leaf has a signing-capable private key.
func (sc *SignerChain) Validate() error {
	if sc == nil || len(sc.Certificates) == 0 {
		return ErrEmptyChain
	}
	if sc.PrivateKey == nil {
		return ErrNoPrivateKey
	}
	return nil
}

// Complete returns the full chain to embed in the request. Multiple
// supplied certificates are taken verbatim, leaf first. A single
// self-signed certificate stands alone; a single non-self-signed leaf is
// completed through the chain builder.
func (sc *SignerChain) Complete(builder ChainBuilder) ([]*x509.Certificate, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	if len(sc.Certificates) > 1 {
		return sc.Certificates, nil
	}

	leaf := sc.Certificates[0]
	if isSelfSigned(leaf) {
		return sc.Certificates, nil
	}

	if builder == nil {
		builder = &TrustStoreChainBuilder{}
	}
	return builder.BuildChain(leaf)
}

func isSelfSigned(cert *x509.Certificate) bool {
	return bytes.Equal(cert.RawSubject, cert.RawIssuer)
}
