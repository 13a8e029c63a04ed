package security

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCA(t *testing.T) (*x509.Certificate, *ecdsa.PrivateKey) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "Test Root CA"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	return cert, key
}

func newTestLeaf(t *testing.T, ca *x509.Certificate, caKey *ecdsa.PrivateKey) (*x509.Certificate, *ecdsa.PrivateKey) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: "Test Signer"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, ca, &key.PublicKey, caKey)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	return cert, key
}

func TestSignerChainValidate(t *testing.T) {
	assert.ErrorIs(t, (&SignerChain{}).Validate(), ErrEmptyChain)
	assert.ErrorIs(t, (*SignerChain)(nil).Validate(), ErrEmptyChain)

	ca, caKey := newTestCA(t)
	leaf, _ := newTestLeaf(t, ca, caKey)
	assert.ErrorIs(t, (&SignerChain{Certificates: []*x509.Certificate{leaf}}).Validate(), ErrNoPrivateKey)

	_, key := newTestLeaf(t, ca, caKey)
	chain := &SignerChain{Certificates: []*x509.Certificate{leaf}, PrivateKey: key}
	assert.NoError(t, chain.Validate())
}

func TestSignerChainComplete_MultipleVerbatim(t *testing.T) {
	ca, caKey := newTestCA(t)
	leaf, key := newTestLeaf(t, ca, caKey)

	chain := &SignerChain{
		Certificates: []*x509.Certificate{leaf, ca},
		PrivateKey:   key,
	}

	// No builder needed: the supplied chain is embedded as-is, leaf first
	certs, err := chain.Complete(nil)
	require.NoError(t, err)
	require.Len(t, certs, 2)
	assert.Equal(t, leaf, certs[0])
	assert.Equal(t, ca, certs[1])
}

func TestSignerChainComplete_SelfSigned(t *testing.T) {
	ca, caKey := newTestCA(t)

	chain := &SignerChain{
		Certificates: []*x509.Certificate{ca},
		PrivateKey:   caKey,
	}

	certs, err := chain.Complete(nil)
	require.NoError(t, err)
	require.Len(t, certs, 1)
	assert.Equal(t, ca, certs[0])
}

func TestSignerChainComplete_SingleLeafDerivesChain(t *testing.T) {
	ca, caKey := newTestCA(t)
	leaf, key := newTestLeaf(t, ca, caKey)

	roots := x509.NewCertPool()
	roots.AddCert(ca)
	builder := &TrustStoreChainBuilder{Roots: roots}

	chain := &SignerChain{
		Certificates: []*x509.Certificate{leaf},
		PrivateKey:   key,
	}

	certs, err := chain.Complete(builder)
	require.NoError(t, err)
	require.Len(t, certs, 2)
	assert.Equal(t, leaf.Raw, certs[0].Raw)
	assert.Equal(t, ca.Raw, certs[1].Raw)
}

func TestSignerChainComplete_UntrustedLeafFails(t *testing.T) {
	ca, caKey := newTestCA(t)
	leaf, key := newTestLeaf(t, ca, caKey)

	// Empty pool: issuer lookup cannot succeed
	builder := &TrustStoreChainBuilder{Roots: x509.NewCertPool()}

	chain := &SignerChain{
		Certificates: []*x509.Certificate{leaf},
		PrivateKey:   key,
	}

	_, err := chain.Complete(builder)
	assert.Error(t, err)
}
