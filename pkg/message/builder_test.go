package message

import (
	"crypto/x509"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAsyncSignRequest(t *testing.T) {
	req, nonce, err := NewAsyncSignRequest([]byte("%PDF-1.4"), "application/pdf", "")
	require.NoError(t, err)

	assert.Equal(t, ProfileDSSP, req.Profile)
	assert.Equal(t, []string{ProfileAsync}, req.OptionalInputs.AdditionalProfile)
	assert.Len(t, nonce, EntropySize)

	rst := req.OptionalInputs.RequestSecurityToken
	require.NotNil(t, rst)
	assert.Equal(t, TokenTypeSCT, rst.TokenType)
	assert.Equal(t, RequestTypeIssue, rst.RequestType)
	assert.Equal(t, SessionKeySize, rst.KeySize)

	// Entropy element must carry the returned nonce
	require.NotNil(t, rst.Entropy)
	decoded, err := base64.StdEncoding.DecodeString(rst.Entropy.BinarySecret.Value)
	require.NoError(t, err)
	assert.Equal(t, nonce, decoded)
}

func TestNewAsyncSignRequest_FreshEntropyAndDocumentID(t *testing.T) {
	req1, nonce1, err := NewAsyncSignRequest([]byte("a"), "text/plain", "")
	require.NoError(t, err)
	req2, nonce2, err := NewAsyncSignRequest([]byte("a"), "text/plain", "")
	require.NoError(t, err)

	assert.NotEqual(t, nonce1, nonce2)
	assert.NotEqual(t, req1.InputDocuments.Document[0].ID, req2.InputDocuments.Document[0].ID)
}

func TestNewAsyncSignRequest_SignaturePlacement(t *testing.T) {
	req, _, err := NewAsyncSignRequest([]byte("a"), "text/plain", "")
	require.NoError(t, err)

	docID := req.InputDocuments.Document[0].ID
	assert.True(t, strings.HasPrefix(docID, "doc-"))

	placement := req.OptionalInputs.SignaturePlacement
	require.NotNil(t, placement)
	assert.Equal(t, docID, placement.WhichDocument)
	assert.True(t, placement.CreateEnvelopedSignature)
}

func TestNewAsyncSignRequest_SignatureTypeOverride(t *testing.T) {
	req, _, err := NewAsyncSignRequest([]byte("a"), "text/plain", "urn:example:xades-t")
	require.NoError(t, err)
	assert.Equal(t, "urn:example:xades-t", req.OptionalInputs.SignatureType)

	// Empty means service default
	req, _, err = NewAsyncSignRequest([]byte("a"), "text/plain", "")
	require.NoError(t, err)
	assert.Empty(t, req.OptionalInputs.SignatureType)
}

func TestNewAsyncSignRequest_MissingDocument(t *testing.T) {
	_, _, err := NewAsyncSignRequest(nil, "application/pdf", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "document content is required")
}

func TestNewSealRequest(t *testing.T) {
	req, err := NewSealRequest([]byte("%PDF-1.4"), "application/pdf", "")
	require.NoError(t, err)

	assert.Equal(t, ProfileESeal, req.Profile)
	// Sealing is synchronous: no entropy, no session request
	assert.Nil(t, req.OptionalInputs.RequestSecurityToken)
	assert.Empty(t, req.OptionalInputs.AdditionalProfile)

	docID := req.InputDocuments.Document[0].ID
	assert.Equal(t, docID, req.OptionalInputs.SignaturePlacement.WhichDocument)
}

func TestNewTwoStepSignRequest(t *testing.T) {
	chain := []*x509.Certificate{
		{Raw: []byte{0x30, 0x82, 0x01}},
		{Raw: []byte{0x30, 0x82, 0x02}},
	}

	req, err := NewTwoStepSignRequest([]byte("%PDF-1.4"), "application/pdf", "", chain)
	require.NoError(t, err)

	assert.Equal(t, []string{ProfileLocalSig}, req.OptionalInputs.AdditionalProfile)
	require.NotNil(t, req.OptionalInputs.RequestDocumentHash)
	assert.True(t, req.OptionalInputs.RequestDocumentHash.MaintainRequestState)

	certs := req.OptionalInputs.KeySelector.KeyInfo.X509Data.X509Certificate
	require.Len(t, certs, 2)
	assert.Equal(t, base64.StdEncoding.EncodeToString(chain[0].Raw), certs[0])
	assert.Equal(t, base64.StdEncoding.EncodeToString(chain[1].Raw), certs[1])
}

func TestNewTwoStepSignRequest_MissingChain(t *testing.T) {
	_, err := NewTwoStepSignRequest([]byte("a"), "text/plain", "", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "certificate chain is required")
}

func TestNewPendingRequest(t *testing.T) {
	tokenRef := []byte(`<wsse:SecurityTokenReference><wsse:Reference URI="uuid:abc"/></wsse:SecurityTokenReference>`)

	req := NewPendingRequest("server-1234", tokenRef)

	assert.Equal(t, ProfileDSSP, req.Profile)
	assert.Equal(t, []string{ProfileAsync}, req.OptionalInputs.AdditionalProfile)
	assert.Equal(t, "server-1234", req.OptionalInputs.ResponseID)

	rst := req.OptionalInputs.RequestSecurityToken
	require.NotNil(t, rst)
	assert.Equal(t, RequestTypeCancel, rst.RequestType)
	// The token reference must be echoed byte for byte
	assert.Equal(t, tokenRef, rst.CancelTarget.TokenReference)
}

func TestNewTwoStepDownloadRequest(t *testing.T) {
	sig := []byte{0xde, 0xad, 0xbe, 0xef}

	req, err := NewTwoStepDownloadRequest("corr-42", sig)
	require.NoError(t, err)

	assert.Equal(t, "corr-42", req.OptionalInputs.CorrelationID)
	assert.Equal(t, base64.StdEncoding.EncodeToString(sig),
		req.OptionalInputs.SignatureObject.Base64Signature.Value)
	assert.Nil(t, req.InputDocuments)
}

func TestNewTwoStepDownloadRequest_Preconditions(t *testing.T) {
	_, err := NewTwoStepDownloadRequest("", []byte{1})
	assert.Error(t, err)

	_, err = NewTwoStepDownloadRequest("corr-42", nil)
	assert.Error(t, err)
}

func TestNewVerifyRequest(t *testing.T) {
	req, err := NewVerifyRequest([]byte("<signed/>"), "text/xml")
	require.NoError(t, err)

	assert.Equal(t, ProfileDSSP, req.Profile)
	rvr := req.OptionalInputs.ReturnVerificationReport
	require.NotNil(t, rvr)
	assert.True(t, rvr.IncludeVerifier)
	assert.True(t, rvr.IncludeCertificateValues)

	doc := req.InputDocuments.Document[0]
	assert.Equal(t, "text/xml", doc.Base64Data.MimeType)
	decoded, err := base64.StdEncoding.DecodeString(doc.Base64Data.Value)
	require.NoError(t, err)
	assert.Equal(t, []byte("<signed/>"), decoded)
}
