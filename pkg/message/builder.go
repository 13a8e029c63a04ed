package message

import (
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// EntropySize is the number of random client entropy bytes contributed
// to the WS-Trust handshake on an async upload.
const EntropySize = 32

// SessionKeySize is the requested derived key size in bits.
const SessionKeySize = 256

// NewAsyncSignRequest builds the upload request of the asynchronous
// browser flow. It returns the freshly generated client entropy, which
// the caller needs later to derive the session key from the service's
// entropy. signatureType may be empty to take the service default.
func NewAsyncSignRequest(content []byte, mimeType, signatureType string) (*SignRequest, []byte, error) {
	if len(content) == 0 {
		return nil, nil, fmt.Errorf("document content is required")
	}

	nonce := make([]byte, EntropySize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate client entropy: %w", err)
	}

	docID := generateDocumentID()

	req := &SignRequest{
		Profile: ProfileDSSP,
		OptionalInputs: &OptionalInputs{
			AdditionalProfile: []string{ProfileAsync},
			SignatureType:     signatureType,
			SignaturePlacement: &SignaturePlacement{
				WhichDocument:            docID,
				CreateEnvelopedSignature: true,
			},
			RequestSecurityToken: &RequestSecurityToken{
				TokenType:   TokenTypeSCT,
				RequestType: RequestTypeIssue,
				Entropy: &Entropy{
					BinarySecret: &BinarySecret{
						Type:  BinarySecretTypeNonce,
						Value: base64.StdEncoding.EncodeToString(nonce),
					},
				},
				KeySize: SessionKeySize,
			},
		},
		InputDocuments: newInputDocuments(docID, content, mimeType),
	}

	return req, nonce, nil
}

// NewSealRequest builds the synchronous eSeal request. The service
// selects the sealing key from the caller's authenticated identity, so
// no entropy or session request is attached.
func NewSealRequest(content []byte, mimeType, signatureType string) (*SignRequest, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("document content is required")
	}

	docID := generateDocumentID()

	return &SignRequest{
		Profile: ProfileESeal,
		OptionalInputs: &OptionalInputs{
			SignatureType: signatureType,
			SignaturePlacement: &SignaturePlacement{
				WhichDocument:            docID,
				CreateEnvelopedSignature: true,
			},
		},
		InputDocuments: newInputDocuments(docID, content, mimeType),
	}, nil
}

// NewTwoStepSignRequest builds the upload request of the two-step local
// signing flow. The chain must be complete, leaf first; the service
// retains the document and returns its digest for local signing.
func NewTwoStepSignRequest(content []byte, mimeType, signatureType string, chain []*x509.Certificate) (*SignRequest, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("document content is required")
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("signer certificate chain is required")
	}

	certs := make([]string, len(chain))
	for i, cert := range chain {
		certs[i] = base64.StdEncoding.EncodeToString(cert.Raw)
	}

	docID := generateDocumentID()

	return &SignRequest{
		Profile: ProfileDSSP,
		OptionalInputs: &OptionalInputs{
			AdditionalProfile: []string{ProfileLocalSig},
			SignatureType:     signatureType,
			SignaturePlacement: &SignaturePlacement{
				WhichDocument:            docID,
				CreateEnvelopedSignature: true,
			},
			KeySelector: &KeySelector{
				KeyInfo: KeyInfo{X509Data: X509Data{X509Certificate: certs}},
			},
			RequestDocumentHash: &RequestDocumentHash{MaintainRequestState: true},
		},
		InputDocuments: newInputDocuments(docID, content, mimeType),
	}, nil
}

// NewPendingRequest builds the download request of the asynchronous
// flow. responseID is the server correlation id of the upload and
// tokenReference the opaque unattached token reference, echoed back
// unmodified inside the WS-Trust cancel so the service closes the
// security context.
func NewPendingRequest(responseID string, tokenReference []byte) *PendingRequest {
	return &PendingRequest{
		Profile: ProfileDSSP,
		OptionalInputs: &OptionalInputs{
			AdditionalProfile: []string{ProfileAsync},
			ResponseID:        responseID,
			RequestSecurityToken: &RequestSecurityToken{
				RequestType:  RequestTypeCancel,
				CancelTarget: &CancelTarget{TokenReference: tokenReference},
			},
		},
	}
}

// NewTwoStepDownloadRequest builds the download request of the two-step
// flow, carrying the locally computed signature value and echoing the
// upload's correlation id unmodified.
func NewTwoStepDownloadRequest(correlationID string, signatureValue []byte) (*SignRequest, error) {
	if correlationID == "" {
		return nil, fmt.Errorf("correlation id is required")
	}
	if len(signatureValue) == 0 {
		return nil, fmt.Errorf("signature value is required")
	}

	return &SignRequest{
		Profile: ProfileDSSP,
		OptionalInputs: &OptionalInputs{
			AdditionalProfile: []string{ProfileLocalSig},
			CorrelationID:     correlationID,
			SignatureObject: &SignatureObject{
				Base64Signature: &Base64Signature{
					Value: base64.StdEncoding.EncodeToString(signatureValue),
				},
			},
		},
	}, nil
}

// NewVerifyRequest builds a verification request asking for the full
// verification report with verifier identity and certificate values.
func NewVerifyRequest(content []byte, mimeType string) (*VerifyRequest, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("document content is required")
	}

	return &VerifyRequest{
		Profile: ProfileDSSP,
		OptionalInputs: &OptionalInputs{
			ReturnVerificationReport: &ReturnVerificationReport{
				IncludeVerifier:          true,
				IncludeCertificateValues: true,
			},
		},
		InputDocuments: newInputDocuments(generateDocumentID(), content, mimeType),
	}, nil
}

func newInputDocuments(docID string, content []byte, mimeType string) *InputDocuments {
	return &InputDocuments{
		Document: []Document{{
			ID: docID,
			Base64Data: &Base64Data{
				MimeType: mimeType,
				Value:    base64.StdEncoding.EncodeToString(content),
			},
		}},
	}
}

// generateDocumentID returns a fresh opaque document identifier, unique
// per request so signature placements stay unambiguous.
func generateDocumentID() string {
	return "doc-" + uuid.New().String()
}
