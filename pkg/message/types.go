// Package message provides DSS-P message structures and request builders.
package message

import "encoding/xml"

// SignRequest is the dss:SignRequest element used by the asynchronous,
// eSeal and two-step flows. The Profile attribute selects the flavor.
type SignRequest struct {
	XMLName        xml.Name        `xml:"urn:oasis:names:tc:dss:1.0:core:schema SignRequest"`
	Profile        string          `xml:"Profile,attr,omitempty"`
	OptionalInputs *OptionalInputs `xml:"OptionalInputs,omitempty"`
	InputDocuments *InputDocuments `xml:"InputDocuments,omitempty"`
}

// PendingRequest is the async profile's follow-up request that collects
// the signed document after the browser leg completed.
type PendingRequest struct {
	XMLName        xml.Name        `xml:"urn:oasis:names:tc:dss:1.0:profiles:asynchronousprocessing:1.0 PendingRequest"`
	Profile        string          `xml:"Profile,attr,omitempty"`
	OptionalInputs *OptionalInputs `xml:"OptionalInputs,omitempty"`
}

// VerifyRequest is the dss:VerifyRequest element.
type VerifyRequest struct {
	XMLName        xml.Name        `xml:"urn:oasis:names:tc:dss:1.0:core:schema VerifyRequest"`
	Profile        string          `xml:"Profile,attr,omitempty"`
	OptionalInputs *OptionalInputs `xml:"OptionalInputs,omitempty"`
	InputDocuments *InputDocuments `xml:"InputDocuments,omitempty"`
}

// SignResponse is returned for sign, seal, two-step and pending requests.
type SignResponse struct {
	XMLName         xml.Name         `xml:"urn:oasis:names:tc:dss:1.0:core:schema SignResponse"`
	Profile         string           `xml:"Profile,attr,omitempty"`
	Result          *Result          `xml:"Result"`
	OptionalOutputs *OptionalOutputs `xml:"OptionalOutputs,omitempty"`
}

// VerifyResponse wraps the verification outcome. The schema reuses the
// dss:ResponseBaseType, so the shape matches SignResponse.
type VerifyResponse struct {
	XMLName         xml.Name         `xml:"urn:oasis:names:tc:dss:1.0:core:schema VerifyResponse"`
	Profile         string           `xml:"Profile,attr,omitempty"`
	Result          *Result          `xml:"Result"`
	OptionalOutputs *OptionalOutputs `xml:"OptionalOutputs,omitempty"`
}

// Result is the major/minor/message triple every response carries.
type Result struct {
	ResultMajor   string `xml:"ResultMajor"`
	ResultMinor   string `xml:"ResultMinor,omitempty"`
	ResultMessage string `xml:"ResultMessage,omitempty"`
}

// InputDocuments wraps the documents handed to the service.
type InputDocuments struct {
	Document []Document `xml:"Document"`
}

// Document is an opaque byte payload with its MIME type. Content is
// carried base64-encoded in the Base64Data element.
type Document struct {
	ID         string      `xml:"ID,attr,omitempty"`
	Base64Data *Base64Data `xml:"Base64Data,omitempty"`
}

// Base64Data holds base64-encoded document content.
type Base64Data struct {
	MimeType string `xml:"MimeType,attr,omitempty"`
	Value    string `xml:",chardata"`
}

// OptionalInputs collects the per-flow protocol options.
type OptionalInputs struct {
	AdditionalProfile []string `xml:"AdditionalProfile,omitempty"`

	// SignatureType overrides the service default signature format.
	SignatureType string `xml:"SignatureType,omitempty"`

	// ServicePolicy identifies the signing policy applied by the service.
	ServicePolicy string `xml:"ServicePolicy,omitempty"`

	SignaturePlacement *SignaturePlacement `xml:"SignaturePlacement,omitempty"`

	// ResponseID correlates a PendingRequest with the async upload.
	ResponseID string `xml:"urn:oasis:names:tc:dss:1.0:profiles:asynchronousprocessing:1.0 ResponseID,omitempty"`

	RequestSecurityToken *RequestSecurityToken `xml:"http://docs.oasis-open.org/ws-sx/ws-trust/200512 RequestSecurityToken,omitempty"`

	// KeySelector carries the signer chain for the two-step flow.
	KeySelector *KeySelector `xml:"KeySelector,omitempty"`

	// RequestDocumentHash asks the service to compute and return the
	// document digest while retaining the request state (two-step flow).
	RequestDocumentHash *RequestDocumentHash `xml:"urn:oasis:names:tc:dss-x:1.0:profiles:localsig RequestDocumentHash,omitempty"`

	// SignatureObject carries the locally computed signature value on the
	// two-step download.
	SignatureObject *SignatureObject `xml:"SignatureObject,omitempty"`

	// CorrelationID echoes the two-step upload correlation on download.
	CorrelationID string `xml:"urn:oasis:names:tc:dss-x:1.0:profiles:localsig CorrelationID,omitempty"`

	ReturnVerificationReport *ReturnVerificationReport `xml:"urn:oasis:names:tc:dss-x:1.0:profiles:verificationreport:schema# ReturnVerificationReport,omitempty"`
}

// SignaturePlacement instructs the service to embed an enveloped
// signature in the referenced input document.
type SignaturePlacement struct {
	WhichDocument            string `xml:"WhichDocument,attr"`
	CreateEnvelopedSignature bool   `xml:"CreateEnvelopedSignature,attr"`
}

// KeySelector identifies the signing key by its certificate chain,
// leaf first.
type KeySelector struct {
	KeyInfo KeyInfo `xml:"http://www.w3.org/2000/09/xmldsig# KeyInfo"`
}

// KeyInfo is the ds:KeyInfo subset DSS-P uses.
type KeyInfo struct {
	X509Data X509Data `xml:"X509Data"`
}

// X509Data carries base64 DER certificates.
type X509Data struct {
	X509Certificate []string `xml:"X509Certificate"`
}

// RequestDocumentHash is the localsig profile option for the two-step
// upload. MaintainRequestState makes the service hold the document until
// the signature value arrives.
type RequestDocumentHash struct {
	MaintainRequestState bool `xml:"MaintainRequestState,attr"`
}

// SignatureObject carries a detached signature value.
type SignatureObject struct {
	Base64Signature *Base64Signature `xml:"Base64Signature,omitempty"`
}

// Base64Signature is a base64-encoded raw signature value.
type Base64Signature struct {
	Type  string `xml:"Type,attr,omitempty"`
	Value string `xml:",chardata"`
}

// ReturnVerificationReport requests the verification report profile
// output on a VerifyRequest.
type ReturnVerificationReport struct {
	IncludeVerifier          bool   `xml:"IncludeVerifier"`
	IncludeCertificateValues bool   `xml:"IncludeCertificateValues"`
	ReportDetailLevel        string `xml:"ReportDetailLevel,omitempty"`
}

// RequestSecurityToken is the WS-Trust request embedded in the async
// upload (Issue, with client entropy) and the pending request (Cancel).
type RequestSecurityToken struct {
	TokenType    string        `xml:"TokenType,omitempty"`
	RequestType  string        `xml:"RequestType,omitempty"`
	Entropy      *Entropy      `xml:"Entropy,omitempty"`
	KeySize      int           `xml:"KeySize,omitempty"`
	CancelTarget *CancelTarget `xml:"CancelTarget,omitempty"`
}

// Entropy carries one party's key material contribution.
type Entropy struct {
	BinarySecret *BinarySecret `xml:"BinarySecret,omitempty"`
}

// BinarySecret is base64-encoded entropy with its WS-Trust type URI.
type BinarySecret struct {
	Type  string `xml:"Type,attr,omitempty"`
	Value string `xml:",chardata"`
}

// CancelTarget closes a security context token. The token reference is
// the opaque XML the service issued, echoed back unmodified.
type CancelTarget struct {
	TokenReference []byte `xml:",innerxml"`
}

// OptionalOutputs collects the per-flow protocol outputs.
type OptionalOutputs struct {
	// ResponseID is the server correlation id of an async upload.
	ResponseID string `xml:"urn:oasis:names:tc:dss:1.0:profiles:asynchronousprocessing:1.0 ResponseID,omitempty"`

	RequestSecurityTokenResponseCollection *RSTRCollection `xml:"http://docs.oasis-open.org/ws-sx/ws-trust/200512 RequestSecurityTokenResponseCollection,omitempty"`

	DocumentWithSignature *DocumentWithSignature `xml:"DocumentWithSignature,omitempty"`

	// DocumentHash is the digest the caller signs locally (two-step).
	DocumentHash *DocumentHash `xml:"urn:oasis:names:tc:dss-x:1.0:profiles:localsig DocumentHash,omitempty"`

	// CorrelationID identifies the retained two-step request state.
	CorrelationID string `xml:"urn:oasis:names:tc:dss-x:1.0:profiles:localsig CorrelationID,omitempty"`

	VerificationReport *VerificationReport `xml:"urn:oasis:names:tc:dss-x:1.0:profiles:verificationreport:schema# VerificationReport,omitempty"`

	// TimeStampRenewal bounds the validity of the signature timestamps.
	TimeStampRenewal *TimeStampRenewal `xml:"urn:be:e-contract:dssp:1.0 TimeStampRenewal,omitempty"`
}

// RSTRCollection wraps the security token responses of an async upload.
type RSTRCollection struct {
	RequestSecurityTokenResponse []RequestSecurityTokenResponse `xml:"RequestSecurityTokenResponse"`
}

// RequestSecurityTokenResponse is the service side of the WS-Trust
// handshake: its entropy, the issued token and its lifetime.
type RequestSecurityTokenResponse struct {
	TokenType                    string                        `xml:"TokenType,omitempty"`
	RequestedSecurityToken       *RequestedSecurityToken       `xml:"RequestedSecurityToken,omitempty"`
	Entropy                      *Entropy                      `xml:"Entropy,omitempty"`
	KeySize                      int                           `xml:"KeySize,omitempty"`
	ComputedKeyAlgorithm         string                        `xml:"ComputedKeyAlgorithm,omitempty"`
	Lifetime                     *Lifetime                     `xml:"Lifetime,omitempty"`
	RequestedUnattachedReference *RequestedUnattachedReference `xml:"RequestedUnattachedReference,omitempty"`
}

// RequestedSecurityToken holds the issued SecurityContextToken.
type RequestedSecurityToken struct {
	SecurityContextToken *SecurityContextToken `xml:"http://docs.oasis-open.org/ws-sx/ws-secureconversation/200512 SecurityContextToken,omitempty"`
}

// SecurityContextToken is the WS-SecureConversation token identifying
// the derived-key session.
type SecurityContextToken struct {
	ID         string `xml:"http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd Id,attr,omitempty"`
	Identifier string `xml:"Identifier"`
}

// Lifetime bounds the issued token's validity.
type Lifetime struct {
	Created string `xml:"http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd Created,omitempty"`
	Expires string `xml:"http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd Expires,omitempty"`
}

// RequestedUnattachedReference is the opaque token reference echoed back
// verbatim when the session is resumed or cancelled.
type RequestedUnattachedReference struct {
	TokenReference []byte `xml:",innerxml"`
}

// DocumentWithSignature wraps the signed or sealed document.
type DocumentWithSignature struct {
	Document []Document `xml:"Document"`
}

// DocumentHash is the digest of the retained document in the two-step
// flow.
type DocumentHash struct {
	DigestMethod *DigestMethod `xml:"http://www.w3.org/2000/09/xmldsig# DigestMethod,omitempty"`
	DigestValue  string        `xml:"http://www.w3.org/2000/09/xmldsig# DigestValue,omitempty"`
}

// DigestMethod identifies the digest algorithm by URI.
type DigestMethod struct {
	Algorithm string `xml:"Algorithm,attr"`
}

// TimeStampRenewal tells the caller before when the signature timestamps
// must be renewed. Absent means unbounded.
type TimeStampRenewal struct {
	Before string `xml:"Before,attr,omitempty"`
}

// VerificationReport is the verification report profile output: one
// IndividualReport per signature, in signature order.
type VerificationReport struct {
	IndividualReport []IndividualReport `xml:"IndividualReport"`
}

// IndividualReport is the service's assessment of a single signature.
type IndividualReport struct {
	Result  *Result        `xml:"Result"`
	Details *ReportDetails `xml:"Details,omitempty"`
}

// ReportDetails wraps the detailed signature report.
type ReportDetails struct {
	DetailedSignatureReport *DetailedSignatureReport `xml:"DetailedSignatureReport,omitempty"`
}

// DetailedSignatureReport carries certificate and property details for
// one signature.
type DetailedSignatureReport struct {
	CertificatePathValidity *CertificatePathValidity `xml:"CertificatePathValidity,omitempty"`
	Properties              *SignatureProperties     `xml:"Properties,omitempty"`
}

// CertificatePathValidity reports on the signer's certificate chain.
type CertificatePathValidity struct {
	PathValidityDetail *PathValidityDetail `xml:"PathValidityDetail,omitempty"`
}

// PathValidityDetail lists the per-certificate validity entries, signer
// certificate first.
type PathValidityDetail struct {
	CertificateValidity []CertificateValidity `xml:"CertificateValidity"`
}

// CertificateValidity reports on one certificate of the chain.
// CertificateValue is the base64 DER encoding.
type CertificateValidity struct {
	Subject          string `xml:"Subject,omitempty"`
	CertificateValue string `xml:"CertificateValue,omitempty"`
}

// SignatureProperties wraps the signed signature properties.
type SignatureProperties struct {
	SignedSignatureProperties *SignedSignatureProperties `xml:"SignedSignatureProperties,omitempty"`
}

// SignedSignatureProperties holds the XAdES properties the signer
// claimed: signing time, production place and roles.
type SignedSignatureProperties struct {
	SigningTime string      `xml:"SigningTime,omitempty"`
	Location    string      `xml:"Location,omitempty"`
	SignerRole  *SignerRole `xml:"SignerRole,omitempty"`
}

// SignerRole wraps the claimed roles list.
type SignerRole struct {
	ClaimedRoles *ClaimedRoles `xml:"ClaimedRoles,omitempty"`
}

// ClaimedRoles is the ordered list of roles the signer claimed.
type ClaimedRoles struct {
	ClaimedRole []string `xml:"ClaimedRole"`
}
