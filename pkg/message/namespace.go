package message

// Namespace constants for DSS-P and the WS-* stack it is layered on
const (
	NsSOAPEnv = "http://www.w3.org/2003/05/soap-envelope"
	NsDSS     = "urn:oasis:names:tc:dss:1.0:core:schema"
	NsAsync   = "urn:oasis:names:tc:dss:1.0:profiles:asynchronousprocessing:1.0"
	NsVR      = "urn:oasis:names:tc:dss-x:1.0:profiles:verificationreport:schema#"
	NsWST     = "http://docs.oasis-open.org/ws-sx/ws-trust/200512"
	NsWSSC    = "http://docs.oasis-open.org/ws-sx/ws-secureconversation/200512"
	NsWSSE    = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	NsWSU     = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"
	NsWSA     = "http://www.w3.org/2005/08/addressing"
	NsDS      = "http://www.w3.org/2000/09/xmldsig#"
)

// Profile URIs selecting the DSS-P flavor of a request
const (
	ProfileDSSP     = "urn:be:e-contract:dssp:1.0"
	ProfileESeal    = "urn:be:e-contract:dssp:eseal:1.0"
	ProfileAsync    = "urn:oasis:names:tc:dss:1.0:profiles:asynchronousprocessing"
	ProfileLocalSig = "urn:oasis:names:tc:dss-x:1.0:profiles:localsig"
)

// Structured result codes returned by the service
const (
	ResultMajorSuccess                 = "urn:oasis:names:tc:dss:1.0:resultmajor:Success"
	ResultMajorRequesterError          = "urn:oasis:names:tc:dss:1.0:resultmajor:RequesterError"
	ResultMajorResponderError          = "urn:oasis:names:tc:dss:1.0:resultmajor:ResponderError"
	ResultMajorInsufficientInformation = "urn:oasis:names:tc:dss:1.0:resultmajor:InsufficientInformation"

	// ResultMajorPending is the expected (non-failure) state after an
	// asynchronous upload: the document awaits the signer in the browser.
	ResultMajorPending = "urn:oasis:names:tc:dss:1.0:profiles:asynchronousprocessing:resultmajor:Pending"

	// ResultMinorDocumentHash is the expected minor code after a two-step
	// upload: the service retained the document and returned its digest.
	ResultMinorDocumentHash = "urn:oasis:names:tc:dss:1.0:resultminor:documentHash"
)

// WS-Trust constants for the SecureConversation handshake
const (
	TokenTypeSCT          = "http://docs.oasis-open.org/ws-sx/ws-secureconversation/200512/sct"
	RequestTypeIssue      = "http://docs.oasis-open.org/ws-sx/ws-trust/200512/Issue"
	RequestTypeCancel     = "http://docs.oasis-open.org/ws-sx/ws-trust/200512/Cancel"
	ComputedKeyPSHA1      = "http://docs.oasis-open.org/ws-sx/ws-trust/200512/CK/PSHA1"
	BinarySecretTypeNonce = "http://docs.oasis-open.org/ws-sx/ws-trust/200512/Nonce"
)

// SOAP actions for the DSS-P port type
const (
	ActionSign    = "urn:be:e-contract:dssp:1.0:sign"
	ActionPending = "urn:be:e-contract:dssp:1.0:pendingRequest"
	ActionVerify  = "urn:be:e-contract:dssp:1.0:verify"
)
