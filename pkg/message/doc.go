// Copyright (c) 2025 Egelke BVBA
// SPDX-License-Identifier: BSD-2-Clause

/*
Package message provides DSS-P message structures and request builders.

This package implements the message structures defined in the OASIS DSS
Core 1.0 specification together with the asynchronous-processing,
local-signature and verification-report profiles and the e-Contract
DSS-P profile extensions.

# Message Types

The package defines the requests the client sends:

SignRequest - Document upload for the async, eSeal and two-step flows:
  - Profile: DSS-P flavor (urn:be:e-contract:dssp:1.0 or the eSeal profile)
  - OptionalInputs: profile options, WS-Trust token request, key selector
  - InputDocuments: the base64-encoded document with its MIME type

PendingRequest - Collects the signed document of an async session.

VerifyRequest - Requests a verification report for a signed document.

And the responses it interprets:

SignResponse / VerifyResponse - Carry the structured Result
(major/minor/message) plus the OptionalOutputs of the flow: the issued
security context token, the signed document, the document hash or the
verification report.

# Building Requests

One pure constructor per flow:

	req, nonce, err := message.NewAsyncSignRequest(pdf, "application/pdf", "")
	req, err := message.NewSealRequest(pdf, "application/pdf", "")
	req, err := message.NewTwoStepSignRequest(pdf, "application/pdf", "", chain)
	req := message.NewPendingRequest(session.ServerID, session.KeyReference)
	req, err := message.NewVerifyRequest(pdf, "application/pdf")

Every constructor generates a fresh "doc-" document identifier and places
the enveloped signature on it; NewAsyncSignRequest additionally draws 32
bytes of client entropy for the WS-Trust handshake and returns them.

# References

  - OASIS DSS Core 1.0: https://docs.oasis-open.org/dss/v1.0/
  - WS-Trust 1.3: https://docs.oasis-open.org/ws-sx/ws-trust/200512/
*/
package message
