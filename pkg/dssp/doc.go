// Copyright (c) 2025 Egelke BVBA
// SPDX-License-Identifier: BSD-2-Clause

/*
Package dssp provides the DSS-P client: the protocol session engine that
drives the signing and verification flows against a Digital Signature
Service.

# Flows

Four flows are supported, each as a blocking method with a Context
variant:

Asynchronous browser signing - UploadDocument hands the document to the
service and returns an AsyncSession holding the derived session key.
After the signer completed the browser leg, DownloadSignedDocument
resumes the session over a WS-SecureConversation channel and collects
the signed document. A session downloads exactly once.

eSeal - Seal applies an organizational seal in a single synchronous
call; the service selects the sealing key from the authenticated
identity.

Two-step local signing - UploadDocumentTwoStep sends the document with
the signer's certificate chain and returns the document hash. The
caller signs the hash with the chain's private key, then
DownloadSignedDocumentTwoStep exchanges the signature value for the
signed document.

Verification - Verify requests a verification report and maps it to a
report.SecurityInfo. A document without any signature yields (nil, nil).

# Usage

	client, err := dssp.NewClient("https://dss.example.com/dss",
		dssp.WithCredentials(&security.Credentials{Username: "app", Password: "secret"}),
	)
	if err != nil {
		return err
	}

	session, err := client.UploadDocument(&dssp.Document{
		MimeType: "application/pdf",
		Content:  pdf,
	})

The client is safe for concurrent use: its configuration is immutable
after construction and every operation opens its own channel, so
credentials never bleed between calls.

# Errors

Precondition failures (missing document, incomplete session, invalid
signer chain) surface before any network traffic. An unexpected service
result surfaces as a *ResultError carrying the major/minor/message
triple verbatim; transport errors propagate unmodified from the
channel.
*/
package dssp
