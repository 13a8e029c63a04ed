// Copyright (c) 2025 Egelke BVBA
// SPDX-License-Identifier: BSD-2-Clause

/*
Package dssp implements a client for the Digital Signature Service Protocol
(DSS-P), the SOAP/WS-* based protocol for remote document signing, sealing
and signature verification offered by the e-Contract.be Digital Signature
Service.

# Overview

dssp-client is a protocol session engine: it constructs the DSS-P requests
for the four signing flows, selects the WS-Security authentication mode for
the secured channel, validates the structured result codes the service
returns, derives session keys from the WS-SecureConversation handshake and
reconstructs signer metadata from verification reports.

# Specifications Implemented

This library implements the client side of the following specifications:

  - OASIS DSS Core 1.0: https://docs.oasis-open.org/dss/v1.0/
  - OASIS DSS Asynchronous Processing Profile 1.0
  - OASIS DSS-X Local Signature Computation Profile
  - OASIS DSS-X Verification Report Profile
  - WS-Trust 1.3: https://docs.oasis-open.org/ws-sx/ws-trust/200512/
  - WS-SecureConversation 1.3
  - e-Contract DSS-P profile: urn:be:e-contract:dssp:1.0

# Package Structure

The library is organized into the following packages:

	github.com/egelke/dssp-client/pkg/dssp      - Main DSS-P client API
	github.com/egelke/dssp-client/pkg/message   - DSS-P message structures and request builders
	github.com/egelke/dssp-client/pkg/security  - Credentials, key derivation, chain building
	github.com/egelke/dssp-client/pkg/transport - Secured SOAP channel per authentication mode
	github.com/egelke/dssp-client/pkg/report    - Verification report mapping

# Quick Start

To seal a document with an eSeal:

	import (
	    "github.com/egelke/dssp-client/pkg/dssp"
	    "github.com/egelke/dssp-client/pkg/security"
	)

	client, _ := dssp.NewClient("https://www.e-contract.be/dss-ws/dss",
	    dssp.WithCredentials(&security.Credentials{
	        Username: "app-id",
	        Password: "app-secret",
	    }),
	)
	sealed, err := client.Seal(&dssp.Document{
	    MimeType: "application/pdf",
	    Content:  pdfBytes,
	})

The asynchronous browser flow is a two-leg exchange: UploadDocument returns
an AsyncSession whose derived key authenticates the later
DownloadSignedDocument call. The session is an opaque, caller-owned value;
the internal/storage package ships persistence helpers for callers that
span the two legs over separate processes.

# License

BSD-2-Clause License
*/
package dssp
