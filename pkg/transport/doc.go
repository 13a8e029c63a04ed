// Copyright (c) 2025 Egelke BVBA
// SPDX-License-Identifier: BSD-2-Clause

/*
Package transport implements the secured SOAP channel for the DSS-P
port type.

# Authentication Modes

A channel is bound to exactly one authentication mode:

  - Anonymous: no credential at all
  - ClientCert: inline client certificate at the TLS layer
  - ClientCertByLookup: client certificate resolved from an OS store
  - UsernamePassword: WS-Security UsernameToken in the header
  - SecureConversation: an established async session's security context

ModeFor selects the mode from the configured application credentials in
fixed precedence; SecureConversation is only ever selected by resuming
an AsyncSession for download. Every NewChannel call constructs an
independent invoker, so switching modes can never leak credentials
between channels.

# Operations

The Channel interface exposes the three DSS-P operations (sign,
pendingRequest, verify), each in a blocking and a context-aware form
with identical validation and error behavior.

# Error Behavior

Network and TLS failures propagate unmodified. SOAP faults surface as
*FaultError carrying the fault code and reason. HTTP status handling
accepts 500 because SOAP 1.2 faults ride on it.
*/
package transport
