package dssp

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/egelke/dssp-client/pkg/security"
)

var (
	// ErrMissingSession is returned when a download is attempted without
	// a session.
	ErrMissingSession = errors.New("session is required")
	// ErrSessionConsumed is returned when an async session is reused
	// after its download.
	ErrSessionConsumed = errors.New("session was already consumed by a download")
	// ErrSessionIncomplete is returned when a session misses fields
	// needed to resume the flow.
	ErrSessionIncomplete = errors.New("session is missing required fields")
)

// AsyncSession is the opaque state of an asynchronous signing session,
// created by a successful upload and consumed exactly once by the
// matching download. Every field comes verbatim from the validated
// upload response; none is synthesized locally.
type AsyncSession struct {
	// ServerID is the service's correlation id for the pending request.
	ServerID string `bson:"serverId" json:"serverId"`

	// KeyID is the security context token identifier.
	KeyID string `bson:"keyId" json:"keyId"`

	// KeyValue is the derived symmetric session key.
	KeyValue []byte `bson:"keyValue" json:"keyValue"`

	// KeyReference is the opaque unattached token reference, echoed back
	// unmodified on download.
	KeyReference []byte `bson:"keyReference" json:"keyReference"`

	// ExpiresOn is the absolute instant the security context expires.
	ExpiresOn time.Time `bson:"expiresOn" json:"expiresOn"`

	consumed atomic.Bool
}

func (s *AsyncSession) validate() error {
	if s == nil {
		return ErrMissingSession
	}
	if s.ServerID == "" || s.KeyID == "" || len(s.KeyValue) == 0 || len(s.KeyReference) == 0 {
		return ErrSessionIncomplete
	}
	return nil
}

// consume marks the session used; the second caller loses.
func (s *AsyncSession) consume() error {
	if s.consumed.Swap(true) {
		return ErrSessionConsumed
	}
	return nil
}

// TwoStepSession is the state of a two-step local signing session:
// the digest the caller signs with the leaf's private key, the service
// correlation id echoed on download, and the originally supplied signer
// chain. The chain is bound here, not re-fetched from the response.
type TwoStepSession struct {
	Chain *security.SignerChain

	// CorrelationID identifies the retained request state at the service.
	CorrelationID string `bson:"correlationId" json:"correlationId"`

	// DigestAlgorithm is the URI of the digest algorithm used.
	DigestAlgorithm string `bson:"digestAlgorithm" json:"digestAlgorithm"`

	// DigestValue is the document hash to sign locally.
	DigestValue []byte `bson:"digestValue" json:"digestValue"`
}

func (s *TwoStepSession) validate() error {
	if s == nil {
		return ErrMissingSession
	}
	if s.CorrelationID == "" || len(s.DigestValue) == 0 {
		return ErrSessionIncomplete
	}
	return nil
}
