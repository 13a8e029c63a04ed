// Package storage persists pending asynchronous signing sessions between
// the upload leg and the browser-return download leg.
//
// # Interface Design
//
// A single focused interface:
//
//   - [SessionStore]: pending session records keyed by an application id
//
// The session state itself is opaque client state; the store never
// inspects or rewrites it.
//
// # Implementations
//
// The mongodb sub-package provides a production-ready MongoDB
// implementation with TTL-based expiry. The memory sub-package provides
// an in-process implementation for tests and single-instance use.
//
// # Concurrency
//
// All store implementations must be safe for concurrent use from
// multiple goroutines.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/egelke/dssp-client/pkg/dssp"
)

// ErrSessionNotFound indicates no record exists under the given id, or
// it already expired.
var ErrSessionNotFound = errors.New("session record not found")

// SessionRecord is a pending signing session parked between the upload
// and download legs, keyed by an application-chosen id.
type SessionRecord struct {
	ID        string             `bson:"_id" json:"id"`
	Session   *dssp.AsyncSession `bson:"session" json:"session"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`

	// ExpiresOn mirrors the session's token expiry so stores can purge
	// records that can no longer complete.
	ExpiresOn time.Time `bson:"expiresOn" json:"expiresOn"`
}

// SessionStore manages pending session records.
type SessionStore interface {
	// PutSession stores a record, replacing any record under the same id.
	PutSession(ctx context.Context, record *SessionRecord) error

	// GetSession retrieves a record by id.
	GetSession(ctx context.Context, id string) (*SessionRecord, error)

	// DeleteSession removes a record. Deleting an absent id is not an
	// error.
	DeleteSession(ctx context.Context, id string) error

	// PurgeExpired removes records whose ExpiresOn lies before now and
	// returns how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)

	// Close releases storage resources.
	Close(ctx context.Context) error

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error
}

// NewSessionRecord wraps a session for storage under the given id.
func NewSessionRecord(id string, session *dssp.AsyncSession) *SessionRecord {
	return &SessionRecord{
		ID:        id,
		Session:   session,
		CreatedAt: time.Now().UTC(),
		ExpiresOn: session.ExpiresOn,
	}
}
