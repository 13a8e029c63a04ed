package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egelke/dssp-client/internal/storage"
	"github.com/egelke/dssp-client/pkg/dssp"
)

func newRecord(id string, expiresOn time.Time) *storage.SessionRecord {
	record := storage.NewSessionRecord(id, &dssp.AsyncSession{
		ServerID:     "server-" + id,
		KeyID:        "urn:uuid:sct-" + id,
		KeyValue:     []byte("key"),
		KeyReference: []byte("<ref/>"),
		ExpiresOn:    expiresOn,
	})
	return record
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	record := newRecord("a", time.Now().Add(time.Hour))
	require.NoError(t, store.PutSession(ctx, record))

	got, err := store.GetSession(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "server-a", got.Session.ServerID)

	require.NoError(t, store.DeleteSession(ctx, "a"))
	_, err = store.GetSession(ctx, "a")
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	// Deleting an absent id is not an error
	assert.NoError(t, store.DeleteSession(ctx, "a"))
}

func TestStoreReplacesSameID(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.PutSession(ctx, newRecord("a", time.Time{})))
	replacement := newRecord("a", time.Time{})
	replacement.Session.ServerID = "server-b"
	require.NoError(t, store.PutSession(ctx, replacement))

	got, err := store.GetSession(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "server-b", got.Session.ServerID)
}

func TestPurgeExpired(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.PutSession(ctx, newRecord("expired", now.Add(-time.Minute))))
	require.NoError(t, store.PutSession(ctx, newRecord("live", now.Add(time.Hour))))
	require.NoError(t, store.PutSession(ctx, newRecord("unbounded", time.Time{})))

	purged, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	_, err = store.GetSession(ctx, "expired")
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
	_, err = store.GetSession(ctx, "live")
	assert.NoError(t, err)
	_, err = store.GetSession(ctx, "unbounded")
	assert.NoError(t, err)
}
