package enquiry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteAppendAndCount(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, store.Append(ctx, sampleEnquiry("What are your hours?")))
	require.NoError(t, store.Append(ctx, sampleEnquiry("Where are you located?")))

	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSQLiteStoresFields(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, sampleEnquiry("hours?")))

	var ts, question, name, email, phone, raw string
	err := store.db.QueryRowContext(ctx, `
		SELECT timestamp, original_question, name, email, phone, raw_message
		FROM enquiries
	`).Scan(&ts, &question, &name, &email, &phone, &raw)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-14T09:30:00Z", ts)
	assert.Equal(t, "hours?", question)
	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, "jane@example.com", email)
	assert.Equal(t, "+14155550123", phone)
	assert.Equal(t, "name: Jane Doe, jane@example.com, +14155550123", raw)
}

func TestSQLiteReopenKeepsRows(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewSQLiteStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, sampleEnquiry("persist me?")))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
