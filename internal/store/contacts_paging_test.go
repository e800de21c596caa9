package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Paging over contact submissions must be stable: newest first, with
// equal timestamps broken by descending id.
func TestContactSubmissionsPaging(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := q.CreateContactSubmission(ctx, CreateContactSubmissionParams{
			Name:      fmt.Sprintf("Sender %d", i),
			Email:     fmt.Sprintf("sender%d@example.com", i),
			Subject:   fmt.Sprintf("Inquiry %d", i),
			Message:   "Hello from the contact form.",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	// Two more sharing a timestamp, so ordering falls back to id.
	for i := 5; i < 7; i++ {
		_, err := q.CreateContactSubmission(ctx, CreateContactSubmissionParams{
			Name:      fmt.Sprintf("Sender %d", i),
			Email:     fmt.Sprintf("sender%d@example.com", i),
			Subject:   fmt.Sprintf("Inquiry %d", i),
			Message:   "Hello from the contact form.",
			CreatedAt: base.Add(10 * time.Minute),
		})
		require.NoError(t, err)
	}

	count, err := q.CountContactSubmissions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	first, err := q.ListContactSubmissions(ctx, ListContactSubmissionsParams{Limit: 3, Offset: 0})
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, "Sender 6", first[0].Name)
	assert.Equal(t, "Sender 5", first[1].Name)
	assert.Equal(t, "Sender 4", first[2].Name)

	second, err := q.ListContactSubmissions(ctx, ListContactSubmissionsParams{Limit: 3, Offset: 3})
	require.NoError(t, err)
	require.Len(t, second, 3)
	assert.Equal(t, "Sender 3", second[0].Name)
	assert.Equal(t, "Sender 1", second[2].Name)

	// No overlap between pages.
	for _, a := range first {
		for _, b := range second {
			assert.NotEqual(t, a.ID, b.ID)
		}
	}

	last, err := q.ListContactSubmissions(ctx, ListContactSubmissionsParams{Limit: 3, Offset: 6})
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "Sender 0", last[0].Name)

	empty, err := q.ListContactSubmissions(ctx, ListContactSubmissionsParams{Limit: 3, Offset: 9})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRecentContactSubmissionsLimit(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		_, err := q.CreateContactSubmission(ctx, CreateContactSubmissionParams{
			Name:      fmt.Sprintf("Sender %d", i),
			Email:     fmt.Sprintf("sender%d@example.com", i),
			Subject:   "Recent",
			Message:   "Hello.",
			CreatedAt: time.Date(2026, 3, 1, 12, i, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	recent, err := q.ListRecentContactSubmissions(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "Sender 7", recent[0].Name)
	assert.Equal(t, "Sender 3", recent[4].Name)
}
