package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/homeqa/core"
	"github.com/poiesic/homeqa/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) storage.DocumentRepository {
	t.Helper()
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAddDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("sets AddedAt", func(t *testing.T) {
		repo := newTestRepository(t)
		before := time.Now().UTC()

		added, err := repo.AddDocuments(ctx, &core.Document{Title: "Custom Doc", Content: "About escrow timing."})
		require.NoError(t, err)
		require.Len(t, added, 1)
		assert.False(t, added[0].AddedAt.Before(before))
	})

	t.Run("keeps existing AddedAt", func(t *testing.T) {
		repo := newTestRepository(t)
		stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

		added, err := repo.AddDocuments(ctx, &core.Document{Title: "T", Content: "C", AddedAt: stamp})
		require.NoError(t, err)
		assert.Equal(t, stamp, added[0].AddedAt)
	})

	t.Run("closed storage", func(t *testing.T) {
		repo, err := NewMemoryRepository()
		require.NoError(t, err)
		require.NoError(t, repo.Close())

		_, err = repo.AddDocuments(ctx, &core.Document{Title: "T", Content: "C"})
		assert.ErrorIs(t, err, storage.ErrStorageClosed)
	})

	t.Run("cancelled context", func(t *testing.T) {
		repo := newTestRepository(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.AddDocuments(cctx, &core.Document{Title: "T", Content: "C"})
		assert.ErrorIs(t, err, context.Canceled)

		count, err := repo.CountDocuments(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestGetDocuments_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	// more than the sequence bandwidth to cross a lease boundary
	const n = 150
	for i := 0; i < n; i++ {
		_, err := repo.AddDocuments(ctx, &core.Document{
			Title:   fmt.Sprintf("Doc %d", i),
			Content: fmt.Sprintf("content %d", i),
		})
		require.NoError(t, err)
	}

	docs, err := repo.GetDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, n)
	for i, doc := range docs {
		assert.Equal(t, fmt.Sprintf("Doc %d", i), doc.Title)
	}

	count, err := repo.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, count)
}

func TestGetDocuments_Empty(t *testing.T) {
	repo := newTestRepository(t)

	docs, err := repo.GetDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestHasFingerprint(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	doc := &core.Document{Title: "Escrow Timeline", Content: "Open escrow within 3 days."}

	found, err := repo.HasFingerprint(ctx, doc.Fingerprint())
	require.NoError(t, err)
	assert.False(t, found)

	_, err = repo.AddDocuments(ctx, doc)
	require.NoError(t, err)

	found, err = repo.HasFingerprint(ctx, doc.Fingerprint())
	require.NoError(t, err)
	assert.True(t, found)

	changed := core.Document{Title: doc.Title, Content: "Open escrow within 5 days."}
	found, err = repo.HasFingerprint(ctx, changed.Fingerprint())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOpenRepository_Reopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repo, err := OpenRepository(dir)
	require.NoError(t, err)
	_, err = repo.AddDocuments(ctx,
		&core.Document{Title: "First", Content: "first body", URL: "https://example.com/first"},
		&core.Document{Title: "Second", Content: "second body"},
	)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	repo, err = OpenRepository(dir)
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.AddDocuments(ctx, &core.Document{Title: "Third", Content: "third body"})
	require.NoError(t, err)

	docs, err := repo.GetDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "First", docs[0].Title)
	assert.Equal(t, "https://example.com/first", docs[0].URL)
	assert.Equal(t, "Second", docs[1].Title)
	assert.Equal(t, "Third", docs[2].Title)
}
