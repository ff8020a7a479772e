package corpus

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/poiesic/homeqa/core"
	"github.com/poiesic/homeqa/storage"
	"github.com/poiesic/homeqa/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titlesOf(docs []core.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Title
	}
	return out
}

func TestNewRegistry(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		r := NewRegistry()
		assert.NotNil(t, r.Documents())
		assert.Equal(t, 0, r.Len())
	})

	t.Run("seeded", func(t *testing.T) {
		r := NewSeededRegistry()
		assert.Equal(t, []string{
			"Home Buying Process Guide",
			"Understanding Real Estate Timelines",
			"Home Buying Process Overview",
		}, titlesOf(r.Documents()))
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		r := NewRegistry(WithLogger(nil))
		assert.NotNil(t, r.logger)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("appends in order", func(t *testing.T) {
		r := NewSeededRegistry()
		require.NoError(t, r.Inject(ctx, "Custom Doc", "This explains custom knowledge about escrow timing."))
		require.NoError(t, r.Register(ctx, core.Document{Title: "Second", Content: "More", URL: "https://example.com"}))

		docs := r.Documents()
		require.Len(t, docs, 5)
		assert.Equal(t, "Custom Doc", docs[3].Title)
		assert.Equal(t, "Second", docs[4].Title)
		assert.Equal(t, "https://example.com", docs[4].URL)
		assert.False(t, docs[3].AddedAt.IsZero())
	})

	t.Run("rejects malformed documents", func(t *testing.T) {
		tests := []struct {
			name    string
			title   string
			content string
			wantErr error
		}{
			{"empty title", "", "content", core.ErrEmptyTitle},
			{"blank title", "   ", "content", core.ErrEmptyTitle},
			{"empty content", "Title", "", core.ErrEmptyContent},
			{"blank content", "Title", "\n\t", core.ErrEmptyContent},
		}

		r := NewRegistry()
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := r.Inject(ctx, tt.title, tt.content)
				assert.ErrorIs(t, err, core.ErrInvalidDocument)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, r.Len())
			})
		}
	})

	t.Run("batch is all or nothing", func(t *testing.T) {
		r := NewRegistry()
		err := r.RegisterAll(ctx,
			core.Document{Title: "Good", Content: "fine"},
			core.Document{Title: "Bad"},
		)
		assert.ErrorIs(t, err, core.ErrEmptyContent)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("empty batch", func(t *testing.T) {
		r := NewRegistry()
		assert.NoError(t, r.RegisterAll(ctx))
	})

	t.Run("does not modify caller slice", func(t *testing.T) {
		r := NewRegistry()
		docs := []core.Document{{Title: "T", Content: "C"}}
		require.NoError(t, r.RegisterAll(ctx, docs...))
		assert.True(t, docs[0].AddedAt.IsZero())
	})
}

func TestSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	r := NewSeededRegistry()

	before := r.Documents()
	require.NoError(t, r.Inject(ctx, "Late", "Injected after the snapshot was taken."))

	assert.Len(t, before, 3)
	assert.Len(t, r.Documents(), 4)
	assert.Equal(t, titlesOf(before), titlesOf(r.Documents()[:3]))
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	const writers, perWriter = 4, 25
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				assert.NoError(t, r.Inject(ctx, fmt.Sprintf("w%d-%d", w, i), "content"))
			}
		}(w)
	}
	for rd := 0; rd < 4; rd++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := 0
			for i := 0; i < 100; i++ {
				n := len(r.Documents())
				assert.GreaterOrEqual(t, n, last)
				last = n
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, r.Len())

	// each writer's documents keep their relative order
	next := make(map[int]int)
	for _, doc := range r.Documents() {
		var w, i int
		_, err := fmt.Sscanf(doc.Title, "w%d-%d", &w, &i)
		require.NoError(t, err)
		assert.Equal(t, next[w], i)
		next[w]++
	}
}

func TestRegisterNew(t *testing.T) {
	ctx := context.Background()

	t.Run("skips registered and repeated content", func(t *testing.T) {
		r := NewSeededRegistry()
		seed := SeedDocuments()[0]
		fresh := core.Document{Title: "Appraisal", Content: "The lender orders an appraisal."}

		n, err := r.RegisterNew(ctx, seed, fresh, fresh)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 4, r.Len())

		n, err = r.RegisterNew(ctx, fresh)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Equal(t, 4, r.Len())
	})

	t.Run("invalid document rejects batch", func(t *testing.T) {
		r := NewRegistry()
		n, err := r.RegisterNew(ctx, core.Document{Title: "Good", Content: "fine"}, core.Document{Title: "Bad"})
		assert.ErrorIs(t, err, core.ErrEmptyContent)
		assert.Zero(t, n)
		assert.Zero(t, r.Len())
	})

	t.Run("concurrent callers register once", func(t *testing.T) {
		r := NewRegistry()
		doc := core.Document{Title: "Escrow Guide", Content: "Escrow holds the deposit."}

		var added atomic.Int64
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n, err := r.RegisterNew(ctx, doc)
				assert.NoError(t, err)
				added.Add(int64(n))
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(1), added.Load())
		assert.Equal(t, 1, r.Len())
	})
}

func TestContains(t *testing.T) {
	r := NewSeededRegistry()
	seed := SeedDocuments()[0]

	assert.True(t, r.Contains(seed.Fingerprint()))
	assert.False(t, r.Contains(core.Document{Title: "x", Content: "y"}.Fingerprint()))
}

func TestRegistryPersistence(t *testing.T) {
	ctx := context.Background()

	newRepo := func(t *testing.T) storage.DocumentRepository {
		repo, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		t.Cleanup(func() { repo.Close() })
		return repo
	}

	t.Run("replays injected documents after the seed", func(t *testing.T) {
		repo := newRepo(t)

		first := NewSeededRegistry(WithRepository(repo))
		require.NoError(t, first.Inject(ctx, "Custom Doc", "This explains custom knowledge about escrow timing."))

		count, err := repo.CountDocuments(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "seed documents are not persisted")

		second := NewSeededRegistry(WithRepository(repo))
		loaded, err := second.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded)
		assert.Equal(t, titlesOf(first.Documents()), titlesOf(second.Documents()))
	})

	t.Run("persist failure leaves registry unchanged", func(t *testing.T) {
		repo, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		require.NoError(t, repo.Close())

		r := NewRegistry(WithRepository(repo))
		err = r.Inject(ctx, "Doc", "content")
		assert.ErrorIs(t, err, ErrPersistFailed)
		assert.ErrorIs(t, err, storage.ErrStorageClosed)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("load without repository", func(t *testing.T) {
		_, err := NewRegistry().Load(ctx)
		assert.ErrorIs(t, err, ErrRepositoryRequired)
	})

	t.Run("load failure", func(t *testing.T) {
		repo, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		require.NoError(t, repo.Close())

		_, err = NewRegistry(WithRepository(repo)).Load(ctx)
		assert.ErrorIs(t, err, ErrLoadFailed)
	})
}

func TestSeed(t *testing.T) {
	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	r := NewRegistry(WithRepository(repo))
	require.NoError(t, r.Seed(
		core.Document{Title: "Mortgage Basics", Content: "Get pre-approved."},
		core.Document{Title: "Offers", Content: "Bid carefully."},
	))
	assert.Equal(t, []string{"Mortgage Basics", "Offers"}, titlesOf(r.Documents()))

	count, err := repo.CountDocuments(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count, "seeded documents are not persisted")

	err = r.Seed(core.Document{Title: "Valid", Content: "ok"}, core.Document{Title: " "})
	assert.ErrorIs(t, err, core.ErrInvalidDocument)
	assert.Equal(t, 2, r.Len())
}
