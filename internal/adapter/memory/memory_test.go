package memory

import (
	"sync"
	"testing"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductsStorage(t *testing.T) {
	t.Run("InsertGeneratesObjectID", func(t *testing.T) {
		s := NewProductsStorage()

		p, err := s.Insert(t.Context(), domain.Product{Name: "Socks"})
		require.NoError(t, err)
		assert.Regexp(t, "^[0-9a-f]{24}$", p.ID)

		n, err := s.Count(t.Context())
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("FindAllOrderedByID", func(t *testing.T) {
		s := NewProductsStorage()
		require.NoError(t, s.InsertMany(t.Context(), domain.SeedProducts()))

		ps, err := s.FindAll(t.Context())
		require.NoError(t, err)
		assert.Equal(t, domain.SeedProducts(), ps)
	})

	t.Run("InsertManyStopsAtDuplicate", func(t *testing.T) {
		s := NewProductsStorage()
		seed := domain.SeedProducts()

		err := s.InsertMany(t.Context(), []domain.Product{seed[0], seed[1], seed[0], seed[2]})
		assert.ErrorIs(t, err, ErrDuplicateID)

		n, err := s.Count(t.Context())
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("ReplaceUnknownID", func(t *testing.T) {
		s := NewProductsStorage()

		ok, err := s.Replace(t.Context(), domain.Product{ID: "602d2149e773f2a3990b47f5"})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ConcurrentInserts", func(t *testing.T) {
		s := NewProductsStorage()
		const n = 50

		var wg sync.WaitGroup
		wg.Add(n)
		for range n {
			go func() {
				defer wg.Done()
				_, err := s.Insert(t.Context(), domain.Product{Name: "Socks"})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		ps, err := s.FindByName(t.Context(), "Socks")
		require.NoError(t, err)
		assert.Len(t, ps, n)
	})
}
