package unify_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kindred/unify"
)

func TestLazyCell_TryInitialize(t *testing.T) {
	var cell unify.LazyCell

	_, ok := cell.Load()
	assert.False(t, ok)

	first := &unify.TypeObject{Name: "Point"}
	second := &unify.TypeObject{Name: "Point"}

	assert.True(t, cell.TryInitialize(unify.Binding{Descriptor: first}))
	assert.False(t, cell.TryInitialize(unify.Binding{Descriptor: second}), "write-once guard")

	b, ok := cell.Load()
	require.True(t, ok)
	assert.Same(t, first, b.Descriptor)
}

func TestLazyCell_StagedAux(t *testing.T) {
	t.Run("merged on initialize", func(t *testing.T) {
		var cell unify.LazyCell
		cell.Stage("methods", 3)

		require.True(t, cell.TryInitialize(unify.Binding{
			Descriptor: &unify.TypeObject{},
			Aux:        map[string]any{"module": "example.com/a"},
		}))

		b, _ := cell.Load()
		assert.Equal(t, map[string]any{"methods": 3, "module": "example.com/a"}, b.Aux)
		assert.Empty(t, cell.Staged())
	})

	t.Run("discarded on rebind", func(t *testing.T) {
		var cell unify.LazyCell
		cell.Stage("methods", 3)

		canonical := &unify.TypeObject{}
		cell.ForceRebind(unify.Binding{Descriptor: canonical})

		b, ok := cell.Load()
		require.True(t, ok)
		assert.Same(t, canonical, b.Descriptor)
		assert.Empty(t, b.Aux)
		assert.Empty(t, cell.Staged())
	})
}

func TestLazyCell_ForceRebindBypassesGuard(t *testing.T) {
	var cell unify.LazyCell
	local := &unify.TypeObject{Name: "local"}
	canonical := &unify.TypeObject{Name: "canonical"}

	require.True(t, cell.TryInitialize(unify.Binding{Descriptor: local}))
	cell.ForceRebind(unify.Binding{Descriptor: canonical})

	b, _ := cell.Load()
	assert.Same(t, canonical, b.Descriptor)
}

func TestLazyCell_GetOrInit(t *testing.T) {
	t.Run("builds once", func(t *testing.T) {
		var (
			cell  unify.LazyCell
			calls int
		)
		build := func() (unify.Binding, error) {
			calls++
			return unify.Binding{Descriptor: &unify.TypeObject{}}, nil
		}

		first, err := cell.GetOrInit(build)
		require.NoError(t, err)
		second, err := cell.GetOrInit(build)
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Same(t, first.Descriptor, second.Descriptor)
	})

	t.Run("error leaves cell empty", func(t *testing.T) {
		var cell unify.LazyCell
		boom := errors.New("boom")

		_, err := cell.GetOrInit(func() (unify.Binding, error) { return unify.Binding{}, boom })
		require.ErrorIs(t, err, boom)

		_, ok := cell.Load()
		assert.False(t, ok)
	})

	t.Run("concurrent callers agree", func(t *testing.T) {
		var (
			cell unify.LazyCell
			wg   sync.WaitGroup
		)
		results := make([]unify.Descriptor, 16)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				b, err := cell.GetOrInit(func() (unify.Binding, error) {
					return unify.Binding{Descriptor: &unify.TypeObject{}}, nil
				})
				assert.NoError(t, err)
				results[i] = b.Descriptor
			}()
		}
		wg.Wait()

		for _, d := range results {
			assert.Same(t, results[0], d)
		}
	})
}
