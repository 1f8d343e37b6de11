package guard_test

import (
	"errors"
	"sync"
	"testing"

	"workshop/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("draft must be created via NewDraft")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.ErrorIs(t, err, errNotConstructed)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("copies_keep_their_state", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		cp := g

		require.NoError(t, cp.Validate(errNotConstructed))
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type reviewCommand struct {
		draftID string
		guard   guard.ConstructorGuard
	}
	errReviewNotConstructed := errors.New("review command must be created via its constructor")

	newReviewCommand := func(draftID string) (reviewCommand, error) {
		if draftID == "" {
			return reviewCommand{}, errors.New("draft id is required")
		}
		return reviewCommand{draftID: draftID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_path", func(t *testing.T) {
		cmd, err := newReviewCommand("d-1")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errReviewNotConstructed))
		assert.Equal(t, "d-1", cmd.draftID)
	})

	t.Run("literal_path", func(t *testing.T) {
		cmd := reviewCommand{draftID: "d-1"}

		require.ErrorIs(t, cmd.guard.Validate(errReviewNotConstructed), errReviewNotConstructed)
	})
}

func TestConstructorGuard_Concurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	errNotConstructed := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.NoError(t, g.Validate(errNotConstructed))
			}
		}()
	}
	wg.Wait()
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
