package sources

import (
	"context"
	"testing"
	"time"

	"github.com/mertkaya/teampulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	name string
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) MemberMapping(ctx context.Context) (map[string]string, error) {
	return nil, nil
}

func (f *fakeAdapter) MemberDetails(ctx context.Context) (map[string]models.MemberDetail, error) {
	return nil, nil
}

func (f *fakeAdapter) Activities(ctx context.Context, since, until time.Time) ([]models.RawActivity, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(&fakeAdapter{name: "slack"}))
	require.NoError(t, registry.Register(&fakeAdapter{name: "github"}))

	t.Run("Get returns registered adapter", func(t *testing.T) {
		adapter, err := registry.Get("slack")
		require.NoError(t, err)
		assert.Equal(t, "slack", adapter.Name())
	})

	t.Run("Unknown source is an error", func(t *testing.T) {
		_, err := registry.Get("notion")
		assert.Error(t, err)
	})

	t.Run("Duplicate registration is an error", func(t *testing.T) {
		err := registry.Register(&fakeAdapter{name: "github"})
		assert.Error(t, err)
	})

	t.Run("Names are sorted", func(t *testing.T) {
		assert.Equal(t, []string{"github", "slack"}, registry.Names())
	})
}
