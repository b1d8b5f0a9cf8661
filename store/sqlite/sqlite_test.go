package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stakeflow/compound-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetScenario(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved, err := store.SaveScenario(ctx, sqlite.Scenario{
		Name:        "my plan",
		Description: "two partners, monthly deposit",
		ParamsJSON:  `{"initial_stake": 1000, "duration_years": 1}`,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID, "an ID is assigned on save")
	assert.False(t, saved.CreatedAt.IsZero())

	loaded, err := store.GetScenario(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "my plan", loaded.Name)
	assert.Equal(t, saved.ParamsJSON, loaded.ParamsJSON)
}

func TestSaveScenario_UpsertsOnSameID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved, err := store.SaveScenario(ctx, sqlite.Scenario{Name: "v1", ParamsJSON: `{}`})
	require.NoError(t, err)

	saved.Name = "v2"
	saved.ParamsJSON = `{"duration_years": 2}`
	_, err = store.SaveScenario(ctx, saved)
	require.NoError(t, err)

	loaded, err := store.GetScenario(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", loaded.Name)
	assert.Equal(t, `{"duration_years": 2}`, loaded.ParamsJSON)

	all, err := store.ListScenarios(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetScenario_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetScenario(context.Background(), "missing")
	assert.True(t, errors.Is(err, sqlite.ErrScenarioNotFound))
}

func TestListScenarios(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := store.SaveScenario(ctx, sqlite.Scenario{Name: name, ParamsJSON: `{}`})
		require.NoError(t, err)
	}

	all, err := store.ListScenarios(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteScenario(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved, err := store.SaveScenario(ctx, sqlite.Scenario{Name: "doomed", ParamsJSON: `{}`})
	require.NoError(t, err)

	require.NoError(t, store.DeleteScenario(ctx, saved.ID))

	_, err = store.GetScenario(ctx, saved.ID)
	assert.True(t, errors.Is(err, sqlite.ErrScenarioNotFound))

	assert.True(t, errors.Is(store.DeleteScenario(ctx, saved.ID), sqlite.ErrScenarioNotFound))
}
