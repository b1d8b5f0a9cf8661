package scenario_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stakeflow/compound-engine/engine"
	"github.com/stakeflow/compound-engine/scenario"
)

func TestParseParams_FullDocument(t *testing.T) {
	body := []byte(`{
		"initial_stake": 5000,
		"duration_years": 1,
		"start_date": "2026-03-02",
		"partners": [
			{"id": "p1", "name": "Alice", "level": "L1", "initial_stake": 1500},
			{"id": "p2", "name": "Bob", "level": "L2", "initial_stake": 500, "parent_l1_id": "p1"}
		],
		"deposits": [{"frequency": "monthly", "amount": 100}],
		"withdrawals": [{"frequency": "quarterly", "percentage": 50}],
		"real_profit_data": [{"date": "2026-03-02", "gross_profit_rate": 0.009}],
		"restaking_days": [1, 3, 5]
	}`)

	params, err := scenario.ParseParams(body)
	require.NoError(t, err)

	assert.True(t, params.InitialStake.Equal(engine.NewMoneyFromInt(5000)))
	assert.Equal(t, 1, params.DurationYears)
	assert.True(t, params.StartDate.Equal(engine.NewDate(2026, time.March, 2)))
	require.Len(t, params.Partners, 2)
	assert.Equal(t, engine.LevelL2, params.Partners[1].Level)
	assert.Equal(t, "p1", params.Partners[1].ParentL1ID)
	require.Len(t, params.Deposits, 1)
	assert.Equal(t, engine.FreqMonthly, params.Deposits[0].Frequency)
	require.Len(t, params.Withdrawals, 1)
	assert.False(t, params.Withdrawals[0].Percent.IsZero())
	require.Len(t, params.RealProfitData, 1)
	assert.Equal(t, "2026-03-02", params.RealProfitData[0].Date)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, params.RestakingDays)
}

func TestParseParams_Defaults(t *testing.T) {
	params, err := scenario.ParseParams([]byte(`{"duration_months": 1}`))
	require.NoError(t, err)

	// Minimum investor stake and tomorrow's start date fill in.
	assert.True(t, params.InitialStake.Equal(engine.NewMoneyFromInt(scenario.DefaultInitialStake)))
	assert.True(t, params.StartDate.Equal(engine.Today().AddDays(1)))
	assert.Empty(t, params.RestakingDays) // engine resolves Mon-Fri itself
}

func TestParseParams_RejectsUnknownLevel(t *testing.T) {
	_, err := scenario.ParseParams([]byte(`{
		"partners": [{"id": "p1", "name": "X", "level": "L3", "initial_stake": 10}]
	}`))
	assert.True(t, errors.Is(err, engine.ErrInvalidParameter))
}

func TestParseParams_RejectsUnknownFrequency(t *testing.T) {
	_, err := scenario.ParseParams([]byte(`{
		"deposits": [{"frequency": "weekly", "amount": 10}]
	}`))
	assert.True(t, errors.Is(err, engine.ErrInvalidParameter))
}

func TestParseParams_RejectsBadStartDate(t *testing.T) {
	_, err := scenario.ParseParams([]byte(`{"start_date": "02.03.2026"}`))
	assert.True(t, errors.Is(err, engine.ErrInvalidParameter))
}

func TestFromParams_RoundTripsSemantics(t *testing.T) {
	preset, ok := scenario.FindPreset("two-level-network")
	require.True(t, ok)

	wire := scenario.FromParams(preset.Params)
	back, err := wire.ToParams()
	require.NoError(t, err)

	// The round trip must describe the same simulation.
	original, err := engine.Simulate(preset.Params)
	require.NoError(t, err)
	roundTripped, err := engine.Simulate(back)
	require.NoError(t, err)

	require.Equal(t, len(original), len(roundTripped))
	assert.True(t, original[len(original)-1].Summary.EndStake.
		Equal(roundTripped[len(roundTripped)-1].Summary.EndStake))
}

func TestPresets_AllSimulatable(t *testing.T) {
	presets := scenario.Presets()
	require.NotEmpty(t, presets)

	seen := map[string]bool{}
	for _, p := range presets {
		assert.False(t, seen[p.ID], "duplicate preset id %s", p.ID)
		seen[p.ID] = true

		years, err := engine.Simulate(p.Params)
		require.NoError(t, err, "preset %s", p.ID)
		assert.NotEmpty(t, years, "preset %s", p.ID)
	}
}

func TestFindPreset_Unknown(t *testing.T) {
	_, ok := scenario.FindPreset("nope")
	assert.False(t, ok)
}
