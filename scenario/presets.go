/*
presets.go - Built-in demo scenarios

PURPOSE:
  Pre-built parameter sets that demonstrate specific engine features
  without the caller assembling anything. Presets are read-only; saved
  user scenarios live in the store.

AVAILABLE PRESETS:
  solo-investor:      Single stake compounding for a year, no partners
  two-level-network:  L1 + referred L2 + orphan L2 commission fan-out
  withdrawal-plan:    Percentage withdrawals with quarterly top-ups
  real-data-overlay:  A week of real profit rates overriding the default
*/
package scenario

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stakeflow/compound-engine/engine"
)

// Preset is a named, read-only demo scenario.
type Preset struct {
	ID          string
	Name        string
	Description string
	Params      engine.SimulationParams
}

// presetStart is a fixed Monday so preset runs are reproducible.
var presetStart = engine.NewDate(2026, time.March, 2)

// Presets returns the built-in demo scenarios.
func Presets() []Preset {
	return []Preset{
		{
			ID:          "solo-investor",
			Name:        "Solo Investor",
			Description: "1000 staked for one year, daily compounding, no partners",
			Params: engine.SimulationParams{
				InitialStake:  engine.NewMoneyFromInt(1000),
				DurationYears: 1,
				StartDate:     presetStart,
			},
		},
		{
			ID:          "two-level-network",
			Name:        "Two-Level Network",
			Description: "An L1 partner, a referred L2 and an orphan L2 feeding commissions",
			Params: engine.SimulationParams{
				InitialStake:  engine.NewMoneyFromInt(5000),
				DurationYears: 1,
				StartDate:     presetStart,
				Partners: []engine.Partner{
					{ID: "l1-anna", Name: "Anna", Level: engine.LevelL1, InitialStake: engine.NewMoneyFromInt(12000)},
					{ID: "l2-ben", Name: "Ben", Level: engine.LevelL2, InitialStake: engine.NewMoneyFromInt(1500), ParentL1ID: "l1-anna"},
					{ID: "l2-cora", Name: "Cora", Level: engine.LevelL2, InitialStake: engine.NewMoneyFromInt(800)},
				},
			},
		},
		{
			ID:          "withdrawal-plan",
			Name:        "Withdrawal Plan",
			Description: "Monthly 50% profit withdrawals against quarterly 500 deposits",
			Params: engine.SimulationParams{
				InitialStake:  engine.NewMoneyFromInt(10000),
				DurationYears: 2,
				StartDate:     presetStart,
				Deposits: []engine.TransactionPlan{
					{Frequency: engine.FreqQuarterly, Amount: engine.NewMoneyFromInt(500)},
				},
				Withdrawals: []engine.TransactionPlan{
					{Frequency: engine.FreqMonthly, Percent: decimal.NewFromInt(50)},
				},
			},
		},
		{
			ID:          "real-data-overlay",
			Name:        "Real Data Overlay",
			Description: "First trading week runs on imported real rates instead of the default",
			Params: engine.SimulationParams{
				InitialStake:   engine.NewMoneyFromInt(1000),
				DurationMonths: 3,
				StartDate:      presetStart,
				RealProfitData: []engine.RealProfitRecord{
					{Date: "2026-03-02", GrossProfitRate: decimal.RequireFromString("0.0095")},
					{Date: "2026-03-03", GrossProfitRate: decimal.RequireFromString("0.0060")},
					{Date: "2026-03-04", GrossProfitRate: decimal.RequireFromString("0.0112")},
					{Date: "2026-03-05", GrossProfitRate: decimal.RequireFromString("0.0071")},
					{Date: "2026-03-06", GrossProfitRate: decimal.RequireFromString("0.0083")},
				},
			},
		},
	}
}

// FindPreset returns the preset with the given ID, if any.
func FindPreset(id string) (Preset, bool) {
	for _, p := range Presets() {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
