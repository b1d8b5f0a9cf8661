/*
Package scenario provides JSON to engine parameter conversion.

PURPOSE:
  Converts JSON simulation definitions into engine.SimulationParams.
  This is the one external shape for parameters - API clients, saved
  scenarios and demo presets all travel through it, so there is exactly
  one place where defaults are filled in and the input is validated.

JSON SCHEMA:
  {
    "initial_stake": 1000,
    "duration_years": 1,
    "duration_months": 0,
    "start_date": "2026-03-02",
    "partners": [
      {"id": "p1", "name": "Alice", "level": "L1", "initial_stake": 1500},
      {"id": "p2", "name": "Bob", "level": "L2", "initial_stake": 500, "parent_l1_id": "p1"}
    ],
    "deposits":    [{"frequency": "monthly", "amount": 100}],
    "withdrawals": [{"frequency": "monthly", "percentage": 50}],
    "real_profit_data": [{"date": "2026-03-02", "gross_profit_rate": 0.009}],
    "restaking_days": [1, 2, 3]
  }

DEFAULTS:
  initial_stake: 200 (the minimum investor tier) when absent
  start_date:    tomorrow when absent
  restaking_days: Monday-Friday when absent (weekday numbers follow
  time.Weekday: 0=Sunday .. 6=Saturday)

VALIDATION:
  Unknown partner levels and plan frequencies are rejected at this
  boundary with engine.InvalidParameterError. Everything else degrades
  per the engine's defensive semantics (dangling parent references
  become orphans, missing lists stay empty).

SEE ALSO:
  - presets.go: Built-in demo scenarios
  - engine/params.go: The resolved parameter record
*/
package scenario

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stakeflow/compound-engine/engine"
)

// DefaultInitialStake is the minimum investor stake, used when the
// input leaves initial_stake unset.
const DefaultInitialStake = 200

// =============================================================================
// JSON SHAPES
// =============================================================================

// ParamsJSON is the wire form of engine.SimulationParams.
type ParamsJSON struct {
	InitialStake   *float64         `json:"initial_stake,omitempty"`
	DurationYears  int              `json:"duration_years"`
	DurationMonths int              `json:"duration_months"`
	StartDate      string           `json:"start_date,omitempty"`
	Partners       []PartnerJSON    `json:"partners,omitempty"`
	Deposits       []PlanJSON       `json:"deposits,omitempty"`
	Withdrawals    []PlanJSON       `json:"withdrawals,omitempty"`
	RealProfitData []RealProfitJSON `json:"real_profit_data,omitempty"`
	RestakingDays  []int            `json:"restaking_days,omitempty"`
}

type PartnerJSON struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Level        string  `json:"level"`
	InitialStake float64 `json:"initial_stake"`
	ParentL1ID   string  `json:"parent_l1_id,omitempty"`
}

type PlanJSON struct {
	Frequency  string  `json:"frequency"`
	Amount     float64 `json:"amount,omitempty"`
	Percentage float64 `json:"percentage,omitempty"`
}

type RealProfitJSON struct {
	Date            string  `json:"date"`
	GrossProfitRate float64 `json:"gross_profit_rate"`
}

// =============================================================================
// DECODING
// =============================================================================

// ParseParams decodes and converts a JSON document in one step.
func ParseParams(data []byte) (engine.SimulationParams, error) {
	var pj ParamsJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return engine.SimulationParams{}, &engine.InvalidParameterError{Field: "body", Reason: err.Error()}
	}
	return pj.ToParams()
}

// ToParams converts the wire form into engine parameters, applying
// defaults and boundary validation.
func (pj ParamsJSON) ToParams() (engine.SimulationParams, error) {
	params := engine.SimulationParams{
		DurationYears:  pj.DurationYears,
		DurationMonths: pj.DurationMonths,
	}

	if pj.InitialStake != nil {
		params.InitialStake = engine.NewMoney(*pj.InitialStake)
	} else {
		params.InitialStake = engine.NewMoneyFromInt(DefaultInitialStake)
	}

	if pj.StartDate == "" {
		params.StartDate = engine.Today().AddDays(1)
	} else {
		start, err := engine.ParseDate(pj.StartDate)
		if err != nil {
			return engine.SimulationParams{}, &engine.InvalidParameterError{Field: "start_date", Reason: "not an ISO YYYY-MM-DD date: " + pj.StartDate}
		}
		params.StartDate = start
	}

	for _, p := range pj.Partners {
		level := engine.Level(p.Level)
		if level != engine.LevelL1 && level != engine.LevelL2 {
			return engine.SimulationParams{}, &engine.InvalidParameterError{Field: "partners.level", Reason: "must be L1 or L2, got " + p.Level}
		}
		params.Partners = append(params.Partners, engine.Partner{
			ID:           p.ID,
			Name:         p.Name,
			Level:        level,
			InitialStake: engine.NewMoney(p.InitialStake),
			ParentL1ID:   p.ParentL1ID,
		})
	}

	var err error
	if params.Deposits, err = toPlans(pj.Deposits, "deposits"); err != nil {
		return engine.SimulationParams{}, err
	}
	if params.Withdrawals, err = toPlans(pj.Withdrawals, "withdrawals"); err != nil {
		return engine.SimulationParams{}, err
	}

	for _, r := range pj.RealProfitData {
		params.RealProfitData = append(params.RealProfitData, engine.RealProfitRecord{
			Date:            r.Date,
			GrossProfitRate: decimal.NewFromFloat(r.GrossProfitRate),
		})
	}

	for _, n := range pj.RestakingDays {
		if n < 0 || n > 6 {
			continue // out-of-range weekday numbers are dropped, not fatal
		}
		params.RestakingDays = append(params.RestakingDays, time.Weekday(n))
	}

	return params, nil
}

func toPlans(plans []PlanJSON, field string) ([]engine.TransactionPlan, error) {
	var out []engine.TransactionPlan
	for _, p := range plans {
		freq := engine.Frequency(p.Frequency)
		switch freq {
		case engine.FreqMonthly, engine.FreqQuarterly, engine.FreqYearly:
		default:
			return nil, &engine.InvalidParameterError{Field: field + ".frequency", Reason: "must be monthly, quarterly or yearly, got " + p.Frequency}
		}
		out = append(out, engine.TransactionPlan{
			Frequency: freq,
			Amount:    engine.NewMoney(p.Amount),
			Percent:   decimal.NewFromFloat(p.Percentage),
		})
	}
	return out, nil
}

// =============================================================================
// ENCODING
// =============================================================================

// FromParams converts engine parameters back to the wire form, used
// when persisting scenarios.
func FromParams(params engine.SimulationParams) ParamsJSON {
	stake := params.InitialStake.Float64()
	pj := ParamsJSON{
		InitialStake:   &stake,
		DurationYears:  params.DurationYears,
		DurationMonths: params.DurationMonths,
	}
	if !params.StartDate.IsZero() {
		pj.StartDate = params.StartDate.ISO()
	}
	for _, p := range params.Partners {
		pj.Partners = append(pj.Partners, PartnerJSON{
			ID:           p.ID,
			Name:         p.Name,
			Level:        string(p.Level),
			InitialStake: p.InitialStake.Float64(),
			ParentL1ID:   p.ParentL1ID,
		})
	}
	pj.Deposits = fromPlans(params.Deposits)
	pj.Withdrawals = fromPlans(params.Withdrawals)
	for _, r := range params.RealProfitData {
		pj.RealProfitData = append(pj.RealProfitData, RealProfitJSON{
			Date:            r.Date,
			GrossProfitRate: r.GrossProfitRate.InexactFloat64(),
		})
	}
	for _, wd := range params.RestakingDays {
		pj.RestakingDays = append(pj.RestakingDays, int(wd))
	}
	return pj
}

func fromPlans(plans []engine.TransactionPlan) []PlanJSON {
	var out []PlanJSON
	for _, p := range plans {
		out = append(out, PlanJSON{
			Frequency:  string(p.Frequency),
			Amount:     p.Amount.Float64(),
			Percentage: p.Percent.InexactFloat64(),
		})
	}
	return out
}
