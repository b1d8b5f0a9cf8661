/*
params.go - Simulation parameters and resolution

PURPOSE:
  SimulationParams is the one canonical input shape for a run. All
  defaulting happens in a single resolution step at the top of
  Simulate, so the rest of the pipeline consumes one fully-resolved
  record and no fall-through defaults hide in call sites.
*/
package engine

import "time"

// SimulationParams are the immutable inputs for one simulation run.
type SimulationParams struct {
	InitialStake   Money
	DurationYears  int
	DurationMonths int
	StartDate      Date

	Partners    []Partner
	Deposits    []TransactionPlan
	Withdrawals []TransactionPlan

	// Optional per-date gross rate overrides from already-parsed real
	// profit data.
	RealProfitData []RealProfitRecord

	// Optional restaking day-of-week allow-list. Empty means Mon-Fri.
	RestakingDays []time.Weekday
}

// run holds the fully-resolved parameters threaded through the date
// loop. Local to one Simulate invocation.
type run struct {
	params    SimulationParams
	start     Date
	end       Date
	restaking []time.Weekday
	overrides RateOverrides
	topo      topology
}

// resolve validates the parameters and produces the resolved run.
// End date is calendar arithmetic: start + years + months.
func resolve(params SimulationParams) (*run, error) {
	if params.StartDate.IsZero() {
		return nil, &InvalidParameterError{Field: "start_date", Reason: "missing or unparseable"}
	}
	if params.InitialStake.IsNegative() {
		return nil, &InvalidParameterError{Field: "initial_stake", Reason: "must not be negative"}
	}

	restaking := params.RestakingDays
	if len(restaking) == 0 {
		restaking = DefaultRestakingDays
	}

	return &run{
		params:    params,
		start:     params.StartDate,
		end:       params.StartDate.AddYears(params.DurationYears).AddMonths(params.DurationMonths),
		restaking: restaking,
		overrides: NewRateOverrides(params.RealProfitData),
		topo:      buildTopology(params.Partners),
	}, nil
}
