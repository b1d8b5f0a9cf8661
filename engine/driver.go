/*
driver.go - Simulation driver: date iteration and result grouping

PURPOSE:
  Simulate is the engine's only entry point. It resolves parameters,
  folds the daily step function across every calendar date from start
  to computed end in strict chronological order (each day depends on
  the prior day's mutated stakes, so there is nothing to parallelize),
  then regroups the flat day sequence into the Year -> Month tree with
  summaries computed bottom-up.
*/
package engine

// Simulate runs one full simulation. It returns an ordered-by-year
// result list; an end date before the start date (negative duration)
// yields an empty result rather than an error.
func Simulate(params SimulationParams) ([]YearlyResult, error) {
	r, err := resolve(params)
	if err != nil {
		return nil, err
	}
	if r.end.Before(r.start) {
		return []YearlyResult{}, nil
	}

	st := newState(params)
	days := make([]DailyResult, 0, daysBetween(r.start, r.end)+1)

	lastMonth := r.start.Month()
	for day := r.start; day.BeforeOrEqual(r.end); day = day.AddDays(1) {
		// The per-month withdrawal counter resets at month boundaries.
		if day.Month() != lastMonth {
			st.withdrawalsThisMonth = 0
			lastMonth = day.Month()
		}
		days = append(days, r.step(day, st))
	}

	return groupByYear(days), nil
}

func daysBetween(from, to Date) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

// groupByYear regroups the chronological day sequence into the
// Year -> Month tree. Day order within each month is preserved; the
// yearly summary folds over months rather than re-scanning days.
func groupByYear(days []DailyResult) []YearlyResult {
	var years []YearlyResult

	var currentYear *YearlyResult
	var monthDays []DailyResult

	flushMonth := func() {
		if len(monthDays) == 0 {
			return
		}
		first := monthDays[0].Date
		currentYear.Months = append(currentYear.Months, MonthlyResult{
			Year:    first.Year(),
			Month:   first.Month(),
			Days:    monthDays,
			Summary: monthlySummary(monthDays),
		})
		monthDays = nil
	}
	flushYear := func() {
		if currentYear == nil {
			return
		}
		flushMonth()
		currentYear.Summary = yearlySummary(currentYear.Months)
		years = append(years, *currentYear)
		currentYear = nil
	}

	for _, day := range days {
		if currentYear != nil && day.Date.Year() != currentYear.Year {
			flushYear()
		}
		if currentYear == nil {
			currentYear = &YearlyResult{Year: day.Date.Year()}
		}
		if len(monthDays) > 0 && day.Date.Month() != monthDays[0].Date.Month() {
			flushMonth()
		}
		monthDays = append(monthDays, day)
	}
	flushYear()

	if years == nil {
		return []YearlyResult{}
	}
	return years
}
