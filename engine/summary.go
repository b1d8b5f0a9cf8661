/*
summary.go - Bottom-up aggregation over the result tree

PURPOSE:
  Monthly summaries reduce over days; yearly summaries reduce over the
  monthly summaries. Per-partner commission totals keep first-seen
  order so output is deterministic. Also provides the per-level (L1 vs
  L2) totals and the compact day list consumed by display collaborators.
*/
package engine

import "time"

// partnerAgg accumulates per-partner commission totals preserving
// first-seen order.
type partnerAgg struct {
	order  []string
	totals map[string]*PartnerSummary
}

func newPartnerAgg() *partnerAgg {
	return &partnerAgg{totals: make(map[string]*PartnerSummary)}
}

func (a *partnerAgg) add(id, name string, level Level, amount Money) {
	ps, ok := a.totals[id]
	if !ok {
		ps = &PartnerSummary{PartnerID: id, PartnerName: name, Level: level}
		a.totals[id] = ps
		a.order = append(a.order, id)
	}
	ps.TotalCommission = ps.TotalCommission.Add(amount)
}

func (a *partnerAgg) summaries() []PartnerSummary {
	out := make([]PartnerSummary, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, *a.totals[id])
	}
	return out
}

// monthlySummary reduces one month of days.
func monthlySummary(days []DailyResult) Summary {
	s := Summary{
		StartStake: days[0].Stake,
		EndStake:   days[len(days)-1].NewStake,
	}
	agg := newPartnerAgg()
	for _, day := range days {
		s.TotalProfit = s.TotalProfit.Add(day.Profit)
		s.TotalDeposits = s.TotalDeposits.Add(day.Deposit)
		s.TotalWithdrawals = s.TotalWithdrawals.Add(day.Withdrawal)
		for _, pc := range day.PartnerCommissions {
			agg.add(pc.PartnerID, pc.PartnerName, pc.Level, pc.Commission)
		}
	}
	s.PartnerSummaries = agg.summaries()
	return s
}

// yearlySummary folds over the already-computed monthly summaries.
func yearlySummary(months []MonthlyResult) Summary {
	s := Summary{
		StartStake: months[0].Summary.StartStake,
		EndStake:   months[len(months)-1].Summary.EndStake,
	}
	agg := newPartnerAgg()
	for _, m := range months {
		s.TotalProfit = s.TotalProfit.Add(m.Summary.TotalProfit)
		s.TotalDeposits = s.TotalDeposits.Add(m.Summary.TotalDeposits)
		s.TotalWithdrawals = s.TotalWithdrawals.Add(m.Summary.TotalWithdrawals)
		for _, ps := range m.Summary.PartnerSummaries {
			agg.add(ps.PartnerID, ps.PartnerName, ps.Level, ps.TotalCommission)
		}
	}
	s.PartnerSummaries = agg.summaries()
	return s
}

// =============================================================================
// LEVEL TOTALS - L1 vs L2 commission aggregates
// =============================================================================

// LevelTotal is the aggregate commission split by referral level for
// one month or one year (Month is zero for yearly totals).
type LevelTotal struct {
	Year    int
	Month   time.Month
	L1Total Money
	L2Total Money
}

// ComputeLevelTotals aggregates L1/L2 commission totals per month and
// per year across the whole result set.
func ComputeLevelTotals(years []YearlyResult) (yearly []LevelTotal, monthly []LevelTotal) {
	for _, y := range years {
		yt := LevelTotal{Year: y.Year}
		for _, m := range y.Months {
			mt := LevelTotal{Year: y.Year, Month: m.Month}
			for _, day := range m.Days {
				for _, pc := range day.PartnerCommissions {
					if pc.Level == LevelL1 {
						mt.L1Total = mt.L1Total.Add(pc.Commission)
					} else {
						mt.L2Total = mt.L2Total.Add(pc.Commission)
					}
				}
			}
			yt.L1Total = yt.L1Total.Add(mt.L1Total)
			yt.L2Total = yt.L2Total.Add(mt.L2Total)
			monthly = append(monthly, mt)
		}
		yearly = append(yearly, yt)
	}
	return yearly, monthly
}

// =============================================================================
// COMPACT DAY LIST - Collapse inactive runs for display
// =============================================================================

// CompactEntry is either a single active day (Day != nil) or a gap of
// consecutive inactive days collapsed into one entry.
type CompactEntry struct {
	Day      *DailyResult
	GapStart Date
	GapEnd   Date
	GapDays  int
}

func (d DailyResult) isInactive() bool {
	return d.Profit.IsZero() &&
		len(d.PartnerCommissions) == 0 &&
		d.Deposit.IsZero() &&
		d.Withdrawal.IsZero()
}

// CompactDailyList collapses runs of inactive days (weekends,
// vacations) into single gap entries, preserving active days as-is.
func CompactDailyList(days []DailyResult) []CompactEntry {
	var entries []CompactEntry

	for i := 0; i < len(days); {
		if !days[i].isInactive() {
			day := days[i]
			entries = append(entries, CompactEntry{Day: &day})
			i++
			continue
		}

		j := i
		for j+1 < len(days) && days[j+1].isInactive() {
			j++
		}
		entries = append(entries, CompactEntry{
			GapStart: days[i].Date,
			GapEnd:   days[j].Date,
			GapDays:  j - i + 1,
		})
		i = j + 1
	}
	return entries
}
