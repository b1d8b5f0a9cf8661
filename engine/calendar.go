/*
calendar.go - Calendar policy: weekends, vacation blackouts, working days

PURPOSE:
  Pure, total functions of a date that decide whether the fund trades
  that day and whether the backoffice executes scheduled transactions.

BLACKOUT WINDOWS:
  Summer: 14 days starting the Monday of the week containing July 15.
  Winter: 14 days starting the Monday on-or-before December 25. The
  winter window is checked against both the date's year and the prior
  year so early-January dates belonging to a blackout that started the
  previous December classify correctly.
  Backoffice: same anchor Mondays, 21-day windows (vacation plus one
  trailing week). Suppresses scheduled transactions only, never profit
  accrual.

SEE ALSO:
  - plan.go: ShouldExecuteTransaction (uses the backoffice window)
  - step.go: gates daily accrual on IsWorkingDay
*/
package engine

import "time"

// DefaultRestakingDays is the restaking allow-list used when the
// parameters leave it empty: every weekday.
var DefaultRestakingDays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
}

const (
	vacationDays   = 14
	backofficeDays = 21
)

// mondayOfWeekContaining returns the Monday of the ISO week holding d.
func mondayOfWeekContaining(d Date) Date {
	wd := int(d.Weekday())
	if wd == 0 { // Sunday belongs to the week that started six days earlier
		return d.AddDays(-6)
	}
	return d.AddDays(1 - wd)
}

// mondayOnOrBefore walks back to the nearest Monday, including d itself.
func mondayOnOrBefore(d Date) Date {
	for d.Weekday() != time.Monday {
		d = d.AddDays(-1)
	}
	return d
}

func summerVacationStart(year int) Date {
	return mondayOfWeekContaining(NewDate(year, time.July, 15))
}

func winterVacationStart(year int) Date {
	return mondayOnOrBefore(NewDate(year, time.December, 25))
}

// inWindow reports whether d falls in [start, start+length-1].
func inWindow(d, start Date, length int) bool {
	return d.AfterOrEqual(start) && d.BeforeOrEqual(start.AddDays(length-1))
}

// IsVacationPeriod reports whether d falls in a 14-day summer or winter
// blackout. The winter anchor is resolved for both d's year and the
// prior year; a window anchored in late December spills into January.
func IsVacationPeriod(d Date) bool {
	if inWindow(d, summerVacationStart(d.Year()), vacationDays) {
		return true
	}
	for _, year := range []int{d.Year(), d.Year() - 1} {
		if inWindow(d, winterVacationStart(year), vacationDays) {
			return true
		}
	}
	return false
}

// IsBackofficeVacation reports whether d falls in a 21-day backoffice
// window (vacation plus one trailing week). Scheduled transactions are
// suppressed during these windows; profit accrual is not.
func IsBackofficeVacation(d Date) bool {
	if inWindow(d, summerVacationStart(d.Year()), backofficeDays) {
		return true
	}
	for _, year := range []int{d.Year(), d.Year() - 1} {
		if inWindow(d, winterVacationStart(year), backofficeDays) {
			return true
		}
	}
	return false
}

// IsWorkingDay reports whether the fund trades on d: not a weekend, not
// in a vacation blackout, and d's weekday is in the restaking
// allow-list. An empty allow-list means every weekday.
func IsWorkingDay(d Date, restakingDays []time.Weekday) bool {
	if d.IsWeekend() || IsVacationPeriod(d) {
		return false
	}
	if len(restakingDays) == 0 {
		return true
	}
	for _, wd := range restakingDays {
		if d.Weekday() == wd {
			return true
		}
	}
	return false
}
