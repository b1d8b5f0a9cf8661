package engine_test

import (
	"testing"
	"time"

	"github.com/stakeflow/compound-engine/engine"
)

func TestShouldExecuteTransaction_Monthly(t *testing.T) {
	start := date(2025, time.March, 10)
	plan := engine.TransactionPlan{Frequency: engine.FreqMonthly, Amount: money("100")}

	cases := []struct {
		day  engine.Date
		want bool
	}{
		{date(2025, time.March, 10), false}, // never fires on day one
		{date(2025, time.April, 10), true},
		{date(2025, time.April, 11), false}, // wrong day-of-month
		{date(2025, time.May, 10), true},
		{date(2026, time.March, 10), true},
	}
	for _, c := range cases {
		if got := engine.ShouldExecuteTransaction(c.day, plan, start); got != c.want {
			t.Errorf("monthly on %s = %v, want %v", c.day, got, c.want)
		}
	}
}

func TestShouldExecuteTransaction_Quarterly(t *testing.T) {
	start := date(2025, time.March, 10)
	plan := engine.TransactionPlan{Frequency: engine.FreqQuarterly, Amount: money("100")}

	cases := []struct {
		day  engine.Date
		want bool
	}{
		{date(2025, time.April, 10), false}, // 1 month elapsed
		{date(2025, time.June, 10), true},   // 3 months
		{date(2025, time.September, 10), true},
		{date(2025, time.December, 10), true},
		{date(2026, time.March, 10), true}, // 12 months
	}
	for _, c := range cases {
		if got := engine.ShouldExecuteTransaction(c.day, plan, start); got != c.want {
			t.Errorf("quarterly on %s = %v, want %v", c.day, got, c.want)
		}
	}
}

func TestShouldExecuteTransaction_Yearly(t *testing.T) {
	start := date(2025, time.March, 10)
	plan := engine.TransactionPlan{Frequency: engine.FreqYearly, Amount: money("100")}

	cases := []struct {
		day  engine.Date
		want bool
	}{
		{date(2025, time.March, 10), false}, // start year excluded
		{date(2026, time.March, 10), true},
		{date(2026, time.April, 10), false}, // same day, wrong month
		{date(2027, time.March, 10), true},
	}
	for _, c := range cases {
		if got := engine.ShouldExecuteTransaction(c.day, plan, start); got != c.want {
			t.Errorf("yearly on %s = %v, want %v", c.day, got, c.want)
		}
	}
}

func TestShouldExecuteTransaction_SuppressedDuringBackofficeVacation(t *testing.T) {
	// GIVEN: a monthly plan anchored on the 22nd
	// WHEN: the anniversary lands inside the summer backoffice window (Jul 14 - Aug 3 2025)
	// THEN: the transaction is skipped, and resumes the following month
	start := date(2025, time.March, 22)
	plan := engine.TransactionPlan{Frequency: engine.FreqMonthly, Amount: money("100")}

	if !engine.ShouldExecuteTransaction(date(2025, time.June, 22), plan, start) {
		t.Error("June 22 should fire")
	}
	if engine.ShouldExecuteTransaction(date(2025, time.July, 22), plan, start) {
		t.Error("July 22 falls in the backoffice window and must not fire")
	}
	if !engine.ShouldExecuteTransaction(date(2025, time.August, 22), plan, start) {
		t.Error("August 22 should fire again")
	}
}

func TestWithdrawalFee_StepsUpAfterSecondWithdrawal(t *testing.T) {
	amount := money("100")

	if got := engine.WithdrawalFee(amount, 0); !got.Equal(money("1.25")) {
		t.Errorf("first withdrawal fee = %s, want 1.25", got)
	}
	if got := engine.WithdrawalFee(amount, 1); !got.Equal(money("1.25")) {
		t.Errorf("second withdrawal fee = %s, want 1.25", got)
	}
	if got := engine.WithdrawalFee(amount, 2); !got.Equal(money("2.5")) {
		t.Errorf("third withdrawal fee = %s, want 2.50", got)
	}
	if got := engine.WithdrawalFee(amount, 7); !got.Equal(money("2.5")) {
		t.Errorf("later withdrawal fee = %s, want 2.50", got)
	}
}
