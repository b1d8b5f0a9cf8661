/*
step.go - The daily step function

PURPOSE:
  Computes one day's mutations: the investor's own profit accrual,
  referral commission fan-out across the two-level partner tree,
  scheduled deposits and withdrawals with fees. Produces the day's
  immutable record and advances the mutable state.

ORDER OF OPERATIONS (working days only):
  1. Investor's net profit from the stake AT DAY START (tier evaluated
     before any same-day mutation)
  2. Each L1 with positive stake: restake its own net profit, pay the
     L1 fraction of that profit to the investor
  3. Each L2 under that L1 with positive stake: restake its own net
     profit, pay the L2 fraction to the investor and the L1 fraction
     to the parent L1's stake (tagged with the originating L2)
  4. Orphan L2s: L2 fraction to the investor only, no fan-out
  5. Add the investor's own net profit (from 1), after all commissions
  6. Deposits, then withdrawals with fees, on any non-backoffice day
     matching the schedule

  Partners always restake unconditionally; they share the working-day
  gate but are not subject to the investor's restaking allow-list.

  The recorded start-of-day stake is reconstructed arithmetically from
  the post-mutation stake, so the per-day balance identity
    stake + profit + commissions + deposit - withdrawal - fee = newStake
  holds by construction.
*/
package engine

// topology is the referral tree, partitioned once up front.
type topology struct {
	l1Partners []Partner
	l2ByL1     map[string][]Partner
	orphanL2s  []Partner
}

// buildTopology partitions the flat partner list by level and parent
// reference. An L2 whose ParentL1ID matches no L1 is treated as an
// orphan, not rejected.
func buildTopology(partners []Partner) topology {
	topo := topology{l2ByL1: make(map[string][]Partner)}

	l1IDs := make(map[string]bool)
	for _, p := range partners {
		if p.Level == LevelL1 {
			topo.l1Partners = append(topo.l1Partners, p)
			l1IDs[p.ID] = true
		}
	}
	for _, p := range partners {
		if p.Level != LevelL2 {
			continue
		}
		if p.ParentL1ID != "" && l1IDs[p.ParentL1ID] {
			topo.l2ByL1[p.ParentL1ID] = append(topo.l2ByL1[p.ParentL1ID], p)
		} else {
			topo.orphanL2s = append(topo.orphanL2s, p)
		}
	}
	return topo
}

// state is the mutable simulation state threaded through the date
// loop. Scoped to one Simulate call, never shared.
type state struct {
	stake                Money
	partnerStakes        map[string]Money
	withdrawalsThisMonth int
}

func newState(params SimulationParams) *state {
	st := &state{
		stake:         params.InitialStake,
		partnerStakes: make(map[string]Money, len(params.Partners)),
	}
	for _, p := range params.Partners {
		st.partnerStakes[p.ID] = p.InitialStake
	}
	return st
}

// step executes one calendar day, mutating st and returning the day's
// record. Dormant partners (zero or negative stake) are skipped, not
// errors.
func (r *run) step(day Date, st *state) DailyResult {
	weekend := day.IsWeekend()
	vacation := IsVacationPeriod(day)

	profit := ZeroMoney()
	deposit := ZeroMoney()
	withdrawal := ZeroMoney()
	fee := ZeroMoney()
	var commissions []PartnerCommission

	if IsWorkingDay(day, r.restaking) {
		rate := DailyProfitRate(day, r.overrides)

		// Investor's own net profit from the start-of-day stake and tier.
		// Added to the stake only after all commission additions.
		profit = st.stake.Mul(rate).Mul(ProfitShare(st.stake))

		for _, l1 := range r.topo.l1Partners {
			l1Stake := st.partnerStakes[l1.ID]
			if !l1Stake.IsPositive() {
				continue
			}

			// L1 restakes its own net profit unconditionally.
			l1Net := l1Stake.Mul(rate).Mul(ProfitShare(l1Stake))
			st.partnerStakes[l1.ID] = l1Stake.Add(l1Net)

			// Commission to the investor, at the L1's own stake tier.
			l1Commission := l1Net.Mul(CommissionRates(l1Stake).L1)
			commissions = append(commissions, PartnerCommission{
				PartnerID:   l1.ID,
				PartnerName: l1.Name,
				Level:       LevelL1,
				Commission:  l1Commission,
			})
			st.stake = st.stake.Add(l1Commission)

			for _, l2 := range r.topo.l2ByL1[l1.ID] {
				l2Stake := st.partnerStakes[l2.ID]
				if !l2Stake.IsPositive() {
					continue
				}

				l2Net := l2Stake.Mul(rate).Mul(ProfitShare(l2Stake))
				st.partnerStakes[l2.ID] = l2Stake.Add(l2Net)

				l2Rates := CommissionRates(l2Stake)

				// L2 fraction to the investor.
				l2Commission := l2Net.Mul(l2Rates.L2)
				commissions = append(commissions, PartnerCommission{
					PartnerID:   l2.ID,
					PartnerName: l2.Name,
					Level:       LevelL2,
					Commission:  l2Commission,
				})
				st.stake = st.stake.Add(l2Commission)

				// L1 fraction fans out to the parent L1's stake, a second
				// addition beyond the L1's own restake above.
				fanOut := l2Net.Mul(l2Rates.L1)
				commissions = append(commissions, PartnerCommission{
					PartnerID:     l1.ID,
					PartnerName:   l1.Name,
					Level:         LevelL1,
					Commission:    fanOut,
					FromPartnerID: l2.ID,
				})
				st.partnerStakes[l1.ID] = st.partnerStakes[l1.ID].Add(fanOut)
			}
		}

		// Orphan L2s: commission to the investor only.
		for _, l2 := range r.topo.orphanL2s {
			l2Stake := st.partnerStakes[l2.ID]
			if !l2Stake.IsPositive() {
				continue
			}

			l2Net := l2Stake.Mul(rate).Mul(ProfitShare(l2Stake))
			st.partnerStakes[l2.ID] = l2Stake.Add(l2Net)

			l2Commission := l2Net.Mul(CommissionRates(l2Stake).L2)
			commissions = append(commissions, PartnerCommission{
				PartnerID:   l2.ID,
				PartnerName: l2.Name,
				Level:       LevelL2,
				Commission:  l2Commission,
			})
			st.stake = st.stake.Add(l2Commission)
		}

		st.stake = st.stake.Add(profit)
	}

	for _, plan := range r.params.Deposits {
		if ShouldExecuteTransaction(day, plan, r.start) {
			deposit = deposit.Add(plan.Amount)
			st.stake = st.stake.Add(plan.Amount)
		}
	}

	for _, plan := range r.params.Withdrawals {
		if !ShouldExecuteTransaction(day, plan, r.start) {
			continue
		}

		amount := plan.Amount
		if !plan.Percent.IsZero() {
			// Percentage withdrawals estimate the month's profit with the
			// DEFAULT nominal rate and the current tier, not the realized
			// rate.
			monthlyProfit := st.stake.Mul(DefaultMonthlyGrossRate).Mul(ProfitShare(st.stake))
			amount = monthlyProfit.Mul(plan.Percent.Div(dec("100")))
		}

		planFee := WithdrawalFee(amount, st.withdrawalsThisMonth)
		withdrawal = withdrawal.Add(amount)
		fee = fee.Add(planFee)
		st.stake = st.stake.Sub(amount).Sub(planFee)
		st.withdrawalsThisMonth++
	}

	// Reconstruct the start-of-day stake from the post-mutation stake.
	commissionTotal := ZeroMoney()
	for _, pc := range commissions {
		commissionTotal = commissionTotal.Add(pc.Commission)
	}
	startStake := st.stake.Sub(profit).Sub(commissionTotal).Sub(deposit).Add(withdrawal).Add(fee)

	return DailyResult{
		Date:               day,
		Stake:              startStake,
		Profit:             profit,
		PartnerCommissions: commissions,
		Deposit:            deposit,
		Withdrawal:         withdrawal,
		WithdrawalFee:      fee,
		NewStake:           st.stake,
		IsWeekend:          weekend,
		IsVacation:         vacation,
	}
}
