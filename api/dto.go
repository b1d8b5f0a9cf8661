/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the engine's decimal-based result tree from the external
  contract: export collaborators (CSV/PDF generators, charting UIs)
  consume plain JSON numbers and ISO date strings.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - scenario/codec.go: ParamsJSON, the request-side parameter shape
*/
package api

import (
	"github.com/stakeflow/compound-engine/engine"
	"github.com/stakeflow/compound-engine/scenario"
	"github.com/stakeflow/compound-engine/store/sqlite"
)

// =============================================================================
// SIMULATION RESULTS
// =============================================================================

// SimulationResponse is the full result of one engine run.
type SimulationResponse struct {
	Years       []YearlyResultDTO `json:"years"`
	LevelTotals LevelTotalsDTO    `json:"level_totals"`
}

type YearlyResultDTO struct {
	Year    int                `json:"year"`
	Months  []MonthlyResultDTO `json:"months"`
	Summary SummaryDTO         `json:"summary"`
}

type MonthlyResultDTO struct {
	Year    int              `json:"year"`
	Month   int              `json:"month"`
	Days    []DailyResultDTO `json:"days"`
	Summary SummaryDTO       `json:"summary"`
}

type DailyResultDTO struct {
	Date               string                 `json:"date"`
	Stake              float64                `json:"stake"`
	Profit             float64                `json:"profit"`
	PartnerCommissions []PartnerCommissionDTO `json:"partner_commissions,omitempty"`
	Deposit            float64                `json:"deposit"`
	Withdrawal         float64                `json:"withdrawal"`
	WithdrawalFee      float64                `json:"withdrawal_fee"`
	NewStake           float64                `json:"new_stake"`
	IsWeekend          bool                   `json:"is_weekend"`
	IsVacation         bool                   `json:"is_vacation"`
}

type PartnerCommissionDTO struct {
	PartnerID     string  `json:"partner_id"`
	PartnerName   string  `json:"partner_name"`
	Level         string  `json:"level"`
	Commission    float64 `json:"commission"`
	FromPartnerID string  `json:"from_partner_id,omitempty"`
}

type PartnerSummaryDTO struct {
	PartnerID       string  `json:"partner_id"`
	PartnerName     string  `json:"partner_name"`
	Level           string  `json:"level"`
	TotalCommission float64 `json:"total_commission"`
}

type SummaryDTO struct {
	StartStake       float64             `json:"start_stake"`
	EndStake         float64             `json:"end_stake"`
	TotalProfit      float64             `json:"total_profit"`
	PartnerSummaries []PartnerSummaryDTO `json:"partner_summaries,omitempty"`
	TotalDeposits    float64             `json:"total_deposits"`
	TotalWithdrawals float64             `json:"total_withdrawals"`
}

type LevelTotalsDTO struct {
	Yearly  []LevelTotalDTO `json:"yearly"`
	Monthly []LevelTotalDTO `json:"monthly"`
}

type LevelTotalDTO struct {
	Year    int     `json:"year"`
	Month   int     `json:"month,omitempty"`
	L1Total float64 `json:"l1_total"`
	L2Total float64 `json:"l2_total"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO represents either a built-in preset or a saved scenario.
type ScenarioDTO struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Builtin     bool                `json:"builtin"`
	Params      scenario.ParamsJSON `json:"params"`
	CreatedAt   string              `json:"created_at,omitempty"`
}

// SaveScenarioRequest is the request body for saving a scenario.
type SaveScenarioRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Params      scenario.ParamsJSON `json:"params"`
}

// =============================================================================
// RATE TABLES
// =============================================================================

type RateTiersResponse struct {
	ProfitShare []ProfitTierDTO     `json:"profit_share"`
	Commission  []CommissionTierDTO `json:"commission"`
}

type ProfitTierDTO struct {
	MinStake float64 `json:"min_stake"`
	Share    float64 `json:"share"`
}

type CommissionTierDTO struct {
	MinStake float64 `json:"min_stake"`
	L1       float64 `json:"l1"`
	L2       float64 `json:"l2"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toSimulationResponse(years []engine.YearlyResult) SimulationResponse {
	resp := SimulationResponse{Years: make([]YearlyResultDTO, 0, len(years))}
	for _, y := range years {
		resp.Years = append(resp.Years, toYearlyDTO(y))
	}
	yearly, monthly := engine.ComputeLevelTotals(years)
	for _, lt := range yearly {
		resp.LevelTotals.Yearly = append(resp.LevelTotals.Yearly, toLevelTotalDTO(lt))
	}
	for _, lt := range monthly {
		resp.LevelTotals.Monthly = append(resp.LevelTotals.Monthly, toLevelTotalDTO(lt))
	}
	return resp
}

func toYearlyDTO(y engine.YearlyResult) YearlyResultDTO {
	dto := YearlyResultDTO{Year: y.Year, Summary: toSummaryDTO(y.Summary)}
	for _, m := range y.Months {
		dto.Months = append(dto.Months, toMonthlyDTO(m))
	}
	return dto
}

func toMonthlyDTO(m engine.MonthlyResult) MonthlyResultDTO {
	dto := MonthlyResultDTO{
		Year:    m.Year,
		Month:   int(m.Month),
		Summary: toSummaryDTO(m.Summary),
	}
	for _, day := range m.Days {
		dto.Days = append(dto.Days, toDailyDTO(day))
	}
	return dto
}

func toDailyDTO(d engine.DailyResult) DailyResultDTO {
	dto := DailyResultDTO{
		Date:          d.Date.ISO(),
		Stake:         d.Stake.Float64(),
		Profit:        d.Profit.Float64(),
		Deposit:       d.Deposit.Float64(),
		Withdrawal:    d.Withdrawal.Float64(),
		WithdrawalFee: d.WithdrawalFee.Float64(),
		NewStake:      d.NewStake.Float64(),
		IsWeekend:     d.IsWeekend,
		IsVacation:    d.IsVacation,
	}
	for _, pc := range d.PartnerCommissions {
		dto.PartnerCommissions = append(dto.PartnerCommissions, PartnerCommissionDTO{
			PartnerID:     pc.PartnerID,
			PartnerName:   pc.PartnerName,
			Level:         string(pc.Level),
			Commission:    pc.Commission.Float64(),
			FromPartnerID: pc.FromPartnerID,
		})
	}
	return dto
}

func toSummaryDTO(s engine.Summary) SummaryDTO {
	dto := SummaryDTO{
		StartStake:       s.StartStake.Float64(),
		EndStake:         s.EndStake.Float64(),
		TotalProfit:      s.TotalProfit.Float64(),
		TotalDeposits:    s.TotalDeposits.Float64(),
		TotalWithdrawals: s.TotalWithdrawals.Float64(),
	}
	for _, ps := range s.PartnerSummaries {
		dto.PartnerSummaries = append(dto.PartnerSummaries, PartnerSummaryDTO{
			PartnerID:       ps.PartnerID,
			PartnerName:     ps.PartnerName,
			Level:           string(ps.Level),
			TotalCommission: ps.TotalCommission.Float64(),
		})
	}
	return dto
}

func toLevelTotalDTO(lt engine.LevelTotal) LevelTotalDTO {
	return LevelTotalDTO{
		Year:    lt.Year,
		Month:   int(lt.Month),
		L1Total: lt.L1Total.Float64(),
		L2Total: lt.L2Total.Float64(),
	}
}

func presetToDTO(p scenario.Preset) ScenarioDTO {
	return ScenarioDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Builtin:     true,
		Params:      scenario.FromParams(p.Params),
	}
}

func savedToDTO(sc sqlite.Scenario) (ScenarioDTO, error) {
	var params scenario.ParamsJSON
	if err := unmarshalParams(sc.ParamsJSON, &params); err != nil {
		return ScenarioDTO{}, err
	}
	return ScenarioDTO{
		ID:          sc.ID,
		Name:        sc.Name,
		Description: sc.Description,
		Builtin:     false,
		Params:      params,
		CreatedAt:   sc.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}, nil
}
