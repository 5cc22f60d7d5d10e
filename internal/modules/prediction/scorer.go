// Package prediction implements the per-loan default probability model: a
// deterministic additive heuristic over five independently bounded components,
// designed to be explainable rather than statistically fitted.
package prediction

import (
	"fmt"
	"math"
	"sort"

	"github.com/aristath/loansentry/pkg/formulas"
)

// Scorer calculates default probability predictions for individual loans
type Scorer struct {
	sectorRisk SectorRiskTable
}

// NewScorer creates a scorer with the given sector risk multiplier table.
// A nil table behaves as all-1.0 multipliers.
func NewScorer(sectorRisk SectorRiskTable) *Scorer {
	return &Scorer{sectorRisk: sectorRisk}
}

// Score produces the default probability prediction for one loan. It is a
// pure function: no I/O, deterministic for identical input, and it never
// panics - missing fields fall back to neutral values.
func (s *Scorer) Score(data LoanData) Prediction {
	dpdScore := dpdComponent(data)
	paymentScore := paymentComponent(data)
	riskScore := riskTrajectoryComponent(data.CurrentRiskScore)
	sectorScore, sectorDesc := s.sectorComponent(data)
	npaScore := npaComponent(data.IsNPA)

	total := dpdScore + paymentScore + riskScore + sectorScore + npaScore
	probability := formulas.Round1(math.Min(total, MaxProbability))

	factors := buildFactors(data, dpdScore, paymentScore, riskScore, sectorScore, sectorDesc, npaScore)

	return Prediction{
		LoanID:             data.LoanID,
		DefaultProbability: probability,
		Confidence:         confidence(data),
		RiskLevel:          riskLevel(probability),
		Factors:            factors,
		Warnings:           warnings(data),
		RecommendedAction:  recommendedAction(data, probability),
	}
}

// dpdComponent scores current delinquency depth (max 30 points). A small bump
// is added when the last three DPD readings are strictly increasing; with
// fewer than three history points only the static tier applies.
func dpdComponent(data LoanData) float64 {
	var score, ceiling float64
	switch {
	case data.CurrentDPD >= DPDSevereDays:
		score, ceiling = DPDSevereScore, DPDSevereCeiling
	case data.CurrentDPD >= DPDHighDays:
		score, ceiling = DPDHighScore, DPDHighCeiling
	case data.CurrentDPD >= DPDElevatedDays:
		score, ceiling = DPDElevatedScore, DPDElevatedCeiling
	case data.CurrentDPD >= DPDEarlyDays:
		score, ceiling = DPDEarlyScore, DPDEarlyCeiling
	case data.CurrentDPD > 0:
		score, ceiling = DPDMinorScore, DPDEarlyCeiling
	default:
		return 0
	}

	if dpdAccelerating(data.History) {
		score = math.Min(score+DPDAccelerationBump, ceiling)
	}
	return score
}

// dpdAccelerating reports whether the last three DPD readings are strictly
// increasing.
func dpdAccelerating(history []RepaymentRecord) bool {
	n := len(history)
	if n < DPDAccelerationMinHistory {
		return false
	}
	last := history[n-3:]
	return last[0].DaysPastDue < last[1].DaysPastDue && last[1].DaysPastDue < last[2].DaysPastDue
}

// paymentComponent scores repayment behaviour (max 25 points). Consecutive
// trailing misses dominate; otherwise the overall missed rate applies.
func paymentComponent(data LoanData) float64 {
	if data.TotalPayments == 0 {
		return NoHistoryScore
	}

	switch missed := trailingMissed(data.History); {
	case missed >= ConsecutiveMissedSevere:
		return ConsecutiveMissedSevereScore
	case missed == ConsecutiveMissedHigh:
		return ConsecutiveMissedHighScore
	}

	switch rate := missedRate(data); {
	case rate >= MissedRateSevere:
		return MissedRateSevereScore
	case rate >= MissedRateHigh:
		return MissedRateHighScore
	case rate >= MissedRateLow:
		return MissedRateLowScore
	default:
		return 0
	}
}

// trailingMissed counts unpaid installments (nil payment date) at the end of
// the ordered history.
func trailingMissed(history []RepaymentRecord) int {
	count := 0
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].PaymentDate != nil {
			break
		}
		count++
	}
	return count
}

func missedRate(data LoanData) float64 {
	if data.TotalPayments <= 0 {
		return 0
	}
	return float64(data.MissedPayments) / float64(data.TotalPayments)
}

// riskTrajectoryComponent scores the current assessed risk (max 20 points)
func riskTrajectoryComponent(riskScore float64) float64 {
	switch {
	case riskScore >= RiskScoreSevere:
		return RiskScoreSevereScore
	case riskScore >= RiskScoreHigh:
		return RiskScoreHighScore
	case riskScore >= RiskScoreElevated:
		return RiskScoreElevatedScore
	case riskScore >= RiskScoreModerate:
		return RiskScoreModerateScore
	default:
		return 0
	}
}

// sectorComponent scores sector volatility: the base score times the
// configured multiplier, rounded to whole points (max 15 at multiplier 1.5).
func (s *Scorer) sectorComponent(data LoanData) (float64, string) {
	multiplier := s.sectorRisk.Multiplier(data.Sector)
	score := math.Round(SectorBaseScore * multiplier)

	var desc string
	switch {
	case multiplier > SectorMultiplierVolatile:
		desc = fmt.Sprintf("%s is a highly volatile sector (multiplier %.2f)", data.Sector, multiplier)
	case multiplier > SectorMultiplierElevated:
		desc = fmt.Sprintf("%s carries elevated sector risk (multiplier %.2f)", data.Sector, multiplier)
	default:
		desc = fmt.Sprintf("Baseline sector exposure for %s", data.Sector)
	}
	return score, desc
}

func npaComponent(isNPA bool) float64 {
	if isNPA {
		return NPAScore
	}
	return 0
}

// confidence estimates how much to trust the prediction based on the depth
// and completeness of the repayment history. Capped at 95: a heuristic model
// never reaches full confidence.
func confidence(data LoanData) float64 {
	c := ConfidenceBase

	switch n := len(data.History); {
	case n >= ConfidenceHistoryRich:
		c += ConfidenceHistoryRichScore
	case n >= ConfidenceHistoryMedium:
		c += ConfidenceHistoryMediumScore
	case n >= ConfidenceHistoryThin:
		c += ConfidenceHistoryThinScore
	}

	if len(data.History) > 0 && historyComplete(data.History) {
		c += ConfidenceCompleteDataScore
	}

	return math.Min(c, ConfidenceCap)
}

// historyComplete reports whether every record carries an amount paid.
func historyComplete(history []RepaymentRecord) bool {
	for i := range history {
		if history[i].AmountPaid == nil {
			return false
		}
	}
	return true
}

func riskLevel(probability float64) RiskLevel {
	switch {
	case probability >= RiskLevelHighThreshold:
		return RiskLevelHigh
	case probability >= RiskLevelMediumThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// recommendedAction picks the intervention via an ordered rule chain; the
// first matching rule wins.
func recommendedAction(data LoanData, probability float64) Action {
	switch {
	case data.IsNPA || probability >= ActionLegalProbability:
		return ActionLegal
	case probability >= ActionUrgentProbability || data.CurrentDPD >= DPDSevereDays:
		return ActionUrgentContact
	case probability >= ActionRestructureProbability || data.CurrentDPD >= DPDHighDays:
		return ActionRestructure
	case probability >= ActionEnhancedProbability || data.CurrentDPD >= DPDElevatedDays:
		return ActionEnhancedMonitoring
	default:
		return ActionRoutineMonitoring
	}
}

// warnings collects independent warning strings; several can co-occur.
func warnings(data LoanData) []string {
	var out []string

	switch {
	case data.CurrentDPD >= DPDSevereDays:
		out = append(out, fmt.Sprintf("Critical: %d days past due (90+ bucket)", data.CurrentDPD))
	case data.CurrentDPD >= DPDHighDays:
		out = append(out, fmt.Sprintf("Severe delinquency: %d days past due", data.CurrentDPD))
	case data.CurrentDPD >= DPDElevatedDays:
		out = append(out, fmt.Sprintf("Delinquent: %d days past due", data.CurrentDPD))
	}

	if missed := trailingMissed(data.History); missed >= ConsecutiveMissedHigh {
		out = append(out, fmt.Sprintf("%d consecutive missed payments", missed))
	}

	if data.CurrentRiskScore >= RiskScoreSevere {
		out = append(out, fmt.Sprintf("Risk score %.0f is in the critical band", data.CurrentRiskScore))
	}

	if data.IsNPA {
		out = append(out, "Loan is classified as NPA")
	}

	if data.TotalPayments > 0 && missedRate(data) >= WarnMissedRate {
		out = append(out, fmt.Sprintf("%.0f%% of payments missed", missedRate(data)*100))
	}

	return out
}

// buildFactors assembles the explainability breakdown: one factor per
// non-zero component, sorted by contribution, largest first.
func buildFactors(data LoanData, dpd, payment, risk, sector float64, sectorDesc string, npa float64) []Factor {
	factors := make([]Factor, 0, 5)

	add := func(name, description string, weight float64) {
		if weight <= 0 {
			return
		}
		factors = append(factors, Factor{
			Name:        name,
			Description: description,
			Weight:      weight,
			Direction:   DirectionIncreasing,
		})
	}

	dpdDesc := fmt.Sprintf("Current DPD of %d days", data.CurrentDPD)
	if dpdAccelerating(data.History) {
		dpdDesc += ", accelerating over the last three installments"
	}
	add("dpd_acceleration", dpdDesc, dpd)

	paymentDesc := fmt.Sprintf("%d of %d payments missed", data.MissedPayments, data.TotalPayments)
	if data.TotalPayments == 0 {
		paymentDesc = "No repayment history available"
	}
	add("payment_pattern", paymentDesc, payment)

	add("risk_trajectory", fmt.Sprintf("Current risk score %.0f", data.CurrentRiskScore), risk)
	add("sector_risk", sectorDesc, sector)
	add("npa_status", "Already classified as non-performing", npa)

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Weight > factors[j].Weight
	})

	return factors
}
