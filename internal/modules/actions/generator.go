// Package actions converts portfolio metrics into a ranked, deduplicated list
// of recommended interventions. Rules are evaluated in a fixed sequence so the
// evaluation order, not rule wording, decides which conditions win.
package actions

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/aristath/loansentry/internal/modules/metrics"
)

// Rule thresholds
const (
	HighRiskShareThreshold = 25.0 // % of loans

	CollectionLowThreshold      = 80.0 // % efficiency
	CollectionCriticalThreshold = 70.0

	SectorShareHighThreshold   = 30.0 // % of exposure
	SectorShareSevereThreshold = 40.0

	NPARateHighThreshold     = 5.0 // % of exposure
	NPARateCriticalThreshold = 10.0

	WeeklyRiskDeltaThreshold = 5.0 // points

	EarlyDelinquencyShareThreshold = 15.0 // % of loans

	// Broadly-healthy gates for the routine-monitoring fallback
	HealthyNPARate       = 3.0
	HealthyCollection    = 85.0
	HealthyHighRiskShare = 20.0

	// Operators cannot act on more than a handful of items at once
	MaxActions = 5
)

// rule appends zero or one action for the metrics snapshot
type rule func(m metrics.PortfolioMetrics) *Action

// Generate runs the fixed rule sequence over the snapshot and returns the
// actions sorted by priority (stable within equal priorities, preserving rule
// order), truncated to the top 5.
func Generate(m metrics.PortfolioMetrics) []Action {
	rules := []rule{
		par90Rule,
		highRiskShareRule,
		collectionRule,
		par60ProgressionRule,
		sectorConcentrationRule,
		npaRecoveryRule,
		riskTrendRule,
		earlyDelinquencyRule,
	}

	generated := make([]Action, 0, len(rules))
	for _, r := range rules {
		if a := r(m); a != nil {
			a.ID = uuid.NewString()
			generated = append(generated, *a)
		}
	}

	if fallback := routineMonitoringRule(m, len(generated)); fallback != nil {
		fallback.ID = uuid.NewString()
		generated = append(generated, *fallback)
	}

	sort.SliceStable(generated, func(i, j int) bool {
		return generated[i].Priority.rank() < generated[j].Priority.rank()
	})

	if len(generated) > MaxActions {
		generated = generated[:MaxActions]
	}
	return generated
}

// par90Rule: any loan past the 90-day mark needs immediate contact
func par90Rule(m metrics.PortfolioMetrics) *Action {
	if m.PAR90Count <= 0 {
		return nil
	}
	return &Action{
		Title:       "Contact severely delinquent borrowers",
		Description: fmt.Sprintf("%d loans are 90+ days past due and must be contacted immediately", m.PAR90Count),
		Priority:    PriorityCritical,
		Category:    CategoryDelinquency,
		Impact:      fmt.Sprintf("%.0f exposure at risk", m.PAR90Exposure),
		Metrics: map[string]float64{
			"par90_count":    float64(m.PAR90Count),
			"par90_exposure": m.PAR90Exposure,
		},
	}
}

func highRiskShareRule(m metrics.PortfolioMetrics) *Action {
	share := m.HighRiskShare()
	if share <= HighRiskShareThreshold {
		return nil
	}
	return &Action{
		Title:       "Review high-risk loan accounts",
		Description: fmt.Sprintf("%.1f%% of active loans sit in the high-risk band; schedule account reviews", share),
		Priority:    PriorityHigh,
		Category:    CategoryRisk,
		Impact:      fmt.Sprintf("%d loans flagged high risk", m.HighRiskCount),
		Metrics:     map[string]float64{"high_risk_share": share},
	}
}

func collectionRule(m metrics.PortfolioMetrics) *Action {
	if m.CollectionEfficiency >= CollectionLowThreshold {
		return nil
	}
	priority := PriorityHigh
	if m.CollectionEfficiency < CollectionCriticalThreshold {
		priority = PriorityCritical
	}
	return &Action{
		Title:       "Improve collection efficiency",
		Description: fmt.Sprintf("Collection efficiency is %.1f%%, below the %.0f%% operating floor", m.CollectionEfficiency, CollectionLowThreshold),
		Priority:    priority,
		Category:    CategoryCollections,
		Impact:      "Recover shortfall between scheduled and received installments",
		Metrics:     map[string]float64{"collection_efficiency": m.CollectionEfficiency},
	}
}

// par60ProgressionRule fires when the 60+ bucket is small relative to the 90+
// bucket: those loans are actively rolling toward 90+ and early intervention
// can still stop them.
func par60ProgressionRule(m metrics.PortfolioMetrics) *Action {
	if m.PAR60Count <= 0 || m.PAR60Count >= 2*m.PAR90Count {
		return nil
	}
	return &Action{
		Title:       "Intervene on 60+ DPD loans",
		Description: fmt.Sprintf("%d loans in the 60+ bucket are progressing toward 90+; restructure or collect now", m.PAR60Count),
		Priority:    PriorityHigh,
		Category:    CategoryDelinquency,
		Impact:      fmt.Sprintf("%.0f exposure can still be kept out of the 90+ bucket", m.PAR60Exposure),
		Metrics:     map[string]float64{"par60_count": float64(m.PAR60Count)},
	}
}

func sectorConcentrationRule(m metrics.PortfolioMetrics) *Action {
	if m.TopSectorShare <= SectorShareHighThreshold {
		return nil
	}
	description := fmt.Sprintf("Sector %s holds %.1f%% of exposure; diversify new disbursements", m.TopSectorName, m.TopSectorShare)
	if m.TopSectorShare > SectorShareSevereThreshold {
		description = fmt.Sprintf("Severe concentration: sector %s holds %.1f%% of exposure; stop growing this book and diversify", m.TopSectorName, m.TopSectorShare)
	}
	return &Action{
		Title:       "Diversify sector exposure",
		Description: description,
		Priority:    PriorityHigh,
		Category:    CategoryConcentration,
		Impact:      "Reduce single-sector downturn sensitivity",
		Metrics:     map[string]float64{"top_sector_share": m.TopSectorShare},
	}
}

func npaRecoveryRule(m metrics.PortfolioMetrics) *Action {
	if m.NPARate <= NPARateHighThreshold {
		return nil
	}
	priority := PriorityHigh
	if m.NPARate > NPARateCriticalThreshold {
		priority = PriorityCritical
	}
	return &Action{
		Title:       "Accelerate NPA recovery",
		Description: fmt.Sprintf("Gross NPA rate is %.1f%% of exposure; escalate recovery and legal proceedings", m.NPARate),
		Priority:    priority,
		Category:    CategoryRecovery,
		Impact:      fmt.Sprintf("%.0f exposure classified non-performing", m.NPAExposure),
		Metrics:     map[string]float64{"npa_rate": m.NPARate},
	}
}

func riskTrendRule(m metrics.PortfolioMetrics) *Action {
	if m.WeeklyRiskDelta <= WeeklyRiskDeltaThreshold {
		return nil
	}
	return &Action{
		Title:       "Investigate portfolio risk deterioration",
		Description: fmt.Sprintf("Average risk score rose %.1f points week-over-week; identify the driving segments", m.WeeklyRiskDelta),
		Priority:    PriorityHigh,
		Category:    CategoryMonitoring,
		Impact:      "Catch systemic deterioration before delinquency materializes",
		Metrics:     map[string]float64{"weekly_risk_delta": m.WeeklyRiskDelta},
	}
}

func earlyDelinquencyRule(m metrics.PortfolioMetrics) *Action {
	early := m.EarlyDelinquencyCount()
	if m.TotalLoans <= 0 || float64(early) <= float64(m.TotalLoans)*EarlyDelinquencyShareThreshold/100 {
		return nil
	}
	return &Action{
		Title:       "Run preventive outreach on early delinquencies",
		Description: fmt.Sprintf("%d loans are 30-59 days past due; payment reminders and field visits can prevent roll-forward", early),
		Priority:    PriorityMedium,
		Category:    CategoryPrevention,
		Impact:      "Stop the 30-59 DPD bucket from rolling into 60+",
		Metrics:     map[string]float64{"early_delinquency_count": float64(early)},
	}
}

// routineMonitoringRule appends the LOW fallback when nothing else fired or
// the portfolio is broadly healthy.
func routineMonitoringRule(m metrics.PortfolioMetrics, generatedCount int) *Action {
	healthy := m.NPARate < HealthyNPARate &&
		m.CollectionEfficiency > HealthyCollection &&
		m.HighRiskShare() < HealthyHighRiskShare

	if generatedCount > 0 && !healthy {
		return nil
	}
	return &Action{
		Title:       "Continue routine monitoring",
		Description: "Portfolio indicators are within normal operating ranges; keep the standard review cadence",
		Priority:    PriorityLow,
		Category:    CategoryMonitoring,
		Impact:      "Maintain current risk posture",
	}
}
