// Package metrics derives the flat portfolio snapshot (exposure totals, NPA
// figures, PAR buckets, collection efficiency) that the health aggregator and
// the smart action generator consume.
package metrics

import (
	"sort"

	"github.com/aristath/loansentry/internal/domain"
	"github.com/aristath/loansentry/pkg/formulas"
)

// High-risk classification threshold on the current risk score. Matches the
// HIGH band of the risk category derivation (scores above 75).
const HighRiskScoreThreshold = 75.0

// PAR bucket boundaries in days past due
const (
	PAR30Days = 30
	PAR60Days = 60
	PAR90Days = 90
)

// PortfolioMetrics is a flat snapshot of portfolio-level figures. Counts and
// exposures cover active (non-closed) loans; WeeklyRiskDelta and
// TopSectorName/TopSectorShare may also be supplied directly by callers that
// track their own history.
type PortfolioMetrics struct {
	TotalLoans    int     `json:"total_loans"`
	TotalExposure float64 `json:"total_exposure"`

	NPACount    int     `json:"npa_count"`
	NPAExposure float64 `json:"npa_exposure"`
	NPARate     float64 `json:"npa_rate"` // % of exposure

	HighRiskCount int     `json:"high_risk_count"`
	AvgRiskScore  float64 `json:"avg_risk_score"`

	PAR30Count    int     `json:"par30_count"`
	PAR30Exposure float64 `json:"par30_exposure"`
	PAR60Count    int     `json:"par60_count"`
	PAR60Exposure float64 `json:"par60_exposure"`
	PAR90Count    int     `json:"par90_count"`
	PAR90Exposure float64 `json:"par90_exposure"`
	AvgDPD        float64 `json:"avg_dpd"`

	CollectionEfficiency float64 `json:"collection_efficiency"` // %

	TopSectorName  string  `json:"top_sector_name,omitempty"`
	TopSectorShare float64 `json:"top_sector_share"` // % of exposure

	// Week-over-week movement of the average risk score, supplied by the
	// caller when available. Zero means unknown or unchanged.
	WeeklyRiskDelta float64 `json:"weekly_risk_delta"`
}

// Build computes the snapshot from hydrated loan records. Closed loans are
// excluded; every division is guarded so empty portfolios yield zero values.
func Build(loans []domain.Loan) PortfolioMetrics {
	var m PortfolioMetrics

	var riskScores, dpds []float64
	var dueTotal, paidTotal float64
	sectorExposure := make(map[domain.Sector]float64)

	for i := range loans {
		loan := &loans[i]
		if loan.Status == domain.LoanStatusClosed {
			continue
		}

		m.TotalLoans++
		m.TotalExposure += loan.OutstandingAmount
		sectorExposure[loan.Sector] += loan.OutstandingAmount

		if loan.Status == domain.LoanStatusNPA {
			m.NPACount++
			m.NPAExposure += loan.OutstandingAmount
		}

		score := loan.CurrentRiskScore()
		riskScores = append(riskScores, score)
		if score > HighRiskScoreThreshold {
			m.HighRiskCount++
		}

		dpd := loan.CurrentDPD()
		dpds = append(dpds, float64(dpd))
		if dpd >= PAR30Days {
			m.PAR30Count++
			m.PAR30Exposure += loan.OutstandingAmount
		}
		if dpd >= PAR60Days {
			m.PAR60Count++
			m.PAR60Exposure += loan.OutstandingAmount
		}
		if dpd >= PAR90Days {
			m.PAR90Count++
			m.PAR90Exposure += loan.OutstandingAmount
		}

		for j := range loan.Repayments {
			r := &loan.Repayments[j]
			dueTotal += r.EMIAmount
			if r.PaymentAmount != nil {
				paidTotal += *r.PaymentAmount
			}
		}
	}

	m.NPARate = formulas.Round1(formulas.SafeRate(m.NPAExposure, m.TotalExposure))
	m.AvgRiskScore = formulas.Round1(formulas.Mean(riskScores))
	m.AvgDPD = formulas.Round1(formulas.Mean(dpds))
	m.CollectionEfficiency = formulas.Round1(formulas.SafeRate(paidTotal, dueTotal))

	sectors := make([]string, 0, len(sectorExposure))
	for sector := range sectorExposure {
		sectors = append(sectors, string(sector))
	}
	sort.Strings(sectors)
	for _, sector := range sectors {
		share := formulas.SafeRate(sectorExposure[domain.Sector(sector)], m.TotalExposure)
		if share > m.TopSectorShare {
			m.TopSectorShare = share
			m.TopSectorName = sector
		}
	}
	m.TopSectorShare = formulas.Round1(m.TopSectorShare)

	return m
}

// PAR30Rate returns the share of active loans 30+ days past due, in percent
func (m PortfolioMetrics) PAR30Rate() float64 {
	return formulas.SafeRate(float64(m.PAR30Count), float64(m.TotalLoans))
}

// HighRiskShare returns the share of active loans in the high-risk band,
// in percent
func (m PortfolioMetrics) HighRiskShare() float64 {
	return formulas.SafeRate(float64(m.HighRiskCount), float64(m.TotalLoans))
}

// EarlyDelinquencyCount returns loans in the 30-59 DPD bucket: delinquent but
// not yet 60+, the population preventive outreach targets.
func (m PortfolioMetrics) EarlyDelinquencyCount() int {
	return m.PAR30Count - m.PAR60Count
}
