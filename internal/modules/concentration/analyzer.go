// Package concentration quantifies portfolio diversification risk along the
// sector, geography and single-borrower dimensions.
package concentration

import (
	"fmt"
	"sort"

	"github.com/aristath/loansentry/internal/domain"
	"github.com/aristath/loansentry/pkg/formulas"
)

// Concentration limits, expressed as percentage of total outstanding exposure.
const (
	SectorFlagThreshold    = 30.0 // Single sector above 30% is flagged
	GeographyFlagThreshold = 35.0 // Single geography above 35% is flagged
	CustomerFlagThreshold  = 10.0 // Single-name exposure above 10% is flagged

	// Customers below 1% of the portfolio are omitted from the breakdown
	CustomerReportingFloor = 1.0

	// Risk score above which a loan counts as at-risk within its group
	AtRiskScoreThreshold = 60.0

	// Severe single-sector share that adds an extra penalty
	SectorSevereThreshold = 40.0

	// Additive penalty points for the portfolio concentration score
	PenaltySectorFlagged    = 30.0
	PenaltyGeographyFlagged = 25.0
	PenaltyCustomerFlagged  = 20.0
	PenaltySectorSevere     = 15.0
)

// SectorConcentration groups loans by sector and computes exposure shares.
// Percentages are always relative to the total outstanding exposure of the
// input set, so results stay consistent for any filtered subset.
// Results are sorted by exposure, largest first.
func SectorConcentration(loans []domain.Loan) []SectorResult {
	type sectorAcc struct {
		exposure   float64
		loanCount  int
		riskScores []float64
		atRisk     int
	}

	groups := make(map[domain.Sector]*sectorAcc)
	totalExposure := 0.0

	for i := range loans {
		loan := &loans[i]
		acc := groups[loan.Sector]
		if acc == nil {
			acc = &sectorAcc{}
			groups[loan.Sector] = acc
		}

		acc.exposure += loan.OutstandingAmount
		acc.loanCount++
		totalExposure += loan.OutstandingAmount

		score := loan.CurrentRiskScore()
		acc.riskScores = append(acc.riskScores, score)
		if score > AtRiskScoreThreshold {
			acc.atRisk++
		}
	}

	results := make([]SectorResult, 0, len(groups))
	for sector, acc := range groups {
		pct := formulas.Round1(formulas.SafeRate(acc.exposure, totalExposure))
		results = append(results, SectorResult{
			Sector:       string(sector),
			Exposure:     acc.exposure,
			LoanCount:    acc.loanCount,
			Percentage:   pct,
			AvgRiskScore: formulas.Round1(formulas.Mean(acc.riskScores)),
			AtRiskLoans:  acc.atRisk,
			Flagged:      pct > SectorFlagThreshold,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Exposure != results[j].Exposure {
			return results[i].Exposure > results[j].Exposure
		}
		return results[i].Sector < results[j].Sector
	})

	return results
}

// GeographicConcentration groups loans by borrower geography. In addition to
// exposure shares it reports overdue exposure and the mean latest days-past-due
// per group. Loans without a hydrated customer fall into "UNKNOWN".
func GeographicConcentration(loans []domain.Loan) []GeoResult {
	type geoAcc struct {
		exposure  float64
		loanCount int
		overdue   float64
		dpds      []float64
	}

	groups := make(map[string]*geoAcc)
	totalExposure := 0.0

	for i := range loans {
		loan := &loans[i]
		geo := loan.Geography()
		acc := groups[geo]
		if acc == nil {
			acc = &geoAcc{}
			groups[geo] = acc
		}

		acc.exposure += loan.OutstandingAmount
		acc.loanCount++
		totalExposure += loan.OutstandingAmount

		dpd := loan.CurrentDPD()
		acc.dpds = append(acc.dpds, float64(dpd))
		if dpd > 0 {
			acc.overdue += loan.OutstandingAmount
		}
	}

	results := make([]GeoResult, 0, len(groups))
	for geo, acc := range groups {
		pct := formulas.Round1(formulas.SafeRate(acc.exposure, totalExposure))
		results = append(results, GeoResult{
			Geography:       geo,
			Exposure:        acc.exposure,
			LoanCount:       acc.loanCount,
			Percentage:      pct,
			OverdueExposure: acc.overdue,
			AvgDPD:          formulas.Round1(formulas.Mean(acc.dpds)),
			Flagged:         pct > GeographyFlagThreshold,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Exposure != results[j].Exposure {
			return results[i].Exposure > results[j].Exposure
		}
		return results[i].Geography < results[j].Geography
	})

	return results
}

// CustomerConcentration groups loans by borrower and reports single-name
// exposure. Borrowers below the reporting floor (1% of portfolio) are omitted.
func CustomerConcentration(loans []domain.Loan) []CustomerResult {
	type custAcc struct {
		exposure  float64
		loanCount int
	}

	groups := make(map[string]*custAcc)
	totalExposure := 0.0

	for i := range loans {
		loan := &loans[i]
		acc := groups[loan.CustomerID]
		if acc == nil {
			acc = &custAcc{}
			groups[loan.CustomerID] = acc
		}
		acc.exposure += loan.OutstandingAmount
		acc.loanCount++
		totalExposure += loan.OutstandingAmount
	}

	results := make([]CustomerResult, 0, len(groups))
	for customerID, acc := range groups {
		pct := formulas.Round1(formulas.SafeRate(acc.exposure, totalExposure))
		if pct < CustomerReportingFloor {
			continue
		}
		results = append(results, CustomerResult{
			CustomerID: customerID,
			Exposure:   acc.exposure,
			LoanCount:  acc.loanCount,
			Percentage: pct,
			Flagged:    pct > CustomerFlagThreshold,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Exposure != results[j].Exposure {
			return results[i].Exposure > results[j].Exposure
		}
		return results[i].CustomerID < results[j].CustomerID
	})

	return results
}

// PortfolioScore condenses all three dimensions into a single additive penalty
// score (0-100) with a human-readable description per triggered condition.
func PortfolioScore(loans []domain.Loan) Score {
	result := Score{Risks: []string{}}
	if len(loans) == 0 {
		return result
	}

	sectors := SectorConcentration(loans)
	geographies := GeographicConcentration(loans)
	customers := CustomerConcentration(loans)

	result.SectorHHI = formulas.Round1(formulas.HerfindahlIndex(exposuresOfSectors(sectors)))
	result.GeographyHHI = formulas.Round1(formulas.HerfindahlIndex(exposuresOfGeos(geographies)))
	// The customer HHI is computed over every borrower, not the floored
	// reporting list, so granular books are not biased upward.
	result.CustomerHHI = formulas.Round1(formulas.HerfindahlIndex(customerExposures(loans)))

	score := 0.0

	if flagged := firstFlaggedSector(sectors); flagged != nil {
		score += PenaltySectorFlagged
		result.Risks = append(result.Risks, fmt.Sprintf(
			"Sector %s holds %.1f%% of exposure, above the %.0f%% limit",
			flagged.Sector, flagged.Percentage, SectorFlagThreshold))
	}

	for i := range geographies {
		if geographies[i].Flagged {
			score += PenaltyGeographyFlagged
			result.Risks = append(result.Risks, fmt.Sprintf(
				"Geography %s holds %.1f%% of exposure, above the %.0f%% limit",
				geographies[i].Geography, geographies[i].Percentage, GeographyFlagThreshold))
			break
		}
	}

	for i := range customers {
		if customers[i].Flagged {
			score += PenaltyCustomerFlagged
			result.Risks = append(result.Risks, fmt.Sprintf(
				"Borrower %s holds %.1f%% of exposure, above the %.0f%% single-name limit",
				customers[i].CustomerID, customers[i].Percentage, CustomerFlagThreshold))
			break
		}
	}

	if len(sectors) > 0 && sectors[0].Percentage > SectorSevereThreshold {
		score += PenaltySectorSevere
		result.Risks = append(result.Risks, fmt.Sprintf(
			"Severe sector concentration: %s at %.1f%% of exposure",
			sectors[0].Sector, sectors[0].Percentage))
	}

	if score > 100 {
		score = 100
	}
	result.Score = score

	return result
}

func firstFlaggedSector(sectors []SectorResult) *SectorResult {
	for i := range sectors {
		if sectors[i].Flagged {
			return &sectors[i]
		}
	}
	return nil
}

func exposuresOfSectors(results []SectorResult) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.Exposure
	}
	return out
}

func exposuresOfGeos(results []GeoResult) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.Exposure
	}
	return out
}

func customerExposures(loans []domain.Loan) []float64 {
	groups := make(map[string]float64)
	for i := range loans {
		groups[loans[i].CustomerID] += loans[i].OutstandingAmount
	}
	out := make([]float64, 0, len(groups))
	for _, exposure := range groups {
		out = append(out, exposure)
	}
	return out
}
