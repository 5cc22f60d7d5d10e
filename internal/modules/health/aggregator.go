// Package health compresses four independently scaled portfolio metrics into
// one weighted 0-100 score with a qualitative grade. Component maps are
// piecewise-linear, calibrated against fixed industry benchmark breakpoints.
package health

import (
	"github.com/aristath/loansentry/pkg/formulas"
)

// Component weights. Fixed, sum to 1.0.
const (
	WeightNPA        = 0.30
	WeightCollection = 0.30
	WeightRisk       = 0.20
	WeightDPD        = 0.20
)

// Grade boundaries on the overall score. Boundaries are exact: 80.0 grades
// Excellent, 79.9 grades Good.
const (
	GradeExcellentMin = 80.0
	GradeGoodMin      = 65.0
	GradeFairMin      = 50.0
	GradePoorMin      = 35.0
)

// Compute builds the composite health score. Rounding happens only at the
// final output fields, never mid-computation.
func Compute(in Input) Breakdown {
	npa := npaScore(in.GrossNPARate)
	collection := collectionScore(in.CollectionEfficiency)
	risk := riskScore(in.AvgRiskScore, in.HighRiskCount, in.TotalLoans)
	dpd := dpdScore(in.PAR30Rate, in.AvgDPD)

	overall := formulas.Round1(npa*WeightNPA + collection*WeightCollection + risk*WeightRisk + dpd*WeightDPD)

	trend := 0.0
	if in.PreviousScore != nil {
		trend = formulas.Round1(overall - *in.PreviousScore)
	}

	return Breakdown{
		Overall: overall,
		Components: map[string]float64{
			"npa":        formulas.Round1(npa),
			"collection": formulas.Round1(collection),
			"risk":       formulas.Round1(risk),
			"dpd":        formulas.Round1(dpd),
		},
		Weights: map[string]float64{
			"npa":        WeightNPA,
			"collection": WeightCollection,
			"risk":       WeightRisk,
			"dpd":        WeightDPD,
		},
		Grade: gradeFor(overall),
		Trend: trend,
	}
}

func gradeFor(overall float64) Grade {
	switch {
	case overall >= GradeExcellentMin:
		return GradeExcellent
	case overall >= GradeGoodMin:
		return GradeGood
	case overall >= GradeFairMin:
		return GradeFair
	case overall >= GradePoorMin:
		return GradePoor
	default:
		return GradeCritical
	}
}

// npaScore maps the gross NPA rate to 0-100. A 2% gross NPA rate is the
// industry comfort line; beyond 20% the score floors at 10.
func npaScore(rate float64) float64 {
	switch {
	case rate <= 2:
		return 100
	case rate <= 5:
		return interpolate(rate, 2, 5, 85, 70)
	case rate <= 10:
		return interpolate(rate, 5, 10, 70, 40)
	case rate <= 20:
		return interpolate(rate, 10, 20, 40, 10)
	default:
		return 10
	}
}

// collectionScore maps collection efficiency (%) to 0-100. Below 50%
// efficiency the score decays linearly to zero.
func collectionScore(efficiency float64) float64 {
	switch {
	case efficiency >= 90:
		return 100
	case efficiency >= 80:
		return interpolate(efficiency, 80, 90, 70, 100)
	case efficiency >= 70:
		return interpolate(efficiency, 70, 80, 40, 70)
	case efficiency >= 50:
		return interpolate(efficiency, 50, 70, 10, 40)
	case efficiency > 0:
		return efficiency / 5
	default:
		return 0
	}
}

// riskScore combines the inverted average risk score (70% of the component)
// with a bonus for low high-risk-loan concentration (up to 30 points).
func riskScore(avgRiskScore float64, highRiskCount, totalLoans int) float64 {
	inverse := 100 - avgRiskScore
	if inverse < 0 {
		inverse = 0
	}
	score := inverse * 0.7

	highRiskShare := 0.0
	if totalLoans > 0 {
		highRiskShare = float64(highRiskCount) / float64(totalLoans) * 100
	}

	switch {
	case highRiskShare <= 10:
		score += 30
	case highRiskShare <= 20:
		score += 20
	case highRiskShare <= 30:
		score += 10
	}

	return score
}

// dpdScore combines a PAR30-rate ladder (60% of the component) with an
// average-DPD ladder (40%).
func dpdScore(par30Rate, avgDPD float64) float64 {
	var parScore float64
	switch {
	case par30Rate <= 5:
		parScore = 60
	case par30Rate <= 10:
		parScore = 45
	case par30Rate <= 20:
		parScore = 30
	case par30Rate <= 30:
		parScore = 15
	}

	var dpdPart float64
	switch {
	case avgDPD <= 10:
		dpdPart = 40
	case avgDPD <= 30:
		dpdPart = 30
	case avgDPD <= 60:
		dpdPart = 20
	case avgDPD <= 90:
		dpdPart = 10
	}

	return parScore + dpdPart
}

// interpolate maps v from [lo, hi] linearly onto [scoreLo, scoreHi]
func interpolate(v, lo, hi, scoreLo, scoreHi float64) float64 {
	if hi == lo {
		return scoreLo
	}
	return scoreLo + (v-lo)/(hi-lo)*(scoreHi-scoreLo)
}
