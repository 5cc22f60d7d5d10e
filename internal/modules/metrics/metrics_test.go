package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/loansentry/internal/domain"
)

func repayment(dpd int, emi float64, paid *float64) domain.Repayment {
	r := domain.Repayment{
		DueDate:     time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		EMIAmount:   emi,
		DaysPastDue: dpd,
	}
	if paid != nil {
		paidAt := r.DueDate
		r.PaymentDate = &paidAt
		r.PaymentAmount = paid
		r.Status = domain.PaymentStatusPaid
	} else {
		r.Status = domain.PaymentStatusMissed
	}
	return r
}

func f(v float64) *float64 { return &v }

func TestBuild_EmptyPortfolio(t *testing.T) {
	m := Build(nil)
	assert.Equal(t, 0, m.TotalLoans)
	assert.Equal(t, 0.0, m.TotalExposure)
	assert.Equal(t, 0.0, m.NPARate)
	assert.Equal(t, 0.0, m.CollectionEfficiency)
	assert.Equal(t, 0.0, m.PAR30Rate())
	assert.Equal(t, 0.0, m.HighRiskShare())
}

func TestBuild_ExcludesClosedLoans(t *testing.T) {
	loans := []domain.Loan{
		{ID: "L1", Status: domain.LoanStatusActive, Sector: domain.SectorRetail, OutstandingAmount: 100},
		{ID: "L2", Status: domain.LoanStatusClosed, Sector: domain.SectorRetail, OutstandingAmount: 900},
	}

	m := Build(loans)
	assert.Equal(t, 1, m.TotalLoans)
	assert.Equal(t, 100.0, m.TotalExposure)
}

func TestBuild_BucketsAndRates(t *testing.T) {
	assessed := func(loan domain.Loan, score float64) domain.Loan {
		loan.Assessments = []domain.RiskAssessment{
			{Score: score, AssessedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		}
		return loan
	}

	loans := []domain.Loan{
		assessed(domain.Loan{
			ID: "CURRENT", Status: domain.LoanStatusActive,
			Sector: domain.SectorRetail, OutstandingAmount: 400_000,
			Repayments: []domain.Repayment{repayment(0, 10000, f(10000))},
		}, 20),
		assessed(domain.Loan{
			ID: "PAR35", Status: domain.LoanStatusActive,
			Sector: domain.SectorServices, OutstandingAmount: 300_000,
			Repayments: []domain.Repayment{repayment(35, 10000, nil)},
		}, 80),
		assessed(domain.Loan{
			ID: "PAR95", Status: domain.LoanStatusNPA,
			Sector: domain.SectorRetail, OutstandingAmount: 300_000,
			Repayments: []domain.Repayment{repayment(95, 10000, nil)},
		}, 90),
	}

	m := Build(loans)

	assert.Equal(t, 3, m.TotalLoans)
	assert.Equal(t, 1_000_000.0, m.TotalExposure)

	assert.Equal(t, 1, m.NPACount)
	assert.Equal(t, 300_000.0, m.NPAExposure)
	assert.Equal(t, 30.0, m.NPARate)

	assert.Equal(t, 2, m.HighRiskCount) // scores 80 and 90
	assert.InDelta(t, 63.3, m.AvgRiskScore, 1e-9)

	assert.Equal(t, 2, m.PAR30Count)
	assert.Equal(t, 600_000.0, m.PAR30Exposure)
	assert.Equal(t, 1, m.PAR60Count)
	assert.Equal(t, 1, m.PAR90Count)
	assert.Equal(t, 300_000.0, m.PAR90Exposure)
	assert.Equal(t, 1, m.EarlyDelinquencyCount())

	// 10000 paid of 30000 due.
	assert.InDelta(t, 33.3, m.CollectionEfficiency, 1e-9)

	// RETAIL holds 700k of 1M.
	assert.Equal(t, "RETAIL", m.TopSectorName)
	assert.Equal(t, 70.0, m.TopSectorShare)

	assert.InDelta(t, 66.66, m.PAR30Rate(), 0.01)
	assert.InDelta(t, 66.66, m.HighRiskShare(), 0.01)
}

func TestBuild_Idempotent(t *testing.T) {
	loans := []domain.Loan{
		{ID: "L1", Status: domain.LoanStatusActive, Sector: domain.SectorRetail, OutstandingAmount: 100},
		{ID: "L2", Status: domain.LoanStatusActive, Sector: domain.SectorServices, OutstandingAmount: 100},
	}
	assert.Equal(t, Build(loans), Build(loans))
}
