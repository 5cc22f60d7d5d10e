package prediction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/loansentry/internal/domain"
)

func paidRecord(dpd int, amount float64) RepaymentRecord {
	paidAt := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	return RepaymentRecord{
		DaysPastDue:    dpd,
		ExpectedAmount: amount,
		AmountPaid:     &amount,
		PaymentDate:    &paidAt,
	}
}

func missedRecord(dpd int, amount float64) RepaymentRecord {
	return RepaymentRecord{DaysPastDue: dpd, ExpectedAmount: amount}
}

func TestScore_SevereDPDNoHistory(t *testing.T) {
	// 95 DPD, zero recorded payments, risk score 50, low-volatility sector.
	scorer := NewScorer(DefaultSectorRiskTable())

	p := scorer.Score(LoanData{
		LoanID:           "L1",
		Sector:           domain.SectorTechnology, // multiplier 0.9
		CurrentRiskScore: 50,
		CurrentDPD:       95,
	})

	// 28 (DPD) + 15 (no history) + 10 (risk) + 9 (sector) + 0 (NPA)
	assert.Equal(t, 62.0, p.DefaultProbability)
	assert.Equal(t, RiskLevelMedium, p.RiskLevel)
	assert.Equal(t, ActionUrgentContact, p.RecommendedAction)
	assert.Equal(t, 50.0, p.Confidence) // no history, base confidence only

	require.NotEmpty(t, p.Factors)
	assert.Equal(t, "dpd_acceleration", p.Factors[0].Name) // largest contribution first
	assert.Equal(t, 28.0, p.Factors[0].Weight)
}

func TestScore_HealthyLoan(t *testing.T) {
	scorer := NewScorer(DefaultSectorRiskTable())

	history := make([]RepaymentRecord, 0, 12)
	for i := 0; i < 12; i++ {
		history = append(history, paidRecord(0, 25000))
	}

	p := scorer.Score(LoanData{
		LoanID:           "L2",
		Sector:           domain.SectorTechnology,
		CurrentRiskScore: 10,
		TotalPayments:    12,
		History:          history,
	})

	// Only the sector component contributes: round(10 * 0.9) = 9.
	assert.Equal(t, 9.0, p.DefaultProbability)
	assert.Equal(t, RiskLevelLow, p.RiskLevel)
	assert.Equal(t, ActionRoutineMonitoring, p.RecommendedAction)
	assert.Empty(t, p.Warnings)
	// 50 base + 30 rich history + 20 complete data, capped at 95.
	assert.Equal(t, 95.0, p.Confidence)
}

func TestScore_NPATriggersLegalAction(t *testing.T) {
	scorer := NewScorer(DefaultSectorRiskTable())

	p := scorer.Score(LoanData{
		LoanID:           "L3",
		Sector:           domain.SectorConstruction, // multiplier 1.3
		CurrentRiskScore: 85,
		CurrentDPD:       120,
		IsNPA:            true,
		MissedPayments:   6,
		TotalPayments:    10,
		History: []RepaymentRecord{
			missedRecord(60, 10000),
			missedRecord(90, 10000),
			missedRecord(120, 10000),
		},
	})

	// 30 (28+2 accel) + 25 (3 consecutive missed) + 20 (risk) + 13 (sector) + 10 (NPA)
	// = 98, below the cap.
	assert.Equal(t, 98.0, p.DefaultProbability)
	assert.Equal(t, RiskLevelHigh, p.RiskLevel)
	assert.Equal(t, ActionLegal, p.RecommendedAction)

	assert.Contains(t, p.Warnings, "Loan is classified as NPA")
	assert.Contains(t, p.Warnings, "3 consecutive missed payments")
	assert.Contains(t, p.Warnings, "60% of payments missed")
}

func TestScore_ProbabilityAndConfidenceBounds(t *testing.T) {
	scorer := NewScorer(SectorRiskTable{domain.SectorInfrastructure: 1.4})

	history := make([]RepaymentRecord, 0, 20)
	for i := 0; i < 20; i++ {
		history = append(history, missedRecord(10*i, 50000))
	}

	p := scorer.Score(LoanData{
		LoanID:           "L4",
		Sector:           domain.SectorInfrastructure,
		CurrentRiskScore: 100,
		CurrentDPD:       365,
		IsNPA:            true,
		MissedPayments:   20,
		TotalPayments:    20,
		History:          history,
	})

	assert.LessOrEqual(t, p.DefaultProbability, 100.0)
	assert.GreaterOrEqual(t, p.DefaultProbability, 0.0)
	assert.LessOrEqual(t, p.Confidence, 95.0)
	assert.GreaterOrEqual(t, p.Confidence, 0.0)
	// 30 + 25 + 20 + 14 + 10 = 99
	assert.Equal(t, 99.0, p.DefaultProbability)
}

func TestScore_Deterministic(t *testing.T) {
	scorer := NewScorer(DefaultSectorRiskTable())
	data := LoanData{
		LoanID:           "L5",
		Sector:           domain.SectorRetail,
		CurrentRiskScore: 55,
		CurrentDPD:       40,
		MissedPayments:   2,
		TotalPayments:    8,
		History: []RepaymentRecord{
			paidRecord(10, 1000),
			missedRecord(25, 1000),
			paidRecord(40, 1000),
		},
	}

	first := scorer.Score(data)
	second := scorer.Score(data)
	assert.Equal(t, first, second)
}

func TestDPDComponent(t *testing.T) {
	increasing := []RepaymentRecord{
		missedRecord(10, 0), missedRecord(20, 0), missedRecord(30, 0),
	}
	flat := []RepaymentRecord{
		missedRecord(30, 0), missedRecord(30, 0), missedRecord(30, 0),
	}

	tests := []struct {
		name     string
		dpd      int
		history  []RepaymentRecord
		expected float64
	}{
		{"zero dpd", 0, nil, 0},
		{"minor dpd", 7, nil, 4},
		{"early tier", 20, nil, 8},
		{"elevated tier static", 45, nil, 12},
		{"elevated tier accelerating", 45, increasing, 14},
		{"high tier static", 75, flat, 20},
		{"high tier accelerating", 75, increasing, 22},
		{"severe tier static short history", 120, increasing[:2], 28},
		{"severe tier accelerating", 120, increasing, 30},
		{"early tier bump clamped to ceiling", 20, increasing, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dpdComponent(LoanData{CurrentDPD: tt.dpd, History: tt.history})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPaymentComponent(t *testing.T) {
	tests := []struct {
		name     string
		data     LoanData
		expected float64
	}{
		{
			name:     "no payment history",
			data:     LoanData{},
			expected: 15,
		},
		{
			name: "three trailing missed",
			data: LoanData{
				TotalPayments: 6,
				History: []RepaymentRecord{
					paidRecord(0, 100), missedRecord(30, 100),
					missedRecord(60, 100), missedRecord(90, 100),
				},
			},
			expected: 25,
		},
		{
			name: "two trailing missed",
			data: LoanData{
				TotalPayments: 6,
				History: []RepaymentRecord{
					paidRecord(0, 100), missedRecord(30, 100), missedRecord(60, 100),
				},
			},
			expected: 20,
		},
		{
			name:     "severe missed rate",
			data:     LoanData{TotalPayments: 10, MissedPayments: 4, History: []RepaymentRecord{paidRecord(0, 100)}},
			expected: 22,
		},
		{
			name:     "high missed rate",
			data:     LoanData{TotalPayments: 10, MissedPayments: 3, History: []RepaymentRecord{paidRecord(0, 100)}},
			expected: 15,
		},
		{
			name:     "low missed rate",
			data:     LoanData{TotalPayments: 10, MissedPayments: 1, History: []RepaymentRecord{paidRecord(0, 100)}},
			expected: 8,
		},
		{
			name:     "clean record",
			data:     LoanData{TotalPayments: 10, History: []RepaymentRecord{paidRecord(0, 100)}},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, paymentComponent(tt.data))
		})
	}
}

func TestRiskTrajectoryComponent(t *testing.T) {
	tests := []struct {
		score    float64
		expected float64
	}{
		{85, 20}, {80, 20}, {70, 15}, {65, 15}, {55, 10}, {50, 10}, {40, 5}, {35, 5}, {20, 0}, {0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, riskTrajectoryComponent(tt.score), "score %.0f", tt.score)
	}
}

func TestRecommendedAction_PriorityOrder(t *testing.T) {
	tests := []struct {
		name        string
		data        LoanData
		probability float64
		expected    Action
	}{
		{"npa wins first", LoanData{IsNPA: true}, 10, ActionLegal},
		{"probability 80", LoanData{}, 80, ActionLegal},
		{"dpd 90", LoanData{CurrentDPD: 90}, 10, ActionUrgentContact},
		{"probability 70", LoanData{}, 70, ActionUrgentContact},
		{"dpd 60", LoanData{CurrentDPD: 60}, 10, ActionRestructure},
		{"probability 50", LoanData{}, 50, ActionRestructure},
		{"dpd 30", LoanData{CurrentDPD: 30}, 10, ActionEnhancedMonitoring},
		{"probability 30", LoanData{}, 30, ActionEnhancedMonitoring},
		{"quiet loan", LoanData{}, 10, ActionRoutineMonitoring},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, recommendedAction(tt.data, tt.probability))
		})
	}
}

func TestConfidenceTiers(t *testing.T) {
	record := missedRecord(0, 100)

	historyOf := func(n int) []RepaymentRecord {
		out := make([]RepaymentRecord, n)
		for i := range out {
			out[i] = record
		}
		return out
	}

	tests := []struct {
		records  int
		expected float64
	}{
		{0, 50},
		{2, 50},
		{3, 60},
		{6, 70},
		{11, 70},
		{12, 80},
	}

	for _, tt := range tests {
		got := confidence(LoanData{History: historyOf(tt.records)})
		assert.Equal(t, tt.expected, got, "%d records", tt.records)
	}

	// Complete data adds 20, still capped at 95.
	complete := make([]RepaymentRecord, 12)
	for i := range complete {
		complete[i] = paidRecord(0, 100)
	}
	assert.Equal(t, 95.0, confidence(LoanData{History: complete}))
}

func TestSectorRiskTable_Multiplier(t *testing.T) {
	table := DefaultSectorRiskTable()
	assert.Equal(t, 0.9, table.Multiplier(domain.SectorTechnology))
	assert.Equal(t, 1.4, table.Multiplier(domain.SectorInfrastructure))
	assert.Equal(t, 1.0, table.Multiplier(domain.Sector("UNLISTED")))

	var nilTable SectorRiskTable
	assert.Equal(t, 1.0, nilTable.Multiplier(domain.SectorRetail))
}
