package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRiskCategoryForScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected RiskCategory
	}{
		{0, RiskCategoryLow},
		{39.9, RiskCategoryLow},
		{40, RiskCategoryMedium},
		{75, RiskCategoryMedium},
		{75.1, RiskCategoryHigh},
		{100, RiskCategoryHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RiskCategoryForScore(tt.score), "score %.1f", tt.score)
	}
}

func TestLatestRepayment(t *testing.T) {
	loan := Loan{
		Repayments: []Repayment{
			{DueDate: date(2024, 1, 5), DaysPastDue: 0},
			{DueDate: date(2024, 3, 5), DaysPastDue: 45},
			{DueDate: date(2024, 2, 5), DaysPastDue: 15},
		},
	}

	latest := loan.LatestRepayment()
	assert.NotNil(t, latest)
	assert.Equal(t, date(2024, 3, 5), latest.DueDate)
	assert.Equal(t, 45, loan.CurrentDPD())
}

func TestLatestRepayment_Empty(t *testing.T) {
	loan := Loan{}
	assert.Nil(t, loan.LatestRepayment())
	assert.Equal(t, 0, loan.CurrentDPD())
}

func TestCurrentAssessment(t *testing.T) {
	loan := Loan{
		Assessments: []RiskAssessment{
			{Score: 30, AssessedAt: date(2024, 1, 1)},
			{Score: 65, AssessedAt: date(2024, 6, 1)},
			{Score: 50, AssessedAt: date(2024, 3, 1)},
		},
	}

	assert.Equal(t, 65.0, loan.CurrentRiskScore())

	empty := Loan{}
	assert.Nil(t, empty.CurrentAssessment())
	assert.Equal(t, 0.0, empty.CurrentRiskScore())
}

func TestGeography(t *testing.T) {
	assert.Equal(t, "UNKNOWN", (&Loan{}).Geography())
	assert.Equal(t, "UNKNOWN", (&Loan{Customer: &Customer{}}).Geography())

	loan := Loan{Customer: &Customer{Geography: "Maharashtra"}}
	assert.Equal(t, "Maharashtra", loan.Geography())
}
