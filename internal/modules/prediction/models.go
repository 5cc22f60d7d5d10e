package prediction

import (
	"time"

	"github.com/aristath/loansentry/internal/domain"
)

// RepaymentRecord is one installment of the loan's repayment history, ordered
// oldest to newest. PaymentDate and AmountPaid are nil while unpaid.
type RepaymentRecord struct {
	DaysPastDue    int        `json:"days_past_due"`
	ExpectedAmount float64    `json:"expected_amount"`
	AmountPaid     *float64   `json:"amount_paid,omitempty"`
	PaymentDate    *time.Time `json:"payment_date,omitempty"`
}

// LoanData carries everything the scorer needs about a single loan.
// Missing fields default to neutral, non-penalizing values.
type LoanData struct {
	LoanID            string            `json:"loan_id"`
	OutstandingAmount float64           `json:"outstanding_amount"`
	Sector            domain.Sector     `json:"sector"`
	CurrentRiskScore  float64           `json:"current_risk_score"`
	CurrentDPD        int               `json:"current_dpd"`
	IsNPA             bool              `json:"is_npa"`
	MissedPayments    int               `json:"missed_payments"`
	TotalPayments     int               `json:"total_payments"`
	History           []RepaymentRecord `json:"history,omitempty"`
}

// RiskLevel is the coarse bucketing of a default probability
type RiskLevel string

const (
	RiskLevelHigh   RiskLevel = "High"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelLow    RiskLevel = "Low"
)

// Action is the recommended intervention for a loan
type Action string

const (
	ActionLegal              Action = "legal_action"
	ActionUrgentContact      Action = "urgent_contact"
	ActionRestructure        Action = "restructure"
	ActionEnhancedMonitoring Action = "enhanced_monitoring"
	ActionRoutineMonitoring  Action = "routine_monitoring"
)

// FactorDirection indicates how a factor moves the default probability
type FactorDirection string

const (
	DirectionIncreasing FactorDirection = "increasing"
	DirectionNeutral    FactorDirection = "neutral"
)

// Factor is one explainable contribution to the default probability
type Factor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Weight      float64         `json:"weight"` // points contributed (0-30)
	Direction   FactorDirection `json:"direction"`
}

// Prediction is the scorer's output for a single loan
type Prediction struct {
	LoanID             string    `json:"loan_id"`
	DefaultProbability float64   `json:"default_probability"` // 0-100
	Confidence         float64   `json:"confidence"`          // 0-95
	RiskLevel          RiskLevel `json:"risk_level"`
	Factors            []Factor  `json:"factors"`
	Warnings           []string  `json:"warnings"`
	RecommendedAction  Action    `json:"recommended_action"`
}
