// Package domain provides core domain models and types.
package domain

import "time"

// Sector represents an industry sector a loan is exposed to.
// The set is closed: scoring tables are keyed by these values.
type Sector string

const (
	SectorAgriculture    Sector = "AGRICULTURE"
	SectorManufacturing  Sector = "MANUFACTURING"
	SectorRetail         Sector = "RETAIL"
	SectorServices       Sector = "SERVICES"
	SectorTechnology     Sector = "TECHNOLOGY"
	SectorConstruction   Sector = "CONSTRUCTION"
	SectorInfrastructure Sector = "INFRASTRUCTURE"
	SectorHealthcare     Sector = "HEALTHCARE"
)

// AllSectors lists every known sector, in display order.
var AllSectors = []Sector{
	SectorAgriculture,
	SectorManufacturing,
	SectorRetail,
	SectorServices,
	SectorTechnology,
	SectorConstruction,
	SectorInfrastructure,
	SectorHealthcare,
}

// LoanStatus represents the lifecycle state of a loan
type LoanStatus string

const (
	LoanStatusActive       LoanStatus = "ACTIVE"
	LoanStatusClosed       LoanStatus = "CLOSED"
	LoanStatusNPA          LoanStatus = "NPA"
	LoanStatusRestructured LoanStatus = "RESTRUCTURED"
)

// PaymentStatus represents the state of a scheduled repayment
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusMissed  PaymentStatus = "MISSED"
)

// RiskCategory is the coarse LOW/MEDIUM/HIGH bucketing of a risk score
type RiskCategory string

const (
	RiskCategoryLow    RiskCategory = "LOW"
	RiskCategoryMedium RiskCategory = "MEDIUM"
	RiskCategoryHigh   RiskCategory = "HIGH"
)

// RiskCategoryForScore derives the category from a 0-100 risk score.
// Scores below 40 are LOW, above 75 HIGH, MEDIUM in between.
func RiskCategoryForScore(score float64) RiskCategory {
	switch {
	case score < 40:
		return RiskCategoryLow
	case score > 75:
		return RiskCategoryHigh
	default:
		return RiskCategoryMedium
	}
}

// Customer represents a borrower
type Customer struct {
	ID               string  `json:"id"`
	Geography        string  `json:"geography"`
	CreditScore      int     `json:"credit_score"`
	MonthlyIncome    float64 `json:"monthly_income"`
	EmploymentStatus string  `json:"employment_status"`
	DebtToIncome     float64 `json:"debt_to_income"`
}

// Repayment represents one scheduled installment of a loan.
// PaymentDate and PaymentAmount are nil while the installment is unpaid.
type Repayment struct {
	LoanID        string        `json:"loan_id"`
	DueDate       time.Time     `json:"due_date"`
	EMIAmount     float64       `json:"emi_amount"`
	Status        PaymentStatus `json:"status"`
	DaysPastDue   int           `json:"days_past_due"`
	PaymentDate   *time.Time    `json:"payment_date,omitempty"`
	PaymentAmount *float64      `json:"payment_amount,omitempty"`
}

// RiskAssessment represents one point of a loan's risk history
type RiskAssessment struct {
	LoanID     string          `json:"loan_id"`
	Score      float64         `json:"score"` // 0-100
	Category   RiskCategory    `json:"category"`
	AssessedAt time.Time       `json:"assessed_at"`
	Flags      map[string]bool `json:"flags,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

// Loan represents a disbursed loan, fully hydrated with its customer,
// repayment schedule (ordered by due date) and risk assessment history.
// The engine treats all of it as read-only input.
type Loan struct {
	ID                string           `json:"id"`
	CustomerID        string           `json:"customer_id"`
	PrincipalAmount   float64          `json:"principal_amount"`
	OutstandingAmount float64          `json:"outstanding_amount"`
	InterestRate      float64          `json:"interest_rate"`
	Sector            Sector           `json:"sector"`
	Status            LoanStatus       `json:"status"`
	DisbursementDate  time.Time        `json:"disbursement_date"`
	Customer          *Customer        `json:"customer,omitempty"`
	Repayments        []Repayment      `json:"repayments,omitempty"`
	Assessments       []RiskAssessment `json:"assessments,omitempty"`
}

// LatestRepayment returns the repayment with the most recent due date,
// or nil when the loan has no repayment history.
func (l *Loan) LatestRepayment() *Repayment {
	var latest *Repayment
	for i := range l.Repayments {
		r := &l.Repayments[i]
		if latest == nil || r.DueDate.After(latest.DueDate) {
			latest = r
		}
	}
	return latest
}

// CurrentAssessment returns the most recent risk assessment, or nil when the
// loan has never been assessed.
func (l *Loan) CurrentAssessment() *RiskAssessment {
	var current *RiskAssessment
	for i := range l.Assessments {
		a := &l.Assessments[i]
		if current == nil || a.AssessedAt.After(current.AssessedAt) {
			current = a
		}
	}
	return current
}

// CurrentRiskScore returns the latest assessment score, or 0 when no
// assessment exists. Missing history is treated as neutral, never as an error.
func (l *Loan) CurrentRiskScore() float64 {
	if a := l.CurrentAssessment(); a != nil {
		return a.Score
	}
	return 0
}

// CurrentDPD returns the days-past-due of the latest repayment, or 0 when the
// loan has no repayment history.
func (l *Loan) CurrentDPD() int {
	if r := l.LatestRepayment(); r != nil {
		return r.DaysPastDue
	}
	return 0
}

// Geography returns the borrower's region label, or "UNKNOWN" when the
// customer record is not hydrated.
func (l *Loan) Geography() string {
	if l.Customer == nil || l.Customer.Geography == "" {
		return "UNKNOWN"
	}
	return l.Customer.Geography
}
