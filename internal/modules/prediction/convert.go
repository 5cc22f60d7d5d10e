package prediction

import (
	"sort"

	"github.com/aristath/loansentry/internal/domain"
)

// DataFromLoan projects a hydrated loan record onto the scorer's input shape.
// The repayment history is ordered by due date, oldest first.
func DataFromLoan(loan *domain.Loan) LoanData {
	history := make([]RepaymentRecord, 0, len(loan.Repayments))

	ordered := make([]domain.Repayment, len(loan.Repayments))
	copy(ordered, loan.Repayments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DueDate.Before(ordered[j].DueDate)
	})

	missed := 0
	for i := range ordered {
		r := &ordered[i]
		if r.Status == domain.PaymentStatusMissed {
			missed++
		}
		history = append(history, RepaymentRecord{
			DaysPastDue:    r.DaysPastDue,
			ExpectedAmount: r.EMIAmount,
			AmountPaid:     r.PaymentAmount,
			PaymentDate:    r.PaymentDate,
		})
	}

	return LoanData{
		LoanID:            loan.ID,
		OutstandingAmount: loan.OutstandingAmount,
		Sector:            loan.Sector,
		CurrentRiskScore:  loan.CurrentRiskScore(),
		CurrentDPD:        loan.CurrentDPD(),
		IsNPA:             loan.Status == domain.LoanStatusNPA,
		MissedPayments:    missed,
		TotalPayments:     len(ordered),
		History:           history,
	}
}
