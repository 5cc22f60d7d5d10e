package concentration

// SectorResult represents exposure concentration for a single sector
type SectorResult struct {
	Sector       string  `json:"sector"`
	Exposure     float64 `json:"exposure"`
	LoanCount    int     `json:"loan_count"`
	Percentage   float64 `json:"percentage"`
	AvgRiskScore float64 `json:"avg_risk_score"`
	AtRiskLoans  int     `json:"at_risk_loans"`
	Flagged      bool    `json:"flagged"`
}

// GeoResult represents exposure concentration for a single geography.
// OverdueExposure is the outstanding amount of loans whose latest repayment
// carries a positive days-past-due.
type GeoResult struct {
	Geography       string  `json:"geography"`
	Exposure        float64 `json:"exposure"`
	LoanCount       int     `json:"loan_count"`
	Percentage      float64 `json:"percentage"`
	OverdueExposure float64 `json:"overdue_exposure"`
	AvgDPD          float64 `json:"avg_dpd"`
	Flagged         bool    `json:"flagged"`
}

// CustomerResult represents single-name exposure for one borrower
type CustomerResult struct {
	CustomerID string  `json:"customer_id"`
	Exposure   float64 `json:"exposure"`
	LoanCount  int     `json:"loan_count"`
	Percentage float64 `json:"percentage"`
	Flagged    bool    `json:"flagged"`
}

// Score summarizes portfolio-wide concentration risk as an additive penalty
// score with human-readable risk descriptions and per-dimension HHI values.
type Score struct {
	Score        float64  `json:"score"` // 0-100
	Risks        []string `json:"risks"`
	SectorHHI    float64  `json:"sector_hhi"`
	GeographyHHI float64  `json:"geography_hhi"`
	CustomerHHI  float64  `json:"customer_hhi"`
}
