package health

// Input carries the four portfolio-level metrics the composite score is
// built from. All rates are percentages (0-100), avg DPD is in days.
type Input struct {
	GrossNPARate         float64 `json:"gross_npa_rate"`
	CollectionEfficiency float64 `json:"collection_efficiency"`
	AvgRiskScore         float64 `json:"avg_risk_score"`
	HighRiskCount        int     `json:"high_risk_count"`
	TotalLoans           int     `json:"total_loans"`
	PAR30Rate            float64 `json:"par30_rate"`
	AvgDPD               float64 `json:"avg_dpd"`

	// PreviousScore, when supplied by the caller, drives the trend delta.
	// History storage is the caller's concern; this module is stateless.
	PreviousScore *float64 `json:"previous_score,omitempty"`
}

// Grade is the qualitative label of the overall score
type Grade string

const (
	GradeExcellent Grade = "Excellent"
	GradeGood      Grade = "Good"
	GradeFair      Grade = "Fair"
	GradePoor      Grade = "Poor"
	GradeCritical  Grade = "Critical"
)

// Breakdown is the composite health score with its component sub-scores,
// the fixed weights they were combined with, and the trend vs. the previous
// score (0 when no previous score was supplied).
type Breakdown struct {
	Overall    float64            `json:"overall"` // 0-100
	Components map[string]float64 `json:"components"`
	Weights    map[string]float64 `json:"weights"`
	Grade      Grade              `json:"grade"`
	Trend      float64            `json:"trend"`
}
