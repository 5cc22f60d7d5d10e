package prediction

// Scoring constants - all thresholds and component caps for the default
// probability model. The model is an additive heuristic, not a trained one:
// each component is independently bounded and the total is capped at 100.

// =============================================================================
// DPD Component (max 30 points)
// =============================================================================

const (
	DPDSevereDays   = 90 // 90+ days past due
	DPDHighDays     = 60
	DPDElevatedDays = 30
	DPDEarlyDays    = 15

	DPDSevereScore   = 28.0
	DPDHighScore     = 20.0
	DPDElevatedScore = 12.0
	DPDEarlyScore    = 8.0
	DPDMinorScore    = 4.0 // Any positive DPD below the early threshold

	// Bump applied when the last three DPD readings are strictly increasing,
	// clamped to the tier ceiling.
	DPDAccelerationBump = 2.0

	DPDSevereCeiling   = 30.0
	DPDHighCeiling     = 22.0
	DPDElevatedCeiling = 15.0
	DPDEarlyCeiling    = 8.0

	// Minimum history points needed to detect acceleration
	DPDAccelerationMinHistory = 3
)

// =============================================================================
// Payment Pattern Component (max 25 points)
// =============================================================================

const (
	ConsecutiveMissedSevere = 3 // 3+ trailing unpaid installments
	ConsecutiveMissedHigh   = 2

	ConsecutiveMissedSevereScore = 25.0
	ConsecutiveMissedHighScore   = 20.0

	// Overall missed-rate tiers (missed / total payments)
	MissedRateSevere = 0.40
	MissedRateHigh   = 0.25
	MissedRateLow    = 0.10

	MissedRateSevereScore = 22.0
	MissedRateHighScore   = 15.0
	MissedRateLowScore    = 8.0

	// Loans with no payment history at all carry a flat penalty
	NoHistoryScore = 15.0
)

// =============================================================================
// Risk Score Trajectory Component (max 20 points)
// =============================================================================

const (
	RiskScoreSevere   = 80.0
	RiskScoreHigh     = 65.0
	RiskScoreElevated = 50.0
	RiskScoreModerate = 35.0

	RiskScoreSevereScore   = 20.0
	RiskScoreHighScore     = 15.0
	RiskScoreElevatedScore = 10.0
	RiskScoreModerateScore = 5.0
)

// =============================================================================
// Sector Component (max 15 points)
// =============================================================================

const (
	SectorBaseScore = 10.0

	// Multiplier levels that change the factor wording
	SectorMultiplierVolatile = 1.2
	SectorMultiplierElevated = 1.0
)

// =============================================================================
// NPA Component and totals
// =============================================================================

const (
	NPAScore = 10.0

	MaxProbability = 100.0
)

// =============================================================================
// Confidence
// =============================================================================

const (
	ConfidenceBase = 50.0

	ConfidenceHistoryRich   = 12 // repayment records
	ConfidenceHistoryMedium = 6
	ConfidenceHistoryThin   = 3

	ConfidenceHistoryRichScore   = 30.0
	ConfidenceHistoryMediumScore = 20.0
	ConfidenceHistoryThinScore   = 10.0

	// Bonus when every history record carries an amount paid
	ConfidenceCompleteDataScore = 20.0

	ConfidenceCap = 95.0
)

// =============================================================================
// Classification and warnings
// =============================================================================

const (
	RiskLevelHighThreshold   = 70.0
	RiskLevelMediumThreshold = 40.0

	ActionLegalProbability       = 80.0
	ActionUrgentProbability      = 70.0
	ActionRestructureProbability = 50.0
	ActionEnhancedProbability    = 30.0

	WarnMissedRate = 0.30
)
