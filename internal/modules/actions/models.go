package actions

// Priority ranks an action for operators. Sort order is
// CRITICAL > HIGH > MEDIUM > LOW.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// rank returns the sort weight of a priority, lower is more urgent
func (p Priority) rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// Action categories
const (
	CategoryDelinquency   = "delinquency"
	CategoryRisk          = "risk"
	CategoryCollections   = "collections"
	CategoryConcentration = "concentration"
	CategoryRecovery      = "recovery"
	CategoryMonitoring    = "monitoring"
	CategoryPrevention    = "prevention"
)

// Action is one recommended intervention for human operators
type Action struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Priority    Priority           `json:"priority"`
	Category    string             `json:"category"`
	Impact      string             `json:"impact"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
}
