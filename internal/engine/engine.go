// Package engine wires the calculation modules into a single analysis pass
// over a portfolio snapshot. The engine itself performs no I/O: callers load
// the records, the engine computes, callers serialize the report.
package engine

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/loansentry/internal/domain"
	"github.com/aristath/loansentry/internal/modules/actions"
	"github.com/aristath/loansentry/internal/modules/concentration"
	"github.com/aristath/loansentry/internal/modules/health"
	"github.com/aristath/loansentry/internal/modules/metrics"
	"github.com/aristath/loansentry/internal/modules/prediction"
)

// Options carries caller-tracked context the engine cannot derive from the
// records alone.
type Options struct {
	// PreviousHealthScore drives the health trend delta when supplied.
	PreviousHealthScore *float64
	// WeeklyRiskDelta is the week-over-week average risk score movement.
	WeeklyRiskDelta float64
}

// Report is the full analysis result for one portfolio snapshot
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`

	Sectors            []concentration.SectorResult   `json:"sectors"`
	Geographies        []concentration.GeoResult      `json:"geographies"`
	Customers          []concentration.CustomerResult `json:"customers"`
	ConcentrationScore concentration.Score            `json:"concentration_score"`

	Predictions []prediction.Prediction  `json:"predictions"`
	Metrics     metrics.PortfolioMetrics `json:"metrics"`
	Health      health.Breakdown         `json:"health"`
	Actions     []actions.Action         `json:"actions"`
}

// Engine runs the full analytics pass. It holds no state between calls, so a
// single instance is safe for concurrent use.
type Engine struct {
	scorer *prediction.Scorer
	log    zerolog.Logger
}

// New creates an engine with the given sector risk table
func New(sectorRisk prediction.SectorRiskTable, log zerolog.Logger) *Engine {
	return &Engine{
		scorer: prediction.NewScorer(sectorRisk),
		log:    log.With().Str("module", "engine").Logger(),
	}
}

// Analyze computes concentration, per-loan predictions, portfolio metrics,
// the health score and the action list for one snapshot of loan records.
// The input is never mutated.
func (e *Engine) Analyze(loans []domain.Loan, opts Options) Report {
	start := time.Now()

	report := Report{
		GeneratedAt:        start.UTC(),
		Sectors:            concentration.SectorConcentration(loans),
		Geographies:        concentration.GeographicConcentration(loans),
		Customers:          concentration.CustomerConcentration(loans),
		ConcentrationScore: concentration.PortfolioScore(loans),
	}

	report.Predictions = e.predictAll(loans)

	m := metrics.Build(loans)
	m.WeeklyRiskDelta = opts.WeeklyRiskDelta
	report.Metrics = m

	report.Health = health.Compute(health.Input{
		GrossNPARate:         m.NPARate,
		CollectionEfficiency: m.CollectionEfficiency,
		AvgRiskScore:         m.AvgRiskScore,
		HighRiskCount:        m.HighRiskCount,
		TotalLoans:           m.TotalLoans,
		PAR30Rate:            m.PAR30Rate(),
		AvgDPD:               m.AvgDPD,
		PreviousScore:        opts.PreviousHealthScore,
	})

	report.Actions = actions.Generate(m)

	e.log.Info().
		Int("loans", len(loans)).
		Int("predictions", len(report.Predictions)).
		Int("actions", len(report.Actions)).
		Float64("health_score", report.Health.Overall).
		Dur("duration", time.Since(start)).
		Msg("Portfolio analysis completed")

	return report
}

// predictAll scores every non-closed loan. Closed loans carry no default
// risk and are skipped, matching the metrics builder.
func (e *Engine) predictAll(loans []domain.Loan) []prediction.Prediction {
	predictions := make([]prediction.Prediction, 0, len(loans))
	for i := range loans {
		if loans[i].Status == domain.LoanStatusClosed {
			continue
		}
		predictions = append(predictions, e.scorer.Score(prediction.DataFromLoan(&loans[i])))
	}
	return predictions
}
