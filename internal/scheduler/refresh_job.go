package scheduler

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/loansentry/internal/cache"
	"github.com/aristath/loansentry/internal/domain"
	"github.com/aristath/loansentry/internal/engine"
	"github.com/aristath/loansentry/internal/modules/metrics"
)

// SnapshotKey is the cache key the refresh job writes the latest report to
const SnapshotKey = "portfolio:latest"

// RecordSource supplies the loan book for a refresh cycle. The analytics
// engine itself never does I/O; whatever backs this interface (an import
// file, an upstream service) lives with the caller.
type RecordSource interface {
	Loans() ([]domain.Loan, error)
}

// RefreshJob recomputes the portfolio snapshot and caches the result. The
// previous cycle's health score and average risk score are carried forward so
// the next report gets a trend and a risk delta.
type RefreshJob struct {
	source RecordSource
	engine *engine.Engine
	store  *cache.SnapshotStore
	ttl    time.Duration
	log    zerolog.Logger

	lastHealthScore *float64
	lastAvgRisk     float64
	hasBaseline     bool
}

// NewRefreshJob wires a refresh job
func NewRefreshJob(source RecordSource, eng *engine.Engine, store *cache.SnapshotStore, ttl time.Duration, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		source: source,
		engine: eng,
		store:  store,
		ttl:    ttl,
		log:    log.With().Str("job", "portfolio_refresh").Logger(),
	}
}

// Name implements Job
func (j *RefreshJob) Name() string {
	return "portfolio_refresh"
}

// Run implements Job. It pulls the loan book, runs a full analysis and
// stores the report under SnapshotKey.
func (j *RefreshJob) Run() error {
	loans, err := j.source.Loans()
	if err != nil {
		return fmt.Errorf("failed to load loan book: %w", err)
	}

	opts := engine.Options{
		PreviousHealthScore: j.lastHealthScore,
	}
	if j.hasBaseline {
		opts.WeeklyRiskDelta = j.riskDelta(loans)
	}

	report := j.engine.Analyze(loans, opts)

	if err := j.store.Put(SnapshotKey, report, j.ttl); err != nil {
		return fmt.Errorf("failed to cache snapshot: %w", err)
	}

	score := report.Health.Overall
	j.lastHealthScore = &score
	j.lastAvgRisk = report.Metrics.AvgRiskScore
	j.hasBaseline = true

	j.log.Info().
		Int("loans", len(loans)).
		Float64("health_score", report.Health.Overall).
		Int("actions", len(report.Actions)).
		Msg("Portfolio snapshot refreshed")

	return nil
}

// riskDelta compares the current average risk score against the previous
// cycle. The week-over-week deterioration rule keys off this movement.
func (j *RefreshJob) riskDelta(loans []domain.Loan) float64 {
	current := metrics.Build(loans).AvgRiskScore
	return current - j.lastAvgRisk
}
