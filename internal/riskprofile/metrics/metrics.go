package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the risk-profile module: questionnaire
// throughput, scoring outcomes, and the critical-path duration of profile
// creation.
type Metrics struct {
	SelectionsRecorded     prometheus.Counter
	ProfilesCreated        prometheus.Counter
	ScaleOverrides         prometheus.Counter
	TotalScoreDistribution prometheus.Histogram
	CreateProfileDuration  prometheus.Histogram
}

// New creates a Metrics instance with all risk-profile metrics registered.
func New() *Metrics {
	return &Metrics{
		SelectionsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "riskgate_selections_recorded_total",
			Help: "Total number of questionnaire selections recorded",
		}),
		ProfilesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "riskgate_risk_profiles_created_total",
			Help: "Total number of risk profiles created",
		}),
		ScaleOverrides: promauto.NewCounter(prometheus.CounterOpts{
			Name: "riskgate_scale_overrides_total",
			Help: "Total number of manual scale overrides applied",
		}),
		TotalScoreDistribution: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "riskgate_total_score",
			Help:    "Distribution of computed questionnaire total scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
		CreateProfileDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "riskgate_create_profile_duration_seconds",
			Help:    "Duration of profile creation (score, match, persist)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementSelectionsRecorded records a stored questionnaire selection.
func (m *Metrics) IncrementSelectionsRecorded() {
	m.SelectionsRecorded.Inc()
}

// IncrementProfilesCreated records a successful profile creation.
func (m *Metrics) IncrementProfilesCreated() {
	m.ProfilesCreated.Inc()
}

// IncrementScaleOverrides records an applied manual scale override.
func (m *Metrics) IncrementScaleOverrides() {
	m.ScaleOverrides.Inc()
}

// ObserveTotalScore records a computed total score.
func (m *Metrics) ObserveTotalScore(score int) {
	m.TotalScoreDistribution.Observe(float64(score))
}

// ObserveCreateProfile records the duration of a profile creation.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveCreateProfile(start time.Time) {
	m.CreateProfileDuration.Observe(time.Since(start).Seconds())
}
