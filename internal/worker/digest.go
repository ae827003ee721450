package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/aquasentinel/aquasentinel/internal/observability"
	"github.com/aquasentinel/aquasentinel/internal/query"
	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

// DefaultDigestSchedule runs the digest at the top of every hour.
const DefaultDigestSchedule = "0 * * * *"

// DigestStation is one entry in the digest's worst-stations list.
type DigestStation struct {
	StationID  string              `json:"stationId"`
	Name       string              `json:"name"`
	District   string              `json:"district"`
	WQI        float64             `json:"wqi"`
	Status     waterquality.Status `json:"status"`
	AlertCount int                 `json:"alertCount"`
}

// Digest is a periodic summary of fleet health.
type Digest struct {
	GeneratedAt   time.Time       `json:"generatedAt"`
	Summary       query.Summary   `json:"summary"`
	WorstStations []DigestStation `json:"worstStations"`
}

// DigestOptions holds the dependencies of a DigestJob.
type DigestOptions struct {
	// Schedule is a standard five-field cron expression.
	// Default: DefaultDigestSchedule
	Schedule string

	// TopN is the number of worst stations listed.
	// Default: 5
	TopN int

	// Location is the time zone the schedule is evaluated in.
	// Default: UTC
	Location *time.Location

	Query   *query.Service
	Enabled func(ctx context.Context) bool
	Clock   clockwork.Clock
	Logger  zerolog.Logger
	Metrics *observability.Metrics
}

// DigestJob logs a fleet digest on a cron schedule.
type DigestJob struct {
	cron    *cron.Cron
	query   *query.Service
	enabled func(ctx context.Context) bool
	topN    int
	clock   clockwork.Clock
	logger  zerolog.Logger
	metrics *observability.Metrics

	mu   sync.RWMutex
	last *Digest
}

// NewDigestJob creates a digest job. The schedule is validated here.
func NewDigestJob(opts DigestOptions) (*DigestJob, error) {
	if opts.Schedule == "" {
		opts.Schedule = DefaultDigestSchedule
	}
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	j := &DigestJob{
		cron:    cron.New(cron.WithLocation(opts.Location)),
		query:   opts.Query,
		enabled: opts.Enabled,
		topN:    opts.TopN,
		clock:   opts.Clock,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
	if _, err := j.cron.AddFunc(opts.Schedule, func() { j.Run(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", opts.Schedule, err)
	}
	return j, nil
}

// Start begins running the digest on its schedule.
func (j *DigestJob) Start() {
	j.cron.Start()
	j.logger.Info().Time("next_run", j.cron.Entries()[0].Next).Msg("fleet digest scheduled")
}

// Stop halts the schedule and returns a context that is done once a running
// digest has finished.
func (j *DigestJob) Stop() context.Context {
	return j.cron.Stop()
}

// Run builds and logs a digest now. It returns false when the digest is
// disabled.
func (j *DigestJob) Run(ctx context.Context) (Digest, bool) {
	if j.enabled != nil && !j.enabled(ctx) {
		j.logger.Debug().Msg("fleet digest disabled, skipping")
		return Digest{}, false
	}

	d := Digest{
		GeneratedAt:   j.clock.Now(),
		Summary:       j.query.SummaryStatistics(),
		WorstStations: []DigestStation{},
	}
	for _, v := range j.query.LowestWQI(j.topN) {
		d.WorstStations = append(d.WorstStations, DigestStation{
			StationID:  v.Station.ID,
			Name:       v.Station.Name,
			District:   v.Station.District,
			WQI:        v.CurrentReading.WQI,
			Status:     v.CurrentReading.Status,
			AlertCount: v.AlertCount,
		})
	}

	j.mu.Lock()
	j.last = &d
	j.mu.Unlock()
	if j.metrics != nil {
		j.metrics.DigestRuns.Inc()
	}

	event := j.logger.Info().
		Int("stations", d.Summary.TotalStations).
		Int("reporting", d.Summary.ReportingStations).
		Float64("average_wqi", d.Summary.AverageWQI).
		Int("total_alerts", d.Summary.TotalAlerts).
		Int("critical_alerts", d.Summary.CriticalAlerts).
		Str("season", d.Summary.CurrentSeason.String())
	if len(d.WorstStations) > 0 {
		worst := d.WorstStations[0]
		event = event.Str("worst_station", worst.StationID).Float64("worst_wqi", worst.WQI)
	}
	event.Msg("fleet digest")
	return d, true
}

// Last returns the most recent digest.
func (j *DigestJob) Last() (Digest, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.last == nil {
		return Digest{}, false
	}
	return *j.last, true
}
