package statistics

import (
	"context"
	"log/slog"
	"math"
	"time"

	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	"bikeshare/pkg/contracts/domain"

	"go.opentelemetry.io/otel/attribute"
)

// Recorder receives the computation time of every statistic group
type Recorder interface {
	ObserveComputation(ctx context.Context, group string, elapsed time.Duration, trips int)
}

// NoopRecorder discards observations
type NoopRecorder struct{}

// ObserveComputation implements Recorder
func (NoopRecorder) ObserveComputation(context.Context, string, time.Duration, int) {}

// Options tunes the engine
type Options struct {
	// IncludeUnspecifiedBirthYear treats the 0 placeholder as a real year in
	// earliest, most recent and most common birth year.
	IncludeUnspecifiedBirthYear bool
}

// Engine computes statistic groups over a table
type Engine struct {
	opts     Options
	recorder Recorder
	logger   *slog.Logger
}

// NewEngine creates an engine; a nil recorder discards observations
func NewEngine(opts Options, logger *slog.Logger, recorder Recorder) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	return &Engine{
		opts:     opts,
		recorder: recorder,
		logger:   infrastructure.WithComponent(logger, "statistics"),
	}
}

// measure runs compute inside a span and reports its elapsed time.
func (e *Engine) measure(ctx context.Context, group string, table *domain.Table, compute func()) (time.Duration, error) {
	ctx, span := infrastructure.StartSpan(ctx, "statistics."+group,
		attribute.Int("trips", table.Len()))
	defer span.End()

	if table.IsEmpty() {
		err := apperrors.NewEmptyDatasetError(group)
		infrastructure.RecordError(ctx, err)
		return 0, err
	}

	started := time.Now()
	compute()
	elapsed := time.Since(started)

	e.recorder.ObserveComputation(ctx, group, elapsed, table.Len())
	e.logger.DebugContext(ctx, "Statistic computed",
		slog.String("group", group),
		slog.Int("trips", table.Len()),
		slog.Duration("elapsed", elapsed))
	return elapsed, nil
}

// TimeStats finds the most common month, weekday and start hour
func (e *Engine) TimeStats(ctx context.Context, table *domain.Table) (*TimeResult, error) {
	res := &TimeResult{}
	elapsed, err := e.measure(ctx, GroupTime, table, func() {
		res.Month, _ = mode(table.Trips, func(t domain.Trip) time.Month { return t.Month })
		res.Weekday, _ = mode(table.Trips, func(t domain.Trip) time.Weekday { return t.Weekday })
		res.Hour, _ = mode(table.Trips, func(t domain.Trip) int { return t.Hour })
	})
	if err != nil {
		return nil, err
	}
	res.Elapsed = elapsed
	return res, nil
}

// StationStats finds the most common start station, end station and route
func (e *Engine) StationStats(ctx context.Context, table *domain.Table) (*StationResult, error) {
	res := &StationResult{}
	elapsed, err := e.measure(ctx, GroupStation, table, func() {
		res.StartStation, _ = mode(table.Trips, func(t domain.Trip) string { return t.StartStation })
		res.EndStation, _ = mode(table.Trips, func(t domain.Trip) string { return t.EndStation })
		res.Route, _ = mode(table.Trips, domain.Trip.Route)
	})
	if err != nil {
		return nil, err
	}
	res.Elapsed = elapsed
	return res, nil
}

// DurationStats sums and averages trip durations
func (e *Engine) DurationStats(ctx context.Context, table *domain.Table) (*DurationResult, error) {
	res := &DurationResult{}
	elapsed, err := e.measure(ctx, GroupDuration, table, func() {
		var total float64
		for _, t := range table.Trips {
			total += t.Duration
		}
		res.TotalSeconds = total
		res.MeanSeconds = total / float64(table.Len())
		res.Total = SplitDuration(res.TotalSeconds)
		res.Mean = SplitDuration(math.Floor(res.MeanSeconds))
	})
	if err != nil {
		return nil, err
	}
	res.Elapsed = elapsed
	return res, nil
}

// UserStats breaks trips down by user type, gender and birth year
func (e *Engine) UserStats(ctx context.Context, table *domain.Table) (*UserResult, error) {
	res := &UserResult{}
	elapsed, err := e.measure(ctx, GroupUser, table, func() {
		res.UserTypes = sortedCounts(tally(table.Trips, func(t domain.Trip) string { return t.UserType }))
		res.Genders = sortedCounts(tally(table.Trips, func(t domain.Trip) string { return t.Gender }))
		res.BirthYear = e.birthYears(table.Trips)
	})
	if err != nil {
		return nil, err
	}
	res.Elapsed = elapsed
	return res, nil
}

func (e *Engine) birthYears(trips []domain.Trip) BirthYearStats {
	var stats BirthYearStats
	years := make([]int, 0, len(trips))
	for _, t := range trips {
		if !t.HasBirthYear() {
			stats.Unspecified++
			if !e.opts.IncludeUnspecifiedBirthYear {
				continue
			}
		}
		years = append(years, t.BirthYear)
	}
	if len(years) == 0 {
		return stats
	}

	stats.Available = true
	stats.Earliest, stats.MostRecent = years[0], years[0]
	for _, y := range years[1:] {
		stats.Earliest = min(stats.Earliest, y)
		stats.MostRecent = max(stats.MostRecent, y)
	}
	stats.MostCommon, _ = mode(years, func(y int) int { return y })
	return stats
}
