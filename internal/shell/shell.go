// Package shell runs the interactive question-and-answer loop: it asks for a
// city and filters, loads the matching trips, prints every statistic group,
// pages through raw records on request and offers to start over.
package shell

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"bikeshare/internal/config"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/report"
	"bikeshare/internal/statistics"
	"bikeshare/pkg/contracts/domain"
)

// DatasetLoader loads the trips for a selection
type DatasetLoader interface {
	Load(ctx context.Context, sel domain.Selection) (*domain.Table, error)
}

// Analyzer computes the aggregate statistic groups
type Analyzer interface {
	TimeStats(ctx context.Context, table *domain.Table) (*statistics.TimeResult, error)
	StationStats(ctx context.Context, table *domain.Table) (*statistics.StationResult, error)
	DurationStats(ctx context.Context, table *domain.Table) (*statistics.DurationResult, error)
	UserStats(ctx context.Context, table *domain.Table) (*statistics.UserResult, error)
}

// Options tunes the shell
type Options struct {
	PageSize int
}

// Shell is the interactive front end
type Shell struct {
	input   *lineReader
	printer *report.Printer
	catalog config.Catalog
	loader  DatasetLoader
	engine  Analyzer
	opts    Options
	logger  *slog.Logger
}

// New creates a shell reading answers from in
func New(in io.Reader, printer *report.Printer, catalog config.Catalog, loader DatasetLoader, engine Analyzer, opts Options, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PageSize < 1 {
		opts.PageSize = statistics.DefaultPageSize
	}
	return &Shell{
		input:   newLineReader(in),
		printer: printer,
		catalog: catalog,
		loader:  loader,
		engine:  engine,
		opts:    opts,
		logger:  infrastructure.WithComponent(logger, "shell"),
	}
}

// Run loops over sessions until the user declines to restart or input ends.
// It returns nil in both cases and the context error on cancellation.
func (s *Shell) Run(ctx context.Context) error {
	defer s.input.Close()
	s.printer.Welcome()

	for round := 1; ; round++ {
		sessionCtx := infrastructure.WithSessionID(ctx, infrastructure.NewSessionID())
		s.logger.InfoContext(sessionCtx, "Session started", slog.Int("round", round))

		err := s.session(sessionCtx)
		if err == nil {
			var again bool
			again, err = s.askYesNo(sessionCtx, "Would you like to restart?")
			if err == nil && !again {
				s.logger.InfoContext(sessionCtx, "Session ended", slog.Int("round", round))
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			s.logger.InfoContext(sessionCtx, "Input closed", slog.Int("round", round))
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// session runs one selection, load and report cycle. Only input and
// context errors are returned; load failures are reported and swallowed.
func (s *Shell) session(ctx context.Context) error {
	sel, city, err := s.askSelection(ctx)
	if err != nil {
		return err
	}
	s.printer.Separator()

	table, err := s.loader.Load(ctx, sel)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		infrastructure.WithError(s.logger, err).WarnContext(ctx, "Load failed",
			slog.String("selection", sel.String()))
		s.printer.Error("Could not load trips for %s: %v", city.Name, err)
		return nil
	}

	s.printer.Selection(city.Name, table)
	if table.IsEmpty() {
		s.printer.Warn("No trips match the selected filters.")
		return nil
	}

	s.report(ctx, table)
	return s.browse(ctx, table)
}

func (s *Shell) askSelection(ctx context.Context) (domain.Selection, config.CitySource, error) {
	city, err := s.askCity(ctx)
	if err != nil {
		return domain.Selection{}, city, err
	}
	sel := domain.NewSelection(city.Key)

	if sel.Mode, err = s.askFilterMode(ctx); err != nil {
		return sel, city, err
	}
	if sel.Mode.WantsMonth() {
		if sel.Month, err = s.askMonth(ctx); err != nil {
			return sel, city, err
		}
	}
	if sel.Mode.WantsDay() {
		if sel.Day, err = s.askDay(ctx); err != nil {
			return sel, city, err
		}
	}
	return sel, city, nil
}

// report prints the four aggregate groups in order
func (s *Shell) report(ctx context.Context, table *domain.Table) {
	steps := []struct {
		group string
		run   func() error
	}{
		{statistics.GroupTime, func() error {
			res, err := s.engine.TimeStats(ctx, table)
			if err == nil {
				s.printer.Time(res)
			}
			return err
		}},
		{statistics.GroupStation, func() error {
			res, err := s.engine.StationStats(ctx, table)
			if err == nil {
				s.printer.Stations(res)
			}
			return err
		}},
		{statistics.GroupDuration, func() error {
			res, err := s.engine.DurationStats(ctx, table)
			if err == nil {
				s.printer.Durations(res)
			}
			return err
		}},
		{statistics.GroupUser, func() error {
			res, err := s.engine.UserStats(ctx, table)
			if err == nil {
				s.printer.Users(res)
			}
			return err
		}},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			infrastructure.WithError(s.logger, err).WarnContext(ctx, "Statistic failed",
				slog.String("group", step.group))
			if apperrors.IsType(err, apperrors.ErrTypeEmpty) {
				s.printer.Warn("No trips match the selected filters.")
			} else {
				s.printer.Error("Could not compute %s statistics: %v", step.group, err)
			}
		}
	}
}

// browse pages through raw records while the user keeps answering yes
func (s *Shell) browse(ctx context.Context, table *domain.Table) error {
	var inputErr error
	shown := 0
	pager := statistics.NewPaginator(table, s.opts.PageSize)
	for _, rec := range pager.All(func(int) bool {
		more, err := s.askYesNo(ctx, "Would you like to see detailed trip data?")
		if err != nil {
			inputErr = err
			return false
		}
		return more
	}) {
		s.printer.Record(rec)
		shown++
	}

	s.logger.DebugContext(ctx, "Raw records shown",
		slog.Int("shown", shown),
		slog.Int("trips", table.Len()),
		slog.Int("pages", pager.Pages()))
	return inputErr
}
