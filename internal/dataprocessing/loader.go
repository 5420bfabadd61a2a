package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bikeshare/internal/config"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/files"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/validation"
	"bikeshare/pkg/contracts/domain"

	"go.opentelemetry.io/otel/attribute"
)

// LoadRecorder receives one observation per Load call
type LoadRecorder interface {
	ObserveLoad(ctx context.Context, city string, trips int, elapsed time.Duration, err error)
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithLoadRecorder attaches a metrics recorder
func WithLoadRecorder(r LoadRecorder) LoaderOption {
	return func(l *Loader) { l.recorder = r }
}

// Loader reads and filters city trip sources. It keeps no state between
// calls, so every Load reads the source afresh.
type Loader struct {
	catalog   config.Catalog
	discovery *files.Discovery
	validator *validation.FileValidator
	recorder  LoadRecorder
	logger    *slog.Logger
}

// NewLoader creates a loader resolving sources under dataDir
func NewLoader(catalog config.Catalog, dataDir string, logger *slog.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{
		catalog:   catalog,
		discovery: files.NewDiscovery(dataDir),
		validator: validation.NewFileValidator(logger),
		logger:    infrastructure.WithComponent(logger, "loader"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the trips of sel.City that pass the month and day filters,
// in source order.
func (l *Loader) Load(ctx context.Context, sel domain.Selection) (table *domain.Table, err error) {
	started := time.Now()
	ctx, span := infrastructure.StartSpan(ctx, "dataset.load",
		attribute.String("city", sel.City),
		attribute.String("month", sel.Month),
		attribute.String("day", sel.Day))
	defer func() {
		if err != nil {
			infrastructure.RecordError(ctx, err)
		} else {
			span.SetAttributes(attribute.Int("trips", table.Len()))
		}
		span.End()
		if l.recorder != nil {
			l.recorder.ObserveLoad(ctx, sel.City, table.Len(), time.Since(started), err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	city, ok := l.catalog.Lookup(sel.City)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown city %q", sel.City)).
			WithContext("city", sel.City)
	}
	filter, err := newTripFilter(sel)
	if err != nil {
		return nil, err
	}

	src, err := l.discovery.Resolve(city.File)
	if err != nil {
		l.logger.WarnContext(ctx, "Trip source not found",
			slog.String("city", city.Key),
			slog.String("file", city.File),
			slog.String("data_dir", l.discovery.BasePath()))
		return nil, apperrors.NewDataNotFoundError(city.File, err).WithContext("city", city.Key)
	}
	if err := l.validator.ValidateSourceFile(src.Path); err != nil {
		return nil, err
	}

	records, err := readSource(src)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read %s", src.Name), 0, err).
			WithContext("source", src.Path)
	}

	trips, err := parseTrips(records)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			appErr.WithContext("source", src.Path)
		}
		infrastructure.WithError(l.logger, err).WarnContext(ctx, "Trip source is malformed",
			slog.String("source", src.Path))
		return nil, err
	}
	total := len(trips)
	trips = filter.apply(trips)

	sel.City = city.Key
	table = &domain.Table{City: city.Key, Selection: sel, Trips: trips}

	l.logger.InfoContext(ctx, "Dataset loaded",
		slog.String("source", src.Path),
		slog.String("selection", sel.String()),
		slog.Int("rows", total),
		slog.Int("trips", table.Len()),
		slog.Duration("elapsed", time.Since(started)))

	return table, nil
}

func newTripFilter(sel domain.Selection) (tripFilter, error) {
	month, hasMonth, err := sel.MonthFilter()
	if err != nil {
		return tripFilter{}, apperrors.NewValidationError(err.Error()).WithContext("month", sel.Month)
	}
	day, hasDay, err := sel.DayFilter()
	if err != nil {
		return tripFilter{}, apperrors.NewValidationError(err.Error()).WithContext("day", sel.Day)
	}
	return tripFilter{month: month, hasMonth: hasMonth, day: day, hasDay: hasDay}, nil
}
