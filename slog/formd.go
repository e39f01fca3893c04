package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/edgar"
)

// Ensure LoggingFormDService implements edgar.FormDService.
var _ edgar.FormDService = (*LoggingFormDService)(nil)

// LoggingFormDService wraps a FormDService with debug logging.
type LoggingFormDService struct {
	next   edgar.FormDService
	logger *slog.Logger
}

// NewLoggingFormDService creates a new LoggingFormDService.
func NewLoggingFormDService(next edgar.FormDService, logger *slog.Logger) *LoggingFormDService {
	return &LoggingFormDService{next: next, logger: logger}
}

// CreateFormD delegates to the wrapped service and logs the operation.
func (s *LoggingFormDService) CreateFormD(ctx context.Context, rec *edgar.FormDRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create form D",
			"source", rec.SourcePath,
			"hash", rec.ContentHash,
			"id", rec.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateFormD(ctx, rec)
}

// FindFormDByID delegates to the wrapped service and logs the operation.
func (s *LoggingFormDService) FindFormDByID(ctx context.Context, id string) (rec *edgar.FormDRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find form D",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindFormDByID(ctx, id)
}

// FindFormDs delegates to the wrapped service and logs the operation.
func (s *LoggingFormDService) FindFormDs(ctx context.Context, filter edgar.FormDFilter) (recs []*edgar.FormDRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find form Ds",
			"count", len(recs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindFormDs(ctx, filter)
}

// DeleteFormD delegates to the wrapped service and logs the operation.
func (s *LoggingFormDService) DeleteFormD(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete form D",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteFormD(ctx, id)
}
