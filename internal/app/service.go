// Package service runs one contest scheduling pass: fetch the lobby listing,
// decode it, select the contest and render its cron jobs.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/okian/dkcron/internal/domain/model"
	"github.com/okian/dkcron/internal/domain/schedule"
	"github.com/okian/dkcron/internal/domain/selector"
	"github.com/okian/dkcron/internal/domain/sport"
	"github.com/okian/dkcron/pkg/logger"
	"github.com/okian/dkcron/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Source supplies raw lobby contest records.
type Source interface {
	Contests(ctx context.Context, s sport.Sport, live bool) ([]json.RawMessage, error)
}

// Request describes one run.
type Request struct {
	Sport    sport.Sport
	Live     bool
	Date     time.Time // calendar date of the slate
	EntryFee decimal.Decimal
	Query    string
	Exclude  string
}

// Result is the outcome of a run.
type Result struct {
	RunID     string
	Contests  []model.Contest
	Selection selector.Result
	// Jobs is nil when no contest matched.
	Jobs *schedule.Jobs
}

// Service wires a contest source to the selector and synthesizer.
type Service struct {
	source Source
	synth  *schedule.Synthesizer
	loc    *time.Location
	logger logger.Logger
}

// New constructs a Service. A source must be supplied with WithSource.
func New(opts ...Option) *Service {
	s := &Service{
		synth: schedule.NewSynthesizer(),
		loc:   time.Local,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	return s
}

// Run performs one pass. No matching contest is not an error: the result
// then has a nil Jobs. When synthesis fails the result is still returned
// with the error so callers can report the selection.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}

	res := &Result{RunID: uuid.NewString()}
	log := []logger.Field{logger.String("run_id", res.RunID), logger.String("sport", req.Sport.String())}

	started := time.Now()
	raws, err := s.source.Contests(ctx, req.Sport, req.Live)
	metrics.RecordFetchLatency(time.Since(started))
	if err != nil {
		metrics.RecordFetchError()
		s.logger.Error(ctx, "fetching contests failed", append(log, logger.Error(err))...)
		return nil, err
	}
	metrics.RecordContestsReceived(len(raws))
	s.logger.Info(ctx, "contests received", append(log, logger.Int("count", len(raws)))...)

	res.Contests, err = model.ParseRecords(raws, s.loc)
	if err != nil {
		metrics.RecordRecordRejected(rejectReason(err))
		s.logger.Error(ctx, "decoding contests failed", append(log, logger.Error(err))...)
		return nil, err
	}

	y, m, d := req.Date.Date()
	res.Selection = selector.Select(res.Contests, selector.Criteria{
		Date:     time.Date(y, m, d, 0, 0, 0, 0, s.loc),
		EntryFee: req.EntryFee,
		Query:    req.Query,
		Exclude:  req.Exclude,
	})
	metrics.UpdateMatchingContests(res.Selection.Matched)
	s.logger.Info(ctx, "contests meeting requirements", append(log, logger.Int("count", res.Selection.Matched))...)

	best := res.Selection.Contest
	if best == nil {
		metrics.RecordSelection(req.Sport.String(), metrics.OutcomeNone)
		metrics.MarkRun(time.Now())
		s.logger.Info(ctx, "no contest matched", log...)
		return res, nil
	}
	metrics.RecordSelection(req.Sport.String(), metrics.OutcomeMatched)
	s.logger.Info(ctx, "contest selected", append(log,
		logger.String("contest_id", best.ID),
		logger.String("name", best.Name),
		logger.String("draft_group", best.DraftGroup),
		logger.Int("entries", best.Entries),
		logger.Time("start", best.StartDt),
	)...)

	jobs, err := s.synth.Synthesize(*best, req.Sport)
	if err != nil {
		metrics.RecordScheduleError(scheduleReason(err))
		s.logger.Error(ctx, "rendering cron jobs failed", append(log, logger.Error(err))...)
		return res, err
	}
	res.Jobs = &jobs
	metrics.RecordScheduleGenerated(jobs.Sport.String())
	metrics.MarkRun(time.Now())

	s.logger.Info(ctx, "cron jobs rendered", append(log,
		logger.Time("window_start", jobs.Window.Start),
		logger.Time("window_end", jobs.Window.End),
		logger.Time("first_download", jobs.NextDownload(jobs.Window.Start.Add(-time.Minute))),
	)...)

	return res, nil
}

func rejectReason(err error) string {
	if errors.Is(err, model.ErrStartDate) {
		return "start_date"
	}
	return "malformed"
}

func scheduleReason(err error) string {
	switch {
	case errors.Is(err, sport.ErrUnsupportedSport):
		return "unsupported_sport"
	case errors.Is(err, schedule.ErrInvalidSchedule):
		return "invalid_schedule"
	default:
		return "other"
	}
}
