package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/asistencia/internal/domain/model"
	"github.com/okian/asistencia/pkg/logger"
	"github.com/okian/asistencia/pkg/metrics"
)

type snapshotBuilder interface {
	Build(ctx context.Context) (*model.DailySnapshot, error)
}

// Job runs one build and publish cycle.
type Job struct {
	builder   snapshotBuilder
	publisher Publisher
	printer   Publisher

	pushURL  string
	jobName  string
	gatherer prometheus.Gatherer

	logger logger.Logger
}

// JobOption configures a Job.
type JobOption func(*Job)

// WithLogger sets the job logger.
func WithLogger(l logger.Logger) JobOption {
	return func(j *Job) {
		if l != nil {
			j.logger = l
		}
	}
}

// WithPrinter also writes every published snapshot to p.
func WithPrinter(p Publisher) JobOption {
	return func(j *Job) {
		j.printer = p
	}
}

// WithPushgateway pushes run metrics to url under job once the run ends.
func WithPushgateway(url, job string) JobOption {
	return func(j *Job) {
		j.pushURL = url
		if job != "" {
			j.jobName = job
		}
	}
}

// WithGatherer replaces the metrics registry pushed after a run.
func WithGatherer(g prometheus.Gatherer) JobOption {
	return func(j *Job) {
		if g != nil {
			j.gatherer = g
		}
	}
}

// NewJob creates a job that builds with builder and stores with publisher.
func NewJob(builder *Builder, publisher Publisher, opts ...JobOption) *Job {
	j := &Job{
		publisher: publisher,
		jobName:   "asistencia_daily_snapshot",
		gatherer:  metrics.GetRegistry(),
		logger:    logger.Nop(),
	}
	if builder != nil {
		j.builder = builder
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Run builds, publishes and optionally prints one snapshot. Run metrics are
// recorded whatever the outcome; a failed metrics push is only logged.
func (j *Job) Run(ctx context.Context) (err error) {
	runID := uuid.NewString()
	log := j.logger.With(logger.String("run_id", runID))
	began := time.Now()

	defer func() {
		result := metrics.ResultSuccess
		if err != nil {
			result = metrics.ResultFailure
		}
		finished := time.Now()
		metrics.RecordRun(result, finished.Sub(began).Seconds(), finished.Unix())

		if pushErr := metrics.Push(ctx, j.pushURL, j.jobName, j.gatherer, nil); pushErr != nil {
			log.Warn(ctx, "metrics push failed", logger.Error(pushErr))
		}
	}()

	if j.builder == nil {
		return ErrNoSource
	}
	if j.publisher == nil {
		return ErrNoPublish
	}

	log.Info(ctx, "snapshot run started")

	snap, err := j.builder.Build(ctx)
	if err != nil {
		log.Error(ctx, "snapshot run failed", logger.Error(err))
		return err
	}

	if err = j.publisher.Publish(ctx, snap); err != nil {
		log.Error(ctx, "snapshot publish failed", logger.Error(err))
		return err
	}

	if j.printer != nil {
		if err = j.printer.Publish(ctx, snap); err != nil {
			log.Error(ctx, "snapshot print failed", logger.Error(err))
			return err
		}
	}

	log.Info(ctx, "snapshot run finished", logger.Float64("seconds", time.Since(began).Seconds()))
	return nil
}
