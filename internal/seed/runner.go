// Package seed fills a development database with a synthetic school so the
// snapshot job can be run end to end without production data.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/okian/asistencia/pkg/logger"
)

var validate = validator.New() //nolint:gochecknoglobals // validator caches struct metadata

// Writer is the store the dataset is written to.
type Writer interface {
	Migrate(ctx context.Context) error
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error
}

// Run creates the schema and writes one synthetic school into w.
func Run(ctx context.Context, w Writer, cfg Config, log logger.Logger) (*Stats, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if log == nil {
		log = logger.Nop()
	}

	stats := &Stats{
		StartTime: time.Now(),
	}

	today := cfg.Today
	if today.IsZero() {
		today = stats.StartTime
	}

	log.Info(ctx, "seeding attendance store",
		logger.String("today", today.Format(time.DateOnly)),
		logger.Int("secondaryTeachers", cfg.SecondaryTeachers),
		logger.Int("primaryTeachers", cfg.PrimaryTeachers),
		logger.Int("assistants", cfg.Assistants),
		logger.Int("administrativeStaff", cfg.AdministrativeStaff),
		logger.Float64("inactiveRatio", cfg.InactiveRatio))

	// Step 1: Create tables
	if err := w.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("schema creation failed: %w", err)
	}

	// Step 2: Generate and write every table
	for _, t := range dataset(cfg, today, stats) {
		if err := w.InsertRows(ctx, t.name, t.columns, t.rows); err != nil {
			return nil, fmt.Errorf("writing %s failed: %w", t.name, err)
		}
		log.Debug(ctx, "table seeded", logger.String("table", t.name), logger.Int("rows", len(t.rows)))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Info(ctx, "seed completed",
		logger.Int("courses", stats.Courses),
		logger.Int("inactive", stats.Inactive),
		logger.String("duration", stats.Duration.String()))
	return stats, nil
}
