// Package service builds the daily attendance snapshot and runs the job that
// publishes it.
package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/asistencia/internal/domain/calendar"
	"github.com/okian/asistencia/internal/domain/model"
	"github.com/okian/asistencia/internal/domain/schedule"
	"github.com/okian/asistencia/pkg/logger"
	"github.com/okian/asistencia/pkg/metrics"
)

// Fetch source labels used in logs and metrics.
const (
	sourceEventDay         = "event_day"
	sourceSchoolCalendar   = "school_calendar"
	sourceAnnouncements    = "announcements"
	sourceAssistants       = "assistants"
	sourceAdministrative   = "administrative_staff"
	sourcePrimaryTeachers  = "primary_teachers"
	sourceRecessConfig     = "recess_config"
	sourceStartTime        = "start_time"
	sourceScheduleWindows  = "schedule_windows"
	sourceGeneralSchedules = "general_schedules"
	sourceSchoolTimetables = "school_timetables"
)

// Calendar flag labels.
const (
	FlagEventDay              = "event_day"
	FlagOutsideSchoolYear     = "outside_school_year"
	FlagInsideMidYearVacation = "inside_mid_year_vacation"
)

// Builder assembles a DailySnapshot from a Source.
type Builder struct {
	source Source

	now      func() time.Time
	location *time.Location
	date     *time.Time

	logger logger.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithClock replaces time.Now when resolving today.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithLocation sets the institution's zone.
func WithLocation(loc *time.Location) BuilderOption {
	return func(b *Builder) {
		if loc != nil {
			b.location = loc
		}
	}
}

// WithDate builds the snapshot of a past or future local date instead of today.
func WithDate(date time.Time) BuilderOption {
	return func(b *Builder) {
		b.date = &date
	}
}

// WithBuilderLogger sets the builder logger.
func WithBuilderLogger(l logger.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder returns a Builder reading from source.
func NewBuilder(source Source, opts ...BuilderOption) *Builder {
	b := &Builder{
		source:   source,
		now:      time.Now,
		location: time.UTC,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Day resolves the day the builder targets.
func (b *Builder) Day() calendar.Day {
	if b.date != nil {
		return calendar.On(*b.date, b.location)
	}
	return calendar.Today(b.now(), b.location)
}

// Build fetches every input concurrently and returns the snapshot. The first
// failing fetch cancels the others and no snapshot is returned.
func (b *Builder) Build(ctx context.Context) (*model.DailySnapshot, error) {
	if b.source == nil {
		return nil, ErrNoSource
	}

	day := b.Day()
	local := day.Local
	weekday := schedule.StoreWeekday(local.Weekday())

	b.logger.Info(ctx, "building snapshot",
		logger.String("date", local.Format(time.DateOnly)),
		logger.Int("weekday", weekday))

	var (
		eventDay      bool
		cal           calendar.SchoolCalendar
		announcements []model.Announcement
		assistants    []model.Assistant
		admin         []model.AdministrativeStaff
		primary       []model.PrimaryTeacher
		recess        schedule.RecessConfig
		start         time.Time
		candidates    []model.SecondaryCandidate
		general       []model.NamedClock
		timetables    []model.LevelTimetable
	)

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(source string, fn func(context.Context) error) {
		g.Go(func() error {
			began := time.Now()
			err := fn(gctx)
			metrics.RecordFetchLatency(source, float64(time.Since(began).Milliseconds()))
			if err != nil {
				metrics.RecordFetchError(source)
				return fmt.Errorf("%s: %w", source, err)
			}
			return nil
		})
	}

	fetch(sourceEventDay, func(ctx context.Context) (err error) {
		eventDay, err = b.source.IsEventDay(ctx, local)
		return err
	})
	fetch(sourceSchoolCalendar, func(ctx context.Context) (err error) {
		cal, err = b.source.SchoolCalendar(ctx)
		return err
	})
	fetch(sourceAnnouncements, func(ctx context.Context) (err error) {
		announcements, err = b.source.ActiveAnnouncements(ctx, local)
		return err
	})
	fetch(sourceAssistants, func(ctx context.Context) (err error) {
		assistants, err = b.source.Assistants(ctx)
		return err
	})
	fetch(sourceAdministrative, func(ctx context.Context) (err error) {
		admin, err = b.source.AdministrativeStaff(ctx, local)
		return err
	})
	fetch(sourcePrimaryTeachers, func(ctx context.Context) (err error) {
		primary, err = b.source.PrimaryTeachers(ctx)
		return err
	})
	fetch(sourceRecessConfig, func(ctx context.Context) (err error) {
		recess, err = b.source.RecessConfig(ctx, schedule.Secondary)
		return err
	})
	fetch(sourceStartTime, func(ctx context.Context) (err error) {
		start, err = b.source.BaseStartTime(ctx, schedule.Secondary, local)
		return err
	})
	fetch(sourceScheduleWindows, func(ctx context.Context) (err error) {
		candidates, err = b.source.ScheduleWindows(ctx, weekday)
		return err
	})
	fetch(sourceGeneralSchedules, func(ctx context.Context) (err error) {
		general, err = b.source.GeneralSchedules(ctx, local)
		return err
	})
	fetch(sourceSchoolTimetables, func(ctx context.Context) (err error) {
		timetables, err = b.source.SchoolTimetables(ctx, local)
		return err
	})

	if err := g.Wait(); err != nil {
		b.logger.Error(ctx, "snapshot fetch failed", logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	outside := calendar.IsOutsideSchoolYear(local, cal.SchoolYear.Start, cal.SchoolYear.End)
	vacation := calendar.IsInsideMidYearVacation(local, cal.MidYearVacation.Start, cal.MidYearVacation.End)

	snap := &model.DailySnapshot{
		EventDay:              eventDay,
		DateUTC:               day.UTC,
		DateLocal:             local,
		OutsideSchoolYear:     outside,
		InsideMidYearVacation: vacation,
		Announcements:         announcements,
		Assistants:            assistants,
		AdministrativeStaff:   admin,
		PrimaryTeachers:       primary,
		SecondaryTeachers:     secondaryTeachers(start, recess, candidates),
		GeneralSchedules:      general,
		SchoolTimetables:      timetables,
	}

	metrics.UpdateCalendarFlag(FlagEventDay, snap.EventDay)
	metrics.UpdateCalendarFlag(FlagOutsideSchoolYear, snap.OutsideSchoolYear)
	metrics.UpdateCalendarFlag(FlagInsideMidYearVacation, snap.InsideMidYearVacation)
	for category, n := range snap.StaffCounts() {
		metrics.UpdateStaffCount(category, n)
	}

	b.logger.Info(ctx, "snapshot built",
		logger.Bool("eventDay", snap.EventDay),
		logger.Bool("outsideSchoolYear", snap.OutsideSchoolYear),
		logger.Bool("insideMidYearVacation", snap.InsideMidYearVacation),
		logger.Int("announcements", len(snap.Announcements)),
		logger.Int("secondaryTeachers", len(snap.SecondaryTeachers)))
	return snap, nil
}

// secondaryTeachers attaches computed attendance windows to each candidate.
func secondaryTeachers(start time.Time, recess schedule.RecessConfig, candidates []model.SecondaryCandidate) []model.SecondaryTeacher {
	windows := make([]schedule.Window, len(candidates))
	for i, c := range candidates {
		windows[i] = schedule.Window{
			PersonID:           c.DNI,
			FirstBlock:         c.FirstBlock,
			LastBlockExclusive: c.LastBlockExclusive,
		}
	}

	computed := schedule.Assemble(start, recess, windows)
	out := make([]model.SecondaryTeacher, len(candidates))
	for i, c := range candidates {
		out[i] = model.SecondaryTeacher{
			DNI:        c.DNI,
			Names:      c.Names,
			Surnames:   c.Surnames,
			Gender:     c.Gender,
			DrivePhoto: c.DrivePhoto,
			EntryTime:  computed[i].Entry,
			ExitTime:   computed[i].Exit,
		}
	}
	return out
}
