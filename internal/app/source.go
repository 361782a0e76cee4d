package service

import (
	"context"
	"time"

	"github.com/okian/asistencia/internal/domain/calendar"
	"github.com/okian/asistencia/internal/domain/model"
	"github.com/okian/asistencia/internal/domain/schedule"
)

// Source provides every input of a daily snapshot. repository.SQLStore is
// the production implementation.
type Source interface {
	IsEventDay(ctx context.Context, date time.Time) (bool, error)
	SchoolCalendar(ctx context.Context) (calendar.SchoolCalendar, error)
	ActiveAnnouncements(ctx context.Context, date time.Time) ([]model.Announcement, error)

	Assistants(ctx context.Context) ([]model.Assistant, error)
	AdministrativeStaff(ctx context.Context, day time.Time) ([]model.AdministrativeStaff, error)
	PrimaryTeachers(ctx context.Context) ([]model.PrimaryTeacher, error)

	RecessConfig(ctx context.Context, category schedule.Category) (schedule.RecessConfig, error)
	BaseStartTime(ctx context.Context, category schedule.Category, day time.Time) (time.Time, error)
	ScheduleWindows(ctx context.Context, weekday int) ([]model.SecondaryCandidate, error)

	GeneralSchedules(ctx context.Context, day time.Time) ([]model.NamedClock, error)
	SchoolTimetables(ctx context.Context, day time.Time) ([]model.LevelTimetable, error)
}

// Publisher stores a finished snapshot.
type Publisher interface {
	Publish(ctx context.Context, snap *model.DailySnapshot) error
}
