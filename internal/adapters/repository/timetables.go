package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/okian/asistencia/internal/domain/model"
	"github.com/okian/asistencia/pkg/logger"
)

// level describes where a school level keeps its timetable bounds.
type level struct {
	name     string
	startKey string
	endKey   string
}

var levels = []level{ //nolint:gochecknoglobals // fixed lookup
	{name: "PRIMARIA", startKey: "Hora_Inicio_Asistencia_Primaria", endKey: "Hora_Final_Asistencia_Primaria"},
	{name: "SECUNDARIA", startKey: "Hora_Inicio_Asistencia_Secundaria", endKey: "Hora_Final_Asistencia_Secundaria"},
}

const (
	generalSchedulesQuery = `
		SELECT "Nombre", "Valor"
		FROM "T_Horarios_Asistencia"
		ORDER BY "Nombre"`

	timetableQuery = `
		SELECT "Nombre", "Valor"
		FROM "T_Horarios_Asistencia"
		WHERE "Nombre" IN ($1, $2, $3, $4)`
)

// GeneralSchedules lists every named institutional time anchored on day.
// Rows whose value is not a clock time are left out.
func (s *SQLStore) GeneralSchedules(ctx context.Context, day time.Time) ([]model.NamedClock, error) {
	type entry struct {
		name string
		raw  any
	}
	entries, err := collect(ctx, s, "general schedules", generalSchedulesQuery, func(rows *sql.Rows) (entry, error) {
		var e entry
		var raw rawValue
		if err := rows.Scan(&e.name, &raw); err != nil {
			return e, err
		}
		e.raw = raw.V
		return e, nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]model.NamedClock, 0, len(entries))
	for _, e := range entries {
		v, err := requiredClock(e.raw, day)
		if err != nil {
			s.logger.Warn(ctx, "general schedule is not a clock time, skipping",
				logger.String("name", e.name), logger.Error(err))
			continue
		}
		out = append(out, model.NamedClock{Name: e.name, Value: v})
	}
	return out, nil
}

// SchoolTimetables returns the student timetable of each level anchored on
// day. A level with a missing bound is left out.
func (s *SQLStore) SchoolTimetables(ctx context.Context, day time.Time) ([]model.LevelTimetable, error) {
	args := make([]any, 0, 2*len(levels))
	for _, l := range levels {
		args = append(args, l.startKey, l.endKey)
	}
	values, err := s.namedValues(ctx, "school timetables", timetableQuery, args...)
	if err != nil {
		return nil, err
	}

	out := make([]model.LevelTimetable, 0, len(levels))
	for _, l := range levels {
		startRaw, endRaw := values[l.startKey], values[l.endKey]
		if startRaw == nil || endRaw == nil {
			s.logger.Warn(ctx, "school timetable incomplete, skipping level", logger.String("level", l.name))
			continue
		}
		start, err := requiredClock(startRaw, day)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.startKey, err)
		}
		end, err := requiredClock(endRaw, day)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.endKey, err)
		}
		out = append(out, model.LevelTimetable{Level: l.name, Start: start, End: end})
	}
	return out, nil
}
