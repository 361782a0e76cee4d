package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/okian/asistencia/internal/domain/calendar"
	"github.com/okian/asistencia/internal/domain/model"
)

// Names of the important dates that bound the school calendar.
const (
	SchoolYearStartKey      = "Fecha_Inicio_Año_Escolar"
	SchoolYearEndKey        = "Fecha_Fin_Año_Escolar"
	MidYearVacationStartKey = "Fecha_Inicio_Vacaciones_Medio_Año"
	MidYearVacationEndKey   = "Fecha_Fin_Vacaciones_Medio_Año"
)

const (
	importantDatesQuery = `
		SELECT "Nombre", "Valor"
		FROM "T_Fechas_Importantes"
		WHERE "Nombre" IN ($1, $2, $3, $4)`

	eventDayQuery = `
		SELECT COUNT(*)
		FROM "T_Eventos"
		WHERE $1 BETWEEN "Fecha_Inicio" AND "Fecha_Conclusion"`

	announcementsQuery = `
		SELECT "Id_Comunicado", "Titulo", "Contenido", "Fecha_Inicio", "Fecha_Conclusion",
		       "Google_Drive_Imagen_ID"
		FROM "T_Comunicados"
		WHERE $1 BETWEEN "Fecha_Inicio" AND "Fecha_Conclusion"
		ORDER BY "Fecha_Inicio", "Id_Comunicado"`
)

// SchoolCalendar loads the school-year and mid-year vacation windows.
// Every bound must be present.
func (s *SQLStore) SchoolCalendar(ctx context.Context) (calendar.SchoolCalendar, error) {
	values, err := s.namedValues(ctx, "important dates", importantDatesQuery,
		SchoolYearStartKey, SchoolYearEndKey, MidYearVacationStartKey, MidYearVacationEndKey)
	if err != nil {
		return calendar.SchoolCalendar{}, err
	}

	dates := make(map[string]time.Time, len(values))
	for _, key := range []string{SchoolYearStartKey, SchoolYearEndKey, MidYearVacationStartKey, MidYearVacationEndKey} {
		var d dateValue
		if err := d.Scan(values[key]); err != nil {
			return calendar.SchoolCalendar{}, fmt.Errorf("%s: %w", key, err)
		}
		if !d.Valid {
			return calendar.SchoolCalendar{}, fmt.Errorf("%w: %s", ErrMissingCalendarDate, key)
		}
		dates[key] = d.Time
	}

	year, err := calendar.NewWindow(dates[SchoolYearStartKey], dates[SchoolYearEndKey])
	if err != nil {
		return calendar.SchoolCalendar{}, fmt.Errorf("school year: %w", err)
	}
	vacation, err := calendar.NewWindow(dates[MidYearVacationStartKey], dates[MidYearVacationEndKey])
	if err != nil {
		return calendar.SchoolCalendar{}, fmt.Errorf("mid-year vacation: %w", err)
	}
	return calendar.SchoolCalendar{SchoolYear: year, MidYearVacation: vacation}, nil
}

// IsEventDay reports whether any declared event spans date.
func (s *SQLStore) IsEventDay(ctx context.Context, date time.Time) (bool, error) {
	counts, err := collect(ctx, s, "event day", eventDayQuery, func(rows *sql.Rows) (int64, error) {
		var n int64
		err := rows.Scan(&n)
		return n, err
	}, dateParam(date))
	if err != nil {
		return false, err
	}
	return len(counts) > 0 && counts[0] > 0, nil
}

// ActiveAnnouncements lists the announcements whose range spans date.
func (s *SQLStore) ActiveAnnouncements(ctx context.Context, date time.Time) ([]model.Announcement, error) {
	return collect(ctx, s, "announcements", announcementsQuery, func(rows *sql.Rows) (model.Announcement, error) {
		var a model.Announcement
		var start, end dateValue
		var image sql.NullString
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &start, &end, &image); err != nil {
			return a, err
		}
		a.StartDate, a.EndDate = start.Time, end.Time
		a.ImageDrive = nullable(image)
		return a, nil
	}, dateParam(date))
}
