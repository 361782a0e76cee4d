package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/okian/asistencia/internal/domain/model"
	"github.com/okian/asistencia/internal/domain/schedule"
)

const (
	assistantsQuery = `
		SELECT "DNI_Auxiliar", "Nombres", "Apellidos", "Genero", "Google_Drive_Foto_ID"
		FROM "T_Auxiliares"
		WHERE "Estado" = true
		ORDER BY "Apellidos", "Nombres"`

	primaryTeachersQuery = `
		SELECT "DNI_Profesor_Primaria", "Nombres", "Apellidos", "Genero", "Google_Drive_Foto_ID"
		FROM "T_Profesores_Primaria"
		WHERE "Estado" = true
		ORDER BY "Apellidos", "Nombres"`

	administrativeQuery = `
		SELECT "DNI_Personal_Administrativo", "Nombres", "Apellidos", "Genero", "Cargo",
		       "Google_Drive_Foto_ID", "Horario_Laboral_Entrada", "Horario_Laboral_Salida"
		FROM "T_Personal_Administrativo"
		WHERE "Estado" = true
		ORDER BY "Apellidos", "Nombres"`

	// One row per active teacher with classes on the weekday. The upper bound
	// is one past the last taught block.
	scheduleWindowsQuery = `
		SELECT ps."DNI_Profesor_Secundaria", ps."Nombres", ps."Apellidos", ps."Genero",
		       ps."Google_Drive_Foto_ID",
		       MIN(ch."Indice_Hora_Academica_Inicio") AS "Indice_Entrada",
		       MAX(ch."Indice_Hora_Academica_Inicio" + ch."Cant_Hora_Academicas") AS "Indice_Salida"
		FROM "T_Profesores_Secundaria" ps
		JOIN "T_Cursos_Horario" ch ON ps."DNI_Profesor_Secundaria" = ch."DNI_Profesor_Secundaria"
		WHERE ps."Estado" = true AND ch."Dia_Semana" = $1
		GROUP BY ps."DNI_Profesor_Secundaria", ps."Nombres", ps."Apellidos", ps."Genero",
		         ps."Google_Drive_Foto_ID"
		ORDER BY ps."DNI_Profesor_Secundaria"`
)

// Assistants lists the active auxiliary staff.
func (s *SQLStore) Assistants(ctx context.Context) ([]model.Assistant, error) {
	return collect(ctx, s, "assistants", assistantsQuery, func(rows *sql.Rows) (model.Assistant, error) {
		var a model.Assistant
		var photo sql.NullString
		if err := rows.Scan(&a.DNI, &a.Names, &a.Surnames, &a.Gender, &photo); err != nil {
			return a, err
		}
		a.DrivePhoto = nullable(photo)
		return a, nil
	})
}

// PrimaryTeachers lists the active primary-level teachers.
func (s *SQLStore) PrimaryTeachers(ctx context.Context) ([]model.PrimaryTeacher, error) {
	return collect(ctx, s, "primary teachers", primaryTeachersQuery, func(rows *sql.Rows) (model.PrimaryTeacher, error) {
		var t model.PrimaryTeacher
		var photo sql.NullString
		if err := rows.Scan(&t.DNI, &t.Names, &t.Surnames, &t.Gender, &photo); err != nil {
			return t, err
		}
		t.DrivePhoto = nullable(photo)
		return t, nil
	})
}

// AdministrativeStaff lists the active administrative staff with their own
// work hours anchored on day.
func (s *SQLStore) AdministrativeStaff(ctx context.Context, day time.Time) ([]model.AdministrativeStaff, error) {
	return collect(ctx, s, "administrative staff", administrativeQuery, func(rows *sql.Rows) (model.AdministrativeStaff, error) {
		var p model.AdministrativeStaff
		var photo sql.NullString
		var entry, exit rawValue
		if err := rows.Scan(&p.DNI, &p.Names, &p.Surnames, &p.Gender, &p.Position, &photo, &entry, &exit); err != nil {
			return p, err
		}
		p.DrivePhoto = nullable(photo)

		var err error
		if p.EntryTime, err = requiredClock(entry.V, day); err != nil {
			return p, fmt.Errorf("entry of %s: %w", p.DNI, err)
		}
		if p.ExitTime, err = requiredClock(exit.V, day); err != nil {
			return p, fmt.Errorf("exit of %s: %w", p.DNI, err)
		}
		return p, nil
	})
}

// ScheduleWindows lists the active secondary teachers that teach on the
// given store weekday, with the block range they cover.
func (s *SQLStore) ScheduleWindows(ctx context.Context, weekday int) ([]model.SecondaryCandidate, error) {
	return collect(ctx, s, "schedule windows", scheduleWindowsQuery, func(rows *sql.Rows) (model.SecondaryCandidate, error) {
		var c model.SecondaryCandidate
		var photo sql.NullString
		if err := rows.Scan(&c.DNI, &c.Names, &c.Surnames, &c.Gender, &photo,
			&c.FirstBlock, &c.LastBlockExclusive); err != nil {
			return c, err
		}
		c.DrivePhoto = nullable(photo)
		return c, nil
	}, weekday)
}

// requiredClock is schedule.ParseClock without the start-time default.
func requiredClock(raw any, day time.Time) (time.Time, error) {
	if raw == nil {
		return time.Time{}, fmt.Errorf("%w: missing value", schedule.ErrMalformedTime)
	}
	return schedule.ParseClock(raw, day)
}
