package repository

import (
	"context"
	"fmt"
	"strings"
)

// Schema creates the tables the store reads. It is a development schema that
// runs on both drivers; production databases are managed elsewhere.
const Schema = `
CREATE TABLE IF NOT EXISTS "T_Ajustes_Generales_Sistema" (
	"Nombre" VARCHAR(100) PRIMARY KEY,
	"Valor"  TEXT
);
CREATE TABLE IF NOT EXISTS "T_Horarios_Asistencia" (
	"Nombre" VARCHAR(100) PRIMARY KEY,
	"Valor"  TEXT
);
CREATE TABLE IF NOT EXISTS "T_Fechas_Importantes" (
	"Nombre" VARCHAR(100) PRIMARY KEY,
	"Valor"  TEXT
);
CREATE TABLE IF NOT EXISTS "T_Eventos" (
	"Id_Evento"        INTEGER PRIMARY KEY,
	"Nombre"           TEXT,
	"Fecha_Inicio"     TEXT NOT NULL,
	"Fecha_Conclusion" TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS "T_Comunicados" (
	"Id_Comunicado"          INTEGER PRIMARY KEY,
	"Titulo"                 TEXT NOT NULL,
	"Contenido"              TEXT NOT NULL,
	"Fecha_Inicio"           TEXT NOT NULL,
	"Fecha_Conclusion"       TEXT NOT NULL,
	"Google_Drive_Imagen_ID" TEXT
);
CREATE TABLE IF NOT EXISTS "T_Auxiliares" (
	"DNI_Auxiliar"         CHAR(8) PRIMARY KEY,
	"Nombres"              TEXT NOT NULL,
	"Apellidos"            TEXT NOT NULL,
	"Genero"               CHAR(1) NOT NULL,
	"Google_Drive_Foto_ID" TEXT,
	"Estado"               BOOLEAN NOT NULL
);
CREATE TABLE IF NOT EXISTS "T_Profesores_Primaria" (
	"DNI_Profesor_Primaria" CHAR(8) PRIMARY KEY,
	"Nombres"               TEXT NOT NULL,
	"Apellidos"             TEXT NOT NULL,
	"Genero"                CHAR(1) NOT NULL,
	"Google_Drive_Foto_ID"  TEXT,
	"Estado"                BOOLEAN NOT NULL
);
CREATE TABLE IF NOT EXISTS "T_Personal_Administrativo" (
	"DNI_Personal_Administrativo" CHAR(8) PRIMARY KEY,
	"Nombres"                     TEXT NOT NULL,
	"Apellidos"                   TEXT NOT NULL,
	"Genero"                      CHAR(1) NOT NULL,
	"Cargo"                       TEXT NOT NULL,
	"Google_Drive_Foto_ID"        TEXT,
	"Horario_Laboral_Entrada"     TEXT,
	"Horario_Laboral_Salida"      TEXT,
	"Estado"                      BOOLEAN NOT NULL
);
CREATE TABLE IF NOT EXISTS "T_Profesores_Secundaria" (
	"DNI_Profesor_Secundaria" CHAR(8) PRIMARY KEY,
	"Nombres"                 TEXT NOT NULL,
	"Apellidos"               TEXT NOT NULL,
	"Genero"                  CHAR(1) NOT NULL,
	"Google_Drive_Foto_ID"    TEXT,
	"Estado"                  BOOLEAN NOT NULL
);
CREATE TABLE IF NOT EXISTS "T_Cursos_Horario" (
	"Id_Curso_Horario"             INTEGER PRIMARY KEY,
	"DNI_Profesor_Secundaria"      CHAR(8) NOT NULL,
	"Dia_Semana"                   INTEGER NOT NULL,
	"Indice_Hora_Academica_Inicio" INTEGER NOT NULL,
	"Cant_Hora_Academicas"         INTEGER NOT NULL
)`

// Migrate creates any missing table of Schema.
func (s *SQLStore) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(Schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: migrate: %w", ErrQuery, err)
		}
	}
	return nil
}

// InsertRows writes rows into table inside a single transaction.
func (s *SQLStore) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (err error) {
	if len(rows) == 0 {
		return nil
	}

	quoted := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = `"` + c + `"`
		marks[i] = fmt.Sprintf("$%d", i+1)
	}
	q := fmt.Sprintf(`INSERT INTO "%s" (%s) VALUES (%s)`, table,
		strings.Join(quoted, ", "), strings.Join(marks, ", "))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin %s: %w", ErrQuery, table, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, rebind(s.driver, q))
	if err != nil {
		return fmt.Errorf("%w: prepare %s: %w", ErrQuery, table, err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		if _, err = stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("%w: insert %s: %w", ErrQuery, table, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %s: %w", ErrQuery, table, err)
	}
	return nil
}
