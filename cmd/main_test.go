package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/asistencia/internal/adapters/repository"
	"github.com/okian/asistencia/internal/config"
)

const fixture = `
INSERT INTO "T_Fechas_Importantes" VALUES
	('Fecha_Inicio_Año_Escolar', '2025-03-10'),
	('Fecha_Fin_Año_Escolar', '2025-12-19'),
	('Fecha_Inicio_Vacaciones_Medio_Año', '2025-07-21'),
	('Fecha_Fin_Vacaciones_Medio_Año', '2025-08-01');
INSERT INTO "T_Horarios_Asistencia" VALUES ('Hora_Inicio_Asistencia_Secundaria', '13:00:00');
INSERT INTO "T_Profesores_Secundaria" VALUES ('11111111', 'Ana', 'Quispe', 'F', NULL, true);
INSERT INTO "T_Cursos_Horario" ("DNI_Profesor_Secundaria", "Dia_Semana", "Indice_Hora_Academica_Inicio", "Cant_Hora_Academicas")
	VALUES ('11111111', 4, 1, 2);
`

func seedDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asistencia.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(context.Background(), repository.Schema); err != nil {
		t.Fatalf("create fixture schema: %v", err)
	}
	if _, err := db.ExecContext(context.Background(), fixture); err != nil {
		t.Fatalf("seed fixture db: %v", err)
	}
	return path
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	convey.Convey("Given the root command", t, func() {
		cmd := newRootCmd(io.Discard)

		convey.Convey("Then it exposes the run flags", func() {
			for _, name := range []string{"date", "dry-run", "print", "config"} {
				convey.So(cmd.Flags().Lookup(name), convey.ShouldNotBeNil)
			}
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a seeded SQLite store", t, func() {
		t.Setenv("ASISTENCIA_DB_DRIVER", "sqlite")
		t.Setenv("ASISTENCIA_DATABASE_URL", seedDatabase(t))
		t.Setenv("ASISTENCIA_BLOB_ENDPOINT", "")

		convey.Convey("When running a dry run for a Thursday", func() {
			out, err := execute("--dry-run", "--date", "2025-06-05")

			convey.Convey("Then the snapshot is written to stdout", func() {
				convey.So(err, convey.ShouldBeNil)

				var snap struct {
					OutsideSchoolYear bool `json:"FueraAñoEscolar"`
					Secondary         []struct {
						DNI   string `json:"DNI_Profesor_Secundaria"`
						Entry string `json:"Hora_Entrada_Dia_Actual"`
						Exit  string `json:"Hora_Salida_Dia_Actual"`
					} `json:"ListaDeProfesoresSecundaria"`
				}
				convey.So(json.Unmarshal([]byte(out), &snap), convey.ShouldBeNil)
				convey.So(snap.OutsideSchoolYear, convey.ShouldBeFalse)
				convey.So(snap.Secondary, convey.ShouldHaveLength, 1)
				convey.So(snap.Secondary[0].DNI, convey.ShouldEqual, "11111111")
				convey.So(snap.Secondary[0].Entry, convey.ShouldEqual, "2025-06-05T13:00:00-05:00")
				convey.So(snap.Secondary[0].Exit, convey.ShouldEqual, "2025-06-05T14:30:00-05:00")
			})
		})

		convey.Convey("When the date is malformed", func() {
			_, err := execute("--dry-run", "--date", "05/06/2025")

			convey.Convey("Then the run fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "--date")
			})
		})

		convey.Convey("When uploading without a blob endpoint", func() {
			_, err := execute("--date", "2025-06-05")

			convey.Convey("Then the configuration is rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the school calendar is incomplete", func() {
			db, err := sql.Open("sqlite", os.Getenv("ASISTENCIA_DATABASE_URL"))
			convey.So(err, convey.ShouldBeNil)
			_, err = db.Exec(`DELETE FROM "T_Fechas_Importantes" WHERE "Nombre" = 'Fecha_Fin_Año_Escolar'`)
			convey.So(err, convey.ShouldBeNil)
			convey.So(db.Close(), convey.ShouldBeNil)

			out, err := execute("--dry-run", "--date", "2025-06-05")

			convey.Convey("Then nothing is written and the run fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(out, convey.ShouldBeEmpty)
			})
		})
	})

	convey.Convey("Given an empty SQLite database", t, func() {
		t.Setenv("ASISTENCIA_DB_DRIVER", "sqlite")
		t.Setenv("ASISTENCIA_DATABASE_URL", filepath.Join(t.TempDir(), "seeded.db"))

		convey.Convey("When seeding it and running a dry run on the same day", func() {
			seeded, seedErr := execute("seed", "--secondary", "8", "--inactive-ratio", "0", "--today", "2025-06-04")
			out, runErr := execute("--dry-run", "--date", "2025-06-04")

			convey.Convey("Then the snapshot reflects the synthetic school", func() {
				convey.So(seedErr, convey.ShouldBeNil)
				convey.So(runErr, convey.ShouldBeNil)

				var snap struct {
					Announcements []json.RawMessage `json:"ComunicadosParaMostrarHoy"`
					Assistants    []json.RawMessage `json:"ListaDeAuxiliares"`
				}
				convey.So(json.Unmarshal([]byte(out), &snap), convey.ShouldBeNil)
				convey.So(snap.Announcements, convey.ShouldHaveLength, 1)
				convey.So(snap.Assistants, convey.ShouldHaveLength, 4)
				convey.So(seeded, convey.ShouldContainSubstring, "seeded 8 secondary teachers")
			})
		})
	})

	convey.Convey("Given an unsupported driver", t, func() {
		t.Setenv("ASISTENCIA_DB_DRIVER", "mysql")

		_, err := execute("--dry-run")

		convey.Convey("Then configuration loading fails", func() {
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
