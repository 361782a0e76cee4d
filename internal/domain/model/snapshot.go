// Package model contains the records that make up a daily attendance snapshot.
// JSON field names match the blob already consumed by the attendance clients.
package model

import "time"

// Announcement is a communication shown to staff while it is active.
type Announcement struct {
	ID         int       `json:"Id_Comunicado"`
	Title      string    `json:"Titulo"`
	Content    string    `json:"Contenido"`
	StartDate  time.Time `json:"Fecha_Inicio"`
	EndDate    time.Time `json:"Fecha_Conclusion"`
	ImageDrive *string   `json:"Google_Drive_Imagen_ID"`
}

// Assistant is an auxiliary staff member who marks attendance on general hours.
type Assistant struct {
	DNI        string  `json:"DNI_Auxiliar"`
	Names      string  `json:"Nombres"`
	Surnames   string  `json:"Apellidos"`
	Gender     string  `json:"Genero"`
	DrivePhoto *string `json:"Google_Drive_Foto_ID"`
}

// AdministrativeStaff carries the person's own work hours anchored on the target day.
type AdministrativeStaff struct {
	DNI        string    `json:"DNI_Personal_Administrativo"`
	Names      string    `json:"Nombres"`
	Surnames   string    `json:"Apellidos"`
	Gender     string    `json:"Genero"`
	Position   string    `json:"Cargo"`
	DrivePhoto *string   `json:"Google_Drive_Foto_ID"`
	EntryTime  time.Time `json:"Hora_Entrada_Dia_Actual"`
	ExitTime   time.Time `json:"Hora_Salida_Dia_Actual"`
}

// PrimaryTeacher marks attendance on the primary-level general hours.
type PrimaryTeacher struct {
	DNI        string  `json:"DNI_Profesor_Primaria"`
	Names      string  `json:"Nombres"`
	Surnames   string  `json:"Apellidos"`
	Gender     string  `json:"Genero"`
	DrivePhoto *string `json:"Google_Drive_Foto_ID"`
}

// SecondaryTeacher carries the entry and exit computed from the teacher's blocks.
type SecondaryTeacher struct {
	DNI        string    `json:"DNI_Profesor_Secundaria"`
	Names      string    `json:"Nombres"`
	Surnames   string    `json:"Apellidos"`
	Gender     string    `json:"Genero"`
	DrivePhoto *string   `json:"Google_Drive_Foto_ID"`
	EntryTime  time.Time `json:"Hora_Entrada_Dia_Actual"`
	ExitTime   time.Time `json:"Hora_Salida_Dia_Actual"`
}

// NamedClock is one named institutional time, e.g. the primary start time.
type NamedClock struct {
	Name  string    `json:"Nombre"`
	Value time.Time `json:"Valor"`
}

// LevelTimetable is the student timetable of one school level.
type LevelTimetable struct {
	Level string    `json:"Nivel"`
	Start time.Time `json:"Inicio"`
	End   time.Time `json:"Fin"`
}

// DailySnapshot aggregates everything the attendance clients need for one day.
// It is built once per run and never modified afterwards.
type DailySnapshot struct {
	EventDay              bool                  `json:"DiaEvento"`
	DateUTC               time.Time             `json:"FechaUTC"`
	DateLocal             time.Time             `json:"FechaLocalPeru"`
	OutsideSchoolYear     bool                  `json:"FueraAñoEscolar"`
	InsideMidYearVacation bool                  `json:"DentroVacionesMedioAño"`
	Announcements         []Announcement        `json:"ComunicadosParaMostrarHoy"`
	Assistants            []Assistant           `json:"ListaDeAuxiliares"`
	AdministrativeStaff   []AdministrativeStaff `json:"ListaDePersonalesAdministrativos"`
	PrimaryTeachers       []PrimaryTeacher      `json:"ListaDeProfesoresPrimaria"`
	SecondaryTeachers     []SecondaryTeacher    `json:"ListaDeProfesoresSecundaria"`
	GeneralSchedules      []NamedClock          `json:"HorariosLaboraresGenerales"`
	SchoolTimetables      []LevelTimetable      `json:"HorariosEscolares"`
}

// StaffCounts returns the number of people per category, keyed by the
// category label used in metrics.
func (s *DailySnapshot) StaffCounts() map[string]int {
	return map[string]int{
		"assistants":     len(s.Assistants),
		"administrative": len(s.AdministrativeStaff),
		"primary":        len(s.PrimaryTeachers),
		"secondary":      len(s.SecondaryTeachers),
	}
}

// SecondaryCandidate is a secondary teacher row before times are computed.
type SecondaryCandidate struct {
	DNI        string
	Names      string
	Surnames   string
	Gender     string
	DrivePhoto *string
	FirstBlock int

	// LastBlockExclusive is one past the last taught block.
	LastBlockExclusive int
}
