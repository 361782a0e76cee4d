package schedule

// Category identifies a block-scheduled staff group and the settings keys
// that parameterize its timetable.
type Category struct {
	// Name is used in logs and metric labels.
	Name string
	// RecessBlockKey and RecessMinutesKey name rows in the system settings table.
	RecessBlockKey   string
	RecessMinutesKey string
	// StartTimeKey names the row holding the category's daily start time.
	StartTimeKey string
}

// Secondary covers secondary-school teachers and tutors.
var Secondary = Category{ //nolint:gochecknoglobals // immutable category descriptor
	Name:             "secondary",
	RecessBlockKey:   "BLOQUE_INICIO_RECREO_SECUNDARIA",
	RecessMinutesKey: "DURACION_RECREO_SECUNDARIA_MINUTOS",
	StartTimeKey:     "Hora_Inicio_Asistencia_Secundaria",
}
