package seed

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/okian/asistencia/internal/adapters/repository"
	"github.com/okian/asistencia/internal/domain/schedule"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	dniMin             = 10000000
	dniRange           = 89999999
	maxCoursesPerDay   = 3
	teachingDayOdds    = 0.8
	photoOdds          = 0.5
	schoolDays         = 5
)

var (
	givenNames = []string{ //nolint:gochecknoglobals // fixed lookup
		"Ana", "Luis", "Rosa", "Carlos", "Maria", "Jorge", "Elena", "Miguel",
		"Lucia", "Pedro", "Carmen", "Jose", "Sofia", "Victor", "Julia", "Raul",
	}
	surnames = []string{ //nolint:gochecknoglobals // fixed lookup
		"Quispe", "Mamani", "Huaman", "Flores", "Rojas", "Torres", "Vargas", "Diaz",
		"Chavez", "Ramos", "Castillo", "Mendoza", "Condori", "Gutierrez", "Salazar", "Ccori",
	}
	positions = []string{ //nolint:gochecknoglobals // fixed lookup
		"Director", "Subdirector", "Secretario", "Tesorero", "Psicologo", "Bibliotecario",
	}
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomInt returns a random int in [0, n).
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

func pick(values []string) string {
	return values[randomInt(len(values))]
}

// person is the part every staff table shares.
type person struct {
	dni      string
	names    string
	surnames string
	gender   string
	photo    any
	active   bool
}

// generator hands out unique DNIs for one dataset.
type generator struct {
	used          map[string]struct{}
	inactiveRatio float64
}

func newGenerator(inactiveRatio float64) *generator {
	return &generator{used: make(map[string]struct{}), inactiveRatio: inactiveRatio}
}

func (g *generator) dni() string {
	for {
		d := fmt.Sprintf("%08d", dniMin+randomInt(dniRange))
		if _, ok := g.used[d]; !ok {
			g.used[d] = struct{}{}
			return d
		}
	}
}

func (g *generator) person() person {
	p := person{
		dni:      g.dni(),
		names:    pick(givenNames),
		surnames: pick(surnames) + " " + pick(surnames),
		gender:   "F",
		active:   getRandomFloat() >= g.inactiveRatio,
	}
	if randomInt(2) == 1 {
		p.gender = "M"
	}
	if getRandomFloat() < photoOdds {
		// Drive IDs are opaque; a UUID is a fine stand-in.
		p.photo = uuid.NewString()
	}
	return p
}

func (g *generator) people(n int) []person {
	out := make([]person, n)
	for i := range out {
		out[i] = g.person()
	}
	return out
}

// courses generates the timetable of one secondary teacher. Every course
// fits inside the day's blocks.
func courses(dni string, nextID *int) [][]any {
	var out [][]any
	for day := 1; day <= schoolDays; day++ {
		if getRandomFloat() >= teachingDayOdds {
			continue
		}
		for i, n := 0, 1+randomInt(maxCoursesPerDay); i < n; i++ {
			start := schedule.MinBlock + randomInt(schedule.MaxBlock)
			count := 1 + randomInt(schedule.MaxBlock-start+1)
			*nextID++
			out = append(out, []any{*nextID, dni, day, start, count})
		}
	}
	return out
}

// table is one batch of rows for InsertRows.
type table struct {
	name    string
	columns []string
	rows    [][]any
}

// dataset builds every table of a synthetic school around today.
func dataset(cfg Config, today time.Time, stats *Stats) []table {
	g := newGenerator(cfg.InactiveRatio)
	year := today.Year()
	date := func(m time.Month, d int) string {
		return time.Date(year, m, d, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
	}

	settings := table{
		name:    "T_Ajustes_Generales_Sistema",
		columns: []string{"Nombre", "Valor"},
		rows: [][]any{
			{schedule.Secondary.RecessBlockKey, fmt.Sprint(schedule.DefaultRecess.BlockBeforeRecess)},
			{schedule.Secondary.RecessMinutesKey, fmt.Sprint(schedule.DefaultRecess.RecessMinutes)},
		},
	}
	hours := table{
		name:    "T_Horarios_Asistencia",
		columns: []string{"Nombre", "Valor"},
		rows: [][]any{
			{"Hora_Inicio_Asistencia_Primaria", "07:45:00"},
			{"Hora_Final_Asistencia_Primaria", "12:45:00"},
			{schedule.Secondary.StartTimeKey, schedule.DefaultStartClock},
			{"Hora_Final_Asistencia_Secundaria", "18:30:00"},
		},
	}
	dates := table{
		name:    "T_Fechas_Importantes",
		columns: []string{"Nombre", "Valor"},
		rows: [][]any{
			{repository.SchoolYearStartKey, date(time.March, 10)},
			{repository.SchoolYearEndKey, date(time.December, 19)},
			{repository.MidYearVacationStartKey, date(time.July, 21)},
			{repository.MidYearVacationEndKey, date(time.August, 1)},
		},
	}
	todayStr := today.Format(time.DateOnly)
	announcements := table{
		name:    "T_Comunicados",
		columns: []string{"Id_Comunicado", "Titulo", "Contenido", "Fecha_Inicio", "Fecha_Conclusion", "Google_Drive_Imagen_ID"},
		rows: [][]any{
			{1, "Bienvenida", "Registro de asistencia habilitado", todayStr, todayStr, nil},
		},
	}
	nextWeek := today.AddDate(0, 0, 7).Format(time.DateOnly)
	events := table{
		name:    "T_Eventos",
		columns: []string{"Id_Evento", "Nombre", "Fecha_Inicio", "Fecha_Conclusion"},
		rows:    [][]any{{1, "Aniversario institucional", nextWeek, nextWeek}},
	}

	staffColumns := func(dniColumn string) []string {
		return []string{dniColumn, "Nombres", "Apellidos", "Genero", "Google_Drive_Foto_ID", "Estado"}
	}
	staffRows := func(people []person) [][]any {
		rows := make([][]any, len(people))
		for i, p := range people {
			rows[i] = []any{p.dni, p.names, p.surnames, p.gender, p.photo, p.active}
			if !p.active {
				stats.Inactive++
			}
		}
		return rows
	}

	secondary := g.people(cfg.SecondaryTeachers)
	var courseRows [][]any
	nextID := 0
	for _, p := range secondary {
		courseRows = append(courseRows, courses(p.dni, &nextID)...)
	}

	admin := g.people(cfg.AdministrativeStaff)
	adminRows := make([][]any, len(admin))
	for i, p := range admin {
		adminRows[i] = []any{p.dni, p.names, p.surnames, p.gender, pick(positions), p.photo, "07:30:00", "15:30:00", p.active}
		if !p.active {
			stats.Inactive++
		}
	}

	stats.SecondaryTeachers = len(secondary)
	stats.Courses = len(courseRows)
	stats.PrimaryTeachers = cfg.PrimaryTeachers
	stats.Assistants = cfg.Assistants
	stats.AdministrativeStaff = len(admin)

	return []table{
		settings, hours, dates, announcements, events,
		{name: "T_Profesores_Secundaria", columns: staffColumns("DNI_Profesor_Secundaria"), rows: staffRows(secondary)},
		{
			name:    "T_Cursos_Horario",
			columns: []string{"Id_Curso_Horario", "DNI_Profesor_Secundaria", "Dia_Semana", "Indice_Hora_Academica_Inicio", "Cant_Hora_Academicas"},
			rows:    courseRows,
		},
		{name: "T_Profesores_Primaria", columns: staffColumns("DNI_Profesor_Primaria"), rows: staffRows(g.people(cfg.PrimaryTeachers))},
		{name: "T_Auxiliares", columns: staffColumns("DNI_Auxiliar"), rows: staffRows(g.people(cfg.Assistants))},
		{
			name: "T_Personal_Administrativo",
			columns: []string{"DNI_Personal_Administrativo", "Nombres", "Apellidos", "Genero", "Cargo",
				"Google_Drive_Foto_ID", "Horario_Laboral_Entrada", "Horario_Laboral_Salida", "Estado"},
			rows: adminRows,
		},
	}
}
