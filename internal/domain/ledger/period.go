package ledger

import (
	"strings"
	"time"
)

// Period ventana de los KPIs, anclada a "ahora".
type Period string

const (
	PeriodWeek  Period = "week"  // últimos 7 días
	PeriodMonth Period = "month" // mismo mes y año
	PeriodYear  Period = "year"  // mismo año
	PeriodAll   Period = "all"
)

// ParsePeriod normaliza el texto; valores desconocidos caen en PeriodAll.
func ParsePeriod(s string) Period {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodWeek:
		return PeriodWeek
	case PeriodMonth:
		return PeriodMonth
	case PeriodYear:
		return PeriodYear
	default:
		return PeriodAll
	}
}

// Contains indica si la fecha date cae dentro del período respecto de now.
// Se comparan fechas civiles; la hora se ignora.
func (p Period) Contains(date, now time.Time) bool {
	switch p {
	case PeriodWeek:
		return !civil(date, now.Location()).Before(civil(now, now.Location()).AddDate(0, 0, -7))
	case PeriodMonth:
		return date.Year() == now.Year() && date.Month() == now.Month()
	case PeriodYear:
		return date.Year() == now.Year()
	default:
		return true
	}
}

func civil(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// AlertWindowDays días hacia adelante que cubre el reporte de vencimientos.
const AlertWindowDays = 5

// DueWithin indica si dueDay cae en [today, today+window]. Aritmética de día del mes:
// no da la vuelta al fin de mes.
func DueWithin(dueDay, today, window int) bool {
	return dueDay >= today && dueDay <= today+window
}

// Today devuelve la fecha civil de now como medianoche UTC (formato de columnas DATE).
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// CivilDate normaliza t a medianoche UTC conservando año, mes y día.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
