// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package catalog

import "strings"

// MonthNames lists the accepted month names, index 0 is January.
var MonthNames = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// WeekdayNames lists the canonical weekday names in ISO order (lunes = 1).
var WeekdayNames = [7]string{
	"lunes", "martes", "miércoles", "jueves", "viernes", "sábado", "domingo",
}

var (
	monthIndex   = make(map[string]int, len(MonthNames))
	weekdayIndex = make(map[string]int, len(WeekdayNames)+2)
)

func init() {
	for i, name := range MonthNames {
		monthIndex[name] = i + 1
	}
	for i, name := range WeekdayNames {
		weekdayIndex[name] = i + 1
	}
	weekdayIndex["miercoles"] = 3
	weekdayIndex["sabado"] = 6
}

// ParseMonth maps a Spanish month name to 1..12. Matching ignores case and
// surrounding whitespace. Unknown names return 0.
func ParseMonth(name string) int {
	return monthIndex[normalizeName(name)]
}

// ParseWeekday maps a Spanish weekday name to its ISO number (lunes = 1,
// domingo = 7). Accented and unaccented spellings are both accepted.
// Unknown names return 0.
func ParseWeekday(name string) int {
	return weekdayIndex[normalizeName(name)]
}

// MonthName returns the canonical name for month 1..12, or "".
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MonthNames[month-1]
}

// WeekdayName returns the canonical name for ISO weekday 1..7, or "".
func WeekdayName(day int) string {
	if day < 1 || day > 7 {
		return ""
	}
	return WeekdayNames[day-1]
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
