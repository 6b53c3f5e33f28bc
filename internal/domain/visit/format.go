package visit

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
)

// StatusLabel etiqueta legible del estado ("pending" → "Pending").
func StatusLabel(s entity.Status) string {
	// cases.Caser guarda estado; no se comparte entre goroutines.
	return cases.Title(language.Und).String(string(s))
}

// Duration duración legible entre dos horas "HH:MM", ej. "1 hour 30 minutes".
func Duration(start, end string) string {
	diff := ClockMinutes(end) - ClockMinutes(start)
	if diff <= 0 {
		return ""
	}
	hours, minutes := diff/60, diff%60
	parts := make([]string, 0, 2)
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
