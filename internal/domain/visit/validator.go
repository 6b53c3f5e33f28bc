// Package visit contiene las reglas puras del ciclo de vida de una visita:
// validación de solicitudes, máquina de estados y resolución de vistas.
// No conoce HTTP ni la base de datos; el tiempo ("hoy") llega como parámetro.
package visit

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/visit-pipeline/internal/domain"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Request carga útil de creación o edición de una visita.
type Request struct {
	Kind      entity.Kind
	HostID    *int64
	VisitDate string
	StartTime string
	EndTime   string
	Purpose   string
	Notes     string
	Photo     *PhotoUpload
}

// Options parámetros de la validación que no vienen del cliente.
type Options struct {
	Today         time.Time // instante actual en la zona de la aplicación
	MaxPhotoBytes int64
	RequirePhoto  bool // check-in con foto sin foto previa
}

// Validated solicitud normalizada: fecha como día civil (UTC 00:00) y horas "HH:MM".
type Validated struct {
	Kind      entity.Kind
	HostID    *int64
	VisitDate time.Time
	StartTime string
	EndTime   string
	Purpose   string
	Notes     string
	Photo     *ValidatedPhoto
}

// ValidateRequest aplica, en orden y cortando en el primer fallo:
//  1. campos requeridos
//  2. fecha parseable y no anterior a hoy
//  3. hora de inicio estrictamente menor que la de fin
//  4. foto (tamaño y tipo por contenido), si viene
func ValidateRequest(req Request, opts Options) (*Validated, error) {
	kind := req.Kind
	if kind == "" {
		kind = entity.KindHostApproval
	}
	if !kind.Valid() {
		return nil, domain.Invalid("kind", "variante de visita desconocida")
	}

	purpose := strings.TrimSpace(req.Purpose)
	switch {
	case kind == entity.KindHostApproval && (req.HostID == nil || *req.HostID <= 0):
		return nil, domain.Invalid("host_id", "es requerido")
	case strings.TrimSpace(req.VisitDate) == "":
		return nil, domain.Invalid("visit_date", "es requerido")
	case strings.TrimSpace(req.StartTime) == "":
		return nil, domain.Invalid("start_time", "es requerido")
	case strings.TrimSpace(req.EndTime) == "":
		return nil, domain.Invalid("end_time", "es requerido")
	case purpose == "":
		return nil, domain.Invalid("purpose", "es requerido")
	case kind == entity.KindPhotoCheckin && opts.RequirePhoto && req.Photo == nil:
		return nil, domain.Invalid("photo", "es requerida para el check-in con foto")
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(req.VisitDate))
	if err != nil {
		return nil, domain.Invalid("visit_date", "formato esperado YYYY-MM-DD")
	}
	if date.Before(DateOf(opts.Today)) {
		return nil, domain.Invalid("visit_date", "no puede estar en el pasado")
	}

	start, startMin, err := parseClock(req.StartTime)
	if err != nil {
		return nil, domain.Invalid("start_time", err.Error())
	}
	end, endMin, err := parseClock(req.EndTime)
	if err != nil {
		return nil, domain.Invalid("end_time", err.Error())
	}
	if startMin >= endMin {
		return nil, domain.Invalid("end_time", "debe ser posterior a la hora de inicio")
	}

	out := &Validated{
		Kind:      kind,
		VisitDate: date,
		StartTime: start,
		EndTime:   end,
		Purpose:   purpose,
		Notes:     strings.TrimSpace(req.Notes),
	}
	if kind == entity.KindHostApproval {
		host := *req.HostID
		out.HostID = &host
	}
	if req.Photo != nil {
		photo, err := ValidatePhoto(*req.Photo, opts.MaxPhotoBytes)
		if err != nil {
			return nil, err
		}
		out.Photo = photo
	}
	return out, nil
}

// DateOf devuelve el día civil de t (en la zona de t) como medianoche UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseClock acepta "HH:MM" o "HH:MM:SS" y devuelve "HH:MM" y los minutos desde medianoche.
// La comparación se hace sobre minutos, no sobre el texto.
func parseClock(s string) (string, int, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return "", 0, fmt.Errorf("formato esperado HH:MM")
		}
	}
	return t.Format(clockLayout), t.Hour()*60 + t.Minute(), nil
}

// ClockMinutes devuelve los minutos desde medianoche de una hora "HH:MM" ya validada.
func ClockMinutes(s string) int {
	_, m, err := parseClock(s)
	if err != nil {
		return 0
	}
	return m
}
