package visit

import (
	"github.com/jhoicas/visit-pipeline/internal/application/dto"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	rules "github.com/jhoicas/visit-pipeline/internal/domain/visit"
)

// URLFunc resuelve la URL pública de una foto almacenada.
type URLFunc func(key string) string

// ToResponse convierte una visita en su DTO de salida.
func ToResponse(v *entity.Visit, photoURL URLFunc) dto.VisitResponse {
	out := dto.VisitResponse{
		ID:        v.ID,
		Kind:      string(v.Kind),
		VisitorID: v.VisitorID,
		HostID:    v.HostID,
		VisitDate: v.VisitDate.Format("2006-01-02"),
		StartTime: v.StartTime,
		EndTime:   v.EndTime,
		Status:    string(v.Status),
		Purpose:   v.Purpose,
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	if v.PhotoPath != "" && photoURL != nil {
		out.PhotoURL = photoURL(v.PhotoPath)
	}
	return out
}

// ToDetailResponse agrega datos de presentación y las acciones que actor puede ejecutar ahora.
func ToDetailResponse(actor *entity.Actor, d *entity.VisitDetails, photoURL URLFunc) dto.VisitDetailResponse {
	out := dto.VisitDetailResponse{
		VisitResponse: ToResponse(&d.Visit, photoURL),
		Visitor: dto.PersonSummary{
			ID:       d.VisitorID,
			Name:     d.VisitorName,
			Email:    d.VisitorEmail,
			Position: d.VisitorPosition,
		},
		Duration:    rules.Duration(d.StartTime, d.EndTime),
		StatusLabel: rules.StatusLabel(d.Status),
		Actions:     []string{},
	}
	if d.HostID != nil {
		out.Host = &dto.PersonSummary{
			ID:       *d.HostID,
			Name:     d.HostName,
			Email:    d.HostEmail,
			Position: d.HostPosition,
		}
	}
	for _, a := range rules.AvailableActions(actor, &d.Visit) {
		out.Actions = append(out.Actions, string(a))
	}
	return out
}
