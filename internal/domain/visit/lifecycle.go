package visit

import (
	"strings"

	"github.com/jhoicas/visit-pipeline/internal/domain"
	"github.com/jhoicas/visit-pipeline/internal/domain/access"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
)

// Action operación sobre una visita existente.
type Action string

const (
	ActionEdit     Action = "edit"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionComplete Action = "complete"
	ActionPass     Action = "pass"
)

// Transition actualización condicional que el repositorio aplica de forma atómica:
// solo cambia la fila si su estado sigue siendo From (y el anfitrión coincide cuando HostID != nil).
type Transition struct {
	VisitID    int64
	From       entity.Status
	To         entity.Status
	HostID     *int64
	AppendNote string
}

// CanCreate exige permiso de employee.
func CanCreate(actor *entity.Actor) error {
	return access.RequireRole(actor, entity.RoleEmployee)
}

// CanEdit solo el visitante dueño, con permiso employee, mientras la visita esté pendiente.
func CanEdit(actor *entity.Actor, v *entity.Visit) error {
	if err := access.RequireRole(actor, entity.RoleEmployee); err != nil {
		return err
	}
	if !v.IsVisitor(actor.ID) {
		return domain.ErrForbidden
	}
	if v.Status != entity.StatusPending {
		return domain.ErrInvalidTransition
	}
	return nil
}

// canDecide regla común de aprobar/rechazar según la variante:
// host_approval → el anfitrión de esa visita con permiso manager;
// photo_checkin → cualquier actor con permiso security.
func canDecide(actor *entity.Actor, v *entity.Visit) error {
	switch v.Kind {
	case entity.KindPhotoCheckin:
		if err := access.RequireRole(actor, entity.RoleSecurity); err != nil {
			return err
		}
	default:
		if err := access.RequireRole(actor, entity.RoleManager); err != nil {
			return err
		}
		if !v.IsHost(actor.ID) {
			return domain.ErrForbidden
		}
	}
	if v.Status != entity.StatusPending {
		return domain.ErrInvalidTransition
	}
	return nil
}

// Approve valida pending → approved y devuelve la transición a aplicar.
func Approve(actor *entity.Actor, v *entity.Visit) (Transition, error) {
	if err := canDecide(actor, v); err != nil {
		return Transition{}, err
	}
	return Transition{
		VisitID: v.ID,
		From:    entity.StatusPending,
		To:      entity.StatusApproved,
		HostID:  v.HostID,
	}, nil
}

// Reject valida pending → rejected; el motivo es obligatorio y se anexa a las notas.
func Reject(actor *entity.Actor, v *entity.Visit, reason string) (Transition, error) {
	if err := canDecide(actor, v); err != nil {
		return Transition{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Transition{}, domain.Invalid("reason", "el motivo del rechazo es requerido")
	}
	return Transition{
		VisitID:    v.ID,
		From:       entity.StatusPending,
		To:         entity.StatusRejected,
		HostID:     v.HostID,
		AppendNote: RejectionNote(reason),
	}, nil
}

// Complete valida approved → completed (permiso security).
func Complete(actor *entity.Actor, v *entity.Visit) (Transition, error) {
	if err := access.RequireRole(actor, entity.RoleSecurity); err != nil {
		return Transition{}, err
	}
	if v.Status != entity.StatusApproved {
		return Transition{}, domain.ErrInvalidTransition
	}
	return Transition{
		VisitID: v.ID,
		From:    entity.StatusApproved,
		To:      entity.StatusCompleted,
	}, nil
}

// CanView visitante, anfitrión o cualquier actor con permiso security (incluye admin).
func CanView(actor *entity.Actor, v *entity.Visit) error {
	if !actor.Authenticated() {
		return domain.ErrUnauthenticated
	}
	if v.IsVisitor(actor.ID) || v.IsHost(actor.ID) || access.HasPermission(actor.Role, entity.RoleSecurity) {
		return nil
	}
	return domain.ErrForbidden
}

// CanDownloadPass el pase existe solo para visitas aprobadas o completadas.
func CanDownloadPass(actor *entity.Actor, v *entity.Visit) error {
	if err := CanView(actor, v); err != nil {
		return err
	}
	if v.Status != entity.StatusApproved && v.Status != entity.StatusCompleted {
		return domain.ErrInvalidTransition
	}
	return nil
}

// AvailableActions acciones que el actor puede ejecutar ahora sobre v.
func AvailableActions(actor *entity.Actor, v *entity.Visit) []Action {
	actions := make([]Action, 0, 4)
	if CanEdit(actor, v) == nil {
		actions = append(actions, ActionEdit)
	}
	if canDecide(actor, v) == nil {
		actions = append(actions, ActionApprove, ActionReject)
	}
	if _, err := Complete(actor, v); err == nil {
		actions = append(actions, ActionComplete)
	}
	if CanDownloadPass(actor, v) == nil {
		actions = append(actions, ActionPass)
	}
	return actions
}

// RejectionNote línea que se anexa a las notas al rechazar.
func RejectionNote(reason string) string {
	return "Motivo de rechazo: " + strings.TrimSpace(reason)
}

// AppendNote agrega line al final de notes sin sobrescribir el contenido previo.
func AppendNote(notes, line string) string {
	if line == "" {
		return notes
	}
	if notes == "" {
		return line
	}
	return notes + "\n" + line
}

// Apply aplica t sobre una copia en memoria (lo usan los adaptadores que no son SQL).
func Apply(v entity.Visit, t Transition) entity.Visit {
	v.Status = t.To
	v.Notes = AppendNote(v.Notes, t.AppendNote)
	return v
}
