package entity

import "time"

// Status estado del ciclo de vida de una visita.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// Terminal informa si el estado ya no admite transiciones.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// Valid informa si s pertenece al enum.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Kind variante de la visita.
type Kind string

const (
	// KindHostApproval solicitud dirigida a un anfitrión que aprueba o rechaza.
	KindHostApproval Kind = "host_approval"
	// KindPhotoCheckin auto-registro con foto, sin anfitrión; lo aprueba seguridad.
	KindPhotoCheckin Kind = "photo_checkin"
)

// Valid informa si k es una variante conocida.
func (k Kind) Valid() bool {
	return k == KindHostApproval || k == KindPhotoCheckin
}

// Visit registro de una visita. StartTime y EndTime son "HH:MM" (24h, con ceros).
type Visit struct {
	ID        int64
	Kind      Kind
	VisitorID int64
	HostID    *int64 // nil en KindPhotoCheckin
	VisitDate time.Time
	StartTime string
	EndTime   string
	Status    Status
	Purpose   string
	Notes     string
	PhotoPath string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsHost informa si userID es el anfitrión de la visita.
func (v *Visit) IsHost(userID int64) bool {
	return v.HostID != nil && *v.HostID == userID
}

// IsVisitor informa si userID es el dueño (visitante) de la visita.
func (v *Visit) IsVisitor(userID int64) bool {
	return v.VisitorID == userID
}

// VisitDetails visita con los campos de presentación unidos (visitante y anfitrión).
type VisitDetails struct {
	Visit
	VisitorName     string
	VisitorEmail    string
	VisitorPosition string
	HostName        string
	HostEmail       string
	HostPosition    string
}

// ActivityEntry registro de actividad (fire-and-forget).
type ActivityEntry struct {
	UserID    int64
	Action    string
	Details   string
	IPAddress string
	CreatedAt time.Time
}

// Acciones registradas en el log de actividad.
const (
	ActionVisitCreate   = "visit_create"
	ActionVisitUpdate   = "visit_update"
	ActionVisitApprove  = "visit_approve"
	ActionVisitReject   = "visit_reject"
	ActionVisitComplete = "visit_complete"
	ActionLogin         = "login"
	ActionLogout        = "logout"
)
