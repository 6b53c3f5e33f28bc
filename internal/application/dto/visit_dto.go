package dto

import "time"

// VisitRequest entrada de creación/edición (JSON o campos multipart).
// La foto viaja aparte como archivo multipart "photo".
type VisitRequest struct {
	Kind      string `json:"kind" form:"kind"`
	HostID    *int64 `json:"host_id" form:"host_id"`
	VisitDate string `json:"visit_date" form:"visit_date"`
	StartTime string `json:"start_time" form:"start_time"`
	EndTime   string `json:"end_time" form:"end_time"`
	Purpose   string `json:"purpose" form:"purpose"`
	Notes     string `json:"notes" form:"notes"`
}

// RejectRequest cuerpo de POST /api/visits/:id/reject.
type RejectRequest struct {
	Reason string `json:"reason" form:"reason"`
}

// VisitResponse salida de una visita.
type VisitResponse struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	VisitorID int64     `json:"visitor_id"`
	HostID    *int64    `json:"host_id,omitempty"`
	VisitDate string    `json:"visit_date"` // YYYY-MM-DD
	StartTime string    `json:"start_time"` // HH:MM
	EndTime   string    `json:"end_time"`   // HH:MM
	Status    string    `json:"status"`
	Purpose   string    `json:"purpose"`
	Notes     string    `json:"notes,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PersonSummary visitante o anfitrión unido a la visita.
type PersonSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Position string `json:"position,omitempty"`
}

// VisitDetailResponse visita con datos de presentación y acciones disponibles para el actor.
type VisitDetailResponse struct {
	VisitResponse
	Visitor     PersonSummary  `json:"visitor"`
	Host        *PersonSummary `json:"host,omitempty"`
	Duration    string         `json:"duration"`     // ej: "1 hour 30 minutes"
	StatusLabel string         `json:"status_label"` // ej: "Pending"
	Actions     []string       `json:"actions"`
}
