package dto

// DashboardResponse respuesta de GET /api/dashboard?view=.
// Degraded indica que la consulta falló y la lista se devolvió vacía.
type DashboardResponse struct {
	View     string                `json:"view"`
	Visits   []VisitDetailResponse `json:"visits"`
	Degraded bool                  `json:"degraded,omitempty"`
}

// DashboardStatsResponse respuesta de GET /api/dashboard/stats.
// Un contador ausente (nil) significa que el actor no tiene permiso para verlo; no es cero.
type DashboardStatsResponse struct {
	PendingApprovals *int `json:"pending_approvals,omitempty"`
	TodayVisits      *int `json:"today_visits,omitempty"`
	PendingCheckins  *int `json:"pending_checkins,omitempty"`
	TotalVisits      *int `json:"total_visits,omitempty"`
	Degraded         bool `json:"degraded,omitempty"`
}
