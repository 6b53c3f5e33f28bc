package visit

import (
	"time"

	"github.com/jhoicas/visit-pipeline/internal/domain"
	"github.com/jhoicas/visit-pipeline/internal/domain/access"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
)

// View ámbito de lectura del dashboard.
type View string

const (
	ViewDefault  View = "default"
	ViewPending  View = "pending"
	ViewToday    View = "today"
	ViewCheckins View = "checkins"
)

// DefaultViewLimit visitas recientes en la vista por defecto.
const DefaultViewLimit = 10

// ParseView nombre de vista recibido del cliente. Un nombre desconocido es la vista por defecto.
func ParseView(name string) View {
	switch View(name) {
	case ViewPending, ViewToday, ViewCheckins:
		return View(name)
	}
	return ViewDefault
}

// SortField columnas por las que se puede ordenar (lista blanca para el adaptador SQL).
type SortField string

const (
	SortVisitDate SortField = "visit_date"
	SortStartTime SortField = "start_time"
)

// Order criterio de orden.
type Order struct {
	Field SortField
	Desc  bool
}

// Filter predicado estructurado; los campos nil no filtran.
type Filter struct {
	HostID    *int64
	VisitorID *int64
	Date      *time.Time // visit_date = Date
	DateFrom  *time.Time // visit_date >= DateFrom
	Status    *entity.Status
	Kind      *entity.Kind
}

// Matches evalúa el filtro en memoria con la misma semántica que el adaptador SQL.
func (f Filter) Matches(v *entity.Visit) bool {
	if f.HostID != nil && !v.IsHost(*f.HostID) {
		return false
	}
	if f.VisitorID != nil && v.VisitorID != *f.VisitorID {
		return false
	}
	if f.Date != nil && !DateOf(v.VisitDate).Equal(*f.Date) {
		return false
	}
	if f.DateFrom != nil && DateOf(v.VisitDate).Before(*f.DateFrom) {
		return false
	}
	if f.Status != nil && v.Status != *f.Status {
		return false
	}
	if f.Kind != nil && v.Kind != *f.Kind {
		return false
	}
	return true
}

// QuerySpec consulta resuelta para una vista: filtro + orden + límite (0 = sin límite).
type QuerySpec struct {
	View    View
	Filter  Filter
	OrderBy []Order
	Limit   int
}

// ResolveView traduce (actor, vista) en la consulta que el actor puede ver.
// Si el actor no tiene el permiso de la vista devuelve ErrForbidden; nunca cae en otra vista.
func ResolveView(actor *entity.Actor, view View, now time.Time) (QuerySpec, error) {
	if !actor.Authenticated() {
		return QuerySpec{}, domain.ErrUnauthenticated
	}
	today := DateOf(now)
	switch view {
	case ViewPending:
		if !access.HasPermission(actor.Role, entity.RoleManager) {
			return QuerySpec{}, domain.ErrForbidden
		}
		return QuerySpec{
			View:    view,
			Filter:  pendingApprovals(actor.ID),
			OrderBy: []Order{{Field: SortVisitDate}, {Field: SortStartTime}},
		}, nil
	case ViewToday:
		if !access.HasPermission(actor.Role, entity.RoleSecurity) {
			return QuerySpec{}, domain.ErrForbidden
		}
		return QuerySpec{
			View:    view,
			Filter:  todayApproved(today),
			OrderBy: []Order{{Field: SortStartTime}},
		}, nil
	case ViewCheckins:
		if !access.HasPermission(actor.Role, entity.RoleSecurity) {
			return QuerySpec{}, domain.ErrForbidden
		}
		return QuerySpec{
			View:    view,
			Filter:  pendingCheckins(today),
			OrderBy: []Order{{Field: SortVisitDate}, {Field: SortStartTime}},
		}, nil
	default:
		id := actor.ID
		return QuerySpec{
			View:    ViewDefault,
			Filter:  Filter{VisitorID: &id},
			OrderBy: []Order{{Field: SortVisitDate, Desc: true}, {Field: SortStartTime, Desc: true}},
			Limit:   DefaultViewLimit,
		}, nil
	}
}

// Nombres de las estadísticas del dashboard.
const (
	StatPendingApprovals = "pending_approvals"
	StatTodayVisits      = "today_visits"
	StatPendingCheckins  = "pending_checkins"
	StatTotalVisits      = "total_visits"
)

// StatQuery conteo con nombre.
type StatQuery struct {
	Name   string
	Filter Filter
}

// ResolveStats devuelve solo los conteos que el actor puede ver; los demás no se calculan.
func ResolveStats(actor *entity.Actor, now time.Time) ([]StatQuery, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	today := DateOf(now)
	var out []StatQuery
	if access.HasPermission(actor.Role, entity.RoleManager) {
		out = append(out, StatQuery{Name: StatPendingApprovals, Filter: pendingApprovals(actor.ID)})
	}
	if access.HasPermission(actor.Role, entity.RoleSecurity) {
		out = append(out,
			StatQuery{Name: StatTodayVisits, Filter: todayApproved(today)},
			StatQuery{Name: StatPendingCheckins, Filter: pendingCheckins(today)},
		)
	}
	id := actor.ID
	out = append(out, StatQuery{Name: StatTotalVisits, Filter: Filter{VisitorID: &id}})
	return out, nil
}

func pendingApprovals(hostID int64) Filter {
	status := entity.StatusPending
	return Filter{HostID: &hostID, Status: &status}
}

func todayApproved(today time.Time) Filter {
	status := entity.StatusApproved
	return Filter{Date: &today, Status: &status}
}

func pendingCheckins(today time.Time) Filter {
	status := entity.StatusPending
	kind := entity.KindPhotoCheckin
	return Filter{DateFrom: &today, Status: &status, Kind: &kind}
}
