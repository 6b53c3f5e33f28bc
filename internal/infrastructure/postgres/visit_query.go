package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/visit-pipeline/internal/domain/visit"
)

// Columnas de visits; las horas salen como "HH:MM" para que el dominio no dependa del tipo TIME.
const visitColumns = `
	v.id, v.kind, v.visitor_id, v.host_id, v.visit_date,
	to_char(v.start_time, 'HH24:MI'), to_char(v.end_time, 'HH24:MI'),
	v.status, v.purpose, v.notes, v.photo_path, v.created_at, v.updated_at`

// Campos de presentación unidos (visitante siempre existe; el anfitrión puede faltar).
const visitDetailColumns = visitColumns + `,
	visitor.full_name, visitor.email, visitor_pos.name,
	COALESCE(host.full_name, ''), COALESCE(host.email, ''), COALESCE(host_pos.name, '')`

const visitDetailJoins = `
	FROM visits v
	JOIN users visitor          ON visitor.id     = v.visitor_id
	JOIN positions visitor_pos  ON visitor_pos.id = visitor.position_id
	LEFT JOIN users host        ON host.id        = v.host_id
	LEFT JOIN positions host_pos ON host_pos.id   = host.position_id`

// sortColumns lista blanca: el SQL de orden nunca sale de datos del cliente.
var sortColumns = map[visit.SortField]string{
	visit.SortVisitDate: "v.visit_date",
	visit.SortStartTime: "v.start_time",
}

// buildWhere traduce el filtro a un predicado parametrizado.
func buildWhere(f visit.Filter, args *argList) string {
	var conds []string
	if f.HostID != nil {
		conds = append(conds, "v.host_id = "+args.add(*f.HostID))
	}
	if f.VisitorID != nil {
		conds = append(conds, "v.visitor_id = "+args.add(*f.VisitorID))
	}
	if f.Date != nil {
		conds = append(conds, "v.visit_date = "+args.add(*f.Date))
	}
	if f.DateFrom != nil {
		conds = append(conds, "v.visit_date >= "+args.add(*f.DateFrom))
	}
	if f.Status != nil {
		conds = append(conds, "v.status = "+args.add(string(*f.Status)))
	}
	if f.Kind != nil {
		conds = append(conds, "v.kind = "+args.add(string(*f.Kind)))
	}
	return joinAnd(conds)
}

// buildListQuery arma el SELECT de una vista. Devuelve error si el orden pide una columna fuera de la lista blanca.
func buildListQuery(q visit.QuerySpec) (string, []any, error) {
	args := &argList{}
	var sb strings.Builder
	sb.WriteString("SELECT")
	sb.WriteString(visitDetailColumns)
	sb.WriteString(visitDetailJoins)
	sb.WriteString("\n\tWHERE ")
	sb.WriteString(buildWhere(q.Filter, args))

	if len(q.OrderBy) > 0 {
		parts := make([]string, 0, len(q.OrderBy))
		for _, o := range q.OrderBy {
			col, ok := sortColumns[o.Field]
			if !ok {
				return "", nil, fmt.Errorf("orden no soportado: %q", o.Field)
			}
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			parts = append(parts, col+" "+dir)
		}
		// desempate estable
		parts = append(parts, "v.id ASC")
		sb.WriteString("\n\tORDER BY ")
		sb.WriteString(strings.Join(parts, ", "))
	}
	if q.Limit > 0 {
		sb.WriteString("\n\tLIMIT ")
		sb.WriteString(args.add(q.Limit))
	}
	return sb.String(), args.args, nil
}

// buildCountQuery arma el COUNT(*) de una estadística.
func buildCountQuery(f visit.Filter) (string, []any) {
	args := &argList{}
	return "SELECT COUNT(*) FROM visits v WHERE " + buildWhere(f, args), args.args
}
