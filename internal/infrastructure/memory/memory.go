// Package memory implementa los puertos de persistencia en memoria.
// Cada escritura condicional se evalúa bajo el mismo mutex que la aplica,
// igual que el UPDATE ... WHERE status = ... del adaptador PostgreSQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/visit-pipeline/internal/domain"
	"github.com/jhoicas/visit-pipeline/internal/domain/entity"
	"github.com/jhoicas/visit-pipeline/internal/domain/repository"
	"github.com/jhoicas/visit-pipeline/internal/domain/visit"
)

var (
	_ repository.VisitRepository = (*VisitRepo)(nil)
	_ repository.UserRepository  = (*UserRepo)(nil)
	_ repository.ActivityLog     = (*Store)(nil)
)

// Store usuarios, visitas y actividad.
type Store struct {
	mu       sync.Mutex
	users    map[int64]entity.User
	visits   map[int64]entity.Visit
	activity []entity.ActivityEntry
	nextID   int64

	// FailReads hace fallar List, Count y las lecturas de usuarios.
	FailReads error
	// FailActivity hace fallar Record.
	FailActivity error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		users:  make(map[int64]entity.User),
		visits: make(map[int64]entity.Visit),
	}
}

// AddUser agrega o reemplaza un usuario.
func (s *Store) AddUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Put inserta una visita tal cual (fixtures); asigna ID si falta.
func (s *Store) Put(v entity.Visit) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == 0 {
		s.nextID++
		v.ID = s.nextID
	} else if v.ID > s.nextID {
		s.nextID = v.ID
	}
	s.visits[v.ID] = v
	return v.ID
}

// VisitRepo vista del store como VisitRepository.
type VisitRepo struct{ *Store }

// UserRepo vista del store como UserRepository.
type UserRepo struct{ *Store }

// Visits repositorio de visitas sobre este store.
func (s *Store) Visits() *VisitRepo { return &VisitRepo{s} }

// Users repositorio de usuarios sobre este store.
func (s *Store) Users() *UserRepo { return &UserRepo{s} }

// Activity copia de las entradas registradas.
func (s *Store) Activity() []entity.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.ActivityEntry(nil), s.activity...)
}

// ── VisitRepository ───────────────────────────────────────────────────────────

func (s *VisitRepo) Create(_ context.Context, v *entity.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.HostID != nil {
		if _, ok := s.users[*v.HostID]; !ok {
			return domain.Invalid("host_id", "el anfitrión no existe")
		}
	}
	s.nextID++
	now := time.Now()
	v.ID = s.nextID
	v.CreatedAt, v.UpdatedAt = now, now
	s.visits[v.ID] = *v
	return nil
}

func (s *VisitRepo) GetByID(_ context.Context, id int64) (*entity.Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.visits[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (s *VisitRepo) GetDetails(_ context.Context, id int64) (*entity.VisitDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.visits[id]
	if !ok {
		return nil, nil
	}
	d := s.details(v)
	return &d, nil
}

func (s *VisitRepo) UpdateIfPending(_ context.Context, v *entity.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.visits[v.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.VisitorID != v.VisitorID || cur.Status != entity.StatusPending {
		return domain.ErrInvalidTransition
	}
	cur.HostID = v.HostID
	cur.VisitDate = v.VisitDate
	cur.StartTime = v.StartTime
	cur.EndTime = v.EndTime
	cur.Purpose = v.Purpose
	cur.Notes = v.Notes
	cur.PhotoPath = v.PhotoPath
	cur.Status = entity.StatusPending
	cur.UpdatedAt = time.Now()
	s.visits[v.ID] = cur
	v.Status = cur.Status
	v.UpdatedAt = cur.UpdatedAt
	return nil
}

func (s *VisitRepo) ApplyTransition(_ context.Context, t visit.Transition) (*entity.Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.visits[t.VisitID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if cur.Status != t.From || (t.HostID != nil && !cur.IsHost(*t.HostID)) {
		return nil, domain.ErrInvalidTransition
	}
	next := visit.Apply(cur, t)
	next.UpdatedAt = time.Now()
	s.visits[t.VisitID] = next
	return &next, nil
}

func (s *VisitRepo) List(_ context.Context, q visit.QuerySpec) ([]entity.VisitDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	matched := make([]entity.Visit, 0)
	for _, v := range s.visits {
		v := v
		if q.Filter.Matches(&v) {
			matched = append(matched, v)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j], q.OrderBy) })
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	out := make([]entity.VisitDetails, 0, len(matched))
	for _, v := range matched {
		out = append(out, s.details(v))
	}
	return out, nil
}

func (s *VisitRepo) Count(_ context.Context, f visit.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return 0, s.FailReads
	}
	n := 0
	for _, v := range s.visits {
		v := v
		if f.Matches(&v) {
			n++
		}
	}
	return n, nil
}

// less orden de la vista con desempate por ID, igual que el adaptador SQL.
func less(a, b entity.Visit, order []visit.Order) bool {
	for _, o := range order {
		var c int
		switch o.Field {
		case visit.SortVisitDate:
			c = a.VisitDate.Compare(b.VisitDate)
		case visit.SortStartTime:
			c = visit.ClockMinutes(a.StartTime) - visit.ClockMinutes(b.StartTime)
		}
		if c == 0 {
			continue
		}
		if o.Desc {
			return c > 0
		}
		return c < 0
	}
	return a.ID < b.ID
}

func (s *Store) details(v entity.Visit) entity.VisitDetails {
	d := entity.VisitDetails{Visit: v}
	if u, ok := s.users[v.VisitorID]; ok {
		d.VisitorName, d.VisitorEmail, d.VisitorPosition = u.FullName, u.Email, u.Position.Name
	}
	if v.HostID != nil {
		if u, ok := s.users[*v.HostID]; ok {
			d.HostName, d.HostEmail, d.HostPosition = u.FullName, u.Email, u.Position.Name
		}
	}
	return d
}

// ── UserRepository ────────────────────────────────────────────────────────────

func (s *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *UserRepo) ListPotentialHosts(_ context.Context, excludeID int64) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	var out []*entity.User
	for _, u := range s.users {
		if u.ID == excludeID || (u.Role != entity.RoleManager && u.Role != entity.RoleEmployee) {
			continue
		}
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position.Level != out[j].Position.Level {
			return out[i].Position.Level < out[j].Position.Level
		}
		return strings.Compare(out[i].FullName, out[j].FullName) < 0
	})
	return out, nil
}

// ── ActivityLog ───────────────────────────────────────────────────────────────

func (s *Store) Record(_ context.Context, e entity.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailActivity != nil {
		return s.FailActivity
	}
	s.activity = append(s.activity, e)
	return nil
}
