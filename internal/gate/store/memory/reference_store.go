package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/store"
)

// ReferenceStore is an in-memory employee/turnstile catalog for tests and
// dev environments.
type ReferenceStore struct {
	mu         sync.RWMutex
	byBadge    map[string]store.Employee
	turnstiles map[int64]store.Turnstile
}

func NewReferenceStore(employees []store.Employee, turnstiles []store.Turnstile) *ReferenceStore {
	s := &ReferenceStore{
		byBadge:    make(map[string]store.Employee, len(employees)),
		turnstiles: make(map[int64]store.Turnstile, len(turnstiles)),
	}
	for _, e := range employees {
		s.byBadge[e.BadgeCode] = e
	}
	for _, t := range turnstiles {
		s.turnstiles[t.ID] = t
	}
	return s
}

func (s *ReferenceStore) EmployeeByBadge(_ context.Context, badgeCode string) (store.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byBadge[badgeCode]
	if !ok {
		return store.Employee{}, store.ErrNotFound
	}
	return e, nil
}

func (s *ReferenceStore) TurnstileByID(_ context.Context, id int64) (store.Turnstile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.turnstiles[id]
	if !ok {
		return store.Turnstile{}, store.ErrNotFound
	}
	return t, nil
}

func (s *ReferenceStore) ListEmployees(_ context.Context) ([]store.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.Employee, 0, len(s.byBadge))
	for _, e := range s.byBadge {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BadgeCode < out[j].BadgeCode })
	return out, nil
}
