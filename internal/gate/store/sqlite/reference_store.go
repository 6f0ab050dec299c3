package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/store"
)

// ReferenceStore reads the employee/turnstile catalog straight off the
// connection pool — reference data is never mutated on the decision path, so
// lookups run in parallel with each other and with the audit writer.
type ReferenceStore struct {
	conn *sql.DB
}

func NewReferenceStore(conn *sql.DB) *ReferenceStore {
	return &ReferenceStore{conn: conn}
}

func (s *ReferenceStore) EmployeeByBadge(ctx context.Context, badgeCode string) (store.Employee, error) {
	var (
		e          store.Employee
		department sql.NullString
		phone      sql.NullString
	)
	err := s.conn.QueryRowContext(ctx, `
SELECT id, badge_code, full_name, position, department, phone
FROM employees
WHERE badge_code = ?;`, badgeCode,
	).Scan(&e.ID, &e.BadgeCode, &e.FullName, &e.Position, &department, &phone)

	if err == sql.ErrNoRows {
		return store.Employee{}, store.ErrNotFound
	}
	if err != nil {
		return store.Employee{}, fmt.Errorf("EmployeeByBadge query: %w", err)
	}

	e.Department = department.String
	e.Phone = phone.String
	return e, nil
}

func (s *ReferenceStore) TurnstileByID(ctx context.Context, id int64) (store.Turnstile, error) {
	var t store.Turnstile
	err := s.conn.QueryRowContext(ctx, `
SELECT id, name, location
FROM turnstiles
WHERE id = ?;`, id,
	).Scan(&t.ID, &t.Name, &t.Location)

	if err == sql.ErrNoRows {
		return store.Turnstile{}, store.ErrNotFound
	}
	if err != nil {
		return store.Turnstile{}, fmt.Errorf("TurnstileByID query: %w", err)
	}
	return t, nil
}

// ListEmployees returns the full catalog ordered by badge code, the
// employee's identity.
func (s *ReferenceStore) ListEmployees(ctx context.Context) ([]store.Employee, error) {
	rows, err := s.conn.QueryContext(ctx, `
SELECT id, badge_code, full_name, position, department, phone
FROM employees
ORDER BY badge_code;`)
	if err != nil {
		return nil, fmt.Errorf("ListEmployees query: %w", err)
	}
	defer rows.Close()

	var out []store.Employee
	for rows.Next() {
		var (
			e          store.Employee
			department sql.NullString
			phone      sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.BadgeCode, &e.FullName, &e.Position, &department, &phone); err != nil {
			return nil, fmt.Errorf("ListEmployees scan: %w", err)
		}
		e.Department = department.String
		e.Phone = phone.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListEmployees rows: %w", err)
	}
	return out, nil
}
