package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/NeCjoi157/rfid-access-gateway/internal/db"
	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/store"
)

// AuditLedger is the production audit trail. Appends are serialized through
// the single-writer Worker so id assignment never duplicates or skips under
// concurrent swipes; reads go straight to the connection pool.
type AuditLedger struct {
	conn   *sql.DB
	writer *dbpkg.Worker
}

func NewAuditLedger(conn *sql.DB, writer *dbpkg.Worker) *AuditLedger {
	return &AuditLedger{conn: conn, writer: writer}
}

func (l *AuditLedger) Append(ctx context.Context, rec store.AccessRecord) (int64, error) {
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().UTC().Unix()
	}

	var employeeID any
	if rec.EmployeeID != nil {
		employeeID = *rec.EmployeeID
	}

	var granted int
	if rec.Granted {
		granted = 1
	}

	var id int64
	err := l.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		// Stored timestamps are non-decreasing per insertion even if the
		// wall clock steps backwards; same-second events are ordered by id.
		var last sql.NullInt64
		if err := tx.QueryRowContext(ctx,
			`SELECT MAX(timestamp) FROM access_logs;`,
		).Scan(&last); err != nil {
			return fmt.Errorf("Append read last timestamp: %w", err)
		}
		ts := rec.Timestamp
		if last.Valid && ts < last.Int64 {
			ts = last.Int64
		}

		res, err := tx.ExecContext(ctx, `
INSERT INTO access_logs(employee_id, turnstile_id, timestamp, direction, access_granted)
VALUES (?, ?, ?, ?, ?);`,
			employeeID, rec.TurnstileID, ts, string(rec.Direction), granted,
		)
		if err != nil {
			return fmt.Errorf("Append insert: %w", err)
		}

		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("Append last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Recent returns up to limit records, newest first (timestamp, then id).
func (l *AuditLedger) Recent(ctx context.Context, limit int) ([]store.AccessRecordDetail, error) {
	rows, err := l.conn.QueryContext(ctx, `
SELECT l.id, l.employee_id, l.turnstile_id, l.timestamp, l.direction, l.access_granted,
       e.full_name, e.position, e.department,
       t.name, t.location
FROM access_logs l
LEFT JOIN employees e ON e.id = l.employee_id
JOIN turnstiles t ON t.id = l.turnstile_id
ORDER BY l.timestamp DESC, l.id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, fmt.Errorf("Recent query: %w", err)
	}
	defer rows.Close()

	var out []store.AccessRecordDetail
	for rows.Next() {
		var (
			d          store.AccessRecordDetail
			employeeID sql.NullInt64
			granted    int
			fullName   sql.NullString
			position   sql.NullString
			department sql.NullString
		)
		if err := rows.Scan(
			&d.ID, &employeeID, &d.TurnstileID, &d.Timestamp, &d.Direction, &granted,
			&fullName, &position, &department,
			&d.TurnstileName, &d.TurnstileLocation,
		); err != nil {
			return nil, fmt.Errorf("Recent scan: %w", err)
		}
		if employeeID.Valid {
			d.EmployeeID = &employeeID.Int64
		}
		d.Granted = granted == 1
		if fullName.Valid {
			d.FullName = &fullName.String
		}
		if position.Valid {
			d.Position = &position.String
		}
		if department.Valid {
			d.Department = &department.String
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Recent rows: %w", err)
	}
	return out, nil
}
