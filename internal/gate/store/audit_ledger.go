package store

import "context"

// AccessRecord captures one access decision for the audit trail.
// EmployeeID is nil when the badge was not recognized; TurnstileID always
// references an existing turnstile — a record is never written for an
// unknown one.
type AccessRecord struct {
	ID          int64
	EmployeeID  *int64
	TurnstileID int64
	Timestamp   int64 // epoch seconds, non-decreasing per insertion
	Direction   Direction
	Granted     bool
}

// AccessRecordDetail is a ledger row joined with reference data for audit
// queries. Employee fields are nil for unknown-badge denials; turnstile
// fields are always present.
type AccessRecordDetail struct {
	AccessRecord
	FullName          *string
	Position          *string
	Department        *string
	TurnstileName     string
	TurnstileLocation string
}

// AuditLedger persists access decisions as an append-only audit trail.
// Append is the only mutation; ids are assigned monotonically increasing and
// never reused.
type AuditLedger interface {
	Append(ctx context.Context, rec AccessRecord) (int64, error)
	Recent(ctx context.Context, limit int) ([]AccessRecordDetail, error)
}
