package service

import (
	"context"
	"fmt"
	"time"

	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/store"
)

const (
	// DefaultRecentLimit applies when a caller does not ask for a specific
	// result count.
	DefaultRecentLimit = 100

	// MaxRecentLimit caps a single audit query.
	MaxRecentLimit = 1000
)

// ReportingService serves the read-only query surface: the employee catalog
// and the recent audit trail.
type ReportingService struct {
	refs           store.ReferenceStore
	ledger         store.AuditLedger
	storageTimeout time.Duration
}

func NewReportingService(refs store.ReferenceStore, ledger store.AuditLedger, storageTimeout time.Duration) *ReportingService {
	return &ReportingService{refs: refs, ledger: ledger, storageTimeout: storageTimeout}
}

func (s *ReportingService) Employees(ctx context.Context) ([]store.Employee, error) {
	ctx, cancel := s.boundStorage(ctx)
	defer cancel()

	out, err := s.refs.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list employees: %w", ErrStorage, err)
	}
	return out, nil
}

// RecentRecords returns up to limit audit records, newest first, enriched
// with employee and turnstile reference data. Non-positive limits fall back
// to DefaultRecentLimit.
func (s *ReportingService) RecentRecords(ctx context.Context, limit int) ([]store.AccessRecordDetail, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	ctx, cancel := s.boundStorage(ctx)
	defer cancel()

	out, err := s.ledger.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: recent records: %w", ErrStorage, err)
	}
	return out, nil
}

func (s *ReportingService) boundStorage(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storageTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.storageTimeout)
}
