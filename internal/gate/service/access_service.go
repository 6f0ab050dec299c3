package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/store"
	"github.com/NeCjoi157/rfid-access-gateway/internal/gate/types"
)

var (
	// ErrMalformedEvent: the event fails shape/enum validation. Rejected
	// before any lookup; nothing is written.
	ErrMalformedEvent = errors.New("malformed access event")

	// ErrUnknownTurnstile: the event names a turnstile that does not exist.
	// A hard precondition failure, not a denial — no audit record is written
	// because a decision cannot be attributed to a non-existent access point.
	ErrUnknownTurnstile = errors.New("unknown turnstile")

	// ErrStorage wraps infrastructure faults during lookup or append. When
	// Decide returns it, the verdict was not durably recorded and must not
	// be acted on.
	ErrStorage = errors.New("storage failure")
)

// TimestampLayout is the human-readable form of a decision timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Decision is the verdict for one swipe. Granted=false with a nil error is a
// first-class business outcome (badge not recognized), always audited.
type Decision struct {
	Granted   bool
	Reason    string // set when access is denied
	Employee  *store.Employee
	Turnstile store.Turnstile
	Direction store.Direction
	RecordID  int64
	DecidedAt time.Time
}

// Timestamp renders the same instant that was persisted with the audit
// record, so stored and displayed time never diverge.
func (d Decision) Timestamp() string {
	return d.DecidedAt.Format(TimestampLayout)
}

type AccessService struct {
	refs           store.ReferenceStore
	ledger         store.AuditLedger
	storageTimeout time.Duration
}

func NewAccessService(refs store.ReferenceStore, ledger store.AuditLedger, storageTimeout time.Duration) *AccessService {
	return &AccessService{refs: refs, ledger: ledger, storageTimeout: storageTimeout}
}

// Decide validates the event, renders a grant/deny verdict and appends the
// audit record before returning. A caller never observes a granted Decision
// unless the record was durably persisted first. Single attempt — retry
// policy, if any, belongs to the gateway.
func (s *AccessService) Decide(ctx context.Context, req types.AccessRequest) (Decision, error) {
	badge := strings.TrimSpace(req.BadgeCode)
	if badge == "" {
		return Decision{}, fmt.Errorf("%w: badge code is required", ErrMalformedEvent)
	}
	if req.TurnstileID <= 0 {
		return Decision{}, fmt.Errorf("%w: turnstile id %d is not positive", ErrMalformedEvent, req.TurnstileID)
	}
	dir := store.Direction(req.Direction)
	if !dir.Valid() {
		return Decision{}, fmt.Errorf("%w: direction %q is not IN or OUT", ErrMalformedEvent, req.Direction)
	}

	ctx, cancel := s.boundStorage(ctx)
	defer cancel()

	turnstile, err := s.refs.TurnstileByID(ctx, req.TurnstileID)
	if errors.Is(err, store.ErrNotFound) {
		return Decision{}, fmt.Errorf("%w: id %d", ErrUnknownTurnstile, req.TurnstileID)
	}
	if err != nil {
		return Decision{}, fmt.Errorf("%w: turnstile lookup: %w", ErrStorage, err)
	}

	// One wall-clock capture per decision, truncated to the stored second
	// resolution so the persisted epoch value and the displayed string agree.
	now := time.Now().UTC().Truncate(time.Second)

	decision := Decision{
		Turnstile: turnstile,
		Direction: dir,
		DecidedAt: now,
	}
	rec := store.AccessRecord{
		TurnstileID: turnstile.ID,
		Timestamp:   now.Unix(),
		Direction:   dir,
	}

	employee, err := s.refs.EmployeeByBadge(ctx, badge)
	switch {
	case err == nil:
		decision.Granted = true
		decision.Employee = &employee
		rec.EmployeeID = &employee.ID
		rec.Granted = true
	case errors.Is(err, store.ErrNotFound):
		decision.Reason = fmt.Sprintf("badge %s is not recognized", badge)
	default:
		return Decision{}, fmt.Errorf("%w: employee lookup: %w", ErrStorage, err)
	}

	id, err := s.ledger.Append(ctx, rec)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: append audit record: %w", ErrStorage, err)
	}
	decision.RecordID = id

	return decision, nil
}

func (s *AccessService) boundStorage(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storageTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.storageTimeout)
}
