// Package services implements the user-facing ledger operations. Every
// mutation follows the same cycle: load the current set, mutate it in
// memory, recompute derived fields, save, then archive a snapshot.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"contas/internal/core"
	"contas/internal/ledger"
)

var (
	// ErrNotFound reports that no record matches the given name.
	ErrNotFound = errors.New("bill not found")

	// ErrStoreUnavailable reports that the current table could not be
	// read or written; the operation committed nothing.
	ErrStoreUnavailable = errors.New("ledger store unavailable")

	// ErrHistoryNotRecorded reports that the ledger save committed but
	// the archive step failed. The operation succeeded partially and the
	// updated set is still returned alongside this error.
	ErrHistoryNotRecorded = errors.New("ledger updated, history not recorded")
)

// EditRequest carries the replacement values for the editable fields.
// Status and payment date are never touched by Edit.
type EditRequest struct {
	Description string
	Principal   decimal.Decimal
	DueDate     core.Date
	Method      core.PaymentMethod
	PixKey      string
	DailyRate   decimal.Decimal
}

// LedgerService serializes all operations through one mutex, so two
// in-process calls cannot interleave their load/save cycles. Two
// separate processes racing on the same table still lose updates
// last-writer-wins; that limitation is inherited from the file format.
type LedgerService struct {
	mu          sync.Mutex
	store       ledger.Store
	archiver    ledger.Archiver
	mirror      ledger.Archiver // optional, best-effort
	now         func() time.Time
	nearDueDays int
}

type Option func(*LedgerService)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *LedgerService) { s.now = now }
}

// WithMirror adds a secondary archive sink. Mirror failures are logged
// and never surface to callers.
func WithMirror(m ledger.Archiver) Option {
	return func(s *LedgerService) { s.mirror = m }
}

// WithNearDueDays sets the notification window in days.
func WithNearDueDays(days int) Option {
	return func(s *LedgerService) { s.nearDueDays = days }
}

func NewLedgerService(store ledger.Store, archiver ledger.Archiver, opts ...Option) *LedgerService {
	s := &LedgerService{
		store:       store,
		archiver:    archiver,
		now:         time.Now,
		nearDueDays: 3,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LedgerService) today() core.Date {
	return core.DateOf(s.now().UTC())
}

// Add validates the new record and appends it to the set.
func (s *LedgerService) Add(ctx context.Context, b core.Bill) ([]core.Bill, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("validate bill: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bills, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, append(bills, b))
}

// Settle marks the first unpaid record matching name as paid today.
// When several unpaid records share the name, only the first in set
// order is settled; the ambiguity is inherent to name-keyed records.
func (s *LedgerService) Settle(ctx context.Context, name string) ([]core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bills, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, b := range bills {
		if b.Name == name && b.Status == core.StatusUnpaid {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("settle %q: %w", name, ErrNotFound)
	}

	bills[idx].Status = core.StatusPaid
	bills[idx].PaymentDate = s.today()
	return s.commit(ctx, bills)
}

// Edit replaces the editable fields of the first record matching name.
func (s *LedgerService) Edit(ctx context.Context, name string, req EditRequest) ([]core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bills, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, b := range bills {
		if b.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("edit %q: %w", name, ErrNotFound)
	}

	edited := bills[idx]
	edited.Description = req.Description
	edited.Principal = req.Principal
	edited.DueDate = req.DueDate
	edited.Method = req.Method
	edited.PixKey = req.PixKey
	edited.DailyRate = req.DailyRate
	if err := edited.Validate(); err != nil {
		return nil, fmt.Errorf("validate bill: %w", err)
	}

	bills[idx] = edited
	return s.commit(ctx, bills)
}

// Delete removes every record matching name, not just the first.
func (s *LedgerService) Delete(ctx context.Context, name string) ([]core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bills, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	kept := bills[:0:0]
	for _, b := range bills {
		if b.Name != name {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(bills) {
		return nil, fmt.Errorf("delete %q: %w", name, ErrNotFound)
	}
	return s.commit(ctx, kept)
}

// Purge discards the entire current set. The historical archive is left
// untouched and no snapshot is taken: an emptied table is not an event
// worth recording, only a reset.
func (s *LedgerService) Purge(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Purge(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// List returns the current set with derived fields recomputed as of
// today. Read-only: nothing is saved or archived.
func (s *LedgerService) List(ctx context.Context) ([]core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bills, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return core.Accrue(bills, s.today()), nil
}

// Summary returns the unpaid/paid/overdue subsets and monthly totals.
func (s *LedgerService) Summary(ctx context.Context) (core.Summary, error) {
	bills, err := s.List(ctx)
	if err != nil {
		return core.Summary{}, err
	}
	return core.BuildSummary(bills), nil
}

// Notifications returns the near-due and overdue subsets.
func (s *LedgerService) Notifications(ctx context.Context) (core.Notifications, error) {
	bills, err := s.List(ctx)
	if err != nil {
		return core.Notifications{}, err
	}
	return core.BuildNotifications(bills, s.nearDueDays), nil
}

func (s *LedgerService) load(ctx context.Context) ([]core.Bill, error) {
	bills, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return bills, nil
}

// commit recomputes derived fields, overwrites the current table and
// archives the snapshot. The save is the point of commitment: an
// archive failure afterwards degrades the result to partial success but
// never rolls the save back.
func (s *LedgerService) commit(ctx context.Context, bills []core.Bill) ([]core.Bill, error) {
	bills = core.Accrue(bills, s.today())

	if err := s.store.Save(ctx, bills); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := s.archiver.Archive(ctx, bills); err != nil {
		slog.ErrorContext(ctx, "Failed to archive snapshot",
			"records", len(bills), "error", err)
		return bills, fmt.Errorf("%w: %v", ErrHistoryNotRecorded, err)
	}

	if s.mirror != nil {
		if err := s.mirror.Archive(ctx, bills); err != nil {
			// Mirror is best-effort; the workbook already has the snapshot.
			slog.WarnContext(ctx, "Failed to mirror snapshot",
				"records", len(bills), "error", err)
		}
	}
	return bills, nil
}
