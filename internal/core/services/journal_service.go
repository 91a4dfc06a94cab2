package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/dto"
	"github.com/finbooks/finbooks/internal/utils/accounting"
)

var (
	ErrEntryUnbalanced    = fmt.Errorf("%w: entry debits and credits do not balance", apperrors.ErrValidation)
	ErrEntryMinLines      = fmt.Errorf("%w: an entry must have at least two lines", apperrors.ErrValidation)
	ErrLineBothSides      = fmt.Errorf("%w: a line cannot carry both a debit and a credit", apperrors.ErrValidation)
	ErrLineNoSide         = fmt.Errorf("%w: a line must carry a positive debit or credit", apperrors.ErrValidation)
	ErrLineNegative       = fmt.Errorf("%w: line amounts must not be negative", apperrors.ErrValidation)
	ErrAccountUnknown     = fmt.Errorf("%w: line references an unknown account", apperrors.ErrValidation)
	ErrAccountInactive    = fmt.Errorf("%w: line references an inactive account", apperrors.ErrValidation)
	ErrDescriptionMissing = fmt.Errorf("%w: entry description is required", apperrors.ErrValidation)
	ErrDateMissing        = fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	ErrEntryReferenced    = fmt.Errorf("%w: entry is referenced by invoices or payments, post a reversing entry instead", apperrors.ErrConflict)
)

// journalService provides journal entry operations.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateLines enforces the double-entry rules on a prospective set of
// lines, in order: every line's account exists and is active, each line
// carries exactly one positive side, and the entry balances within
// tolerance. On success it returns the accounts keyed by ID so callers
// can hydrate the lines without a second lookup.
func (s *journalService) validateLines(ctx context.Context, lines []domain.JournalLine) (map[string]domain.Account, error) {
	if len(lines) < 2 {
		return nil, ErrEntryMinLines
	}

	accountIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		accountIDs = append(accountIDs, l.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for validation: %w", err)
	}
	for _, l := range lines {
		acc, found := accounts[l.AccountID]
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrAccountUnknown, l.AccountID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrAccountInactive, acc.Code)
		}
	}

	for _, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return nil, fmt.Errorf("%w (account %s)", ErrLineNegative, l.AccountID)
		}
		if l.Debit.IsPositive() && l.Credit.IsPositive() {
			return nil, fmt.Errorf("%w (account %s)", ErrLineBothSides, l.AccountID)
		}
		if !l.Debit.IsPositive() && !l.Credit.IsPositive() {
			return nil, fmt.Errorf("%w (account %s)", ErrLineNoSide, l.AccountID)
		}
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	if !accounting.Balanced(debits, credits) {
		return nil, fmt.Errorf("%w: debits are %s, credits are %s", ErrEntryUnbalanced, debits.String(), credits.String())
	}
	return accounts, nil
}

// hydrateLines copies the account snapshot onto each line.
func hydrateLines(lines []domain.JournalLine, accounts map[string]domain.Account) {
	for i := range lines {
		acc := accounts[lines[i].AccountID]
		lines[i].AccountCode = acc.Code
		lines[i].AccountName = acc.Name
		lines[i].AccountType = acc.AccountType
	}
}

// CreateEntry validates and persists a new balanced journal entry.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if req.EntryDate.IsZero() {
		return nil, ErrDateMissing
	}
	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	entryType := req.EntryType
	if entryType == "" {
		entryType = domain.EntryStandard
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	entryID := uuid.NewString()
	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lr := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lr.AccountID,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
			Memo:        lr.Memo,
			AuditFields: audit,
		}
	}

	accounts, err := s.validateLines(ctx, lines)
	if err != nil {
		return nil, err
	}
	hydrateLines(lines, accounts)

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Reference:   req.Reference,
		EntryType:   entryType,
		IsLocked:    false,
		AuditFields: audit,
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry created", slog.String("entry_id", entryID), slog.String("entry_type", string(entryType)))
	entry.Lines = lines
	return &entry, nil
}

// GetEntryByID retrieves an entry together with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a filtered, paginated list of entries with lines
// attached.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	filter, err := buildEntryFilter(params)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	entries, newToken, err := s.journalRepo.ListEntries(ctx, filter, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	if len(entries) > 0 {
		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.EntryID
		}
		linesByEntry, err := s.journalRepo.FindLinesByEntryIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load lines for entries: %w", err)
		}
		for i := range entries {
			entries[i].Lines = linesByEntry[entries[i].EntryID]
		}
	}

	resp := dto.ToListJournalEntriesResponse(entries, newToken)
	return &resp, nil
}

func buildEntryFilter(params dto.ListJournalEntriesParams) (portsrepo.EntryFilter, error) {
	var filter portsrepo.EntryFilter

	parseDate := func(value, name string) (*time.Time, error) {
		if value == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid %s date, expected YYYY-MM-DD", apperrors.ErrValidation, name)
		}
		return &t, nil
	}

	var err error
	if filter.DateFrom, err = parseDate(params.From, "from"); err != nil {
		return filter, err
	}
	if filter.DateTo, err = parseDate(params.To, "to"); err != nil {
		return filter, err
	}

	if params.EntryType != "" {
		et := domain.EntryType(params.EntryType)
		switch et {
		case domain.EntryStandard, domain.EntryAdjusting, domain.EntryClosing, domain.EntryReversing:
			filter.EntryType = &et
		default:
			return filter, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, params.EntryType)
		}
	}

	switch params.Locked {
	case "":
	case "true":
		locked := true
		filter.Locked = &locked
	case "false":
		locked := false
		filter.Locked = &locked
	default:
		return filter, fmt.Errorf("%w: locked must be true or false", apperrors.ErrValidation)
	}

	filter.AccountID = params.AccountID
	filter.Reference = params.Reference
	filter.Search = params.Search
	return filter, nil
}

// UpdateEntry updates an unlocked entry. When lines are provided they
// replace the existing lines wholesale and go through full validation.
func (s *journalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, updaterUserID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsLocked {
		return nil, fmt.Errorf("%w: entry %s cannot be modified", apperrors.ErrLocked, entryID)
	}

	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, ErrDescriptionMissing
		}
		entry.Description = *req.Description
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	if req.EntryType != nil {
		entry.EntryType = *req.EntryType
	}

	now := time.Now().UTC()
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = updaterUserID

	// Only a supplied line set goes back through validation; a
	// header-only update leaves the posted lines untouched even if one
	// of their accounts has since been deactivated.
	var lines []domain.JournalLine
	if req.Lines != nil {
		lineAudit := domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterUserID,
		}
		lines = make([]domain.JournalLine, len(req.Lines))
		for i, lr := range req.Lines {
			lines[i] = domain.JournalLine{
				LineID:      uuid.NewString(),
				EntryID:     entryID,
				AccountID:   lr.AccountID,
				Debit:       lr.Debit,
				Credit:      lr.Credit,
				Memo:        lr.Memo,
				AuditFields: lineAudit,
			}
		}
		accounts, err := s.validateLines(ctx, lines)
		if err != nil {
			return nil, err
		}
		hydrateLines(lines, accounts)
	} else {
		lines, err = s.journalRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return nil, fmt.Errorf("failed to load lines for entry %s: %w", entryID, err)
		}
	}

	if err := s.journalRepo.UpdateEntry(ctx, *entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry updated", slog.String("entry_id", entryID))
	entry.Lines = lines
	return entry, nil
}

// DeleteEntry removes an unlocked entry that nothing else references.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string, requestingUserID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.IsLocked {
		return fmt.Errorf("%w: entry %s cannot be deleted", apperrors.ErrLocked, entryID)
	}

	refs, err := s.journalRepo.CountEntryReferences(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to check entry references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("%w (entry %s)", ErrEntryReferenced, entryID)
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	s.LogInfo(ctx, "Journal entry deleted", slog.String("entry_id", entryID), slog.String("deleted_by", requestingUserID))
	return nil
}

// ReverseEntry posts a mirror-image entry that cancels an existing one.
// The original may be locked; the reversal is a new, unlocked entry.
// The request may override the reversal's date and description; both
// default to today and "Reversal of: <original>".
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, req dto.ReverseJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	original, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	reference := "REV-" + original.EntryID
	if original.Reference != "" {
		reference = "REV-" + original.Reference
	}

	entryDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.EntryDate != nil && !req.EntryDate.IsZero() {
		entryDate = *req.EntryDate
	}
	description := "Reversal of: " + original.Description
	if req.Description != nil && *req.Description != "" {
		description = *req.Description
	}

	createReq := dto.CreateJournalEntryRequest{
		EntryDate:   entryDate,
		Description: description,
		Reference:   reference,
		EntryType:   domain.EntryReversing,
		Lines:       make([]dto.CreateJournalLineRequest, len(original.Lines)),
	}
	for i, l := range original.Lines {
		// Swap sides to cancel the original movement.
		createReq.Lines[i] = dto.CreateJournalLineRequest{
			AccountID: l.AccountID,
			Debit:     l.Credit,
			Credit:    l.Debit,
			Memo:      l.Memo,
		}
	}

	reversal, err := s.CreateEntry(ctx, createReq, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to create reversing entry for %s: %w", entryID, err)
	}

	s.LogInfo(ctx, "Journal entry reversed", slog.String("entry_id", entryID), slog.String("reversal_id", reversal.EntryID))
	return reversal, nil
}

// LockEntry marks an entry immutable. Locking an already locked entry is
// a no-op.
func (s *journalService) LockEntry(ctx context.Context, entryID string, requestingUserID string) error {
	if err := s.journalRepo.SetEntryLocked(ctx, entryID, true, requestingUserID, time.Now().UTC()); err != nil {
		return err
	}
	s.LogInfo(ctx, "Journal entry locked", slog.String("entry_id", entryID))
	return nil
}

// UnlockEntry clears the lock flag. The admin check happens at the route
// level; the service stays policy-free.
func (s *journalService) UnlockEntry(ctx context.Context, entryID string, requestingUserID string) error {
	if err := s.journalRepo.SetEntryLocked(ctx, entryID, false, requestingUserID, time.Now().UTC()); err != nil {
		return err
	}
	s.LogInfo(ctx, "Journal entry unlocked", slog.String("entry_id", entryID))
	return nil
}
