package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/finbooks/internal/apperrors"
	"github.com/finbooks/finbooks/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	"github.com/finbooks/finbooks/internal/models"
	"github.com/finbooks/finbooks/internal/utils/mapping"
	"github.com/finbooks/finbooks/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, entry_date, description, reference, entry_type, is_locked, created_at, created_by, last_updated_at, last_updated_by`

const insertLineQuery = `
	INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, memo, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var reference sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&reference,
		&m.EntryType,
		&m.IsLocked,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	m.Reference = reference.String
	return m, err
}

func queueLineInserts(batch *pgx.Batch, lines []domain.JournalLine) {
	for _, l := range lines {
		m := mapping.ToModelJournalLine(l)
		batch.Queue(insertLineQuery,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.Debit,
			m.Credit,
			nullIfEmpty(m.Memo),
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
}

// SaveEntry persists an entry and its lines within a DB transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored after a successful commit

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryDate,
		m.Description,
		nullIfEmpty(m.Reference),
		m.EntryType,
		m.IsLocked,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// Lines are always read back joined with their account so responses can
// show the account code, name and type without a second lookup.
const lineColumns = `l.line_id, l.entry_id, l.account_id, a.code, a.name, a.account_type, l.debit, l.credit, l.memo, l.created_at, l.created_by, l.last_updated_at, l.last_updated_by`

const lineFrom = ` FROM journal_lines l JOIN accounts a ON l.account_id = a.account_id`

func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	var memo sql.NullString
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.AccountCode,
		&m.AccountName,
		&m.AccountType,
		&m.Debit,
		&m.Credit,
		&memo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	m.Memo = memo.String
	return m, err
}

// FindLinesByEntryID retrieves all lines of a single entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + lineFrom + ` WHERE l.entry_id = $1 ORDER BY l.created_at, l.line_id;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `SELECT ` + lineColumns + lineFrom + ` WHERE l.entry_id = ANY($1) ORDER BY l.created_at, l.line_id;`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entries", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.JournalLine, len(entryIDs))
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row", err)
		}
		result[m.EntryID] = append(result[m.EntryID], mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows", err)
	}
	return result, nil
}

// ListEntries retrieves a filtered, paginated list of entries using
// token-based pagination over (entry_date, created_at) descending.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether another page exists
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE 1=1`
	args := []any{}

	addArg := func(clause string, value any) {
		args = append(args, value)
		query += ` AND ` + clause + `$` + strconv.Itoa(len(args))
	}

	if filter.DateFrom != nil {
		addArg(`entry_date >= `, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addArg(`entry_date <= `, *filter.DateTo)
	}
	if filter.EntryType != nil {
		addArg(`entry_type = `, string(*filter.EntryType))
	}
	if filter.Locked != nil {
		addArg(`is_locked = `, *filter.Locked)
	}
	if filter.Reference != "" {
		addArg(`reference ILIKE `, "%"+filter.Reference+"%")
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		arg := `$` + strconv.Itoa(len(args))
		query += ` AND (description ILIKE ` + arg + ` OR reference ILIKE ` + arg + `)`
	}
	if filter.AccountID != "" {
		addArg(`entry_id IN (SELECT entry_id FROM journal_lines WHERE account_id = `, filter.AccountID)
		query += `)`
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, err := decodeEntryToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, lastDate, lastCreatedAt)
		query += ` AND (entry_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var newToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(
			last.EntryDate.Format(time.RFC3339Nano),
			last.CreatedAt.Format(time.RFC3339Nano),
		)
		newToken = &token
	}

	result := make([]domain.JournalEntry, len(entries))
	for i, m := range entries {
		result[i] = mapping.ToDomainJournalEntry(m)
	}
	return result, newToken, nil
}

func decodeEntryToken(token string) (time.Time, time.Time, error) {
	parts, err := pagination.DecodeToken(token, 2)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	lastDate, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewAppError(400, "invalid nextToken", err)
	}
	lastCreatedAt, err := time.Parse(time.RFC3339Nano, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewAppError(400, "invalid nextToken", err)
	}
	return lastDate, lastCreatedAt, nil
}

// UpdateEntry rewrites the header and replaces the lines wholesale
// within a DB transaction.
func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, reference = $4, entry_type = $5, last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1 AND NOT is_locked;
	`
	tag, err := tx.Exec(ctx, headerQuery,
		m.EntryID,
		m.EntryDate,
		m.Description,
		nullIfEmpty(m.Reference),
		m.EntryType,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or locked; the service has already distinguished
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear lines for entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes an entry and its lines within a DB transaction.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+entryID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// SetEntryLocked flips the lock flag. The update is idempotent.
func (r *PgxJournalRepository) SetEntryLocked(ctx context.Context, entryID string, locked bool, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET is_locked = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, locked, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set lock on entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountEntryReferences counts invoices, payments and expense records
// pointing at the entry.
func (r *PgxJournalRepository) CountEntryReferences(ctx context.Context, entryID string) (int, error) {
	query := `
		SELECT (SELECT COUNT(*) FROM invoices WHERE entry_id = $1)
		     + (SELECT COUNT(*) FROM invoice_payments WHERE entry_id = $1)
		     + (SELECT COUNT(*) FROM expenses WHERE entry_id = $1);
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, entryID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count references for entry "+entryID, err)
	}
	return count, nil
}
