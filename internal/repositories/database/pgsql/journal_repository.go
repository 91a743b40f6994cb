package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/bizbooks/bizbooks_backend/internal/models"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
	"github.com/bizbooks/bizbooks_backend/internal/utils/mapping"
	"github.com/bizbooks/bizbooks_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `
	entry_id, organization_id, entry_number, entry_date, entry_type, status,
	description, COALESCE(source_type, ''), COALESCE(source_id, ''),
	reversal_entry_id, reversed_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.EntryType,
		&m.Status,
		&m.Description,
		&m.SourceType,
		&m.SourceID,
		&m.ReversalEntryID,
		&m.ReversedEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveDraftEntry persists a new DRAFT entry with its lines in one transaction.
func (r *PgxJournalRepository) SaveDraftEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, organization_id, entry_number, entry_date, entry_type, status,
			description, source_type, source_id, reversal_entry_id, reversed_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.OrganizationID,
		m.EntryNumber,
		m.EntryDate,
		m.EntryType,
		m.Status,
		m.Description,
		m.SourceType,
		m.SourceID,
		m.ReversalEntryID,
		m.ReversedEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	if err := insertLines(ctx, tx, entry.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateDraftEntry replaces a DRAFT entry's header and lines. The stored status
// is re-checked under lock so a concurrent post cannot be overwritten.
func (r *PgxJournalRepository) UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entry.EntryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock journal entry "+entry.EntryID, err)
	}
	if status != string(domain.EntryDraft) {
		return apperrors.ErrInvalidOperation
	}

	m := mapping.ToModelJournalEntry(entry)
	updateQuery := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear lines of entry "+entry.EntryID, err)
	}
	if err := insertLines(ctx, tx, entry.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertLines(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO journal_lines (line_id, entry_id, line_no, account_id, debit, credit, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(query, m.LineID, m.EntryID, m.LineNo, m.AccountID, m.Debit, m.Credit, m.Memo)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal lines", err)
	}
	return nil
}

// PostEntry atomically posts a DRAFT entry: assigns the organization's next
// gapless entry number, appends the general-ledger rows with running balances,
// applies account balance deltas and flips the entry to POSTED. Everything
// happens in one database transaction.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Lock the entry row so concurrent posts of the same entry serialize here.
	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entry.EntryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock journal entry "+entry.EntryID, err)
	}
	if status != string(domain.EntryDraft) {
		return nil, apperrors.ErrAlreadyPosted
	}

	// Claim the next entry number. The sequence row update serializes postings
	// per organization inside the database, so numbers are gapless even if the
	// in-process lock is bypassed.
	seqQuery := `
		INSERT INTO organization_sequences (organization_id, last_entry_number)
		VALUES ($1, 1)
		ON CONFLICT (organization_id)
		DO UPDATE SET last_entry_number = organization_sequences.last_entry_number + 1
		RETURNING last_entry_number;
	`
	var entryNumber int64
	if err := tx.QueryRow(ctx, seqQuery, entry.OrganizationID).Scan(&entryNumber); err != nil {
		return nil, apperrors.NewAppError(500, "failed to claim entry number for organization "+entry.OrganizationID, err)
	}
	entry.EntryNumber = entryNumber
	entry.Status = domain.EntryPosted

	// Lock the touched accounts and compute the posting plan from their balances
	// as of this transaction.
	accountIDs := make([]string, 0, len(entry.Lines))
	seen := make(map[string]struct{}, len(entry.Lines))
	for _, line := range entry.Lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock accounts for posting", err)
	}

	plan, err := accounting.BuildPostingPlan(entry, lockedAccounts)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to build posting plan for entry "+entry.EntryID, err)
	}

	now := entry.LastUpdatedAt
	ledgerQuery := `
		INSERT INTO general_ledger (
			ledger_entry_id, organization_id, account_id, entry_id, entry_number,
			line_no, entry_date, debit, credit, running_balance, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, row := range plan.Rows {
		m := mapping.ToModelLedgerEntry(row)
		m.LedgerEntryID = uuid.NewString()
		m.CreatedAt = now
		batch.Queue(ledgerQuery,
			m.LedgerEntryID,
			m.OrganizationID,
			m.AccountID,
			m.EntryID,
			m.EntryNumber,
			m.LineNo,
			m.EntryDate,
			m.Debit,
			m.Credit,
			m.RunningBalance,
			m.CreatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to append ledger rows for entry "+entry.EntryID, err)
	}

	if err := r.accountRepo.ApplyBalanceDeltas(ctx, tx, plan.Deltas, entry.LastUpdatedBy, now); err != nil {
		return nil, err
	}

	postQuery := `
		UPDATE journal_entries
		SET status = $2, entry_number = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, postQuery, entry.EntryID, string(domain.EntryPosted), entryNumber, now, entry.LastUpdatedBy); err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark entry "+entry.EntryID+" posted", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// MarkEntryReversed records the reversal link on an already POSTED entry.
func (r *PgxJournalRepository) MarkEntryReversed(ctx context.Context, entryID string, reversalEntryID string, userID string, at time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, reversal_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, string(domain.EntryReversed), reversalEntryID, at, userID, string(domain.EntryPosted))
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry "+entryID+" reversed", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidOperation
	}
	return nil
}

// FindEntryByID retrieves a journal entry without its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// FindLinesByEntryID retrieves an entry's lines in LineNo order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, line_no, account_id, debit, credit, COALESCE(memo, '')
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_no ASC;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(&m.LineID, &m.EntryID, &m.LineNo, &m.AccountID, &m.Debit, &m.Credit, &m.Memo)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading line rows", err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ListEntries retrieves a page of entries for an organization, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, organizationID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	args := []any{organizationID}
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE organization_id = $1`
	if !includeReversals {
		query += ` AND entry_type != '` + string(domain.EntryReversing) + `'`
	}
	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, apperrors.ErrValidation
		}
		createdAt, err := pagination.ParseTimeField(fields[0])
		if err != nil {
			return nil, nil, apperrors.ErrValidation
		}
		args = append(args, createdAt, fields[1])
		query += ` AND (created_at, entry_id) < ($2, $3)`
	}
	query += ` ORDER BY created_at DESC, entry_id DESC LIMIT ` + strconv.Itoa(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading journal entry rows", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeMultiFieldToken(pagination.TimeField(last.CreatedAt), last.EntryID)
		token = &t
	}

	result := make([]domain.JournalEntry, len(entries))
	for i, m := range entries {
		result[i] = mapping.ToDomainJournalEntry(m)
	}
	return result, token, nil
}
