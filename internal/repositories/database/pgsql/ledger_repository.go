package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/bizbooks/bizbooks_backend/internal/models"
	"github.com/bizbooks/bizbooks_backend/internal/utils/mapping"
	"github.com/bizbooks/bizbooks_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const ledgerColumns = `
	ledger_entry_id, organization_id, account_id, entry_id, entry_number,
	line_no, entry_date, debit, credit, running_balance, created_at`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new read-only repository over the general ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerReader {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerReader = (*PgxLedgerRepository)(nil)

func scanLedgerRow(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.LedgerEntryID,
		&m.OrganizationID,
		&m.AccountID,
		&m.EntryID,
		&m.EntryNumber,
		&m.LineNo,
		&m.EntryDate,
		&m.Debit,
		&m.Credit,
		&m.RunningBalance,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectLedgerRows(rows pgx.Rows) ([]models.LedgerEntry, error) {
	defer rows.Close()
	result := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger row", err)
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading ledger rows", err)
	}
	return result, nil
}

// EntriesForAccount retrieves a page of ledger rows in the canonical
// (entry_date, entry_number, line_no) order, optionally bounded by [from, to].
func (r *PgxLedgerRepository) EntriesForAccount(ctx context.Context, organizationID, accountID string, from, to *time.Time, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := []any{organizationID, accountID}
	query := `SELECT ` + ledgerColumns + ` FROM general_ledger WHERE organization_id = $1 AND account_id = $2`
	if from != nil {
		args = append(args, *from)
		query += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 3 {
			return nil, nil, apperrors.ErrValidation
		}
		entryDate, err := pagination.ParseTimeField(fields[0])
		if err != nil {
			return nil, nil, apperrors.ErrValidation
		}
		entryNumber, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, nil, apperrors.ErrValidation
		}
		lineNo, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, nil, apperrors.ErrValidation
		}
		args = append(args, entryDate, entryNumber, lineNo)
		n := len(args)
		query += ` AND (entry_date, entry_number, line_no) > ($` + strconv.Itoa(n-2) + `, $` + strconv.Itoa(n-1) + `, $` + strconv.Itoa(n) + `)`
	}
	query += ` ORDER BY entry_date ASC, entry_number ASC, line_no ASC LIMIT ` + strconv.Itoa(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger for account "+accountID, err)
	}
	ledgerRows, err := collectLedgerRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(ledgerRows) > limit {
		ledgerRows = ledgerRows[:limit]
		last := ledgerRows[len(ledgerRows)-1]
		t := pagination.EncodeMultiFieldToken(
			pagination.TimeField(last.EntryDate),
			strconv.FormatInt(last.EntryNumber, 10),
			strconv.Itoa(last.LineNo),
		)
		token = &t
	}
	return mapping.ToDomainLedgerEntrySlice(ledgerRows), token, nil
}

// BalanceAsOf returns the running balance of the last canonical-order row at or
// before asOf, or zero when the account has no rows in range.
func (r *PgxLedgerRepository) BalanceAsOf(ctx context.Context, organizationID, accountID string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT running_balance
		FROM general_ledger
		WHERE organization_id = $1 AND account_id = $2 AND entry_date <= $3
		ORDER BY entry_date DESC, entry_number DESC, line_no DESC
		LIMIT 1;
	`
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, organizationID, accountID, asOf).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute balance for account "+accountID, err)
	}
	return balance, nil
}

// EntriesForJournalEntry retrieves the ledger rows a journal entry produced.
func (r *PgxLedgerRepository) EntriesForJournalEntry(ctx context.Context, entryID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM general_ledger WHERE entry_id = $1 ORDER BY line_no ASC;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger rows for entry "+entryID, err)
	}
	ledgerRows, err := collectLedgerRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(ledgerRows), nil
}

// UnreconciledEntries retrieves the account's rows dated at or before asOf that
// no COMPLETED reconciliation has claimed. These form the book-side candidate
// set for matching.
func (r *PgxLedgerRepository) UnreconciledEntries(ctx context.Context, organizationID, accountID string, asOf time.Time) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + `
		FROM general_ledger gl
		WHERE gl.organization_id = $1 AND gl.account_id = $2 AND gl.entry_date <= $3
		  AND NOT EXISTS (
			SELECT 1
			FROM reconciliation_matches rm
			JOIN bank_reconciliations br ON br.reconciliation_id = rm.reconciliation_id
			WHERE rm.ledger_entry_id = gl.ledger_entry_id
			  AND br.status = 'COMPLETED'
		  )
		ORDER BY gl.entry_date ASC, gl.entry_number ASC, gl.line_no ASC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, accountID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unreconciled ledger rows for account "+accountID, err)
	}
	ledgerRows, err := collectLedgerRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(ledgerRows), nil
}
