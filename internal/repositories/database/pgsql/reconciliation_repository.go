package pgsql

import (
	"context"
	"errors"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/bizbooks/bizbooks_backend/internal/models"
	"github.com/bizbooks/bizbooks_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reconciliationColumns = `
	reconciliation_id, organization_id, account_id, statement_date,
	starting_balance, statement_balance, status, reconciled_amount,
	unmatched_book_amount, discrepancy_amount, adjustment_entry_id, completed_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for reconciliation data.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

func scanReconciliation(row pgx.Row) (*models.BankReconciliation, error) {
	var m models.BankReconciliation
	err := row.Scan(
		&m.ReconciliationID,
		&m.OrganizationID,
		&m.AccountID,
		&m.StatementDate,
		&m.StartingBalance,
		&m.StatementBalance,
		&m.Status,
		&m.ReconciledAmount,
		&m.UnmatchedBookAmount,
		&m.DiscrepancyAmount,
		&m.AdjustmentEntryID,
		&m.CompletedAt,
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

// FindReconciliationByID retrieves a reconciliation record.
func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.BankReconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM bank_reconciliations WHERE reconciliation_id = $1;`
	m, err := scanReconciliation(r.Pool.QueryRow(ctx, query, reconciliationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reconciliation "+reconciliationID, err)
	}
	recon := mapping.ToDomainBankReconciliation(*m)
	return &recon, nil
}

// FindActiveByAccount retrieves the account's non-COMPLETED reconciliation.
func (r *PgxReconciliationRepository) FindActiveByAccount(ctx context.Context, organizationID, accountID string) (*domain.BankReconciliation, error) {
	query := `SELECT ` + reconciliationColumns + `
		FROM bank_reconciliations
		WHERE organization_id = $1 AND account_id = $2 AND status != 'COMPLETED'
		ORDER BY created_at DESC
		LIMIT 1;
	`
	m, err := scanReconciliation(r.Pool.QueryRow(ctx, query, organizationID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find active reconciliation for account "+accountID, err)
	}
	recon := mapping.ToDomainBankReconciliation(*m)
	return &recon, nil
}

// ListBankTransactions retrieves the statement lines of a reconciliation in
// (date, id) order.
func (r *PgxReconciliationRepository) ListBankTransactions(ctx context.Context, reconciliationID string) ([]domain.BankTransaction, error) {
	query := `
		SELECT bank_transaction_id, organization_id, account_id, reconciliation_id,
		       transaction_date, amount, direction, bank_reference,
		       COALESCE(counterparty, ''), status, matched_ledger_entry_id, created_at
		FROM bank_transactions
		WHERE reconciliation_id = $1
		ORDER BY transaction_date ASC, bank_transaction_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, reconciliationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank transactions for reconciliation "+reconciliationID, err)
	}
	defer rows.Close()

	txns := []models.BankTransaction{}
	for rows.Next() {
		var m models.BankTransaction
		err := rows.Scan(
			&m.BankTransactionID,
			&m.OrganizationID,
			&m.AccountID,
			&m.ReconciliationID,
			&m.TransactionDate,
			&m.Amount,
			&m.Direction,
			&m.BankReference,
			&m.Counterparty,
			&m.Status,
			&m.MatchedLedgerEntryID,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank transaction row", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading bank transaction rows", err)
	}
	return mapping.ToDomainBankTransactionSlice(txns), nil
}

// ListMatches retrieves the confirmed matches of a reconciliation.
func (r *PgxReconciliationRepository) ListMatches(ctx context.Context, reconciliationID string) ([]domain.ReconciliationMatch, error) {
	query := `
		SELECT reconciliation_id, bank_transaction_id, ledger_entry_id, automatic, matched_at
		FROM reconciliation_matches
		WHERE reconciliation_id = $1
		ORDER BY matched_at ASC, bank_transaction_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, reconciliationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query matches for reconciliation "+reconciliationID, err)
	}
	defer rows.Close()

	matches := []domain.ReconciliationMatch{}
	for rows.Next() {
		var m models.ReconciliationMatch
		err := rows.Scan(&m.ReconciliationID, &m.BankTransactionID, &m.LedgerEntryID, &m.Automatic, &m.MatchedAt)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan match row", err)
		}
		matches = append(matches, mapping.ToDomainReconciliationMatch(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading match rows", err)
	}
	return matches, nil
}

// IsJournalEntryReferenced reports whether any IN_PROGRESS reconciliation holds
// a match against one of the entry's ledger rows.
func (r *PgxReconciliationRepository) IsJournalEntryReferenced(ctx context.Context, entryID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM reconciliation_matches rm
			JOIN bank_reconciliations br ON br.reconciliation_id = rm.reconciliation_id
			JOIN general_ledger gl ON gl.ledger_entry_id = rm.ledger_entry_id
			WHERE gl.entry_id = $1 AND br.status = 'IN_PROGRESS'
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, entryID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check reconciliation references for entry "+entryID, err)
	}
	return exists, nil
}

// SaveReconciliation persists a new reconciliation with its imported bank
// transactions in one transaction.
func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, recon domain.BankReconciliation, bankTxns []domain.BankTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBankReconciliation(recon)
	reconQuery := `
		INSERT INTO bank_reconciliations (
			reconciliation_id, organization_id, account_id, statement_date,
			starting_balance, statement_balance, status, reconciled_amount,
			unmatched_book_amount, discrepancy_amount, adjustment_entry_id, completed_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, reconQuery,
		m.ReconciliationID,
		m.OrganizationID,
		m.AccountID,
		m.StatementDate,
		m.StartingBalance,
		m.StatementBalance,
		m.Status,
		m.ReconciledAmount,
		m.UnmatchedBookAmount,
		m.DiscrepancyAmount,
		m.AdjustmentEntryID,
		m.CompletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert reconciliation "+m.ReconciliationID, err)
	}

	txnQuery := `
		INSERT INTO bank_transactions (
			bank_transaction_id, organization_id, account_id, reconciliation_id,
			transaction_date, amount, direction, bank_reference, counterparty,
			status, matched_ledger_entry_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, txn := range bankTxns {
		mt := mapping.ToModelBankTransaction(txn)
		batch.Queue(txnQuery,
			mt.BankTransactionID,
			mt.OrganizationID,
			mt.AccountID,
			mt.ReconciliationID,
			mt.TransactionDate,
			mt.Amount,
			mt.Direction,
			mt.BankReference,
			mt.Counterparty,
			mt.Status,
			mt.MatchedLedgerEntryID,
			mt.CreatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert bank transactions for reconciliation "+m.ReconciliationID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateReconciliation persists summary figures and status.
func (r *PgxReconciliationRepository) UpdateReconciliation(ctx context.Context, recon domain.BankReconciliation) error {
	m := mapping.ToModelBankReconciliation(recon)
	query := `
		UPDATE bank_reconciliations
		SET status = $2, reconciled_amount = $3, unmatched_book_amount = $4,
		    discrepancy_amount = $5, adjustment_entry_id = $6, completed_at = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE reconciliation_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ReconciliationID,
		m.Status,
		m.ReconciledAmount,
		m.UnmatchedBookAmount,
		m.DiscrepancyAmount,
		m.AdjustmentEntryID,
		m.CompletedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update reconciliation "+m.ReconciliationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyMatch records a match and flips the bank transaction to MATCHED in one
// transaction. The unique constraints on the match table reject double-claims
// of either side.
func (r *PgxReconciliationRepository) ApplyMatch(ctx context.Context, match domain.ReconciliationMatch) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	matchQuery := `
		INSERT INTO reconciliation_matches (reconciliation_id, bank_transaction_id, ledger_entry_id, automatic, matched_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err = tx.Exec(ctx, matchQuery,
		match.ReconciliationID,
		match.BankTransactionID,
		match.LedgerEntryID,
		match.Automatic,
		match.MatchedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert match", err)
	}

	txnQuery := `
		UPDATE bank_transactions
		SET status = $3, matched_ledger_entry_id = $4
		WHERE reconciliation_id = $1 AND bank_transaction_id = $2 AND status = $5;
	`
	tag, err := tx.Exec(ctx, txnQuery,
		match.ReconciliationID,
		match.BankTransactionID,
		string(domain.BankTxnMatched),
		match.LedgerEntryID,
		string(domain.BankTxnUnmatched),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to flip bank transaction "+match.BankTransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	return r.Commit(ctx, tx)
}

// RemoveMatch deletes a match and returns the bank transaction to UNMATCHED.
func (r *PgxReconciliationRepository) RemoveMatch(ctx context.Context, reconciliationID, bankTransactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM reconciliation_matches WHERE reconciliation_id = $1 AND bank_transaction_id = $2;`,
		reconciliationID, bankTransactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete match for bank transaction "+bankTransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE bank_transactions
		SET status = $3, matched_ledger_entry_id = NULL
		WHERE reconciliation_id = $1 AND bank_transaction_id = $2;
	`, reconciliationID, bankTransactionID, string(domain.BankTxnUnmatched))
	if err != nil {
		return apperrors.NewAppError(500, "failed to reset bank transaction "+bankTransactionID, err)
	}

	return r.Commit(ctx, tx)
}
