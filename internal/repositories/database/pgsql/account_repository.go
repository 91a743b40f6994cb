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
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
	"github.com/bizbooks/bizbooks_backend/internal/utils/mapping"
	"github.com/bizbooks/bizbooks_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `
	account_id, organization_id, code, name, account_type, account_sub_type,
	COALESCE(parent_account_id, ''), level, status, allow_transactions,
	require_sub_accounts, description, debit_balance, credit_balance,
	current_balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.OrganizationID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.AccountSubType,
		&m.ParentAccountID,
		&m.Level,
		&m.Status,
		&m.AllowTransactions,
		&m.RequireSubAccounts,
		&m.Description,
		&m.DebitBalance,
		&m.CreditBalance,
		&m.CurrentBalance,
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

// FindAccountByID retrieves an account within an organization.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND account_id = $2;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, organizationID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}
	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// FindAccountByCode retrieves an account by its human code within an organization.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND code = $2;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, organizationID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account with code "+code, err)
	}
	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// ListAccounts retrieves a page of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, organizationID string, limit int, nextToken *string, includeInactive bool) ([]domain.Account, *string, error) {
	args := []any{organizationID}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1`
	if !includeInactive {
		query += ` AND status = 'ACTIVE'`
	}
	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 1 {
			return nil, nil, apperrors.ErrValidation
		}
		args = append(args, fields[0])
		query += ` AND code > $2`
	}
	query += ` ORDER BY code ASC LIMIT ` + strconv.Itoa(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading account rows", err)
	}

	var token *string
	if len(accounts) > limit {
		accounts = accounts[:limit]
		t := pagination.EncodeMultiFieldToken(accounts[len(accounts)-1].Code)
		token = &t
	}
	return mapping.ToDomainAccountSlice(accounts), token, nil
}

// ListChildAccounts retrieves the direct children of an account.
func (r *PgxAccountRepository) ListChildAccounts(ctx context.Context, organizationID, parentAccountID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND parent_account_id = $2 ORDER BY code ASC;`
	rows, err := r.Pool.Query(ctx, query, organizationID, parentAccountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list child accounts of "+parentAccountID, err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading account rows", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// HasPostings reports whether any general-ledger row references the account.
func (r *PgxAccountRepository) HasPostings(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM general_ledger WHERE account_id = $1);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check postings for account "+accountID, err)
	}
	return exists, nil
}

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (
			account_id, organization_id, code, name, account_type, account_sub_type,
			parent_account_id, level, status, allow_transactions, require_sub_accounts,
			description, debit_balance, credit_balance, current_balance,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.OrganizationID,
		m.Code,
		m.Name,
		m.AccountType,
		m.AccountSubType,
		m.ParentAccountID,
		m.Level,
		m.Status,
		m.AllowTransactions,
		m.RequireSubAccounts,
		m.Description,
		m.DebitBalance,
		m.CreditBalance,
		m.CurrentBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert account "+m.AccountID, err)
	}
	return nil
}

// UpdateAccount persists account metadata changes. Balance columns are written
// exclusively through ApplyBalanceDeltas.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET code = $3, name = $4, account_type = $5, account_sub_type = $6,
		    parent_account_id = NULLIF($7, ''), level = $8, status = $9,
		    allow_transactions = $10, require_sub_accounts = $11, description = $12,
		    last_updated_at = $13, last_updated_by = $14
		WHERE organization_id = $1 AND account_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.AccountID,
		m.Code,
		m.Name,
		m.AccountType,
		m.AccountSubType,
		m.ParentAccountID,
		m.Level,
		m.Status,
		m.AllowTransactions,
		m.RequireSubAccounts,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to update account "+m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountsByIDsForUpdate locks the account rows for the duration of the
// surrounding transaction and returns their current state. Rows are locked in
// sorted id order to avoid deadlocks between concurrent postings.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock accounts", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked account row", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading locked account rows", err)
	}
	for _, id := range accountIDs {
		if _, ok := result[id]; !ok {
			return nil, apperrors.ErrNotFound
		}
	}
	return result, nil
}

// ApplyBalanceDeltas applies per-account balance changes inside a transaction.
// The rows must already be locked via FindAccountsByIDsForUpdate.
func (r *PgxAccountRepository) ApplyBalanceDeltas(ctx context.Context, tx pgx.Tx, deltas map[string]accounting.BalanceDelta, userID string, now time.Time) error {
	if len(deltas) == 0 {
		return nil
	}
	query := `
		UPDATE accounts
		SET debit_balance = debit_balance + $2,
		    credit_balance = credit_balance + $3,
		    current_balance = current_balance + $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for accountID, delta := range deltas {
		batch.Queue(query, accountID, delta.Debit, delta.Credit, delta.Current, now, userID)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to apply balance deltas", err)
	}
	return nil
}
