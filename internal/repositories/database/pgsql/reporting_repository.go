package pgsql

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for aggregate report reads.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetTrialBalanceRows aggregates every account's debit and credit totals from
// the ledger as of the given date. The LEFT JOIN keeps accounts with no rows in
// the report with zero totals, and no status filter is applied: an inactive
// account's balances still belong to the ledger, so dropping them here would
// corrupt the report's totals. Display filtering is the service's concern.
func (r *PgxReportingRepository) GetTrialBalanceRows(ctx context.Context, organizationID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, a.status,
		       COALESCE(SUM(gl.debit), 0) AS debit_total,
		       COALESCE(SUM(gl.credit), 0) AS credit_total
		FROM accounts a
		LEFT JOIN general_ledger gl
		       ON gl.account_id = a.account_id AND gl.entry_date <= $2
		WHERE a.organization_id = $1
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.status
		ORDER BY a.code ASC;
	`

	rows, err := r.Pool.Query(ctx, query, organizationID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate trial balance rows", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType, status string
		err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&status,
			&row.DebitBalance,
			&row.CreditBalance,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		row.AccountType = domain.AccountType(accountType)
		row.AccountStatus = domain.AccountStatus(status)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading trial balance rows", err)
	}
	return result, nil
}
