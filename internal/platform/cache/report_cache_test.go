package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

func sampleReport(orgID string, asOf time.Time) *domain.TrialBalanceReport {
	return &domain.TrialBalanceReport{
		OrganizationID: orgID,
		AsOf:           asOf,
		GeneratedAt:    asOf.Add(2 * time.Hour),
		Rows: []domain.TrialBalanceRow{
			{
				AccountID:     "acc-1",
				AccountCode:   "1010",
				AccountName:   "Main Checking",
				AccountType:   domain.Asset,
				DebitBalance:  decimal.NewFromInt(500),
				CreditBalance: decimal.Zero,
				NetBalance:    decimal.NewFromInt(500),
			},
		},
		TotalDebit:  decimal.NewFromInt(500),
		TotalCredit: decimal.NewFromInt(500),
		IsBalanced:  true,
	}
}

func TestReportCacheMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewReportCache(client, 15*time.Minute)

	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	mock.ExpectGet("trialbalance:org-1:2024-06-30T00:00:00Z:false").RedisNil()

	report, err := cache.GetTrialBalance(context.Background(), "org-1", asOf, false)

	require.NoError(t, err, "a miss is not an error")
	assert.Nil(t, report)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportCacheSetThenGet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	ttl := 15 * time.Minute
	cache := NewReportCache(client, ttl)

	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	report := sampleReport("org-1", asOf)
	payload, err := json.Marshal(report)
	require.NoError(t, err)

	key := "trialbalance:org-1:2024-06-30T00:00:00Z:false"
	mock.ExpectSet(key, payload, ttl).SetVal("OK")
	mock.ExpectSAdd("trialbalance:keys:org-1", key).SetVal(1)

	require.NoError(t, cache.SetTrialBalance(context.Background(), report, false))

	mock.ExpectGet(key).SetVal(string(payload))
	cached, err := cache.GetTrialBalance(context.Background(), "org-1", asOf, false)

	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, report.OrganizationID, cached.OrganizationID)
	assert.True(t, cached.IsBalanced)
	assert.True(t, report.TotalDebit.Equal(cached.TotalDebit))
	require.Len(t, cached.Rows, 1)
	assert.True(t, report.Rows[0].NetBalance.Equal(cached.Rows[0].NetBalance))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportCacheKeyIncludesInactiveFlag(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewReportCache(client, time.Minute)

	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	mock.ExpectGet("trialbalance:org-1:2024-06-30T00:00:00Z:true").RedisNil()

	_, err := cache.GetTrialBalance(context.Background(), "org-1", asOf, true)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportCacheKeySeparatesInstantsOnSameDay(t *testing.T) {
	morning := time.Date(2024, 6, 30, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC)

	require.NotEqual(t, reportKey("org-1", morning, false), reportKey("org-1", evening, false))

	// A report cached for one instant must be a miss for any other instant,
	// since backdated postings change what each snapshot contains.
	client, mock := redismock.NewClientMock()
	cache := NewReportCache(client, time.Minute)

	report := sampleReport("org-1", evening)
	payload, err := json.Marshal(report)
	require.NoError(t, err)
	mock.ExpectSet(reportKey("org-1", evening, false), payload, time.Minute).SetVal("OK")
	mock.ExpectSAdd("trialbalance:keys:org-1", reportKey("org-1", evening, false)).SetVal(1)
	require.NoError(t, cache.SetTrialBalance(context.Background(), report, false))

	mock.ExpectGet(reportKey("org-1", morning, false)).RedisNil()
	cached, err := cache.GetTrialBalance(context.Background(), "org-1", morning, false)

	require.NoError(t, err)
	assert.Nil(t, cached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportCacheInvalidateOrganization(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewReportCache(client, time.Minute)

	setKey := "trialbalance:keys:org-1"
	keys := []string{
		"trialbalance:org-1:2024-06-30T00:00:00Z:false",
		"trialbalance:org-1:2024-05-31T00:00:00Z:false",
	}
	mock.ExpectSMembers(setKey).SetVal(keys)
	mock.ExpectDel(keys[0], keys[1], setKey).SetVal(3)

	require.NoError(t, cache.InvalidateOrganization(context.Background(), "org-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportCacheInvalidateNothingCached(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewReportCache(client, time.Minute)

	mock.ExpectSMembers("trialbalance:keys:org-1").SetVal([]string{})

	require.NoError(t, cache.InvalidateOrganization(context.Background(), "org-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
