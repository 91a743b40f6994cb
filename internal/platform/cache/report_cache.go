package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// ReportCache caches generated trial balance reports in Redis. Entries are
// keyed by organization, the exact as-of instant and the include-inactive flag,
// and every key is tracked in a per-organization set so a posting can drop all
// of an organization's cached reports at once.
type ReportCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewReportCache creates a report cache with the given TTL.
func NewReportCache(client redis.Cmdable, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

// reportKey carries the full as-of instant: two snapshots on the same calendar
// day are distinct reports and must never share a cache entry.
func reportKey(organizationID string, asOf time.Time, includeInactive bool) string {
	return fmt.Sprintf("trialbalance:%s:%s:%t", organizationID, asOf.UTC().Format(time.RFC3339Nano), includeInactive)
}

func orgKeySet(organizationID string) string {
	return "trialbalance:keys:" + organizationID
}

// GetTrialBalance returns the cached report or (nil, nil) on a miss.
func (c *ReportCache) GetTrialBalance(ctx context.Context, organizationID string, asOf time.Time, includeInactive bool) (*domain.TrialBalanceReport, error) {
	payload, err := c.client.Get(ctx, reportKey(organizationID, asOf, includeInactive)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached trial balance: %w", err)
	}
	var report domain.TrialBalanceReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached trial balance: %w", err)
	}
	return &report, nil
}

// SetTrialBalance stores a report and tracks its key for invalidation.
func (c *ReportCache) SetTrialBalance(ctx context.Context, report *domain.TrialBalanceReport, includeInactive bool) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode trial balance: %w", err)
	}
	key := reportKey(report.OrganizationID, report.AsOf, includeInactive)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache trial balance: %w", err)
	}
	if err := c.client.SAdd(ctx, orgKeySet(report.OrganizationID), key).Err(); err != nil {
		return fmt.Errorf("failed to track trial balance key: %w", err)
	}
	return nil
}

// InvalidateOrganization drops every cached report for an organization. Called
// after any posting, since a backdated entry can change any historical report.
func (c *ReportCache) InvalidateOrganization(ctx context.Context, organizationID string) error {
	setKey := orgKeySet(organizationID)
	keys, err := c.client.SMembers(ctx, setKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to list cached trial balance keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	keys = append(keys, setKey)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached trial balances: %w", err)
	}
	return nil
}
