package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// historyKey is the hash holding every record, keyed by record ID. Sessions
// number in the hundreds at most, so full-hash scans are fine here.
const historyKey = "ltv:history"

// RedisStore is a Redis-backed Store for sharing history between processes.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects a store to the Redis instance at addr.
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

// NewRedisStoreWithClient wraps an existing client, e.g. one pointed at a
// test server.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, rec Record, overwrite bool) (Record, error) {
	rec, err := normalize(rec)
	if err != nil {
		return rec, err
	}

	if overwrite {
		records, err := s.all(ctx)
		if err != nil {
			return rec, err
		}
		var stale []string
		for _, existing := range records {
			if existing.CustomerName == rec.CustomerName && existing.Address == rec.Address {
				stale = append(stale, existing.ID)
			}
		}
		if len(stale) > 0 {
			if err := s.client.HDel(ctx, historyKey, stale...).Err(); err != nil {
				return rec, fmt.Errorf("history: delete stale records: %w", err)
			}
		}
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return rec, fmt.Errorf("history: encode record: %w", err)
	}
	if err := s.client.HSet(ctx, historyKey, rec.ID, payload).Err(); err != nil {
		return rec, fmt.Errorf("history: save record: %w", err)
	}
	return rec, nil
}

func (s *RedisStore) LoadByCustomer(ctx context.Context, name string) (Record, bool, error) {
	records, err := s.all(ctx)
	if err != nil {
		return Record{}, false, err
	}

	var latest Record
	found := false
	for _, rec := range records {
		if rec.CustomerName != name {
			continue
		}
		if !found || rec.Timestamp.After(latest.Timestamp) {
			latest = rec
			found = true
		}
	}
	return latest, found, nil
}

func (s *RedisStore) Customers(ctx context.Context) ([]string, error) {
	records, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return distinctNames(records, ""), nil
}

func (s *RedisStore) SearchByKeyword(ctx context.Context, keyword string) ([]string, error) {
	if keyword == "" {
		return nil, nil
	}
	records, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return distinctNames(records, keyword), nil
}

func (s *RedisStore) CleanupOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	records, err := s.all(ctx)
	if err != nil {
		return 0, err
	}

	var stale []string
	for _, rec := range records {
		if rec.Timestamp.Before(cutoff) {
			stale = append(stale, rec.ID)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}
	if err := s.client.HDel(ctx, historyKey, stale...).Err(); err != nil {
		return 0, fmt.Errorf("history: cleanup records: %w", err)
	}
	return len(stale), nil
}

// all loads every stored record, sorted by timestamp so callers iterate in
// save order.
func (s *RedisStore) all(ctx context.Context) ([]Record, error) {
	values, err := s.client.HGetAll(ctx, historyKey).Result()
	if err != nil {
		return nil, fmt.Errorf("history: read records: %w", err)
	}

	records := make([]Record, 0, len(values))
	for id, payload := range values {
		var rec Record
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			// Skip rather than fail: one corrupt entry should not
			// take down history for every customer.
			continue
		}
		if rec.ID == "" {
			rec.ID = id
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Timestamp.Equal(records[j].Timestamp) {
			return strings.Compare(records[i].ID, records[j].ID) < 0
		}
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}
