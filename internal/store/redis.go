package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dyluth/fily/internal/ledger"
	"github.com/redis/go-redis/v9"
)

// Table names used in Redis keys.
const (
	TableProducts  = "products"
	TableAvailable = "available"
	TableSold      = "sold"
)

// TableKey returns the Redis key of a ledger table.
// Pattern: fily:{namespace}:{table}
func TableKey(namespace, table string) string {
	return fmt.Sprintf("fily:%s:%s", namespace, table)
}

// Redis keeps each ledger table as a Redis list of JSON rows under a
// namespace, so several ledgers can share one server. Saving a table replaces
// the list inside a MULTI/EXEC transaction.
type Redis struct {
	rdb       *redis.Client
	namespace string
}

var _ ledger.Store = (*Redis)(nil)

// NewRedis creates a Redis-backed store for the given namespace.
// Returns an error if namespace is empty.
func NewRedis(opts *redis.Options, namespace string) (*Redis, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}
	return &Redis{
		rdb:       redis.NewClient(opts),
		namespace: namespace,
	}, nil
}

// Close closes the Redis connection.
func (s *Redis) Close() error {
	return s.rdb.Close()
}

// Ping verifies Redis connectivity.
func (s *Redis) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Redis) Products(ctx context.Context) ([]ledger.Product, error) {
	return loadRows[ledger.Product](ctx, s.rdb, TableKey(s.namespace, TableProducts))
}

func (s *Redis) SaveProducts(ctx context.Context, products []ledger.Product) error {
	return saveRows(ctx, s.rdb, TableKey(s.namespace, TableProducts), products)
}

func (s *Redis) Stock(ctx context.Context) ([]ledger.StockRow, error) {
	return loadRows[ledger.StockRow](ctx, s.rdb, TableKey(s.namespace, TableAvailable))
}

func (s *Redis) SaveStock(ctx context.Context, rows []ledger.StockRow) error {
	kept := make([]ledger.StockRow, 0, len(rows))
	for _, r := range rows {
		if r.Count > 0 {
			kept = append(kept, r)
		}
	}
	return saveRows(ctx, s.rdb, TableKey(s.namespace, TableAvailable), kept)
}

func (s *Redis) Sales(ctx context.Context) ([]ledger.Sale, error) {
	return loadRows[ledger.Sale](ctx, s.rdb, TableKey(s.namespace, TableSold))
}

func (s *Redis) SaveSales(ctx context.Context, sales []ledger.Sale) error {
	return saveRows(ctx, s.rdb, TableKey(s.namespace, TableSold), sales)
}

func loadRows[T any](ctx context.Context, rdb *redis.Client, key string) ([]T, error) {
	values, err := rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from Redis: %w", key, err)
	}
	rows := make([]T, 0, len(values))
	for i, v := range values {
		var row T
		if err := json.Unmarshal([]byte(v), &row); err != nil {
			return nil, fmt.Errorf("failed to decode %s row %d: %w", key, i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func saveRows[T any](ctx context.Context, rdb *redis.Client, key string, rows []T) error {
	values := make([]interface{}, 0, len(rows))
	for i, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to encode %s row %d: %w", key, i, err)
		}
		values = append(values, string(data))
	}

	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(values) > 0 {
			pipe.RPush(ctx, key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write %s to Redis: %w", key, err)
	}
	return nil
}
