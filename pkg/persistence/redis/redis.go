package redis

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/veritract/contract-verifier-go/pkg/persistence"
)

// Key prefixes for namespacing in Redis
const (
	keyPrefixRecord      = "verifier:record:"
	keySchemaVersion     = "verifier:metadata:schema_version"
	currentSchemaVersion = "v1"

	// Key set for listing operations (Redis doesn't support prefix iteration natively)
	keySetRecords = "verifier:records:index"
)

// RedisStore is an IRecordStore implementation backed by Redis, suitable for
// deployments where several verifiers share one set of sealed fingerprints.
type RedisStore struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string // Custom prefix for all keys
	mu        sync.RWMutex
	closed    bool
}

// RedisConfig holds the configuration for connecting to Redis
type RedisConfig struct {
	// Address is the Redis server address (host:port)
	Address string
	// Password is the optional Redis password
	Password string
	// DB is the Redis database number (0-15)
	DB int
	// KeyPrefix is an optional custom prefix for all keys (for multi-tenant
	// setups). If set, this prefix is prepended to all keys, e.g. "legal:"
	// would result in keys like "legal:verifier:record:msa". If empty, keys
	// use the default "verifier:" prefix.
	KeyPrefix string
}

// NewRedisStore creates a new Redis-backed record store.
func NewRedisStore(cfg *RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	if cfg == nil {
		return nil, errors.New("redis config cannot be nil")
	}

	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	// Create Redis client options
	opts := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	// Create Redis client
	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to connect to Redis at %s", cfg.Address)
	}

	rs := &RedisStore{
		client:    client,
		logger:    logger,
		keyPrefix: cfg.KeyPrefix,
	}

	// Initialize schema version
	if err := rs.initSchema(ctx); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to initialize schema")
	}

	if cfg.KeyPrefix != "" {
		logger.Sugar().Infow("Redis record store initialized", "address", cfg.Address, "db", cfg.DB, "key_prefix", cfg.KeyPrefix)
	} else {
		logger.Sugar().Infow("Redis record store initialized", "address", cfg.Address, "db", cfg.DB)
	}

	return rs, nil
}

// prefixKey adds the custom key prefix (if configured) to a key
func (r *RedisStore) prefixKey(key string) string {
	if r.keyPrefix == "" {
		return key
	}
	return r.keyPrefix + key
}

// initSchema initializes or validates the schema version
func (r *RedisStore) initSchema(ctx context.Context) error {
	schemaKey := r.prefixKey(keySchemaVersion)

	// Check if schema version exists
	existingVersion, err := r.client.Get(ctx, schemaKey).Result()
	if err == redis.Nil {
		// First time setup - set schema version
		return r.client.Set(ctx, schemaKey, currentSchemaVersion, 0).Err()
	}
	if err != nil {
		return errors.Wrap(err, "failed to read schema version")
	}

	// Validate existing schema version
	if existingVersion != currentSchemaVersion {
		return errors.Errorf("unsupported schema version: %s (expected: %s)", existingVersion, currentSchemaVersion)
	}

	return nil
}

// SaveRecord persists a contract record
func (r *RedisStore) SaveRecord(record *persistence.ContractRecord) error {
	if record == nil {
		return errors.New("cannot save nil ContractRecord")
	}
	if record.Name == "" {
		return errors.New("cannot save ContractRecord with empty name")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return errors.New("record store is closed")
	}

	ctx := context.Background()

	// Serialize to JSON
	data, err := persistence.MarshalContractRecord(record)
	if err != nil {
		return errors.Wrap(err, "failed to marshal ContractRecord")
	}

	// Store in Redis using a pipeline for atomicity
	key := r.prefixKey(keyPrefixRecord + record.Name)
	indexKey := r.prefixKey(keySetRecords)
	pipe := r.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, indexKey, record.Name) // Add to index set

	_, err = pipe.Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to save ContractRecord")
	}

	return nil
}

// LoadRecord retrieves a contract record by name
func (r *RedisStore) LoadRecord(name string) (*persistence.ContractRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, errors.New("record store is closed")
	}

	ctx := context.Background()
	key := r.prefixKey(keyPrefixRecord + name)

	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Not found is not an error
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ContractRecord")
	}

	// Deserialize from JSON
	record, err := persistence.UnmarshalContractRecord(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal ContractRecord")
	}

	return record, nil
}

// ListRecords returns all contract records sorted by name
func (r *RedisStore) ListRecords() ([]*persistence.ContractRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, errors.New("record store is closed")
	}

	ctx := context.Background()
	indexKey := r.prefixKey(keySetRecords)

	// Fetch all names from the index set
	names, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list record index")
	}
	sort.Strings(names)

	records := make([]*persistence.ContractRecord, 0, len(names))
	for _, name := range names {
		key := r.prefixKey(keyPrefixRecord + name)

		data, err := r.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			// Index entry without a record; clean it up and move on
			r.logger.Sugar().Warnw("Dangling record index entry, removing", "name", name)
			r.client.SRem(ctx, indexKey, name)
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load ContractRecord %q", name)
		}

		record, err := persistence.UnmarshalContractRecord(data)
		if err != nil {
			r.logger.Sugar().Warnw("Failed to unmarshal ContractRecord, skipping",
				"name", name, "error", err)
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

// DeleteRecord removes a contract record
func (r *RedisStore) DeleteRecord(name string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return errors.New("record store is closed")
	}

	ctx := context.Background()
	key := r.prefixKey(keyPrefixRecord + name)
	indexKey := r.prefixKey(keySetRecords)

	pipe := r.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, indexKey, name)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete ContractRecord")
	}

	return nil
}

// Close shuts down the store
func (r *RedisStore) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil // Already closed, idempotent
	}
	r.closed = true

	if err := r.client.Close(); err != nil {
		return errors.Wrap(err, "failed to close redis client")
	}

	r.logger.Sugar().Info("Redis record store closed")
	return nil
}

// HealthCheck verifies the store is operational
func (r *RedisStore) HealthCheck() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return errors.New("record store is closed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "redis ping failed")
	}

	return nil
}
