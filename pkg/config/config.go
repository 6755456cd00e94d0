package config

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for verifier configuration
const (
	EnvVerifierStoreType     = "VERIFIER_STORE_TYPE"
	EnvVerifierStorePath     = "VERIFIER_STORE_PATH"
	EnvVerifierRedisAddress  = "VERIFIER_REDIS_ADDRESS"
	EnvVerifierRedisPassword = "VERIFIER_REDIS_PASSWORD"
	EnvVerifierRedisDB       = "VERIFIER_REDIS_DB"
	EnvVerifierRedisPrefix   = "VERIFIER_REDIS_PREFIX"
	EnvVerifierVerbose       = "VERIFIER_VERBOSE"
)

// StoreType selects the record store backend.
type StoreType string

func (s StoreType) String() string {
	return string(s)
}

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeBadger StoreType = "badger"
	StoreTypeRedis  StoreType = "redis"
)

// SupportedStoreTypes returns all supported store backends.
func SupportedStoreTypes() []StoreType {
	return []StoreType{StoreTypeMemory, StoreTypeBadger, StoreTypeRedis}
}

// SupportedStoreTypesString returns the supported backends for CLI help.
func SupportedStoreTypesString() string {
	return fmt.Sprintf("%s (testing), %s (embedded), %s (shared)",
		StoreTypeMemory, StoreTypeBadger, StoreTypeRedis)
}

// VerifierConfig represents the complete configuration for the contract
// verifier CLI. The core merkle library takes no configuration; everything
// here selects and parameterizes the record store and logging.
type VerifierConfig struct {
	// Record store selection
	StoreType StoreType `json:"store_type"`
	StorePath string    `json:"store_path"` // Badger data directory

	// Redis connection (only used when StoreType is "redis")
	RedisAddress  string `json:"redis_address"`
	RedisPassword string `json:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db"`
	RedisPrefix   string `json:"redis_prefix,omitempty"`

	// Operational settings
	Verbose bool `json:"verbose"`
}

// DefaultConfig returns a config suitable for local experimentation.
func DefaultConfig() *VerifierConfig {
	return &VerifierConfig{
		StoreType: StoreTypeMemory,
		StorePath: "./verifier-data",
	}
}

// Validate validates the verifier configuration.
func (c *VerifierConfig) Validate() error {
	var allErrors field.ErrorList

	switch c.StoreType {
	case StoreTypeMemory:
		// No further settings needed
	case StoreTypeBadger:
		if c.StorePath == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("storePath"),
				"storePath is required for the badger store"))
		}
	case StoreTypeRedis:
		if c.RedisAddress == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("redisAddress"),
				"redisAddress is required for the redis store"))
		}
		if c.RedisDB < 0 || c.RedisDB > 15 {
			allErrors = append(allErrors, field.Invalid(field.NewPath("redisDB"),
				c.RedisDB, "redis DB must be between 0 and 15"))
		}
	default:
		allErrors = append(allErrors, field.NotSupported(field.NewPath("storeType"),
			c.StoreType, []string{string(StoreTypeMemory), string(StoreTypeBadger), string(StoreTypeRedis)}))
	}

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}
