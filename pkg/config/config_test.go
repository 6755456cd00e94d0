package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     VerifierConfig
		wantErr string
	}{
		{
			name: "Memory store needs nothing else",
			cfg:  VerifierConfig{StoreType: StoreTypeMemory},
		},
		{
			name: "Badger store with path",
			cfg:  VerifierConfig{StoreType: StoreTypeBadger, StorePath: "/var/lib/verifier"},
		},
		{
			name:    "Badger store without path",
			cfg:     VerifierConfig{StoreType: StoreTypeBadger},
			wantErr: "storePath",
		},
		{
			name: "Redis store with address",
			cfg:  VerifierConfig{StoreType: StoreTypeRedis, RedisAddress: "localhost:6379", RedisDB: 3},
		},
		{
			name:    "Redis store without address",
			cfg:     VerifierConfig{StoreType: StoreTypeRedis},
			wantErr: "redisAddress",
		},
		{
			name:    "Redis DB out of range",
			cfg:     VerifierConfig{StoreType: StoreTypeRedis, RedisAddress: "localhost:6379", RedisDB: 16},
			wantErr: "redisDB",
		},
		{
			name:    "Unknown store type",
			cfg:     VerifierConfig{StoreType: "postgres"},
			wantErr: "storeType",
		},
		{
			name:    "Empty store type",
			cfg:     VerifierConfig{},
			wantErr: "storeType",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, StoreTypeMemory, cfg.StoreType)
}

func TestSupportedStoreTypes(t *testing.T) {
	assert.Len(t, SupportedStoreTypes(), 3)
	assert.Contains(t, SupportedStoreTypesString(), "badger")
}
