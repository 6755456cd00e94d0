package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritract/contract-verifier-go/pkg/merkle"
)

func TestMarshalUnmarshalContractRecord(t *testing.T) {
	record := &ContractRecord{
		ID:   "3f1d8c9e-test",
		Name: "supplier-msa-2026",
		Root: merkle.HashData("root"),
		ClauseDigests: []merkle.Digest{
			merkle.HashData("clause one"),
			merkle.HashData("clause two"),
		},
		ClauseCount: 2,
		SealedAt:    1767225600,
	}

	data, err := MarshalContractRecord(record)
	require.NoError(t, err)

	loaded, err := UnmarshalContractRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record, loaded)
}

func TestMarshalContractRecord_Nil(t *testing.T) {
	_, err := MarshalContractRecord(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil ContractRecord")
}

func TestUnmarshalContractRecord_Empty(t *testing.T) {
	_, err := UnmarshalContractRecord(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty data")
}

func TestUnmarshalContractRecord_Malformed(t *testing.T) {
	_, err := UnmarshalContractRecord([]byte("{not json"))
	require.Error(t, err)
}
