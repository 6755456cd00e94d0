package persistence

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// MarshalContractRecord serializes a ContractRecord to JSON bytes.
func MarshalContractRecord(record *ContractRecord) ([]byte, error) {
	if record == nil {
		return nil, errors.New("cannot marshal nil ContractRecord")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal ContractRecord to JSON")
	}

	return data, nil
}

// UnmarshalContractRecord deserializes a ContractRecord from JSON bytes.
func UnmarshalContractRecord(data []byte) (*ContractRecord, error) {
	if len(data) == 0 {
		return nil, errors.New("cannot unmarshal empty data")
	}

	var record ContractRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal JSON to ContractRecord")
	}

	return &record, nil
}
