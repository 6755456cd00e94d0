package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/veritract/contract-verifier-go/pkg/merkle"
	"github.com/veritract/contract-verifier-go/pkg/persistence"
)

// MemoryStore is an in-memory implementation of IRecordStore.
// This implementation is intended for TESTING ONLY.
//
// All data is stored in memory and will be lost when the process exits.
// Thread-safe using sync.RWMutex for concurrent access.
// Deep copies data to prevent external mutation.
type MemoryStore struct {
	mu sync.RWMutex

	// Record storage: name -> ContractRecord
	records map[string]*persistence.ContractRecord

	// Closed flag
	closed bool
}

// NewMemoryStore creates a new in-memory record store.
// Prints a loud warning since this should only be used for testing.
func NewMemoryStore() *MemoryStore {
	fmt.Println("⚠️  WARNING: Using in-memory store - ALL SEALED RECORDS WILL BE LOST ON EXIT")
	fmt.Println("⚠️  This should ONLY be used for testing. Set VERIFIER_STORE_TYPE=badger to persist records")

	return &MemoryStore{
		records: make(map[string]*persistence.ContractRecord),
	}
}

// SaveRecord persists a contract record.
func (m *MemoryStore) SaveRecord(record *persistence.ContractRecord) error {
	if record == nil {
		return fmt.Errorf("cannot save nil ContractRecord")
	}
	if record.Name == "" {
		return fmt.Errorf("cannot save ContractRecord with empty name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("record store is closed")
	}

	// Deep copy to prevent external mutation
	m.records[record.Name] = deepCopyContractRecord(record)

	return nil
}

// LoadRecord retrieves a contract record by name.
func (m *MemoryStore) LoadRecord(name string) (*persistence.ContractRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, fmt.Errorf("record store is closed")
	}

	record, exists := m.records[name]
	if !exists {
		return nil, nil // Not found is not an error
	}

	// Deep copy to prevent external mutation
	return deepCopyContractRecord(record), nil
}

// ListRecords returns all records sorted by name.
func (m *MemoryStore) ListRecords() ([]*persistence.ContractRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, fmt.Errorf("record store is closed")
	}

	// Collect names and sort
	names := make([]string, 0, len(m.records))
	for name := range m.records {
		names = append(names, name)
	}
	sort.Strings(names)

	// Build sorted list with deep copies
	result := make([]*persistence.ContractRecord, 0, len(names))
	for _, name := range names {
		result = append(result, deepCopyContractRecord(m.records[name]))
	}

	return result, nil
}

// DeleteRecord removes a contract record.
func (m *MemoryStore) DeleteRecord(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("record store is closed")
	}

	delete(m.records, name)
	return nil
}

// Close shuts down the store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// HealthCheck verifies the store is operational.
func (m *MemoryStore) HealthCheck() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return fmt.Errorf("record store is closed")
	}

	return nil
}

func deepCopyContractRecord(r *persistence.ContractRecord) *persistence.ContractRecord {
	if r == nil {
		return nil
	}

	digests := make([]merkle.Digest, len(r.ClauseDigests))
	copy(digests, r.ClauseDigests)

	return &persistence.ContractRecord{
		ID:            r.ID,
		Name:          r.Name,
		Root:          r.Root,
		ClauseDigests: digests,
		ClauseCount:   r.ClauseCount,
		SealedAt:      r.SealedAt,
	}
}
