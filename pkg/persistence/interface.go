package persistence

// IRecordStore defines the interface for storing sealed contract records.
// All implementations must be thread-safe.
//
// Records are keyed by name; saving under an existing name overwrites the
// previous record. Not-found is signaled by a nil record, never by an error -
// errors are reserved for storage failures.
type IRecordStore interface {
	// SaveRecord persists a contract record under its Name.
	// Overwrites any existing record with the same name.
	SaveRecord(record *ContractRecord) error

	// LoadRecord retrieves a contract record by name.
	// Returns nil if the record doesn't exist, error only on storage failure.
	LoadRecord(name string) (*ContractRecord, error)

	// ListRecords returns all records sorted by name (ascending).
	// Returns an empty slice if no records exist.
	ListRecords() ([]*ContractRecord, error)

	// DeleteRecord removes a record by name.
	// Idempotent - returns nil if the record doesn't exist.
	DeleteRecord(name string) error

	// Close cleanly shuts down the store.
	// Idempotent - safe to call multiple times.
	// After Close(), all other operations return errors.
	Close() error

	// HealthCheck verifies the store is operational.
	// Returns nil if healthy, error describing the problem if not.
	HealthCheck() error
}
