package registry

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/veritract/contract-verifier-go/pkg/contract"
	"github.com/veritract/contract-verifier-go/pkg/merkle"
	"github.com/veritract/contract-verifier-go/pkg/persistence"
)

// Registry seals contract fingerprints into a record store and checks later
// document versions against them. Only derived digests are stored; every
// check rebuilds the presented document's tree from its text.
type Registry struct {
	store  persistence.IRecordStore
	logger *zap.Logger
}

// CheckResult is the outcome of checking a document against a sealed record.
type CheckResult struct {
	// Record is the sealed record the document was checked against.
	Record *persistence.ContractRecord

	// RootMatch is true when the presented document reproduces the sealed
	// root exactly.
	RootMatch bool

	// DriftedClauses lists the indexes (over the common clause prefix)
	// whose digests no longer match the sealed ones.
	DriftedClauses []int

	// ClauseCountDelta is presented count minus sealed count. Non-zero
	// means clauses were added or removed.
	ClauseCountDelta int
}

// NewRegistry creates a registry over the given record store.
func NewRegistry(store persistence.IRecordStore, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		store:  store,
		logger: logger,
	}
}

// Seal fingerprints a document and stores the record under the given name,
// overwriting any previous seal with that name.
func (r *Registry) Seal(name string, doc *contract.Document) (*persistence.ContractRecord, error) {
	if name == "" {
		return nil, errors.New("record name cannot be empty")
	}
	if doc == nil {
		return nil, errors.New("cannot seal nil document")
	}

	digests := make([]merkle.Digest, len(doc.Digests))
	copy(digests, doc.Digests)

	record := &persistence.ContractRecord{
		ID:            uuid.New().String(),
		Name:          name,
		Root:          doc.Root(),
		ClauseDigests: digests,
		ClauseCount:   len(digests),
		SealedAt:      time.Now().Unix(),
	}

	if err := r.store.SaveRecord(record); err != nil {
		return nil, errors.Wrapf(err, "failed to seal record %q", name)
	}

	r.logger.Sugar().Infow("Sealed contract record",
		"name", name, "id", record.ID, "root", record.Root, "clauses", record.ClauseCount)

	return record, nil
}

// Check compares a document against the sealed record with the given name.
// Returns an error if no record exists under that name.
func (r *Registry) Check(name string, doc *contract.Document) (*CheckResult, error) {
	if doc == nil {
		return nil, errors.New("cannot check nil document")
	}

	record, err := r.store.LoadRecord(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load record %q", name)
	}
	if record == nil {
		return nil, errors.Errorf("no sealed record named %q", name)
	}

	result := &CheckResult{
		Record:           record,
		RootMatch:        doc.Root() == record.Root,
		ClauseCountDelta: len(doc.Digests) - record.ClauseCount,
	}

	if !result.RootMatch {
		common := len(doc.Digests)
		if record.ClauseCount < common {
			common = record.ClauseCount
		}
		for i := 0; i < common; i++ {
			if doc.Digests[i] != record.ClauseDigests[i] {
				result.DriftedClauses = append(result.DriftedClauses, i)
			}
		}
	}

	r.logger.Sugar().Debugw("Checked document against sealed record",
		"name", name, "rootMatch", result.RootMatch,
		"driftedClauses", len(result.DriftedClauses), "clauseCountDelta", result.ClauseCountDelta)

	return result, nil
}

// Get returns the sealed record with the given name, or nil if none exists.
func (r *Registry) Get(name string) (*persistence.ContractRecord, error) {
	record, err := r.store.LoadRecord(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load record %q", name)
	}
	return record, nil
}

// List returns all sealed records sorted by name.
func (r *Registry) List() ([]*persistence.ContractRecord, error) {
	records, err := r.store.ListRecords()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list records")
	}
	return records, nil
}

// Forget removes the sealed record with the given name. Idempotent.
func (r *Registry) Forget(name string) error {
	if err := r.store.DeleteRecord(name); err != nil {
		return errors.Wrapf(err, "failed to delete record %q", name)
	}
	r.logger.Sugar().Infow("Forgot contract record", "name", name)
	return nil
}
