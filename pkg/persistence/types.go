package persistence

import "github.com/veritract/contract-verifier-go/pkg/merkle"

// ContractRecord is a sealed contract fingerprint: the derived digests of a
// document at the moment it was sealed. Only derived values are stored - never
// the tree itself - so a later check always rebuilds the tree from the
// presented text and compares against these digests.
type ContractRecord struct {
	// ID is a unique identifier assigned when the record is sealed.
	ID string `json:"id"`

	// Name is the caller-chosen lookup key, e.g. "supplier-msa-2026".
	// Sealing again under the same name overwrites the record.
	Name string `json:"name"`

	// Root is the merkle root over the clause digests.
	Root merkle.Digest `json:"root"`

	// ClauseDigests are the leaf digests in clause order. Kept so a check
	// can pinpoint which clauses drifted, not just that the root changed.
	ClauseDigests []merkle.Digest `json:"clauseDigests"`

	// ClauseCount is len(ClauseDigests), stored for quick listings.
	ClauseCount int `json:"clauseCount"`

	// SealedAt is the Unix timestamp when the record was created.
	SealedAt int64 `json:"sealedAt"`
}
