package merkle

import (
	"encoding/json"
	"fmt"
)

// Digest is a lowercase hexadecimal SHA-256 fingerprint. Digests are opaque
// values compared only for equality; any fixed-length string is accepted.
type Digest string

// EmptyRoot is the sentinel root returned for a tree built from zero leaves.
// Two empty clause sequences therefore compare as identical.
const EmptyRoot = Digest("EMPTY_CONTRACT")

// Side denotes the position of a proof sibling relative to the node being
// authenticated at that level. It is a closed two-variant tag; the JSON codec
// rejects anything other than "left" and "right", so a malformed side never
// enters a Proof.
type Side int

const (
	// SideLeft means the sibling sits to the left of the authenticated node.
	SideLeft Side = iota

	// SideRight means the sibling sits to the right of the authenticated node.
	SideRight
)

// String returns the wire name of the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// MarshalJSON encodes the side as "left" or "right".
func (s Side) MarshalJSON() ([]byte, error) {
	switch s {
	case SideLeft, SideRight:
		return json.Marshal(s.String())
	default:
		return nil, fmt.Errorf("invalid proof step side: %d", int(s))
	}
}

// UnmarshalJSON decodes "left" or "right", rejecting anything else.
func (s *Side) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "left":
		*s = SideLeft
	case "right":
		*s = SideRight
	default:
		return fmt.Errorf("invalid proof step side: %q", name)
	}
	return nil
}

// ProofStep is one level of an authentication path: the sibling digest and
// which side of the pair it occupied.
type ProofStep struct {
	Sibling Digest `json:"sibling"`
	Side    Side   `json:"side"`
}

// Proof is an ordered bottom-to-top authentication path from a leaf to the
// root. A proof for a leaf in a tree of n levels has exactly n-1 steps.
//
// An empty proof means either a single-leaf tree (target == root) or that the
// target was not found; callers disambiguate with Tree.ContainsLeaf.
type Proof []ProofStep

// Tree is an immutable binary Merkle tree stored level by level.
// levels[0] holds the leaf digests in insertion order; each subsequent level
// holds ceil(len(previous)/2) parent digests; the final level is the root.
// A tree built from zero leaves has zero levels.
//
// Trees are never mutated after construction, so concurrent reads need no
// coordination. A changed leaf sequence requires a full rebuild.
type Tree struct {
	levels [][]Digest
}

// Leaves returns a copy of level 0, or nil for an empty tree.
func (t *Tree) Leaves() []Digest {
	if t == nil || len(t.levels) == 0 {
		return nil
	}
	leaves := make([]Digest, len(t.levels[0]))
	copy(leaves, t.levels[0])
	return leaves
}

// Depth returns the number of levels, including the leaf level.
func (t *Tree) Depth() int {
	if t == nil {
		return 0
	}
	return len(t.levels)
}
