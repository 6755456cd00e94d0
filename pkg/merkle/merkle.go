package merkle

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashData computes the SHA-256 digest of the given text and returns it as a
// lowercase hex string. The same encoding is used for leaf hashing and for
// combining internal nodes, which is what makes build, prove and verify agree.
func HashData(data string) Digest {
	sum := sha256.Sum256([]byte(data))
	return Digest(hex.EncodeToString(sum[:]))
}

// BuildTree constructs a binary merkle tree from an ordered sequence of leaf
// digests. Leaf order is semantically significant: it defines the tree shape
// and every proof path, so the input is never sorted or deduplicated.
//
// Levels are built bottom-up, scanning left to right in consecutive pairs.
// If a level has an odd number of nodes, the last node is paired with a
// duplicate of itself; the parent is HashData(left + right). Both rules are
// load-bearing: changing either changes every root.
func BuildTree(leaves []Digest) *Tree {
	if len(leaves) == 0 {
		return &Tree{}
	}

	level0 := make([]Digest, len(leaves))
	copy(level0, leaves)

	levels := [][]Digest{level0}

	currentLevel := level0
	for len(currentLevel) > 1 {
		nextLevel := make([]Digest, 0, (len(currentLevel)+1)/2)

		for i := 0; i < len(currentLevel); i += 2 {
			left := currentLevel[i]

			// Odd number of nodes: duplicate the last one
			right := left
			if i+1 < len(currentLevel) {
				right = currentLevel[i+1]
			}

			nextLevel = append(nextLevel, HashData(string(left)+string(right)))
		}

		levels = append(levels, nextLevel)
		currentLevel = nextLevel
	}

	return &Tree{levels: levels}
}

// Root returns the single digest at the top of the tree, or EmptyRoot if the
// tree was built from zero leaves.
func (t *Tree) Root() Digest {
	if t == nil || len(t.levels) == 0 {
		return EmptyRoot
	}
	top := t.levels[len(t.levels)-1]
	if len(top) == 0 {
		return EmptyRoot
	}
	return top[0]
}

// ContainsLeaf reports whether target occurs at the leaf level. GenerateProof
// returns an empty proof both for a single-leaf tree and for a target that is
// not in the tree; this is the explicit membership signal that tells the two
// apart.
func (t *Tree) ContainsLeaf(target Digest) bool {
	if t == nil || len(t.levels) == 0 {
		return false
	}
	for _, leaf := range t.levels[0] {
		if leaf == target {
			return true
		}
	}
	return false
}

// GenerateProof derives the authentication path for the given leaf digest:
// one (sibling, side) step per level, bottom to top. Each level is scanned in
// the same consecutive-pair grouping BuildTree uses, including the odd-node
// duplication rule, so the recomputed parents match the stored ones exactly.
//
// Returns an empty proof if the target is not found at any level on the way
// up, which signals an unknown digest or a corrupted tree. A single-leaf tree
// also yields an empty proof; use ContainsLeaf to distinguish the two.
func (t *Tree) GenerateProof(target Digest) Proof {
	if t == nil || len(t.levels) == 0 || len(t.levels[0]) == 0 {
		return Proof{}
	}

	proof := make(Proof, 0, len(t.levels)-1)
	current := target

	// Walk every level below the root
	for _, level := range t.levels[:len(t.levels)-1] {
		found := false

		for i := 0; i < len(level); i += 2 {
			left := level[i]

			// Same odd-node duplication as BuildTree
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}

			if current == left {
				proof = append(proof, ProofStep{Sibling: right, Side: SideRight})
				current = HashData(string(left) + string(right))
				found = true
				break
			}
			if current == right {
				proof = append(proof, ProofStep{Sibling: left, Side: SideLeft})
				current = HashData(string(left) + string(right))
				found = true
				break
			}
		}

		if !found {
			return Proof{}
		}
	}

	return proof
}

// VerifyProof recomputes the root from a target digest and its authentication
// path and compares it to the expected root. A SideLeft sibling is prepended,
// a SideRight sibling is appended, mirroring the left-then-right concatenation
// BuildTree uses.
//
// An empty proof degenerates to target == expectedRoot, which is the correct
// answer for a single-leaf tree. Digest mismatches are reported as false, not
// as errors.
func VerifyProof(proof Proof, target Digest, expectedRoot Digest) bool {
	computed := target

	for _, step := range proof {
		switch step.Side {
		case SideLeft:
			computed = HashData(string(step.Sibling) + string(computed))
		case SideRight:
			computed = HashData(string(computed) + string(step.Sibling))
		default:
			// Unreachable for proofs built by this package or decoded
			// from JSON; a hand-forged side fails closed.
			return false
		}
	}

	return computed == expectedRoot
}
