package contract

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/veritract/contract-verifier-go/pkg/merkle"
)

// ExtractClauses splits contract text into clauses, one per non-empty line.
// Leading/trailing document whitespace is trimmed, whitespace-only lines are
// dropped, and the original order and inner spacing of each clause are kept.
// Order matters: the clause sequence defines the tree shape and every proof.
func ExtractClauses(text string) []string {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	clauses := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		clauses = append(clauses, line)
	}
	return clauses
}

// DigestClauses hashes each clause into a leaf digest, preserving order.
func DigestClauses(clauses []string) []merkle.Digest {
	digests := make([]merkle.Digest, len(clauses))
	for i, clause := range clauses {
		digests[i] = merkle.HashData(clause)
	}
	return digests
}

// Document is a parsed contract: its clauses, their digests and the merkle
// tree built over them. Documents are immutable; changed text means a new
// Document and a full tree rebuild.
type Document struct {
	Title   string
	Clauses []string
	Digests []merkle.Digest

	tree *merkle.Tree
}

// NewDocument parses contract text into clauses and builds its merkle tree.
// An empty or whitespace-only document is valid and gets the empty-root
// sentinel.
func NewDocument(title, text string) *Document {
	clauses := ExtractClauses(text)
	digests := DigestClauses(clauses)

	return &Document{
		Title:   title,
		Clauses: clauses,
		Digests: digests,
		tree:    merkle.BuildTree(digests),
	}
}

// Tree returns the document's merkle tree.
func (d *Document) Tree() *merkle.Tree {
	return d.tree
}

// Root returns the document's merkle root, the single fingerprint summarizing
// every clause in order.
func (d *Document) Root() merkle.Digest {
	return d.tree.Root()
}

// ProveClause generates the authentication path for the clause at the given
// index.
func (d *Document) ProveClause(index int) (merkle.Proof, error) {
	if index < 0 || index >= len(d.Clauses) {
		return nil, errors.Errorf("clause index %d out of bounds (document has %d clauses)", index, len(d.Clauses))
	}
	return d.tree.GenerateProof(d.Digests[index]), nil
}
