package contract

import "github.com/veritract/contract-verifier-go/pkg/merkle"

// ClauseStatus is the comparison outcome for one clause position present in
// both documents.
type ClauseStatus struct {
	// Index is the zero-based clause position.
	Index int

	// Match is true when both documents carry an identical clause digest
	// at this position.
	Match bool

	// ClauseA and ClauseB are the clause texts, filled in so a reporter
	// can show the difference without re-parsing the documents.
	ClauseA string
	ClauseB string
}

// Comparison is the result of comparing two documents. Roots are compared
// first; the clause-level breakdown is populated only when they differ.
type Comparison struct {
	RootA merkle.Digest
	RootB merkle.Digest

	// Identical is true when the roots match, which by collision
	// resistance means every clause matches in content and order.
	Identical bool

	// Clauses covers positions present in both documents, in order.
	// Empty when Identical.
	Clauses []ClauseStatus

	// AdditionalA and AdditionalB hold clauses present only in the longer
	// document. At most one of the two is non-empty.
	AdditionalA []string
	AdditionalB []string
}

// Compare checks two documents for equality by their merkle roots and, when
// they differ, pinpoints the diverging clauses digest by digest. Two empty
// documents share the empty-root sentinel and compare as identical.
func Compare(a, b *Document) *Comparison {
	result := &Comparison{
		RootA: a.Root(),
		RootB: b.Root(),
	}

	if result.RootA == result.RootB {
		result.Identical = true
		return result
	}

	common := len(a.Digests)
	if len(b.Digests) < common {
		common = len(b.Digests)
	}

	result.Clauses = make([]ClauseStatus, common)
	for i := 0; i < common; i++ {
		result.Clauses[i] = ClauseStatus{
			Index:   i,
			Match:   a.Digests[i] == b.Digests[i],
			ClauseA: a.Clauses[i],
			ClauseB: b.Clauses[i],
		}
	}

	if len(a.Clauses) > common {
		result.AdditionalA = append([]string{}, a.Clauses[common:]...)
	}
	if len(b.Clauses) > common {
		result.AdditionalB = append([]string{}, b.Clauses[common:]...)
	}

	return result
}
