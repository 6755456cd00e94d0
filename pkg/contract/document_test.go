package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritract/contract-verifier-go/pkg/merkle"
)

const sampleContract = `
Clause 1: The buyer agrees to pay in full within 30 days.
Clause 2: The seller provides a 1-year warranty.
Clause 3: All disputes will be settled in California.
`

func TestExtractClauses(t *testing.T) {
	t.Run("Plain document", func(t *testing.T) {
		clauses := ExtractClauses(sampleContract)
		require.Len(t, clauses, 3)
		assert.Equal(t, "Clause 1: The buyer agrees to pay in full within 30 days.", clauses[0])
		assert.Equal(t, "Clause 3: All disputes will be settled in California.", clauses[2])
	})

	t.Run("Blank and whitespace-only lines dropped", func(t *testing.T) {
		clauses := ExtractClauses("first\n\n   \n\t\nsecond\n")
		require.Equal(t, []string{"first", "second"}, clauses)
	})

	t.Run("Inner spacing preserved", func(t *testing.T) {
		clauses := ExtractClauses("  padded   clause  ")
		require.Len(t, clauses, 1)
		// Only document-level trimming happens; the clause itself keeps
		// the spacing it had on its line. A trailing space is content:
		// "California." and "California ." must digest differently.
		assert.Contains(t, clauses[0], "padded   clause")
	})

	t.Run("Empty document", func(t *testing.T) {
		assert.Empty(t, ExtractClauses(""))
		assert.Empty(t, ExtractClauses("   \n \n\t"))
	})
}

func TestDigestClauses(t *testing.T) {
	clauses := ExtractClauses(sampleContract)
	digests := DigestClauses(clauses)

	require.Len(t, digests, len(clauses))
	for i, clause := range clauses {
		assert.Equal(t, merkle.HashData(clause), digests[i])
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("v1", sampleContract)

	require.Len(t, doc.Clauses, 3)
	require.Len(t, doc.Digests, 3)
	assert.Equal(t, "v1", doc.Title)
	assert.Equal(t, doc.Digests, doc.Tree().Leaves())
	assert.NotEqual(t, merkle.EmptyRoot, doc.Root())

	// Same text, same root
	assert.Equal(t, doc.Root(), NewDocument("copy", sampleContract).Root())
}

func TestNewDocumentEmpty(t *testing.T) {
	doc := NewDocument("empty", "\n  \n")

	assert.Empty(t, doc.Clauses)
	assert.Equal(t, merkle.EmptyRoot, doc.Root())
	assert.Equal(t, 0, doc.Tree().Depth())
}

func TestProveClause(t *testing.T) {
	doc := NewDocument("v1", sampleContract)

	for i := range doc.Clauses {
		proof, err := doc.ProveClause(i)
		require.NoError(t, err)
		assert.True(t, merkle.VerifyProof(proof, doc.Digests[i], doc.Root()), "clause %d", i)
	}

	t.Run("Negative index", func(t *testing.T) {
		_, err := doc.ProveClause(-1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of bounds")
	})

	t.Run("Index out of bounds", func(t *testing.T) {
		_, err := doc.ProveClause(3)
		require.Error(t, err)
	})
}
