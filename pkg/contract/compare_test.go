package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractV1 = `
Clause 1: The buyer agrees to pay in full within 30 days.
Clause 2: The seller provides a 1-year warranty.
Clause 3: All disputes will be settled in California.
`

const contractV2 = `
Clause 1: The buyer agrees to pay in full within 30 days.
Clause 2: The seller provides a 2-year warranty.
Clause 3: All disputes will be settled in California .
`

const contractV4 = `
Clause 1: The buyer agrees to pay in full within 30 days.
Clause 2: The seller provides a 1-year warranty.
Clause 3: All disputes will be settled in California.
Clause 4: An additional clause.
`

func TestCompareIdentical(t *testing.T) {
	a := NewDocument("v1", contractV1)
	b := NewDocument("v3", contractV1)

	result := Compare(a, b)
	assert.True(t, result.Identical)
	assert.Equal(t, result.RootA, result.RootB)
	assert.Empty(t, result.Clauses)
	assert.Empty(t, result.AdditionalA)
	assert.Empty(t, result.AdditionalB)
}

func TestCompareChangedClauses(t *testing.T) {
	a := NewDocument("v1", contractV1)
	b := NewDocument("v2", contractV2)

	result := Compare(a, b)
	require.False(t, result.Identical)
	require.Len(t, result.Clauses, 3)

	assert.True(t, result.Clauses[0].Match)

	// Clause 2 changed wording, clause 3 only gained a space before the
	// period; both must be flagged.
	assert.False(t, result.Clauses[1].Match)
	assert.Equal(t, "Clause 2: The seller provides a 1-year warranty.", result.Clauses[1].ClauseA)
	assert.Equal(t, "Clause 2: The seller provides a 2-year warranty.", result.Clauses[1].ClauseB)
	assert.False(t, result.Clauses[2].Match)

	assert.Empty(t, result.AdditionalA)
	assert.Empty(t, result.AdditionalB)
}

func TestCompareExtraClauses(t *testing.T) {
	a := NewDocument("v1", contractV1)
	b := NewDocument("v4", contractV4)

	result := Compare(a, b)
	require.False(t, result.Identical)
	require.Len(t, result.Clauses, 3)
	for _, status := range result.Clauses {
		assert.True(t, status.Match, "clause %d", status.Index)
	}

	assert.Empty(t, result.AdditionalA)
	require.Len(t, result.AdditionalB, 1)
	assert.Equal(t, "Clause 4: An additional clause.", result.AdditionalB[0])

	// Symmetric direction
	reverse := Compare(b, a)
	require.Len(t, reverse.AdditionalA, 1)
	assert.Empty(t, reverse.AdditionalB)
}

func TestCompareEmptyDocuments(t *testing.T) {
	a := NewDocument("a", "")
	b := NewDocument("b", "  \n ")

	result := Compare(a, b)
	assert.True(t, result.Identical, "two empty documents are vacuously equal")
}

func TestCompareEmptyAgainstNonEmpty(t *testing.T) {
	a := NewDocument("a", "")
	b := NewDocument("b", contractV1)

	result := Compare(a, b)
	require.False(t, result.Identical)
	assert.Empty(t, result.Clauses)
	assert.Len(t, result.AdditionalB, 3)
}
