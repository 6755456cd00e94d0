package merkle

import (
	"fmt"
	"testing"
)

// benchLeaves creates n distinct leaf digests
func benchLeaves(n int) []Digest {
	leaves := make([]Digest, n)
	for i := 0; i < n; i++ {
		leaves[i] = HashData(fmt.Sprintf("clause-%d", i))
	}
	return leaves
}

// BenchmarkBuildTree benchmarks tree construction with various sizes
func BenchmarkBuildTree(b *testing.B) {
	sizes := []int{10, 50, 100, 500}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Leaves_%d", size), func(b *testing.B) {
			leaves := benchLeaves(size)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = BuildTree(leaves)
			}
		})
	}
}

// BenchmarkGenerateProof benchmarks proof generation
func BenchmarkGenerateProof(b *testing.B) {
	sizes := []int{10, 50, 100, 500}

	for _, size := range sizes {
		leaves := benchLeaves(size)
		tree := BuildTree(leaves)

		b.Run(fmt.Sprintf("Leaves_%d", size), func(b *testing.B) {
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = tree.GenerateProof(leaves[i%size])
			}
		})
	}
}

// BenchmarkVerifyProof benchmarks proof verification
func BenchmarkVerifyProof(b *testing.B) {
	sizes := []int{10, 50, 100, 500}

	for _, size := range sizes {
		leaves := benchLeaves(size)
		tree := BuildTree(leaves)
		proof := tree.GenerateProof(leaves[0])
		root := tree.Root()

		b.Run(fmt.Sprintf("Leaves_%d", size), func(b *testing.B) {
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = VerifyProof(proof, leaves[0], root)
			}
		})
	}
}

// BenchmarkHashData benchmarks clause hashing
func BenchmarkHashData(b *testing.B) {
	clause := "The buyer agrees to pay in full within 30 days."

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = HashData(clause)
	}
}
