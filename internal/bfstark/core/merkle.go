package core

import (
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Digest is a leaf/node hash, fixed at 32 bytes (sha3-256).
type Digest [32]byte

func hashLeaf(data []byte) Digest {
	return sha3.Sum256(data)
}

func hashNode(left, right Digest) Digest {
	buf := make([]byte, 0, 64)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return sha3.Sum256(buf)
}

// MerkleTree is a binary Merkle tree over a power-of-two number of leaves,
// used by the verifier to authenticate the base, extension, and composition
// trace columns it opens at queried positions (spec §4.7 step 12). Building
// trees is out of this module's scope (the prover's commitment construction
// is external per spec §1); MerkleTree exists here only so the verifier has
// a concrete VerifyProof to call, and so the module's own tests can build
// fixtures without an external dependency.
type MerkleTree struct {
	leaves []Digest
	levels [][]Digest
}

// MerkleProof is an authentication path from a leaf to the root.
type MerkleProof struct {
	LeafIndex int
	Siblings  []Digest
}

// NewMerkleTree builds a tree over the given leaf byte-strings. The number
// of leaves must be a power of two.
func NewMerkleTree(leafData [][]byte) (*MerkleTree, error) {
	if !IsPowerOfTwo(len(leafData)) {
		return nil, fmt.Errorf("merkle tree requires a power-of-two leaf count, got %d", len(leafData))
	}
	leaves := make([]Digest, len(leafData))
	for i, d := range leafData {
		leaves[i] = hashLeaf(d)
	}
	levels := [][]Digest{leaves}
	current := leaves
	for len(current) > 1 {
		next := make([]Digest, len(current)/2)
		for i := range next {
			next[i] = hashNode(current[2*i], current[2*i+1])
		}
		levels = append(levels, next)
		current = next
	}
	return &MerkleTree{leaves: leaves, levels: levels}, nil
}

// Root returns the tree's root digest.
func (t *MerkleTree) Root() Digest {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Prove returns the authentication path for the leaf at index.
func (t *MerkleTree) Prove(index int) (*MerkleProof, error) {
	if index < 0 || index >= len(t.leaves) {
		return nil, fmt.Errorf("leaf index %d out of range [0,%d)", index, len(t.leaves))
	}
	siblings := make([]Digest, 0, len(t.levels)-1)
	idx := index
	for level := 0; level < len(t.levels)-1; level++ {
		siblingIdx := idx ^ 1
		siblings = append(siblings, t.levels[level][siblingIdx])
		idx /= 2
	}
	return &MerkleProof{LeafIndex: index, Siblings: siblings}, nil
}

// VerifyProof recomputes the path from leafData up to the root and checks
// it against the expected root. This is the one cryptographic primitive
// spec.md calls out as an external collaborator (spec §1 Non-goals); it is
// implemented concretely here (rather than left as an interface) because no
// standalone Merkle-verification package was retrieved in the example pack.
func VerifyProof(root Digest, leafData []byte, proof *MerkleProof) bool {
	current := hashLeaf(leafData)
	idx := proof.LeafIndex
	for _, sibling := range proof.Siblings {
		if idx%2 == 0 {
			current = hashNode(current, sibling)
		} else {
			current = hashNode(sibling, current)
		}
		idx /= 2
	}
	return current == root
}

// String renders a digest as hex.
func (d Digest) String() string {
	const hexdigits = "0123456789abcdef"
	buf := make([]byte, len(d)*2)
	for i, b := range d {
		buf[i*2] = hexdigits[b>>4]
		buf[i*2+1] = hexdigits[b&0x0f]
	}
	return string(buf)
}
