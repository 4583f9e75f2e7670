// Package protocols implements the public-coin Fiat-Shamir transcript,
// challenge derivation, options, claim/proof wire types, and the STARK
// verifier pipeline (spec §4.6, §4.7).
package protocols

import (
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/bfstark-vm/internal/bfstark/core"
)

// PublicCoin is the verifier's Fiat-Shamir transcript: an opaque,
// append-only absorb/squeeze state, following spec §9's "treat the
// transcript as an opaque append-only object with a fixed operation
// sequence; never branch on transcript state mid-protocol" and grounded on
// the teacher's Channel (utils/channel.go), generalized from a
// send/receive log to the seed/reseed/draw vocabulary spec §4.6 names.
type PublicCoin struct {
	field *core.Field
	state []byte
}

// NewPublicCoin seeds a coin from the initial transcript bytes (spec §4.7
// step 1: public_inputs || trace_info || options in canonical encoding).
func NewPublicCoin(field *core.Field, seed []byte) *PublicCoin {
	c := &PublicCoin{field: field, state: []byte{0}}
	c.absorb(seed)
	return c
}

// Reseed folds additional bytes into the transcript (a Merkle root, a
// nonce, an evaluation). The absorption order across a verification run is
// fixed by spec §4.6/§4.7 and must never be reordered.
func (c *PublicCoin) Reseed(data []byte) {
	c.absorb(data)
}

func (c *PublicCoin) absorb(data []byte) {
	buf := make([]byte, 0, len(c.state)+len(data))
	buf = append(buf, c.state...)
	buf = append(buf, data...)
	digest := sha3.Sum256(buf)
	c.state = digest[:]
}

// Draw squeezes one base-field element from the transcript, advancing the
// state so the next draw is independent.
func (c *PublicCoin) Draw() *core.FieldElement {
	value := new(big.Int).SetBytes(c.state)
	elem := c.field.NewElement(value)
	c.advance()
	return elem
}

// DrawExt squeezes one extension-field element, consuming three base draws
// (one per coefficient), matching how the extension field is defined as a
// degree-3 extension (core.ExtFieldElement).
func (c *PublicCoin) DrawExt() *core.ExtFieldElement {
	a := c.Draw()
	b := c.Draw()
	d := c.Draw()
	return core.NewExtFieldElement(c.field, a, b, d)
}

// DrawRng draws an integer index in [0, bound) by reducing the transcript's
// squeezed bytes modulo bound (spec §4.7 step 11: "draw
// num_queries indices uniformly from [0, lde_domain_size) via draw_rng").
func (c *PublicCoin) DrawRng(bound int) int {
	if bound <= 0 {
		return 0
	}
	value := new(big.Int).SetBytes(c.state)
	c.advance()
	index := new(big.Int).Mod(value, big.NewInt(int64(bound)))
	return int(index.Int64())
}

// SeedLeadingZeros reports the number of leading zero bits in the current
// transcript state, used to check proof-of-work grinding (spec §4.7 step
// 10: seed_leading_zeros() >= grinding_factor).
func (c *PublicCoin) SeedLeadingZeros() int {
	count := 0
	for _, b := range c.state {
		if b == 0 {
			count += 8
			continue
		}
		for bit := 7; bit >= 0; bit-- {
			if b&(1<<uint(bit)) != 0 {
				return count
			}
			count++
		}
	}
	return count
}

func (c *PublicCoin) advance() {
	digest := sha3.Sum256(c.state)
	c.state = digest[:]
}
