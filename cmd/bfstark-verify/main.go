// Command bfstark-verify reads a claim/proof pair as JSON lines from
// stdin and reports whether the proof verifies, mirroring the teacher's
// JSON-lines stdin/stdout protocol (cmd/vybium-vm-prover/main.go) but for
// the verifier side rather than the prover side: this module's prover is
// external (spec §1), so this command consumes an already-built proof
// instead of producing one.
package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/vybium/bfstark-vm/internal/bfstark/air"
	"github.com/vybium/bfstark-vm/internal/bfstark/core"
	"github.com/vybium/bfstark-vm/internal/bfstark/protocols"
	"github.com/vybium/bfstark-vm/pkg/bfstark"
)

// claimInput is the JSON-line shape of a Claim: program cells, the
// input/output byte tapes (encoded by encoding/json as base64 strings
// since both are []byte), the padded trace height, and verifier options.
type claimInput struct {
	Program       []int64      `json:"program"`
	Input         []byte       `json:"input"`
	Output        []byte       `json:"output"`
	PaddedHeight  int          `json:"padded_height"`
	ProgramLength int          `json:"program_length"`
	Options       optionsInput `json:"options"`
}

type optionsInput struct {
	NumQueries      uint8         `json:"num_queries"`
	ExpansionFactor uint8         `json:"expansion_factor"`
	GrindingFactor  uint8         `json:"grinding_factor"`
	Fri             friOptsInput `json:"fri"`
}

type friOptsInput struct {
	FoldingFactor   int `json:"folding_factor"`
	MaxRemainderDeg int `json:"max_remainder_deg"`
}

// proofInput is the JSON-line shape of a Proof. Field elements are
// encoded as decimal strings (base field) or 3-element decimal-string
// arrays (extension field) rather than relying on Go's default numeric
// JSON encoding, since core.FieldElement/ExtFieldElement carry their
// values in unexported big.Int fields with no default JSON shape.
type proofInput struct {
	BaseCommit    string            `json:"base_commit"`
	ExtCommit     *string           `json:"ext_commit,omitempty"`
	CompCommit    string            `json:"comp_commit"`
	OodCurrBase   []string          `json:"ood_curr_base"`
	OodCurrExt    [][3]string       `json:"ood_curr_ext"`
	OodNextBase   []string          `json:"ood_next_base"`
	OodNextExt    [][3]string       `json:"ood_next_ext"`
	OodEvalValues [][3]string       `json:"ood_eval_values"`
	PowNonce      uint64            `json:"pow_nonce"`
	TraceQueries  []traceQueryInput `json:"trace_queries"`
	FriProof      friProofInput     `json:"fri_proof"`
}

type traceQueryInput struct {
	Position  int           `json:"position"`
	BaseRow   []string      `json:"base_row"`
	ExtRow    [][3]string   `json:"ext_row"`
	CompRow   [][3]string   `json:"comp_row"`
	BaseProof merkleProofIn `json:"base_proof"`
	ExtProof  merkleProofIn `json:"ext_proof"`
	CompProof merkleProofIn `json:"comp_proof"`
}

type merkleProofIn struct {
	LeafIndex int      `json:"leaf_index"`
	Siblings  []string `json:"siblings"`
}

type friProofInput struct {
	RoundCommitments []string         `json:"round_commitments"`
	FinalCodeword    [][3]string      `json:"final_codeword"`
	Queries          []friQueryInput  `json:"queries"`
}

type friQueryInput struct {
	Position int              `json:"position"`
	Rounds   []friRoundInput  `json:"rounds"`
}

type friRoundInput struct {
	ValueA  [3]string     `json:"value_a"`
	ValueB  [3]string     `json:"value_b"`
	ProofA  merkleProofIn `json:"proof_a"`
	ProofB  merkleProofIn `json:"proof_b"`
}

// verifyResultOutput is what this command writes to stdout: one JSON
// object reporting acceptance or the rejection reason.
type verifyResultOutput struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func main() {
	field := bfstark.DefaultField()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<28)

	logStderr("reading claim...")
	if !scanner.Scan() {
		fatal("failed to read claim line")
	}
	var ci claimInput
	if err := json.Unmarshal(scanner.Bytes(), &ci); err != nil {
		fatal(fmt.Sprintf("failed to parse claim: %v", err))
	}

	logStderr("reading proof...")
	if !scanner.Scan() {
		fatal("failed to read proof line")
	}
	var pi proofInput
	if err := json.Unmarshal(scanner.Bytes(), &pi); err != nil {
		fatal(fmt.Sprintf("failed to parse proof: %v", err))
	}

	claim := bfstark.Claim{
		Program: ci.Program,
		Input:   ci.Input,
		Output:  ci.Output,
		TraceInfo: bfstark.TraceInfo{
			PaddedHeight:  ci.PaddedHeight,
			ProgramLength: ci.ProgramLength,
		},
		Options: bfstark.Options{
			NumQueries:      ci.Options.NumQueries,
			ExpansionFactor: ci.Options.ExpansionFactor,
			GrindingFactor:  ci.Options.GrindingFactor,
			Fri: bfstark.FriOptions{
				FoldingFactor:   ci.Options.Fri.FoldingFactor,
				MaxRemainderDeg: ci.Options.Fri.MaxRemainderDeg,
			},
		},
	}

	proof, err := decodeProof(field, pi)
	if err != nil {
		fatal(fmt.Sprintf("failed to decode proof: %v", err))
	}

	logStderr("constructing verifier...")
	verifier, err := bfstark.NewVerifier(field)
	if err != nil {
		fatal(fmt.Sprintf("failed to construct verifier: %v", err))
	}

	logStderr("verifying...")
	result, err := verifier.Verify(claim, proof)
	if err != nil {
		fatal(fmt.Sprintf("verification could not be attempted: %v", err))
	}

	out := verifyResultOutput{Valid: result.Valid, Error: result.Error}
	outBytes, err := json.Marshal(out)
	if err != nil {
		fatal(fmt.Sprintf("failed to serialize result: %v", err))
	}
	os.Stdout.Write(outBytes)
	os.Stdout.Write([]byte("\n"))

	if !result.Valid {
		os.Exit(1)
	}
}

func decodeProof(field *core.Field, pi proofInput) (*bfstark.Proof, error) {
	baseCommit, err := decodeDigest(pi.BaseCommit)
	if err != nil {
		return nil, fmt.Errorf("base_commit: %w", err)
	}
	compCommit, err := decodeDigest(pi.CompCommit)
	if err != nil {
		return nil, fmt.Errorf("comp_commit: %w", err)
	}
	var extCommit *core.Digest
	if pi.ExtCommit != nil {
		d, err := decodeDigest(*pi.ExtCommit)
		if err != nil {
			return nil, fmt.Errorf("ext_commit: %w", err)
		}
		extCommit = &d
	}

	oodCurrBase, err := decodeBaseExtSlice(field, pi.OodCurrBase)
	if err != nil {
		return nil, fmt.Errorf("ood_curr_base: %w", err)
	}
	oodCurrExt, err := decodeExtSlice(field, pi.OodCurrExt)
	if err != nil {
		return nil, fmt.Errorf("ood_curr_ext: %w", err)
	}
	oodNextBase, err := decodeBaseExtSlice(field, pi.OodNextBase)
	if err != nil {
		return nil, fmt.Errorf("ood_next_base: %w", err)
	}
	oodNextExt, err := decodeExtSlice(field, pi.OodNextExt)
	if err != nil {
		return nil, fmt.Errorf("ood_next_ext: %w", err)
	}
	oodEvalValues, err := decodeExtSlice(field, pi.OodEvalValues)
	if err != nil {
		return nil, fmt.Errorf("ood_eval_values: %w", err)
	}

	queries := make([]protocols.TraceQuery, len(pi.TraceQueries))
	for i, q := range pi.TraceQueries {
		decoded, err := decodeTraceQuery(field, q)
		if err != nil {
			return nil, fmt.Errorf("trace_queries[%d]: %w", i, err)
		}
		queries[i] = decoded
	}

	friProof, err := decodeFriProof(field, pi.FriProof)
	if err != nil {
		return nil, fmt.Errorf("fri_proof: %w", err)
	}

	proof := &bfstark.Proof{
		BaseCommit:    baseCommit,
		ExtCommit:     extCommit,
		CompCommit:    compCommit,
		OodCurr:       air.TraceStateFromColumns(oodCurrBase, oodCurrExt),
		OodNext:       air.TraceStateFromColumns(oodNextBase, oodNextExt),
		OodEvalValues: oodEvalValues,
		TraceQueries:  queries,
		FriProof:      friProof,
		PowNonce:      pi.PowNonce,
	}
	return proof, nil
}

func decodeTraceQuery(field *core.Field, q traceQueryInput) (protocols.TraceQuery, error) {
	baseRow, err := decodeBaseSlice(field, q.BaseRow)
	if err != nil {
		return protocols.TraceQuery{}, fmt.Errorf("base_row: %w", err)
	}
	extRow, err := decodeExtSlice(field, q.ExtRow)
	if err != nil {
		return protocols.TraceQuery{}, fmt.Errorf("ext_row: %w", err)
	}
	compRow, err := decodeExtSlice(field, q.CompRow)
	if err != nil {
		return protocols.TraceQuery{}, fmt.Errorf("comp_row: %w", err)
	}
	baseProof, err := decodeMerkleProof(q.BaseProof)
	if err != nil {
		return protocols.TraceQuery{}, fmt.Errorf("base_proof: %w", err)
	}
	extProof, err := decodeMerkleProof(q.ExtProof)
	if err != nil {
		return protocols.TraceQuery{}, fmt.Errorf("ext_proof: %w", err)
	}
	compProof, err := decodeMerkleProof(q.CompProof)
	if err != nil {
		return protocols.TraceQuery{}, fmt.Errorf("comp_proof: %w", err)
	}
	return protocols.TraceQuery{
		Position:  q.Position,
		BaseRow:   baseRow,
		ExtRow:    extRow,
		CompRow:   compRow,
		BaseProof: baseProof,
		ExtProof:  extProof,
		CompProof: compProof,
	}, nil
}

func decodeFriProof(field *core.Field, in friProofInput) (core.FriProof, error) {
	roundCommitments := make([]core.FriRoundCommitment, len(in.RoundCommitments))
	for i, hexStr := range in.RoundCommitments {
		d, err := decodeDigest(hexStr)
		if err != nil {
			return core.FriProof{}, fmt.Errorf("round_commitments[%d]: %w", i, err)
		}
		roundCommitments[i] = core.FriRoundCommitment{Root: d}
	}
	finalCodeword, err := decodeExtSlice(field, in.FinalCodeword)
	if err != nil {
		return core.FriProof{}, fmt.Errorf("final_codeword: %w", err)
	}
	queries := make([]core.FriQuery, len(in.Queries))
	for i, q := range in.Queries {
		rounds := make([]core.FriQueryRound, len(q.Rounds))
		for j, r := range q.Rounds {
			valueA, err := decodeExtElement(field, r.ValueA)
			if err != nil {
				return core.FriProof{}, fmt.Errorf("queries[%d].rounds[%d].value_a: %w", i, j, err)
			}
			valueB, err := decodeExtElement(field, r.ValueB)
			if err != nil {
				return core.FriProof{}, fmt.Errorf("queries[%d].rounds[%d].value_b: %w", i, j, err)
			}
			proofA, err := decodeMerkleProof(r.ProofA)
			if err != nil {
				return core.FriProof{}, fmt.Errorf("queries[%d].rounds[%d].proof_a: %w", i, j, err)
			}
			proofB, err := decodeMerkleProof(r.ProofB)
			if err != nil {
				return core.FriProof{}, fmt.Errorf("queries[%d].rounds[%d].proof_b: %w", i, j, err)
			}
			rounds[j] = core.FriQueryRound{ValueA: valueA, ValueB: valueB, ProofA: proofA, ProofB: proofB}
		}
		queries[i] = core.FriQuery{Position: q.Position, Rounds: rounds}
	}
	return core.FriProof{
		RoundCommitments: roundCommitments,
		FinalCodeword:    finalCodeword,
		Queries:          queries,
	}, nil
}

func decodeMerkleProof(in merkleProofIn) (*core.MerkleProof, error) {
	siblings := make([]core.Digest, len(in.Siblings))
	for i, hexStr := range in.Siblings {
		d, err := decodeDigest(hexStr)
		if err != nil {
			return nil, fmt.Errorf("siblings[%d]: %w", i, err)
		}
		siblings[i] = d
	}
	return &core.MerkleProof{LeafIndex: in.LeafIndex, Siblings: siblings}, nil
}

func decodeDigest(hexStr string) (core.Digest, error) {
	var d core.Digest
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return d, err
	}
	if len(raw) != len(d) {
		return d, fmt.Errorf("expected %d bytes, got %d", len(d), len(raw))
	}
	copy(d[:], raw)
	return d, nil
}

func decodeBaseElement(field *core.Field, decimal string) (*core.FieldElement, error) {
	value, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal field element %q", decimal)
	}
	return field.NewElement(value), nil
}

func decodeExtElement(field *core.Field, coeffs [3]string) (*core.ExtFieldElement, error) {
	c0, err := decodeBaseElement(field, coeffs[0])
	if err != nil {
		return nil, err
	}
	c1, err := decodeBaseElement(field, coeffs[1])
	if err != nil {
		return nil, err
	}
	c2, err := decodeBaseElement(field, coeffs[2])
	if err != nil {
		return nil, err
	}
	return core.NewExtFieldElement(field, c0, c1, c2), nil
}

func decodeBaseSlice(field *core.Field, in []string) ([]*core.FieldElement, error) {
	out := make([]*core.FieldElement, len(in))
	for i, s := range in {
		elem, err := decodeBaseElement(field, s)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = elem
	}
	return out, nil
}

// decodeBaseExtSlice decodes decimal-string base-field values straight
// into extension-field elements, for the OOD columns' base-column
// portion: the verifier always compares OOD base columns in the
// extension field, so no separate base-valued representation is needed.
func decodeBaseExtSlice(field *core.Field, in []string) ([]*core.ExtFieldElement, error) {
	out := make([]*core.ExtFieldElement, len(in))
	for i, s := range in {
		elem, err := decodeBaseElement(field, s)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = core.ExtFromBase(elem)
	}
	return out, nil
}

func decodeExtSlice(field *core.Field, in [][3]string) ([]*core.ExtFieldElement, error) {
	out := make([]*core.ExtFieldElement, len(in))
	for i, coeffs := range in {
		elem, err := decodeExtElement(field, coeffs)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = elem
	}
	return out, nil
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "bfstark-verify:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
