package air

import (
	"testing"

	"github.com/vybium/bfstark-vm/internal/bfstark/core"
)

func TestAllConstraintsNonEmptyAndOrdered(t *testing.T) {
	all := AllConstraints()
	if len(all) == 0 {
		t.Fatal("expected at least one constraint")
	}
	seen := map[string]bool{}
	for _, c := range all {
		if seen[c.Name] {
			t.Fatalf("duplicate constraint name %q", c.Name)
		}
		seen[c.Name] = true
	}
	boundary := ConstraintsByKind(Boundary)
	transition := ConstraintsByKind(Transition)
	terminal := ConstraintsByKind(Terminal)
	if len(boundary)+len(transition)+len(terminal) != len(all) {
		t.Fatal("kind filters do not partition AllConstraints")
	}
	if len(terminal) != 7 {
		t.Fatalf("expected 7 terminal constraints, got %d", len(terminal))
	}
}

func TestDeselectorVanishesOffTargetAndAtPadding(t *testing.T) {
	field := core.DefaultPrimeField
	for _, op := range opcodeValues {
		for _, other := range opcodeValues {
			if other == op {
				continue
			}
			x := core.ExtFromBase(field.NewElementFromInt64(other))
			if !Deselector(field, op, x).IsZero() {
				t.Fatalf("Deselector(%c, %c) expected zero", rune(op), rune(other))
			}
		}
		zero := core.ExtFromBase(field.NewElementFromInt64(0))
		if !Deselector(field, op, zero).IsZero() {
			t.Fatalf("Deselector(%c, 0) expected zero at padding rows", rune(op))
		}
		x := core.ExtFromBase(field.NewElementFromInt64(op))
		if Deselector(field, op, x).IsZero() {
			t.Fatalf("Deselector(%c, %c) expected nonzero at own opcode", rune(op), rune(op))
		}
	}
}

func TestInstrZerofierVanishesOnlyAtOpcodes(t *testing.T) {
	field := core.DefaultPrimeField
	for _, op := range opcodeValues {
		x := core.ExtFromBase(field.NewElementFromInt64(op))
		if !InstrZerofier(field, x).IsZero() {
			t.Fatalf("InstrZerofier(%c) expected zero", rune(op))
		}
	}
	zero := core.ExtFromBase(field.NewElementFromInt64(0))
	if InstrZerofier(field, zero).IsZero() {
		t.Fatal("InstrZerofier(0) expected nonzero: 0 is not a valid opcode")
	}
}
