package air

import (
	"testing"

	"github.com/vybium/bfstark-vm/internal/bfstark/core"
)

func TestTraceStateColumnsRoundTrip(t *testing.T) {
	field := core.DefaultPrimeField
	base := make([]*core.ExtFieldElement, 17)
	for i := range base {
		base[i] = core.ExtFromBase(field.NewElementFromInt64(int64(i + 1)))
	}
	ext := make([]*core.ExtFieldElement, 9)
	for i := range ext {
		ext[i] = core.ExtFromBase(field.NewElementFromInt64(int64(100 + i)))
	}

	state := TraceStateFromColumns(base, ext)
	gotBase := state.BaseColumns()
	gotExt := state.ExtColumns()

	if len(gotBase) != len(base) {
		t.Fatalf("expected %d base columns back, got %d", len(base), len(gotBase))
	}
	for i := range base {
		if !gotBase[i].Equal(base[i]) {
			t.Fatalf("base column %d: round trip mismatch", i)
		}
	}
	if len(gotExt) != len(ext) {
		t.Fatalf("expected %d extension columns back, got %d", len(ext), len(gotExt))
	}
	for i := range ext {
		if !gotExt[i].Equal(ext[i]) {
			t.Fatalf("extension column %d: round trip mismatch", i)
		}
	}
}

func TestTraceStateFromColumnsPanicsOnWrongLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a wrong-length base column slice")
		}
	}()
	TraceStateFromColumns(nil, nil)
}
