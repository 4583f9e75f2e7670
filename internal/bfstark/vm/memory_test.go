package vm

import "testing"

func TestDeriveMemoryTableSortedAndGapFilled(t *testing.T) {
	program, err := Compile("+[->+<]")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	trace, err := Simulate(program, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := DeriveMemoryTable(trace.Processor)

	for i := 1; i < len(rows); i++ {
		prev, curr := rows[i-1], rows[i]
		if curr.Mp < prev.Mp || (curr.Mp == prev.Mp && curr.Cycle < prev.Cycle) {
			t.Fatalf("rows not sorted by (Mp, Cycle): %+v then %+v", prev, curr)
		}
		if curr.Mp == prev.Mp && curr.Cycle != prev.Cycle+1 {
			t.Fatalf("gap in cycle sequence at constant Mp: %+v then %+v", prev, curr)
		}
	}
}

func TestDeriveMemoryTableExactlyOneTransition(t *testing.T) {
	// "+[->+<]" touches cells 0 and 1 only; sorted by (Mp, Cycle), the
	// Memory table changes Mp exactly once, from 0 to 1.
	program, err := Compile("+[->+<]")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	trace, err := Simulate(program, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := DeriveMemoryTable(trace.Processor)
	transitions := 0
	for i := 1; i < len(rows); i++ {
		if rows[i].Mp != rows[i-1].Mp {
			transitions++
		}
	}
	if transitions != 1 {
		t.Fatalf("expected exactly one Mp transition, got %d", transitions)
	}
	seenMp := map[int64]bool{}
	for _, r := range rows {
		seenMp[r.Mp] = true
	}
	if len(seenMp) != 2 {
		t.Fatalf("expected exactly two distinct Mp values (0 and 1), got %d", len(seenMp))
	}
}
