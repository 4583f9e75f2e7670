package vm

import (
	"testing"
)

func TestSimulateEmptyInputStopsBeforeLoop(t *testing.T) {
	// "++>,<[>+.<-]" with in=[]: the ',' before the loop has no byte to
	// read, so simulation fails with EndOfInput before the loop test.
	program, err := Compile("++>,<[>+.<-]")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	_, err = Simulate(program, []byte{})
	if err == nil {
		t.Fatal("expected EndOfInput error: the ',' before the loop has no input")
	}
	verr, ok := err.(*Error)
	if !ok || verr.Kind != EndOfInput {
		t.Fatalf("expected EndOfInput, got %v", err)
	}
}

func TestSimulateEchoInput(t *testing.T) {
	// spec §8 scenario 2: ",." with in=[0x41] expects out=[0x41].
	program, err := Compile(",.")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	trace, err := Simulate(program, []byte{0x41})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trace.Input) != 1 || trace.Input[0].Value != 0x41 {
		t.Fatalf("expected one input row with value 0x41, got %+v", trace.Input)
	}
	if len(trace.OutputBytes) != 1 || trace.OutputBytes[0] != 0x41 {
		t.Fatalf("expected output [0x41], got %v", trace.OutputBytes)
	}
}

func TestSimulateBalancedLoop(t *testing.T) {
	// spec §8 scenario 3: "+[->+<]" moves one cell's value to the next.
	program, err := Compile("+[->+<]")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	trace, err := Simulate(program, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := trace.Processor[len(trace.Processor)-1]
	if last.CurrInstr != 0 {
		t.Fatalf("final row should be the halt sentinel, got CurrInstr=%d", last.CurrInstr)
	}
	if last.Mp != 0 {
		t.Fatalf("expected pointer to return to 0, got %d", last.Mp)
	}
}

func TestSimulateSingleIncrement(t *testing.T) {
	// spec §8 scenario 5: "+" — a single non-dummy Memory row, Mp=0, MemVal=1.
	program, err := Compile("+")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	trace, err := Simulate(program, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	memRows := DeriveMemoryTable(trace.Processor)
	nonDummy := 0
	for _, row := range memRows {
		if row.Dummy == 0 {
			nonDummy++
			if row.Mp != 0 || row.MemVal != 1 {
				t.Fatalf("expected Mp=0, MemVal=1, got %+v", row)
			}
		}
	}
	if nonDummy != 1 {
		t.Fatalf("expected exactly one non-dummy memory row, got %d", nonDummy)
	}
}

func TestSimulateUnknownOpcode(t *testing.T) {
	// A hand-built program with an invalid cell value should fail fast
	// rather than being silently dispatched.
	program := Program{99}
	if _, err := Simulate(program, nil); err == nil {
		t.Fatal("expected UnknownOpcode error")
	}
}
