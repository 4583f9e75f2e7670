package bfstark

import (
	"errors"
	"testing"
)

func TestCompile(t *testing.T) {
	t.Run("compiles a simple program", func(t *testing.T) {
		program, err := Compile("+++.")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if program.Len() != 4 {
			t.Fatalf("expected 4 cells, got %d", program.Len())
		}
	})

	t.Run("wraps compile errors as ErrCompile", func(t *testing.T) {
		_, err := Compile("[")
		if err == nil {
			t.Fatal("expected an error for an unmatched bracket")
		}
		var bfErr *Error
		if !errors.As(err, &bfErr) {
			t.Fatalf("expected *Error, got %T", err)
		}
		if bfErr.Code != ErrCompile {
			t.Fatalf("expected ErrCompile, got %v", bfErr.Code)
		}
	})
}

func TestSimulate(t *testing.T) {
	t.Run("runs a halting program", func(t *testing.T) {
		program, err := Compile("++++++++.")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		trace, err := Simulate(program, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(trace.Output) != 1 || trace.Output[0] != 8 {
			t.Fatalf("expected output [8], got %v", trace.Output)
		}
		if trace.CycleCount == 0 {
			t.Fatal("expected a nonzero cycle count")
		}
	})

	t.Run("wraps simulation errors as ErrSimulate", func(t *testing.T) {
		program, err := Compile(",")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = Simulate(program, nil)
		if err == nil {
			t.Fatal("expected an error reading past the end of input")
		}
		var bfErr *Error
		if !errors.As(err, &bfErr) {
			t.Fatalf("expected *Error, got %T", err)
		}
		if bfErr.Code != ErrSimulate {
			t.Fatalf("expected ErrSimulate, got %v", bfErr.Code)
		}
	})
}

func TestPaddedHeight(t *testing.T) {
	cases := []struct{ n, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {8, 8}, {9, 16},
	}
	for _, c := range cases {
		if got := PaddedHeight(c.n); got != c.want {
			t.Fatalf("PaddedHeight(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}
