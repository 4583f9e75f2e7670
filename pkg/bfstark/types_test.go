package bfstark

import "testing"

func TestDefaultOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Fatalf("default options should validate: %v", err)
	}
}

func TestDefaultFieldIsUsable(t *testing.T) {
	field := DefaultField()
	if field == nil {
		t.Fatal("expected a non-nil default field")
	}
	elem := field.NewElementFromInt64(5)
	if elem == nil {
		t.Fatal("expected the default field to construct elements")
	}
}

func TestErrorCodeString(t *testing.T) {
	cases := map[ErrorCode]string{
		ErrCompile:       "ErrCompile",
		ErrSimulate:      "ErrSimulate",
		ErrInvalidConfig: "ErrInvalidConfig",
		ErrVerification:  "ErrVerification",
		ErrUnknown:       "ErrUnknown",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Fatalf("code %d: got %q, want %q", code, got, want)
		}
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	a := newError(ErrCompile, "one", nil)
	b := newError(ErrCompile, "two", nil)
	c := newError(ErrSimulate, "three", nil)
	if !a.Is(b) {
		t.Fatal("errors with the same code should match Is")
	}
	if a.Is(c) {
		t.Fatal("errors with different codes should not match Is")
	}
}
