// Package bfstark provides a zkSTARK prover-companion verifier for
// Brainfuck program execution: compile a program, simulate it into an
// execution trace, and verify a proof that a claimed input/output
// transcript is the correct result of running a specific program.
//
// # Architecture
//
// - pkg/bfstark/: public API (this package)
// - internal/bfstark/: private implementation (not importable)
//
// The public API is stable; internal/ may be refactored freely behind it.
//
// # Quick start
//
//	program, err := bfstark.Compile("++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	trace, err := bfstark.Simulate(program, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	claim := bfstark.Claim{
//		Program: program,
//		Output:  trace.Output,
//	}
//
//	verifier, err := bfstark.NewVerifier(bfstark.DefaultField())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := verifier.Verify(claim, proof)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if result.Valid {
//		fmt.Println("proof is valid")
//	}
package bfstark
