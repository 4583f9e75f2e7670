package air

// AllConstraints returns the complete, stably-ordered list of constraints
// making up the Brainfuck AIR: every table's boundary and transition
// constraints, followed by the cross-table terminal constraints. Callers
// (the OOD-consistency check in the verifier, and whatever built the
// composition polynomial) must index into this same order, since the
// proof's ood_eval_values are positional rather than named.
func AllConstraints() []Constraint {
	var all []Constraint
	all = append(all, ProcessorConstraints()...)
	all = append(all, InstructionConstraints()...)
	all = append(all, MemoryConstraints()...)
	all = append(all, InputConstraints()...)
	all = append(all, OutputConstraints()...)
	all = append(all, TerminalConstraints()...)
	return all
}

// ConstraintsByKind filters AllConstraints() down to a single kind,
// preserving relative order.
func ConstraintsByKind(kind Kind) []Constraint {
	var out []Constraint
	for _, c := range AllConstraints() {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}
