package vm

import "github.com/vybium/bfstark-vm/internal/bfstark/core"

// TableID names one of the five execution-trace tables (spec §3 Data
// Model), grounded on the teacher's vm/tables.go TableID enum.
type TableID int

const (
	ProcessorTableID TableID = iota
	InstructionTableID
	MemoryTableID
	InputTableID
	OutputTableID
)

func (id TableID) String() string {
	switch id {
	case ProcessorTableID:
		return "Processor"
	case InstructionTableID:
		return "Instruction"
	case MemoryTableID:
		return "Memory"
	case InputTableID:
		return "Input"
	case OutputTableID:
		return "Output"
	default:
		return "Unknown"
	}
}

// ProcessorRow is one row of the Processor table's base columns.
type ProcessorRow struct {
	Cycle     int64
	Ip        int64
	CurrInstr int64
	NextInstr int64
	Mp        int64
	MemVal    int64
	Dummy     int64
}

// InstructionRow is one row of the Instruction table's base columns.
type InstructionRow struct {
	Ip        int64
	CurrInstr int64
	NextInstr int64
}

// MemoryRow is one row of the Memory table's base columns.
type MemoryRow struct {
	Cycle  int64
	Mp     int64
	MemVal int64
	Dummy  int64
}

// IORow is one row of the Input or Output table's single base column.
type IORow struct {
	Value int64
}

// ProcessorTable holds the Processor table's base columns, column-major
// (one slice per named column), following the teacher's
// vm/processor_table.go layout so padding and constraint evaluation can
// operate on whole columns at once.
type ProcessorTable struct {
	Cycle, Ip, CurrInstr, NextInstr, Mp, MemVal, Dummy []int64
	MemValInv                                          []*core.FieldElement
}

// NewProcessorTable builds a ProcessorTable from simulator-emitted rows,
// resolving each row's MemValInv against field.
func NewProcessorTable(field *core.Field, rows []ProcessorRow) *ProcessorTable {
	t := &ProcessorTable{}
	for _, r := range rows {
		t.Cycle = append(t.Cycle, r.Cycle)
		t.Ip = append(t.Ip, r.Ip)
		t.CurrInstr = append(t.CurrInstr, r.CurrInstr)
		t.NextInstr = append(t.NextInstr, r.NextInstr)
		t.Mp = append(t.Mp, r.Mp)
		t.MemVal = append(t.MemVal, r.MemVal)
		t.Dummy = append(t.Dummy, r.Dummy)
		t.MemValInv = append(t.MemValInv, memValInv(field, r.MemVal))
	}
	return t
}

func memValInv(field *core.Field, memVal int64) *core.FieldElement {
	elem := field.NewElementFromInt64(memVal)
	if elem.IsZero() {
		return field.Zero()
	}
	inv, err := elem.Inv()
	if err != nil {
		// memVal is nonzero by the branch above; Inv failing here would be
		// a field-arithmetic bug, not a data error.
		panic(err)
	}
	return inv
}

// Height returns the number of real (unpadded) rows.
func (t *ProcessorTable) Height() int { return len(t.Cycle) }

// Pad extends the table to targetHeight rows using spec §3's Processor
// padding rule: hold CurrInstr = NextInstr = 0, advance only Cycle. Dummy is
// held at 1, since CurrInstr=0 forces Dummy=1 under
// processor.dummy_opcode_coherence (the same rule the halt row itself must
// satisfy).
func (t *ProcessorTable) Pad(targetHeight int) {
	if t.Height() == 0 {
		return
	}
	lastCycle := t.Cycle[len(t.Cycle)-1]
	lastIp := t.Ip[len(t.Ip)-1]
	lastMp := t.Mp[len(t.Mp)-1]
	lastMemVal := t.MemVal[len(t.MemVal)-1]
	lastInv := t.MemValInv[len(t.MemValInv)-1]

	for t.Height() < targetHeight {
		lastCycle++
		t.Cycle = append(t.Cycle, lastCycle)
		t.Ip = append(t.Ip, lastIp)
		t.CurrInstr = append(t.CurrInstr, 0)
		t.NextInstr = append(t.NextInstr, 0)
		t.Mp = append(t.Mp, lastMp)
		t.MemVal = append(t.MemVal, lastMemVal)
		t.Dummy = append(t.Dummy, 1)
		t.MemValInv = append(t.MemValInv, lastInv)
	}
}

// InstructionTable holds the Instruction table's base columns.
type InstructionTable struct {
	Ip, CurrInstr, NextInstr []int64
}

// NewInstructionTable builds an InstructionTable from simulator-emitted
// rows, sorted by Ip ascending (spec §3 invariant), stably so that repeat
// visits to the same Ip keep their relative cycle order.
func NewInstructionTable(rows []InstructionRow) *InstructionTable {
	sorted := make([]InstructionRow, len(rows))
	copy(sorted, rows)
	stableSortByIp(sorted)

	t := &InstructionTable{}
	for _, r := range sorted {
		t.Ip = append(t.Ip, r.Ip)
		t.CurrInstr = append(t.CurrInstr, r.CurrInstr)
		t.NextInstr = append(t.NextInstr, r.NextInstr)
	}
	return t
}

func stableSortByIp(rows []InstructionRow) {
	// Simple insertion sort: trace lengths in this module's target
	// workloads are small, and insertion sort is stable without extra
	// bookkeeping, unlike sort.Slice's ordering guarantees.
	for i := 1; i < len(rows); i++ {
		j := i
		for j > 0 && rows[j-1].Ip > rows[j].Ip {
			rows[j-1], rows[j] = rows[j], rows[j-1]
			j--
		}
	}
}

// Height returns the number of real (unpadded) rows.
func (t *InstructionTable) Height() int { return len(t.Ip) }

// Pad extends the table using spec §3's Instruction padding rule: hold the
// final Ip with zero opcodes.
func (t *InstructionTable) Pad(targetHeight int) {
	var lastIp int64
	if t.Height() > 0 {
		lastIp = t.Ip[len(t.Ip)-1]
	}
	for t.Height() < targetHeight {
		t.Ip = append(t.Ip, lastIp)
		t.CurrInstr = append(t.CurrInstr, 0)
		t.NextInstr = append(t.NextInstr, 0)
	}
}

// MemoryTable holds the Memory table's base columns.
type MemoryTable struct {
	Cycle, Mp, MemVal, Dummy []int64
}

// Height returns the number of real (unpadded) rows.
func (t *MemoryTable) Height() int { return len(t.Cycle) }

// Pad extends the table using spec §3's Memory padding rule: set Dummy = 1,
// freeze Mp and MemVal, advance Cycle.
func (t *MemoryTable) Pad(targetHeight int) {
	var lastCycle, lastMp, lastMemVal int64
	if t.Height() > 0 {
		lastCycle = t.Cycle[len(t.Cycle)-1]
		lastMp = t.Mp[len(t.Mp)-1]
		lastMemVal = t.MemVal[len(t.MemVal)-1]
	} else {
		lastCycle = -1 // so the first padded row's Cycle starts at 0
	}
	for t.Height() < targetHeight {
		lastCycle++
		t.Cycle = append(t.Cycle, lastCycle)
		t.Mp = append(t.Mp, lastMp)
		t.MemVal = append(t.MemVal, lastMemVal)
		t.Dummy = append(t.Dummy, 1)
	}
}

// IOTable holds the Input or Output table's single base column.
type IOTable struct {
	Value []int64
}

// NewIOTable builds an IOTable from simulator-emitted rows.
func NewIOTable(rows []IORow) *IOTable {
	t := &IOTable{}
	for _, r := range rows {
		t.Value = append(t.Value, r.Value)
	}
	return t
}

// Height returns the number of real (unpadded) rows.
func (t *IOTable) Height() int { return len(t.Value) }

// Pad extends the table using spec §3's Input/Output padding rule: all-zero rows.
func (t *IOTable) Pad(targetHeight int) {
	for t.Height() < targetHeight {
		t.Value = append(t.Value, 0)
	}
}
