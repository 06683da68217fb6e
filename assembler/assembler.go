package assembler

import (
	"fmt"
	"strings"

	"github.com/golang/glog"

	"github.com/Urethramancer/katasm/isa"
	"github.com/Urethramancer/katasm/parser"
)

type labelRef struct {
	label    string
	mnemonic string
	line     int
}

// Assembler holds the state for the assembly process.
type Assembler struct {
	code  strings.Builder
	trace strings.Builder

	aliases map[string]uint64
	labels  map[string]int
	// order lists labels by first definition; Resolve substitutes in this order.
	order []string
	refs  []labelRef

	instructions int
	memory       int
	last         string
	diagnostics  []string
	resolved     bool

	tk *parser.Tokenizer
	ps *parser.Parser
}

// New creates a new Assembler instance.
func New() *Assembler {
	asm := &Assembler{
		aliases: make(map[string]uint64),
		labels:  make(map[string]int),
	}
	asm.tk, asm.ps = asm.grammar()
	return asm
}

// Assemble runs both passes over src and returns the assembled code.
func (asm *Assembler) Assemble(src string) (string, error) {
	if err := asm.Analyze(src); err != nil {
		return "", err
	}
	if err := asm.Resolve(); err != nil {
		return "", err
	}
	return asm.Code(), nil
}

// Analyze tokenizes src and handles every statement in order (the first pass).
// Assembly stops at the first error.
func (asm *Assembler) Analyze(src string) error {
	if asm.resolved {
		return ErrResolved
	}
	lines, err := asm.tk.Tokenize(src)
	if err != nil {
		return err
	}
	glog.V(1).Infof("Pass 1: %d lines", len(lines))
	return asm.ps.Run(lines)
}

// Handle encodes one statement found on source line line.
func (asm *Assembler) Handle(stmt Statement, line int) error {
	if asm.resolved {
		return ErrResolved
	}

	switch s := stmt.(type) {
	case AliasDef:
		v, err := parseHex(s.Value)
		if err != nil {
			return asm.fail(line, "$"+s.Name, err)
		}
		asm.defineAlias(s, v)
		return nil
	case LabelDef:
		asm.defineLabel(s.Name, line)
		return nil
	case ZeroOp:
		enc, err := asm.encodeZeroOp(s)
		return asm.commit(line, s.Mnemonic, enc, err)
	case OneOp:
		enc, err := asm.encodeOneOp(s)
		return asm.commit(line, s.Mnemonic, enc, err)
	case TwoOp:
		enc, err := asm.encodeTwoOp(s)
		return asm.commit(line, s.Mnemonic, enc, err)
	case JumpToLabel:
		enc, err := asm.encodeJump(s)
		if err == nil {
			asm.refs = append(asm.refs, labelRef{label: s.Label, mnemonic: s.Mnemonic, line: line})
		}
		return asm.commit(line, s.Mnemonic, enc, err)
	}
	return fmt.Errorf("line %d: unsupported statement %T", line, stmt)
}

func (asm *Assembler) fail(line int, what string, err error) error {
	return fmt.Errorf("line %d (instruction %d, %s): %w", line, asm.instructions+1, what, err)
}

// commit appends a successful encoding and advances both counters.
func (asm *Assembler) commit(line int, mnemonic string, enc Encoding, err error) error {
	if err != nil {
		return asm.fail(line, mnemonic, err)
	}
	asm.instructions++
	asm.code.WriteString(enc.Code)
	asm.code.WriteByte('\n')
	asm.last = enc.View
	asm.human(enc.Text, false)
	glog.V(2).Infof("emit %03X: %s", asm.memory, enc.Code)
	asm.memory++
	return nil
}

func (asm *Assembler) defineAlias(s AliasDef, v uint64) {
	asm.instructions++
	asm.aliases[s.Name] = v
	glog.V(1).Infof("Defining alias %q as 0x%X", s.Name, v)
	asm.human(fmt.Sprintf("Define alias %s with value %s", s.Name, s.Value), true)
}

func (asm *Assembler) defineLabel(name string, line int) {
	asm.instructions++
	if _, ok := asm.labels[name]; ok {
		asm.diagnose("Info", line, "Redefining label %s", name)
	} else {
		asm.checkLabel(name, line)
		asm.order = append(asm.order, name)
	}
	asm.labels[name] = asm.memory
	glog.V(1).Infof("Defining label %q at 0x%03X", name, asm.memory)
	asm.human(fmt.Sprintf("Define label %s for next program instruction", name), true)
}

// Code returns the assembled code, one instruction per line.
func (asm *Assembler) Code() string {
	return asm.code.String()
}

// Compressed returns the assembled code with all whitespace removed.
func (asm *Assembler) Compressed() string {
	return strings.Join(strings.Fields(asm.code.String()), "")
}

// Image returns the machine image as bytes. Every line of Code must be
// exactly one word; an operand too wide for its field is an error here even
// though the text output keeps it.
func (asm *Assembler) Image() ([]byte, error) {
	if !asm.resolved && len(asm.refs) > 0 {
		return nil, ErrUnresolved
	}
	words := make([]uint32, 0, asm.memory)
	for _, line := range strings.Split(asm.Code(), "\n") {
		text := strings.Join(strings.Fields(line), "")
		if text == "" {
			continue
		}
		w, err := isa.ParseWord(text)
		if err != nil {
			return nil, fmt.Errorf("word %03X (%s): %w", len(words), line, err)
		}
		words = append(words, w)
	}
	return isa.WordsToBytes(words), nil
}

// Trace returns the human-readable listing.
func (asm *Assembler) Trace() string {
	return asm.trace.String()
}

// Aliases returns a copy of the alias table.
func (asm *Assembler) Aliases() map[string]uint64 {
	out := make(map[string]uint64, len(asm.aliases))
	for k, v := range asm.aliases {
		out[k] = v
	}
	return out
}

// Labels returns a copy of the label table.
func (asm *Assembler) Labels() map[string]int {
	out := make(map[string]int, len(asm.labels))
	for k, v := range asm.labels {
		out[k] = v
	}
	return out
}

// InstructionCount is the number of statements handled, declarations included.
func (asm *Assembler) InstructionCount() int {
	return asm.instructions
}

// MemoryCount is the number of words emitted.
func (asm *Assembler) MemoryCount() int {
	return asm.memory
}

// Diagnostics returns the non-fatal messages produced so far.
func (asm *Assembler) Diagnostics() []string {
	return append([]string(nil), asm.diagnostics...)
}
