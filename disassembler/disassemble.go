package disassembler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang/glog"

	"github.com/Urethramancer/katasm/isa"
)

// ErrInvalidWord is returned for a word that no KatAsm instruction encodes to.
var ErrInvalidWord = errors.New("invalid instruction word")

// Instruction represents a single decoded instruction at a specific address.
type Instruction struct {
	Address  int
	Word     uint32
	Mnemonic string
	Operands string
	// Target is the literal jump address of jmpl and cjmpl, -1 otherwise.
	Target int
}

// Decode turns one machine word into an instruction.
func Decode(addr int, w uint32) (Instruction, error) {
	inst := Instruction{Address: addr, Word: w, Target: -1}
	b := byte(w >> 16)
	arg := uint16(w)
	op, ok := isa.Decode(b)
	if !ok {
		return inst, fmt.Errorf("%03X: %06X: %w", addr, w, ErrInvalidWord)
	}
	inst.Mnemonic = op.Mnemonic

	valid := true
	switch op.Form {
	case isa.FormNone:
		valid = arg == 0
	case isa.FormRegisterDecimal:
		// Registers are written as an unpadded decimal, so only 0-9 fit the word.
		valid = arg <= 9
		inst.Operands = fmt.Sprintf("%X", arg)
	case isa.FormLiteral:
		inst.Operands = fmt.Sprintf("%04X", arg)
		if op.Jump {
			inst.Target = int(arg)
		}
	case isa.FormRegister:
		valid = arg <= 0xF
		inst.Operands = fmt.Sprintf("%X", arg)
	case isa.FormRegisterPair:
		valid = arg&0xF0F0 == 0
		inst.Operands = fmt.Sprintf("%X %X", arg>>8, arg&0xF)
	case isa.FormRegisterLiteral:
		inst.Operands = fmt.Sprintf("%X %04X", b&0xF, arg)
	}
	if !valid {
		return inst, fmt.Errorf("%03X: %06X: %w", addr, w, ErrInvalidWord)
	}
	return inst, nil
}

// Disassemble takes an image of KatAsm machine code and returns it as source
// that assembles back to the same image. Jump targets inside the image get labels.
func Disassemble(code []byte) (string, error) {
	words, err := isa.BytesToWords(code)
	if err != nil {
		return "", err
	}

	// Linear sweep
	instructions := make([]Instruction, len(words))
	for addr, w := range words {
		inst, err := Decode(addr, w)
		if err != nil {
			return "", err
		}
		instructions[addr] = inst
	}

	// Jump targets
	targets := make(map[int]bool)
	for _, inst := range instructions {
		if inst.Target >= 0 && inst.Target < len(instructions) {
			targets[inst.Target] = true
		}
	}
	glog.V(1).Infof("Disassembling %d words, %d jump targets", len(words), len(targets))

	// Render
	var out strings.Builder
	for _, inst := range instructions {
		if targets[inst.Address] {
			fmt.Fprintf(&out, ":%s\n", labelName(inst.Address))
		}
		operands := inst.Operands
		if targets[inst.Target] {
			operands = labelName(inst.Target)
		}
		if operands != "" {
			fmt.Fprintf(&out, "    %-8s %s\n", inst.Mnemonic, operands)
		} else {
			fmt.Fprintf(&out, "    %s\n", inst.Mnemonic)
		}
	}
	return out.String(), nil
}

func labelName(addr int) string {
	return fmt.Sprintf("L%04X", addr)
}
