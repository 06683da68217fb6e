package assembler

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
)

// Resolve replaces every label name in the assembled code with its address
// as four lowercase hex digits (the second pass). The replacement is plain
// text over the whole buffer, in label definition order, so a label name that
// also appears inside another label or inside emitted hex is rewritten there
// too. checkLabel warns about such names when they are defined.
func (asm *Assembler) Resolve() error {
	for _, ref := range asm.refs {
		if _, ok := asm.labels[ref.label]; !ok {
			err := fmt.Errorf("line %d: %w: %s", ref.line, ErrUndefinedLabel, ref.label)
			if _, ok := asm.aliases[ref.label]; ok {
				err = fmt.Errorf("%w (%s is an alias, write %s $%s to jump to its value)",
					err, ref.label, ref.mnemonic, ref.label)
			}
			return err
		}
	}

	glog.V(1).Infof("Pass 2: resolving %d labels", len(asm.order))
	code := asm.code.String()
	for _, name := range asm.order {
		code = strings.ReplaceAll(code, name, fmt.Sprintf("%04x", asm.labels[name]))
	}
	asm.code.Reset()
	asm.code.WriteString(code)
	asm.resolved = true
	return nil
}

// checkLabel flags names the textual substitution in Resolve can get wrong.
func (asm *Assembler) checkLabel(name string, line int) {
	if isHexDigits(name) {
		asm.diagnose("Warn", line, "Label %s is made of hex digits and may match emitted code", name)
	}
	for _, other := range asm.order {
		if strings.Contains(other, name) || strings.Contains(name, other) {
			asm.diagnose("Warn", line, "Label %s overlaps label %s", name, other)
		}
	}
}
