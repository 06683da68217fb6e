package assembler

import (
	"fmt"

	"github.com/golang/glog"
)

// msg formats a diagnostic the way every KatAsm tool reports them.
func msg(level string, line int, text string) string {
	return fmt.Sprintf("KatAsm %-4s:%3d - %s", level, line, text)
}

func (asm *Assembler) diagnose(level string, line int, format string, args ...any) {
	m := msg(level, line, fmt.Sprintf(format, args...))
	asm.diagnostics = append(asm.diagnostics, m)
	glog.Warning(m)
}

// human appends a trace line. Declarations hide the address and encoding columns.
func (asm *Assembler) human(text string, noMem bool) {
	if noMem {
		fmt.Fprintf(&asm.trace, "%3d @ ---: [-- ----] %s\n", asm.instructions, text)
		return
	}
	fmt.Fprintf(&asm.trace, "%3d @ %03X: [%s] %s\n", asm.instructions, asm.memory, asm.last, text)
}
