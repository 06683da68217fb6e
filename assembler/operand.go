package assembler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// parseHex converts a base-16 literal, with or without a 0x prefix.
func parseHex(s string) (uint64, error) {
	digits := s
	if len(digits) > 2 && (strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X")) {
		digits = digits[2:]
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedLiteral, s)
	}
	return v, nil
}

// resolveOperand returns the value of a literal or of the alias it names.
func (asm *Assembler) resolveOperand(op Operand) (uint64, error) {
	switch op.Kind {
	case OperandLiteral:
		return parseHex(op.Text)
	case OperandAlias:
		v, ok := asm.aliases[op.Text]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUndefinedAlias, op.Text)
		}
		return v, nil
	}
	return 0, fmt.Errorf("%w: operand kind %d", ErrMalformedLiteral, op.Kind)
}

// isIdentifier reports whether s is a letter or underscore followed by letters, digits or underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// isHexval reports whether s is written as a base-16 literal, with or without
// a 0x prefix. The range is checked by parseHex when the value is used.
func isHexval(s string) bool {
	if len(s) > 2 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		s = s[2:]
	}
	return isHexDigits(s)
}

func isHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'f') && !(c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
