package assembler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/katasm/assembler"
	"github.com/Urethramancer/katasm/isa"
)

// Assembles source and checks the resolved code, ignoring whitespace.
func assembleAndMatchHex(t *testing.T, name, src, expectedHex string) {
	t.Helper()

	expected := strings.Join(strings.Fields(expectedHex), "")
	asm := assembler.New()
	_, err := asm.Assemble(src)
	require.NoError(t, err, "[%s] failed to assemble:\n%s", name, src)
	require.Equal(t, expected, asm.Compressed(), "[%s]", name)
}

func TestBasicEncodings(t *testing.T) {
	tests := []struct {
		name, src, hex string
	}{
		{"NOP", "nop", "00 0000"},
		{"JMPC", "jmpc", "11 0000"},
		{"CJMPC", "cjmpc", "19 0000"},
		{"ATC", "atc", "4F 0000"},
		{"HALT", "halt", "1F 0000"},
		{"JMPR", "jmpr 3", "12 0003"},
		{"CJMPR", "cjmpr 9", "1A 0009"},
		{"JMPL", "jmpl 12", "10 0012"},
		{"CJMPL", "cjmpl 0FFF", "18 0FFF"},
		{"SCA", "sca BEEF", "20 BEEF"},
		{"WCL", "wcl 7", "21 0007"},
		{"WCR", "wcr 1", "22 0001"},
		{"CTR", "ctr F", "23 000F"},
		{"ATR", "atr 2", "4E 0002"},
		{"INCR", "incr a", "4A 000A"},
		{"DECR", "decr B", "4B 000B"},
		{"EQR", "eqr 1 2", "42 0102"},
		{"NEQR", "neqr 3 4", "43 0304"},
		{"GTR", "gtr 5 6", "44 0506"},
		{"NGTR", "ngtr 7 8", "45 0708"},
		{"GER", "ger 9 A", "46 090A"},
		{"NGER", "nger B C", "47 0B0C"},
		{"SUMR", "sumr D E", "48 0D0E"},
		{"SUBR", "subr F 0", "49 0F00"},
		{"WRL", "wrl 1 ABCD", "31 ABCD"},
		{"WRL_Prefixed", "wrl 2 0x10", "32 0010"},
	}
	for _, tc := range tests {
		assembleAndMatchHex(t, tc.name, tc.src, tc.hex)
	}
}

func TestCodeLayout(t *testing.T) {
	asm := assembler.New()
	code, err := asm.Assemble("wrl 1 0005\neqr 1 2\nhalt")
	require.NoError(t, err)
	require.Equal(t, "31 0005\n42 0102\n1F 0000\n", code)
	require.Equal(t, "3100054201021F0000", asm.Compressed())

	img, err := asm.Image()
	require.NoError(t, err)
	require.Equal(t, []byte{0x31, 0x00, 0x05, 0x42, 0x01, 0x02, 0x1F, 0x00, 0x00}, img)
}

func TestAliasScenario(t *testing.T) {
	asm := assembler.New()
	_, err := asm.Assemble("$FOO = 000A\nwrl FOO 0005")
	require.NoError(t, err)
	require.Equal(t, map[string]uint64{"FOO": 10}, asm.Aliases())
	require.Equal(t, "3A 0005\n", asm.Code())

	sigil := assembler.New()
	_, err = sigil.Assemble("$FOO = 000A\nwrl $FOO 0005\nwcl $FOO")
	require.NoError(t, err)
	require.Equal(t, "3A 0005\n21 000A\n", sigil.Code())
}

func TestLabelScenario(t *testing.T) {
	asm := assembler.New()
	require.NoError(t, asm.Analyze(":start\njmpl start"))
	require.Equal(t, map[string]int{"start": 0}, asm.Labels())
	require.Equal(t, "10 start\n", asm.Code())

	require.NoError(t, asm.Resolve())
	require.Equal(t, "10 0000\n", asm.Code())
}

func TestForwardReference(t *testing.T) {
	src := `
:top
    nop
    cjmpl :done   ; forward
    incr 1
    jmpl top
:done
    halt
`
	assembleAndMatchHex(t, "Forward", src, `
00 0000
18 0004
4A 0001
10 0000
1F 0000
`)
}

func TestLabelRedefinition(t *testing.T) {
	asm := assembler.New()
	_, err := asm.Assemble(":x\nnop\nnop\n:x\njmpl x")
	require.NoError(t, err)
	require.Equal(t, []string{"KatAsm Info:  4 - Redefining label x"}, asm.Diagnostics())
	require.Equal(t, 2, asm.Labels()["x"])
	require.Equal(t, "00 0000\n00 0000\n10 0002\n", asm.Code())
}

func TestUndefinedAlias(t *testing.T) {
	asm := assembler.New()
	_, err := asm.Assemble("wrl FOO 0005\n$FOO = 000A")
	require.ErrorIs(t, err, assembler.ErrUndefinedAlias)
	require.Contains(t, err.Error(), "line 1")
	require.Contains(t, err.Error(), "wrl")
	require.Equal(t, 0, asm.MemoryCount())
	require.Empty(t, asm.Aliases())
}

func TestUndefinedLabel(t *testing.T) {
	asm := assembler.New()
	_, err := asm.Assemble("nop\njmpl nowhere")
	require.ErrorIs(t, err, assembler.ErrUndefinedLabel)
	require.Contains(t, err.Error(), "line 2")

	_, err = asm.Image()
	require.ErrorIs(t, err, assembler.ErrUnresolved)
}

func TestFailures(t *testing.T) {
	tests := []struct {
		name, src string
		err       error
	}{
		{"UnknownMnemonic", "mov", assembler.ErrUnknownMnemonic},
		{"ZeroOpWithOperand", "nop 1", assembler.ErrShapeMismatch},
		{"OneOpWithoutOperand", "wcl", assembler.ErrShapeMismatch},
		{"TwoOpWithOneOperand", "wrl 1", assembler.ErrShapeMismatch},
		{"LabelOnNonJump", "wcl :x", nil},
	}
	for _, tc := range tests {
		asm := assembler.New()
		_, err := asm.Assemble(tc.src)
		require.Error(t, err, tc.name)
		if tc.err != nil {
			require.ErrorIs(t, err, tc.err, tc.name)
		}
		require.Equal(t, 0, asm.MemoryCount(), tc.name)
	}
}

func TestFailFast(t *testing.T) {
	asm := assembler.New()
	_, err := asm.Assemble("nop\nwcl UNDEFINED\nhalt")
	require.ErrorIs(t, err, assembler.ErrUndefinedAlias)
	require.Equal(t, "00 0000\n", asm.Code())
	require.Equal(t, 1, asm.MemoryCount())
	require.Equal(t, 1, asm.InstructionCount())
}

func TestCounters(t *testing.T) {
	src := `
$RA = 0001
:entry
wrl RA 0010
:loop
decr 1
cjmpl loop
$B2 = 0002
halt
`
	asm := assembler.New()
	_, err := asm.Assemble(src)
	require.NoError(t, err)
	require.Equal(t, 8, asm.InstructionCount())
	require.Equal(t, 4, asm.MemoryCount())
	require.Equal(t, map[string]int{"entry": 0, "loop": 1}, asm.Labels())
}

func TestDeclarationsDoNotEmit(t *testing.T) {
	asm := assembler.New()
	require.NoError(t, asm.Analyze("nop"))
	for i, src := range []string{"$X = 1", ":here", "$Y = FF", ":there"} {
		require.NoError(t, asm.Analyze(src))
		require.Equal(t, i+2, asm.InstructionCount())
		require.Equal(t, 1, asm.MemoryCount())
	}
	require.Equal(t, "00 0000\n", asm.Code())
}

func TestNopIsContextFree(t *testing.T) {
	for _, src := range []string{"nop", "$X = 3\nnop", "wrl 1 2\n:l\nnop", "jmpl l\n:l\nnop"} {
		asm := assembler.New()
		code, err := asm.Assemble(src)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(code), "\n")
		require.Equal(t, "00 0000", lines[len(lines)-1], src)
	}
}

func TestResolveTwice(t *testing.T) {
	asm := assembler.New()
	_, err := asm.Assemble(":a_label\njmpl a_label\n:b_label\ncjmpl b_label")
	require.NoError(t, err)
	first := asm.Code()
	require.Equal(t, "10 0000\n18 0001\n", first)

	require.NoError(t, asm.Resolve())
	require.Equal(t, first, asm.Code())

	require.ErrorIs(t, asm.Analyze("nop"), assembler.ErrResolved)
}

func TestWrlOperandOrder(t *testing.T) {
	for _, tc := range []struct{ src, want string }{
		{"wrl 0 0000", "30 0000"},
		{"wrl F FFFF", "3F FFFF"},
		{"wrl 5 12", "35 0012"},
		{"$R = 7\n$V = 0BAD\nwrl R V", "37 0BAD"},
	} {
		asm := assembler.New()
		code, err := asm.Assemble(tc.src)
		require.NoError(t, err)
		require.Equal(t, tc.want+"\n", code, tc.src)
	}
}

func TestTrace(t *testing.T) {
	asm := assembler.New()
	_, err := asm.Assemble("$FOO = 000A\n:start\nwrl FOO 0005\njmpl start\nhalt")
	require.NoError(t, err)
	want := "" +
		"  1 @ ---: [-- ----] Define alias FOO with value 000A\n" +
		"  2 @ ---: [-- ----] Define label start for next program instruction\n" +
		"  3 @ 000: [3A 0005] Write literal 0005 in register A\n" +
		"  4 @ 001: [10 XXXX] Jump to label start\n" +
		"  5 @ 002: [1F 0000] Halt\n"
	require.Equal(t, want, asm.Trace())
}

func TestLabelHazards(t *testing.T) {
	asm := assembler.New()
	_, err := asm.Assemble(":loop\nnop\n:loop2\njmpl loop2\n:BEEF\njmpl BEEF")
	require.NoError(t, err)
	require.Equal(t, []string{
		"KatAsm Warn:  3 - Label loop2 overlaps label loop",
		"KatAsm Warn:  5 - Label BEEF is made of hex digits and may match emitted code",
	}, asm.Diagnostics())

	// Substitution is plain text in definition order: "loop" is rewritten
	// inside "loop2" before "loop2" gets its turn, and the literal BEEF
	// operand is rewritten as if it were the label.
	require.Equal(t, "00 0000\n10 00002\n10 0002\n", asm.Code())
}

// Oversized operands stay in the text output but cannot frame a binary word.
func TestImageWordWidth(t *testing.T) {
	tests := []struct {
		name, src, code string
	}{
		{"WideLiteral", strings.Repeat("wcl 12345\n", 6), "21 12345\n"},
		{"RegisterA", strings.Repeat("jmpr A\n", 6), "12 00010\n"},
		{"AfterGoodWord", "nop\nsca 10000", "00 0000\n20 10000\n"},
	}
	for _, tc := range tests {
		asm := assembler.New()
		code, err := asm.Assemble(tc.src)
		require.NoError(t, err, tc.name)
		require.True(t, strings.HasSuffix(code, tc.code), tc.name)

		img, err := asm.Image()
		require.ErrorIs(t, err, isa.ErrWordWidth, tc.name)
		require.Nil(t, img, tc.name)
	}

	asm := assembler.New()
	_, err := asm.Assemble("nop\nsca 10000")
	require.NoError(t, err)
	_, err = asm.Image()
	require.Contains(t, err.Error(), "word 001")
}

func TestOutOfRangeLiteral(t *testing.T) {
	for _, src := range []string{
		"wcl FFFFFFFFFFFFFFFFFFFF",
		"jmpl FFFFFFFFFFFFFFFFFFFF",
		"wrl 1 123456789012345678901",
		"$BIG = FFFFFFFFFFFFFFFFFFFF",
	} {
		asm := assembler.New()
		_, err := asm.Assemble(src)
		require.ErrorIs(t, err, assembler.ErrMalformedLiteral, src)
		require.NotErrorIs(t, err, assembler.ErrUndefinedAlias, src)
		require.Equal(t, 0, asm.MemoryCount(), src)
	}
}

func TestJumpToAliasName(t *testing.T) {
	asm := assembler.New()
	_, err := asm.Assemble("$T = 0005\njmpl T")
	require.ErrorIs(t, err, assembler.ErrUndefinedLabel)
	require.Contains(t, err.Error(), "T is an alias, write jmpl $T")

	asm = assembler.New()
	_, err = asm.Assemble("cjmpl nowhere")
	require.ErrorIs(t, err, assembler.ErrUndefinedLabel)
	require.NotContains(t, err.Error(), "alias")

	asm = assembler.New()
	code, err := asm.Assemble("$T = 0005\njmpl $T")
	require.NoError(t, err)
	require.Equal(t, "10 0005\n", code)
}

func TestBadToken(t *testing.T) {
	asm := assembler.New()
	_, err := asm.Assemble("wrl 1 @5")
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 1")
}
