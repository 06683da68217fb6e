package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/Urethramancer/katasm/assembler"
)

var (
	output  string
	format  string
	trace   bool
	symbols bool
)

var rootCmd = &cobra.Command{
	Use:   "katasm [flags] sourceFile",
	Short: "Assembler for the KatAsm instruction set",
	Long: `Katasm assembles a KatAsm source file into machine code.

By default the code is written as hex text, one instruction per line.
Use --format compact for one contiguous hex stream, or --format bin
for a binary image of 3-byte big-endian words.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file instead of stdout")
	rootCmd.Flags().StringVarP(&format, "format", "f", "hex", "output format: hex, compact or bin")
	rootCmd.Flags().BoolVarP(&trace, "trace", "t", false, "print the assembly listing to stderr")
	rootCmd.Flags().BoolVarP(&symbols, "symbols", "s", false, "print the alias and label tables to stderr")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func run(path string) error {
	// glog reads its settings from the standard flag set.
	if err := flag.CommandLine.Parse(nil); err != nil {
		return err
	}
	defer glog.Flush()

	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	asm := assembler.New()
	_, err = asm.Assemble(string(src))
	if trace {
		fmt.Fprint(os.Stderr, asm.Trace())
	}
	for _, d := range asm.Diagnostics() {
		fmt.Fprintln(os.Stderr, d)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if symbols {
		pp.Fprintf(os.Stderr, "Aliases: %v\n", asm.Aliases())
		pp.Fprintf(os.Stderr, "Labels: %v\n", asm.Labels())
	}

	var data []byte
	switch format {
	case "hex":
		data = []byte(asm.Code())
	case "compact":
		data = []byte(asm.Compressed() + "\n")
	case "bin":
		data, err = asm.Image()
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return write(output, data)
}

func write(path string, data []byte) error {
	if path != "" {
		return os.WriteFile(path, data, 0644)
	}
	_, err := os.Stdout.Write(data)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		glog.Exitf("katasm: %v", err)
	}
}
