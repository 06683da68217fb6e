package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/Urethramancer/katasm/disassembler"
	"github.com/Urethramancer/katasm/isa"
)

var (
	output  string
	hexText bool
)

var rootCmd = &cobra.Command{
	Use:   "katdis [flags] inputFile",
	Short: "Disassembler for KatAsm machine code",
	Long: `Katdis turns a KatAsm binary image back into source.

With --hex the input is read as hex text, such as the output of
katasm --format hex or --format compact; whitespace is ignored.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "write the source to this file instead of stdout")
	rootCmd.Flags().BoolVar(&hexText, "hex", false, "read the input as hex text")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func run(path string) error {
	if err := flag.CommandLine.Parse(nil); err != nil {
		return err
	}
	defer glog.Flush()

	code, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if hexText {
		code, err = isa.HexToBytes(strings.Join(strings.Fields(string(code)), ""))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	text, err := disassembler.Disassemble(code)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if output == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(output, []byte(text), 0644); err != nil {
		return err
	}
	glog.V(1).Infof("Disassembly written to %s", output)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		glog.Exitf("katdis: %v", err)
	}
}
