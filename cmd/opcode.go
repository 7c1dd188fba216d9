package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bitdiag/pkg/isadb"
)

var opcodeOpts diagramOptions

var opcodeCmd = &cobra.Command{
	Use:     "opcode [name]",
	Aliases: []string{"op", "o"},
	Short:   "Generate diagrams of instruction opcode encodings",
	Long: `Generate diagrams of A64 instruction opcode encodings.

The instruction is either resolved by name from the built-in encoding
database, or described manually with repeated --field flags.

Examples:
  # ASCII diagram of the ADD (shifted register) encoding
  bitdiag opcode add --ascii

  # All five render targets, PNGs written to img/
  bitdiag opcode add --all -o img/

  # Manual field description with a concrete overlay value
  bitdiag opcode --field "sf[31]" --field "imm[30:0]" --value 0x80000001

` + fieldHelp,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpcode,
}

func init() {
	rootCmd.AddCommand(opcodeCmd)
	opcodeOpts.bind(opcodeCmd)
	if names, err := isadb.OpcodeNames(); err == nil {
		opcodeCmd.Long += "\n\nKnown instructions: " + strings.Join(names, ", ")
	}
}

func runOpcode(cmd *cobra.Command, args []string) error {
	return runDiagram("instruction", args, &opcodeOpts, isadb.Opcode)
}
