package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bitdiag/pkg/isadb"
)

var registerOpts diagramOptions

var registerCmd = &cobra.Command{
	Use:     "register [name]",
	Aliases: []string{"reg", "r"},
	Short:   "Generate diagrams of system registers",
	Long: `Generate diagrams of AArch64 system registers.

The register is either resolved by name from the built-in database, or
described manually with repeated --field flags.

Examples:
  # ASCII diagram of the NZCV condition flags register
  bitdiag register nzcv --ascii

  # HCR_EL2 with a concrete value split across its fields
  bitdiag register hcr_el2 --value 0x80000000 --ascii

  # White-on-transparent PNG of a manually described register
  bitdiag register --field "EL[3:2]=0x1" -s 32 --wot --prefix currentel

` + fieldHelp,
	Args: cobra.MaximumNArgs(1),
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerOpts.bind(registerCmd)
	if names, err := isadb.RegisterNames(); err == nil {
		registerCmd.Long += "\n\nKnown registers: " + strings.Join(names, ", ")
	}
}

func runRegister(cmd *cobra.Command, args []string) error {
	return runDiagram("register", args, &registerOpts, isadb.Register)
}
