package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bitdiag/pkg/diagram"
	"github.com/bitdiag/pkg/field"
	"github.com/bitdiag/pkg/isadb"
)

const version = "1.2.2"

var rootDebug bool

var rootCmd = &cobra.Command{
	Use:   "bitdiag",
	Short: "Generate bit-field diagrams of A64 opcodes and system registers",
	Long: `bitdiag generates bit-field diagrams of AArch64 instruction opcode
encodings and system registers.

Subjects are resolved by name from the built-in encoding database, or
described manually with repeated --field flags. Diagrams are rendered as
ASCII art on stdout and/or as PNG images in four color schemes.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if rootDebug {
			logger, err := zap.NewDevelopment()
			if err == nil {
				diagram.SetLogger(logger)
				isadb.SetLogger(logger)
			}
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if isUserError(err) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&rootDebug, "debug", "d", false,
		"enable verbose debug logging")
}

// errUsage marks command-line validation failures so they are reported
// like the rest of the user-input error taxonomy.
var errUsage = errors.New("invalid usage")

// isUserError separates user-input failures from internal ones, so the
// latter can be surfaced as bugs rather than usage mistakes.
func isUserError(err error) bool {
	for _, sentinel := range []error{
		errUsage,
		field.ErrMalformedSpec,
		field.ErrFieldRange,
		field.ErrFieldOverlap,
		field.ErrValueRange,
		isadb.ErrUnknownName,
		diagram.ErrFontLoad,
		diagram.ErrImageWrite,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
