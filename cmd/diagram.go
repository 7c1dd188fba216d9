package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bitdiag/pkg/diagram"
	"github.com/bitdiag/pkg/field"
)

// fieldHelp documents the --field grammar; shared by the opcode and
// register help screens.
const fieldHelp = `The --field flag manually describes one field in the form
"name[hi:lo]=value". For example, "sf[31]" is a one-bit field named "sf"
at bit position 31, and "Rn[9:5]=0x5" is a 5-bit field named "Rn"
spanning bits 9 to 5 with value 0x5. The name is optional: "[31]" is an
anonymous bit at position 31, and "[31:30]=0x3" an anonymous two-bit
field with value 0x3.`

// diagramOptions holds the flag values shared by the opcode and register
// commands. Each command binds its own copy.
type diagramOptions struct {
	fields []string
	width  uint
	ascii  bool
	bow    bool
	bot    bool
	wob    bool
	wot    bool
	all    bool
	font   string
	prefix string
	outDir string
	value  string
}

func (o *diagramOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&o.fields, "field", nil,
		"manually describe a field as name[hi:lo]=value (repeatable)")
	cmd.Flags().UintVarP(&o.width, "width", "s", 32,
		"diagram width in bits (8, 16, 32 or 64)")
	cmd.Flags().BoolVar(&o.ascii, "ascii", false,
		"dump rendered ASCII diagram to stdout")
	cmd.Flags().BoolVar(&o.bow, "bow", false,
		"generate black-on-white PNG image")
	cmd.Flags().BoolVar(&o.bot, "bot", false,
		"generate black-on-transparent PNG image")
	cmd.Flags().BoolVar(&o.wob, "wob", false,
		"generate white-on-black PNG image")
	cmd.Flags().BoolVar(&o.wot, "wot", false,
		"generate white-on-transparent PNG image")
	cmd.Flags().BoolVar(&o.all, "all", false,
		"equivalent to --ascii --bow --bot --wob --wot")
	cmd.Flags().StringVar(&o.font, "font", "",
		"path to TTF font for PNG images (default: bundled Go Mono)")
	cmd.Flags().StringVar(&o.prefix, "prefix", "",
		"PNG file name prefix (default: subject name)")
	cmd.Flags().StringVarP(&o.outDir, "output", "o", ".",
		"output directory for PNG images")
	cmd.Flags().StringVar(&o.value, "value", "",
		"overlay the given value over the entire subject")
}

// schemes returns the requested image schemes, honoring --all.
func (o *diagramOptions) schemes() []diagram.Scheme {
	if o.all {
		return diagram.AllSchemes()
	}
	var out []diagram.Scheme
	if o.bow {
		out = append(out, diagram.BlackOnWhite)
	}
	if o.bot {
		out = append(out, diagram.BlackOnTransparent)
	}
	if o.wob {
		out = append(out, diagram.WhiteOnBlack)
	}
	if o.wot {
		out = append(out, diagram.WhiteOnTransparent)
	}
	return out
}

// wantASCII reports whether the text renderer runs: either requested
// explicitly, via --all, or as the implicit default when no target is
// selected at all.
func (o *diagramOptions) wantASCII() bool {
	if o.ascii || o.all {
		return true
	}
	return !o.bow && !o.bot && !o.wob && !o.wot
}

// resolver maps a subject name to its field set and width; the opcode and
// register commands plug in their half of the database.
type resolver func(name string) (field.Set, uint, error)

func runDiagram(kind string, args []string, opts *diagramOptions, lookup resolver) error {
	if len(args) > 0 && len(opts.fields) > 0 {
		return fmt.Errorf("%w: --field is mutually exclusive with a %s name", errUsage, kind)
	}
	if len(args) == 0 && len(opts.fields) == 0 {
		return fmt.Errorf("%w: expected a %s name or at least one --field", errUsage, kind)
	}

	var (
		set    field.Set
		width  uint
		prefix string
		err    error
	)
	if len(args) > 0 {
		name := args[0]
		set, width, err = lookup(name)
		if err != nil {
			return err
		}
		prefix = strings.ToLower(name)
	} else {
		if err := field.CheckWidth(opts.width); err != nil {
			return err
		}
		width = opts.width
		set, err = field.Parse(opts.fields, width)
		if err != nil {
			return err
		}
		prefix = "fields"
	}
	if opts.prefix != "" {
		prefix = opts.prefix
	}

	var overlay *uint64
	if opts.value != "" {
		v, err := field.ParseValue(opts.value)
		if err != nil {
			return fmt.Errorf("%w: bad overlay value %q", field.ErrValueRange, opts.value)
		}
		if width < 64 && v >= uint64(1)<<width {
			return fmt.Errorf("%w: overlay value 0x%x does not fit in %d bits", field.ErrValueRange, v, width)
		}
		overlay = &v
	}

	d, err := diagram.Layout(set, width, overlay)
	if err != nil {
		return err
	}

	if opts.wantASCII() {
		fmt.Print(diagram.RenderASCII(d))
	}

	schemes := opts.schemes()
	if len(schemes) == 0 {
		return nil
	}
	fnt, err := diagram.LoadFont(opts.font)
	if err != nil {
		return err
	}
	var firstErr error
	for _, scheme := range schemes {
		target := diagram.Target{Scheme: scheme, Prefix: prefix, OutDir: opts.outDir}
		path, err := diagram.RenderPNG(d, fnt, target)
		if err != nil {
			// A failed write fails only its own target.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return firstErr
}
