// Package isadb resolves A64 instruction and system register names to
// their bit-field layouts. The database ships embedded in the binary and
// hands out already-resolved field sets, bypassing the token parser.
package isadb

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/bitdiag/pkg/field"
)

//go:embed db.yaml
var rawDB []byte

var ErrUnknownName = errors.New("unknown name")

type dbField struct {
	Name  string  `yaml:"name"`
	Hi    uint    `yaml:"hi"`
	Lo    *uint   `yaml:"lo"`
	Value *uint64 `yaml:"value"`
}

type dbEntry struct {
	Width  uint      `yaml:"width"`
	Fields []dbField `yaml:"fields"`
}

type database struct {
	Opcodes   map[string]dbEntry `yaml:"opcodes"`
	Registers map[string]dbEntry `yaml:"registers"`
}

var (
	db     *database
	dbOnce sync.Once
	dbErr  error
)

func load() (*database, error) {
	dbOnce.Do(func() {
		var d database
		if err := yaml.Unmarshal(rawDB, &d); err != nil {
			dbErr = fmt.Errorf("failed to parse embedded database: %w", err)
			return
		}
		db = &d
		Logger().Debug("database loaded",
			zap.Int("opcodes", len(d.Opcodes)),
			zap.Int("registers", len(d.Registers)))
	})
	return db, dbErr
}

// Opcode resolves an instruction name (case-sensitive) to its field set
// and encoding width.
func Opcode(name string) (field.Set, uint, error) {
	d, err := load()
	if err != nil {
		return nil, 0, err
	}
	return resolve(d.Opcodes, name, "instruction")
}

// Register resolves a system register name (case-sensitive) to its field
// set and register width.
func Register(name string) (field.Set, uint, error) {
	d, err := load()
	if err != nil {
		return nil, 0, err
	}
	return resolve(d.Registers, name, "register")
}

// OpcodeNames returns the sorted names of every instruction entry.
func OpcodeNames() ([]string, error) {
	d, err := load()
	if err != nil {
		return nil, err
	}
	return names(d.Opcodes), nil
}

// RegisterNames returns the sorted names of every register entry.
func RegisterNames() ([]string, error) {
	d, err := load()
	if err != nil {
		return nil, err
	}
	return names(d.Registers), nil
}

func resolve(entries map[string]dbEntry, name, kind string) (field.Set, uint, error) {
	e, ok := entries[name]
	if !ok {
		return nil, 0, fmt.Errorf("%w: no %s named %q (known: %s)",
			ErrUnknownName, kind, name, strings.Join(names(entries), ", "))
	}
	specs := make([]field.Spec, 0, len(e.Fields))
	for _, f := range e.Fields {
		s := field.Spec{Name: f.Name, Hi: f.Hi, Lo: f.Hi}
		if f.Lo != nil {
			s.Lo = *f.Lo
		}
		if f.Value != nil {
			s.Value = *f.Value
			s.HasValue = true
		}
		specs = append(specs, s)
	}
	set, err := field.NewSet(specs, e.Width)
	if err != nil {
		return nil, 0, fmt.Errorf("bad database entry for %s %q: %w", kind, name, err)
	}
	return set, e.Width, nil
}

func names(entries map[string]dbEntry) []string {
	out := make([]string, 0, len(entries))
	for name := range entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
