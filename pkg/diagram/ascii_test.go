package diagram

import (
	"strings"
	"testing"
)

func TestRenderASCII_Golden(t *testing.T) {
	set := mustParse(t, []string{"op[7:6]=0x2", "Rn[5:3]", "[2:0]"}, 8)
	d, err := Layout(set, 8, nil)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	want := strings.Join([]string{
		" 7   6 5      3 2      0",
		"+-----+--------+--------+",
		"| op  |   Rn   |        |",
		"| 10  |        |        |",
		"+-----+--------+--------+",
		"",
	}, "\n")
	if got := RenderASCII(d); got != want {
		t.Errorf("unexpected diagram:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderASCII_NoValueRowWithoutValues(t *testing.T) {
	set := mustParse(t, []string{"N[7]", "Z[6]"}, 8)
	d, err := Layout(set, 8, nil)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	out := RenderASCII(d)
	if strings.Count(out, "\n") != 4 {
		t.Errorf("expected 4 lines (no value row), got %d:\n%s", strings.Count(out, "\n"), out)
	}
}

func TestRenderASCII_Deterministic(t *testing.T) {
	set := mustParse(t, []string{"sf[31]", "Rn[9:5]=0x5", "Rd[4:0]"}, 32)
	overlay := uint64(0x800000A3)
	a, err := Layout(set, 32, &overlay)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	b, err := Layout(set, 32, &overlay)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	first := RenderASCII(a)
	if first != RenderASCII(a) {
		t.Error("rendering the same diagram twice differs")
	}
	if first != RenderASCII(b) {
		t.Error("rendering equal diagrams differs")
	}
}

func TestRenderASCII_WideNameStretchesCell(t *testing.T) {
	set := mustParse(t, []string{"TWEDEL[1]"}, 8)
	d, err := Layout(set, 8, nil)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	out := RenderASCII(d)
	if !strings.Contains(out, "|TWEDEL|") {
		t.Errorf("expected stretched cell for a long name on a narrow field:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	border := lines[1]
	for _, line := range lines[1:] {
		if len(line) != len(border) {
			t.Errorf("ragged grid line %q (want width %d)", line, len(border))
		}
	}
}
