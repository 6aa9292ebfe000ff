package program

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommander(t *testing.T) {
	tests := []struct {
		template string
		input    float64
		want     []string
	}{
		{"", 1000, []string{"/tmp/nbody-1.c_run", "1000"}},
		{"{{.Executable}} -n {{.Input}}", 2.5, []string{"/tmp/nbody-1.c_run", "-n", "2.5"}},
		{"java -cp {{.Executable}} Main {{.Input}}", 50000000, []string{"java", "-cp", "/tmp/nbody-1.c_run", "Main", "50000000"}},
	}

	for _, test := range tests {
		c, err := NewCommander(test.template)
		if err != nil {
			t.Fatalf("NewCommander(%q): %v", test.template, err)
		}
		have, err := c.Command("/tmp/nbody-1.c_run", test.input)
		if err != nil {
			t.Fatalf("Command(%q): %v", test.template, err)
		}
		if diff := cmp.Diff(test.want, have); diff != "" {
			t.Errorf("template %q mismatch (-want +have):\n%s", test.template, diff)
		}
	}
}

func TestCommanderKeepsSpacesInValues(t *testing.T) {
	executable := "/tmp/my builds/nbody-1.c/nbody-1.c_run"
	for _, text := range []string{"", "{{.Executable}} -n {{.Input}}"} {
		c, err := NewCommander(text)
		if err != nil {
			t.Fatal(err)
		}
		have, err := c.Command(executable, 1000)
		if err != nil {
			t.Fatal(err)
		}
		if have[0] != executable {
			t.Errorf("template %q: executable split into %q", text, have)
		}
		if last := have[len(have)-1]; last != "1000" {
			t.Errorf("template %q: last argument %q, want 1000", text, last)
		}
	}
}

func TestCommanderErrors(t *testing.T) {
	if _, err := NewCommander("{{.Executable"); err == nil {
		t.Errorf("expected a parse error")
	}

	c, err := NewCommander("{{if false}}x{{end}}")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Command("prog", 1); err == nil {
		t.Errorf("expected an error for an empty command")
	}
}

func TestFormatInput(t *testing.T) {
	tests := map[float64]string{
		1000:   "1000",
		0.25:   "0.25",
		1e7:    "10000000",
		-3:     "-3",
		12.125: "12.125",
	}
	for input, want := range tests {
		if have := FormatInput(input); have != want {
			t.Errorf("FormatInput(%v): have %q, want %q", input, have, want)
		}
	}
}
