package program

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

// DefaultCommand passes the input as the only argument.
const DefaultCommand = "{{.Executable}} {{.Input}}"

// Commander renders the command line of a built program for one input.
//
// The template text is split into arguments before rendering, so a value
// containing spaces, such as an executable under "/tmp/my builds", stays
// a single argument.
type Commander struct {
	text string
	args []*template.Template
}

// NewCommander parses a command template. Every whitespace-separated word
// is a template that sees .Executable and .Input; an empty text selects
// DefaultCommand.
func NewCommander(text string) (*Commander, error) {
	if strings.TrimSpace(text) == "" {
		text = DefaultCommand
	}
	c := &Commander{text: text}
	for i, word := range strings.Fields(text) {
		tmpl, err := template.New(fmt.Sprintf("arg%d", i)).Option("missingkey=error").Parse(word)
		if err != nil {
			return nil, fmt.Errorf("parse command template: %w", err)
		}
		c.args = append(c.args, tmpl)
	}
	return c, nil
}

// Command returns the argv that runs executable with input. Arguments that
// render empty are dropped.
func (c *Commander) Command(executable string, input float64) ([]string, error) {
	data := map[string]interface{}{
		"Executable": executable,
		"Input":      FormatInput(input),
	}
	var argv []string
	var buf bytes.Buffer
	for _, tmpl := range c.args {
		buf.Reset()
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("render command: %w", err)
		}
		if buf.Len() > 0 {
			argv = append(argv, buf.String())
		}
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("command template %q renders an empty command", c.text)
	}
	return argv, nil
}

// FormatInput prints whole inputs without a fraction, e.g. 1000 not 1000.0.
func FormatInput(input float64) string {
	return strconv.FormatFloat(input, 'f', -1, 64)
}
