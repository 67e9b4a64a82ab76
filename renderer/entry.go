// Package renderer renders entries, payloads and submission outcomes as
// markdown.
package renderer

import (
	"strings"

	"github.com/etnz/bitcointx"
)

// Schema renders the fields of an entry as a table: their state, current
// value and usual choices.
func Schema(e bitcointx.Entry) string {
	var m markdown
	if e == nil {
		m.Printf("No transaction type selected.\n")
		return m.String()
	}
	m.Printf("# %s\n\n", e.Type())
	m.Printf("| Field | State | Value | Choices |\n")
	m.Printf("|:---|:---|---:|:---|\n")
	for _, s := range bitcointx.Schema(e) {
		m.Printf("| %s | %s | %s | %s |\n",
			s.Field, s.State, cell(e.Value(s.Field)), cell(strings.Join(bitcointx.Choices(s.Field), ", ")))
	}
	return m.String()
}
