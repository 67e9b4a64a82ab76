package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// markdown is a strings.Builder with a Printf.
type markdown struct {
	strings.Builder
}

// Printf formats according to a format specifier and writes to the buffer.
func (m *markdown) Printf(format string, args ...any) {
	fmt.Fprintf(m, format, args...)
}

// cell escapes a value for a table cell.
func cell(s string) string {
	if s == "" {
		return " "
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
