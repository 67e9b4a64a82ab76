package renderer

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/etnz/bitcointx"
	"github.com/etnz/bitcointx/submit"
)

// Outcome renders the confirmation of a successful submission.
func Outcome(r submit.Result) string {
	var m markdown
	m.Printf("**Transaction created successfully!**")
	if r.ID != 0 {
		m.Printf(" (id %d)", r.ID)
	}
	m.Printf("\n")
	if r.HasGain() {
		m.Printf("\nRealized Gain: **%s**\n", r.RealizedGain.SignedFormat(bitcointx.USD))
	}
	return m.String()
}

// Failure renders a failed submission: the message, then one line per
// offending field.
func Failure(err error) string {
	var m markdown
	m.Printf("**Error:** %s\n", submit.FailureMessage(firstLine(err)))

	ConditionalBlock(&m, func(w io.Writer) bool {
		fmt.Fprintf(w, "\n")
		lines := fieldErrors(err)
		for _, l := range lines {
			fmt.Fprintf(w, "- %s\n", l)
		}
		return len(lines) > 0
	})
	return m.String()
}

// firstLine returns the first of joined errors, or err itself.
func firstLine(err error) error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := joined.Unwrap(); len(errs) > 0 {
			return errs[0]
		}
	}
	return err
}

// fieldErrors lists the field level errors of err: every joined error
// beyond the first, and the field errors returned by the server.
func fieldErrors(err error) []string {
	var out []string
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap()[1:] {
			out = append(out, e.Error())
		}
	}
	var te *bitcointx.TransportError
	if errors.As(err, &te) {
		for _, k := range slices.Sorted(maps.Keys(te.Errors)) {
			out = append(out, fmt.Sprintf("%s: %v", k, te.Errors[k]))
		}
	}
	return out
}
