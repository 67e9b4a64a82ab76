package form

import (
	"fmt"
	"slices"
	"time"

	"github.com/etnz/bitcointx"
	"github.com/rs/zerolog"
)

// Options configures a Form. The zero value is usable.
type Options struct {
	// ReferencePrice is the fixed BTC price in USD used by FeeUSD.
	ReferencePrice bitcointx.Amount
	// Location is the time zone of entered timestamps, time.Local if nil.
	Location *time.Location
	// Now returns the current time, time.Now if nil.
	Now func() time.Time
	// Rules replaces DefaultRules if not nil.
	Rules []Rule
	// OnDirtyChange is called each time the form becomes dirty or clean.
	OnDirtyChange func(dirty bool)
	Logger        zerolog.Logger
}

// Form is the editing session of one entry. It is not safe for concurrent
// use: all edits come from a single user.
type Form struct {
	opts     Options
	engine   *Engine
	entry    bitcointx.Entry // nil until a type is selected
	baseline bitcointx.Entry // entry right after the last reset
	dirty    bool
}

// New returns a form with no transaction type selected.
func New(opts Options) *Form {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	return &Form{opts: opts, engine: NewEngine(rules, opts.Logger)}
}

// SelectType discards the current entry and starts a fresh one of type t,
// timestamped now. It returns a copy of the new entry.
func (f *Form) SelectType(t bitcointx.TransactionType) (bitcointx.Entry, error) {
	e, err := bitcointx.NewEntry(t, bitcointx.NowTimestamp(f.opts.Now().In(f.opts.Location)))
	if err != nil {
		return nil, err
	}
	f.entry, f.baseline = e, e.Clone()
	f.opts.Logger.Debug().Str("type", string(t)).Msg("type selected")
	f.setDirty(false)
	return e.Clone(), nil
}

// Set records a user edit of field and applies the derivation rules. It
// returns the derived changes.
//
// Setting FieldType is the same as SelectType. Read-only fields can only be
// set to their current value. On error the entry is left untouched.
func (f *Form) Set(field bitcointx.Field, value string) ([]Change, error) {
	if field == bitcointx.FieldType {
		t, err := bitcointx.ParseTransactionType(value)
		if err != nil {
			return nil, err
		}
		_, err = f.SelectType(t)
		return nil, err
	}
	if f.entry == nil {
		return nil, &bitcointx.ValidationError{Field: bitcointx.FieldType, Reason: "no transaction type selected"}
	}

	work := f.entry.Clone()
	if err := work.SetValue(field, value); err != nil {
		return nil, err
	}
	if bitcointx.StateOf(f.entry, field) == bitcointx.ReadOnly && !work.Equal(f.entry) {
		return nil, &bitcointx.ValidationError{Field: field, Reason: "is derived and cannot be edited"}
	}
	changes, err := f.engine.Apply(work, field)
	if err != nil {
		return nil, err
	}
	f.entry = work
	f.setDirty(!f.entry.Equal(f.baseline))
	return changes, nil
}

// Clear discards the entry and the type selection, as after a successful
// submission.
func (f *Form) Clear() {
	f.entry, f.baseline = nil, nil
	f.setDirty(false)
}

func (f *Form) setDirty(dirty bool) {
	if dirty == f.dirty {
		return
	}
	f.dirty = dirty
	if f.opts.OnDirtyChange != nil {
		f.opts.OnDirtyChange(dirty)
	}
}

// Dirty reports whether the entry has changed since the last reset.
func (f *Form) Dirty() bool { return f.dirty }

// Type returns the selected transaction type, empty if none.
func (f *Form) Type() bitcointx.TransactionType {
	if f.entry == nil {
		return ""
	}
	return f.entry.Type()
}

// Entry returns a copy of the current entry, nil if no type is selected.
func (f *Form) Entry() bitcointx.Entry {
	if f.entry == nil {
		return nil
	}
	return f.entry.Clone()
}

// Value returns the current value of field.
func (f *Form) Value(field bitcointx.Field) string {
	if f.entry == nil {
		return ""
	}
	if field == bitcointx.FieldType {
		return string(f.entry.Type())
	}
	return f.entry.Value(field)
}

// Location returns the time zone of entered timestamps.
func (f *Form) Location() *time.Location { return f.opts.Location }

// Schema returns the state of each field of the current entry.
func (f *Form) Schema() []bitcointx.FieldSpec { return bitcointx.Schema(f.entry) }

// Validate returns every missing or malformed field, joined.
func (f *Form) Validate() error { return bitcointx.Validate(f.entry) }

// Build returns the payload of the current entry.
func (f *Form) Build() (bitcointx.LedgerPayload, error) {
	return bitcointx.Build(f.entry, f.opts.Location)
}

// FeeUSD returns the USD estimate of the derived BTC transfer fee at the
// reference price. ok is false when there is no derived fee.
func (f *Form) FeeUSD() (usd bitcointx.Amount, ok bool) {
	return EstimateFeeUSD(f.entry, f.opts.ReferencePrice)
}

// Warnings returns the non-blocking remarks about the current entry.
func (f *Form) Warnings() []string {
	if f.entry == nil {
		return nil
	}
	var out []string
	for _, field := range []bitcointx.Field{bitcointx.FieldSource, bitcointx.FieldPurpose} {
		v := f.entry.Value(field)
		if v == "" || bitcointx.StateOf(f.entry, field) == bitcointx.Hidden {
			continue
		}
		if !slices.Contains(bitcointx.Choices(field), v) {
			out = append(out, fmt.Sprintf("%s %q is not one of %v", field, v, bitcointx.Choices(field)))
		}
	}
	if f.entry.Value(bitcointx.FieldPurpose) == "Spent" && bitcointx.StateOf(f.entry, bitcointx.FieldProceedsUSD) != bitcointx.Hidden {
		// an empty proceeds is submitted as 0
		v := f.entry.Value(bitcointx.FieldProceedsUSD)
		if p, err := bitcointx.ParseAmount(bitcointx.FieldProceedsUSD, v); v == "" || err == nil && p.IsZero() {
			out = append(out, "purpose is Spent but proceeds_usd is 0")
		}
	}
	return out
}
