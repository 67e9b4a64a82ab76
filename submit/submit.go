// Package submit drives the submission of a form to the ledger: validation,
// a single attempt through a Transport, and the success or failure outcome.
package submit

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/etnz/bitcointx"
	"github.com/etnz/bitcointx/form"
	"github.com/rs/zerolog"
)

// State is the state of a Controller.
type State int

const (
	Idle State = iota
	Validating
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Created is the ledger's answer to a successful creation.
type Created struct {
	ID           int64             // ID is the ledger id of the transaction, 0 if not returned.
	RealizedGain *bitcointx.Amount // RealizedGain is set for disposals, in USD.
}

// Transport sends a payload to the ledger. Failures are reported as a
// *bitcointx.TransportError.
type Transport interface {
	CreateTransaction(ctx context.Context, p bitcointx.LedgerPayload) (Created, error)
}

// ErrInFlight is returned by Submit while another submission is running.
var ErrInFlight = errors.New("a submission is already in flight")

// Result is the outcome of a successful submission.
type Result struct {
	Payload bitcointx.LedgerPayload
	Created
}

// HasGain reports whether the ledger returned a nonzero realized gain.
func (r Result) HasGain() bool {
	return r.RealizedGain != nil && !r.RealizedGain.IsZero()
}

// Message is the confirmation shown to the user.
func (r Result) Message() string {
	msg := "Transaction created successfully!"
	if r.HasGain() {
		msg += "\nRealized Gain: " + r.RealizedGain.SignedFormat(bitcointx.USD)
	}
	return msg
}

// FailureMessage is the message shown to the user for a failed submission.
// Transport failures are prefixed, with the server detail verbatim when there
// is one.
func FailureMessage(err error) string {
	var te *bitcointx.TransportError
	switch {
	case errors.As(err, &te) && te.Detail != "":
		return "Failed to create transaction: " + te.Detail
	case errors.Is(err, bitcointx.ErrTransport):
		return fmt.Sprintf("Failed to create transaction: %v", err)
	case err != nil:
		return err.Error()
	}
	return ""
}

// Controller submits one form at a time.
type Controller struct {
	transport Transport
	log       zerolog.Logger
	state     atomic.Int32
	inFlight  atomic.Bool

	// OnStateChange, if set, is called on each transition.
	OnStateChange func(from, to State)
	// OnSuccess, if set, is called once per successful submission, after the
	// form has been cleared.
	OnSuccess func(Result)
}

// NewController returns an idle controller sending through t.
func NewController(t Transport, log zerolog.Logger) *Controller {
	return &Controller{transport: t, log: log}
}

// State returns the current state.
func (c *Controller) State() State { return State(c.state.Load()) }

func (c *Controller) transition(to State) {
	from := State(c.state.Swap(int32(to)))
	c.log.Debug().Stringer("from", from).Stringer("to", to).Msg("submission state")
	if c.OnStateChange != nil {
		c.OnStateChange(from, to)
	}
}

// Submit builds the payload of f and sends it. On success f is cleared and
// OnSuccess is called. On failure f is left untouched and the error is
// returned: a validation, parse or logic error from the build, or a
// transport error. Either way the controller ends Idle.
//
// The call to the transport is the only blocking step. It is attempted once.
func (c *Controller) Submit(ctx context.Context, f *form.Form) (Result, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrInFlight
	}
	defer c.inFlight.Store(false)
	defer c.transition(Idle)

	c.transition(Validating)
	p, err := f.Build()
	if err != nil {
		c.log.Warn().Err(err).Str("type", string(f.Type())).Msg("transaction rejected before submission")
		c.transition(Failed)
		return Result{}, err
	}

	c.transition(Submitting)
	created, err := c.transport.CreateTransaction(ctx, p)
	if err != nil {
		c.log.Error().Err(err).Str("type", string(p.Type)).Msg("transaction submission failed")
		c.transition(Failed)
		return Result{}, err
	}

	res := Result{Payload: p, Created: created}
	ev := c.log.Info().Str("type", string(p.Type)).Int64("id", created.ID)
	if created.RealizedGain != nil {
		ev = ev.Str("realized_gain_usd", created.RealizedGain.String())
	}
	ev.Msg("transaction created")
	f.Clear()
	c.transition(Succeeded)
	if c.OnSuccess != nil {
		c.OnSuccess(res)
	}
	return res, nil
}
