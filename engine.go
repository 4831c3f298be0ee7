package commission

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine computes the fees of an ordered sequence of operations. It owns the
// weekly allowance state of one processing pass: use a new Engine for each
// input.
type Engine struct {
	runID      string
	schedule   FeeSchedule
	converter  *Converter
	calculator *FeeCalculator
	log        zerolog.Logger
	failFast   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSchedule sets the fee schedule. Defaults to DefaultSchedule().
func WithSchedule(s FeeSchedule) Option { return func(e *Engine) { e.schedule = s } }

// WithConverter sets the currency converter. Defaults to DefaultConverter().
func WithConverter(c *Converter) Option { return func(e *Engine) { e.converter = c } }

// WithLogger sets the logger. Defaults to a disabled logger.
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.log = l } }

// WithFailFast makes Run stop at the first failed operation.
func WithFailFast(failFast bool) Option { return func(e *Engine) { e.failFast = failFast } }

// NewEngine returns an Engine with no history.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		runID:    uuid.NewString(),
		schedule: DefaultSchedule(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.converter == nil {
		e.converter = DefaultConverter()
	}
	e.log = e.log.With().Str("run", e.runID).Logger()
	e.calculator = NewFeeCalculator(e.schedule, e.log)
	return e
}

// RunID returns the identifier of this processing pass, as found in the logs.
func (e *Engine) RunID() string { return e.runID }

// Quota returns the weekly allowance state.
func (e *Engine) Quota() *QuotaTracker { return e.calculator.Quota() }

// Compute returns the fee of op in op's currency, in full precision. An
// invalid operation returns an error and leaves the state untouched.
func (e *Engine) Compute(op Operation) (Money, error) {
	if err := op.Validate(); err != nil {
		return Money{}, err
	}
	amount, err := e.converter.ToReference(op.Amount)
	if err != nil {
		return Money{}, err
	}
	fee, err := e.calculator.Fee(op, amount)
	if err != nil {
		return Money{}, err
	}
	return e.converter.FromReference(fee, op.Currency())
}

// Result is the outcome of one input operation.
type Result struct {
	Index     int // position in the input, starting at 0
	Operation Operation
	Fee       Money // in the operation currency, zero if Err is set
	Err       error
}

// MarshalJSON writes the result in a stable field order, with the fee
// rounded to the presentation precision.
func (r Result) MarshalJSON() ([]byte, error) {
	var w orderedObject
	w.Set("index", r.Index)
	if r.Err != nil {
		w.Set("error", r.Err.Error())
		return w.MarshalJSON()
	}
	w.Merge(r.Operation)
	w.Set("fee", r.Fee.Fixed())
	return w.MarshalJSON()
}

// Run computes the fee of each operation of ops, in order. It yields one
// Result per element of ops, decoding errors included.
func (e *Engine) Run(ops iter.Seq2[Operation, error]) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		i := 0
		for op, err := range ops {
			r := Result{Index: i, Operation: op, Err: err}
			i++
			if r.Err == nil {
				r.Fee, r.Err = e.Compute(op)
			}
			if r.Err != nil {
				e.log.Warn().Err(r.Err).Int("index", r.Index).Msg("operation failed")
			}
			if !yield(r) || (r.Err != nil && e.failFast) {
				return
			}
		}
	}
}

// Fees returns the fee of each operation, in order. It stops at the first
// failed operation.
func (e *Engine) Fees(ops []Operation) ([]Money, error) {
	fees := make([]Money, 0, len(ops))
	for i, op := range ops {
		fee, err := e.Compute(op)
		if err != nil {
			return fees, fmt.Errorf("operation %d: %w", i, err)
		}
		fees = append(fees, fee)
	}
	return fees, nil
}

// Seq adapts a slice of operations to Run.
func Seq(ops []Operation) iter.Seq2[Operation, error] {
	return func(yield func(Operation, error) bool) {
		for _, op := range ops {
			if !yield(op, nil) {
				return
			}
		}
	}
}
