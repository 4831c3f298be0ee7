package commission

import (
	"github.com/etnz/commission/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Rollover tells what happens to the operation count of a window when a
// withdrawal starts a new one.
type Rollover int

const (
	// RolloverReset restarts the count at one, the new operation.
	RolloverReset Rollover = iota
	// RolloverLegacy decrements the count, as the first version of the
	// calculator did. The count can reach zero or go below.
	RolloverLegacy
)

func (r Rollover) String() string {
	if r == RolloverLegacy {
		return "legacy"
	}
	return "reset"
}

// Transition is what a withdrawal did to its user window.
type Transition int

const (
	WindowOpened    Transition = iota // first withdrawal of the user
	WindowContinued                   // folded into the current window
	WindowRolled                      // started a new window
)

func (t Transition) String() string {
	switch t {
	case WindowOpened:
		return "opened"
	case WindowContinued:
		return "continued"
	default:
		return "rolled"
	}
}

// QuotaRecord is the free allowance state of one user.
type QuotaRecord struct {
	UserID     string
	Anchor     date.Date       // date of the latest operation of the window
	Operations int             // withdrawals folded into the window
	Consumed   decimal.Decimal // free allowance used in the window, in the Reference currency
}

// QuotaTracker computes individual withdrawal fees against a weekly free
// allowance per user. It is not safe for concurrent use, and the fees it
// returns depend on the order of the calls.
type QuotaTracker struct {
	schedule FeeSchedule
	records  map[string]*QuotaRecord
	log      zerolog.Logger
}

// NewQuotaTracker returns an empty tracker applying schedule.
func NewQuotaTracker(schedule FeeSchedule, log zerolog.Logger) *QuotaTracker {
	return &QuotaTracker{
		schedule: schedule,
		records:  make(map[string]*QuotaRecord),
		log:      log,
	}
}

// Len returns the number of users with a record.
func (q *QuotaTracker) Len() int { return len(q.records) }

// Record returns a copy of the user record.
func (q *QuotaTracker) Record(user string) (QuotaRecord, bool) {
	r, ok := q.records[user]
	if !ok {
		return QuotaRecord{}, false
	}
	return *r, true
}

// Withdraw registers a withdrawal of amount (in the Reference currency) by
// user on a given day and returns its fee in the Reference currency.
func (q *QuotaTracker) Withdraw(user string, on date.Date, amount decimal.Decimal) decimal.Decimal {
	fee, t := q.withdraw(user, on, amount)
	r := q.records[user]
	q.log.Debug().
		Str("user", user).
		Stringer("date", on).
		Stringer("window", t).
		Int("operations", r.Operations).
		Stringer("consumed", r.Consumed).
		Stringer("fee", fee).
		Msg("individual withdrawal")
	return fee
}

func (q *QuotaTracker) withdraw(user string, on date.Date, amount decimal.Decimal) (decimal.Decimal, Transition) {
	r, ok := q.records[user]
	if !ok {
		fee, consumed := q.allowance(amount, 1)
		q.records[user] = &QuotaRecord{UserID: user, Anchor: on, Operations: 1, Consumed: consumed}
		return fee, WindowOpened
	}

	if q.continues(r.Anchor, on) {
		r.Operations++
		fee, consumed := q.allowance(r.Consumed.Add(amount), r.Operations)
		r.Consumed = consumed
		r.Anchor = on
		return fee, WindowContinued
	}

	// The previous window is over, amount is priced on its own.
	fee, consumed := q.allowance(amount, 1)
	r.Anchor = on
	r.Consumed = consumed
	switch q.schedule.Rollover {
	case RolloverLegacy:
		r.Operations--
	default:
		r.Operations = 1
	}
	return fee, WindowRolled
}

// continues reports whether an operation on day 'on' belongs to the window
// last updated on anchor.
func (q *QuotaTracker) continues(anchor, on date.Date) bool {
	if q.schedule.StrictWeek {
		return date.SameWeek(anchor, on)
	}
	return date.SameOrAdjacentWeek(anchor, on)
}

// allowance applies the free allowance to total, the amount withdrawn in the
// window so far, and n, the number of withdrawals in the window. It returns
// the fee and the allowance consumed by the window.
func (q *QuotaTracker) allowance(total decimal.Decimal, n int) (fee, consumed decimal.Decimal) {
	s := q.schedule
	excess := total.Sub(s.FreeAllowance)
	switch {
	case excess.IsPositive():
		return excess.Mul(s.WithdrawalRate), s.FreeAllowance
	case n <= s.FreeOperations:
		return decimal.Zero, total
	default:
		// Past the free operations the whole window total is charged.
		return total.Mul(s.WithdrawalRate), s.FreeAllowance
	}
}
